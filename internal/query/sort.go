package query

import (
	"fmt"
	"strings"
)

// Sort is an optional ordering specification. The zero value means "use the
// resource default", which every store implements as primary key ascending so
// repeated calls and pagination stay reproducible.
type Sort struct {
	Field string
	Desc  bool
}

// ParseSort validates a sort request against the resource's allowed fields.
// Blank field means default ordering. An unrecognized field or order value is
// ErrBadFilter.
func ParseSort(field, order string, allowed []string) (Sort, error) {
	field = strings.TrimSpace(strings.ToLower(field))
	order = strings.TrimSpace(strings.ToLower(order))

	var s Sort
	switch order {
	case "", "asc":
	case "desc":
		s.Desc = true
	default:
		return Sort{}, fmt.Errorf("%w: order must be asc or desc", ErrBadFilter)
	}

	if field == "" {
		if s.Desc {
			return Sort{}, fmt.Errorf("%w: order requires a sort field", ErrBadFilter)
		}
		return Sort{}, nil
	}
	for _, a := range allowed {
		if field == a {
			s.Field = field
			return s, nil
		}
	}
	return Sort{}, fmt.Errorf("%w: unknown sort field %q", ErrBadFilter, field)
}

// OrderClause renders an ORDER BY over whitelisted columns. columns maps the
// external sort field to its SQL column; def is the default column. The
// primary key is always appended as a tiebreaker for deterministic order.
func (s Sort) OrderClause(columns map[string]string, def string) string {
	col, ok := columns[s.Field]
	if s.Field == "" || !ok {
		return " ORDER BY " + def + " ASC"
	}
	dir := " ASC"
	if s.Desc {
		dir = " DESC"
	}
	if col == def {
		return " ORDER BY " + col + dir
	}
	return " ORDER BY " + col + dir + ", " + def + " ASC"
}
