// Package query composes optional filter criteria into a single SQL condition.
//
// Every list endpoint funnels its filter through a Builder: each producer
// method contributes a predicate only when its value is present, absent values
// contribute nothing at all, and composing zero predicates yields the neutral
// "match everything" clause. That keeps "list all" and "list filtered" on one
// code path and makes it impossible for an absent field to corrupt sibling
// constraints with a vacuous term.
package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadFilter marks malformed filter or sort input. It is a client error,
// never a server fault.
var ErrBadFilter = errors.New("query: invalid filter input")

// Builder accumulates optional AND-ed predicates for one SQL statement.
// Placeholders are numbered from the configured offset so callers may bind
// arguments before and after the composed clause.
type Builder struct {
	conds []string
	args  []any
	next  int
}

// NewBuilder returns a Builder whose first placeholder is $1.
func NewBuilder() *Builder {
	return &Builder{next: 1}
}

// NewBuilderAt returns a Builder whose first placeholder is $n.
func NewBuilderAt(n int) *Builder {
	if n < 1 {
		n = 1
	}
	return &Builder{next: n}
}

// Where appends an unconditional predicate. The condition must contain
// exactly one %d verb per argument for placeholder numbering.
func (b *Builder) Where(cond string, args ...any) *Builder {
	nums := make([]any, len(args))
	for i := range args {
		nums[i] = b.next
		b.next++
	}
	b.conds = append(b.conds, fmt.Sprintf(cond, nums...))
	b.args = append(b.args, args...)
	return b
}

// Contains adds a case-insensitive substring match when v is non-blank.
func (b *Builder) Contains(col, v string) *Builder {
	v = strings.TrimSpace(v)
	if v == "" {
		return b
	}
	return b.Where(col+" ILIKE $%d", "%"+escapeLike(v)+"%")
}

// Eq adds an exact string equality when v is non-blank.
func (b *Builder) Eq(col, v string) *Builder {
	v = strings.TrimSpace(v)
	if v == "" {
		return b
	}
	return b.Where(col+" = $%d", v)
}

// Min adds an inclusive lower bound when v is present.
func (b *Builder) Min(col string, v *int) *Builder {
	if v == nil {
		return b
	}
	return b.Where(col+" >= $%d", *v)
}

// Clause renders the composed WHERE clause with a leading " WHERE ". An empty
// Builder renders the empty string: the neutral predicate.
func (b *Builder) Clause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// Args returns the bound arguments in placeholder order.
func (b *Builder) Args() []any {
	return b.args
}

// Empty reports whether no predicate was contributed.
func (b *Builder) Empty() bool {
	return len(b.conds) == 0
}

// NextPlaceholder returns the number the next bound argument would take.
func (b *Builder) NextPlaceholder() int {
	return b.next
}

// escapeLike neutralizes LIKE metacharacters in user input.
func escapeLike(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `%`, `\%`)
	return strings.ReplaceAll(v, `_`, `\_`)
}

// OptionalInt parses an optional non-negative integer filter value. Blank
// input means "no constraint" and returns nil; malformed or negative input is
// ErrBadFilter.
func OptionalInt(raw, field string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", ErrBadFilter, field)
	}
	if v < 0 {
		return nil, fmt.Errorf("%w: %s must not be negative", ErrBadFilter, field)
	}
	return &v, nil
}
