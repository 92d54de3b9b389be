package query

import (
	"errors"
	"reflect"
	"testing"
)

func TestEmptyBuilderIsNeutral(t *testing.T) {
	b := NewBuilder()
	b.Contains("name", "")
	b.Eq("status", "   ")
	b.Min("goals", nil)

	if !b.Empty() {
		t.Fatal("expected no predicates for absent values")
	}
	if got := b.Clause(); got != "" {
		t.Fatalf("expected neutral clause, got %q", got)
	}
	if len(b.Args()) != 0 {
		t.Fatalf("expected no args, got %v", b.Args())
	}
}

func TestBuilderComposesAndNumbersPlaceholders(t *testing.T) {
	min := 3
	b := NewBuilder()
	b.Contains("p.name", "ar")
	b.Eq("p.position", "FW")
	b.Min("p.goals", &min)

	want := " WHERE p.name ILIKE $1 AND p.position = $2 AND p.goals >= $3"
	if got := b.Clause(); got != want {
		t.Fatalf("clause = %q, want %q", got, want)
	}
	if !reflect.DeepEqual(b.Args(), []any{"%ar%", "FW", 3}) {
		t.Fatalf("unexpected args: %v", b.Args())
	}
}

func TestBuilderOffset(t *testing.T) {
	b := NewBuilderAt(3)
	b.Eq("team_id", "T1")
	if got := b.Clause(); got != " WHERE team_id = $3" {
		t.Fatalf("unexpected clause: %q", got)
	}
	if b.NextPlaceholder() != 4 {
		t.Fatalf("unexpected next placeholder: %d", b.NextPlaceholder())
	}
}

func TestContainsEscapesLikeMetacharacters(t *testing.T) {
	b := NewBuilder()
	b.Contains("name", "100%_done")
	args := b.Args()
	if len(args) != 1 || args[0] != `%100\%\_done%` {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestOptionalInt(t *testing.T) {
	if v, err := OptionalInt("", "min_goals"); err != nil || v != nil {
		t.Fatalf("blank input: v=%v err=%v", v, err)
	}
	v, err := OptionalInt("7", "min_goals")
	if err != nil || v == nil || *v != 7 {
		t.Fatalf("numeric input: v=%v err=%v", v, err)
	}
	if _, err := OptionalInt("seven", "min_goals"); !errors.Is(err, ErrBadFilter) {
		t.Fatalf("expected ErrBadFilter, got %v", err)
	}
	if _, err := OptionalInt("-1", "min_goals"); !errors.Is(err, ErrBadFilter) {
		t.Fatalf("expected ErrBadFilter for negative, got %v", err)
	}
}

func TestParseSort(t *testing.T) {
	allowed := []string{"name", "goals"}

	s, err := ParseSort("", "", allowed)
	if err != nil || s.Field != "" || s.Desc {
		t.Fatalf("default sort: %+v err=%v", s, err)
	}

	s, err = ParseSort("Goals", "DESC", allowed)
	if err != nil || s.Field != "goals" || !s.Desc {
		t.Fatalf("explicit sort: %+v err=%v", s, err)
	}

	if _, err := ParseSort("salary", "asc", allowed); !errors.Is(err, ErrBadFilter) {
		t.Fatalf("expected ErrBadFilter for unknown field, got %v", err)
	}
	if _, err := ParseSort("name", "sideways", allowed); !errors.Is(err, ErrBadFilter) {
		t.Fatalf("expected ErrBadFilter for bad order, got %v", err)
	}
	if _, err := ParseSort("", "desc", allowed); !errors.Is(err, ErrBadFilter) {
		t.Fatalf("expected ErrBadFilter for order without field, got %v", err)
	}
}

func TestOrderClause(t *testing.T) {
	columns := map[string]string{"name": "t.name", "id": "t.id"}

	if got := (Sort{}).OrderClause(columns, "t.id"); got != " ORDER BY t.id ASC" {
		t.Fatalf("default order: %q", got)
	}
	if got := (Sort{Field: "name", Desc: true}).OrderClause(columns, "t.id"); got != " ORDER BY t.name DESC, t.id ASC" {
		t.Fatalf("name desc order: %q", got)
	}
	if got := (Sort{Field: "id"}).OrderClause(columns, "t.id"); got != " ORDER BY t.id ASC" {
		t.Fatalf("pk order: %q", got)
	}
}
