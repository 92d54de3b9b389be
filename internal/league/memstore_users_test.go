package league

import (
	"context"
	"testing"

	"pitchbase.org/internal/auth"
	"pitchbase.org/internal/query"
	"pitchbase.org/internal/visibility"
)

func TestUserCreateFindAndDuplicate(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	u := &auth.User{Email: "Alice@Example.org", PasswordHash: "x", Role: auth.RoleAdmin}
	if err := s.Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.Email != "alice@example.org" {
		t.Fatalf("email not normalized: %s", u.Email)
	}

	if err := s.Create(ctx, &auth.User{Email: "alice@example.org", PasswordHash: "y", Role: auth.RoleUser}); err != auth.ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if err := s.Create(ctx, &auth.User{Email: "bob@example.org", PasswordHash: "y", Role: "owner"}); err != auth.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for bad role, got %v", err)
	}

	found, err := s.FindByEmail(ctx, "ALICE@example.org")
	if err != nil || found.ID != u.ID {
		t.Fatalf("FindByEmail: %v %v", found, err)
	}
}

func TestUserListFilterAndVisibility(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	for _, u := range []*auth.User{
		{Email: "alice@example.org", PasswordHash: "x", Role: auth.RoleAdmin},
		{Email: "bob@example.org", PasswordHash: "x", Role: auth.RoleUser},
		{Email: "carol@other.org", PasswordHash: "x", Role: auth.RoleUser},
	} {
		if err := s.Create(ctx, u); err != nil {
			t.Fatalf("Create(%s): %v", u.Email, err)
		}
	}

	users, err := s.List(ctx, auth.UserFilter{Email: "example"}, query.Sort{Field: "email"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 2 || users[0].Email != "alice@example.org" {
		t.Fatalf("unexpected users: %v", users)
	}

	users, err = s.List(ctx, auth.UserFilter{Role: auth.RoleAdmin}, query.Sort{})
	if err != nil || len(users) != 1 || users[0].Email != "alice@example.org" {
		t.Fatalf("role filter: %v %v", users, err)
	}

	admin, _ := s.FindByEmail(ctx, "alice@example.org")
	if err := s.SoftDelete(ctx, admin.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}

	scoped, scope := visibility.NewContext(ctx)
	scope.Activate()
	if _, err := s.FindByEmail(scoped, "alice@example.org"); err != auth.ErrNotFound {
		t.Fatalf("expected deactivated account hidden under scope, got %v", err)
	}
	users, _ = s.List(scoped, auth.UserFilter{}, query.Sort{})
	if len(users) != 2 {
		t.Fatalf("expected 2 visible users, got %d", len(users))
	}
}
