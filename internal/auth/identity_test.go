package auth

import (
	"context"
	"testing"

	"pitchbase.org/internal/query"
)

type stubUsers struct {
	byEmail map[string]*User
	calls   int
}

func (s *stubUsers) Create(ctx context.Context, u *User) error { panic("not used") }
func (s *stubUsers) Find(ctx context.Context, id string) (*User, error) {
	panic("not used")
}
func (s *stubUsers) FindByEmail(ctx context.Context, email string) (*User, error) {
	s.calls++
	u, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}
func (s *stubUsers) List(ctx context.Context, filter UserFilter, sort query.Sort) ([]*User, error) {
	panic("not used")
}
func (s *stubUsers) Update(ctx context.Context, u *User) error   { panic("not used") }
func (s *stubUsers) SoftDelete(ctx context.Context, id string) error { panic("not used") }

func TestResolveReturnsPrincipal(t *testing.T) {
	users := &stubUsers{byEmail: map[string]*User{
		"alice@example.org": {ID: "u1", Email: "alice@example.org", Role: RoleAdmin, IsActive: true},
	}}
	r := NewResolver(users)

	p, err := r.Resolve(context.Background(), "Alice@Example.org")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if p.ID != "u1" || p.Email != "alice@example.org" || !p.IsAdmin() {
		t.Fatalf("unexpected principal: %+v", p)
	}
}

func TestResolveUnknownSubject(t *testing.T) {
	r := NewResolver(&stubUsers{byEmail: map[string]*User{}})
	if _, err := r.Resolve(context.Background(), "ghost@example.org"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := r.Resolve(context.Background(), "  "); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for blank subject, got %v", err)
	}
}

func TestResolveInactiveAccount(t *testing.T) {
	users := &stubUsers{byEmail: map[string]*User{
		"bob@example.org": {ID: "u2", Email: "bob@example.org", Role: RoleUser, IsActive: false},
	}}
	r := NewResolver(users)
	if _, err := r.Resolve(context.Background(), "bob@example.org"); err != ErrNotFound {
		t.Fatalf("deactivated account must not resolve, got %v", err)
	}
}

func TestResolveDoesNotCache(t *testing.T) {
	users := &stubUsers{byEmail: map[string]*User{
		"alice@example.org": {ID: "u1", Email: "alice@example.org", Role: RoleUser, IsActive: true},
	}}
	r := NewResolver(users)
	for i := 0; i < 3; i++ {
		if _, err := r.Resolve(context.Background(), "alice@example.org"); err != nil {
			t.Fatalf("Resolve: %v", err)
		}
	}
	if users.calls != 3 {
		t.Fatalf("expected one store call per resolve, got %d", users.calls)
	}
}

func TestContextPrincipal(t *testing.T) {
	ctx := context.Background()
	if _, ok := PrincipalFromContext(ctx); ok {
		t.Fatal("empty context must not yield a principal")
	}
	ctx = ContextWithPrincipal(ctx, Principal{ID: "u1", Email: "alice@example.org", Role: RoleUser})
	p, ok := PrincipalFromContext(ctx)
	if !ok || p.ID != "u1" {
		t.Fatalf("unexpected principal: %+v ok=%v", p, ok)
	}
	if !p.HasRole(RoleUser) || p.HasRole(RoleAdmin) {
		t.Fatalf("unexpected role checks for %+v", p)
	}
	admin := Principal{ID: "u2", Role: RoleAdmin}
	if !admin.HasRole(RoleUser) {
		t.Fatal("admin must satisfy user role checks")
	}
}
