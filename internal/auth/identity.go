package auth

import (
	"context"
	"strings"
)

// Resolver maps a verified token subject to a full principal record. It is
// called once per authenticated request; results are never cached across
// requests so account deactivation takes effect immediately.
type Resolver struct {
	users UserStore
}

// NewResolver constructs a Resolver over the durable identity store.
func NewResolver(users UserStore) *Resolver {
	return &Resolver{users: users}
}

// Resolve looks up the identity record for the given subject key. It returns
// ErrNotFound when no active record matches and never creates identities as a
// side effect.
func (r *Resolver) Resolve(ctx context.Context, subject string) (Principal, error) {
	subject = strings.TrimSpace(strings.ToLower(subject))
	if subject == "" {
		return Principal{}, ErrNotFound
	}
	user, err := r.users.FindByEmail(ctx, subject)
	if err != nil {
		return Principal{}, err
	}
	if !user.IsActive {
		return Principal{}, ErrNotFound
	}
	return Principal{ID: user.ID, Email: user.Email, Role: user.Role}, nil
}
