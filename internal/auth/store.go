package auth

import (
	"context"

	"pitchbase.org/internal/query"
)

// UserFilter holds optional user list criteria. Blank fields contribute no
// constraint.
type UserFilter struct {
	Email string // case-insensitive substring
	Role  string // exact
}

// UserSortFields lists the sort fields accepted by user list endpoints.
var UserSortFields = []string{"id", "email", "role", "created_at"}

// UserStore is the durable identity store. Reads honor the request's row
// visibility scope; resolving never creates records.
type UserStore interface {
	Create(ctx context.Context, u *User) error
	Find(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, filter UserFilter, sort query.Sort) ([]*User, error)
	Update(ctx context.Context, u *User) error
	SoftDelete(ctx context.Context, id string) error
}
