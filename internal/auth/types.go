package auth

import (
	"strings"
	"time"
)

// Role tags carried by user accounts. Two tiers only.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole reports whether the given tag is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// User is a durable account record. Email doubles as the token subject.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal is the resolved identity attached to one authenticated request.
// It is rebuilt from the user store on every request and never cached.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the principal carries the administrator role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// HasRole reports whether the principal carries the given role tag.
// Administrators satisfy every role check.
func (p Principal) HasRole(role string) bool {
	role = strings.TrimSpace(strings.ToLower(role))
	if role == "" {
		return false
	}
	return p.Role == role || p.Role == RoleAdmin
}
