package league

import (
	"context"
	"sort"
	"strings"
	"time"

	"pitchbase.org/internal/auth"
	"pitchbase.org/internal/ids"
	"pitchbase.org/internal/query"
	"pitchbase.org/internal/visibility"
)

// auth.UserStore implementation. Users follow the same soft-delete and
// visibility rules as domain entities.

func (s *MemStore) Create(ctx context.Context, u *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.TrimSpace(strings.ToLower(u.Email))
	if email == "" || u.PasswordHash == "" || !auth.ValidRole(u.Role) {
		return auth.ErrInvalidInput
	}
	for _, existing := range s.users {
		if existing.Email == email {
			return auth.ErrAlreadyExists
		}
	}
	if u.ID == "" {
		u.ID = ids.New()
	}
	now := time.Now().UTC()
	u.Email = email
	u.IsActive = true
	u.CreatedAt = now
	u.UpdatedAt = now
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *MemStore) Find(ctx context.Context, id string) (*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok || (visibility.Restricted(ctx) && !u.IsActive) {
		return nil, auth.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *MemStore) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	s.mu.RLock()
	defer s.mu.RUnlock()
	restricted := visibility.Restricted(ctx)
	for _, u := range s.users {
		if u.Email == email {
			if restricted && !u.IsActive {
				break
			}
			cp := *u
			return &cp, nil
		}
	}
	return nil, auth.ErrNotFound
}

func (s *MemStore) List(ctx context.Context, filter auth.UserFilter, srt query.Sort) ([]*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	restricted := visibility.Restricted(ctx)

	var out []*auth.User
	for _, u := range s.users {
		if restricted && !u.IsActive {
			continue
		}
		if filter.Email != "" && !contains(u.Email, filter.Email) {
			continue
		}
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		var less, eq bool
		switch srt.Field {
		case "email":
			less, eq = a.Email < b.Email, a.Email == b.Email
		case "role":
			less, eq = a.Role < b.Role, a.Role == b.Role
		case "created_at":
			less, eq = a.CreatedAt.Before(b.CreatedAt), a.CreatedAt.Equal(b.CreatedAt)
		default:
			return a.ID < b.ID
		}
		if eq {
			return a.ID < b.ID
		}
		if srt.Desc {
			return !less
		}
		return less
	})
	return out, nil
}

func (s *MemStore) Update(ctx context.Context, u *auth.User) error {
	if !auth.ValidRole(u.Role) {
		return auth.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.users[u.ID]
	if !ok {
		return auth.ErrNotFound
	}
	email := strings.TrimSpace(strings.ToLower(u.Email))
	if email == "" {
		return auth.ErrInvalidInput
	}
	for id, existing := range s.users {
		if id != u.ID && existing.Email == email {
			return auth.ErrAlreadyExists
		}
	}
	u.Email = email
	if u.PasswordHash == "" {
		u.PasswordHash = cur.PasswordHash
	}
	u.IsActive = cur.IsActive
	u.CreatedAt = cur.CreatedAt
	u.UpdatedAt = time.Now().UTC()
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *MemStore) SoftDelete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok || !u.IsActive {
		return auth.ErrNotFound
	}
	u.IsActive = false
	u.UpdatedAt = time.Now().UTC()
	return nil
}
