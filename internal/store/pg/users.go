package pg

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"pitchbase.org/internal/auth"
	"pitchbase.org/internal/ids"
	"pitchbase.org/internal/query"
)

const userColumns = `u.id, u.email, u.password_hash, u.role, u.is_active, u.created_at, u.updated_at`

var userSortColumns = map[string]string{
	"id":         "u.id",
	"email":      "u.email",
	"role":       "u.role",
	"created_at": "u.created_at",
}

func scanUser(row interface{ Scan(...any) error }) (*auth.User, error) {
	var u auth.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, auth.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) Create(ctx context.Context, u *auth.User) error {
	email := strings.TrimSpace(strings.ToLower(u.Email))
	if email == "" || u.PasswordHash == "" || !auth.ValidRole(u.Role) {
		return auth.ErrInvalidInput
	}
	if u.ID == "" {
		u.ID = ids.New()
	}
	now := time.Now().UTC()
	u.Email = email
	u.IsActive = true
	u.CreatedAt = now
	u.UpdatedAt = now
	_, err := s.db.ExecContext(ctx, `
		insert into users(id, email, password_hash, role, is_active, created_at, updated_at)
		values ($1, $2, $3, $4, TRUE, $5, $5)
	`, u.ID, u.Email, u.PasswordHash, u.Role, now)
	if isUniqueViolation(err) {
		return auth.ErrAlreadyExists
	}
	return err
}

func (s *Store) Find(ctx context.Context, id string) (*auth.User, error) {
	b := query.NewBuilder()
	b.Where("u.id = $%d", id)
	scopeFloor(ctx, b, "u.is_active")
	row := s.db.QueryRowContext(ctx, `select `+userColumns+` from users u`+b.Clause(), b.Args()...)
	return scanUser(row)
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	b := query.NewBuilder()
	b.Where("u.email = $%d", strings.TrimSpace(strings.ToLower(email)))
	scopeFloor(ctx, b, "u.is_active")
	row := s.db.QueryRowContext(ctx, `select `+userColumns+` from users u`+b.Clause(), b.Args()...)
	return scanUser(row)
}

func (s *Store) List(ctx context.Context, filter auth.UserFilter, sort query.Sort) ([]*auth.User, error) {
	b := query.NewBuilder()
	scopeFloor(ctx, b, "u.is_active")
	b.Contains("u.email", filter.Email)
	b.Eq("u.role", filter.Role)

	q := `select ` + userColumns + ` from users u` + b.Clause() + sort.OrderClause(userSortColumns, "u.id")
	rows, err := s.db.QueryContext(ctx, q, b.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*auth.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Store) Update(ctx context.Context, u *auth.User) error {
	email := strings.TrimSpace(strings.ToLower(u.Email))
	if email == "" || !auth.ValidRole(u.Role) {
		return auth.ErrInvalidInput
	}
	u.Email = email
	u.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		update users set email=$2, role=$3,
			password_hash = case when $4 = '' then password_hash else $4 end,
			updated_at=$5
		where id=$1
	`, u.ID, u.Email, u.Role, u.PasswordHash, u.UpdatedAt)
	if isUniqueViolation(err) {
		return auth.ErrAlreadyExists
	}
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return auth.ErrNotFound
	}
	return nil
}

func (s *Store) SoftDelete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `
		update users set is_active = FALSE, updated_at = $2
		where id = $1 and is_active
	`, id, time.Now().UTC())
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return auth.ErrNotFound
	}
	return nil
}

// isUniqueViolation detects PostgreSQL error 23505.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	type coder interface{ SQLState() string }
	var c coder
	if errors.As(err, &c) {
		return c.SQLState() == "23505"
	}
	return false
}
