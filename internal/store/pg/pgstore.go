// Package pg implements the durable stores on PostgreSQL. Reads consult the
// request's visibility scope and add the is_active floor once, here, instead
// of every query spelling it out.
package pg

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"pitchbase.org/internal/auth"
	"pitchbase.org/internal/ids"
	"pitchbase.org/internal/league"
	"pitchbase.org/internal/query"
	"pitchbase.org/internal/visibility"
)

// Store implements league.Store and auth.UserStore over one connection pool.
type Store struct {
	db *sql.DB
}

var _ league.Store = (*Store)(nil)
var _ auth.UserStore = (*Store)(nil)

// Open connects to PostgreSQL with pool defaults tuned for the API workload.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return &Store{db: db}, nil
}

// NewStore wraps an existing handle. Used by tests with sqlmock.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) DB() *sql.DB { return s.db }

// scopeFloor appends the row-visibility restriction when the request's scope
// is active.
func scopeFloor(ctx context.Context, b *query.Builder, col string) {
	if visibility.Restricted(ctx) {
		b.Where(col + " = TRUE")
	}
}

// --- teams ---

const teamColumns = `t.id, t.name, t.city, coalesce(t.venue_id,''), t.founded_year, t.is_active, t.created_at, t.updated_at`

var teamSortColumns = map[string]string{
	"id":           "t.id",
	"name":         "t.name",
	"city":         "t.city",
	"founded_year": "t.founded_year",
	"created_at":   "t.created_at",
}

func scanTeam(row interface{ Scan(...any) error }) (*league.Team, error) {
	var t league.Team
	err := row.Scan(&t.ID, &t.Name, &t.City, &t.VenueID, &t.FoundedYear, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, league.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) CreateTeam(ctx context.Context, t *league.Team) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = ids.New()
	}
	now := time.Now().UTC()
	t.IsActive = true
	t.CreatedAt = now
	t.UpdatedAt = now
	_, err := s.db.ExecContext(ctx, `
		insert into teams(id, name, city, venue_id, founded_year, is_active, created_at, updated_at)
		values ($1, $2, $3, nullif($4,''), $5, TRUE, $6, $6)
	`, t.ID, t.Name, t.City, t.VenueID, t.FoundedYear, now)
	return err
}

func (s *Store) GetTeam(ctx context.Context, id string) (*league.Team, error) {
	b := query.NewBuilder()
	b.Where("t.id = $%d", id)
	scopeFloor(ctx, b, "t.is_active")
	row := s.db.QueryRowContext(ctx, `select `+teamColumns+` from teams t`+b.Clause(), b.Args()...)
	return scanTeam(row)
}

func (s *Store) ListTeams(ctx context.Context, filter league.TeamFilter, sort query.Sort) ([]*league.Team, error) {
	b := query.NewBuilder()
	scopeFloor(ctx, b, "t.is_active")
	b.Contains("t.name", filter.Name)
	b.Contains("t.city", filter.City)

	q := `select ` + teamColumns + ` from teams t` + b.Clause() + sort.OrderClause(teamSortColumns, "t.id")
	rows, err := s.db.QueryContext(ctx, q, b.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*league.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) UpdateTeam(ctx context.Context, t *league.Team) error {
	if err := t.Validate(); err != nil {
		return err
	}
	t.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		update teams set name=$2, city=$3, venue_id=nullif($4,''), founded_year=$5, updated_at=$6
		where id=$1
	`, t.ID, t.Name, t.City, t.VenueID, t.FoundedYear, t.UpdatedAt)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *Store) SoftDeleteTeam(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `
		update teams set is_active = FALSE, updated_at = $2
		where id = $1 and is_active
	`, id, time.Now().UTC())
	if err != nil {
		return err
	}
	return requireRow(res)
}

// --- favorites ---

func (s *Store) ListFavoriteTeams(ctx context.Context, userID string) ([]*league.Team, error) {
	b := query.NewBuilderAt(2)
	scopeFloor(ctx, b, "t.is_active")
	q := `
		select ` + teamColumns + `
		from user_favorite_teams f
		join teams t on t.id = f.team_id
	`
	clause := b.Clause()
	if clause == "" {
		q += ` where f.user_id = $1`
	} else {
		q += clause + ` and f.user_id = $1`
	}
	q += ` order by t.id asc`

	args := append([]any{userID}, b.Args()...)
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*league.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) AddFavoriteTeam(ctx context.Context, userID, teamID string) error {
	res, err := s.db.ExecContext(ctx, `
		insert into user_favorite_teams(user_id, team_id)
		select $1, id from teams where id = $2 and is_active
		on conflict (user_id, team_id) do update set team_id = excluded.team_id
	`, userID, teamID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *Store) RemoveFavoriteTeam(ctx context.Context, userID, teamID string) error {
	res, err := s.db.ExecContext(ctx, `
		delete from user_favorite_teams where user_id = $1 and team_id = $2
	`, userID, teamID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// requireRow maps zero affected rows to ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return league.ErrNotFound
	}
	return nil
}
