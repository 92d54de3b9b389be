package pg

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pitchbase.org/internal/ids"
	"pitchbase.org/internal/league"
	"pitchbase.org/internal/query"
)

const matchColumns = `m.id, m.home_team_id, m.away_team_id, coalesce(m.venue_id,''), m.kickoff_at, m.home_goals, m.away_goals, m.status, m.is_active, m.created_at, m.updated_at`

var matchSortColumns = map[string]string{
	"id":         "m.id",
	"kickoff_at": "m.kickoff_at",
	"status":     "m.status",
	"created_at": "m.created_at",
}

func scanMatch(row interface{ Scan(...any) error }) (*league.Match, error) {
	var m league.Match
	err := row.Scan(&m.ID, &m.HomeTeamID, &m.AwayTeamID, &m.VenueID, &m.KickoffAt,
		&m.HomeGoals, &m.AwayGoals, &m.Status, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, league.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Store) CreateMatch(ctx context.Context, m *league.Match) error {
	if m.Status == "" {
		m.Status = league.MatchScheduled
	}
	if err := m.Validate(); err != nil {
		return err
	}
	if m.ID == "" {
		m.ID = ids.New()
	}
	now := time.Now().UTC()
	m.IsActive = true
	m.CreatedAt = now
	m.UpdatedAt = now
	// Referenced teams must exist; the foreign keys turn a dangling reference
	// into a constraint violation which we surface as not-found.
	_, err := s.db.ExecContext(ctx, `
		insert into matches(id, home_team_id, away_team_id, venue_id, kickoff_at, home_goals, away_goals, status, is_active, created_at, updated_at)
		values ($1, $2, $3, nullif($4,''), $5, $6, $7, $8, TRUE, $9, $9)
	`, m.ID, m.HomeTeamID, m.AwayTeamID, m.VenueID, m.KickoffAt, m.HomeGoals, m.AwayGoals, m.Status, now)
	if isForeignKeyViolation(err) {
		return league.ErrNotFound
	}
	return err
}

func (s *Store) GetMatch(ctx context.Context, id string) (*league.Match, error) {
	b := query.NewBuilder()
	b.Where("m.id = $%d", id)
	scopeFloor(ctx, b, "m.is_active")
	row := s.db.QueryRowContext(ctx, `select `+matchColumns+` from matches m`+b.Clause(), b.Args()...)
	return scanMatch(row)
}

func (s *Store) ListMatches(ctx context.Context, filter league.MatchFilter, sort query.Sort) ([]*league.Match, error) {
	b := query.NewBuilder()
	scopeFloor(ctx, b, "m.is_active")
	if teamID := filter.TeamID; teamID != "" {
		// Either side of the fixture.
		b.Where("(m.home_team_id = $%d OR m.away_team_id = $%d)", teamID, teamID)
	}
	b.Eq("m.venue_id", filter.VenueID)
	b.Eq("m.status", filter.Status)
	if filter.From != nil {
		b.Where("m.kickoff_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		b.Where("m.kickoff_at <= $%d", *filter.To)
	}

	q := `select ` + matchColumns + ` from matches m` + b.Clause() + sort.OrderClause(matchSortColumns, "m.id")
	rows, err := s.db.QueryContext(ctx, q, b.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*league.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) SetMatchResult(ctx context.Context, id string, homeGoals, awayGoals int) (*league.Match, error) {
	if homeGoals < 0 || awayGoals < 0 {
		return nil, league.ErrInvalidInput
	}
	row := s.db.QueryRowContext(ctx, `
		update matches m
		set home_goals=$2, away_goals=$3, status=$4, updated_at=$5
		where m.id=$1 and m.is_active and m.status <> $6
		returning `+matchColumns+`
	`, id, homeGoals, awayGoals, league.MatchPlayed, time.Now().UTC(), league.MatchCancelled)
	m, err := scanMatch(row)
	if errors.Is(err, league.ErrNotFound) {
		// Distinguish a cancelled fixture from a missing one.
		var status string
		probe := s.db.QueryRowContext(ctx, `select status from matches where id=$1 and is_active`, id)
		if scanErr := probe.Scan(&status); scanErr == nil && status == league.MatchCancelled {
			return nil, league.ErrConflict
		}
		return nil, league.ErrNotFound
	}
	return m, err
}

// isForeignKeyViolation detects PostgreSQL error 23503 without binding to the
// driver's error type.
func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	type coder interface{ SQLState() string }
	var c coder
	if errors.As(err, &c) {
		return c.SQLState() == "23503"
	}
	return false
}
