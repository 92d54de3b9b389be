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

const playerColumns = `p.id, coalesce(p.team_id,''), p.name, p.position, p.goals, p.is_active, p.created_at, p.updated_at`

var playerSortColumns = map[string]string{
	"id":         "p.id",
	"name":       "p.name",
	"position":   "p.position",
	"goals":      "p.goals",
	"created_at": "p.created_at",
}

func scanPlayer(row interface{ Scan(...any) error }) (*league.Player, error) {
	var p league.Player
	err := row.Scan(&p.ID, &p.TeamID, &p.Name, &p.Position, &p.Goals, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, league.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) CreatePlayer(ctx context.Context, p *league.Player) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = ids.New()
	}
	now := time.Now().UTC()
	p.IsActive = true
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := s.db.ExecContext(ctx, `
		insert into players(id, team_id, name, position, goals, is_active, created_at, updated_at)
		values ($1, nullif($2,''), $3, $4, $5, TRUE, $6, $6)
	`, p.ID, p.TeamID, p.Name, p.Position, p.Goals, now)
	return err
}

func (s *Store) GetPlayer(ctx context.Context, id string) (*league.Player, error) {
	b := query.NewBuilder()
	b.Where("p.id = $%d", id)
	scopeFloor(ctx, b, "p.is_active")
	row := s.db.QueryRowContext(ctx, `select `+playerColumns+` from players p`+b.Clause(), b.Args()...)
	return scanPlayer(row)
}

func (s *Store) ListPlayers(ctx context.Context, filter league.PlayerFilter, sort query.Sort) ([]*league.Player, error) {
	b := query.NewBuilder()
	scopeFloor(ctx, b, "p.is_active")
	b.Contains("p.name", filter.Name)
	b.Eq("p.position", filter.Position)
	b.Eq("p.team_id", filter.TeamID)
	b.Min("p.goals", filter.MinGoals)

	// The team-name filter traverses the player→team relationship; the join
	// is only paid when the filter is present.
	from := ` from players p`
	if filter.TeamName != "" {
		from = ` from players p join teams t on t.id = p.team_id`
		b.Contains("t.name", filter.TeamName)
	}

	q := `select ` + playerColumns + from + b.Clause() + sort.OrderClause(playerSortColumns, "p.id")
	rows, err := s.db.QueryContext(ctx, q, b.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*league.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) UpdatePlayer(ctx context.Context, p *league.Player) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		update players set team_id=nullif($2,''), name=$3, position=$4, goals=$5, updated_at=$6
		where id=$1
	`, p.ID, p.TeamID, p.Name, p.Position, p.Goals, p.UpdatedAt)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *Store) SoftDeletePlayer(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `
		update players set is_active = FALSE, updated_at = $2
		where id = $1 and is_active
	`, id, time.Now().UTC())
	if err != nil {
		return err
	}
	return requireRow(res)
}
