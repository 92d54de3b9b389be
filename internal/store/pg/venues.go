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

const venueColumns = `v.id, v.name, v.city, v.capacity, v.is_active, v.created_at, v.updated_at`

var venueSortColumns = map[string]string{
	"id":         "v.id",
	"name":       "v.name",
	"city":       "v.city",
	"capacity":   "v.capacity",
	"created_at": "v.created_at",
}

func scanVenue(row interface{ Scan(...any) error }) (*league.Venue, error) {
	var v league.Venue
	err := row.Scan(&v.ID, &v.Name, &v.City, &v.Capacity, &v.IsActive, &v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, league.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *Store) CreateVenue(ctx context.Context, v *league.Venue) error {
	if err := v.Validate(); err != nil {
		return err
	}
	if v.ID == "" {
		v.ID = ids.New()
	}
	now := time.Now().UTC()
	v.IsActive = true
	v.CreatedAt = now
	v.UpdatedAt = now
	_, err := s.db.ExecContext(ctx, `
		insert into venues(id, name, city, capacity, is_active, created_at, updated_at)
		values ($1, $2, $3, $4, TRUE, $5, $5)
	`, v.ID, v.Name, v.City, v.Capacity, now)
	return err
}

func (s *Store) GetVenue(ctx context.Context, id string) (*league.Venue, error) {
	b := query.NewBuilder()
	b.Where("v.id = $%d", id)
	scopeFloor(ctx, b, "v.is_active")
	row := s.db.QueryRowContext(ctx, `select `+venueColumns+` from venues v`+b.Clause(), b.Args()...)
	return scanVenue(row)
}

func (s *Store) ListVenues(ctx context.Context, filter league.VenueFilter, sort query.Sort) ([]*league.Venue, error) {
	b := query.NewBuilder()
	scopeFloor(ctx, b, "v.is_active")
	b.Contains("v.name", filter.Name)
	b.Contains("v.city", filter.City)
	b.Min("v.capacity", filter.MinCapacity)

	q := `select ` + venueColumns + ` from venues v` + b.Clause() + sort.OrderClause(venueSortColumns, "v.id")
	rows, err := s.db.QueryContext(ctx, q, b.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*league.Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *Store) UpdateVenue(ctx context.Context, v *league.Venue) error {
	if err := v.Validate(); err != nil {
		return err
	}
	v.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		update venues set name=$2, city=$3, capacity=$4, updated_at=$5
		where id=$1
	`, v.ID, v.Name, v.City, v.Capacity, v.UpdatedAt)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *Store) SoftDeleteVenue(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `
		update venues set is_active = FALSE, updated_at = $2
		where id = $1 and is_active
	`, id, time.Now().UTC())
	if err != nil {
		return err
	}
	return requireRow(res)
}
