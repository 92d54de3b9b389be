// Package league defines the sports domain model and its storage contract.
package league

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound     = errors.New("league: not found")
	ErrInvalidInput = errors.New("league: invalid input")
	ErrConflict     = errors.New("league: resource conflict")
)

// Match statuses.
const (
	MatchScheduled = "scheduled"
	MatchPlayed    = "played"
	MatchCancelled = "cancelled"
)

// Team is a club competing in the league.
type Team struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	VenueID     string    `json:"venue_id,omitempty"`
	FoundedYear int       `json:"founded_year,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate checks required fields for create/update.
func (t *Team) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	if t.FoundedYear < 0 {
		return fmt.Errorf("%w: founded_year must not be negative", ErrInvalidInput)
	}
	return nil
}

// Player belongs to at most one team at a time.
type Player struct {
	ID        string    `json:"id"`
	TeamID    string    `json:"team_id,omitempty"`
	Name      string    `json:"name"`
	Position  string    `json:"position,omitempty"`
	Goals     int       `json:"goals"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Player) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}
	if p.Goals < 0 {
		return fmt.Errorf("%w: goals must not be negative", ErrInvalidInput)
	}
	return nil
}

// Venue is a stadium where matches take place.
type Venue struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city,omitempty"`
	Capacity  int       `json:"capacity,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (v *Venue) Validate() error {
	if strings.TrimSpace(v.Name) == "" {
		return fmt.Errorf("%w: venue name is required", ErrInvalidInput)
	}
	if v.Capacity < 0 {
		return fmt.Errorf("%w: capacity must not be negative", ErrInvalidInput)
	}
	return nil
}

// Match is a fixture between two teams.
type Match struct {
	ID         string    `json:"id"`
	HomeTeamID string    `json:"home_team_id"`
	AwayTeamID string    `json:"away_team_id"`
	VenueID    string    `json:"venue_id,omitempty"`
	KickoffAt  time.Time `json:"kickoff_at"`
	HomeGoals  int       `json:"home_goals"`
	AwayGoals  int       `json:"away_goals"`
	Status     string    `json:"status"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (m *Match) Validate() error {
	if m.HomeTeamID == "" || m.AwayTeamID == "" {
		return fmt.Errorf("%w: home_team_id and away_team_id are required", ErrInvalidInput)
	}
	if m.HomeTeamID == m.AwayTeamID {
		return fmt.Errorf("%w: a team cannot play itself", ErrInvalidInput)
	}
	if m.KickoffAt.IsZero() {
		return fmt.Errorf("%w: kickoff_at is required", ErrInvalidInput)
	}
	switch m.Status {
	case MatchScheduled, MatchPlayed, MatchCancelled:
	default:
		return fmt.Errorf("%w: unknown match status", ErrInvalidInput)
	}
	return nil
}
