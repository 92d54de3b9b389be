package league

import (
	"context"
	"time"

	"pitchbase.org/internal/query"
)

// TeamFilter holds optional team list criteria. Absent fields contribute no
// constraint; string matches are case-insensitive substrings.
type TeamFilter struct {
	Name string
	City string
}

// PlayerFilter holds optional player list criteria. TeamName traverses the
// player→team relationship; callers never spell out the join.
type PlayerFilter struct {
	Name     string
	Position string // exact
	TeamID   string // exact
	TeamName string
	MinGoals *int // inclusive lower bound
}

// VenueFilter holds optional venue list criteria.
type VenueFilter struct {
	Name        string
	City        string
	MinCapacity *int
}

// MatchFilter holds optional match list criteria. TeamID matches either side
// of the fixture.
type MatchFilter struct {
	TeamID  string
	VenueID string
	Status  string // exact
	From    *time.Time
	To      *time.Time
}

// Sort field whitelists per resource.
var (
	TeamSortFields   = []string{"id", "name", "city", "founded_year", "created_at"}
	PlayerSortFields = []string{"id", "name", "position", "goals", "created_at"}
	VenueSortFields  = []string{"id", "name", "city", "capacity", "created_at"}
	MatchSortFields  = []string{"id", "kickoff_at", "status", "created_at"}
)

// Store is the persistence contract for the sports domain. All reads honor
// the request's row-visibility scope transparently; the default list order is
// primary key ascending.
type Store interface {
	CreateTeam(ctx context.Context, t *Team) error
	GetTeam(ctx context.Context, id string) (*Team, error)
	ListTeams(ctx context.Context, filter TeamFilter, sort query.Sort) ([]*Team, error)
	UpdateTeam(ctx context.Context, t *Team) error
	SoftDeleteTeam(ctx context.Context, id string) error

	CreatePlayer(ctx context.Context, p *Player) error
	GetPlayer(ctx context.Context, id string) (*Player, error)
	ListPlayers(ctx context.Context, filter PlayerFilter, sort query.Sort) ([]*Player, error)
	UpdatePlayer(ctx context.Context, p *Player) error
	SoftDeletePlayer(ctx context.Context, id string) error

	CreateVenue(ctx context.Context, v *Venue) error
	GetVenue(ctx context.Context, id string) (*Venue, error)
	ListVenues(ctx context.Context, filter VenueFilter, sort query.Sort) ([]*Venue, error)
	UpdateVenue(ctx context.Context, v *Venue) error
	SoftDeleteVenue(ctx context.Context, id string) error

	CreateMatch(ctx context.Context, m *Match) error
	GetMatch(ctx context.Context, id string) (*Match, error)
	ListMatches(ctx context.Context, filter MatchFilter, sort query.Sort) ([]*Match, error)
	SetMatchResult(ctx context.Context, id string, homeGoals, awayGoals int) (*Match, error)

	ListFavoriteTeams(ctx context.Context, userID string) ([]*Team, error)
	AddFavoriteTeam(ctx context.Context, userID, teamID string) error
	RemoveFavoriteTeam(ctx context.Context, userID, teamID string) error
}
