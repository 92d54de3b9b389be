package league

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"pitchbase.org/internal/auth"
	"pitchbase.org/internal/ids"
	"pitchbase.org/internal/query"
	"pitchbase.org/internal/visibility"
)

// MemStore implements Store and auth.UserStore in process memory. It backs
// tests and DSN-less development runs, and mirrors the SQL store's filter
// semantics exactly: case-insensitive substring matches, inclusive lower
// bounds, visibility floor on reads, primary key ascending by default.
type MemStore struct {
	mu        sync.RWMutex
	teams     map[string]*Team
	players   map[string]*Player
	venues    map[string]*Venue
	matches   map[string]*Match
	users     map[string]*auth.User
	favorites map[string]map[string]struct{} // userID -> teamID set
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		teams:     make(map[string]*Team),
		players:   make(map[string]*Player),
		venues:    make(map[string]*Venue),
		matches:   make(map[string]*Match),
		users:     make(map[string]*auth.User),
		favorites: make(map[string]map[string]struct{}),
	}
}

var _ Store = (*MemStore)(nil)
var _ auth.UserStore = (*MemStore)(nil)

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(strings.TrimSpace(needle)))
}

// --- teams ---

func (s *MemStore) CreateTeam(ctx context.Context, t *Team) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = ids.New()
	}
	now := time.Now().UTC()
	t.IsActive = true
	t.CreatedAt = now
	t.UpdatedAt = now
	cp := *t
	s.teams[t.ID] = &cp
	return nil
}

func (s *MemStore) GetTeam(ctx context.Context, id string) (*Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.teams[id]
	if !ok || (visibility.Restricted(ctx) && !t.IsActive) {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *MemStore) ListTeams(ctx context.Context, filter TeamFilter, srt query.Sort) ([]*Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	restricted := visibility.Restricted(ctx)

	var out []*Team
	for _, t := range s.teams {
		if restricted && !t.IsActive {
			continue
		}
		if filter.Name != "" && !contains(t.Name, filter.Name) {
			continue
		}
		if filter.City != "" && !contains(t.City, filter.City) {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		var less, eq bool
		switch srt.Field {
		case "name":
			less, eq = a.Name < b.Name, a.Name == b.Name
		case "city":
			less, eq = a.City < b.City, a.City == b.City
		case "founded_year":
			less, eq = a.FoundedYear < b.FoundedYear, a.FoundedYear == b.FoundedYear
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

func (s *MemStore) UpdateTeam(ctx context.Context, t *Team) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.teams[t.ID]
	if !ok {
		return ErrNotFound
	}
	t.IsActive = cur.IsActive
	t.CreatedAt = cur.CreatedAt
	t.UpdatedAt = time.Now().UTC()
	cp := *t
	s.teams[t.ID] = &cp
	return nil
}

func (s *MemStore) SoftDeleteTeam(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.teams[id]
	if !ok || !t.IsActive {
		return ErrNotFound
	}
	t.IsActive = false
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// --- players ---

func (s *MemStore) CreatePlayer(ctx context.Context, p *Player) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = ids.New()
	}
	now := time.Now().UTC()
	p.IsActive = true
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	s.players[p.ID] = &cp
	return nil
}

func (s *MemStore) GetPlayer(ctx context.Context, id string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[id]
	if !ok || (visibility.Restricted(ctx) && !p.IsActive) {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *MemStore) ListPlayers(ctx context.Context, filter PlayerFilter, srt query.Sort) ([]*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	restricted := visibility.Restricted(ctx)

	var out []*Player
	for _, p := range s.players {
		if restricted && !p.IsActive {
			continue
		}
		if filter.Name != "" && !contains(p.Name, filter.Name) {
			continue
		}
		if filter.Position != "" && p.Position != filter.Position {
			continue
		}
		if filter.TeamID != "" && p.TeamID != filter.TeamID {
			continue
		}
		if filter.TeamName != "" {
			t, ok := s.teams[p.TeamID]
			if !ok || !contains(t.Name, filter.TeamName) {
				continue
			}
		}
		if filter.MinGoals != nil && p.Goals < *filter.MinGoals {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		var less, eq bool
		switch srt.Field {
		case "name":
			less, eq = a.Name < b.Name, a.Name == b.Name
		case "position":
			less, eq = a.Position < b.Position, a.Position == b.Position
		case "goals":
			less, eq = a.Goals < b.Goals, a.Goals == b.Goals
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

func (s *MemStore) UpdatePlayer(ctx context.Context, p *Player) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.players[p.ID]
	if !ok {
		return ErrNotFound
	}
	p.IsActive = cur.IsActive
	p.CreatedAt = cur.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	s.players[p.ID] = &cp
	return nil
}

func (s *MemStore) SoftDeletePlayer(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.players[id]
	if !ok || !p.IsActive {
		return ErrNotFound
	}
	p.IsActive = false
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// --- venues ---

func (s *MemStore) CreateVenue(ctx context.Context, v *Venue) error {
	if err := v.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if v.ID == "" {
		v.ID = ids.New()
	}
	now := time.Now().UTC()
	v.IsActive = true
	v.CreatedAt = now
	v.UpdatedAt = now
	cp := *v
	s.venues[v.ID] = &cp
	return nil
}

func (s *MemStore) GetVenue(ctx context.Context, id string) (*Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.venues[id]
	if !ok || (visibility.Restricted(ctx) && !v.IsActive) {
		return nil, ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (s *MemStore) ListVenues(ctx context.Context, filter VenueFilter, srt query.Sort) ([]*Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	restricted := visibility.Restricted(ctx)

	var out []*Venue
	for _, v := range s.venues {
		if restricted && !v.IsActive {
			continue
		}
		if filter.Name != "" && !contains(v.Name, filter.Name) {
			continue
		}
		if filter.City != "" && !contains(v.City, filter.City) {
			continue
		}
		if filter.MinCapacity != nil && v.Capacity < *filter.MinCapacity {
			continue
		}
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		var less, eq bool
		switch srt.Field {
		case "name":
			less, eq = a.Name < b.Name, a.Name == b.Name
		case "city":
			less, eq = a.City < b.City, a.City == b.City
		case "capacity":
			less, eq = a.Capacity < b.Capacity, a.Capacity == b.Capacity
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

func (s *MemStore) UpdateVenue(ctx context.Context, v *Venue) error {
	if err := v.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.venues[v.ID]
	if !ok {
		return ErrNotFound
	}
	v.IsActive = cur.IsActive
	v.CreatedAt = cur.CreatedAt
	v.UpdatedAt = time.Now().UTC()
	cp := *v
	s.venues[v.ID] = &cp
	return nil
}

func (s *MemStore) SoftDeleteVenue(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.venues[id]
	if !ok || !v.IsActive {
		return ErrNotFound
	}
	v.IsActive = false
	v.UpdatedAt = time.Now().UTC()
	return nil
}

// --- matches ---

func (s *MemStore) CreateMatch(ctx context.Context, m *Match) error {
	if m.Status == "" {
		m.Status = MatchScheduled
	}
	if err := m.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.teams[m.HomeTeamID]; !ok {
		return ErrNotFound
	}
	if _, ok := s.teams[m.AwayTeamID]; !ok {
		return ErrNotFound
	}
	if m.ID == "" {
		m.ID = ids.New()
	}
	now := time.Now().UTC()
	m.IsActive = true
	m.CreatedAt = now
	m.UpdatedAt = now
	cp := *m
	s.matches[m.ID] = &cp
	return nil
}

func (s *MemStore) GetMatch(ctx context.Context, id string) (*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.matches[id]
	if !ok || (visibility.Restricted(ctx) && !m.IsActive) {
		return nil, ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (s *MemStore) ListMatches(ctx context.Context, filter MatchFilter, srt query.Sort) ([]*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	restricted := visibility.Restricted(ctx)

	var out []*Match
	for _, m := range s.matches {
		if restricted && !m.IsActive {
			continue
		}
		if filter.TeamID != "" && m.HomeTeamID != filter.TeamID && m.AwayTeamID != filter.TeamID {
			continue
		}
		if filter.VenueID != "" && m.VenueID != filter.VenueID {
			continue
		}
		if filter.Status != "" && m.Status != filter.Status {
			continue
		}
		if filter.From != nil && m.KickoffAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && m.KickoffAt.After(*filter.To) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		var less, eq bool
		switch srt.Field {
		case "kickoff_at":
			less, eq = a.KickoffAt.Before(b.KickoffAt), a.KickoffAt.Equal(b.KickoffAt)
		case "status":
			less, eq = a.Status < b.Status, a.Status == b.Status
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

func (s *MemStore) SetMatchResult(ctx context.Context, id string, homeGoals, awayGoals int) (*Match, error) {
	if homeGoals < 0 || awayGoals < 0 {
		return nil, ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.matches[id]
	if !ok || !m.IsActive {
		return nil, ErrNotFound
	}
	if m.Status == MatchCancelled {
		return nil, ErrConflict
	}
	m.HomeGoals = homeGoals
	m.AwayGoals = awayGoals
	m.Status = MatchPlayed
	m.UpdatedAt = time.Now().UTC()
	cp := *m
	return &cp, nil
}

// --- favorites ---

func (s *MemStore) ListFavoriteTeams(ctx context.Context, userID string) ([]*Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	restricted := visibility.Restricted(ctx)

	var out []*Team
	for teamID := range s.favorites[userID] {
		t, ok := s.teams[teamID]
		if !ok || (restricted && !t.IsActive) {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) AddFavoriteTeam(ctx context.Context, userID, teamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.teams[teamID]
	if !ok || !t.IsActive {
		return ErrNotFound
	}
	set, ok := s.favorites[userID]
	if !ok {
		set = make(map[string]struct{})
		s.favorites[userID] = set
	}
	set[teamID] = struct{}{}
	return nil
}

func (s *MemStore) RemoveFavoriteTeam(ctx context.Context, userID, teamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.favorites[userID]
	if _, ok := set[teamID]; !ok {
		return ErrNotFound
	}
	delete(set, teamID)
	return nil
}
