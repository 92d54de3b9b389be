package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"pitchbase.org/internal/audit"
	"pitchbase.org/internal/league"
	"pitchbase.org/internal/query"
)

type matchRequest struct {
	HomeTeamID string    `json:"home_team_id"`
	AwayTeamID string    `json:"away_team_id"`
	VenueID    string    `json:"venue_id"`
	KickoffAt  time.Time `json:"kickoff_at"`
}

type matchResultRequest struct {
	HomeGoals int `json:"home_goals"`
	AwayGoals int `json:"away_goals"`
}

type matchListResponse struct {
	Items []*league.Match `json:"items"`
}

func (a *API) listMatches(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sort, err := query.ParseSort(q.Get("sort"), q.Get("order"), league.MatchSortFields)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	from, err := optionalTime(q.Get("from"), "from")
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	to, err := optionalTime(q.Get("to"), "to")
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	filter := league.MatchFilter{
		TeamID:  q.Get("team_id"),
		VenueID: q.Get("venue_id"),
		Status:  q.Get("status"),
		From:    from,
		To:      to,
	}
	matches, err := a.store.ListMatches(r.Context(), filter, sort)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, matchListResponse{Items: matches})
}

func (a *API) getMatch(w http.ResponseWriter, r *http.Request) {
	match, err := a.store.GetMatch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, match)
}

func (a *API) createMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	match := &league.Match{
		HomeTeamID: req.HomeTeamID,
		AwayTeamID: req.AwayTeamID,
		VenueID:    req.VenueID,
		KickoffAt:  req.KickoffAt,
		Status:     league.MatchScheduled,
	}
	if err := a.store.CreateMatch(r.Context(), match); err != nil {
		handleDomainError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "match.create", map[string]any{
		"match_id":     match.ID,
		"home_team_id": match.HomeTeamID,
		"away_team_id": match.AwayTeamID,
	})

	w.Header().Set("Location", "/v1/matches/"+match.ID)
	writeJSON(w, http.StatusCreated, match)
}

func (a *API) setMatchResult(w http.ResponseWriter, r *http.Request) {
	var req matchResultRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	id := chi.URLParam(r, "id")
	match, err := a.store.SetMatchResult(r.Context(), id, req.HomeGoals, req.AwayGoals)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "match.result", map[string]any{
		"match_id": id,
		"score":    strconv.Itoa(req.HomeGoals) + "-" + strconv.Itoa(req.AwayGoals),
	})

	writeJSON(w, http.StatusOK, match)
}

// optionalTime parses an optional RFC3339 query value. Blank means no bound.
func optionalTime(raw, field string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be RFC3339", query.ErrBadFilter, field)
	}
	return &t, nil
}
