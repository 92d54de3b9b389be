package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pitchbase.org/internal/audit"
	"pitchbase.org/internal/league"
	"pitchbase.org/internal/query"
)

type teamRequest struct {
	Name        string `json:"name"`
	City        string `json:"city"`
	VenueID     string `json:"venue_id"`
	FoundedYear int    `json:"founded_year"`
}

type teamListResponse struct {
	Items []*league.Team `json:"items"`
}

func (a *API) listTeams(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sort, err := query.ParseSort(q.Get("sort"), q.Get("order"), league.TeamSortFields)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	filter := league.TeamFilter{
		Name: q.Get("name"),
		City: q.Get("city"),
	}
	teams, err := a.store.ListTeams(r.Context(), filter, sort)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, teamListResponse{Items: teams})
}

func (a *API) getTeam(w http.ResponseWriter, r *http.Request) {
	team, err := a.store.GetTeam(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

func (a *API) createTeam(w http.ResponseWriter, r *http.Request) {
	var req teamRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	team := &league.Team{
		Name:        req.Name,
		City:        req.City,
		VenueID:     req.VenueID,
		FoundedYear: req.FoundedYear,
	}
	if err := a.store.CreateTeam(r.Context(), team); err != nil {
		handleDomainError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "team.create", map[string]any{
		"team_id": team.ID,
		"name":    team.Name,
	})

	w.Header().Set("Location", "/v1/teams/"+team.ID)
	writeJSON(w, http.StatusCreated, team)
}

func (a *API) updateTeam(w http.ResponseWriter, r *http.Request) {
	var req teamRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	team := &league.Team{
		ID:          chi.URLParam(r, "id"),
		Name:        req.Name,
		City:        req.City,
		VenueID:     req.VenueID,
		FoundedYear: req.FoundedYear,
	}
	if err := a.store.UpdateTeam(r.Context(), team); err != nil {
		handleDomainError(w, r, err)
		return
	}
	updated, err := a.store.GetTeam(r.Context(), team.ID)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "team.update", map[string]any{
		"team_id": team.ID,
	})

	writeJSON(w, http.StatusOK, updated)
}

func (a *API) deleteTeam(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := a.store.SoftDeleteTeam(r.Context(), id); err != nil {
		handleDomainError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "team.delete", map[string]any{
		"team_id": id,
	})

	w.WriteHeader(http.StatusNoContent)
}
