package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pitchbase.org/internal/audit"
	"pitchbase.org/internal/league"
	"pitchbase.org/internal/query"
)

type playerRequest struct {
	TeamID   string `json:"team_id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Goals    int    `json:"goals"`
}

type playerListResponse struct {
	Items []*league.Player `json:"items"`
}

func (a *API) listPlayers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sort, err := query.ParseSort(q.Get("sort"), q.Get("order"), league.PlayerSortFields)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	minGoals, err := query.OptionalInt(q.Get("min_goals"), "min_goals")
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	filter := league.PlayerFilter{
		Name:     q.Get("name"),
		Position: q.Get("position"),
		TeamID:   q.Get("team_id"),
		TeamName: q.Get("team"),
		MinGoals: minGoals,
	}
	players, err := a.store.ListPlayers(r.Context(), filter, sort)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, playerListResponse{Items: players})
}

func (a *API) getPlayer(w http.ResponseWriter, r *http.Request) {
	player, err := a.store.GetPlayer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, player)
}

func (a *API) createPlayer(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	player := &league.Player{
		TeamID:   req.TeamID,
		Name:     req.Name,
		Position: req.Position,
		Goals:    req.Goals,
	}
	if err := a.store.CreatePlayer(r.Context(), player); err != nil {
		handleDomainError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "player.create", map[string]any{
		"player_id": player.ID,
		"name":      player.Name,
	})

	w.Header().Set("Location", "/v1/players/"+player.ID)
	writeJSON(w, http.StatusCreated, player)
}

func (a *API) updatePlayer(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	player := &league.Player{
		ID:       chi.URLParam(r, "id"),
		TeamID:   req.TeamID,
		Name:     req.Name,
		Position: req.Position,
		Goals:    req.Goals,
	}
	if err := a.store.UpdatePlayer(r.Context(), player); err != nil {
		handleDomainError(w, r, err)
		return
	}
	updated, err := a.store.GetPlayer(r.Context(), player.ID)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "player.update", map[string]any{
		"player_id": player.ID,
	})

	writeJSON(w, http.StatusOK, updated)
}

func (a *API) deletePlayer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := a.store.SoftDeletePlayer(r.Context(), id); err != nil {
		handleDomainError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "player.delete", map[string]any{
		"player_id": id,
	})

	w.WriteHeader(http.StatusNoContent)
}
