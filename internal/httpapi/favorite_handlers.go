package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pitchbase.org/internal/audit"
	"pitchbase.org/internal/auth"
)

func (a *API) listFavorites(w http.ResponseWriter, r *http.Request) {
	principal, _ := auth.PrincipalFromContext(r.Context())
	teams, err := a.store.ListFavoriteTeams(r.Context(), principal.ID)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, teamListResponse{Items: teams})
}

func (a *API) addFavorite(w http.ResponseWriter, r *http.Request) {
	principal, _ := auth.PrincipalFromContext(r.Context())
	teamID := chi.URLParam(r, "teamID")
	if err := a.store.AddFavoriteTeam(r.Context(), principal.ID, teamID); err != nil {
		handleDomainError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "favorite.add", map[string]any{
		"team_id": teamID,
	})

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) removeFavorite(w http.ResponseWriter, r *http.Request) {
	principal, _ := auth.PrincipalFromContext(r.Context())
	teamID := chi.URLParam(r, "teamID")
	if err := a.store.RemoveFavoriteTeam(r.Context(), principal.ID, teamID); err != nil {
		handleDomainError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "favorite.remove", map[string]any{
		"team_id": teamID,
	})

	w.WriteHeader(http.StatusNoContent)
}
