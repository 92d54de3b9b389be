package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pitchbase.org/internal/audit"
	"pitchbase.org/internal/league"
	"pitchbase.org/internal/query"
)

type venueRequest struct {
	Name     string `json:"name"`
	City     string `json:"city"`
	Capacity int    `json:"capacity"`
}

type venueListResponse struct {
	Items []*league.Venue `json:"items"`
}

func (a *API) listVenues(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sort, err := query.ParseSort(q.Get("sort"), q.Get("order"), league.VenueSortFields)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	minCapacity, err := query.OptionalInt(q.Get("min_capacity"), "min_capacity")
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	filter := league.VenueFilter{
		Name:        q.Get("name"),
		City:        q.Get("city"),
		MinCapacity: minCapacity,
	}
	venues, err := a.store.ListVenues(r.Context(), filter, sort)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, venueListResponse{Items: venues})
}

func (a *API) getVenue(w http.ResponseWriter, r *http.Request) {
	venue, err := a.store.GetVenue(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, venue)
}

func (a *API) createVenue(w http.ResponseWriter, r *http.Request) {
	var req venueRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	venue := &league.Venue{
		Name:     req.Name,
		City:     req.City,
		Capacity: req.Capacity,
	}
	if err := a.store.CreateVenue(r.Context(), venue); err != nil {
		handleDomainError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "venue.create", map[string]any{
		"venue_id": venue.ID,
		"name":     venue.Name,
	})

	w.Header().Set("Location", "/v1/venues/"+venue.ID)
	writeJSON(w, http.StatusCreated, venue)
}

func (a *API) updateVenue(w http.ResponseWriter, r *http.Request) {
	var req venueRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	venue := &league.Venue{
		ID:       chi.URLParam(r, "id"),
		Name:     req.Name,
		City:     req.City,
		Capacity: req.Capacity,
	}
	if err := a.store.UpdateVenue(r.Context(), venue); err != nil {
		handleDomainError(w, r, err)
		return
	}
	updated, err := a.store.GetVenue(r.Context(), venue.ID)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "venue.update", map[string]any{
		"venue_id": venue.ID,
	})

	writeJSON(w, http.StatusOK, updated)
}

func (a *API) deleteVenue(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := a.store.SoftDeleteVenue(r.Context(), id); err != nil {
		handleDomainError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "venue.delete", map[string]any{
		"venue_id": id,
	})

	w.WriteHeader(http.StatusNoContent)
}
