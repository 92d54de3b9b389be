// Package httpapi is the HTTP surface of the service: routing, request
// authentication, and the REST handlers over the domain stores.
package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pitchbase.org/internal/auth"
	"pitchbase.org/internal/league"
	"pitchbase.org/internal/obs"
)

const serviceName = "pitchbase-api"

// ReadyProbe reports whether the service's dependencies are reachable.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// API is the HTTP layer.
type API struct {
	router   chi.Router
	store    league.Store
	users    auth.UserStore
	tokens   *auth.Tokens
	resolver *auth.Resolver
	ready    ReadyProbe
	version  string
}

// New wires the routes. Read endpoints are public; mutations require the
// administrator role except for the caller's own favorites.
func New(store league.Store, users auth.UserStore, tokens *auth.Tokens, rp ReadyProbe, version string) *API {
	a := &API{
		store:    store,
		users:    users,
		tokens:   tokens,
		resolver: auth.NewResolver(users),
		ready:    rp,
		version:  version,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(LoggingJSON)
	r.Use(SecurityHeaders)
	r.Use(MaxBodyBytes(1 << 20))
	r.Use(RateLimit(200, 100))
	r.Use(a.authenticate)

	r.Get("/healthz", a.handleHealthz)
	r.Get("/readyz", a.handleReadyz)
	r.Get("/v1/info", a.handleInfo)
	r.Method(http.MethodGet, "/metrics", obs.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/auth/token", a.handleAuthToken)
		r.With(a.requireUser).Get("/auth/me", a.handleAuthMe)

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", a.listTeams)
			r.Get("/{id}", a.getTeam)
			r.Group(func(r chi.Router) {
				r.Use(a.requireAdmin)
				r.Post("/", a.createTeam)
				r.Put("/{id}", a.updateTeam)
				r.Delete("/{id}", a.deleteTeam)
			})
		})

		r.Route("/players", func(r chi.Router) {
			r.Get("/", a.listPlayers)
			r.Get("/{id}", a.getPlayer)
			r.Group(func(r chi.Router) {
				r.Use(a.requireAdmin)
				r.Post("/", a.createPlayer)
				r.Put("/{id}", a.updatePlayer)
				r.Delete("/{id}", a.deletePlayer)
			})
		})

		r.Route("/venues", func(r chi.Router) {
			r.Get("/", a.listVenues)
			r.Get("/{id}", a.getVenue)
			r.Group(func(r chi.Router) {
				r.Use(a.requireAdmin)
				r.Post("/", a.createVenue)
				r.Put("/{id}", a.updateVenue)
				r.Delete("/{id}", a.deleteVenue)
			})
		})

		r.Route("/matches", func(r chi.Router) {
			r.Get("/", a.listMatches)
			r.Get("/{id}", a.getMatch)
			r.Group(func(r chi.Router) {
				r.Use(a.requireAdmin)
				r.Post("/", a.createMatch)
				r.Put("/{id}/result", a.setMatchResult)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(a.requireAdmin)
			r.Get("/", a.listUsers)
			r.Post("/", a.createUser)
			r.Get("/{id}", a.getUser)
			r.Put("/{id}", a.updateUser)
			r.Delete("/{id}", a.deleteUser)
		})

		r.Route("/me/favorites", func(r chi.Router) {
			r.Use(a.requireUser)
			r.Get("/", a.listFavorites)
			r.Put("/{teamID}", a.addFavorite)
			r.Delete("/{teamID}", a.removeFavorite)
		})
	})

	a.router = r
	return a
}

// Handler returns the full middleware-wrapped handler.
func (a *API) Handler() http.Handler {
	return obs.Instrument(a.router)
}

func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": serviceName,
		"version": a.version,
	})
}

func (a *API) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if err := a.ready.Check(r.Context()); err != nil {
		obs.SetReady(false)
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	obs.SetReady(true)
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}

func (a *API) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    serviceName,
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": a.version,
	})
}
