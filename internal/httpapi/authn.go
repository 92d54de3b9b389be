package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pitchbase.org/internal/audit"
	"pitchbase.org/internal/auth"
	"pitchbase.org/internal/obs"
	"pitchbase.org/internal/visibility"
)

const (
	authHeader = "Authorization"
	bearer     = "Bearer "
)

// authenticate resolves the caller and prepares the per-request audit and
// visibility slots. A missing or invalid token never fails the request here:
// the caller continues as anonymous and route guards decide what anonymous
// may reach. Cleanup is deferred unconditionally so the actor slot is empty
// and the scope released on every exit path, handler panics included.
func (a *API) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, actor := audit.NewContext(r.Context())
		ctx, scope := visibility.NewContext(ctx)
		scope.Activate()

		defer func() {
			rec := recover()
			actor.Clear()
			scope.Deactivate()
			if rec != nil {
				obs.LogRequest(map[string]any{
					"level":      "error",
					"msg":        "panic recovered",
					"panic":      fmt.Sprint(rec),
					"path":       r.URL.Path,
					"request_id": audit.RequestIDFromContext(ctx),
				})
				writeError(w, r, http.StatusInternalServerError, "internal error")
			}
		}()

		if raw, ok := bearerToken(r.Header.Get(authHeader)); ok {
			if subject, ok := a.tokens.VerifySubject(raw); !ok {
				logAnonymousFallback(ctx, r, "token verification failed")
			} else if principal, err := a.resolver.Resolve(ctx, subject); err != nil {
				logAnonymousFallback(ctx, r, "subject resolution failed: "+err.Error())
			} else {
				ctx = auth.ContextWithPrincipal(ctx, principal)
				actor.Set(principal.ID)
				if principal.IsAdmin() {
					// Admins see soft-deleted rows.
					scope.Deactivate()
				}
			}
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireUser rejects anonymous callers.
func (a *API) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.PrincipalFromContext(r.Context()); !ok {
			writeError(w, r, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAdmin rejects anonymous callers and non-administrators.
func (a *API) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := auth.PrincipalFromContext(r.Context())
		if !ok {
			writeError(w, r, http.StatusUnauthorized, "authentication required")
			return
		}
		if !principal.IsAdmin() {
			writeError(w, r, http.StatusForbidden, "administrator role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// logAnonymousFallback records a presented credential that did not
// authenticate before the request continues without a principal. A request
// with no Authorization header stays silent.
func logAnonymousFallback(ctx context.Context, r *http.Request, reason string) {
	entry := map[string]any{
		"ts":     time.Now().UTC().Format(time.RFC3339Nano),
		"level":  "warn",
		"msg":    "auth_anonymous_fallback",
		"reason": reason,
		"path":   r.URL.Path,
	}
	if rid := audit.RequestIDFromContext(ctx); rid != "" {
		entry["request_id"] = rid
	}
	obs.LogRequest(entry)
}

// bearerToken extracts the raw token from an Authorization header. Any shape
// other than a non-empty bearer credential reports false.
func bearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}
	if !strings.HasPrefix(strings.ToLower(header), strings.ToLower(bearer)) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearer):])
	if token == "" {
		return "", false
	}
	return token, true
}
