// Package audit tracks the acting identity for one request and emits audit
// events attributed to it.
package audit

import (
	"context"
	"strings"
	"sync"
)

// Actor is the request-scoped slot holding the current acting identity. The
// authentication middleware owns all writes: it creates the slot empty at the
// start of the request, sets it once after successful authentication, and
// clears it unconditionally when request processing ends. Downstream code
// only reads. Each request gets an independent slot, so concurrent requests
// can never observe each other's identity.
type Actor struct {
	mu sync.Mutex
	id string
}

// Set records the acting identity.
func (a *Actor) Set(id string) {
	if a == nil {
		return
	}
	a.mu.Lock()
	a.id = strings.TrimSpace(id)
	a.mu.Unlock()
}

// Get returns the acting identity, ok false when the slot is empty or already
// cleared.
func (a *Actor) Get() (string, bool) {
	if a == nil {
		return "", false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.id == "" {
		return "", false
	}
	return a.id, true
}

// Clear empties the slot. Idempotent; any read after Clear returns empty.
func (a *Actor) Clear() {
	if a == nil {
		return
	}
	a.mu.Lock()
	a.id = ""
	a.mu.Unlock()
}

type actorContextKey struct{}

// NewContext attaches a fresh empty actor slot to the context.
func NewContext(ctx context.Context) (context.Context, *Actor) {
	a := &Actor{}
	return context.WithValue(ctx, actorContextKey{}, a), a
}

// ActorFromContext returns the request's actor slot, nil outside a request.
func ActorFromContext(ctx context.Context) *Actor {
	if ctx == nil {
		return nil
	}
	a, _ := ctx.Value(actorContextKey{}).(*Actor)
	return a
}

// ActorID is a read-side convenience: the acting identity for the context, or
// empty when anonymous.
func ActorID(ctx context.Context) string {
	id, _ := ActorFromContext(ctx).Get()
	return id
}
