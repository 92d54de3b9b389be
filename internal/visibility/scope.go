// Package visibility implements the per-request row-visibility scope. While a
// scope is active, every store read is implicitly restricted to active rows
// (is_active = TRUE); soft-deleted entities disappear from results without any
// query repeating the predicate. User-supplied filters narrow on top of this
// floor, never below it.
package visibility

import "context"

// Scope is the request-scoped activation slot. One scope is created per
// request; concurrent requests never share one. The zero value is inactive.
type Scope struct {
	active bool
}

// Activate turns the restriction on for the remainder of the request.
func (s *Scope) Activate() {
	if s == nil {
		return
	}
	s.active = true
}

// Deactivate turns the restriction off. It is idempotent and runs in the
// request's deferred teardown on every exit path.
func (s *Scope) Deactivate() {
	if s == nil {
		return
	}
	s.active = false
}

// Active reports whether reads should be restricted to visible rows.
func (s *Scope) Active() bool {
	return s != nil && s.active
}

type scopeContextKey struct{}

// NewContext attaches a fresh scope to the context and returns both.
func NewContext(ctx context.Context) (context.Context, *Scope) {
	s := &Scope{}
	return context.WithValue(ctx, scopeContextKey{}, s), s
}

// FromContext returns the request's scope, or nil outside a request. Stores
// treat a nil scope as unrestricted.
func FromContext(ctx context.Context) *Scope {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(scopeContextKey{}).(*Scope)
	return s
}

// Restricted reports whether the context carries an active scope.
func Restricted(ctx context.Context) bool {
	return FromContext(ctx).Active()
}
