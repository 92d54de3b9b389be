package visibility

import (
	"context"
	"sync"
	"testing"
)

func TestScopeLifecycle(t *testing.T) {
	ctx, scope := NewContext(context.Background())
	if Restricted(ctx) {
		t.Fatal("fresh scope should be inactive")
	}

	scope.Activate()
	if !Restricted(ctx) {
		t.Fatal("expected active scope after Activate")
	}

	scope.Deactivate()
	scope.Deactivate() // idempotent
	if Restricted(ctx) {
		t.Fatal("expected inactive scope after Deactivate")
	}
}

func TestNilScopeIsUnrestricted(t *testing.T) {
	if Restricted(context.Background()) {
		t.Fatal("context without scope must be unrestricted")
	}
	var s *Scope
	s.Activate()
	s.Deactivate()
	if s.Active() {
		t.Fatal("nil scope must report inactive")
	}
}

func TestConcurrentScopesAreIsolated(t *testing.T) {
	ctxA, scopeA := NewContext(context.Background())
	ctxB, scopeB := NewContext(context.Background())

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		scopeA.Activate()
	}()
	go func() {
		defer wg.Done()
		scopeB.Deactivate()
	}()
	wg.Wait()

	if !Restricted(ctxA) {
		t.Fatal("scope A lost its activation")
	}
	if Restricted(ctxB) {
		t.Fatal("scope B observed another request's activation")
	}
}
