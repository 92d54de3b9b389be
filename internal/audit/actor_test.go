package audit

import (
	"context"
	"sync"
	"testing"
)

func TestActorSetGetClear(t *testing.T) {
	_, actor := NewContext(context.Background())

	if _, ok := actor.Get(); ok {
		t.Fatal("fresh slot must be empty")
	}

	actor.Set("user-1")
	id, ok := actor.Get()
	if !ok || id != "user-1" {
		t.Fatalf("unexpected actor: %q ok=%v", id, ok)
	}

	actor.Clear()
	if id, ok := actor.Get(); ok || id != "" {
		t.Fatalf("read after clear must be empty, got %q", id)
	}

	// Clear is idempotent.
	actor.Clear()
	if _, ok := actor.Get(); ok {
		t.Fatal("slot refilled after repeated clear")
	}
}

func TestActorNilReceiver(t *testing.T) {
	var a *Actor
	a.Set("x")
	a.Clear()
	if id, ok := a.Get(); ok || id != "" {
		t.Fatalf("nil actor must read empty, got %q", id)
	}
	if ActorID(context.Background()) != "" {
		t.Fatal("context without slot must read empty")
	}
}

func TestConcurrentActorsAreIsolated(t *testing.T) {
	ctxA, actorA := NewContext(context.Background())
	ctxB, actorB := NewContext(context.Background())

	// Interleave two simulated requests with different identities and check
	// neither observes the other's value at any point.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		actorA.Set("identity-A")
		if id := ActorID(ctxA); id != "identity-A" {
			t.Errorf("request A read %q", id)
		}
		actorA.Clear()
	}()
	go func() {
		defer wg.Done()
		actorB.Set("identity-B")
		if id := ActorID(ctxB); id != "identity-B" {
			t.Errorf("request B read %q", id)
		}
		actorB.Clear()
	}()
	wg.Wait()

	if _, ok := actorA.Get(); ok {
		t.Fatal("slot A not cleared")
	}
	if _, ok := actorB.Get(); ok {
		t.Fatal("slot B not cleared")
	}
}
