package auth

import (
	"testing"
	"time"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestNewTokensRequiresKeyMaterial(t *testing.T) {
	if _, err := NewTokens(nil, time.Minute); err == nil {
		t.Fatal("expected error for missing key")
	}
	if _, err := NewTokens(testKey, 0); err == nil {
		t.Fatal("expected error for zero ttl")
	}
	if _, err := NewTokens(testKey, -time.Second); err == nil {
		t.Fatal("expected error for negative ttl")
	}
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	tokens, err := NewTokens(testKey, 15*time.Minute)
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}

	for _, subject := range []string{"alice@example.org", "x", "user+tag@host.io"} {
		raw, expiresAt, err := tokens.Issue(subject)
		if err != nil {
			t.Fatalf("Issue(%q): %v", subject, err)
		}
		if !expiresAt.After(time.Now()) {
			t.Fatalf("expected future expiry, got %v", expiresAt)
		}
		if !tokens.Verify(raw) {
			t.Fatalf("freshly issued token failed verification for %q", subject)
		}
		got, ok := tokens.VerifySubject(raw)
		if !ok || got != subject {
			t.Fatalf("subject round-trip failed: got %q ok=%v, want %q", got, ok, subject)
		}
	}
}

func TestIssueRejectsBlankSubject(t *testing.T) {
	tokens, _ := NewTokens(testKey, time.Minute)
	if _, _, err := tokens.Issue("   "); err == nil {
		t.Fatal("expected error for blank subject")
	}
}

func TestVerifyExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	tokens, err := NewTokens(testKey, 10*time.Minute, WithClock(clock))
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}

	raw, _, err := tokens.Issue("alice@example.org")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if !tokens.Verify(raw) {
		t.Fatal("token should verify before expiry")
	}

	now = now.Add(9 * time.Minute)
	if !tokens.Verify(raw) {
		t.Fatal("token should verify just before expiry")
	}

	now = now.Add(2 * time.Minute)
	if tokens.Verify(raw) {
		t.Fatal("token should fail verification after ttl elapsed")
	}
}

func TestVerifyTamperedTokens(t *testing.T) {
	tokens, _ := NewTokens(testKey, time.Hour)
	raw, _, err := tokens.Issue("alice@example.org")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Flip every byte of the token one at a time; none may verify, none may panic.
	for i := 0; i < len(raw); i++ {
		mutated := []byte(raw)
		mutated[i] ^= 0x01
		if tokens.Verify(string(mutated)) {
			t.Fatalf("tampered token verified at byte %d", i)
		}
	}
}

func TestVerifyMalformedInput(t *testing.T) {
	tokens, _ := NewTokens(testKey, time.Hour)
	for _, raw := range []string{"", "   ", "not-a-jwt", "a.b", "a.b.c", "....."} {
		if tokens.Verify(raw) {
			t.Fatalf("malformed input %q verified", raw)
		}
		if subject, ok := tokens.VerifySubject(raw); ok || subject != "" {
			t.Fatalf("malformed input %q yielded subject %q", raw, subject)
		}
	}
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	tokens, _ := NewTokens(testKey, time.Hour)
	other, _ := NewTokens([]byte("another-key-entirely-0123456789!"), time.Hour)

	raw, _, err := other.Issue("alice@example.org")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if tokens.Verify(raw) {
		t.Fatal("token signed with a different key verified")
	}
}
