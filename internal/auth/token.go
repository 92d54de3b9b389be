package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "pitchbase"

// Tokens issues and verifies signed, time-bounded identity tokens (HS256 JWT).
// Validity is purely cryptographic and temporal: nothing is persisted, so
// restarts and horizontal scaling do not invalidate outstanding tokens. The
// accepted tradeoff is that expiry is the only automatic invalidation; there
// is no mid-lifetime revocation.
type Tokens struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// TokenOption configures Tokens.
type TokenOption func(*Tokens)

// WithClock overrides the time source. Used by expiry tests.
func WithClock(fn func() time.Time) TokenOption {
	return func(t *Tokens) {
		if fn != nil {
			t.now = fn
		}
	}
}

// NewTokens validates key material up front. Missing or empty key material is
// a construction error so that misconfiguration aborts startup rather than
// surfacing per request.
func NewTokens(key []byte, ttl time.Duration, opts ...TokenOption) (*Tokens, error) {
	if len(key) == 0 {
		return nil, errors.New("auth: signing key is required")
	}
	if ttl <= 0 {
		return nil, errors.New("auth: token ttl must be greater than zero")
	}
	t := &Tokens{key: key, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Issue signs a token for the given subject with issued-at now and expiry
// now+ttl.
func (t *Tokens) Issue(subject string) (string, time.Time, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", time.Time{}, ErrInvalidInput
	}

	now := t.now().UTC()
	expiresAt := now.Add(t.ttl)
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		ID:        uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify reports whether the token's signature matches the current key
// material and the token has not expired. Malformed or tampered input simply
// verifies false; it never errors. Signature comparison inside the HS256
// method is constant time.
func (t *Tokens) Verify(raw string) bool {
	_, ok := t.VerifySubject(raw)
	return ok
}

// VerifySubject verifies the token and extracts its subject claim. The
// subject is only meaningful when ok is true.
func (t *Tokens) VerifySubject(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	parsed, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(tok *jwt.Token) (any, error) {
		if tok.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return t.key, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !parsed.Valid {
		return "", false
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || strings.TrimSpace(claims.Subject) == "" {
		return "", false
	}
	return claims.Subject, true
}

// TTL returns the configured token lifetime.
func (t *Tokens) TTL() time.Duration {
	return t.ttl
}
