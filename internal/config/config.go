// Package config loads service configuration from the environment once at
// startup. A missing or undecodable signing secret is a startup error; nothing
// here is re-read at request time.
package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	envAddr          = "PITCHBASE_ADDR"
	envGRPCAddr      = "PITCHBASE_GRPC_ADDR"
	envPGDSN         = "PITCHBASE_PG_DSN"
	envAuthSecret    = "PITCHBASE_AUTH_SECRET"
	envTokenTTL      = "PITCHBASE_TOKEN_TTL"
	envAdminEmail    = "PITCHBASE_ADMIN_EMAIL"
	envAdminPassword = "PITCHBASE_ADMIN_PASSWORD"

	defaultAddr     = ":8080"
	defaultTokenTTL = 15 * time.Minute
)

var errMissingSecret = errors.New("config: " + envAuthSecret + " is required")

// Config holds immutable startup configuration.
type Config struct {
	Addr     string
	GRPCAddr string // empty disables the gRPC listener
	PGDSN    string // empty selects the in-memory store

	SigningKey []byte
	TokenTTL   time.Duration

	// Optional bootstrap administrator created on first start.
	AdminEmail    string
	AdminPassword string
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:          envOr(envAddr, defaultAddr),
		GRPCAddr:      strings.TrimSpace(os.Getenv(envGRPCAddr)),
		PGDSN:         strings.TrimSpace(os.Getenv(envPGDSN)),
		TokenTTL:      defaultTokenTTL,
		AdminEmail:    strings.TrimSpace(strings.ToLower(os.Getenv(envAdminEmail))),
		AdminPassword: os.Getenv(envAdminPassword),
	}

	raw := strings.TrimSpace(os.Getenv(envAuthSecret))
	if raw == "" {
		return nil, errMissingSecret
	}
	key, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", envAuthSecret, err)
	}
	if len(key) == 0 {
		return nil, errMissingSecret
	}
	cfg.SigningKey = key

	if raw := strings.TrimSpace(os.Getenv(envTokenTTL)); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", envTokenTTL, err)
		}
		if ttl <= 0 {
			return nil, fmt.Errorf("config: %s must be positive", envTokenTTL)
		}
		cfg.TokenTTL = ttl
	}

	return cfg, nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
