package config

import (
	"encoding/base64"
	"testing"
	"time"
)

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv(envAuthSecret, "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing secret")
	}
}

func TestLoadRejectsMalformedSecret(t *testing.T) {
	t.Setenv(envAuthSecret, "%%% not base64 %%%")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed secret")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(envAuthSecret, base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef")))
	t.Setenv(envTokenTTL, "")
	t.Setenv(envAddr, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != defaultAddr {
		t.Fatalf("unexpected addr: %s", cfg.Addr)
	}
	if cfg.TokenTTL != defaultTokenTTL {
		t.Fatalf("unexpected ttl: %v", cfg.TokenTTL)
	}
	if len(cfg.SigningKey) != 32 {
		t.Fatalf("unexpected key length: %d", len(cfg.SigningKey))
	}
}

func TestLoadParsesTTL(t *testing.T) {
	t.Setenv(envAuthSecret, base64.StdEncoding.EncodeToString([]byte("secret-key-material")))
	t.Setenv(envTokenTTL, "2h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Fatalf("unexpected ttl: %v", cfg.TokenTTL)
	}
}

func TestLoadRejectsNonPositiveTTL(t *testing.T) {
	t.Setenv(envAuthSecret, base64.StdEncoding.EncodeToString([]byte("secret-key-material")))
	t.Setenv(envTokenTTL, "-5m")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-positive ttl")
	}
}
