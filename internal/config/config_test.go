package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mer-dating/backend/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("unexpected default addr: %q", cfg.HTTP.Addr)
	}
	if !cfg.Postgres.MigrateOnStart {
		t.Fatalf("migrations should run on start by default")
	}
}

func TestLoadYAMLAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte("http:\n  addr: \":9090\"\nauth:\n  jwt_access_ttl: 5m\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("HTTP_ADDR", ":7070")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.HTTP.Addr != ":7070" {
		t.Fatalf("env should win over yaml, got addr %q", cfg.HTTP.Addr)
	}
	if cfg.Auth.JWTAccessTTL != 5*time.Minute {
		t.Fatalf("yaml access ttl not applied: %v", cfg.Auth.JWTAccessTTL)
	}
	if cfg.Auth.JWTSecret != "env-secret" {
		t.Fatalf("env jwt secret not applied: %q", cfg.Auth.JWTSecret)
	}
}

func TestLoadRejectsBadEnvValues(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	if _, err := config.Load(""); err == nil {
		t.Fatalf("bad REDIS_DB should fail")
	}
}
