package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "CONTENT_API_URL", "CONTENT_API_RPS", "VIEW_SESSION_TTL", "VIEW_SESSION_MAX", "STATS_ENABLED", "OTEL_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" || cfg.Addr() != ":8080" {
		t.Fatalf("port = %q", cfg.Port)
	}
	if cfg.ContentAPIURL != "http://localhost:8000" {
		t.Fatalf("content api url = %q", cfg.ContentAPIURL)
	}
	if cfg.ContentAPITimeout != 0 {
		t.Fatalf("timeout should default to transport default, got %v", cfg.ContentAPITimeout)
	}
	if cfg.ViewSessionTTL != 30*time.Minute {
		t.Fatalf("view session ttl = %v", cfg.ViewSessionTTL)
	}
	if cfg.ViewSessionMax != 10000 {
		t.Fatalf("view session max = %d", cfg.ViewSessionMax)
	}
	if cfg.StatsEnabled {
		t.Fatalf("stats should be off by default")
	}
	if cfg.OTELEnabled {
		t.Fatalf("otel should be off by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("CONTENT_API_URL", "https://api.example.com")
	t.Setenv("CONTENT_API_TIMEOUT", "5s")
	t.Setenv("CONTENT_API_RPS", "2.5")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("VIEW_SESSION_TTL", "not-a-duration")
	t.Setenv("VIEW_SESSION_MAX", "250")
	t.Setenv("STATS_ENABLED", "true")

	cfg := Load()
	if cfg.Port != "9090" || !cfg.Production() {
		t.Fatalf("unexpected server config %+v", cfg)
	}
	if cfg.ContentAPITimeout != 5*time.Second || cfg.ContentAPIRPS != 2.5 {
		t.Fatalf("content api settings = %v/%v", cfg.ContentAPITimeout, cfg.ContentAPIRPS)
	}
	if !cfg.OTELEnabled {
		t.Fatalf("otel should be enabled")
	}
	if cfg.ViewSessionTTL != 30*time.Minute {
		t.Fatalf("invalid duration should fall back, got %v", cfg.ViewSessionTTL)
	}
	if cfg.ViewSessionMax != 250 || !cfg.StatsEnabled {
		t.Fatalf("session max = %d, stats = %v", cfg.ViewSessionMax, cfg.StatsEnabled)
	}
}

func TestValidate_RejectsNonPositiveSessionMax(t *testing.T) {
	cfg := Load()
	cfg.ViewSessionMax = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestValidate_RejectsRelativeAPIURL(t *testing.T) {
	cfg := Load()
	cfg.ContentAPIURL = "/api"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error")
	}
}
