// Package config loads the site configuration from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Server
	Port        string
	Environment string

	// Content API
	ContentAPIURL     string
	ContentAPITimeout time.Duration
	ContentAPIRPS     float64

	// Views
	ViewSessionTTL time.Duration
	ViewSessionMax int
	PortfolioFacet string

	// Visitor analytics
	VisitorDBPath    string
	VisitorRetention time.Duration
	StatsEnabled     bool

	// Logging
	LogLevel string
	LogDir   string

	// Telemetry
	OTELEnabled     bool
	OTELEndpoint    string
	OTELServiceName string
	OTLPInsecure    bool
	OTELSampleRate  float64
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),

		ContentAPIURL:     getEnv("CONTENT_API_URL", "http://localhost:8000"),
		ContentAPITimeout: getEnvDuration("CONTENT_API_TIMEOUT", 0),
		ContentAPIRPS:     getEnvFloat("CONTENT_API_RPS", 20),

		ViewSessionTTL: getEnvDuration("VIEW_SESSION_TTL", 30*time.Minute),
		ViewSessionMax: getEnvInt("VIEW_SESSION_MAX", 10000),
		PortfolioFacet: getEnv("PORTFOLIO_FILTER", "category"),

		VisitorDBPath:    getEnv("VISITOR_DB_PATH", "data/visitors.db"),
		VisitorRetention: getEnvDuration("VISITOR_RETENTION", 365*24*time.Hour),
		StatsEnabled:     getEnvBool("STATS_ENABLED", false),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogDir:   getEnv("LOG_DIR", ""),

		OTELEnabled:     getEnvBool("OTEL_ENABLED", false),
		OTELEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OTELServiceName: getEnv("OTEL_SERVICE_NAME", "portfolio-site"),
		OTLPInsecure:    getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		OTELSampleRate:  getEnvFloat("OTEL_SAMPLE_RATE", 1.0),
	}
}

// Validate rejects settings the site cannot start with.
func (c *Config) Validate() error {
	u, err := url.Parse(strings.TrimSpace(c.ContentAPIURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("CONTENT_API_URL %q is not an absolute url", c.ContentAPIURL)
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT %q is not a number", c.Port)
	}
	if c.ViewSessionTTL <= 0 {
		return fmt.Errorf("VIEW_SESSION_TTL must be positive")
	}
	if c.ViewSessionMax <= 0 {
		return fmt.Errorf("VIEW_SESSION_MAX must be positive")
	}
	return nil
}

// Addr is the listen address.
func (c *Config) Addr() string { return ":" + c.Port }

// Production reports whether the site runs in production mode.
func (c *Config) Production() bool { return strings.EqualFold(c.Environment, "production") }

func getEnv(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
