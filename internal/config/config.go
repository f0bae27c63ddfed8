// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Port           string
	Env            string
	LogLevel       slog.Level
	ManifestPath   string
	AlertsFeedURL  string
	CacheTTL       time.Duration
	HTTPTimeout    time.Duration
	RequestTimeout time.Duration
	ViewCacheSize  int

	logLevelRaw string
}

// LoadDotEnv reads .env files into the process environment. Missing files
// are not an error.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	raw := strings.ToLower(getEnv("LOG_LEVEL", "info"))
	level, _ := parseLogLevel(raw)

	return &Config{
		Port:           getEnv("PORT", "3000"),
		Env:            getEnv("ENV", "development"),
		LogLevel:       level,
		ManifestPath:   getEnv("MANIFEST_PATH", "data/manifest.yaml"),
		AlertsFeedURL:  getEnv("ALERTS_FEED_URL", ""),
		CacheTTL:       getDurationEnv("CACHE_TTL_SECONDS", 120) * time.Second,
		HTTPTimeout:    getDurationEnv("HTTP_TIMEOUT_SECONDS", 10) * time.Second,
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT_SECONDS", 15) * time.Second,
		ViewCacheSize:  getIntEnv("VIEW_CACHE_SIZE", 512),
		logLevelRaw:    raw,
	}
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// AlertsEnabled reports whether a service alerts feed is configured.
func (c *Config) AlertsEnabled() bool {
	return c.AlertsFeedURL != ""
}

// Validate checks that configuration values are usable.
func (c *Config) Validate() error {
	switch c.Env {
	case "development", "production":
	default:
		return fmt.Errorf("invalid ENV %q (allowed: development, production)", c.Env)
	}

	if c.logLevelRaw != "" {
		if _, err := parseLogLevel(c.logLevelRaw); err != nil {
			return err
		}
	}

	if port, err := strconv.Atoi(c.Port); err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid PORT %q", c.Port)
	}

	if c.ManifestPath == "" {
		return fmt.Errorf("MANIFEST_PATH must not be empty")
	}

	for name, d := range map[string]time.Duration{
		"CACHE_TTL_SECONDS":       c.CacheTTL,
		"HTTP_TIMEOUT_SECONDS":    c.HTTPTimeout,
		"REQUEST_TIMEOUT_SECONDS": c.RequestTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("invalid %s %v (must be > 0)", name, d)
		}
	}

	if c.ViewCacheSize <= 0 {
		return fmt.Errorf("invalid VIEW_CACHE_SIZE %d (must be > 0)", c.ViewCacheSize)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultSeconds int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds)
		}
	}
	return time.Duration(defaultSeconds)
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
