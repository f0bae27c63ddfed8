package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "ENV", "LOG_LEVEL", "MANIFEST_PATH", "ALERTS_FEED_URL",
		"CACHE_TTL_SECONDS", "HTTP_TIMEOUT_SECONDS", "REQUEST_TIMEOUT_SECONDS", "VIEW_CACHE_SIZE"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want 3000", cfg.Port)
	}
	if !cfg.IsDevelopment() {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.ManifestPath != "data/manifest.yaml" {
		t.Errorf("ManifestPath = %q", cfg.ManifestPath)
	}
	if cfg.AlertsEnabled() {
		t.Error("alerts should be disabled without ALERTS_FEED_URL")
	}
	if cfg.CacheTTL != 120*time.Second {
		t.Errorf("CacheTTL = %v, want 2m", cfg.CacheTTL)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Errorf("RequestTimeout = %v, want 15s", cfg.RequestTimeout)
	}
	if cfg.ViewCacheSize != 512 {
		t.Errorf("ViewCacheSize = %d, want 512", cfg.ViewCacheSize)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ALERTS_FEED_URL", "http://example.invalid/alerts")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "3")

	cfg := Load()
	if cfg.Port != "8081" || cfg.Env != "production" {
		t.Errorf("got port=%q env=%q", cfg.Port, cfg.Env)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
	if !cfg.AlertsEnabled() {
		t.Error("alerts should be enabled")
	}
	if cfg.HTTPTimeout != 3*time.Second {
		t.Errorf("HTTPTimeout = %v, want 3s", cfg.HTTPTimeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad env", map[string]string{"ENV": "staging"}},
		{"bad log level", map[string]string{"LOG_LEVEL": "loud"}},
		{"bad port", map[string]string{"PORT": "http"}},
		{"port out of range", map[string]string{"PORT": "70000"}},
		{"zero cache", map[string]string{"VIEW_CACHE_SIZE": "0"}},
		{"zero ttl", map[string]string{"CACHE_TTL_SECONDS": "0"}},
		{"negative timeout", map[string]string{"REQUEST_TIMEOUT_SECONDS": "-5"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if err := Load().Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Setenv("MANIFEST_PATH", "")
	os.Unsetenv("MANIFEST_PATH")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("MANIFEST_PATH=/srv/swipes/manifest.yaml\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env"))
	if got := Load().ManifestPath; got != "/srv/swipes/manifest.yaml" {
		t.Errorf("ManifestPath = %q after LoadDotEnv", got)
	}
}
