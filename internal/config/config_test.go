package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Host != "localhost" || cfg.Server.Port != 8080 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if !cfg.GRPC.Enabled || cfg.GRPC.Port != 50051 {
		t.Errorf("unexpected grpc config: %+v", cfg.GRPC)
	}
	if cfg.Feed.URL != DefaultFeedURL {
		t.Errorf("expected default feed URL, got %s", cfg.Feed.URL)
	}
	if cfg.Feed.Timeout != 15*time.Second {
		t.Errorf("expected 15s feed timeout, got %s", cfg.Feed.Timeout)
	}
	if cfg.Filter.DefaultMinMagnitude != 4.0 {
		t.Errorf("expected default min magnitude 4.0, got %v", cfg.Filter.DefaultMinMagnitude)
	}
	if cfg.RateLimit.RPS != 5 {
		t.Errorf("expected 5 rps, got %d", cfg.RateLimit.RPS)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging config: %+v", cfg.Logging)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected 10s shutdown timeout, got %s", cfg.ShutdownTimeout)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("GRPC_ENABLED", "false")
	t.Setenv("FEED_URL", "https://example.test/all_week.geojson")
	t.Setenv("FEED_TIMEOUT", "3s")
	t.Setenv("DEFAULT_MIN_MAGNITUDE", "2.5")
	t.Setenv("RATE_LIMIT_RPS", "20")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 9090 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.GRPC.Enabled {
		t.Error("expected gRPC disabled")
	}
	if cfg.Feed.URL != "https://example.test/all_week.geojson" || cfg.Feed.Timeout != 3*time.Second {
		t.Errorf("unexpected feed config: %+v", cfg.Feed)
	}
	if cfg.Filter.DefaultMinMagnitude != 2.5 {
		t.Errorf("expected 2.5, got %v", cfg.Filter.DefaultMinMagnitude)
	}
	if cfg.RateLimit.RPS != 20 {
		t.Errorf("expected 20 rps, got %d", cfg.RateLimit.RPS)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
		t.Errorf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestLoad_UnparseableEnvFallsBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")
	t.Setenv("FEED_TIMEOUT", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected fallback port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Feed.Timeout != 15*time.Second {
		t.Errorf("expected fallback timeout, got %s", cfg.Feed.Timeout)
	}
}

func TestLoad_YAMLFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quake.yml")
	body := `
server:
  port: 8181
feed:
  url: https://example.test/significant_month.geojson
  timeout: 5s
filter:
  default_min_magnitude: 5.5
logging:
  level: warn
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8181 {
		t.Errorf("expected port from file, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "localhost" {
		t.Errorf("expected default host to survive, got %s", cfg.Server.Host)
	}
	if cfg.Feed.Timeout != 5*time.Second {
		t.Errorf("expected 5s from file, got %s", cfg.Feed.Timeout)
	}
	if cfg.Filter.DefaultMinMagnitude != 5.5 {
		t.Errorf("expected 5.5 from file, got %v", cfg.Filter.DefaultMinMagnitude)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("expected env to win over file, got %s", cfg.Logging.Level)
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yml"))
	if _, err := Load(); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"port out of range", "SERVER_PORT", "70000"},
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"bad log format", "LOG_FORMAT", "xml"},
		{"magnitude above ceiling", "DEFAULT_MIN_MAGNITUDE", "10.5"},
		{"negative magnitude", "DEFAULT_MIN_MAGNITUDE", "-1"},
		{"zero rate limit", "RATE_LIMIT_RPS", "0"},
		{"negative feed timeout", "FEED_TIMEOUT", "-2s"},
		{"grpc port out of range", "GRPC_PORT", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.val)
			}
		})
	}
}
