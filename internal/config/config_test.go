package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"CALC_HTTP_ADDR", "CALC_SESSION_TTL", "CALC_SESSION_CLEANUP", "CALC_SHUTDOWN_TIMEOUT", "CALC_OTLP_LOGS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if cfg != Default() {
		t.Fatalf("expected defaults %+v, got %+v", Default(), cfg)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CALC_HTTP_ADDR", "127.0.0.1:9090")
	t.Setenv("CALC_SESSION_TTL", "10m")
	t.Setenv("CALC_SESSION_CLEANUP", "30s")
	t.Setenv("CALC_SHUTDOWN_TIMEOUT", "2s")
	t.Setenv("CALC_OTLP_LOGS", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	want := Config{
		HTTPAddr:        "127.0.0.1:9090",
		SessionTTL:      10 * time.Minute,
		SessionCleanup:  30 * time.Second,
		ShutdownTimeout: 2 * time.Second,
		OTLPLogs:        true,
	}
	if cfg != want {
		t.Fatalf("expected %+v, got %+v", want, cfg)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{key: "CALC_SESSION_TTL", value: "soon"},
		{key: "CALC_SESSION_CLEANUP", value: "-1s"},
		{key: "CALC_OTLP_LOGS", value: "maybe"},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			if err == nil {
				t.Fatalf("expected error for %s=%q", tc.key, tc.value)
			}
			if !strings.Contains(err.Error(), tc.key) {
				t.Fatalf("expected error to name %s, got %v", tc.key, err)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if err := LoadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
			t.Fatalf("expected missing .env to be ignored, got %v", err)
		}
	})

	t.Run("does not override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		content := "CALC_HTTP_ADDR=:7000\nCALC_DOTENV_ONLY=from-file\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("writing .env: %v", err)
		}

		t.Setenv("CALC_HTTP_ADDR", ":6000")
		t.Setenv("CALC_DOTENV_ONLY", "")
		os.Unsetenv("CALC_DOTENV_ONLY")

		if err := LoadDotEnv(path); err != nil {
			t.Fatalf("loading .env: %v", err)
		}

		if got := os.Getenv("CALC_HTTP_ADDR"); got != ":6000" {
			t.Fatalf("expected existing value to win, got %q", got)
		}
		if got := os.Getenv("CALC_DOTENV_ONLY"); got != "from-file" {
			t.Fatalf("expected value from .env, got %q", got)
		}
	})
}
