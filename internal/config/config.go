package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the service settings read from the environment.
type Config struct {
	HTTPAddr        string
	SessionTTL      time.Duration
	SessionCleanup  time.Duration
	ShutdownTimeout time.Duration
	OTLPLogs        bool
}

// Default returns the settings used when no variables are set.
func Default() Config {
	return Config{
		HTTPAddr:        ":8080",
		SessionTTL:      30 * time.Minute,
		SessionCleanup:  5 * time.Minute,
		ShutdownTimeout: 5 * time.Second,
	}
}

// LoadDotEnv loads environment variables from .env when present.
// Existing process environment variables are not overridden.
func LoadDotEnv(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load .env: %w", err)
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	cfg := Default()

	if v := os.Getenv("CALC_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}

	var err error
	if cfg.SessionTTL, err = durationEnv("CALC_SESSION_TTL", cfg.SessionTTL); err != nil {
		return Config{}, err
	}
	if cfg.SessionCleanup, err = durationEnv("CALC_SESSION_CLEANUP", cfg.SessionCleanup); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = durationEnv("CALC_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout); err != nil {
		return Config{}, err
	}
	if cfg.OTLPLogs, err = boolEnv("CALC_OTLP_LOGS", cfg.OTLPLogs); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("parsing %s: duration must be positive, got %s", key, v)
	}
	return d, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("parsing %s: %w", key, err)
	}
	return b, nil
}
