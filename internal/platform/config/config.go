// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	// Port the HTTP server listens on.
	Port string

	// StorageBackend selects the repository adapters: "memory" or "postgres".
	StorageBackend string
	// DatabaseURL is required when StorageBackend is "postgres".
	DatabaseURL string

	// ExpirySweepSchedule is a cron expression for the subscription expiry
	// sweep. Empty disables the sweep; reads stay correct without it.
	ExpirySweepSchedule string
}

func LoadFromEnv() (Config, error) {
	cfg := Config{
		Port:                getenv("PORT", "8080"),
		StorageBackend:      getenv("STORAGE_BACKEND", StorageMemory),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		ExpirySweepSchedule: getenv("EXPIRY_SWEEP_SCHEDULE", "@hourly"),
	}

	switch cfg.StorageBackend {
	case StorageMemory:
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("DATABASE_URL is required when STORAGE_BACKEND=postgres")
		}
	default:
		return Config{}, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}
	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
