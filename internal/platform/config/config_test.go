package config

import "testing"

func TestLoadFromEnvDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("EXPIRY_SWEEP_SCHEDULE", "")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}
	if cfg.Port != "8080" || cfg.StorageBackend != StorageMemory {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.ExpirySweepSchedule != "@hourly" {
		t.Fatalf("schedule=%q", cfg.ExpirySweepSchedule)
	}
}

func TestLoadFromEnvPostgresRequiresDSN(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "")

	if _, err := LoadFromEnv(); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}

	t.Setenv("DATABASE_URL", "postgres://localhost/gym")
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}
	if cfg.StorageBackend != StoragePostgres {
		t.Fatalf("backend=%q", cfg.StorageBackend)
	}
}

func TestLoadFromEnvRejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "cassandra")
	if _, err := LoadFromEnv(); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
