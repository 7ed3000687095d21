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
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.HorizonDays != 180 {
		t.Errorf("HorizonDays = %d, want 180", cfg.HorizonDays)
	}
	if cfg.PropertySource != SourceFile || cfg.BookedSource != SourceStatic || cfg.SessionStore != StoreMemory {
		t.Errorf("sources = %s/%s/%s", cfg.PropertySource, cfg.BookedSource, cfg.SessionStore)
	}
	if cfg.PropertyTZ != time.UTC {
		t.Errorf("PropertyTZ = %v, want UTC", cfg.PropertyTZ)
	}
	if len(cfg.RetryBackoff) != 3 || cfg.RetryBackoff[1] != 5*time.Second {
		t.Errorf("RetryBackoff = %v", cfg.RetryBackoff)
	}
	if cfg.OutboxClaimLease != 2*time.Minute {
		t.Errorf("OutboxClaimLease = %v, want 2m", cfg.OutboxClaimLease)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HORIZON_DAYS", "90")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("SESSION_STORE", "REDIS")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("S3_USE_SSL", "yes")
	t.Setenv("OUTBOX_CLAIM_LEASE", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HorizonDays != 90 {
		t.Errorf("HorizonDays = %d, want 90", cfg.HorizonDays)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "k2:9092" {
		t.Errorf("KafkaBrokers = %v", cfg.KafkaBrokers)
	}
	if cfg.SessionStore != StoreRedis || cfg.SessionTTL != 2*time.Hour || !cfg.S3UseSSL || cfg.OutboxClaimLease != 30*time.Second {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "horizon not a number", key: "HORIZON_DAYS", val: "soon"},
		{name: "non-positive horizon", key: "HORIZON_DAYS", val: "0"},
		{name: "unknown timezone", key: "PROPERTY_TZ", val: "Mars/Olympus"},
		{name: "mongo without uri", key: "BOOKED_SOURCE", val: "mongo"},
		{name: "unknown session store", key: "SESSION_STORE", val: "etcd"},
		{name: "bad backoff", key: "RETRY_BACKOFF", val: "1s,later"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Fatalf("Load() with %s=%s: expected error", tt.key, tt.val)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("CURRENCY=eur\nHTTP_ADDR=:9999\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HTTP_ADDR", ":7000")
	t.Setenv("CURRENCY", "")
	os.Unsetenv("CURRENCY")

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Currency != "EUR" {
		t.Errorf("Currency = %q, want EUR from .env", cfg.Currency)
	}
	if cfg.HTTPAddr != ":7000" {
		t.Errorf("HTTPAddr = %q, existing env must win", cfg.HTTPAddr)
	}
}
