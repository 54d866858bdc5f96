package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if cfg.Analysis.MinChars != 50 || cfg.Analysis.MinWords != 50 {
		t.Errorf("analysis gate = %d chars / %d words, want 50 / 50", cfg.Analysis.MinChars, cfg.Analysis.MinWords)
	}
	if cfg.Analysis.SampleWindow != 180 {
		t.Errorf("SampleWindow = %d, want 180", cfg.Analysis.SampleWindow)
	}
	if cfg.Analysis.ExcerptLength != 380 {
		t.Errorf("ExcerptLength = %d, want 380", cfg.Analysis.ExcerptLength)
	}
	if cfg.Redis.Enabled || cfg.Kafka.Enabled || cfg.Postgres.Enabled {
		t.Error("external backends should be disabled by default")
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  port: 9999
  requestTimeout: 3s
analysis:
  sampleWindow: 0
redis:
  enabled: true
  cacheTTL: 30s
kafka:
  enabled: true
  brokers: ["broker-1:9092", "broker-2:9092"]
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q): %v", path, err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Server.RequestTimeout != 3*time.Second {
		t.Errorf("Server.RequestTimeout = %v, want 3s", cfg.Server.RequestTimeout)
	}
	if cfg.Analysis.SampleWindow != 0 {
		t.Errorf("SampleWindow = %d, want 0", cfg.Analysis.SampleWindow)
	}
	if cfg.Analysis.MinChars != 50 {
		t.Errorf("MinChars = %d, want default 50", cfg.Analysis.MinChars)
	}
	if !cfg.Redis.Enabled || cfg.Redis.CacheTTL != 30*time.Second {
		t.Errorf("Redis = %+v, want enabled with 30s TTL", cfg.Redis)
	}
	if len(cfg.Kafka.Brokers) != 2 {
		t.Errorf("Kafka.Brokers = %v, want 2 brokers", cfg.Kafka.Brokers)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ELA_SERVER_PORT", "7070")
	t.Setenv("ELA_REDIS_ENABLED", "true")
	t.Setenv("ELA_REDIS_ADDR", "cache:6380")
	t.Setenv("ELA_KAFKA_BROKERS", "a:1,b:2")
	t.Setenv("ELA_CORS_ALLOWED_ORIGINS", "https://example.org")
	t.Setenv("ELA_ANALYSIS_MIN_CHARS", "not-a-number")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if !cfg.Redis.Enabled || cfg.Redis.Addr != "cache:6380" {
		t.Errorf("Redis = %+v, want enabled at cache:6380", cfg.Redis)
	}
	if strings.Join(cfg.Kafka.Brokers, ",") != "a:1,b:2" {
		t.Errorf("Kafka.Brokers = %v", cfg.Kafka.Brokers)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "https://example.org" {
		t.Errorf("CORS.AllowedOrigins = %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Analysis.MinChars != 50 {
		t.Errorf("malformed override should be ignored, MinChars = %d", cfg.Analysis.MinChars)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load of a missing file should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load of malformed YAML should fail")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Server.Port = 0
	cfg.Analysis.SampleWindow = -1
	cfg.RateLimit.Burst = 0
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate should reject the config")
	}
	for _, want := range []string{"server.port", "sampleWindow", "rateLimit"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate error %q does not mention %q", err, want)
		}
	}
}

func TestPostgresDSN(t *testing.T) {
	p := Default().Postgres
	want := "host=localhost port=5432 user=languageanalysis password=localdev dbname=languageanalysis sslmode=disable"
	if got := p.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
