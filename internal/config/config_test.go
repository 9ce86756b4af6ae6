package config

import (
	"os"
	"testing"
)

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 0},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_InvalidSessionStore(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Sessions: SessionsConfig{Store: "postgres"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown session store")
	}

	expected := `sessions.store must be "memory" or "redis", got "postgres"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_RedisStoreRequiresAddrs(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Sessions: SessionsConfig{Store: "redis"},
	}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing redis addrs")
	}

	cfg.Sessions.Addrs = []string{"localhost:6379"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Dataset.Path != "credit_cards_dataset.csv" {
		t.Errorf("unexpected dataset path %q", cfg.Dataset.Path)
	}
	if cfg.Dataset.UploadsDir != "uploads" {
		t.Errorf("unexpected uploads dir %q", cfg.Dataset.UploadsDir)
	}
	if cfg.Retrieval.TopK != 10 {
		t.Errorf("expected TopK=10, got %d", cfg.Retrieval.TopK)
	}
	if cfg.Sessions.Store != "memory" {
		t.Errorf("expected memory store, got %q", cfg.Sessions.Store)
	}
	if cfg.Sessions.TTLSec != 86400 {
		t.Errorf("expected TTLSec=86400, got %d", cfg.Sessions.TTLSec)
	}
	if cfg.WebSearch.MaxResults != 6 {
		t.Errorf("expected MaxResults=6, got %d", cfg.WebSearch.MaxResults)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{
		Retrieval: RetrievalConfig{TopK: 25},
		Sessions:  SessionsConfig{Store: "redis"},
	}
	cfg.ApplyDefaults()

	if cfg.Retrieval.TopK != 25 {
		t.Errorf("TopK overwritten: %d", cfg.Retrieval.TopK)
	}
	if cfg.Sessions.Store != "redis" {
		t.Errorf("store overwritten: %q", cfg.Sessions.Store)
	}
}

func TestExpandEnvVars(t *testing.T) {
	os.Setenv("CARDWISE_TEST_KEY", "secret")
	defer os.Unsetenv("CARDWISE_TEST_KEY")

	in := []byte("api_key: ${CARDWISE_TEST_KEY}\nmodel: ${CARDWISE_TEST_MODEL:-gpt-4o-mini}\n")
	out := string(expandEnvVars(in))

	if out != "api_key: secret\nmodel: gpt-4o-mini\n" {
		t.Errorf("unexpected expansion: %q", out)
	}
}

func TestGetEnv(t *testing.T) {
	os.Unsetenv("ENV")
	if got := GetEnv(); got != "local" {
		t.Errorf("default env = %q", got)
	}

	os.Setenv("ENV", "prod")
	defer os.Unsetenv("ENV")
	if got := GetEnv(); got != "prod" {
		t.Errorf("env = %q", got)
	}
}
