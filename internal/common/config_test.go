package common

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Server.MaxUploadBytes != 25<<20 {
		t.Errorf("MaxUploadBytes = %d, want 25 MiB", cfg.Server.MaxUploadBytes)
	}
	if cfg.Extract.MaxPromptRunes != 120000 {
		t.Errorf("MaxPromptRunes = %d, want 120000", cfg.Extract.MaxPromptRunes)
	}
	if cfg.LLM.Model != "gemini-2.0-flash" {
		t.Errorf("Model = %q, want gemini-2.0-flash", cfg.LLM.Model)
	}
	if cfg.LLM.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want 60s", cfg.LLM.Timeout)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("MAX_PROMPT_RUNES", "5000")
	t.Setenv("GEMINI_TIMEOUT", "15s")
	t.Setenv("DB_MAX_CONNS", "not-a-number")

	cfg := LoadConfig()
	if cfg.Server.Addr != ":9999" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.LLM.Model != "gemini-2.5-pro" {
		t.Errorf("Model = %q", cfg.LLM.Model)
	}
	if cfg.Extract.MaxPromptRunes != 5000 {
		t.Errorf("MaxPromptRunes = %d", cfg.Extract.MaxPromptRunes)
	}
	if cfg.LLM.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v", cfg.LLM.Timeout)
	}
	if cfg.Database.MaxConns != 20 {
		t.Errorf("MaxConns = %d; unparseable values fall back to the default", cfg.Database.MaxConns)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Addr = ":8080"

	if err := cfg.Validate(); err == nil {
		t.Fatal("empty DSN must fail validation")
	}
	cfg.Database.DSN = "postgres://localhost/invoices"
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty API key must fail validation")
	}
	cfg.LLM.APIKey = "key"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}
