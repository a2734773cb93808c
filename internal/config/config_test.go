package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("expected default HTTP addr :8080, got %q", cfg.HTTPAddr)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("expected default session TTL 24h, got %v", cfg.SessionTTL)
	}
	if cfg.SignInMaxPerMinute != 10 {
		t.Errorf("expected default sign-in limit 10, got %d", cfg.SignInMaxPerMinute)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("ADMIN_EMAILS", "admin@example.com, boss@example.com ,")
	t.Setenv("SIGNIN_MAX_PER_MINUTE", "3")

	cfg := Load()

	if cfg.HTTPAddr != ":9999" {
		t.Errorf("expected :9999, got %q", cfg.HTTPAddr)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("expected 30m, got %v", cfg.SessionTTL)
	}
	if len(cfg.AdminEmails) != 2 || cfg.AdminEmails[0] != "admin@example.com" || cfg.AdminEmails[1] != "boss@example.com" {
		t.Errorf("unexpected admin emails: %v", cfg.AdminEmails)
	}
	if cfg.SignInMaxPerMinute != 3 {
		t.Errorf("expected 3, got %d", cfg.SignInMaxPerMinute)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SESSION_TTL", "not-a-duration")
	t.Setenv("SIGNIN_MAX_PER_MINUTE", "-5")

	cfg := Load()

	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("expected fallback 24h, got %v", cfg.SessionTTL)
	}
	if cfg.SignInMaxPerMinute != 10 {
		t.Errorf("expected fallback 10, got %d", cfg.SignInMaxPerMinute)
	}
}
