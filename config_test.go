package main

import (
	"strings"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"cert without key", func(c *Config) { c.tlsCert = "cert.pem" }, "--tls-key"},
		{"port too low", func(c *Config) { c.port = 0 }, "invalid port"},
		{"port too high", func(c *Config) { c.port = 70000 }, "invalid port"},
		{"empty round", func(c *Config) { c.roundSize = 0 }, "invalid round size"},
		{"negative delay", func(c *Config) { c.advanceDelay = -time.Second }, "invalid advance delay"},
		{"negative timeout", func(c *Config) { c.sessionTimeout = -time.Second }, "invalid session timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.modify(cfg)

			err := cfg.validate()
			switch {
			case tt.wantErr == "" && err != nil:
				t.Fatalf("unexpected error: %v", err)
			case tt.wantErr != "" && err == nil:
				t.Fatalf("expected error containing %q", tt.wantErr)
			case tt.wantErr != "" && !strings.Contains(err.Error(), tt.wantErr):
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfigScheme(t *testing.T) {
	cfg := testConfig()
	if cfg.scheme() != "http" {
		t.Fatalf("expected http, got %s", cfg.scheme())
	}

	cfg.tlsCert, cfg.tlsKey = "cert.pem", "key.pem"
	if cfg.scheme() != "https" {
		t.Fatalf("expected https, got %s", cfg.scheme())
	}
}

func TestFlagsFromEnvironment(t *testing.T) {
	t.Setenv("QUIZBOX_ROUND_SIZE", "5")
	t.Setenv("QUIZBOX_ADVANCE_DELAY", "250ms")
	t.Setenv("QUIZBOX_PORT", "9090")
	t.Setenv("QUIZBOX_NO_COLOR", "true")

	cfg := &Config{}
	_ = newCmd(cfg)

	if cfg.roundSize != 5 {
		t.Errorf("expected round size 5, got %d", cfg.roundSize)
	}
	if cfg.advanceDelay != 250*time.Millisecond {
		t.Errorf("expected 250ms delay, got %s", cfg.advanceDelay)
	}
	if cfg.port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.port)
	}
	if !cfg.noColor {
		t.Errorf("expected no-color from the environment")
	}
}

func TestFlagDefaults(t *testing.T) {
	cfg := &Config{}
	cmd := newCmd(cfg)

	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cfg.roundSize != 10 || cfg.port != 8080 || cfg.sessionTimeout != time.Hour {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if err := cfg.validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}
