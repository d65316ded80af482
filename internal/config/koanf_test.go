// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate runs the test from an empty directory with the variables Load
// reads cleared, so neither the host environment nor a stray config file
// leaks into the result.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	for _, key := range []string{ConfigPathEnvVar, legacyBaseURLEnvVar, "BIENESTAR_API_URL", "SYNC_SETTLE_DELAY", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}
	return dir
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.BaseURL != "http://localhost:5000" {
		t.Errorf("API.BaseURL = %q, want http://localhost:5000", cfg.API.BaseURL)
	}
	if cfg.Sync.SettleDelay != 300*time.Millisecond {
		t.Errorf("Sync.SettleDelay = %v, want 300ms", cfg.Sync.SettleDelay)
	}
	if cfg.Sync.FailurePolicy != FailurePolicyRollback {
		t.Errorf("Sync.FailurePolicy = %q, want rollback", cfg.Sync.FailurePolicy)
	}
	if !cfg.Telemetry.Enabled {
		t.Error("Telemetry.Enabled should be true by default")
	}
	if cfg.Session.StorePath != "" {
		t.Errorf("Session.StorePath should be empty by default, got %q", cfg.Session.StorePath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("API.BaseURL = %q, want %q", cfg.API.BaseURL, DefaultBaseURL)
	}
}

func TestLoad_EnvVars(t *testing.T) {
	isolate(t)
	t.Setenv("BIENESTAR_API_URL", "https://api.example.org/")
	t.Setenv("SYNC_SETTLE_DELAY", "750ms")
	t.Setenv("SYNC_FAILURE_POLICY", "reconcile")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.BaseURL != "https://api.example.org" {
		t.Errorf("API.BaseURL = %q, want trailing slash trimmed", cfg.API.BaseURL)
	}
	if cfg.Sync.SettleDelay != 750*time.Millisecond {
		t.Errorf("Sync.SettleDelay = %v, want 750ms", cfg.Sync.SettleDelay)
	}
	if cfg.Sync.FailurePolicy != FailurePolicyReconcile {
		t.Errorf("Sync.FailurePolicy = %q, want reconcile", cfg.Sync.FailurePolicy)
	}
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[1] != "https://b.example" {
		t.Errorf("Server.CORSOrigins = %v, want two trimmed origins", cfg.Server.CORSOrigins)
	}
}

func TestLoad_LegacyBaseURL(t *testing.T) {
	isolate(t)
	t.Setenv(legacyBaseURLEnvVar, "http://legacy.local:5000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.BaseURL != "http://legacy.local:5000" {
		t.Errorf("API.BaseURL = %q, want VITE_API_URL value", cfg.API.BaseURL)
	}

	t.Setenv("BIENESTAR_API_URL", "http://preferred.local:5000")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.BaseURL != "http://preferred.local:5000" {
		t.Errorf("API.BaseURL = %q, want BIENESTAR_API_URL to win", cfg.API.BaseURL)
	}
}

func TestLoad_ConfigFileAndEnvOverride(t *testing.T) {
	dir := isolate(t)

	content := `
api:
  base_url: "http://file.local:5000"
sync:
  settle_delay: 1s
logging:
  level: warn
`
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.BaseURL != "http://file.local:5000" {
		t.Errorf("API.BaseURL = %q, want value from file", cfg.API.BaseURL)
	}
	if cfg.Sync.SettleDelay != time.Second {
		t.Errorf("Sync.SettleDelay = %v, want 1s", cfg.Sync.SettleDelay)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want env override debug", cfg.Logging.Level)
	}
	if cfg.Telemetry.Timeout != 5*time.Second {
		t.Errorf("Telemetry.Timeout = %v, want default 5s", cfg.Telemetry.Timeout)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	os.Unsetenv("SYNC_SETTLE_DELAY")
	t.Cleanup(func() { os.Unsetenv("SYNC_SETTLE_DELAY") })

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("SYNC_SETTLE_DELAY=2s\n"), 0o600); err != nil {
		t.Fatalf("writing .env: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Sync.SettleDelay != 2*time.Second {
		t.Errorf("Sync.SettleDelay = %v, want 2s from .env", cfg.Sync.SettleDelay)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(*Config) {}, ""},
		{"bad scheme", func(c *Config) { c.API.BaseURL = "ftp://x" }, "scheme must be http or https"},
		{"path in url", func(c *Config) { c.API.BaseURL = "http://x/api" }, "remove path"},
		{"query in url", func(c *Config) { c.API.BaseURL = "http://x?a=1" }, "query parameters"},
		{"unknown policy", func(c *Config) { c.Sync.FailurePolicy = "retry" }, "SYNC_FAILURE_POLICY"},
		{"negative delay", func(c *Config) { c.Sync.SettleDelay = -time.Second }, "SYNC_SETTLE_DELAY"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
		{"burst without budget", func(c *Config) { c.API.RateBurst = 0 }, "API_RATE_BURST"},
		{"breaker ratio", func(c *Config) { c.API.Breaker.FailureRatio = 1.5 }, "failure_ratio"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
