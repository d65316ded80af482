// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

// Package config loads Bienestar configuration from defaults, an optional
// YAML file, a .env file and environment variables, in that order of
// increasing precedence.
package config

import "time"

// Config is the complete client configuration.
type Config struct {
	API       APIConfig       `koanf:"api"`
	Sync      SyncConfig      `koanf:"sync"`
	Session   SessionConfig   `koanf:"session"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// APIConfig describes the remote questionnaire API.
type APIConfig struct {
	// BaseURL is resolved once at startup. BIENESTAR_API_URL wins over
	// VITE_API_URL; both fall back to the local development address.
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`

	// RateLimit is the outbound request budget per second; 0 disables pacing.
	RateLimit float64 `koanf:"rate_limit"`
	RateBurst int     `koanf:"rate_burst"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig tunes the gateway circuit breaker.
type BreakerConfig struct {
	Enabled      bool          `koanf:"enabled"`
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// Failure policies for optimistic mutations.
const (
	FailurePolicyRollback  = "rollback"
	FailurePolicyReconcile = "reconcile"
)

// SyncConfig controls optimistic mutations.
type SyncConfig struct {
	// SettleDelay is waited after a successful write before the
	// reconciling re-fetch.
	SettleDelay time.Duration `koanf:"settle_delay"`

	// FailurePolicy is "rollback" or "reconcile".
	FailurePolicy string `koanf:"failure_policy"`
}

// SessionConfig controls the locally persisted credentials.
type SessionConfig struct {
	// StorePath is the badger directory; empty keeps credentials in memory.
	StorePath string `koanf:"store_path"`

	// EncryptionKey, when set, encrypts the stored token at rest.
	EncryptionKey string `koanf:"encryption_key"`
}

// TelemetryConfig controls questionnaire usage events.
type TelemetryConfig struct {
	Enabled        bool          `koanf:"enabled"`
	Timeout        time.Duration `koanf:"timeout"`
	ViewportWidth  int           `koanf:"viewport_width"`
	ViewportHeight int           `koanf:"viewport_height"`
	UserAgent      string        `koanf:"user_agent"`
}

// ServerConfig controls the optional dashboard server.
type ServerConfig struct {
	Addr            string        `koanf:"addr"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	RefreshInterval time.Duration `koanf:"refresh_interval"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig mirrors logging.Config for file-based configuration.
type LoggingConfig struct {
	Level      string `koanf:"level"`
	Format     string `koanf:"format"`
	Caller     bool   `koanf:"caller"`
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAgeDays int    `koanf:"max_age_days"`
}

// DefaultBaseURL is the local development address of the API.
const DefaultBaseURL = "http://localhost:5000"

// DefaultConfig returns the built-in configuration, the lowest layer of Load.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   DefaultBaseURL,
			Timeout:   30 * time.Second,
			RateLimit: 10,
			RateBurst: 5,
			Breaker: BreakerConfig{
				Enabled:      true,
				MaxRequests:  3,
				Interval:     time.Minute,
				Timeout:      30 * time.Second,
				MinRequests:  10,
				FailureRatio: 0.6,
			},
		},
		Sync: SyncConfig{
			SettleDelay:   300 * time.Millisecond,
			FailurePolicy: FailurePolicyRollback,
		},
		Telemetry: TelemetryConfig{
			Enabled:        true,
			Timeout:        5 * time.Second,
			ViewportWidth:  1280,
			ViewportHeight: 800,
			UserAgent:      "bienestar-cli",
		},
		Server: ServerConfig{
			Addr:            "127.0.0.1:8080",
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   60,
			RateLimitWindow: time.Minute,
			RefreshInterval: 5 * time.Minute,
			CacheTTL:        time.Minute,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
	}
}
