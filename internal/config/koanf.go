// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is not set.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/bienestar/config.yaml",
}

const (
	// ConfigPathEnvVar names an explicit YAML config file.
	ConfigPathEnvVar = "CONFIG_PATH"

	// DotEnvFile is loaded into the process environment before the env layer.
	DotEnvFile = ".env"

	// legacyBaseURLEnvVar is the variable name used by the browser build.
	legacyBaseURLEnvVar = "VITE_API_URL"
)

// Load builds the configuration: defaults, then the YAML file, then .env,
// then environment variables. The result is validated.
func Load() (*Config, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// VITE_API_URL is consulted only when BIENESTAR_API_URL is absent.
	if legacy := os.Getenv(legacyBaseURLEnvVar); legacy != "" && os.Getenv("BIENESTAR_API_URL") == "" {
		if err := k.Set("api.base_url", legacy); err != nil {
			return nil, fmt.Errorf("failed to set api.base_url: %w", err)
		}
	}

	if err := k.Load(env.ProviderWithValue("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// loadDotEnv reads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields splits comma-separated env values for slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

var envMappings = map[string]string{
	"bienestar_api_url":       "api.base_url",
	"api_timeout":             "api.timeout",
	"api_rate_limit":          "api.rate_limit",
	"api_rate_burst":          "api.rate_burst",
	"api_breaker_enabled":     "api.breaker.enabled",
	"api_breaker_timeout":     "api.breaker.timeout",
	"sync_settle_delay":       "sync.settle_delay",
	"sync_failure_policy":     "sync.failure_policy",
	"session_store_path":      "session.store_path",
	"session_encryption_key":  "session.encryption_key",
	"telemetry_enabled":       "telemetry.enabled",
	"telemetry_timeout":       "telemetry.timeout",
	"telemetry_viewport_w":    "telemetry.viewport_width",
	"telemetry_viewport_h":    "telemetry.viewport_height",
	"server_addr":             "server.addr",
	"cors_origins":            "server.cors_origins",
	"rate_limit_reqs":         "server.rate_limit_reqs",
	"rate_limit_window":       "server.rate_limit_window",
	"stats_refresh_interval":  "server.refresh_interval",
	"stats_cache_ttl":         "server.cache_ttl",
	"server_shutdown_timeout": "server.shutdown_timeout",
	"log_level":               "logging.level",
	"log_format":              "logging.format",
	"log_caller":              "logging.caller",
	"log_file":                "logging.file",
}

// envTransformFunc maps environment variable names to koanf paths.
// Unmapped and empty variables return "" and are skipped.
//
//   - BIENESTAR_API_URL -> api.base_url
//   - SYNC_SETTLE_DELAY -> sync.settle_delay
//   - LOG_LEVEL -> logging.level
func envTransformFunc(key, value string) (string, interface{}) {
	if value == "" {
		return "", nil
	}
	return envMappings[strings.ToLower(key)], value
}
