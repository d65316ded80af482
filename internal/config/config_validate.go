// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the configuration for values the client cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if err := validateHTTPURL(c.API.BaseURL, "BIENESTAR_API_URL"); err != nil {
		errs = append(errs, err)
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("API_TIMEOUT must be positive, got %s", c.API.Timeout))
	}
	if c.API.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("API_RATE_LIMIT must not be negative, got %g", c.API.RateLimit))
	}
	if c.API.RateLimit > 0 && c.API.RateBurst < 1 {
		errs = append(errs, fmt.Errorf("API_RATE_BURST must be at least 1 when rate limiting, got %d", c.API.RateBurst))
	}
	if b := c.API.Breaker; b.Enabled && (b.FailureRatio <= 0 || b.FailureRatio > 1) {
		errs = append(errs, fmt.Errorf("api.breaker.failure_ratio must be in (0, 1], got %g", b.FailureRatio))
	}

	if c.Sync.SettleDelay < 0 {
		errs = append(errs, fmt.Errorf("SYNC_SETTLE_DELAY must not be negative, got %s", c.Sync.SettleDelay))
	}
	switch c.Sync.FailurePolicy {
	case FailurePolicyRollback, FailurePolicyReconcile:
	default:
		errs = append(errs, fmt.Errorf("SYNC_FAILURE_POLICY must be %q or %q, got %q",
			FailurePolicyRollback, FailurePolicyReconcile, c.Sync.FailurePolicy))
	}

	if c.Telemetry.Enabled && c.Telemetry.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("TELEMETRY_TIMEOUT must be positive, got %s", c.Telemetry.Timeout))
	}

	if c.Server.RefreshInterval <= 0 {
		errs = append(errs, fmt.Errorf("STATS_REFRESH_INTERVAL must be positive, got %s", c.Server.RefreshInterval))
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format))
	}

	return errors.Join(errs...)
}

// validateHTTPURL checks scheme (http/https), host, and that the URL carries
// no path or query.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if parsedURL.Path != "" && parsedURL.Path != "/" {
		return fmt.Errorf("%s should be base URL only, remove path: %s", fieldName, parsedURL.Path)
	}
	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}
	return nil
}
