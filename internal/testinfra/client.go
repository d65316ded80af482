// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package testinfra

import (
	"testing"
	"time"

	"github.com/tomtom215/bienestar/internal/backend"
	"github.com/tomtom215/bienestar/internal/config"
	"github.com/tomtom215/bienestar/internal/gateway"
)

// APIConfig returns an API configuration pointing at api with the breaker
// and rate limiter disabled.
func APIConfig(api *FakeAPI) *config.APIConfig {
	return &config.APIConfig{
		BaseURL: api.URL(),
		Timeout: 5 * time.Second,
	}
}

// NewClient returns a backend client talking to api.
func NewClient(t *testing.T, api *FakeAPI, opts ...gateway.Option) *backend.Client {
	t.Helper()
	return backend.New(gateway.New(APIConfig(api), opts...))
}
