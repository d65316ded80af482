// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package services

import (
	"context"
	"time"

	"github.com/tomtom215/bienestar/internal/logging"
)

// RefreshFunc performs one refresh.
type RefreshFunc func(ctx context.Context) error

// RefreshService calls a RefreshFunc once at start and then on every tick
// of its interval. A failed refresh is logged and retried on the next tick;
// only context cancellation ends Serve.
type RefreshService struct {
	name     string
	interval time.Duration
	refresh  RefreshFunc
	timeout  time.Duration
}

// NewRefreshService creates a refresher named name. A non-positive
// interval means 5 minutes. Each call gets at most interval to complete.
func NewRefreshService(name string, interval time.Duration, refresh RefreshFunc) *RefreshService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &RefreshService{
		name:     name,
		interval: interval,
		refresh:  refresh,
		timeout:  interval,
	}
}

// Serve implements suture.Service.
func (s *RefreshService) Serve(ctx context.Context) error {
	logging.Info().Str("service", s.name).Dur("interval", s.interval).Msg("Refresher started")

	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logging.Info().Str("service", s.name).Msg("Refresher stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *RefreshService) runOnce(ctx context.Context) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.refresh(callCtx); err != nil {
		if ctx.Err() != nil {
			return
		}
		logging.Warn().Err(err).Str("service", s.name).Msg("Refresh failed")
		return
	}
	logging.Debug().Str("service", s.name).Dur("took", time.Since(start)).Msg("Refresh complete")
}

// String names the service in supervisor events.
func (s *RefreshService) String() string {
	return s.name
}
