// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package main

import (
	"context"
	"errors"

	"github.com/tomtom215/bienestar/internal/api"
	"github.com/tomtom215/bienestar/internal/logging"
	"github.com/tomtom215/bienestar/internal/supervisor"
)

// runServe serves the dashboard API until the process is interrupted.
func runServe(ctx context.Context, a *app, _ []string) error {
	handler := api.NewHandlerForGateway(a.gw, a.cfg.Server.CacheTTL)
	defer handler.Close()

	tree, err := supervisor.NewServeTree(logging.NewSlogLogger(), &a.cfg.Server, handler)
	if err != nil {
		return err
	}

	logging.Info().
		Str("addr", a.cfg.Server.Addr).
		Str("api", a.cfg.API.BaseURL).
		Dur("refresh_interval", a.cfg.Server.RefreshInterval).
		Msg("Serving dashboard API")

	err = tree.Serve(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		logging.Info().Msg("Dashboard API stopped")
		return nil
	}
	return err
}
