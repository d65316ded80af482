// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package supervisor

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/tomtom215/bienestar/internal/api"
	"github.com/tomtom215/bienestar/internal/config"
	"github.com/tomtom215/bienestar/internal/supervisor/services"
)

// ErrNilHandler is returned by NewServeTree without a dashboard handler.
var ErrNilHandler = errors.New("dashboard handler cannot be nil")

// NewServeTree builds the serve-mode tree: the dashboard refresher in the
// refresh layer and the HTTP server in the API layer.
func NewServeTree(logger *slog.Logger, cfg *config.ServerConfig, handler *api.Handler) (*SupervisorTree, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}

	treeCfg := DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.ShutdownTimeout
	tree, err := NewSupervisorTree(logger, treeCfg)
	if err != nil {
		return nil, err
	}

	tree.AddRefreshService(services.NewRefreshService("dashboard-refresher", cfg.RefreshInterval,
		func(ctx context.Context) error {
			_, err := handler.RefreshDashboard(ctx)
			return err
		}))

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewRouter(handler, api.NewChiMiddleware(api.MiddlewareConfigFromServer(cfg))),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.ShutdownTimeout))

	return tree, nil
}
