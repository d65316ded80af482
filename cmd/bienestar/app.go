// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tomtom215/bienestar/internal/auth"
	"github.com/tomtom215/bienestar/internal/authz"
	"github.com/tomtom215/bienestar/internal/backend"
	"github.com/tomtom215/bienestar/internal/config"
	"github.com/tomtom215/bienestar/internal/gateway"
	"github.com/tomtom215/bienestar/internal/logging"
	"github.com/tomtom215/bienestar/internal/telemetry"
	"github.com/tomtom215/bienestar/internal/validation"
)

const msgSignInRequired = "Inicia sesión para acceder a esta sección."

// app holds the components shared by every command.
type app struct {
	cfg      *config.Config
	stdin    io.Reader
	out      io.Writer
	store    auth.Store
	session  *auth.Context
	gw       *gateway.Gateway
	client   *backend.Client
	authz    *authz.Service
	reporter *telemetry.Reporter
	now      func() time.Time
}

func newApp(ctx context.Context, stdin io.Reader, stdout io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logging.Init(logging.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Caller:     cfg.Logging.Caller,
		Timestamp:  true,
		Output:     os.Stderr,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})

	if cfg.Session.StorePath == "" {
		cfg.Session.StorePath = defaultSessionPath()
	}
	store, err := auth.NewStore(&cfg.Session)
	if err != nil {
		return nil, fmt.Errorf("no se pudo abrir la sesión guardada: %w", err)
	}
	session := auth.NewContext(ctx, store)

	enforcer, err := authz.NewEnforcer(nil)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	gw := gateway.New(&cfg.API,
		gateway.WithTokenSource(session),
		gateway.WithUserAgent(cfg.Telemetry.UserAgent),
	)
	client := backend.New(gw)

	logging.Debug().
		Str("api", cfg.API.BaseURL).
		Bool("signed_in", session.Authenticated()).
		Msg("Client ready")

	return &app{
		cfg:      cfg,
		stdin:    stdin,
		out:      stdout,
		store:    store,
		session:  session,
		gw:       gw,
		client:   client,
		authz:    authz.NewService(enforcer),
		reporter: telemetry.NewReporter(client, &cfg.Telemetry),
		now:      time.Now,
	}, nil
}

// Close waits for pending telemetry and releases the session store.
func (a *app) Close() {
	a.reporter.Wait()
	if err := a.store.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close session store")
	}
	if err := logging.Close(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

func (a *app) authorize(view string) error {
	if view == "" {
		return nil
	}
	return a.authz.Require(a.session, view)
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// defaultSessionPath is the badger directory under the user's config
// directory, or "" to keep the session in memory when there is none.
func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "bienestar", "session")
}

// errorMessage is the text printed for a failed command.
func errorMessage(err error, fallback string) string {
	var (
		qerr *validation.QuestionnaireError
		verr *validation.RequestValidationError
		serr *gateway.ServerError
		nerr *gateway.NetworkError
	)
	switch {
	case errors.Is(err, authz.ErrNotAuthorized):
		return msgSignInRequired
	case errors.As(err, &qerr):
		return strings.Join(qerr.Violations, "\n")
	case errors.As(err, &verr):
		return strings.Join(verr.Messages(), "\n")
	case errors.As(err, &serr), errors.As(err, &nerr), errors.Is(err, gateway.ErrUnavailable):
		return gateway.UserMessage(err, fallback)
	default:
		return err.Error()
	}
}
