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
	"os"
	"testing"
	"time"

	"github.com/tomtom215/bienestar/internal/api"
	"github.com/tomtom215/bienestar/internal/config"
	"github.com/tomtom215/bienestar/internal/testinfra"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestNewSupervisorTree_Defaults(t *testing.T) {
	tree, err := NewSupervisorTree(quietLogger(), TreeConfig{})
	if err != nil {
		t.Fatalf("NewSupervisorTree() error = %v", err)
	}
	if tree.Root() == nil {
		t.Fatal("root supervisor is nil")
	}
	if tree.config != DefaultTreeConfig() {
		t.Errorf("config = %+v, want defaults", tree.config)
	}

	tree, _ = NewSupervisorTree(quietLogger(), TreeConfig{FailureBackoff: time.Second})
	if tree.config.FailureBackoff != time.Second || tree.config.FailureThreshold != 5 {
		t.Errorf("partial config = %+v", tree.config)
	}
}

func TestSupervisorTree_StartsAndRestarts(t *testing.T) {
	tree, _ := NewSupervisorTree(quietLogger(), TreeConfig{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})

	flaky := &stubService{name: "flaky", failures: 2}
	stable := &stubService{name: "stable"}
	tree.AddRefreshService(flaky)
	tree.AddAPIService(stable)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	waitFor(t, func() bool { return flaky.starts.Load() >= 3 })
	if stable.starts.Load() != 1 {
		t.Errorf("stable service starts = %d, want 1", stable.starts.Load())
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("tree did not stop")
	}
}

func TestSupervisorTree_RemoveRefreshService(t *testing.T) {
	tree, _ := NewSupervisorTree(quietLogger(), TreeConfig{ShutdownTimeout: time.Second})
	svc := &stubService{name: "refresher"}
	token := tree.AddRefreshService(svc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tree.ServeBackground(ctx)
	waitFor(t, func() bool { return svc.starts.Load() == 1 })

	if err := tree.RemoveRefreshService(token); err != nil {
		t.Errorf("RemoveRefreshService() error = %v", err)
	}
}

func TestNewServeTree(t *testing.T) {
	if _, err := NewServeTree(quietLogger(), &config.DefaultConfig().Server, nil); !errors.Is(err, ErrNilHandler) {
		t.Fatalf("nil handler error = %v", err)
	}

	fake := testinfra.NewFakeAPI(t)
	fake.SetStats(`{"total_registros": 3}`)
	handler := api.NewHandler(testinfra.NewClient(t, fake), time.Minute, nil)
	t.Cleanup(handler.Close)

	cfg := config.DefaultConfig().Server
	cfg.Addr = "127.0.0.1:0"
	cfg.RefreshInterval = time.Hour
	cfg.ShutdownTimeout = time.Second

	tree, err := NewServeTree(quietLogger(), &cfg, handler)
	if err != nil {
		t.Fatalf("NewServeTree() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	// The refresher runs once at start.
	waitFor(t, func() bool { return fake.Count(http.MethodGet, "/api/stats") == 1 })

	cancel()
	select {
	case <-errCh:
	case <-time.After(3 * time.Second):
		t.Fatal("serve tree did not stop")
	}
}
