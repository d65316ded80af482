// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package sync

import (
	"context"
	"sync"

	"github.com/tomtom215/bienestar/internal/metrics"
)

// Scope guards the lifetime of a view. Requests started inside a scope are
// not aborted when it closes; their results are simply dropped.
type Scope struct {
	view string

	mu     sync.Mutex
	closed bool
	ctx    context.Context
	cancel context.CancelFunc
}

// NewScope opens a scope for the named view. The name labels the
// discarded-results metric.
func NewScope(view string) *Scope {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scope{view: view, ctx: ctx, cancel: cancel}
}

// View returns the scope's view name.
func (s *Scope) View() string {
	return s.view
}

// Context is cancelled when the scope closes. It bounds waits that only
// make sense while the view is alive, such as the settling delay.
func (s *Scope) Context() context.Context {
	return s.ctx
}

// Close tears the scope down. Once Close returns no Apply callback is
// running and none will run again. Close is idempotent.
func (s *Scope) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.cancel()
}

// Closed reports whether Close has been called.
func (s *Scope) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Apply runs fn if the scope is still open and reports whether it ran.
// A late result arriving after Close is counted and dropped.
func (s *Scope) Apply(fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		metrics.StaleResultsDiscarded.WithLabelValues(s.view).Inc()
		return false
	}
	fn()
	return true
}
