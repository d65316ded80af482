// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/bienestar/internal/config"
	"github.com/tomtom215/bienestar/internal/logging"
	"github.com/tomtom215/bienestar/internal/metrics"
)

// Mutation outcomes recorded in bienestar_mutations_total.
const (
	OutcomeWritten         = "written"
	OutcomeReconciled      = "reconciled"
	OutcomeWriteFailed     = "write_failed"
	OutcomeRolledBack      = "rolled_back"
	OutcomeReconcileFailed = "reconcile_failed"
	OutcomeDiscarded       = "discarded"
)

var (
	// ErrReconcileFailed wraps a refetch error that followed a successful write.
	ErrReconcileFailed = errors.New("write succeeded but refreshing failed")

	// ErrScopeClosed is returned when a mutation is started on a closed scope.
	ErrScopeClosed = errors.New("view is closed")
)

// Mutation describes one user-initiated write.
//
// Patch (optional) is applied to the store before the write is sent.
// Write performs the request. Refetch (optional) reads the authoritative
// state after the settling delay; its result replaces the store, or is
// folded into the state current at that moment by Merge when set.
type Mutation[T any] struct {
	Name    string
	Patch   func(T) T
	Write   func(ctx context.Context) error
	Refetch func(ctx context.Context) (T, error)
	Merge   func(current, fresh T) T
}

// Coordinator runs mutations against a store within a scope.
type Coordinator[T any] struct {
	store  *Store[T]
	scope  *Scope
	settle time.Duration
	policy string
}

// NewCoordinator creates a coordinator using the settling delay and failure
// policy from cfg. A nil cfg uses the defaults.
func NewCoordinator[T any](store *Store[T], scope *Scope, cfg *config.SyncConfig) *Coordinator[T] {
	c := &Coordinator[T]{
		store:  store,
		scope:  scope,
		settle: 300 * time.Millisecond,
		policy: config.FailurePolicyRollback,
	}
	if cfg != nil {
		c.settle = cfg.SettleDelay
		if cfg.FailurePolicy != "" {
			c.policy = cfg.FailurePolicy
		}
	}
	return c
}

// Store returns the coordinated store.
func (c *Coordinator[T]) Store() *Store[T] {
	return c.store
}

// Scope returns the coordinator's scope.
func (c *Coordinator[T]) Scope() *Scope {
	return c.scope
}

// SettleDelay returns the wait between a successful write and the refetch.
func (c *Coordinator[T]) SettleDelay() time.Duration {
	return c.settle
}

// Run applies the mutation: patch, write, settle, refetch.
//
// A write error is returned unchanged so callers can map it to a user
// message. A refetch error is returned wrapped in ErrReconcileFailed.
// Closing the scope while the mutation is in flight is not an error; the
// remaining steps are skipped and their results dropped.
func (c *Coordinator[T]) Run(ctx context.Context, m Mutation[T]) error {
	if m.Write == nil {
		return fmt.Errorf("mutation %q has no write", m.Name)
	}
	if c.scope.Closed() {
		return ErrScopeClosed
	}

	log := logging.Ctx(ctx).With().Str("mutation", m.Name).Str("view", c.scope.View()).Logger()

	var (
		before  T
		version uint64
		patched bool
	)
	if m.Patch != nil {
		patched = c.scope.Apply(func() {
			before, version = c.store.swap(m.Patch)
		})
	}

	if err := m.Write(ctx); err != nil {
		outcome := OutcomeWriteFailed
		if patched && c.policy == config.FailurePolicyRollback {
			restored := false
			c.scope.Apply(func() {
				restored = c.store.restoreIf(before, version)
			})
			if restored {
				outcome = OutcomeRolledBack
			}
		}
		metrics.RecordMutation(m.Name, outcome)
		log.Debug().Err(err).Str("outcome", outcome).Msg("Mutation write failed")
		return err
	}

	if m.Refetch == nil {
		metrics.RecordMutation(m.Name, OutcomeWritten)
		return nil
	}

	if err := c.wait(ctx); err != nil {
		if c.scope.Closed() {
			metrics.RecordMutation(m.Name, OutcomeDiscarded)
			return nil
		}
		metrics.RecordMutation(m.Name, OutcomeReconcileFailed)
		return fmt.Errorf("%w: %w", ErrReconcileFailed, err)
	}

	fresh, err := m.Refetch(ctx)
	if err != nil {
		metrics.RecordMutation(m.Name, OutcomeReconcileFailed)
		log.Warn().Err(err).Msg("Refetch after mutation failed; keeping local state")
		return fmt.Errorf("%w: %w", ErrReconcileFailed, err)
	}

	if !c.scope.Apply(func() { c.settleInto(fresh, m.Merge) }) {
		metrics.RecordMutation(m.Name, OutcomeDiscarded)
		return nil
	}
	metrics.RecordMutation(m.Name, OutcomeReconciled)
	log.Debug().Msg("Mutation reconciled")
	return nil
}

// Load fetches state and replaces the store with it, unless the scope
// closed while the fetch was in flight.
func (c *Coordinator[T]) Load(ctx context.Context, fetch func(ctx context.Context) (T, error)) error {
	return c.LoadMerge(ctx, fetch, nil)
}

// LoadMerge is Load with the fetched value folded into the state current
// when the fetch returns. A nil merge replaces the state.
func (c *Coordinator[T]) LoadMerge(ctx context.Context, fetch func(ctx context.Context) (T, error), merge func(current, fresh T) T) error {
	if c.scope.Closed() {
		return ErrScopeClosed
	}
	value, err := fetch(ctx)
	if err != nil {
		return err
	}
	c.scope.Apply(func() { c.settleInto(value, merge) })
	return nil
}

func (c *Coordinator[T]) settleInto(fresh T, merge func(current, fresh T) T) {
	if merge == nil {
		c.store.Replace(fresh)
		return
	}
	c.store.Update(func(current T) T { return merge(current, fresh) })
}

// wait sleeps for the settling delay, returning early when ctx is done or
// the scope closes.
func (c *Coordinator[T]) wait(ctx context.Context) error {
	if c.settle <= 0 {
		return c.scope.Context().Err()
	}
	timer := time.NewTimer(c.settle)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-c.scope.Context().Done():
		return c.scope.Context().Err()
	}
}
