// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package gateway

import (
	"context"
	"errors"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/bienestar/internal/config"
	"github.com/tomtom215/bienestar/internal/logging"
	"github.com/tomtom215/bienestar/internal/metrics"
)

// newCircuitBreaker builds the breaker guarding the API. Only network
// errors and 5xx responses count as failures; 4xx responses are the
// user's problem, not the server's.
//
// The breaker never retries. Once open, requests fail fast with
// ErrUnavailable until the timeout elapses and a probe succeeds.
func newCircuitBreaker(name string, cfg config.BreakerConfig) *gobreaker.CircuitBreaker[interface{}] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= cfg.FailureRatio
			if shouldTrip {
				logging.Warn().
					Str("breaker", name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		IsSuccessful: countsAsSuccess,

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})
}

func countsAsSuccess(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return true
	}
	var se *ServerError
	if errors.As(err, &se) {
		return se.Status < 500
	}
	var ne *NetworkError
	return !errors.As(err, &ne)
}

// execute runs fn through the breaker, translating rejection into
// ErrUnavailable.
func (g *Gateway) execute(fn func() error) error {
	if g.breaker == nil {
		return fn()
	}

	_, err := g.breaker.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(g.breaker.Name(), "rejected").Inc()
		logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
		return ErrUnavailable
	case err != nil && !countsAsSuccess(err):
		metrics.CircuitBreakerRequests.WithLabelValues(g.breaker.Name(), "failure").Inc()
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(g.breaker.Name(), "success").Inc()
	}
	return err
}

// BreakerState returns the breaker state as closed, half-open or open.
func (g *Gateway) BreakerState() string {
	if g.breaker == nil {
		return "disabled"
	}
	return stateToString(g.breaker.State())
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
