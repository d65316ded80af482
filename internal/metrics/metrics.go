// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for the Bienestar client:
// - outbound API requests (gateway)
// - circuit breaker state
// - optimistic mutations and reconciliation
// - telemetry delivery
// - dashboard server cache and HTTP handlers

var (
	// Gateway Metrics
	GatewayRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bienestar_gateway_requests_total",
			Help: "Total number of requests sent to the Bienestar API",
		},
		[]string{"method", "endpoint", "outcome"}, // outcome: "ok", "server_error", "network_error", "rejected"
	)

	GatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bienestar_gateway_request_duration_seconds",
			Help:    "Duration of requests to the Bienestar API in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	GatewayRateLimitWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bienestar_gateway_rate_limit_wait_seconds",
			Help:    "Time spent waiting for the outbound rate limiter",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Mutation Metrics
	MutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bienestar_mutations_total",
			Help: "Optimistic mutations by name and outcome",
		},
		[]string{"mutation", "outcome"}, // outcome: "written", "reconciled", "write_failed", "rolled_back", "reconcile_failed", "discarded"
	)

	StaleResultsDiscarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bienestar_stale_results_discarded_total",
			Help: "Responses that arrived after their view was closed",
		},
		[]string{"view"},
	)

	// Telemetry Metrics
	TelemetryEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bienestar_telemetry_events_total",
			Help: "Questionnaire telemetry events by type and delivery result",
		},
		[]string{"event_type", "result"}, // result: "sent", "dropped"
	)

	// Dashboard Server Metrics
	DashboardCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bienestar_dashboard_cache_hits_total",
			Help: "Dashboard requests served from cache",
		},
	)

	DashboardCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bienestar_dashboard_cache_misses_total",
			Help: "Dashboard requests that fetched fresh statistics",
		},
	)

	DashboardRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bienestar_dashboard_refreshes_total",
			Help: "Background statistics refreshes by result",
		},
		[]string{"result"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bienestar_http_requests_total",
			Help: "Requests handled by the dashboard server",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bienestar_http_request_duration_seconds",
			Help:    "Dashboard server request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordGatewayRequest records one outbound API request.
func RecordGatewayRequest(method, endpoint, outcome string, duration time.Duration) {
	GatewayRequestsTotal.WithLabelValues(method, endpoint, outcome).Inc()
	GatewayRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordMutation records the outcome of an optimistic mutation.
func RecordMutation(name, outcome string) {
	MutationsTotal.WithLabelValues(name, outcome).Inc()
}

// RecordTelemetry records whether a telemetry event was delivered.
func RecordTelemetry(eventType string, sent bool) {
	result := "sent"
	if !sent {
		result = "dropped"
	}
	TelemetryEventsTotal.WithLabelValues(eventType, result).Inc()
}

// RecordHTTPRequest records a request handled by the dashboard server.
func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
