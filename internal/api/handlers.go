// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/tomtom215/bienestar/internal/backend"
	"github.com/tomtom215/bienestar/internal/cache"
	"github.com/tomtom215/bienestar/internal/gateway"
	"github.com/tomtom215/bienestar/internal/logging"
	"github.com/tomtom215/bienestar/internal/metrics"
	"github.com/tomtom215/bienestar/internal/models"
	"github.com/tomtom215/bienestar/internal/quotes"
	"github.com/tomtom215/bienestar/internal/stats"
)

const (
	dashboardKey = "dashboard"
	quoteKey     = "quote"

	msgStatsFailed = "No se pudieron cargar las estadísticas"
	msgQuoteFailed = "No se pudo cargar la frase del día"
)

// Handler serves the dashboard endpoints from a cache in front of the
// remote API.
type Handler struct {
	api        backend.API
	breaker    func() string
	dashboards *cache.Cache[*stats.Dashboard]
	quotes     *cache.Cache[*models.DailyQuote]
	started    time.Time

	mu          sync.Mutex
	lastRefresh time.Time
	lastErr     error
}

// NewHandler creates a handler whose cached entries live for ttl.
// breaker reports the gateway circuit state and may be nil.
func NewHandler(api backend.API, ttl time.Duration, breaker func() string) *Handler {
	if breaker == nil {
		breaker = func() string { return "unknown" }
	}
	return &Handler{
		api:        api,
		breaker:    breaker,
		dashboards: cache.New[*stats.Dashboard](ttl),
		quotes:     cache.New[*models.DailyQuote](ttl),
		started:    time.Now(),
	}
}

// NewHandlerForGateway is NewHandler for a gateway-backed client.
func NewHandlerForGateway(gw *gateway.Gateway, ttl time.Duration) *Handler {
	return NewHandler(backend.New(gw), ttl, gw.BreakerState)
}

// RefreshDashboard fetches the statistics aggregate, rebuilds the
// dashboard and stores it in the cache.
func (h *Handler) RefreshDashboard(ctx context.Context) (*stats.Dashboard, error) {
	agg, err := h.api.Stats(ctx)

	h.mu.Lock()
	h.lastRefresh = time.Now()
	h.lastErr = err
	h.mu.Unlock()

	if err != nil {
		metrics.DashboardRefreshes.WithLabelValues("failure").Inc()
		return nil, err
	}
	metrics.DashboardRefreshes.WithLabelValues("success").Inc()

	d := stats.Build(agg)
	h.dashboards.Set(dashboardKey, d)
	return d, nil
}

// Dashboard handles GET /api/v1/dashboard.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if d, ok := h.dashboards.Get(dashboardKey); ok {
		metrics.DashboardCacheHits.Inc()
		rw.Success(d, true)
		return
	}
	metrics.DashboardCacheMisses.Inc()

	d, err := h.RefreshDashboard(r.Context())
	if err != nil {
		rw.ExternalServiceError(gateway.UserMessage(err, msgStatsFailed), err)
		return
	}
	rw.Success(d, false)
}

// Quote handles GET /api/v1/quote. A service without a featured quote
// yields 404.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	q, cached := h.quotes.Get(quoteKey)
	if !cached {
		var err error
		q, err = quotes.Today(r.Context(), h.api)
		if err != nil {
			rw.ExternalServiceError(gateway.UserMessage(err, msgQuoteFailed), err)
			return
		}
		h.quotes.Set(quoteKey, q)
	}
	if q == nil {
		rw.NotFound(quotes.MsgNoQuote)
		return
	}
	rw.Success(q, cached)
}

// HealthStatus is the body of GET /healthz.
type HealthStatus struct {
	Status        string    `json:"status"`
	Breaker       string    `json:"breaker"`
	UptimeSeconds int64     `json:"uptime_seconds"`
	LastRefresh   time.Time `json:"last_refresh,omitempty"`
	LastError     string    `json:"last_error,omitempty"`
	CacheHitRate  float64   `json:"cache_hit_rate"`
}

// Health handles GET /healthz. The server is degraded, still 200, while
// the breaker is open or the last refresh failed.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	status := HealthStatus{
		Status:        "ok",
		Breaker:       h.breaker(),
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
		LastRefresh:   h.lastRefresh,
		CacheHitRate:  h.dashboards.HitRate(),
	}
	if h.lastErr != nil {
		status.LastError = h.lastErr.Error()
	}
	h.mu.Unlock()

	if status.Breaker == "open" || status.LastError != "" {
		status.Status = "degraded"
	}
	NewResponseWriter(w, r).Success(status, false)
}

// Close releases the caches.
func (h *Handler) Close() {
	h.dashboards.Close()
	h.quotes.Close()
	logging.Debug().Msg("Dashboard handler closed")
}
