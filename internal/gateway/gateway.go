// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

// Package gateway is the single path by which Bienestar talks to its API.
//
// Every request goes through Gateway.Do, which resolves the path against the
// configured base URL, JSON-encodes the body, attaches the bearer token when
// a user is signed in, and decodes a successful response. Failures surface
// as *NetworkError, *ServerError or ErrUnavailable. The gateway never
// retries; callers decide whether to try again.
package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/bienestar/internal/config"
	"github.com/tomtom215/bienestar/internal/logging"
	"github.com/tomtom215/bienestar/internal/metrics"
)

// maxErrorBodySize limits how much of an error response is read.
const maxErrorBodySize = 64 * 1024

// TokenSource yields the bearer token for the signed-in user, or "" when
// nobody is signed in.
type TokenSource interface {
	Token() string
}

// Gateway issues JSON requests against the Bienestar API.
type Gateway struct {
	baseURL   string
	client    *http.Client
	limiter   *rate.Limiter
	breaker   *gobreaker.CircuitBreaker[interface{}]
	tokens    TokenSource
	userAgent string
}

// Option customizes a Gateway.
type Option func(*Gateway)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) { g.client = c }
}

// WithTokenSource attaches bearer tokens from ts to every request.
func WithTokenSource(ts TokenSource) Option {
	return func(g *Gateway) { g.tokens = ts }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(g *Gateway) { g.userAgent = ua }
}

// New creates a gateway for the configured API. The base URL is resolved
// once here and never re-read.
func New(cfg *config.APIConfig, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		client:    &http.Client{Timeout: cfg.Timeout},
		userAgent: "bienestar",
	}
	if cfg.RateLimit > 0 {
		g.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	}
	if cfg.Breaker.Enabled {
		g.breaker = newCircuitBreaker("bienestar-api", cfg.Breaker)
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// BaseURL returns the resolved API base URL.
func (g *Gateway) BaseURL() string {
	return g.baseURL
}

// Do sends method to path with body JSON-encoded (when non-nil) and decodes
// a non-empty 2xx response into out (when non-nil).
func (g *Gateway) Do(ctx context.Context, method, path string, body, out any) error {
	endpoint := endpointLabel(path)
	start := time.Now()

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("waiting for rate limiter: %w", err)
		}
		metrics.GatewayRateLimitWait.Observe(time.Since(start).Seconds())
	}

	err := g.execute(func() error {
		return g.roundTrip(ctx, method, path, body, out)
	})

	metrics.RecordGatewayRequest(method, endpoint, outcomeLabel(err), time.Since(start))
	if err != nil {
		logging.Ctx(ctx).Debug().
			Err(err).
			Str("method", method).
			Str("endpoint", endpoint).
			Msg("API request failed")
	}
	return err
}

// Get is shorthand for Do with GET and no body.
func (g *Gateway) Get(ctx context.Context, path string, out any) error {
	return g.Do(ctx, http.MethodGet, path, nil, out)
}

// Post is shorthand for Do with POST.
func (g *Gateway) Post(ctx context.Context, path string, body, out any) error {
	return g.Do(ctx, http.MethodPost, path, body, out)
}

// Delete is shorthand for Do with DELETE and no body.
func (g *Gateway) Delete(ctx context.Context, path string, out any) error {
	return g.Do(ctx, http.MethodDelete, path, nil, out)
}

func (g *Gateway) roundTrip(ctx context.Context, method, path string, body, out any) error {
	reqURL := g.baseURL + path

	var reader io.Reader = http.NoBody
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request body: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", g.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if g.tokens != nil {
		if token := g.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return &NetworkError{Method: method, URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ServerError{
			Status:      resp.StatusCode,
			Body:        string(readBodyForError(resp.Body)),
			ContentType: resp.Header.Get("Content-Type"),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Method: method, URL: reqURL, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// readBodyForError reads at most maxErrorBodySize bytes of r.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// endpointLabel replaces path segments that carry identifiers with {id}
// and drops the query so metric labels stay bounded.
func endpointLabel(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if strings.IndexFunc(seg, unicode.IsDigit) >= 0 {
			segments[i] = "{id}"
		}
	}
	return strings.Join(segments, "/")
}

func outcomeLabel(err error) string {
	var se *ServerError
	var ne *NetworkError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrUnavailable):
		return "rejected"
	case errors.As(err, &se):
		return "server_error"
	case errors.As(err, &ne):
		return "network_error"
	default:
		return "error"
	}
}
