// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

/*
Package backend exposes the Bienestar API as typed methods.

Each method maps to one endpoint and goes through the shared gateway, so
every call inherits its bearer token, rate limiting and circuit breaker.
Wire quirks of the API are absorbed here:
  - forum lists arrive wrapped ({"publicaciones": [...]}, {"respuestas": [...]})
  - quotes and suggestions arrive as bare arrays
  - the daily quote may be a bare {"mensaje": ...} when none is available

Consumers depend on the API interface so page controllers can be tested
against an httptest server or a hand-written fake.
*/
package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tomtom215/bienestar/internal/gateway"
	"github.com/tomtom215/bienestar/internal/models"
)

// API is the full set of remote operations used by the client.
//
// All methods accept a context for cancellation and are safe for
// concurrent use.
type API interface {
	Predict(ctx context.Context, req *models.PredictionRequest) (*models.PredictionResult, error)
	SendMetrics(ctx context.Context, event *models.TelemetryEvent) error
	Stats(ctx context.Context) (*models.StatsAggregate, error)

	DailyQuote(ctx context.Context) (*models.DailyQuote, error)
	ListQuotes(ctx context.Context) ([]models.DailyQuote, error)
	CreateQuote(ctx context.Context, contenido string) (*models.DailyQuote, error)
	DeleteQuote(ctx context.Context, id string) error
	FeatureQuote(ctx context.Context, id string) (*models.DailyQuote, error)

	CreateSuggestion(ctx context.Context, req *models.NewSuggestionRequest) (*models.Suggestion, error)
	ListSuggestions(ctx context.Context) ([]models.Suggestion, error)

	ListPosts(ctx context.Context, order string) ([]models.ForumPost, error)
	CreatePost(ctx context.Context, contenido string) (*models.CreatedResponse, error)
	ListReplies(ctx context.Context, postID string) ([]models.ForumReply, error)
	CreateReply(ctx context.Context, postID, contenido string) (*models.CreatedResponse, error)
	React(ctx context.Context, postID, tipo string) error

	Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error)
	Register(ctx context.Context, creds models.Credentials) error
}

// Client implements API over a gateway.
type Client struct {
	gw *gateway.Gateway
}

var _ API = (*Client)(nil)

// New creates a Client that sends every request through gw.
func New(gw *gateway.Gateway) *Client {
	return &Client{gw: gw}
}

// Gateway returns the underlying gateway.
func (c *Client) Gateway() *gateway.Gateway {
	return c.gw
}

// Predict submits numeric-coerced answers and returns the risk prediction.
func (c *Client) Predict(ctx context.Context, req *models.PredictionRequest) (*models.PredictionResult, error) {
	var out models.PredictionResult
	if err := c.gw.Post(ctx, "/api/predict", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendMetrics posts one telemetry event. The response body is ignored.
func (c *Client) SendMetrics(ctx context.Context, event *models.TelemetryEvent) error {
	return c.gw.Post(ctx, "/api/metrics", event, nil)
}

// Stats fetches the aggregate statistics.
func (c *Client) Stats(ctx context.Context) (*models.StatsAggregate, error) {
	var out models.StatsAggregate
	if err := c.gw.Get(ctx, "/api/stats", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DailyQuote returns the featured quote, or nil when the service has none.
func (c *Client) DailyQuote(ctx context.Context) (*models.DailyQuote, error) {
	var out models.TodayResponse
	if err := c.gw.Get(ctx, "/api/frase-dia", &out); err != nil {
		return nil, err
	}
	if out.Contenido == "" {
		return nil, nil
	}
	q := out.DailyQuote
	return &q, nil
}

// ListQuotes returns every quote, featured first.
func (c *Client) ListQuotes(ctx context.Context) ([]models.DailyQuote, error) {
	var out []models.DailyQuote
	if err := c.gw.Get(ctx, "/api/frases", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateQuote stores a new quote and returns the created record.
func (c *Client) CreateQuote(ctx context.Context, contenido string) (*models.DailyQuote, error) {
	var out models.DailyQuote
	if err := c.gw.Post(ctx, "/api/frases", models.NewQuoteRequest{Contenido: contenido}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteQuote removes a quote.
func (c *Client) DeleteQuote(ctx context.Context, id string) error {
	return c.gw.Delete(ctx, "/api/frases/"+url.PathEscape(id), nil)
}

// FeatureQuote promotes a quote to quote of the day and returns the
// promoted record.
func (c *Client) FeatureQuote(ctx context.Context, id string) (*models.DailyQuote, error) {
	var out models.FeatureResponse
	if err := c.gw.Post(ctx, "/api/frases/"+url.PathEscape(id)+"/destacar", nil, &out); err != nil {
		return nil, err
	}
	if out.Frase.ID == "" {
		out.Frase.ID = id
	}
	return &out.Frase, nil
}

// CreateSuggestion posts a mailbox entry.
func (c *Client) CreateSuggestion(ctx context.Context, req *models.NewSuggestionRequest) (*models.Suggestion, error) {
	var out models.SuggestionCreated
	if err := c.gw.Post(ctx, "/api/sugerencias", req, &out); err != nil {
		return nil, err
	}
	return &out.Sugerencia, nil
}

// ListSuggestions returns the mailbox, newest first.
func (c *Client) ListSuggestions(ctx context.Context) ([]models.Suggestion, error) {
	var out []models.Suggestion
	if err := c.gw.Get(ctx, "/api/sugerencias", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPosts returns forum posts in the given order (recientes or populares).
// An empty order lets the service pick its default.
func (c *Client) ListPosts(ctx context.Context, order string) ([]models.ForumPost, error) {
	path := "/api/foro/publicaciones"
	if order != "" {
		path += "?orden=" + url.QueryEscape(order)
	}
	var out models.PostList
	if err := c.gw.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Publicaciones, nil
}

// CreatePost publishes an anonymous post.
func (c *Client) CreatePost(ctx context.Context, contenido string) (*models.CreatedResponse, error) {
	var out models.CreatedResponse
	if err := c.gw.Post(ctx, "/api/foro/publicaciones", models.NewPostRequest{Contenido: contenido}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListReplies returns the replies under a post, newest first.
func (c *Client) ListReplies(ctx context.Context, postID string) ([]models.ForumReply, error) {
	var out models.ReplyList
	if err := c.gw.Get(ctx, repliesPath(postID), &out); err != nil {
		return nil, err
	}
	return out.Respuestas, nil
}

// CreateReply publishes a reply under a post.
func (c *Client) CreateReply(ctx context.Context, postID, contenido string) (*models.CreatedResponse, error) {
	var out models.CreatedResponse
	if err := c.gw.Post(ctx, repliesPath(postID), models.NewReplyRequest{Contenido: contenido}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// React records a reaction on a post.
func (c *Client) React(ctx context.Context, postID, tipo string) error {
	path := fmt.Sprintf("/api/foro/publicaciones/%s/reaccion", url.PathEscape(postID))
	return c.gw.Post(ctx, path, models.ReactionRequest{Tipo: tipo}, nil)
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error) {
	var out models.LoginResponse
	if err := c.gw.Post(ctx, "/api/login", creds, &out); err != nil {
		return nil, err
	}
	if out.Username == "" {
		out.Username = creds.Username
	}
	return &out, nil
}

// Register creates an account. It does not sign the user in.
func (c *Client) Register(ctx context.Context, creds models.Credentials) error {
	return c.gw.Post(ctx, "/api/register", creds, nil)
}

func repliesPath(postID string) string {
	return fmt.Sprintf("/api/foro/publicaciones/%s/respuestas", url.PathEscape(postID))
}
