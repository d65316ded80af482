// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tomtom215/bienestar/internal/logging"
	"github.com/tomtom215/bienestar/internal/models"
	"github.com/tomtom215/bienestar/internal/validation"
)

// Authenticator is the part of the remote API used to sign in.
// backend.Client implements it.
type Authenticator interface {
	Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error)
	Register(ctx context.Context, creds models.Credentials) error
}

// Context is the process-wide authentication state. It is built once at
// startup from the persisted session and changes only through Login,
// Register and Logout. It implements gateway.TokenSource.
type Context struct {
	store Store
	now   func() time.Time

	mu      sync.RWMutex
	session *Session
}

// ContextOption customizes a Context.
type ContextOption func(*Context)

// WithNow replaces time.Now for expiry checks.
func WithNow(now func() time.Time) ContextOption {
	return func(c *Context) { c.now = now }
}

// NewContext restores the persisted session. A missing, unreadable or
// expired session leaves the context signed out; unreadable and expired
// sessions are also removed from the store.
func NewContext(ctx context.Context, store Store, opts ...ContextOption) *Context {
	c := &Context{store: store, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}

	session, err := store.Load(ctx)
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return c
	case err != nil:
		logging.Ctx(ctx).Warn().Err(err).Msg("Discarding unreadable stored session")
		c.clear(ctx)
		return c
	case session.Token == "":
		c.clear(ctx)
		return c
	case TokenExpired(session.Token, c.now()):
		logging.Ctx(ctx).Info().Str("username", session.Username).Msg("Stored session expired")
		c.clear(ctx)
		return c
	}

	c.session = session
	return c
}

// Authenticated reports whether a user is signed in with an unexpired token.
func (c *Context) Authenticated() bool {
	return c.current() != nil
}

// Username returns the signed-in user, or "".
func (c *Context) Username() string {
	if s := c.current(); s != nil {
		return s.Username
	}
	return ""
}

// Token returns the bearer token, or "" when signed out.
func (c *Context) Token() string {
	if s := c.current(); s != nil {
		return s.Token
	}
	return ""
}

// current returns the live session, or nil when signed out or expired.
// Sessions are replaced, never mutated, so the pointer is safe to read
// after the lock is released.
func (c *Context) current() *Session {
	c.mu.RLock()
	s := c.session
	c.mu.RUnlock()
	if s == nil || TokenExpired(s.Token, c.now()) {
		return nil
	}
	return s
}

// Login signs in and persists the session. On failure the previous state
// is kept.
func (c *Context) Login(ctx context.Context, api Authenticator, username, password string) error {
	creds := models.Credentials{Username: strings.TrimSpace(username), Password: password}
	if verr := validation.ValidateStruct(&creds); verr != nil {
		return verr
	}

	resp, err := api.Login(ctx, creds)
	if err != nil {
		return err
	}
	if resp.Token == "" {
		return errors.New("login response carried no token")
	}

	session := &Session{Token: resp.Token, Username: resp.Username, SavedAt: c.now()}
	if session.Username == "" {
		session.Username = creds.Username
	}
	if err := c.store.Save(ctx, session); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	c.mu.Lock()
	c.session = session
	c.mu.Unlock()
	logging.Ctx(ctx).Info().Str("username", session.Username).Msg("Signed in")
	return nil
}

// Register creates the account and then signs in with it.
func (c *Context) Register(ctx context.Context, api Authenticator, username, password string) error {
	creds := models.Credentials{Username: strings.TrimSpace(username), Password: password}
	if verr := validation.ValidateStruct(&creds); verr != nil {
		return verr
	}
	if err := api.Register(ctx, creds); err != nil {
		return err
	}
	return c.Login(ctx, api, creds.Username, password)
}

// Logout forgets the session locally. The remote API has no logout call.
func (c *Context) Logout(ctx context.Context) error {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()
	if err := c.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (c *Context) clear(ctx context.Context) {
	if err := c.store.Clear(ctx); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Failed to clear stored session")
	}
}
