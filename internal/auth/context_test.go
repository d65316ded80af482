// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package auth_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/bienestar/internal/auth"
	"github.com/tomtom215/bienestar/internal/gateway"
	"github.com/tomtom215/bienestar/internal/models"
	"github.com/tomtom215/bienestar/internal/testinfra"
	"github.com/tomtom215/bienestar/internal/validation"
)

func TestContext_StartsSignedOut(t *testing.T) {
	c := auth.NewContext(context.Background(), auth.NewMemoryStore())
	if c.Authenticated() || c.Username() != "" || c.Token() != "" {
		t.Errorf("fresh context = %v/%q/%q", c.Authenticated(), c.Username(), c.Token())
	}
}

func TestContext_RestoresSession(t *testing.T) {
	ctx := context.Background()
	store := auth.NewMemoryStore()
	_ = store.Save(ctx, &auth.Session{Token: "token-9", Username: "ana"})

	c := auth.NewContext(ctx, store)
	if !c.Authenticated() || c.Username() != "ana" || c.Token() != "token-9" {
		t.Errorf("restored = %v/%q/%q", c.Authenticated(), c.Username(), c.Token())
	}
}

func TestContext_DropsExpiredSession(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
	}).SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	store := auth.NewMemoryStore()
	_ = store.Save(ctx, &auth.Session{Token: token, Username: "ana"})

	c := auth.NewContext(ctx, store, auth.WithNow(func() time.Time { return now }))
	if c.Authenticated() {
		t.Error("expired session restored")
	}
	if _, err := store.Load(ctx); !errors.Is(err, auth.ErrSessionNotFound) {
		t.Errorf("expired session kept in store: %v", err)
	}
}

func TestContext_LoginLogout(t *testing.T) {
	ctx := context.Background()
	api := testinfra.NewFakeAPI(t)
	api.AddUser("ana", "secreto")
	store := auth.NewMemoryStore()
	c := auth.NewContext(ctx, store)
	client := testinfra.NewClient(t, api, gateway.WithTokenSource(c))

	if err := c.Login(ctx, client, "ana", "mal"); !gateway.IsServerError(err, http.StatusUnauthorized) {
		t.Fatalf("Login(wrong password) error = %v, want 401", err)
	}
	if c.Authenticated() {
		t.Fatal("signed in after a failed login")
	}

	if err := c.Login(ctx, client, " ana ", "secreto"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if c.Username() != "ana" || c.Token() == "" {
		t.Errorf("after login = %q/%q", c.Username(), c.Token())
	}
	persisted, err := store.Load(ctx)
	if err != nil || persisted.Token != c.Token() {
		t.Errorf("persisted = %+v, %v", persisted, err)
	}

	// Requests now carry the bearer token.
	if _, err := client.ListPosts(ctx, models.OrderRecent); err != nil {
		t.Fatalf("ListPosts() error = %v", err)
	}
	reqs := api.Requests(http.MethodGet, "/api/foro/publicaciones")
	if len(reqs) == 0 || reqs[len(reqs)-1].Header.Get("Authorization") != "Bearer "+c.Token() {
		t.Error("request sent without the bearer token")
	}

	if err := c.Logout(ctx); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if c.Authenticated() {
		t.Error("still signed in after Logout()")
	}
	if _, err := store.Load(ctx); !errors.Is(err, auth.ErrSessionNotFound) {
		t.Errorf("store after Logout() error = %v", err)
	}
}

func TestContext_RegisterSignsIn(t *testing.T) {
	ctx := context.Background()
	api := testinfra.NewFakeAPI(t)
	c := auth.NewContext(ctx, auth.NewMemoryStore())
	client := testinfra.NewClient(t, api)

	if err := c.Register(ctx, client, "luis", "clave"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if c.Username() != "luis" {
		t.Errorf("Username() = %q, want luis", c.Username())
	}
	if n := api.Count(http.MethodPost, "/api/login"); n != 1 {
		t.Errorf("login calls = %d, want 1", n)
	}
}

func TestContext_LoginRequiresCredentials(t *testing.T) {
	api := testinfra.NewFakeAPI(t)
	c := auth.NewContext(context.Background(), auth.NewMemoryStore())

	err := c.Login(context.Background(), testinfra.NewClient(t, api), "  ", "")
	var verr *validation.RequestValidationError
	if !errors.As(err, &verr) {
		t.Errorf("Login(blank) error = %v, want validation error", err)
	}
	if n := len(api.Captures()); n != 0 {
		t.Errorf("requests = %d, want 0", n)
	}
}

type staticAuthenticator struct{}

func (staticAuthenticator) Login(_ context.Context, creds models.Credentials) (*models.LoginResponse, error) {
	return &models.LoginResponse{Token: "token-" + creds.Username, Username: creds.Username}, nil
}

func (staticAuthenticator) Register(context.Context, models.Credentials) error { return nil }

func TestContext_ConcurrentReadsDuringLogout(t *testing.T) {
	ctx := context.Background()
	c := auth.NewContext(ctx, auth.NewMemoryStore())

	var wg sync.WaitGroup
	done := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			tok, user := c.Token(), c.Username()
			if tok != "" && tok != "token-ana" {
				t.Errorf("Token() = %q", tok)
				return
			}
			if user != "" && user != "ana" {
				t.Errorf("Username() = %q", user)
				return
			}
		}
	}()

	for i := 0; i < 500; i++ {
		if err := c.Login(ctx, staticAuthenticator{}, "ana", "secreto"); err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if err := c.Logout(ctx); err != nil {
			t.Fatalf("Logout() error = %v", err)
		}
	}
	close(done)
	wg.Wait()
}
