// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package forum_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/bienestar/internal/config"
	"github.com/tomtom215/bienestar/internal/forum"
	"github.com/tomtom215/bienestar/internal/gateway"
	"github.com/tomtom215/bienestar/internal/models"
	"github.com/tomtom215/bienestar/internal/sync"
	"github.com/tomtom215/bienestar/internal/testinfra"
	"github.com/tomtom215/bienestar/internal/validation"
)

const postsPath = "/api/foro/publicaciones"

func newBoard(t *testing.T, settle time.Duration) (*forum.Board, *testinfra.FakeAPI) {
	t.Helper()
	api := testinfra.NewFakeAPI(t)
	b := forum.NewBoard(testinfra.NewClient(t, api), &config.SyncConfig{
		SettleDelay:   settle,
		FailurePolicy: config.FailurePolicyRollback,
	})
	t.Cleanup(b.Close)
	return b, api
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func TestBoard_Load(t *testing.T) {
	t.Parallel()
	b, api := newBoard(t, 0)
	first := api.AddPost("primero", 3)
	second := api.AddPost("segundo", 1)

	if err := b.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	posts := b.State().Posts
	if len(posts) != 2 || posts[0].ID != second.ID {
		t.Fatalf("Posts = %+v, want newest first", posts)
	}

	if err := b.SetOrder(context.Background(), models.OrderPopular); err != nil {
		t.Fatalf("SetOrder() error = %v", err)
	}
	if got := b.State().Posts[0].ID; got != first.ID {
		t.Errorf("first popular post = %s, want %s", got, first.ID)
	}
	reqs := api.Requests(http.MethodGet, postsPath)
	if last := reqs[len(reqs)-1]; last.Query != "orden=populares" {
		t.Errorf("query = %q, want orden=populares", last.Query)
	}

	if err := b.SetOrder(context.Background(), "antiguos"); !errors.Is(err, forum.ErrUnknownOrder) {
		t.Errorf("SetOrder(antiguos) error = %v, want ErrUnknownOrder", err)
	}
}

func TestBoard_CreatePost_EmptyIssuesNoRequest(t *testing.T) {
	t.Parallel()
	b, api := newBoard(t, 0)

	for _, contenido := range []string{"", "   ", "\n\t"} {
		if err := b.CreatePost(context.Background(), contenido); !errors.Is(err, forum.ErrEmptyContent) {
			t.Errorf("CreatePost(%q) error = %v, want ErrEmptyContent", contenido, err)
		}
	}
	if n := len(api.Captures()); n != 0 {
		t.Errorf("requests issued = %d, want 0", n)
	}
}

func TestBoard_CreatePost_OnePostThenOneRefetch(t *testing.T) {
	t.Parallel()
	const settle = 40 * time.Millisecond
	b, api := newBoard(t, settle)

	start := time.Now()
	if err := b.CreatePost(context.Background(), "Hello"); err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}
	elapsed := time.Since(start)

	captures := api.Captures()
	if len(captures) != 2 {
		t.Fatalf("requests = %d, want exactly 2: %+v", len(captures), captures)
	}
	if captures[0].Method != http.MethodPost || captures[0].Path != postsPath {
		t.Errorf("first request = %s %s, want POST %s", captures[0].Method, captures[0].Path, postsPath)
	}
	if string(captures[0].Body) != `{"contenido":"Hello"}` {
		t.Errorf("body = %s", captures[0].Body)
	}
	if captures[1].Method != http.MethodGet || captures[1].Path != postsPath {
		t.Errorf("second request = %s %s, want GET %s", captures[1].Method, captures[1].Path, postsPath)
	}
	if elapsed < settle {
		t.Errorf("CreatePost returned after %v, want at least the settling delay", elapsed)
	}
	if posts := b.State().Posts; len(posts) != 1 || posts[0].Contenido != "Hello" {
		t.Errorf("Posts = %+v, want the new post", posts)
	}
}

func TestBoard_CreatePost_TooLong(t *testing.T) {
	t.Parallel()
	b, api := newBoard(t, 0)

	err := b.CreatePost(context.Background(), strings.Repeat("a", models.MaxPostLength+1))
	var verr *validation.RequestValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("CreatePost() error = %v, want validation error", err)
	}
	if n := len(api.Captures()); n != 0 {
		t.Errorf("requests issued = %d, want 0", n)
	}
}

func TestBoard_CreatePost_ServerError(t *testing.T) {
	t.Parallel()
	b, api := newBoard(t, 0)
	api.Fail(http.MethodPost, postsPath, testinfra.Failure{Status: http.StatusBadRequest, Body: `{"error":"El contenido no puede estar vacío"}`})

	err := b.CreatePost(context.Background(), "Hola")
	if !gateway.IsServerError(err, http.StatusBadRequest) {
		t.Fatalf("CreatePost() error = %v, want 400", err)
	}
	if got := gateway.UserMessage(err, "fallback"); got != "El contenido no puede estar vacío" {
		t.Errorf("UserMessage = %q", got)
	}
	if n := api.Count(http.MethodGet, postsPath); n != 0 {
		t.Errorf("refetches after failed write = %d, want 0", n)
	}
}

func TestBoard_React_RefetchOverwritesOptimisticCount(t *testing.T) {
	t.Parallel()
	b, api := newBoard(t, 0)
	post := api.AddPost("¿Alguien más con ansiedad por exámenes?", 0)
	if err := b.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	release := api.Hold(http.MethodPost, postsPath+"/"+post.ID+"/reaccion")
	done := make(chan error, 1)
	go func() { done <- b.React(context.Background(), post.ID, models.ReactionLike) }()

	likes := func() int {
		p, _ := b.State().Post(post.ID)
		return p.Likes
	}
	waitFor(t, func() bool { return likes() == 1 })

	// Other users reacted while ours was in flight.
	api.SetLikes(post.ID, 4)
	release()

	if err := <-done; err != nil {
		t.Fatalf("React() error = %v", err)
	}
	if got := likes(); got != 5 {
		t.Errorf("likes = %d, want authoritative 5", got)
	}
}

func TestBoard_React_FailureRollsBack(t *testing.T) {
	t.Parallel()
	b, api := newBoard(t, 0)
	post := api.AddPost("hola", 2)
	if err := b.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	api.Fail(http.MethodPost, postsPath+"/"+post.ID+"/reaccion", testinfra.Failure{Status: http.StatusInternalServerError})

	if err := b.React(context.Background(), post.ID, models.ReactionLike); err == nil {
		t.Fatal("React() error = nil, want server error")
	}
	if p, _ := b.State().Post(post.ID); p.Likes != 2 {
		t.Errorf("likes = %d, want 2 after rollback", p.Likes)
	}
}

func TestBoard_React_UnsupportedTypeRejectedLocally(t *testing.T) {
	t.Parallel()
	b, api := newBoard(t, 0)
	post := api.AddPost("hola", 0)

	if err := b.React(context.Background(), post.ID, "love"); err == nil {
		t.Fatal("React(love) error = nil")
	}
	if n := len(api.Captures()); n != 0 {
		t.Errorf("requests issued = %d, want 0", n)
	}
}

func TestBoard_Replies(t *testing.T) {
	t.Parallel()
	b, api := newBoard(t, 0)
	post := api.AddPost("hilo", 0)
	repliesPath := postsPath + "/" + post.ID + "/respuestas"
	if err := b.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	open, err := b.ToggleReplies(context.Background(), post.ID)
	if err != nil || !open {
		t.Fatalf("ToggleReplies() = %v, %v; want open", open, err)
	}
	if n := api.Count(http.MethodGet, repliesPath); n != 1 {
		t.Errorf("reply loads = %d, want 1", n)
	}

	if err := b.CreateReply(context.Background(), post.ID, "  ánimo  "); err != nil {
		t.Fatalf("CreateReply() error = %v", err)
	}
	s := b.State()
	if replies := s.Replies[post.ID]; len(replies) != 1 || replies[0].Contenido != "ánimo" {
		t.Errorf("replies = %+v, want trimmed reply", replies)
	}
	if p, _ := s.Post(post.ID); p.RespuestasCount != 1 {
		t.Errorf("RespuestasCount = %d, want 1 after refetch", p.RespuestasCount)
	}

	open, _ = b.ToggleReplies(context.Background(), post.ID)
	if open {
		t.Error("second toggle left the thread open")
	}
	open, _ = b.ToggleReplies(context.Background(), post.ID)
	if !open {
		t.Error("third toggle did not reopen the thread")
	}
	if n := api.Count(http.MethodGet, repliesPath); n != 2 {
		t.Errorf("reply loads = %d, want 2 (initial open and refetch only)", n)
	}

	if err := b.CreateReply(context.Background(), post.ID, strings.Repeat("b", models.MaxReplyLength+1)); err == nil {
		t.Error("CreateReply() over limit error = nil")
	}
	if err := b.CreateReply(context.Background(), post.ID, " "); !errors.Is(err, forum.ErrEmptyContent) {
		t.Errorf("CreateReply(blank) error = %v, want ErrEmptyContent", err)
	}
}

func TestBoard_LateResponseAfterClose(t *testing.T) {
	t.Parallel()
	b, api := newBoard(t, 0)
	api.AddPost("tarde", 0)

	release := api.Hold(http.MethodGet, postsPath)
	done := make(chan error, 1)
	go func() { done <- b.Load(context.Background()) }()

	waitFor(t, func() bool { return api.Count(http.MethodGet, postsPath) == 1 })
	b.Close()
	release()

	if err := <-done; err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if posts := b.State().Posts; len(posts) != 0 {
		t.Errorf("Posts = %+v, late response must not be applied", posts)
	}
	if err := b.CreatePost(context.Background(), "otra"); !errors.Is(err, sync.ErrScopeClosed) {
		t.Errorf("CreatePost() after Close error = %v, want ErrScopeClosed", err)
	}
}

func TestBoard_ThreadToggledDuringReloadSurvives(t *testing.T) {
	t.Parallel()
	b, api := newBoard(t, 0)
	post := api.AddPost("hilo", 0)

	release := api.Hold(http.MethodGet, postsPath)
	done := make(chan error, 1)
	go func() { done <- b.Load(context.Background()) }()
	waitFor(t, func() bool { return api.Count(http.MethodGet, postsPath) == 1 })

	if open, err := b.ToggleReplies(context.Background(), post.ID); err != nil || !open {
		t.Fatalf("ToggleReplies() = %v, %v; want open", open, err)
	}
	release()
	if err := <-done; err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	s := b.State()
	if !s.Open[post.ID] {
		t.Error("thread opened during the reload was closed by it")
	}
	if _, ok := s.Replies[post.ID]; !ok {
		t.Error("replies loaded during the reload were dropped")
	}
	if len(s.Posts) != 1 {
		t.Errorf("Posts = %+v, want the reloaded list", s.Posts)
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)
	ms := func(d time.Duration) int64 { return now.Add(-d).UnixMilli() }

	tests := []struct {
		name string
		ts   int64
		want string
	}{
		{"seconds", ms(30 * time.Second), "hace un momento"},
		{"minutes", ms(5 * time.Minute), "hace 5 min"},
		{"hours", ms(3*time.Hour + 20*time.Minute), "hace 3 h"},
		{"days", ms(2 * 24 * time.Hour), "hace 2 d"},
		{"same year", time.Date(2025, 9, 3, 8, 0, 0, 0, time.UTC).UnixMilli(), "3 sept"},
		{"previous year", time.Date(2024, 12, 24, 8, 0, 0, 0, time.UTC).UnixMilli(), "24 dic 2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := forum.RelativeTime(tt.ts, now); got != tt.want {
				t.Errorf("RelativeTime() = %q, want %q", got, tt.want)
			}
		})
	}
}
