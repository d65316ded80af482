// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package forum

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/bienestar/internal/backend"
	"github.com/tomtom215/bienestar/internal/config"
	"github.com/tomtom215/bienestar/internal/logging"
	"github.com/tomtom215/bienestar/internal/models"
	"github.com/tomtom215/bienestar/internal/sync"
	"github.com/tomtom215/bienestar/internal/validation"
)

var (
	// ErrEmptyContent is returned for a post or reply that is blank after
	// trimming. No request is sent.
	ErrEmptyContent = errors.New("el contenido no puede estar vacío")

	// ErrUnknownOrder is returned by SetOrder for an unsupported ordering.
	ErrUnknownOrder = errors.New("ordenamiento no soportado")
)

// State is the forum view. Values are shared between snapshots and must be
// copied before modification; the helpers below do so.
type State struct {
	Order   string
	Posts   []models.ForumPost
	Replies map[string][]models.ForumReply // Loaded threads by post ID
	Open    map[string]bool                // Threads currently expanded
}

// Post returns the post with id from the current list.
func (s State) Post(id string) (models.ForumPost, bool) {
	for _, p := range s.Posts {
		if p.ID == id {
			return p, true
		}
	}
	return models.ForumPost{}, false
}

func (s State) withPosts(posts []models.ForumPost) State {
	s.Posts = posts
	return s
}

func (s State) withReplies(postID string, replies []models.ForumReply) State {
	m := make(map[string][]models.ForumReply, len(s.Replies)+1)
	for k, v := range s.Replies {
		m[k] = v
	}
	m[postID] = replies
	s.Replies = m
	return s
}

func (s State) withOpen(postID string, open bool) State {
	m := make(map[string]bool, len(s.Open)+1)
	for k, v := range s.Open {
		m[k] = v
	}
	if open {
		m[postID] = true
	} else {
		delete(m, postID)
	}
	s.Open = m
	return s
}

func (s State) withLike(postID string) State {
	posts := make([]models.ForumPost, len(s.Posts))
	copy(posts, s.Posts)
	for i := range posts {
		if posts[i].ID == postID {
			posts[i].Likes++
		}
	}
	s.Posts = posts
	return s
}

// Board is the forum controller. Writes go through a coordinator so the
// list is re-read from the server after each one.
type Board struct {
	api   backend.API
	scope *sync.Scope
	coord *sync.Coordinator[State]
}

// NewBoard creates a forum view ordered by most recent posts.
func NewBoard(api backend.API, cfg *config.SyncConfig) *Board {
	scope := sync.NewScope("forum")
	store := sync.NewStore(State{Order: models.OrderRecent})
	return &Board{
		api:   api,
		scope: scope,
		coord: sync.NewCoordinator(store, scope, cfg),
	}
}

// State returns the current view state.
func (b *Board) State() State {
	return b.coord.Store().Snapshot()
}

// Close tears the view down. Responses that arrive afterwards are dropped.
func (b *Board) Close() {
	b.scope.Close()
}

// Load reads the post list in the current order.
func (b *Board) Load(ctx context.Context) error {
	if err := b.coord.LoadMerge(ctx, b.fetchPosts, mergePosts); err != nil {
		return fmt.Errorf("load posts: %w", err)
	}
	return nil
}

// SetOrder switches between recientes and populares and reloads.
func (b *Board) SetOrder(ctx context.Context, order string) error {
	if order != models.OrderRecent && order != models.OrderPopular {
		return fmt.Errorf("%w: %q", ErrUnknownOrder, order)
	}
	b.scope.Apply(func() {
		b.coord.Store().Update(func(s State) State {
			s.Order = order
			return s
		})
	})
	return b.Load(ctx)
}

// CreatePost publishes contenido and refreshes the list once the server
// has settled.
func (b *Board) CreatePost(ctx context.Context, contenido string) error {
	contenido = strings.TrimSpace(contenido)
	if contenido == "" {
		return ErrEmptyContent
	}
	if verr := validation.ValidateStruct(&models.NewPostRequest{Contenido: contenido}); verr != nil {
		return verr
	}

	return b.coord.Run(ctx, sync.Mutation[State]{
		Name: "forum.post",
		Write: func(ctx context.Context) error {
			_, err := b.api.CreatePost(ctx, contenido)
			return err
		},
		Refetch: b.fetchPosts,
		Merge:   mergePosts,
	})
}

// React adds a reaction to a post. The like count is raised locally right
// away and then replaced by the server's count.
func (b *Board) React(ctx context.Context, postID, tipo string) error {
	if verr := validation.ValidateStruct(&models.ReactionRequest{Tipo: tipo}); verr != nil {
		return verr
	}

	return b.coord.Run(ctx, sync.Mutation[State]{
		Name: "forum.react",
		Patch: func(s State) State {
			return s.withLike(postID)
		},
		Write: func(ctx context.Context) error {
			return b.api.React(ctx, postID, tipo)
		},
		Refetch: b.fetchPosts,
		Merge:   mergePosts,
	})
}

// ToggleReplies expands or collapses a thread and reports whether it is now
// open. The first expansion loads the thread; a failed load leaves it open
// and empty.
func (b *Board) ToggleReplies(ctx context.Context, postID string) (bool, error) {
	var open, loaded bool
	if !b.scope.Apply(func() {
		b.coord.Store().Update(func(s State) State {
			open = !s.Open[postID]
			_, loaded = s.Replies[postID]
			return s.withOpen(postID, open)
		})
	}) {
		return false, sync.ErrScopeClosed
	}
	if !open || loaded {
		return open, nil
	}

	if err := b.loadReplies(ctx, postID); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("post_id", postID).Msg("Failed to load replies")
		return open, err
	}
	return open, nil
}

// CreateReply answers a post, then refreshes the thread and the post list so
// the reply count is current.
func (b *Board) CreateReply(ctx context.Context, postID, contenido string) error {
	contenido = strings.TrimSpace(contenido)
	if contenido == "" {
		return ErrEmptyContent
	}
	if verr := validation.ValidateStruct(&models.NewReplyRequest{Contenido: contenido}); verr != nil {
		return verr
	}

	return b.coord.Run(ctx, sync.Mutation[State]{
		Name: "forum.reply",
		Write: func(ctx context.Context) error {
			_, err := b.api.CreateReply(ctx, postID, contenido)
			return err
		},
		Refetch: func(ctx context.Context) (State, error) {
			replies, err := b.api.ListReplies(ctx, postID)
			if err != nil {
				return State{}, fmt.Errorf("list replies: %w", err)
			}
			s, err := b.fetchPosts(ctx)
			if err != nil {
				return State{}, err
			}
			return s.withReplies(postID, replies), nil
		},
		Merge: func(current, fresh State) State {
			return mergePosts(current, fresh).withReplies(postID, fresh.Replies[postID])
		},
	})
}

func (b *Board) loadReplies(ctx context.Context, postID string) error {
	replies, err := b.api.ListReplies(ctx, postID)
	if err != nil {
		return fmt.Errorf("list replies: %w", err)
	}
	b.scope.Apply(func() {
		b.coord.Store().Update(func(s State) State {
			return s.withReplies(postID, replies)
		})
	})
	return nil
}

// fetchPosts reads the list in the current order. Only Order and Posts
// are set on the result; mergePosts folds it into the live state.
func (b *Board) fetchPosts(ctx context.Context) (State, error) {
	order := b.State().Order
	posts, err := b.api.ListPosts(ctx, order)
	if err != nil {
		return State{}, fmt.Errorf("list posts: %w", err)
	}
	return State{Order: order, Posts: posts}, nil
}

// mergePosts takes the post list from fresh and keeps the rest of current,
// so threads opened or closed during the read survive. When the order
// changed meanwhile the last response still wins.
func mergePosts(current, fresh State) State {
	return current.withPosts(fresh.Posts)
}
