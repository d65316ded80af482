// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

// Package quotes manages the daily quotes: the public quote of the day and
// the admin list where quotes are added, deleted and featured.
package quotes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/bienestar/internal/backend"
	"github.com/tomtom215/bienestar/internal/config"
	"github.com/tomtom215/bienestar/internal/models"
	"github.com/tomtom215/bienestar/internal/sync"
)

// Fallback messages shown when the server gives no readable reason.
const (
	MsgLoadFailed    = "No se pudieron obtener las frases."
	MsgAddFailed     = "No se pudo guardar la frase."
	MsgDeleteFailed  = "No se pudo eliminar la frase."
	MsgFeatureFailed = "No se pudo marcar como frase del día."
	MsgNoQuote       = "Aún no hay frases registradas"
)

var (
	// ErrEmptyQuote is returned by Add for blank text. No request is sent.
	ErrEmptyQuote = errors.New("la frase no puede estar vacía")

	// ErrNotListed is returned when acting on a quote that is not in the
	// loaded list.
	ErrNotListed = errors.New("la frase no está en la lista")
)

// Admin is the quote administration view.
type Admin struct {
	api   backend.API
	scope *sync.Scope
	coord *sync.Coordinator[[]models.DailyQuote]
}

// NewAdmin creates an empty admin view. Call Load to populate it.
func NewAdmin(api backend.API, cfg *config.SyncConfig) *Admin {
	scope := sync.NewScope("quotes")
	return &Admin{
		api:   api,
		scope: scope,
		coord: sync.NewCoordinator(sync.NewStore[[]models.DailyQuote](nil), scope, cfg),
	}
}

// Quotes returns the list as currently shown, featured quote first.
func (a *Admin) Quotes() []models.DailyQuote {
	return a.coord.Store().Snapshot()
}

// Close tears the view down.
func (a *Admin) Close() {
	a.scope.Close()
}

// Load replaces the list with the server's.
func (a *Admin) Load(ctx context.Context) error {
	return a.coord.Load(ctx, a.api.ListQuotes)
}

// Add creates a quote and shows it at the top of the list.
func (a *Admin) Add(ctx context.Context, contenido string) (*models.DailyQuote, error) {
	contenido = strings.TrimSpace(contenido)
	if contenido == "" {
		return nil, ErrEmptyQuote
	}

	var created *models.DailyQuote
	err := a.coord.Run(ctx, sync.Mutation[[]models.DailyQuote]{
		Name: "quotes.add",
		Write: func(ctx context.Context) error {
			q, err := a.api.CreateQuote(ctx, contenido)
			created = q
			return err
		},
	})
	if err != nil {
		return nil, err
	}

	a.scope.Apply(func() {
		a.coord.Store().Update(func(list []models.DailyQuote) []models.DailyQuote {
			return prepend(*created, without(list, created.ID))
		})
	})
	return created, nil
}

// Delete removes a quote on the server, then from the list.
func (a *Admin) Delete(ctx context.Context, id string) error {
	err := a.coord.Run(ctx, sync.Mutation[[]models.DailyQuote]{
		Name: "quotes.delete",
		Write: func(ctx context.Context) error {
			return a.api.DeleteQuote(ctx, id)
		},
	})
	if err != nil {
		return err
	}

	a.scope.Apply(func() {
		a.coord.Store().Update(func(list []models.DailyQuote) []models.DailyQuote {
			return without(list, id)
		})
	})
	return nil
}

// Feature makes a listed quote the quote of the day. The quote moves to the
// head of the list immediately; it is never duplicated, and featuring the
// quote already at the head leaves the list as it is. The list is read
// again once the server settles.
func (a *Admin) Feature(ctx context.Context, id string) error {
	quote, ok := find(a.Quotes(), id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotListed, id)
	}

	return a.coord.Run(ctx, sync.Mutation[[]models.DailyQuote]{
		Name: "quotes.feature",
		Patch: func(list []models.DailyQuote) []models.DailyQuote {
			return prepend(quote, without(list, id))
		},
		Write: func(ctx context.Context) error {
			_, err := a.api.FeatureQuote(ctx, id)
			return err
		},
		Refetch: a.api.ListQuotes,
	})
}

// Today returns the quote of the day, or nil when the service has none.
func Today(ctx context.Context, api backend.API) (*models.DailyQuote, error) {
	q, err := api.DailyQuote(ctx)
	if err != nil {
		return nil, fmt.Errorf("daily quote: %w", err)
	}
	return q, nil
}

func find(list []models.DailyQuote, id string) (models.DailyQuote, bool) {
	for _, q := range list {
		if q.ID == id {
			return q, true
		}
	}
	return models.DailyQuote{}, false
}

// without returns a copy of list with id removed.
func without(list []models.DailyQuote, id string) []models.DailyQuote {
	out := make([]models.DailyQuote, 0, len(list))
	for _, q := range list {
		if q.ID != id {
			out = append(out, q)
		}
	}
	return out
}

func prepend(q models.DailyQuote, list []models.DailyQuote) []models.DailyQuote {
	out := make([]models.DailyQuote, 0, len(list)+1)
	out = append(out, q)
	return append(out, list...)
}
