// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

// Package feedback implements the improvement mailbox: anyone can send a
// suggestion, and admins can read the collected ones.
package feedback

import (
	"context"
	"errors"
	"strings"

	"github.com/tomtom215/bienestar/internal/backend"
	"github.com/tomtom215/bienestar/internal/config"
	"github.com/tomtom215/bienestar/internal/models"
	"github.com/tomtom215/bienestar/internal/sync"
	"github.com/tomtom215/bienestar/internal/validation"
)

// User-facing messages.
const (
	MsgEmptyText  = "Por favor escribe tu sugerencia antes de enviar."
	MsgSent       = "¡Gracias! Tu sugerencia se ha enviado correctamente."
	MsgSendFailed = "No se pudo enviar tu sugerencia. Inténtalo más tarde."
	MsgLoadFailed = "Ocurrió un error al cargar las sugerencias."
	NoCategory    = "Sin categoría"
)

// ErrEmptyText is returned by Submit for a blank suggestion. No request
// is sent.
var ErrEmptyText = errors.New("la sugerencia está vacía")

// Mailbox sends suggestions and holds the admin list.
type Mailbox struct {
	api   backend.API
	scope *sync.Scope
	coord *sync.Coordinator[[]models.Suggestion]
}

// NewMailbox creates a mailbox view.
func NewMailbox(api backend.API, cfg *config.SyncConfig) *Mailbox {
	scope := sync.NewScope("mailbox")
	return &Mailbox{
		api:   api,
		scope: scope,
		coord: sync.NewCoordinator(sync.NewStore[[]models.Suggestion](nil), scope, cfg),
	}
}

// Close tears the view down.
func (m *Mailbox) Close() {
	m.scope.Close()
}

// Submit sends a suggestion. An empty category defaults to Bug; anything
// other than Bug, Recomendación or Queja is rejected before sending.
func (m *Mailbox) Submit(ctx context.Context, categoria, texto string) (*models.Suggestion, error) {
	texto = strings.TrimSpace(texto)
	if texto == "" {
		return nil, ErrEmptyText
	}
	categoria = strings.TrimSpace(categoria)
	if categoria == "" {
		categoria = models.CategoryBug
	}

	req := &models.NewSuggestionRequest{Categoria: categoria, Texto: texto}
	if verr := validation.ValidateStruct(req); verr != nil {
		return nil, verr
	}

	var saved *models.Suggestion
	err := m.coord.Run(ctx, sync.Mutation[[]models.Suggestion]{
		Name: "feedback.submit",
		Write: func(ctx context.Context) error {
			s, err := m.api.CreateSuggestion(ctx, req)
			saved = s
			return err
		},
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Load reads every suggestion, newest first.
func (m *Mailbox) Load(ctx context.Context) error {
	return m.coord.Load(ctx, m.api.ListSuggestions)
}

// Suggestions returns the loaded list.
func (m *Mailbox) Suggestions() []models.Suggestion {
	return m.coord.Store().Snapshot()
}

// CategoryOf returns the display category of s. Records written by older
// clients carry tipo instead of categoria.
func CategoryOf(s models.Suggestion) string {
	if c := s.Category(); c != "" {
		return c
	}
	return NoCategory
}
