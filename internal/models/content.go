// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package models

// DailyQuote is a curated motivational quote.
type DailyQuote struct {
	ID        string `json:"id"`
	Contenido string `json:"contenido"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

// NewQuoteRequest is the body of POST /api/frases.
type NewQuoteRequest struct {
	Contenido string `json:"contenido" validate:"required"`
}

// FeatureResponse is the body of POST /api/frases/{id}/destacar.
type FeatureResponse struct {
	Mensaje string     `json:"mensaje"`
	Frase   DailyQuote `json:"frase"`
}

// TodayResponse is the body of GET /api/frase-dia: either a quote or only
// a mensaje explaining that none is available.
type TodayResponse struct {
	DailyQuote
	Mensaje string `json:"mensaje,omitempty"`
}

// Suggestion categories accepted by the mailbox.
const (
	CategoryBug            = "Bug"
	CategoryRecommendation = "Recomendación"
	CategoryComplaint      = "Queja"
)

// SuggestionCategories lists the categories in display order.
var SuggestionCategories = []string{CategoryBug, CategoryRecommendation, CategoryComplaint}

// Suggestion is a mailbox entry. Older entries used tipo/descripcion.
type Suggestion struct {
	ID          string `json:"id,omitempty"`
	Categoria   string `json:"categoria,omitempty"`
	Texto       string `json:"texto,omitempty"`
	Tipo        string `json:"tipo,omitempty"`
	Descripcion string `json:"descripcion,omitempty"`
	Timestamp   int64  `json:"timestamp,omitempty"`
}

// Category returns the category, falling back to the legacy tipo key.
func (s *Suggestion) Category() string {
	if s.Categoria != "" {
		return s.Categoria
	}
	return s.Tipo
}

// Text returns the body, falling back to the legacy descripcion key.
func (s *Suggestion) Text() string {
	if s.Texto != "" {
		return s.Texto
	}
	return s.Descripcion
}

// NewSuggestionRequest is the body of POST /api/sugerencias.
type NewSuggestionRequest struct {
	Categoria string `json:"categoria" validate:"required,oneof=Bug Recomendación Queja"`
	Texto     string `json:"texto" validate:"required"`
}

// SuggestionCreated is the response of POST /api/sugerencias.
type SuggestionCreated struct {
	Mensaje    string     `json:"mensaje"`
	Sugerencia Suggestion `json:"sugerencia"`
}
