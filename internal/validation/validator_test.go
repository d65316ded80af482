// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package validation

import (
	"strings"
	"testing"

	"github.com/tomtom215/bienestar/internal/models"
)

// ===================================================================================================
// Singleton Validator Tests
// ===================================================================================================

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

// ===================================================================================================
// ValidateStruct Tests
// ===================================================================================================

func TestValidateStruct_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
	}{
		{"post", &models.NewPostRequest{Contenido: "Hola"}},
		{"post at limit", &models.NewPostRequest{Contenido: strings.Repeat("ñ", models.MaxPostLength)}},
		{"reply at limit", &models.NewReplyRequest{Contenido: strings.Repeat("a", models.MaxReplyLength)}},
		{"reaction", &models.ReactionRequest{Tipo: models.ReactionLike}},
		{"suggestion", &models.NewSuggestionRequest{Categoria: models.CategoryRecommendation, Texto: "Más gráficos"}},
		{"credentials", &models.Credentials{Username: "ana", Password: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateStruct(tt.input); err != nil {
				t.Errorf("ValidateStruct() returned unexpected error: %v", err)
			}
		})
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		input     interface{}
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{
			name:      "empty post",
			input:     &models.NewPostRequest{},
			wantField: "contenido",
			wantTag:   "required",
			wantMsg:   "El campo contenido es obligatorio",
		},
		{
			name:      "post over limit",
			input:     &models.NewPostRequest{Contenido: strings.Repeat("a", models.MaxPostLength+1)},
			wantField: "contenido",
			wantTag:   "max",
			wantMsg:   "El campo contenido excede el límite de 500 caracteres",
		},
		{
			name:      "reply over limit",
			input:     &models.NewReplyRequest{Contenido: strings.Repeat("a", models.MaxReplyLength+1)},
			wantField: "contenido",
			wantTag:   "max",
			wantMsg:   "El campo contenido excede el límite de 300 caracteres",
		},
		{
			name:      "unknown reaction",
			input:     &models.ReactionRequest{Tipo: "love"},
			wantField: "tipo",
			wantTag:   "oneof",
			wantMsg:   "El campo tipo de reacción debe ser uno de: like",
		},
		{
			name:      "unknown category",
			input:     &models.NewSuggestionRequest{Categoria: "Elogio", Texto: "Bien"},
			wantField: "categoria",
			wantTag:   "oneof",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if err == nil {
				t.Fatal("ValidateStruct() expected error, got nil")
			}
			errs := err.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), err)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", errs[0].Tag(), tt.wantTag)
			}
			if tt.wantMsg != "" && errs[0].Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", errs[0].Error(), tt.wantMsg)
			}
		})
	}
}

func TestValidateStruct_MultipleErrors(t *testing.T) {
	err := ValidateStruct(&models.Credentials{})
	if err == nil {
		t.Fatal("expected error")
	}
	msgs := err.Messages()
	if len(msgs) != 2 {
		t.Fatalf("Messages() = %v, want 2", msgs)
	}
	if !strings.Contains(err.Error(), "nombre de usuario") || !strings.Contains(err.Error(), "contraseña") {
		t.Errorf("Error() = %q, want both fields", err.Error())
	}
}

// ===================================================================================================
// Custom Rule Tests
// ===================================================================================================

type betweenStruct struct {
	Text  string  `json:"text" validate:"between=1 5"`
	Int   int     `json:"int" validate:"between=1 5"`
	Float float64 `json:"float" validate:"nonnegative"`
}

func TestBetweenAndNonNegative(t *testing.T) {
	tests := []struct {
		name  string
		input betweenStruct
		valid bool
	}{
		{"lower bound", betweenStruct{Text: "1", Int: 1}, true},
		{"upper bound", betweenStruct{Text: "5", Int: 5, Float: 3.2}, true},
		{"empty text passes", betweenStruct{Text: "", Int: 3}, true},
		{"decimal comma", betweenStruct{Text: "4,5", Int: 3}, true},
		{"text too high", betweenStruct{Text: "6", Int: 3}, false},
		{"text not numeric", betweenStruct{Text: "tres", Int: 3}, false},
		{"int too low", betweenStruct{Text: "3", Int: 0}, false},
		{"negative float", betweenStruct{Text: "3", Int: 3, Float: -0.5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if (err == nil) != tt.valid {
				t.Errorf("ValidateStruct() error = %v, want valid=%v", err, tt.valid)
			}
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"3.5", 3.5, false},
		{" 3,5 ", 3.5, false},
		{"20", 20, false},
		{"", 0, true},
		{"abc", 0, true},
		{"Inf", 0, true},
		{"-Infinity", 0, true},
		{"NaN", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseNumber(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseNumber(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseNumber(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
