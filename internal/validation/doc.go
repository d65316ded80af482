// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

// Package validation provides struct validation using go-playground/validator v10.
//
// # Overview
//
// The package provides:
//   - A thread-safe singleton validator for request structs (`validate` tags)
//   - The questionnaire validation engine (`presence` and `range` tags)
//   - Custom rules: between=MIN MAX (inclusive, numeric text) and nonnegative
//   - Spanish error messages for every rule
//
// # Questionnaire Validation
//
// ValidateQuestionnaire runs two passes over models.QuestionnaireForm and
// returns every violation at once:
//
//	violations := validation.ValidateQuestionnaire(form)
//	if len(violations) > 0 {
//	    // show all of them; do not submit
//	}
//
// The presence pass reports one message per unanswered field. The range
// pass checks only answered fields, so an empty age yields "Ingresa tu
// edad." and never also "La edad debe estar entre 15 y 80 años.". Work
// pressure is required and range-checked only when works is "Yes"; otherwise
// it is cleared before validation and sent as 0.
//
// ToPayload validates and then coerces the text answers into the numeric
// models.PredictionRequest.
//
// # Request Structs
//
//	if verr := validation.ValidateStruct(&models.NewPostRequest{Contenido: text}); verr != nil {
//	    fmt.Println(verr.Messages())
//	}
//
// Fields are reported by their JSON name. Messages for string limits count
// characters, not bytes.
//
// # Thread Safety
//
// All validators are initialized once and safe for concurrent use.
package validation
