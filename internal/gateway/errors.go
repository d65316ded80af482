// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-json"

	"github.com/tomtom215/bienestar/internal/models"
)

// User-facing messages shown when an error carries no better explanation.
const (
	MsgNetwork     = "No se pudo conectar con el servidor. Revisa tu conexión e inténtalo de nuevo."
	MsgUnavailable = "El servicio no está disponible en este momento. Inténtalo más tarde."
	MsgGeneric     = "Ocurrió un error inesperado."
)

// maxReasonLength bounds how much of a plain-text body is shown to users.
const maxReasonLength = 300

// ErrUnavailable is returned without contacting the API while the circuit
// breaker is open.
var ErrUnavailable = errors.New("bienestar api unavailable: circuit open")

// NetworkError reports that the HTTP exchange could not complete
// (offline, DNS failure, refused connection, timeout).
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: request failed: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError reports a response outside the 2xx range.
type ServerError struct {
	Status      int
	Body        string
	ContentType string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Body)
}

// Reason extracts a human-readable explanation from the body: the error,
// mensaje or message key of a JSON body, or the body itself when it is
// short plain text. It returns "" when nothing presentable is found.
func (e *ServerError) Reason() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return ""
	}

	if body[0] == '{' {
		var eb models.ErrorBody
		if err := json.Unmarshal([]byte(body), &eb); err != nil {
			return ""
		}
		return strings.TrimSpace(eb.Text())
	}

	if body[0] == '<' || strings.Contains(strings.ToLower(e.ContentType), "html") {
		return ""
	}
	if !utf8.ValidString(body) || utf8.RuneCountInString(body) > maxReasonLength {
		return ""
	}
	return body
}

// IsServerError reports whether err is a ServerError with the given status.
func IsServerError(err error, status int) bool {
	var se *ServerError
	return errors.As(err, &se) && se.Status == status
}

// UserMessage maps err to the text shown to the user. Server errors show
// their body when it is readable, network errors a connection hint, and
// everything else the fallback (MsgGeneric when fallback is empty).
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if fallback == "" {
		fallback = MsgGeneric
	}

	var se *ServerError
	var ne *NetworkError
	switch {
	case errors.As(err, &se):
		if reason := se.Reason(); reason != "" {
			return reason
		}
		return fallback
	case errors.Is(err, ErrUnavailable):
		return MsgUnavailable
	case errors.Is(err, context.Canceled):
		return fallback
	case errors.As(err, &ne):
		return MsgNetwork
	default:
		return fallback
	}
}
