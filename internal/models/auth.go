// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package models

// Credentials is the body of POST /api/login and POST /api/register.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the body of a successful POST /api/login.
type LoginResponse struct {
	Message  string `json:"message,omitempty"`
	Token    string `json:"token"`
	Username string `json:"username"`
}

// MessageResponse is a generic acknowledgement body.
type MessageResponse struct {
	Message string `json:"message,omitempty"`
	Mensaje string `json:"mensaje,omitempty"`
}

// ErrorBody is the shape of error responses. The API uses error for most
// failures and mensaje for a few.
type ErrorBody struct {
	Error   string `json:"error,omitempty"`
	Mensaje string `json:"mensaje,omitempty"`
	Message string `json:"message,omitempty"`
}

// Text returns the first non-empty message in the body.
func (e *ErrorBody) Text() string {
	switch {
	case e.Error != "":
		return e.Error
	case e.Mensaje != "":
		return e.Mensaje
	default:
		return e.Message
	}
}
