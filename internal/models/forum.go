// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package models

// Forum list orderings accepted by GET /api/foro/publicaciones.
const (
	OrderRecent  = "recientes"
	OrderPopular = "populares"
)

// Content limits enforced by the forum, in characters.
const (
	MaxPostLength  = 500
	MaxReplyLength = 300
)

// ReactionLike is the only reaction type the forum supports.
const ReactionLike = "like"

// ForumPost is an anonymous forum publication. Timestamp is Unix milliseconds.
type ForumPost struct {
	ID              string `json:"id"`
	Contenido       string `json:"contenido"`
	Timestamp       int64  `json:"timestamp"`
	Likes           int    `json:"likes"`
	RespuestasCount int    `json:"respuestas_count"`
}

// ForumReply is a reply under a post. Timestamp is Unix milliseconds.
type ForumReply struct {
	ID        string `json:"id"`
	Contenido string `json:"contenido"`
	Timestamp int64  `json:"timestamp"`
}

// PostList is the body of GET /api/foro/publicaciones.
type PostList struct {
	Publicaciones []ForumPost `json:"publicaciones"`
	Total         int         `json:"total"`
}

// ReplyList is the body of GET /api/foro/publicaciones/{id}/respuestas.
type ReplyList struct {
	Respuestas []ForumReply `json:"respuestas"`
	Total      int          `json:"total"`
}

// NewPostRequest is the body of POST /api/foro/publicaciones.
type NewPostRequest struct {
	Contenido string `json:"contenido" validate:"required,max=500"`
}

// NewReplyRequest is the body of POST /api/foro/publicaciones/{id}/respuestas.
type NewReplyRequest struct {
	Contenido string `json:"contenido" validate:"required,max=300"`
}

// ReactionRequest is the body of POST /api/foro/publicaciones/{id}/reaccion.
type ReactionRequest struct {
	Tipo string `json:"tipo" validate:"required,oneof=like"`
}

// CreatedResponse acknowledges a created post or reply.
type CreatedResponse struct {
	ID        string `json:"id"`
	Mensaje   string `json:"mensaje"`
	Timestamp int64  `json:"timestamp"`
}

// ReactionResponse carries the server-side like count after a reaction.
type ReactionResponse struct {
	Mensaje string `json:"mensaje"`
	Likes   int    `json:"likes"`
}
