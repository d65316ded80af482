// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package main

import (
	"context"
	"errors"
	"strings"

	"github.com/tomtom215/bienestar/internal/forum"
	"github.com/tomtom215/bienestar/internal/models"
)

func runForum(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return errUsage(usageForum)
	}

	board := forum.NewBoard(a.client, &a.cfg.Sync)
	defer board.Close()

	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		fs := newFlagSet("forum list")
		order := fs.String("order", models.OrderRecent, "recientes or populares")
		if err := fs.Parse(rest); err != nil {
			return errUsage("forum list [-order recientes|populares]")
		}
		if err := board.SetOrder(ctx, *order); err != nil {
			if errors.Is(err, forum.ErrUnknownOrder) {
				return errUsage("forum list [-order recientes|populares]")
			}
			return err
		}
		a.printPosts(board.State())
		return nil

	case "post":
		if err := board.CreatePost(ctx, strings.Join(rest, " ")); err != nil {
			return err
		}
		a.printf("Publicación creada.\n")
		return nil

	case "react":
		if len(rest) != 1 {
			return errUsage("forum react <id>")
		}
		if err := board.Load(ctx); err != nil {
			return err
		}
		if err := board.React(ctx, rest[0], models.ReactionLike); err != nil {
			return err
		}
		if p, ok := board.State().Post(rest[0]); ok {
			a.printf("Me gusta: %d\n", p.Likes)
		}
		return nil

	case "replies":
		if len(rest) != 1 {
			return errUsage("forum replies <id>")
		}
		if _, err := board.ToggleReplies(ctx, rest[0]); err != nil {
			return err
		}
		a.printReplies(board.State().Replies[rest[0]])
		return nil

	case "reply":
		if len(rest) < 1 {
			return errUsage("forum reply <id> texto")
		}
		if err := board.CreateReply(ctx, rest[0], strings.Join(rest[1:], " ")); err != nil {
			return err
		}
		a.printReplies(board.State().Replies[rest[0]])
		return nil

	default:
		return errUsage(usageForum)
	}
}

func (a *app) printPosts(s forum.State) {
	if len(s.Posts) == 0 {
		a.printf("Aún no hay publicaciones.\n")
		return
	}
	now := a.now()
	for _, p := range s.Posts {
		a.printf("[%s] %s\n  ♥ %d · %d respuestas · %s\n",
			p.ID, p.Contenido, p.Likes, p.RespuestasCount, forum.RelativeTime(p.Timestamp, now))
	}
}

func (a *app) printReplies(replies []models.ForumReply) {
	if len(replies) == 0 {
		a.printf("Sin respuestas.\n")
		return
	}
	now := a.now()
	for _, r := range replies {
		a.printf("  ↳ %s (%s)\n", r.Contenido, forum.RelativeTime(r.Timestamp, now))
	}
}
