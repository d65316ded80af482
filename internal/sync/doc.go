// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

/*
Package sync keeps page state consistent with the Bienestar API.

Every data page follows the same discipline: apply a local change right
away, send the write, wait for the backing store to settle, then re-read the
affected collection and replace local state with the authoritative result.
This package implements that discipline once.

Key Components:

  - Store: mutex-guarded view state with a version counter
  - Scope: lifetime guard for a page; results arriving after Close are dropped
  - Coordinator: runs Mutations (patch, write, settle, refetch) against a Store

Failure Policy:

When a write fails the Coordinator surfaces the error and, under the
rollback policy, restores the pre-patch state as long as nothing else has
changed the store since. Under the reconcile policy the patch stays until
the next load. A failed refetch after a successful write returns an error
wrapping ErrReconcileFailed and leaves the patched state in place.

Usage Example:

	store := sync.NewStore(posts)
	scope := sync.NewScope("forum")
	defer scope.Close()

	coord := sync.NewCoordinator(store, scope, &cfg.Sync)
	err := coord.Run(ctx, sync.Mutation[[]models.ForumPost]{
	    Name:  "forum.react",
	    Patch: func(p []models.ForumPost) []models.ForumPost { return incrementLikes(p, id) },
	    Write: func(ctx context.Context) error { return api.React(ctx, id, models.ReactionLike) },
	    Refetch: func(ctx context.Context) ([]models.ForumPost, error) {
	        return api.ListPosts(ctx, models.OrderRecent)
	    },
	})

Thread Safety:

Store, Scope and Coordinator are safe for concurrent use. Overlapping
mutations are not serialized; the last reconciling read wins.
*/
package sync
