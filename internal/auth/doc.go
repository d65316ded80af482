// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

/*
Package auth holds the client's sign-in state.

The remote API issues an opaque token from POST /api/login. This package
keeps that token and the username in a Store so the user stays signed in
between runs:

  - MemoryStore: process lifetime only (default)
  - BadgerStore: a local BadgerDB directory (session.store_path)

When session.encryption_key is set the token is sealed with AES-GCM under a
key derived by HKDF-SHA256 before it touches disk. Generate a key with
GenerateEncryptionKey.

A Context is created once at startup with NewContext. If the stored token
is a JWT whose exp claim has passed, the session is dropped and the user
starts signed out. The signature is never verified here; the API remains
the authority. Context implements gateway.TokenSource, so every request
made through the gateway carries the current bearer token.

Usage:

	store, err := auth.NewStore(&cfg.Session)
	if err != nil {
	    return err
	}
	defer store.Close()

	authCtx := auth.NewContext(ctx, store)
	gw := gateway.New(&cfg.API, gateway.WithTokenSource(authCtx))
	api := backend.New(gw)

	if err := authCtx.Login(ctx, api, "ana", "secreto"); err != nil {
	    fmt.Println(gateway.UserMessage(err, "No se pudo iniciar sesión"))
	}
*/
package auth
