// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

// Package testinfra provides test infrastructure shared by the client packages.
//
// # Fake API
//
// FakeAPI is an in-memory stand-in for the Bienestar API served over
// httptest. It stores forum posts, replies, quotes, suggestions and
// accounts with the same ordering rules as the real service, and records
// every request it receives:
//
//	func TestBoard(t *testing.T) {
//	    api := testinfra.NewFakeAPI(t)
//	    api.AddPost("Hola", 0)
//
//	    client := testinfra.NewClient(t, api)
//	    posts, err := client.ListPosts(context.Background(), models.OrderRecent)
//	    // ...
//	    if api.Count(http.MethodGet, "/api/foro/publicaciones") != 1 {
//	        t.Error("expected one list request")
//	    }
//	}
//
// # Fault Injection
//
// Fail makes a route answer with a fixed status and body, optionally a
// limited number of times. Hold blocks a route until released, which lets
// tests tear a page down while its request is still in flight.
package testinfra
