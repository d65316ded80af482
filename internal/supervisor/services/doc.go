// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

/*
Package services adapts serve-mode components to suture.Service.

HTTPServerService turns the blocking ListenAndServe of an *http.Server into
a context-driven Serve with graceful shutdown. RefreshService runs a
function on a fixed interval, starting immediately, and never fails the
supervisor because of a failed call.

Both implement fmt.Stringer so sutureslog events name them.
*/
package services
