// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

// Package forum implements the anonymous community forum view.
//
// A Board keeps the post list, the expanded reply threads and the current
// ordering. Every write (post, reply, reaction) is a coordinated mutation:
// reactions are shown immediately, and after the server settles the list is
// read again and replaces whatever the client guessed. Blank content never
// reaches the network.
package forum
