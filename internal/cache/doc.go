// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

// Package cache provides a small typed TTL cache.
//
// Serve mode keeps the chart-ready dashboard and today's quote here so the
// remote API is asked at most once per TTL, however many browsers poll.
// Expired entries are dropped on read; an optional background sweep
// (WithCleanupInterval) also removes entries nobody reads again.
package cache
