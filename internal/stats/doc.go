// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

// Package stats turns the aggregate returned by GET /api/stats into
// fixed-shape chart series.
//
// The aggregate is often partial: old servers omit the telemetry metrics,
// fresh deployments have no diet answers yet, and percentages sometimes
// arrive as strings. Build accepts all of that. Percentages that are missing
// or not numeric count as 0, and each optional telemetry group (timing,
// devices, viewports, abandonment, submission window) is derived on its own
// so one missing group never hides another.
//
// Category keys are translated to Spanish display labels. Keys this package
// does not know are shown as sent.
package stats
