// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

// Package prediction drives the depression-risk questionnaire: answer
// entry, validation, the call to POST /api/predict, the submit and abandon
// telemetry events, and the printable report.
//
// A Page sends at most one abandon event, and only if it is unmounted
// without a successful submission.
package prediction
