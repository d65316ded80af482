// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

/*
Package telemetry reports anonymous questionnaire usage to POST /api/metrics.

A Reporter lives as long as one questionnaire session. It carries a random
session id, the session start time, the configured viewport (classified as
mobile, tablet or desktop) and the time spent on each field between Focus
and Blur calls.

Two events exist:

  - submit: sent after a successful prediction, with total and per-field
    durations and the predicted class
  - abandon: sent when the questionnaire is left without submitting

Nothing here can fail the caller. Errors are logged at warn level and
counted in bienestar_telemetry_events_total{result="dropped"}. Abandon runs
in the background; Wait drains it before shutdown.
*/
package telemetry
