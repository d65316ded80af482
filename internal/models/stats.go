// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package models

import (
	"bytes"
	"math"
	"strconv"

	"github.com/goccy/go-json"
)

// Number is a leniently decoded JSON number. Numeric strings are parsed;
// any other non-numeric value, NaN and infinities included, decodes to 0
// instead of failing the payload.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	text := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			*n = 0
			return nil
		}
	}
	*n = Number(finiteOrZero(text))
	return nil
}

func finiteOrZero(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Float returns the value as float64.
func (n Number) Float() float64 { return float64(n) }

// Text is a leniently decoded JSON scalar kept as text. Strings decode to
// their value; numbers and booleans keep their literal form.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	*t = Text(data)
	return nil
}

// Bucket is a count with its share of the total in percent.
type Bucket struct {
	Count Number `json:"count"`
	Pct   Number `json:"pct"`
}

// Distribution maps backend category keys to buckets.
type Distribution map[string]Bucket

// StatsAggregate is the body of GET /api/stats. Everything except
// TotalRegistros may be absent; nil means the group was not sent.
type StatsAggregate struct {
	TotalRegistros         int               `json:"total_registros"`
	GenderDistribution     Distribution      `json:"gender_distribution"`
	RiskDistribution       *RiskDistribution `json:"risk_distribution"`
	FamilyHistoryYesPct    Number            `json:"family_history_yes_pct"`
	SuicidalThoughtsYesPct Number            `json:"suicidal_thoughts_yes_pct"`
	SleepDistribution      Distribution      `json:"sleep_distribution"`
	DietaryDistribution    Distribution      `json:"dietary_distribution"`
	Averages               map[string]Number `json:"averages"`
	Metrics                *UsageMetrics     `json:"metrics"`
}

// RiskDistribution splits predictions into high and low risk.
type RiskDistribution struct {
	High Bucket `json:"high"`
	Low  Bucket `json:"low"`
}

// UsageMetrics is computed from questionnaire telemetry.
type UsageMetrics struct {
	AvgCompletionSeconds    *Number              `json:"avg_completion_seconds"`
	MedianCompletionSeconds *Number              `json:"median_completion_seconds"`
	P90CompletionSeconds    *Number              `json:"p90_completion_seconds"`
	FieldTimes              map[string]FieldTime `json:"field_times"`
	DeviceDistribution      Distribution         `json:"device_distribution"`
	ViewportDistribution    Distribution         `json:"viewport_distribution"`
	Abandonment             *Abandonment         `json:"abandonment"`
	FirstSubmissionAt       *Text                `json:"first_submission_at"`
	LastSubmissionAt        *Text                `json:"last_submission_at"`
}

// FieldTime is the average time spent on one questionnaire field.
// Older servers send mean_seconds instead of avg_seconds.
type FieldTime struct {
	AvgSeconds  *Number `json:"avg_seconds"`
	MeanSeconds *Number `json:"mean_seconds"`
}

// Seconds returns the average, preferring avg_seconds.
func (f FieldTime) Seconds() (float64, bool) {
	if f.AvgSeconds != nil {
		return f.AvgSeconds.Float(), true
	}
	if f.MeanSeconds != nil {
		return f.MeanSeconds.Float(), true
	}
	return 0, false
}

// Abandonment counts completed against abandoned questionnaire sessions.
type Abandonment struct {
	Completed    *Number `json:"completed"`
	Abandoned    *Number `json:"abandoned"`
	CompletedPct Number  `json:"completed_pct"`
	AbandonedPct Number  `json:"abandoned_pct"`
}
