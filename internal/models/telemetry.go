// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package models

// Telemetry event types accepted by POST /api/metrics.
const (
	EventSubmit  = "submit"
	EventAbandon = "abandon"
)

// Device types derived from the viewport width.
const (
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceDesktop = "desktop"
)

// DeviceInfo describes the viewport the questionnaire was answered on.
type DeviceInfo struct {
	Type   string `json:"type"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// FormSnapshot carries non-identifying context about the form state.
type FormSnapshot struct {
	HasAge    bool    `json:"hasAge"`
	HasGender bool    `json:"hasGender"`
	Works     *string `json:"works"`
}

// PredictionSummary is the minimal prediction info attached to a submit event.
type PredictionSummary struct {
	Prediction  *int     `json:"prediction"`
	Probability *float64 `json:"probability"`
}

// TelemetryEvent is the body of POST /api/metrics. Timestamps are RFC 3339
// in UTC with millisecond precision.
type TelemetryEvent struct {
	EventType    string       `json:"eventType"`
	SessionID    string       `json:"sessionId"`
	StartedAt    string       `json:"startedAt"`
	UserAgent    string       `json:"userAgent"`
	Device       DeviceInfo   `json:"device"`
	FormSnapshot FormSnapshot `json:"formSnapshot"`

	// Abandon events.
	AbandonedAt string `json:"abandonedAt,omitempty"`

	// Submit events.
	CompletedAt    string             `json:"completedAt,omitempty"`
	TimestampEnvio string             `json:"timestampEnvio,omitempty"`
	TotalMs        int64              `json:"totalMs,omitempty"`
	FieldsMs       map[string]int64   `json:"fieldsMs,omitempty"`
	Prediction     *PredictionSummary `json:"prediction,omitempty"`
}
