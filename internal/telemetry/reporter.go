// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/bienestar/internal/config"
	"github.com/tomtom215/bienestar/internal/logging"
	"github.com/tomtom215/bienestar/internal/metrics"
	"github.com/tomtom215/bienestar/internal/models"
)

// Sender delivers one telemetry event. backend.Client implements it.
type Sender interface {
	SendMetrics(ctx context.Context, event *models.TelemetryEvent) error
}

// DeviceType classifies a viewport width the same way the statistics
// dashboard groups devices.
func DeviceType(width int) string {
	switch {
	case width < 640:
		return models.DeviceMobile
	case width < 1024:
		return models.DeviceTablet
	default:
		return models.DeviceDesktop
	}
}

// Reporter collects usage data for one questionnaire session and sends it
// as submit or abandon events. Delivery is best effort: failures are logged
// and counted, never returned.
type Reporter struct {
	sender  Sender
	cfg     config.TelemetryConfig
	session string
	started time.Time
	now     func() time.Time

	mu     sync.Mutex
	focus  map[string]time.Time
	fields map[string]int64

	inflight sync.WaitGroup
}

// Option customizes a Reporter.
type Option func(*Reporter)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Reporter) { r.now = now }
}

// WithSessionID fixes the session id instead of generating one.
func WithSessionID(id string) Option {
	return func(r *Reporter) { r.session = id }
}

// NewReporter starts a session. A nil cfg uses the default telemetry
// configuration.
func NewReporter(sender Sender, cfg *config.TelemetryConfig, opts ...Option) *Reporter {
	r := &Reporter{
		sender: sender,
		now:    time.Now,
		focus:  make(map[string]time.Time),
		fields: make(map[string]int64),
	}
	if cfg != nil {
		r.cfg = *cfg
	} else {
		r.cfg = config.DefaultConfig().Telemetry
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.session == "" {
		r.session = uuid.New().String()
	}
	r.started = r.now()
	return r
}

// SessionID returns the random per-session identifier.
func (r *Reporter) SessionID() string {
	return r.session
}

// StartedAt returns when the session began.
func (r *Reporter) StartedAt() time.Time {
	return r.started
}

// Focus marks the start of time spent on field.
func (r *Reporter) Focus(field string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.focus[field] = r.now()
}

// Blur adds the time since the matching Focus to field's total. A Blur
// without a Focus is ignored.
func (r *Reporter) Blur(field string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	start, ok := r.focus[field]
	if !ok {
		return
	}
	r.fields[field] += r.now().Sub(start).Milliseconds()
	delete(r.focus, field)
}

// FieldTimes returns the accumulated milliseconds per field.
func (r *Reporter) FieldTimes() map[string]int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]int64, len(r.fields))
	for k, v := range r.fields {
		out[k] = v
	}
	return out
}

// ResetFields forgets field timings. The session id and start time stay.
func (r *Reporter) ResetFields() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.focus = make(map[string]time.Time)
	r.fields = make(map[string]int64)
}

// Submit sends the submit event for a completed questionnaire. submittedAt
// is when the user pressed submit; result may be nil.
func (r *Reporter) Submit(ctx context.Context, form models.QuestionnaireForm, submittedAt time.Time, result *models.PredictionResult) {
	event := r.event(models.EventSubmit, form)
	event.CompletedAt = iso(r.now())
	event.TimestampEnvio = iso(submittedAt)
	event.TotalMs = submittedAt.Sub(r.started).Milliseconds()
	event.FieldsMs = r.FieldTimes()
	event.Prediction = &models.PredictionSummary{}
	if result != nil {
		prediction, probability := result.Prediction, result.Probability
		event.Prediction.Prediction = &prediction
		event.Prediction.Probability = &probability
	}
	r.send(ctx, event)
}

// Abandon sends the abandon event in the background and returns
// immediately. The send outlives ctx's cancellation but keeps its values.
func (r *Reporter) Abandon(ctx context.Context, form models.QuestionnaireForm) {
	event := r.event(models.EventAbandon, form)
	event.AbandonedAt = iso(r.now())

	r.inflight.Add(1)
	go func() {
		defer r.inflight.Done()
		r.send(context.WithoutCancel(ctx), event)
	}()
}

// Wait blocks until background sends have finished.
func (r *Reporter) Wait() {
	r.inflight.Wait()
}

func (r *Reporter) event(eventType string, form models.QuestionnaireForm) *models.TelemetryEvent {
	snapshot := models.FormSnapshot{
		HasAge:    form.Age != "",
		HasGender: form.Gender != "",
	}
	if form.Works != "" {
		works := form.Works
		snapshot.Works = &works
	}
	return &models.TelemetryEvent{
		EventType: eventType,
		SessionID: r.session,
		StartedAt: iso(r.started),
		UserAgent: r.cfg.UserAgent,
		Device: models.DeviceInfo{
			Type:   DeviceType(r.cfg.ViewportWidth),
			Width:  r.cfg.ViewportWidth,
			Height: r.cfg.ViewportHeight,
		},
		FormSnapshot: snapshot,
	}
}

func (r *Reporter) send(ctx context.Context, event *models.TelemetryEvent) {
	if !r.cfg.Enabled || r.sender == nil {
		return
	}
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	err := r.sender.SendMetrics(ctx, event)
	metrics.RecordTelemetry(event.EventType, err == nil)
	if err != nil {
		logging.Ctx(ctx).Warn().
			Err(err).
			Str("event_type", event.EventType).
			Str("session_id", event.SessionID).
			Msg("Failed to send telemetry event")
		return
	}
	logging.Ctx(ctx).Debug().Str("event_type", event.EventType).Msg("Telemetry event sent")
}

func iso(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
