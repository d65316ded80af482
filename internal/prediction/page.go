// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package prediction

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/tomtom215/bienestar/internal/gateway"
	"github.com/tomtom215/bienestar/internal/logging"
	"github.com/tomtom215/bienestar/internal/models"
	intsync "github.com/tomtom215/bienestar/internal/sync"
	"github.com/tomtom215/bienestar/internal/telemetry"
	"github.com/tomtom215/bienestar/internal/validation"
)

var (
	// ErrSubmitting is returned by Submit while a previous submission is
	// still waiting for its prediction.
	ErrSubmitting = errors.New("questionnaire submission already in progress")

	// ErrUnknownField is returned by Set for a key that is not part of the
	// questionnaire.
	ErrUnknownField = errors.New("unknown questionnaire field")
)

// Predictor runs the risk model. backend.Client implements it.
type Predictor interface {
	Predict(ctx context.Context, req *models.PredictionRequest) (*models.PredictionResult, error)
}

// Page is the questionnaire view: it holds the answers, validates them,
// requests the prediction and reports usage telemetry.
type Page struct {
	api      Predictor
	reporter *telemetry.Reporter
	scope    *intsync.Scope
	delay    time.Duration
	now      func() time.Time

	mu         sync.Mutex
	form       models.QuestionnaireForm
	result     *models.PredictionResult
	submitting bool
	submitted  bool

	unmount sync.Once
}

// Option customizes a Page.
type Option func(*Page)

// WithDelay holds every submission for d before the prediction request
// is sent, so a progress indicator is visible.
func WithDelay(d time.Duration) Option {
	return func(p *Page) { p.delay = d }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Page) { p.now = now }
}

// NewPage opens the questionnaire. reporter may be nil to disable
// telemetry entirely.
func NewPage(api Predictor, reporter *telemetry.Reporter, opts ...Option) *Page {
	p := &Page{
		api:      api,
		reporter: reporter,
		scope:    intsync.NewScope("questionnaire"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Set records an answer by wire key.
func (p *Page) Set(field, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.form.Set(field, value) {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return nil
}

// SetForm replaces every answer at once.
func (p *Page) SetForm(form models.QuestionnaireForm) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.form = form
}

// Focus starts timing a field.
func (p *Page) Focus(field string) {
	if p.reporter != nil {
		p.reporter.Focus(field)
	}
}

// Blur stops timing a field.
func (p *Page) Blur(field string) {
	if p.reporter != nil {
		p.reporter.Blur(field)
	}
}

// Form returns the current answers.
func (p *Page) Form() models.QuestionnaireForm {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.form
}

// Result returns the last prediction, or nil.
func (p *Page) Result() *models.PredictionResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result
}

// Submitting reports whether a submission is in flight.
func (p *Page) Submitting() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.submitting
}

// Submit validates the answers and requests a prediction.
//
// An invalid form returns a *validation.QuestionnaireError listing every
// problem, and nothing is sent. On success the result is kept, the page
// counts as submitted, and a submit telemetry event is sent.
func (p *Page) Submit(ctx context.Context) (*models.PredictionResult, error) {
	p.mu.Lock()
	if p.submitting {
		p.mu.Unlock()
		return nil, ErrSubmitting
	}
	form := p.form
	p.mu.Unlock()

	payload, err := validation.ToPayload(form)
	if err != nil {
		return nil, err
	}
	if p.scope.Closed() {
		return nil, intsync.ErrScopeClosed
	}

	p.mu.Lock()
	p.submitting = true
	p.result = nil
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.submitting = false
		p.mu.Unlock()
	}()

	submittedAt := p.now()
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	result, err := p.api.Predict(ctx, &payload)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Prediction request failed")
		return nil, err
	}

	applied := p.scope.Apply(func() {
		p.mu.Lock()
		p.result = result
		p.submitted = true
		p.mu.Unlock()
	})
	if !applied {
		return result, nil
	}

	if p.reporter != nil {
		p.reporter.Submit(ctx, form, submittedAt, result)
	}
	return result, nil
}

// Reset clears the answers, the result and the field timings. The
// telemetry session continues.
func (p *Page) Reset() {
	p.mu.Lock()
	p.form = models.QuestionnaireForm{}
	p.result = nil
	p.mu.Unlock()
	if p.reporter != nil {
		p.reporter.ResetFields()
	}
}

// Unmount closes the page. If nothing was submitted an abandon event is
// sent in the background. Calling Unmount again does nothing.
func (p *Page) Unmount() {
	p.unmount.Do(func() {
		p.scope.Close()

		p.mu.Lock()
		submitted, form := p.submitted, p.form
		p.mu.Unlock()

		if !submitted && p.reporter != nil {
			p.reporter.Abandon(context.Background(), form)
		}
	})
}

func (p *Page) wait(ctx context.Context) error {
	if p.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(p.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.scope.Context().Done():
		return intsync.ErrScopeClosed
	}
}

// ErrorMessages maps a Submit error to the lines shown to the user.
func ErrorMessages(err error) []string {
	var qerr *validation.QuestionnaireError
	var serr *gateway.ServerError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &qerr):
		return qerr.Violations
	case errors.As(err, &serr):
		reason := serr.Reason()
		if reason == "" {
			reason = http.StatusText(serr.Status)
		}
		return []string{"Error en el servidor: " + reason}
	default:
		return []string{gateway.UserMessage(err, "")}
	}
}
