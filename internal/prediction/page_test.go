// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package prediction_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/bienestar/internal/config"
	"github.com/tomtom215/bienestar/internal/models"
	"github.com/tomtom215/bienestar/internal/prediction"
	"github.com/tomtom215/bienestar/internal/telemetry"
	"github.com/tomtom215/bienestar/internal/testinfra"
	"github.com/tomtom215/bienestar/internal/validation"
)

func validForm() models.QuestionnaireForm {
	return models.QuestionnaireForm{
		Age:               "21",
		Gender:            models.GenderFemale,
		AcademicPressure:  "4",
		CGPA:              "8.2",
		StudyHours:        "6",
		StudySatisfaction: "2",
		FinancialStress:   "3",
		FamilyHistory:     models.No,
		SuicidalThoughts:  models.No,
		SleepDuration:     models.SleepUnder5,
		DietaryHabits:     models.DietModerate,
		Works:             models.No,
	}
}

func newPage(t *testing.T) (*prediction.Page, *telemetry.Reporter, *testinfra.FakeAPI) {
	t.Helper()
	api := testinfra.NewFakeAPI(t)
	client := testinfra.NewClient(t, api)
	cfg := config.DefaultConfig().Telemetry
	cfg.Enabled = true
	reporter := telemetry.NewReporter(client, &cfg)
	return prediction.NewPage(client, reporter), reporter, api
}

func eventsOfType(t *testing.T, api *testinfra.FakeAPI, eventType string) int {
	t.Helper()
	n := 0
	for _, c := range api.Requests(http.MethodPost, "/api/metrics") {
		var ev models.TelemetryEvent
		if err := json.Unmarshal(c.Body, &ev); err != nil {
			t.Fatalf("decode event: %v", err)
		}
		if ev.EventType == eventType {
			n++
		}
	}
	return n
}

func TestPage_SubmitInvalidSendsNothing(t *testing.T) {
	t.Parallel()
	page, _, api := newPage(t)

	if err := page.Set("age", "12"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	_, err := page.Submit(context.Background())

	var qerr *validation.QuestionnaireError
	if !errors.As(err, &qerr) {
		t.Fatalf("Submit() error = %v, want QuestionnaireError", err)
	}
	if len(prediction.ErrorMessages(err)) != len(qerr.Violations) {
		t.Error("ErrorMessages() does not list every violation")
	}
	if n := len(api.Captures()); n != 0 {
		t.Errorf("requests = %d, want 0", n)
	}
	if page.Submitting() {
		t.Error("Submitting() = true after a rejected submit")
	}
}

func TestPage_SetUnknownField(t *testing.T) {
	t.Parallel()
	page, _, _ := newPage(t)
	if err := page.Set("height", "180"); !errors.Is(err, prediction.ErrUnknownField) {
		t.Errorf("Set() error = %v, want ErrUnknownField", err)
	}
}

func TestPage_SubmitSuccess(t *testing.T) {
	t.Parallel()
	page, reporter, api := newPage(t)
	api.SetPrediction(models.PredictionResult{Prediction: 1, Probability: 0.74})

	page.SetForm(validForm())
	page.Focus("age")
	page.Blur("age")
	res, err := page.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !res.HighRisk() || page.Result() != res {
		t.Errorf("result = %+v, stored %+v", res, page.Result())
	}

	reqs := api.Requests(http.MethodPost, "/api/predict")
	if len(reqs) != 1 {
		t.Fatalf("predict POSTs = %d, want 1", len(reqs))
	}
	var sent models.PredictionRequest
	if err := json.Unmarshal(reqs[0].Body, &sent); err != nil {
		t.Fatalf("decode request: %v", err)
	}
	if sent.Age != 21 || sent.CGPA != 8.2 || sent.WorkPressure != 0 {
		t.Errorf("payload = %+v", sent)
	}

	reporter.Wait()
	if n := eventsOfType(t, api, models.EventSubmit); n != 1 {
		t.Errorf("submit events = %d, want 1", n)
	}
}

func TestPage_SubmitServerError(t *testing.T) {
	t.Parallel()
	page, reporter, api := newPage(t)
	api.Fail(http.MethodPost, "/api/predict", testinfra.Failure{Status: http.StatusInternalServerError, Body: `{"error":"modelo no cargado"}`})

	page.SetForm(validForm())
	_, err := page.Submit(context.Background())
	if err == nil {
		t.Fatal("Submit() error = nil")
	}
	msgs := prediction.ErrorMessages(err)
	if len(msgs) != 1 || msgs[0] != "Error en el servidor: modelo no cargado" {
		t.Errorf("ErrorMessages() = %v", msgs)
	}
	if page.Result() != nil {
		t.Error("Result() set after a failure")
	}

	// A failed submission still counts as abandoned.
	page.Unmount()
	reporter.Wait()
	if n := eventsOfType(t, api, models.EventAbandon); n != 1 {
		t.Errorf("abandon events = %d, want 1", n)
	}
	if n := eventsOfType(t, api, models.EventSubmit); n != 0 {
		t.Errorf("submit events = %d, want 0", n)
	}
}

func TestPage_AbandonAtMostOnce(t *testing.T) {
	tests := []struct {
		name        string
		submit      bool
		wantAbandon int
	}{
		{"unmount before submit", false, 1},
		{"submit then unmount", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, reporter, api := newPage(t)
			page.SetForm(validForm())
			if tt.submit {
				if _, err := page.Submit(context.Background()); err != nil {
					t.Fatalf("Submit() error = %v", err)
				}
			}

			page.Unmount()
			page.Unmount()
			reporter.Wait()

			if n := eventsOfType(t, api, models.EventAbandon); n != tt.wantAbandon {
				t.Errorf("abandon events = %d, want %d", n, tt.wantAbandon)
			}
		})
	}
}

func TestPage_SubmitAfterUnmount(t *testing.T) {
	t.Parallel()
	page, reporter, api := newPage(t)
	page.SetForm(validForm())
	page.Unmount()
	reporter.Wait()

	if _, err := page.Submit(context.Background()); err == nil {
		t.Fatal("Submit() after Unmount() succeeded")
	}
	if n := api.Count(http.MethodPost, "/api/predict"); n != 0 {
		t.Errorf("predict POSTs = %d, want 0", n)
	}
}

func TestPage_DelayIsCancellable(t *testing.T) {
	t.Parallel()
	api := testinfra.NewFakeAPI(t)
	page := prediction.NewPage(testinfra.NewClient(t, api), nil, prediction.WithDelay(time.Hour))
	page.SetForm(validForm())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := page.Submit(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Submit() error = %v, want deadline exceeded", err)
	}
	if n := api.Count(http.MethodPost, "/api/predict"); n != 0 {
		t.Errorf("predict POSTs = %d, want 0", n)
	}
}

func TestPage_Reset(t *testing.T) {
	t.Parallel()
	page, reporter, _ := newPage(t)
	page.SetForm(validForm())
	page.Focus("cgpa")
	page.Blur("cgpa")
	session := reporter.SessionID()

	page.Reset()

	if page.Form() != (models.QuestionnaireForm{}) {
		t.Errorf("Form() = %+v, want empty", page.Form())
	}
	if len(reporter.FieldTimes()) != 0 {
		t.Error("field timings survived Reset()")
	}
	if reporter.SessionID() != session {
		t.Error("Reset() started a new session")
	}
}

func TestReport(t *testing.T) {
	form := validForm()
	now := time.Date(2025, 11, 3, 9, 5, 0, 0, time.UTC)

	got := prediction.Report(form, &models.PredictionResult{Prediction: 1, Probability: 0.7412}, now)
	for _, want := range []string{
		prediction.ReportTitle,
		"Fecha del reporte: lunes, 3 de noviembre de 2025, 09:05",
		"una mujer de 21 años",
		"riesgo ELEVADO",
		"74.1%",
		"menor a 5 horas",
		"no se encuentra trabajando",
		prediction.ReportHelpline,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Report() missing %q", want)
		}
	}

	low := prediction.Report(models.QuestionnaireForm{}, nil, now)
	for _, want := range []string{"una persona de N/D años", "riesgo BAJO", "probabilidad de N/A", "no especificada"} {
		if !strings.Contains(low, want) {
			t.Errorf("Report(empty) missing %q", want)
		}
	}
}

func TestReportRows(t *testing.T) {
	form := validForm()
	form.Works = models.Yes
	form.WorkPressure = "4"
	form.DietaryHabits = models.DietHealthy

	rows := prediction.ReportRows(form)
	if len(rows) != 13 {
		t.Fatalf("rows = %d, want 13", len(rows))
	}
	want := map[string]string{
		"Género":               "Mujer",
		"Duración del sueño":   "Menos de 5 horas",
		"Hábitos alimenticios": "Saludables",
		"Trabaja actualmente":  "Sí",
		"Presión laboral":      "4",
	}
	for _, r := range rows {
		if w, ok := want[r.Label]; ok && r.Value != w {
			t.Errorf("%s = %q, want %q", r.Label, r.Value, w)
		}
	}
}
