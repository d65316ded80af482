// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package main

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/bienestar/internal/models"
	"github.com/tomtom215/bienestar/internal/quotes"
	"github.com/tomtom215/bienestar/internal/testinfra"
)

type cli struct {
	t    *testing.T
	fake *testinfra.FakeAPI
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	fake := testinfra.NewFakeAPI(t)
	t.Setenv("BIENESTAR_API_URL", fake.URL())
	t.Setenv("SESSION_STORE_PATH", filepath.Join(t.TempDir(), "session"))
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("SYNC_SETTLE_DELAY", "1ms")
	return &cli{t: t, fake: fake}
}

func (c *cli) run(stdin string, args ...string) (code int, stdout, stderr string) {
	c.t.Helper()
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

var validAnswers = []string{
	"-age", "21", "-gender", "Female", "-academic_pressure", "4", "-cgpa", "7.8",
	"-study_hours", "6", "-study_satisfaction", "3", "-financial_stress", "2",
	"-family_history", "No", "-suicidal_thoughts", "No", "-sleep_duration", "7-8 hours",
	"-dietary_habits", "Moderate", "-works", "No",
}

func TestRun_UsageAndUnknownCommand(t *testing.T) {
	c := newCLI(t)

	code, out, _ := c.run("")
	if code != 0 || !strings.Contains(out, "bienestar predict") {
		t.Errorf("no args: code = %d, out = %q", code, out)
	}

	code, _, errOut := c.run("", "bogus")
	if code != 1 || !strings.Contains(errOut, "Comando desconocido: bogus") {
		t.Errorf("unknown: code = %d, stderr = %q", code, errOut)
	}
}

func TestRun_Quote(t *testing.T) {
	c := newCLI(t)

	code, out, _ := c.run("", "quote")
	if code != 0 || strings.TrimSpace(out) != quotes.MsgNoQuote {
		t.Errorf("no quote: code = %d, out = %q", code, out)
	}

	c.fake.AddQuote("Respira hondo")
	code, out, _ = c.run("", "quote")
	if code != 0 || !strings.Contains(out, "Respira hondo") {
		t.Errorf("quote: code = %d, out = %q", code, out)
	}
}

func TestRun_Stats(t *testing.T) {
	c := newCLI(t)
	c.fake.SetStats(`{"total_registros": 12, "risk_distribution": {"high": {"count": 3, "pct": 25}, "low": {"count": 9, "pct": 75}}}`)

	code, out, _ := c.run("", "stats")
	if code != 0 {
		t.Fatalf("code = %d", code)
	}
	for _, want := range []string{"Cuestionarios registrados: 12", "Riesgo alto: 25.0%", "Alimentación"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q:\n%s", want, out)
		}
	}

	code, out, _ = c.run("", "stats", "-json")
	var d struct {
		Total int `json:"total_registros"`
	}
	if code != 0 || json.Unmarshal([]byte(out), &d) != nil || d.Total != 12 {
		t.Errorf("stats -json: code = %d, out = %q", code, out)
	}
}

func TestRun_StatsRemoteFailure(t *testing.T) {
	c := newCLI(t)
	c.fake.Fail(http.MethodGet, "/api/stats", testinfra.Failure{Status: http.StatusInternalServerError, Body: `{"error":"base de datos caída"}`})

	code, _, errOut := c.run("", "stats")
	if code != 1 || strings.TrimSpace(errOut) != "base de datos caída" {
		t.Errorf("code = %d, stderr = %q", code, errOut)
	}
}

func TestRun_Predict(t *testing.T) {
	c := newCLI(t)
	c.fake.SetPrediction(models.PredictionResult{Prediction: 1, Probability: 0.81, Message: "Alto riesgo de depresión (Probabilidad: 0.81)"})

	code, out, errOut := c.run("", append([]string{"predict"}, validAnswers...)...)
	if code != 0 {
		t.Fatalf("code = %d, stderr = %q", code, errOut)
	}
	if !strings.Contains(out, "Alto riesgo de depresión") {
		t.Errorf("out = %q", out)
	}

	reqs := c.fake.Requests(http.MethodPost, "/api/predict")
	if len(reqs) != 1 {
		t.Fatalf("predict requests = %d", len(reqs))
	}
	var body models.PredictionRequest
	if err := json.Unmarshal(reqs[0].Body, &body); err != nil {
		t.Fatalf("decode predict body: %v", err)
	}
	if body.Age != 21 || body.CGPA != 7.8 || body.WorkPressure != 0 {
		t.Errorf("predict body = %+v", body)
	}
	if n := c.fake.Count(http.MethodPost, "/api/metrics"); n != 1 {
		t.Errorf("telemetry events = %d, want 1 submit", n)
	}
}

func TestRun_PredictFromFile(t *testing.T) {
	c := newCLI(t)
	path := filepath.Join(t.TempDir(), "respuestas.yaml")
	yamlBody := `age: 22
gender: Male
academic_pressure: 2
cgpa: 8.1
study_hours: 5
study_satisfaction: 4
financial_stress: 1
family_history: "No"
suicidal_thoughts: "No"
sleep_duration: More than 8 hours
dietary_habits: Others
works: "Yes"
work_pressure: 2
`
	if err := os.WriteFile(path, []byte(yamlBody), 0o600); err != nil {
		t.Fatal(err)
	}

	code, out, errOut := c.run("", "predict", "-file", path, "-age", "23", "-report")
	if code != 0 {
		t.Fatalf("code = %d, stderr = %q", code, errOut)
	}
	if !strings.Contains(out, "Resumen de respuestas") {
		t.Errorf("report missing summary:\n%s", out)
	}

	var body models.PredictionRequest
	_ = json.Unmarshal(c.fake.Requests(http.MethodPost, "/api/predict")[0].Body, &body)
	if body.Age != 23 || body.WorkPressure != 2 || body.DietaryHabits != models.DietHealthy {
		t.Errorf("predict body = %+v", body)
	}
}

func TestRun_PredictIncomplete(t *testing.T) {
	c := newCLI(t)

	code, _, errOut := c.run("", "predict", "-age", "21")
	if code != 1 || errOut == "" {
		t.Fatalf("code = %d, stderr = %q", code, errOut)
	}
	if n := c.fake.Count(http.MethodPost, "/api/predict"); n != 0 {
		t.Errorf("incomplete questionnaire sent %d predictions", n)
	}
	// Leaving without a result counts as an abandon.
	if n := c.fake.Count(http.MethodPost, "/api/metrics"); n != 1 {
		t.Errorf("telemetry events = %d, want 1 abandon", n)
	}
}

func TestRun_ProtectedCommandsNeedSession(t *testing.T) {
	c := newCLI(t)
	c.fake.AddUser("ana", "secreto123")
	c.fake.AddQuote("Un paso a la vez")

	for _, args := range [][]string{{"quotes", "list"}, {"suggestions"}, {"whoami"}} {
		code, _, errOut := c.run("", args...)
		if code != 1 || strings.TrimSpace(errOut) != msgSignInRequired {
			t.Errorf("%v anonymous: code = %d, stderr = %q", args, code, errOut)
		}
	}

	code, out, errOut := c.run("secreto123\n", "login", "-username", "ana")
	if code != 0 || !strings.Contains(out, "ana") {
		t.Fatalf("login: code = %d, out = %q, stderr = %q", code, out, errOut)
	}

	// The session survives across invocations.
	code, out, _ = c.run("", "whoami")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if code != 0 || lines[0] != "ana" || !strings.Contains(out, "quotes-admin") {
		t.Errorf("whoami: code = %d, out = %q", code, out)
	}
	code, out, _ = c.run("", "quotes", "list")
	if code != 0 || !strings.Contains(out, "Un paso a la vez") {
		t.Errorf("quotes list: code = %d, out = %q", code, out)
	}
	reqs := c.fake.Requests(http.MethodGet, "/api/frases")
	if len(reqs) == 0 || !strings.HasPrefix(reqs[len(reqs)-1].Header.Get("Authorization"), "Bearer ") {
		t.Error("signed-in request carried no bearer token")
	}

	if code, _, _ = c.run("", "logout"); code != 0 {
		t.Errorf("logout code = %d", code)
	}
	if code, _, _ = c.run("", "whoami"); code != 1 {
		t.Errorf("whoami after logout code = %d", code)
	}
}

func TestRun_LoginFailure(t *testing.T) {
	c := newCLI(t)
	c.fake.AddUser("ana", "secreto123")

	code, _, errOut := c.run("", "login", "-username", "ana", "-password", "mala")
	if code != 1 || errOut == "" {
		t.Errorf("code = %d, stderr = %q", code, errOut)
	}
	if code, _, _ := c.run("", "whoami"); code != 1 {
		t.Error("failed login left a session")
	}
}

func TestRun_QuotesAdmin(t *testing.T) {
	c := newCLI(t)
	c.fake.AddUser("ana", "secreto123")
	if code, _, errOut := c.run("", "login", "-username", "ana", "-password", "secreto123"); code != 0 {
		t.Fatalf("login: %q", errOut)
	}

	code, out, errOut := c.run("", "quotes", "add", "Hoy", "es", "un", "buen", "día")
	if code != 0 || !strings.Contains(out, "Frase guardada") {
		t.Fatalf("add: code = %d, out = %q, stderr = %q", code, out, errOut)
	}
	list := c.fake.Quotes()
	if len(list) != 1 || list[0].Contenido != "Hoy es un buen día" {
		t.Fatalf("quotes = %+v", list)
	}

	if code, _, _ := c.run("", "quotes", "feature", list[0].ID); code != 0 {
		t.Errorf("feature code = %d", code)
	}
	if code, _, _ := c.run("", "quotes", "delete", list[0].ID); code != 0 {
		t.Errorf("delete code = %d", code)
	}
	if len(c.fake.Quotes()) != 0 {
		t.Error("quote not deleted")
	}

	code, _, errOut = c.run("", "quotes", "add", "   ")
	if code != 1 || !strings.Contains(errOut, quotes.ErrEmptyQuote.Error()) {
		t.Errorf("blank add: code = %d, stderr = %q", code, errOut)
	}
}

func TestRun_Forum(t *testing.T) {
	c := newCLI(t)
	post := c.fake.AddPost("¿Cómo organizan sus horas de estudio?", 2)

	code, out, _ := c.run("", "forum", "list")
	if code != 0 || !strings.Contains(out, "horas de estudio") {
		t.Fatalf("list: code = %d, out = %q", code, out)
	}

	code, out, errOut := c.run("", "forum", "react", post.ID)
	if code != 0 || !strings.Contains(out, "Me gusta: 3") {
		t.Errorf("react: code = %d, out = %q, stderr = %q", code, out, errOut)
	}

	code, out, _ = c.run("", "forum", "reply", post.ID, "Con", "pomodoros")
	if code != 0 || !strings.Contains(out, "Con pomodoros") {
		t.Errorf("reply: code = %d, out = %q", code, out)
	}

	code, _, errOut = c.run("", "forum", "post", " ")
	if code != 1 || errOut == "" {
		t.Errorf("blank post: code = %d", code)
	}
	if n := c.fake.Count(http.MethodPost, "/api/foro/publicaciones"); n != 0 {
		t.Errorf("blank post sent %d requests", n)
	}

	if code, _, _ := c.run("", "forum", "list", "-order", "viejos"); code != 1 {
		t.Errorf("unknown order code = %d", code)
	}
}

func TestRun_Suggest(t *testing.T) {
	c := newCLI(t)

	code, _, errOut := c.run("", "suggest", "-category", "Elogio", "Muy", "útil")
	if code != 1 || errOut == "" {
		t.Errorf("unknown category: code = %d", code)
	}
	if len(c.fake.Suggestions()) != 0 {
		t.Error("invalid suggestion was sent")
	}

	code, out, _ := c.run("", "suggest", "-category", models.CategoryRecommendation, "Agregar", "modo", "oscuro")
	if code != 0 || !strings.Contains(out, "Gracias") {
		t.Errorf("suggest: code = %d, out = %q", code, out)
	}
	if s := c.fake.Suggestions(); len(s) != 1 || s[0].Categoria != models.CategoryRecommendation {
		t.Errorf("suggestions = %+v", s)
	}
}
