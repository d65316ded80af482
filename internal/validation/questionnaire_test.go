// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package validation

import (
	"errors"
	"testing"

	"github.com/tomtom215/bienestar/internal/models"
)

func validForm() models.QuestionnaireForm {
	return models.QuestionnaireForm{
		Age:               "21",
		Gender:            models.GenderFemale,
		AcademicPressure:  "4",
		CGPA:              "7.8",
		StudyHours:        "6",
		StudySatisfaction: "3",
		FinancialStress:   "2",
		FamilyHistory:     models.No,
		SuicidalThoughts:  models.No,
		SleepDuration:     models.Sleep7To8,
		DietaryHabits:     models.DietModerate,
		Works:             models.No,
	}
}

func TestValidateQuestionnaire_Valid(t *testing.T) {
	if v := ValidateQuestionnaire(validForm()); len(v) != 0 {
		t.Fatalf("ValidateQuestionnaire() = %v, want none", v)
	}
}

func TestValidateQuestionnaire_OneMessagePerMissingField(t *testing.T) {
	fields := []string{
		"age", "gender", "academic_pressure", "cgpa", "study_hours",
		"study_satisfaction", "financial_stress", "family_history",
		"suicidal_thoughts", "sleep_duration", "dietary_habits", "works",
	}
	for _, field := range fields {
		t.Run(field, func(t *testing.T) {
			form := validForm()
			form.Set(field, "")
			got := ValidateQuestionnaire(form)
			if len(got) != 1 {
				t.Fatalf("violations = %v, want exactly 1", got)
			}
			if got[0] != requiredMessages[field] {
				t.Errorf("violation = %q, want %q", got[0], requiredMessages[field])
			}
			if err := Check(form); err == nil {
				t.Error("Check() = nil, submission must be blocked")
			}
		})
	}
}

func TestValidateQuestionnaire_AllMissingInOrder(t *testing.T) {
	got := ValidateQuestionnaire(models.QuestionnaireForm{})
	want := []string{
		"Ingresa tu edad.",
		"Selecciona tu género.",
		"Indica tu nivel de presión académica (1–5).",
		"Ingresa tu promedio / CGPA.",
		"Indica tus horas de estudio/trabajo diarias.",
		"Indica tu satisfacción con los estudios (1–5).",
		"Indica tu nivel de estrés financiero (1–5).",
		"Indica si tienes antecedentes familiares de enfermedad mental.",
		"Indica si has tenido pensamientos suicidas.",
		"Selecciona tu duración aproximada de sueño.",
		"Selecciona tus hábitos alimenticios.",
		"Indica si actualmente trabajas.",
	}
	if len(got) != len(want) {
		t.Fatalf("got %d violations, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("violation[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestValidateQuestionnaire_WorkPressure(t *testing.T) {
	tests := []struct {
		name         string
		works        string
		workPressure string
		want         []string
	}{
		{"not working, omitted", models.No, "", nil},
		{"not working, stale value ignored", models.No, "9", nil},
		{"working, omitted", models.Yes, "", []string{"Indica tu nivel de presión laboral (1–5) si actualmente trabajas."}},
		{"working, out of range", models.Yes, "6", []string{"La presión laboral debe estar entre 1 y 5."}},
		{"working, valid", models.Yes, "3", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			form.Works = tt.works
			form.WorkPressure = tt.workPressure
			got := ValidateQuestionnaire(form)
			if len(got) != len(tt.want) {
				t.Fatalf("violations = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("violation[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestValidateQuestionnaire_AgeBoundaries(t *testing.T) {
	tests := []struct {
		age   string
		valid bool
	}{
		{"14", false},
		{"15", true},
		{"80", true},
		{"81", false},
		{"veinte", false},
	}
	for _, tt := range tests {
		t.Run(tt.age, func(t *testing.T) {
			form := validForm()
			form.Age = tt.age
			got := ValidateQuestionnaire(form)
			if tt.valid {
				if len(got) != 0 {
					t.Errorf("violations = %v, want none", got)
				}
				return
			}
			if len(got) != 1 || got[0] != "La edad debe estar entre 15 y 80 años." {
				t.Errorf("violations = %v, want exactly the age range message", got)
			}
		})
	}
}

func TestValidateQuestionnaire_RatedAndNumericFields(t *testing.T) {
	tests := []struct {
		field string
		value string
		want  string
	}{
		{"academic_pressure", "0", "La presión académica debe estar entre 1 y 5."},
		{"study_satisfaction", "6", "La satisfacción con los estudios debe estar entre 1 y 5."},
		{"financial_stress", "-1", "El estrés financiero debe estar entre 1 y 5."},
		{"cgpa", "-2", "El promedio / CGPA debe ser un número mayor o igual a 0."},
		{"study_hours", "muchas", "Las horas de estudio/trabajo deben ser un número mayor o igual a 0."},
		{"cgpa", "Inf", "El promedio / CGPA debe ser un número mayor o igual a 0."},
		{"study_hours", "Infinity", "Las horas de estudio/trabajo deben ser un número mayor o igual a 0."},
		{"cgpa", "NaN", "El promedio / CGPA debe ser un número mayor o igual a 0."},
		{"age", "Inf", "La edad debe estar entre 15 y 80 años."},
		{"gender", "Robot", "Selecciona un género válido."},
		{"sleep_duration", "10 hours", "Selecciona una duración de sueño válida."},
	}
	for _, tt := range tests {
		t.Run(tt.field+"="+tt.value, func(t *testing.T) {
			form := validForm()
			form.Set(tt.field, tt.value)
			got := ValidateQuestionnaire(form)
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("violations = %v, want [%q]", got, tt.want)
			}
			if _, err := ToPayload(form); err == nil {
				t.Error("ToPayload() accepted an invalid form")
			}
		})
	}
}

func TestValidateQuestionnaire_ReportsEverythingAtOnce(t *testing.T) {
	form := validForm()
	form.Age = "90"
	form.Gender = ""
	form.Works = models.Yes
	got := ValidateQuestionnaire(form)
	want := []string{
		"Selecciona tu género.",
		"La edad debe estar entre 15 y 80 años.",
		"Indica tu nivel de presión laboral (1–5) si actualmente trabajas.",
	}
	if len(got) != len(want) {
		t.Fatalf("violations = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("violation[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestValidateQuestionnaire_Pure(t *testing.T) {
	form := validForm()
	form.Works = models.No
	form.WorkPressure = "4"
	_ = ValidateQuestionnaire(form)
	if form.WorkPressure != "4" {
		t.Error("ValidateQuestionnaire() modified its input")
	}
}

func TestToPayload(t *testing.T) {
	form := validForm()
	form.Age = "20.6"
	form.CGPA = "8,25"
	form.Works = models.Yes
	form.WorkPressure = "2"

	p, err := ToPayload(form)
	if err != nil {
		t.Fatalf("ToPayload() error = %v", err)
	}
	if p.Age != 21 {
		t.Errorf("Age = %d, want 21", p.Age)
	}
	if p.CGPA != 8.25 {
		t.Errorf("CGPA = %v, want 8.25", p.CGPA)
	}
	if p.WorkPressure != 2 {
		t.Errorf("WorkPressure = %d, want 2", p.WorkPressure)
	}

	form.Works = models.No
	p, err = ToPayload(form)
	if err != nil {
		t.Fatalf("ToPayload() error = %v", err)
	}
	if p.WorkPressure != 0 {
		t.Errorf("WorkPressure = %d, want 0 when not working", p.WorkPressure)
	}
}

func TestToPayload_Invalid(t *testing.T) {
	form := validForm()
	form.Age = ""
	_, err := ToPayload(form)

	var qerr *QuestionnaireError
	if !errors.As(err, &qerr) {
		t.Fatalf("ToPayload() error = %v, want *QuestionnaireError", err)
	}
	if len(qerr.Violations) != 1 {
		t.Errorf("Violations = %v, want 1", qerr.Violations)
	}
}
