// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package validation

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/bienestar/internal/models"
)

// Questionnaire validators. The presence pass reads `presence` tags and the
// range pass reads `range` tags on models.QuestionnaireForm.
var (
	presenceValidator *validator.Validate
	rangeValidator    *validator.Validate
	questionnaireOnce sync.Once
)

func questionnaireValidators() (*validator.Validate, *validator.Validate) {
	questionnaireOnce.Do(func() {
		presenceValidator = newValidator("presence")
		rangeValidator = newValidator("range")
	})
	return presenceValidator, rangeValidator
}

// requiredMessages is shown when a field is left empty.
var requiredMessages = map[string]string{
	"age":                "Ingresa tu edad.",
	"gender":             "Selecciona tu género.",
	"academic_pressure":  "Indica tu nivel de presión académica (1–5).",
	"cgpa":               "Ingresa tu promedio / CGPA.",
	"study_hours":        "Indica tus horas de estudio/trabajo diarias.",
	"study_satisfaction": "Indica tu satisfacción con los estudios (1–5).",
	"financial_stress":   "Indica tu nivel de estrés financiero (1–5).",
	"family_history":     "Indica si tienes antecedentes familiares de enfermedad mental.",
	"suicidal_thoughts":  "Indica si has tenido pensamientos suicidas.",
	"sleep_duration":     "Selecciona tu duración aproximada de sueño.",
	"dietary_habits":     "Selecciona tus hábitos alimenticios.",
	"works":              "Indica si actualmente trabajas.",
	"work_pressure":      "Indica tu nivel de presión laboral (1–5) si actualmente trabajas.",
}

// rangeMessages is shown when a filled-in field has an invalid value.
var rangeMessages = map[string]string{
	"age":                "La edad debe estar entre 15 y 80 años.",
	"gender":             "Selecciona un género válido.",
	"academic_pressure":  "La presión académica debe estar entre 1 y 5.",
	"cgpa":               "El promedio / CGPA debe ser un número mayor o igual a 0.",
	"study_hours":        "Las horas de estudio/trabajo deben ser un número mayor o igual a 0.",
	"study_satisfaction": "La satisfacción con los estudios debe estar entre 1 y 5.",
	"financial_stress":   "El estrés financiero debe estar entre 1 y 5.",
	"family_history":     "Responde Sí o No sobre antecedentes familiares.",
	"suicidal_thoughts":  "Responde Sí o No sobre pensamientos suicidas.",
	"sleep_duration":     "Selecciona una duración de sueño válida.",
	"dietary_habits":     "Selecciona un hábito alimenticio válido.",
	"works":              "Responde Sí o No sobre si trabajas.",
	"work_pressure":      "La presión laboral debe estar entre 1 y 5.",
}

func translateQuestionnaire(fe validator.FieldError) string {
	field := fe.Field()
	if strings.HasPrefix(fe.Tag(), "required") {
		if msg, ok := requiredMessages[field]; ok {
			return msg
		}
	} else if msg, ok := rangeMessages[field]; ok {
		return msg
	}
	return translateError(fe)
}

// QuestionnaireError blocks a submission. It carries every violation so
// the user can fix them all in one pass.
type QuestionnaireError struct {
	Violations []string
}

func (e *QuestionnaireError) Error() string {
	return "cuestionario incompleto: " + strings.Join(e.Violations, " ")
}

// Normalize trims every answer and clears work pressure unless the
// respondent works.
func Normalize(form models.QuestionnaireForm) models.QuestionnaireForm {
	form.Age = strings.TrimSpace(form.Age)
	form.Gender = strings.TrimSpace(form.Gender)
	form.AcademicPressure = strings.TrimSpace(form.AcademicPressure)
	form.CGPA = strings.TrimSpace(form.CGPA)
	form.StudyHours = strings.TrimSpace(form.StudyHours)
	form.StudySatisfaction = strings.TrimSpace(form.StudySatisfaction)
	form.FinancialStress = strings.TrimSpace(form.FinancialStress)
	form.FamilyHistory = strings.TrimSpace(form.FamilyHistory)
	form.SuicidalThoughts = strings.TrimSpace(form.SuicidalThoughts)
	form.SleepDuration = strings.TrimSpace(form.SleepDuration)
	form.DietaryHabits = strings.TrimSpace(form.DietaryHabits)
	form.Works = strings.TrimSpace(form.Works)
	form.WorkPressure = strings.TrimSpace(form.WorkPressure)
	if form.Works != models.Yes {
		form.WorkPressure = ""
	}
	return form
}

// ValidateQuestionnaire returns every violation in form, in display order.
// An empty result means the form may be submitted.
//
// Missing answers are reported first, one message each. Range checks then
// run only on answers that were given, so a missing field never produces
// a second out-of-range message. Work pressure is checked only when the
// respondent works.
func ValidateQuestionnaire(form models.QuestionnaireForm) []string {
	form = Normalize(form)
	presence, ranges := questionnaireValidators()

	var violations []string
	missing := make(map[string]bool)

	if verr := validateWith(presence, &form, translateQuestionnaire); verr != nil {
		for _, e := range verr.Errors() {
			missing[e.Field()] = true
			violations = append(violations, e.Error())
		}
	}
	if verr := validateWith(ranges, &form, translateQuestionnaire); verr != nil {
		for _, e := range verr.Errors() {
			if missing[e.Field()] {
				continue
			}
			violations = append(violations, e.Error())
		}
	}
	return violations
}

// Check is ValidateQuestionnaire as an error: nil when the form is valid,
// otherwise a *QuestionnaireError.
func Check(form models.QuestionnaireForm) error {
	if violations := ValidateQuestionnaire(form); len(violations) > 0 {
		return &QuestionnaireError{Violations: violations}
	}
	return nil
}

// ToPayload validates form and coerces it into the prediction request.
// Rated answers are rounded to the nearest integer; work pressure is 0
// unless the respondent works.
func ToPayload(form models.QuestionnaireForm) (models.PredictionRequest, error) {
	if err := Check(form); err != nil {
		return models.PredictionRequest{}, err
	}
	form = Normalize(form)

	var (
		p       models.PredictionRequest
		convErr error
	)
	num := func(field, s string) float64 {
		v, err := ParseNumber(s)
		if err != nil && convErr == nil {
			convErr = fmt.Errorf("%s: %w", field, err)
		}
		return v
	}
	whole := func(field, s string) int {
		return int(math.Round(num(field, s)))
	}

	p.Age = whole("age", form.Age)
	p.Gender = form.Gender
	p.AcademicPressure = whole("academic_pressure", form.AcademicPressure)
	p.CGPA = num("cgpa", form.CGPA)
	p.StudyHours = num("study_hours", form.StudyHours)
	p.StudySatisfaction = whole("study_satisfaction", form.StudySatisfaction)
	p.FinancialStress = whole("financial_stress", form.FinancialStress)
	p.FamilyHistory = form.FamilyHistory
	p.SuicidalThoughts = form.SuicidalThoughts
	p.SleepDuration = form.SleepDuration
	p.DietaryHabits = form.DietaryHabits
	p.Works = form.Works
	if form.Works == models.Yes {
		p.WorkPressure = whole("work_pressure", form.WorkPressure)
	}

	if convErr != nil {
		return models.PredictionRequest{}, fmt.Errorf("coerce questionnaire: %w", convErr)
	}
	return p, nil
}
