// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package prediction

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/bienestar/internal/models"
)

// Report header and footer lines.
const (
	ReportTitle    = "Reporte de Estimación de Riesgo de Depresión"
	ReportSubtitle = "Evaluación generada mediante un modelo predictivo. No es un diagnóstico clínico."
	ReportHelpline = "Si necesitas apoyo emocional, comunícate a la Línea de la Vida (México): 800-911-2000"
)

var (
	weekdaysES = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}
	monthsES   = [...]string{
		"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
	}
)

// ReportRow is one line of the report's summary table.
type ReportRow struct {
	Label string
	Value string
}

// Report renders the printable summary of a questionnaire and its
// prediction as plain text. result may be nil.
func Report(form models.QuestionnaireForm, result *models.PredictionResult, now time.Time) string {
	var b strings.Builder
	b.WriteString(ReportTitle + "\n")
	b.WriteString(ReportSubtitle + "\n")
	fmt.Fprintf(&b, "Fecha del reporte: %s\n\n", LongDate(now))

	for _, p := range reportNarrative(form, result) {
		b.WriteString(p)
		b.WriteString("\n\n")
	}

	rows := ReportRows(form)
	width := 0
	for _, r := range rows {
		if n := len([]rune(r.Label)); n > width {
			width = n
		}
	}
	b.WriteString("Resumen de respuestas\n")
	for _, r := range rows {
		pad := width - len([]rune(r.Label))
		fmt.Fprintf(&b, "  %s%s  %s\n", r.Label, strings.Repeat(" ", pad), r.Value)
	}
	b.WriteString("\n" + ReportHelpline + "\n")
	return b.String()
}

// ReportRows returns the summary table in display order.
func ReportRows(form models.QuestionnaireForm) []ReportRow {
	workPressure := "N/A"
	if form.Works == models.Yes && form.WorkPressure != "" {
		workPressure = form.WorkPressure
	}
	return []ReportRow{
		{"Edad", orND(form.Age)},
		{"Género", pick(form.Gender == models.GenderMale, "Hombre", "Mujer")},
		{"Presión académica", orND(form.AcademicPressure)},
		{"Promedio académico (CGPA)", orND(form.CGPA)},
		{"Horas estudio/trabajo", orND(form.StudyHours)},
		{"Satisfacción académica", orND(form.StudySatisfaction)},
		{"Estrés financiero", orND(form.FinancialStress)},
		{"Antecedentes familiares", yesNo(form.FamilyHistory)},
		{"Pensamientos suicidas", yesNo(form.SuicidalThoughts)},
		{"Duración del sueño", sleepRow(form.SleepDuration)},
		{"Hábitos alimenticios", dietRow(form.DietaryHabits)},
		{"Trabaja actualmente", yesNo(form.Works)},
		{"Presión laboral", workPressure},
	}
}

// LongDate formats t as a Spanish long date, for example
// "lunes, 3 de noviembre de 2025, 09:05".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%s, %d de %s de %d, %02d:%02d",
		weekdaysES[t.Weekday()], t.Day(), monthsES[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}

func reportNarrative(form models.QuestionnaireForm, result *models.PredictionResult) []string {
	person := "una persona"
	switch form.Gender {
	case models.GenderMale:
		person = "un hombre"
	case models.GenderFemale:
		person = "una mujer"
	}

	family := "no se reportan antecedentes familiares de problemas de salud mental"
	if form.FamilyHistory == models.Yes {
		family = "sí se reportan antecedentes familiares de problemas de salud mental"
	}
	suicidal := "la persona indica que no ha tenido pensamientos suicidas"
	if form.SuicidalThoughts == models.Yes {
		suicidal = "la persona menciona haber tenido pensamientos suicidas en algún momento"
	}
	work := "actualmente no se encuentra trabajando"
	if form.Works == models.Yes {
		work = "actualmente trabaja y reporta un nivel de presión laboral de " + orND(form.WorkPressure)
	}

	risk, probability := "BAJO", "N/A"
	if result != nil {
		if result.HighRisk() {
			risk = "ELEVADO"
		}
		probability = fmt.Sprintf("%.1f%%", result.Probability*100)
	}

	return []string{
		"Este reporte resume las respuestas proporcionadas en el cuestionario y el resultado " +
			"estimado por el modelo. Su propósito es orientativo y no sustituye la valoración " +
			"de un profesional de la salud mental.",
		fmt.Sprintf("La persona evaluada es %s de %s años, quien reporta un nivel de presión académica de %s, "+
			"un promedio académico de %s y alrededor de %s hora(s) de estudio o trabajo al día. "+
			"También se indica una satisfacción con los estudios de %s y un nivel de estrés financiero de %s.",
			person, orND(form.Age), orND(form.AcademicPressure), orND(form.CGPA), orND(form.StudyHours),
			orND(form.StudySatisfaction), orND(form.FinancialStress)),
		fmt.Sprintf("En cuanto a su historia personal, %s, y %s.", family, suicidal),
		fmt.Sprintf("Respecto a sus hábitos, reporta %s y %s. Además, %s.",
			sleepPhrase(form.SleepDuration), dietPhrase(form.DietaryHabits), work),
		fmt.Sprintf("Con base en esta información, el modelo estima un riesgo %s de presentar síntomas "+
			"de depresión, con una probabilidad de %s.", risk, probability),
		"Este resultado es una estimación estadística. Si el riesgo es elevado, o si sientes " +
			"que lo necesitas, te recomendamos buscar orientación con un profesional de la salud mental.",
		"Cuidar tu bienestar emocional es tan importante como cuidar tu salud física.",
	}
}

func sleepPhrase(v string) string {
	switch v {
	case models.Sleep7To8:
		return "una duración de sueño entre 7 y 8 horas"
	case models.SleepUnder5:
		return "una duración de sueño menor a 5 horas"
	case models.SleepOver8:
		return "una duración de sueño mayor a 8 horas"
	default:
		return "una duración de sueño no especificada"
	}
}

func dietPhrase(v string) string {
	switch v {
	case models.DietUnhealthy:
		return "hábitos alimenticios poco saludables"
	case models.DietModerate:
		return "hábitos alimenticios moderados"
	case models.DietHealthy:
		return "hábitos alimenticios saludables"
	default:
		return "hábitos alimenticios no especificados"
	}
}

func sleepRow(v string) string {
	switch v {
	case models.Sleep7To8:
		return "7-8 horas"
	case models.SleepUnder5:
		return "Menos de 5 horas"
	case models.SleepOver8:
		return "Más de 8 horas"
	default:
		return "No especificado"
	}
}

func dietRow(v string) string {
	switch v {
	case models.DietUnhealthy:
		return "Poco saludables"
	case models.DietModerate:
		return "Moderados"
	default:
		return "Saludables"
	}
}

func yesNo(v string) string {
	return pick(v == models.Yes, "Sí", "No")
}

func pick(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}

func orND(v string) string {
	if strings.TrimSpace(v) == "" {
		return "N/D"
	}
	return v
}
