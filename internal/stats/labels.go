// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package stats

import "sort"

// Display labels for backend category keys. Lookups fall back to the key
// itself so values added by newer servers still render.
var (
	genderLabels = map[string]string{
		"Male":   "Hombres",
		"Female": "Mujeres",
		"Other":  "Otro",
	}

	sleepLabels = map[string]string{
		"Less than 5 hours": "Menos de 5 h",
		"7-8 hours":         "7–8 horas",
		"More than 8 hours": "Más de 8 h",
	}

	dietLabels = map[string]string{
		"Unhealthy": "Poco saludables",
		"Moderate":  "Moderados",
		"Others":    "Saludables",
	}

	deviceLabels = map[string]string{
		"mobile":  "Móvil",
		"desktop": "Escritorio",
		"tablet":  "Tablet",
		"unknown": "Otro",
	}

	fieldLabels = map[string]string{
		"age":                "Edad",
		"gender":             "Género",
		"academic_pressure":  "Presión académica",
		"cgpa":               "CGPA / Promedio",
		"study_hours":        "Horas de estudio/trabajo",
		"study_satisfaction": "Satisfacción con los estudios",
		"financial_stress":   "Estrés financiero",
		"family_history":     "Antecedentes familiares",
		"suicidal_thoughts":  "Pensamientos suicidas",
		"sleep_duration":     "Duración del sueño",
		"dietary_habits":     "Hábitos alimenticios",
		"works":              "¿Trabaja?",
		"work_pressure":      "Presión laboral",
	}
)

// Canonical category order per chart. Keys missing from the payload are
// skipped; keys not listed here follow in lexical order.
var (
	genderOrder   = []string{"Male", "Female", "Other"}
	sleepOrder    = []string{"Less than 5 hours", "7-8 hours", "More than 8 hours"}
	dietOrder     = []string{"Unhealthy", "Moderate", "Others"}
	deviceOrder   = []string{"mobile", "tablet", "desktop", "unknown"}
	viewportOrder = []string{"0-479", "480-767", "768-1023", "1024-1439", "1440+", "unknown"}
	fieldOrder    = []string{
		"age", "gender", "academic_pressure", "cgpa", "study_hours",
		"study_satisfaction", "financial_stress", "family_history",
		"suicidal_thoughts", "sleep_duration", "dietary_habits", "works",
		"work_pressure",
	}
)

func label(labels map[string]string, key string) string {
	if l, ok := labels[key]; ok {
		return l
	}
	return key
}

// GenderLabel returns the display label for a gender key.
func GenderLabel(key string) string { return label(genderLabels, key) }

// SleepLabel returns the display label for a sleep duration key.
func SleepLabel(key string) string { return label(sleepLabels, key) }

// DietLabel returns the display label for a dietary habits key.
func DietLabel(key string) string { return label(dietLabels, key) }

// DeviceLabel returns the display label for a device type.
func DeviceLabel(key string) string { return label(deviceLabels, key) }

// FieldLabel returns the display label for a questionnaire field name.
func FieldLabel(key string) string { return label(fieldLabels, key) }

// orderedKeys returns the keys of m, known keys first in canonical order.
func orderedKeys[V any](m map[string]V, canonical []string) []string {
	keys := make([]string, 0, len(m))
	known := make(map[string]bool, len(canonical))
	for _, k := range canonical {
		known[k] = true
		if _, ok := m[k]; ok {
			keys = append(keys, k)
		}
	}
	var rest []string
	for k := range m {
		if !known[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
