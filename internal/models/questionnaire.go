// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

// Package models defines the values exchanged with the Bienestar API.
//
// JSON tags follow the wire names used by the API, which mixes English
// questionnaire keys with Spanish forum and quote keys.
package models

// Enumerated questionnaire answers as transported on the wire.
const (
	Yes = "Yes"
	No  = "No"

	GenderMale   = "Male"
	GenderFemale = "Female"

	Sleep7To8     = "7-8 hours"
	SleepUnder5   = "Less than 5 hours"
	SleepOver8    = "More than 8 hours"
	DietModerate  = "Moderate"
	DietHealthy   = "Others" // the dataset labels healthy diets "Others"
	DietUnhealthy = "Unhealthy"
)

// QuestionnaireForm is the raw form snapshot. Every answer is kept as text
// exactly as entered; validation and numeric coercion happen later.
//
// The presence and range tags drive the two validation passes; see
// validation.ValidateQuestionnaire.
type QuestionnaireForm struct {
	Age               string `json:"age" yaml:"age" presence:"required" range:"between=15 80"`
	Gender            string `json:"gender" yaml:"gender" presence:"required" range:"omitempty,oneof=Male Female"`
	AcademicPressure  string `json:"academic_pressure" yaml:"academic_pressure" presence:"required" range:"between=1 5"`
	CGPA              string `json:"cgpa" yaml:"cgpa" presence:"required" range:"nonnegative"`
	StudyHours        string `json:"study_hours" yaml:"study_hours" presence:"required" range:"nonnegative"`
	StudySatisfaction string `json:"study_satisfaction" yaml:"study_satisfaction" presence:"required" range:"between=1 5"`
	FinancialStress   string `json:"financial_stress" yaml:"financial_stress" presence:"required" range:"between=1 5"`
	FamilyHistory     string `json:"family_history" yaml:"family_history" presence:"required" range:"omitempty,oneof=Yes No"`
	SuicidalThoughts  string `json:"suicidal_thoughts" yaml:"suicidal_thoughts" presence:"required" range:"omitempty,oneof=Yes No"`
	SleepDuration     string `json:"sleep_duration" yaml:"sleep_duration" presence:"required" range:"omitempty,oneof='7-8 hours' 'Less than 5 hours' 'More than 8 hours'"`
	DietaryHabits     string `json:"dietary_habits" yaml:"dietary_habits" presence:"required" range:"omitempty,oneof=Moderate Others Unhealthy"`
	Works             string `json:"works" yaml:"works" presence:"required" range:"omitempty,oneof=Yes No"`
	WorkPressure      string `json:"work_pressure" yaml:"work_pressure" range:"required_if=Works Yes,between=1 5"`
}

// QuestionnaireFields lists the form keys in display order.
var QuestionnaireFields = []string{
	"age", "gender", "academic_pressure", "cgpa", "study_hours",
	"study_satisfaction", "financial_stress", "family_history",
	"suicidal_thoughts", "sleep_duration", "dietary_habits", "works",
	"work_pressure",
}

// Set assigns the answer for a wire key. Changing works away from "Yes"
// clears the work pressure answer. It reports false for unknown keys.
func (f *QuestionnaireForm) Set(field, value string) bool {
	switch field {
	case "age":
		f.Age = value
	case "gender":
		f.Gender = value
	case "academic_pressure":
		f.AcademicPressure = value
	case "cgpa":
		f.CGPA = value
	case "study_hours":
		f.StudyHours = value
	case "study_satisfaction":
		f.StudySatisfaction = value
	case "financial_stress":
		f.FinancialStress = value
	case "family_history":
		f.FamilyHistory = value
	case "suicidal_thoughts":
		f.SuicidalThoughts = value
	case "sleep_duration":
		f.SleepDuration = value
	case "dietary_habits":
		f.DietaryHabits = value
	case "works":
		f.Works = value
		if value != Yes {
			f.WorkPressure = ""
		}
	case "work_pressure":
		f.WorkPressure = value
	default:
		return false
	}
	return true
}

// PredictionRequest is the numeric-coerced body of POST /api/predict.
// WorkPressure is 0 unless Works is "Yes".
type PredictionRequest struct {
	Age               int     `json:"age"`
	Gender            string  `json:"gender"`
	AcademicPressure  int     `json:"academic_pressure"`
	CGPA              float64 `json:"cgpa"`
	StudyHours        float64 `json:"study_hours"`
	StudySatisfaction int     `json:"study_satisfaction"`
	FinancialStress   int     `json:"financial_stress"`
	FamilyHistory     string  `json:"family_history"`
	SuicidalThoughts  string  `json:"suicidal_thoughts"`
	SleepDuration     string  `json:"sleep_duration"`
	DietaryHabits     string  `json:"dietary_habits"`
	Works             string  `json:"works"`
	WorkPressure      int     `json:"work_pressure"`
}

// PredictionResult is the response of POST /api/predict.
type PredictionResult struct {
	Prediction  int     `json:"prediction"`  // 1 = high risk
	Probability float64 `json:"probability"` // 0..1
	Message     string  `json:"message"`
}

// HighRisk reports whether the model classified the answers as high risk.
func (r *PredictionResult) HighRisk() bool {
	return r.Prediction == 1
}
