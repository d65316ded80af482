// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package stats

import (
	"fmt"
	"math"

	"github.com/tomtom215/bienestar/internal/models"
)

// EmptyMessage is shown instead of the dashboard when there is no data.
const EmptyMessage = "Aún no hay cuestionarios suficientes para mostrar estadísticas agregadas."

// Point is one category of a chart series.
type Point struct {
	Key   string  `json:"key"`   // Backend category key
	Label string  `json:"name"`  // Display label
	Value float64 `json:"value"` // Percentage, seconds or count, one decimal
}

// Average is one questionnaire mean shown on the summary card.
type Average struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Value   float64 `json:"value"`   // Two decimals
	Display string  `json:"display"` // Formatted with unit, e.g. "21.4 años"
}

// Timing summarizes how long respondents take to finish the questionnaire.
type Timing struct {
	AvgSeconds    *float64 `json:"avg_seconds,omitempty"`
	MedianSeconds *float64 `json:"median_seconds,omitempty"`
	P90Seconds    *float64 `json:"p90_seconds,omitempty"`
	AvgMinutes    *float64 `json:"avg_minutes,omitempty"`
	Fields        []Point  `json:"fields,omitempty"` // Average seconds per field
}

// Abandonment compares completed with abandoned sessions.
type Abandonment struct {
	Series       []Point `json:"series"` // Completados, Abandonos (counts)
	CompletedPct float64 `json:"completed_pct"`
	AbandonedPct float64 `json:"abandoned_pct"`
}

// Submissions bounds the period covered by telemetry.
type Submissions struct {
	First string `json:"first,omitempty"`
	Last  string `json:"last,omitempty"`
}

// Dashboard is the chart-ready view of a statistics aggregate.
//
// The core series are always present once Empty is false. Optional
// telemetry groups are nil when the server did not send them, each one
// independently of the others.
type Dashboard struct {
	Empty bool `json:"empty"`
	Total int  `json:"total_registros"`

	HighRiskPct            float64 `json:"high_risk_pct"`
	FamilyHistoryYesPct    float64 `json:"family_history_yes_pct"`
	SuicidalThoughtsYesPct float64 `json:"suicidal_thoughts_yes_pct"`

	Gender   []Point   `json:"gender"`
	Risk     []Point   `json:"risk"`
	Sleep    []Point   `json:"sleep"`
	Diet     []Point   `json:"diet"` // Always three categories
	Averages []Average `json:"averages"`

	Timing      *Timing      `json:"timing,omitempty"`
	Devices     []Point      `json:"devices,omitempty"`
	Viewports   []Point      `json:"viewports,omitempty"`
	Abandonment *Abandonment `json:"abandonment,omitempty"`
	Submissions *Submissions `json:"submissions,omitempty"`
}

// Build derives the dashboard from agg. It never fails: missing or
// malformed percentages count as 0 and missing groups are left out.
// A nil aggregate or one with no records yields an empty dashboard.
func Build(agg *models.StatsAggregate) *Dashboard {
	if agg == nil || agg.TotalRegistros == 0 {
		return &Dashboard{Empty: true}
	}

	d := &Dashboard{
		Total:                  agg.TotalRegistros,
		FamilyHistoryYesPct:    round1(agg.FamilyHistoryYesPct.Float()),
		SuicidalThoughtsYesPct: round1(agg.SuicidalThoughtsYesPct.Float()),
		Gender:                 distributionSeries(agg.GenderDistribution, genderOrder, genderLabels),
		Sleep:                  distributionSeries(agg.SleepDistribution, sleepOrder, sleepLabels),
		Diet:                   dietSeries(agg.DietaryDistribution),
		Averages:               averages(agg.Averages),
	}

	var risk models.RiskDistribution
	if agg.RiskDistribution != nil {
		risk = *agg.RiskDistribution
	}
	d.HighRiskPct = round1(risk.High.Pct.Float())
	d.Risk = []Point{
		{Key: "high", Label: "Alto riesgo", Value: d.HighRiskPct},
		{Key: "low", Label: "Bajo riesgo", Value: round1(risk.Low.Pct.Float())},
	}

	if m := agg.Metrics; m != nil {
		d.Timing = timing(m)
		d.Devices = distributionSeries(m.DeviceDistribution, deviceOrder, deviceLabels)
		d.Viewports = distributionSeries(m.ViewportDistribution, viewportOrder, nil)
		d.Abandonment = abandonment(m.Abandonment)
		d.Submissions = submissions(m)
	}
	return d
}

func distributionSeries(dist models.Distribution, order []string, labels map[string]string) []Point {
	if len(dist) == 0 {
		return nil
	}
	keys := orderedKeys(dist, order)
	points := make([]Point, 0, len(keys))
	for _, k := range keys {
		points = append(points, Point{
			Key:   k,
			Label: label(labels, k),
			Value: round1(dist[k].Pct.Float()),
		})
	}
	return points
}

// dietSeries always has the three canonical categories so the chart keeps
// its shape when the distribution is partial or absent.
func dietSeries(dist models.Distribution) []Point {
	points := make([]Point, len(dietOrder))
	for i, k := range dietOrder {
		points[i] = Point{Key: k, Label: dietLabels[k], Value: round1(dist[k].Pct.Float())}
	}
	return points
}

// averageOrder is the summary card order.
var averageOrder = []string{
	"age", "academic_pressure", "financial_stress", "study_hours", "cgpa", "study_satisfaction",
}

func averages(avg map[string]models.Number) []Average {
	keys := orderedKeys(avg, averageOrder)
	out := make([]Average, 0, len(keys))
	for _, k := range keys {
		v := avg[k].Float()
		out = append(out, Average{
			Key:     k,
			Label:   FieldLabel(k),
			Value:   round2(v),
			Display: formatAverage(k, v),
		})
	}
	return out
}

func formatAverage(key string, v float64) string {
	switch key {
	case "age":
		return fmt.Sprintf("%.1f años", v)
	case "academic_pressure", "financial_stress", "study_satisfaction":
		return fmt.Sprintf("%.2f/5", v)
	case "study_hours":
		return fmt.Sprintf("%.2f h", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

func timing(m *models.UsageMetrics) *Timing {
	t := &Timing{
		AvgSeconds:    seconds(m.AvgCompletionSeconds),
		MedianSeconds: seconds(m.MedianCompletionSeconds),
		P90Seconds:    seconds(m.P90CompletionSeconds),
	}
	if t.AvgSeconds != nil {
		minutes := round1(*t.AvgSeconds / 60)
		t.AvgMinutes = &minutes
	}
	for _, field := range orderedKeys(m.FieldTimes, fieldOrder) {
		secs, ok := m.FieldTimes[field].Seconds()
		if !ok {
			continue
		}
		t.Fields = append(t.Fields, Point{Key: field, Label: FieldLabel(field), Value: round1(secs)})
	}

	if t.AvgSeconds == nil && t.MedianSeconds == nil && t.P90Seconds == nil && len(t.Fields) == 0 {
		return nil
	}
	return t
}

// seconds treats null and zero as "not measured".
func seconds(n *models.Number) *float64 {
	if n == nil || n.Float() == 0 {
		return nil
	}
	v := round1(n.Float())
	return &v
}

func abandonment(a *models.Abandonment) *Abandonment {
	if a == nil || (a.Completed == nil && a.Abandoned == nil) {
		return nil
	}
	count := func(n *models.Number) float64 {
		if n == nil {
			return 0
		}
		return n.Float()
	}
	return &Abandonment{
		Series: []Point{
			{Key: "completed", Label: "Completados", Value: count(a.Completed)},
			{Key: "abandoned", Label: "Abandonos", Value: count(a.Abandoned)},
		},
		CompletedPct: round1(a.CompletedPct.Float()),
		AbandonedPct: round1(a.AbandonedPct.Float()),
	}
}

func submissions(m *models.UsageMetrics) *Submissions {
	var s Submissions
	if m.FirstSubmissionAt != nil {
		s.First = string(*m.FirstSubmissionAt)
	}
	if m.LastSubmissionAt != nil {
		s.Last = string(*m.LastSubmissionAt)
	}
	if s.First == "" && s.Last == "" {
		return nil
	}
	return &s
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
