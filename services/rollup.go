package services

import (
	"math"
	"sort"

	"backend/models"
)

// DailyTotals is the macro sum over all intake rows for one user+date.
// A date with no rows yields the zero value, never nulls.
type DailyTotals struct {
	CaloriesTotal float64 `json:"calories_total"`
	ProteinTotal  float64 `json:"protein_total"`
	CarbsTotal    float64 `json:"carbs_total"`
	FatTotal      float64 `json:"fat_total"`
}

// DateTotals pairs a date key with its totals for calendar views.
type DateTotals struct {
	Date string `json:"date"`
	DailyTotals
}

// ActivityBurn is the summed calories_burned for one date.
type ActivityBurn struct {
	Date                string  `json:"date"`
	CaloriesBurnedTotal float64 `json:"calories_burned_total"`
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// SumDailyTotals reduces intake rows to a single totals struct. Nil macro
// fields contribute zero.
func SumDailyTotals(rows []models.IntakeLog) DailyTotals {
	var t DailyTotals
	for _, r := range rows {
		t.CaloriesTotal += r.Calories
		t.ProteinTotal += deref(r.ProteinG)
		t.CarbsTotal += deref(r.CarbsG)
		t.FatTotal += deref(r.FatG)
	}
	return t
}

// GroupDailyTotals groups intake rows by their exact date string, ascending.
// Only dates with at least one row appear; the result is sparse.
func GroupDailyTotals(rows []models.IntakeLog) []DateTotals {
	byDate := make(map[string][]models.IntakeLog)
	for _, r := range rows {
		byDate[r.Date] = append(byDate[r.Date], r)
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([]DateTotals, 0, len(dates))
	for _, d := range dates {
		out = append(out, DateTotals{Date: d, DailyTotals: SumDailyTotals(byDate[d])})
	}
	return out
}

// GroupActivityBurn sums calories_burned per date, ascending. The (user,date)
// unique constraint means each date maps to at most one row.
func GroupActivityBurn(rows []models.ActivityLog) []ActivityBurn {
	byDate := make(map[string]float64)
	for _, r := range rows {
		byDate[r.Date] += r.CaloriesBurned
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([]ActivityBurn, 0, len(dates))
	for _, d := range dates {
		out = append(out, ActivityBurn{Date: d, CaloriesBurnedTotal: byDate[d]})
	}
	return out
}

// EstimateCaloriesFromSteps approximates the burn for a step count, scaled by
// bodyweight when known. A rough default only; explicit calories_burned from
// the client always wins.
func EstimateCaloriesFromSteps(steps int, weightKg float64) float64 {
	if steps <= 0 {
		return 0
	}
	if weightKg > 0 {
		return math.Round(float64(steps) * 0.04 * (weightKg / 70.0))
	}
	return math.Round(float64(steps) * 0.04)
}
