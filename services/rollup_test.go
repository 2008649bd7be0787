package services

import (
	"testing"

	"backend/models"

	"github.com/stretchr/testify/assert"
)

func fp(v float64) *float64 { return &v }

func TestSumDailyTotals(t *testing.T) {
	rows := []models.IntakeLog{
		{Calories: 500, ProteinG: fp(30), CarbsG: fp(50), FatG: fp(20)},
		{Calories: 300, ProteinG: fp(10)},
	}

	totals := SumDailyTotals(rows)
	assert.Equal(t, 800.0, totals.CaloriesTotal)
	assert.Equal(t, 40.0, totals.ProteinTotal)
	assert.Equal(t, 50.0, totals.CarbsTotal, "nil carbs contributes zero")
	assert.Equal(t, 20.0, totals.FatTotal)
}

func TestSumDailyTotalsEmpty(t *testing.T) {
	totals := SumDailyTotals(nil)
	assert.Equal(t, DailyTotals{}, totals)
}

func TestGroupDailyTotalsSparseAndSorted(t *testing.T) {
	rows := []models.IntakeLog{
		{Date: "2026-08-20", Calories: 300},
		{Date: "2026-08-03", Calories: 500},
		{Date: "2026-08-03", Calories: 200},
	}

	grouped := GroupDailyTotals(rows)
	assert.Len(t, grouped, 2, "only logged dates appear")
	assert.Equal(t, "2026-08-03", grouped[0].Date)
	assert.Equal(t, 700.0, grouped[0].CaloriesTotal)
	assert.Equal(t, "2026-08-20", grouped[1].Date)
	assert.Equal(t, 300.0, grouped[1].CaloriesTotal)
}

func TestGroupActivityBurn(t *testing.T) {
	rows := []models.ActivityLog{
		{Date: "2026-08-10", CaloriesBurned: 250},
		{Date: "2026-08-02", CaloriesBurned: 400},
	}

	burn := GroupActivityBurn(rows)
	assert.Len(t, burn, 2)
	assert.Equal(t, "2026-08-02", burn[0].Date)
	assert.Equal(t, 400.0, burn[0].CaloriesBurnedTotal)
}

func TestEstimateCaloriesFromSteps(t *testing.T) {
	assert.Equal(t, 0.0, EstimateCaloriesFromSteps(0, 70))
	assert.Equal(t, 0.0, EstimateCaloriesFromSteps(-100, 70))

	// 10000 * 0.04 = 400 at the 70 kg reference weight.
	assert.Equal(t, 400.0, EstimateCaloriesFromSteps(10000, 70))

	// Heavier bodies burn proportionally more.
	assert.Equal(t, 500.0, EstimateCaloriesFromSteps(10000, 87.5))

	// Unknown weight uses the reference burn rate.
	assert.Equal(t, 400.0, EstimateCaloriesFromSteps(10000, 0))
}
