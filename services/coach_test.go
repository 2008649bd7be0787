package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildCoachPromptWithTargets(t *testing.T) {
	targets := &DailyTargets{Calories: 2046, ProteinG: 108, CarbsG: 263, FatG: 63, Goal: "maintain"}
	rows := []InsightRow{
		{Date: "2026-08-27", DailyTotals: DailyTotals{CaloriesTotal: 1800, ProteinTotal: 95, CarbsTotal: 200, FatTotal: 60}, Steps: 8000},
		{Date: "2026-08-28"},
	}

	prompt := BuildCoachPrompt(targets, rows)

	assert.Contains(t, prompt, "Daily targets: 2046 kcal, 108 g protein, 263 g carbs, 63 g fat (goal: maintain weight).")
	assert.Contains(t, prompt, "Last 2 days:")
	assert.Contains(t, prompt, "- 2026-08-27: 1800 kcal, 95g protein, 200g carbs, 60g fat, 8000 steps")
	assert.Contains(t, prompt, "- 2026-08-28: 0 kcal, 0g protein, 0g carbs, 0g fat, 0 steps")
	assert.Contains(t, prompt, `{"observations": ["..."], "suggestions": ["..."]}`)
}

func TestBuildCoachPromptWithoutTargets(t *testing.T) {
	prompt := BuildCoachPrompt(nil, []InsightRow{{Date: "2026-08-28"}})

	assert.Contains(t, prompt, "Daily targets: not available (incomplete profile).")
	assert.Equal(t, 1, strings.Count(prompt, "- 2026-08-28"))
}
