package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"backend/models"

	"gorm.io/gorm"
)

const (
	insightsMinDays = 1
	insightsMaxDays = 90
)

// InsightsPolicy controls the ambiguous edge cases of the engine.
type InsightsPolicy struct {
	// A day with zero logged calories satisfies `calories <= target`. The
	// shipped behavior keeps counting those days as hits; set false to only
	// count days with at least one intake row.
	CountEmptyDaysAsHit bool
}

func DefaultInsightsPolicy() InsightsPolicy {
	return InsightsPolicy{CountEmptyDaysAsHit: true}
}

// InsightRow is one calendar day in the trailing window, zero-filled when
// nothing was logged.
type InsightRow struct {
	Date    string `json:"date"`
	Weekday int    `json:"weekday"` // 0=Sunday .. 6=Saturday
	DailyTotals
	Steps          int     `json:"steps"`
	CaloriesBurned float64 `json:"calories_burned"`
}

type InsightAverages struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	Steps    float64 `json:"steps"`
}

type InsightsResult struct {
	Days     int             `json:"days"`
	Averages InsightAverages `json:"averages"`

	// Nil when the profile is incomplete; the counters below are only
	// populated alongside it.
	Targets              *DailyTargets `json:"targets"`
	DaysHitCalories      *int          `json:"days_hit_calories,omitempty"`
	ProteinBelowWeekdays *int          `json:"protein_below_target_weekdays,omitempty"`

	Insights []string     `json:"insights"`
	Rows     []InsightRow `json:"rows"`
}

type InsightsService struct {
	db     *gorm.DB
	policy InsightsPolicy
}

func NewInsightsService(db *gorm.DB) *InsightsService {
	return &InsightsService{db: db, policy: DefaultInsightsPolicy()}
}

// Compute builds the trailing-window report for a user. `days` is clamped to
// [1, 90]; the window ends today inclusive.
func (s *InsightsService) Compute(ctx context.Context, userID uint, days int) (*InsightsResult, error) {
	days = ClampInsightDays(days)
	today := time.Now()
	startDate := today.AddDate(0, 0, -(days - 1)).Format("2006-01-02")
	endDate := today.Format("2006-01-02")

	var intake []models.IntakeLog
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, startDate, endDate).
		Find(&intake).Error; err != nil {
		return nil, fmt.Errorf("load intake rows: %w", err)
	}

	var activity []models.ActivityLog
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, startDate, endDate).
		Find(&activity).Error; err != nil {
		return nil, fmt.Errorf("load activity rows: %w", err)
	}

	var profile models.UserProfile
	var targets *DailyTargets
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err == nil {
		targets, _ = ComputeDailyTargets(&profile) // nil targets is a valid state
	} else if !isNotFound(err) {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	rows := BuildInsightRows(today, days, intake, activity)
	result := ComputeInsights(rows, targets, s.policy)
	return result, nil
}

func ClampInsightDays(days int) int {
	if days < insightsMinDays {
		return insightsMinDays
	}
	if days > insightsMaxDays {
		return insightsMaxDays
	}
	return days
}

// BuildInsightRows produces exactly `days` rows, one per calendar day ending
// at `today` inclusive, joining intake totals and activity by date string.
func BuildInsightRows(today time.Time, days int, intake []models.IntakeLog, activity []models.ActivityLog) []InsightRow {
	intakeByDate := make(map[string][]models.IntakeLog)
	for _, r := range intake {
		intakeByDate[r.Date] = append(intakeByDate[r.Date], r)
	}
	activityByDate := make(map[string]models.ActivityLog)
	for _, a := range activity {
		activityByDate[a.Date] = a
	}

	rows := make([]InsightRow, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		key := d.Format("2006-01-02")
		row := InsightRow{
			Date:        key,
			Weekday:     int(d.Weekday()),
			DailyTotals: SumDailyTotals(intakeByDate[key]),
		}
		if a, ok := activityByDate[key]; ok {
			row.Steps = a.Steps
			row.CaloriesBurned = a.CaloriesBurned
		}
		rows = append(rows, row)
	}
	return rows
}

// ComputeInsights is the pure half of the engine: averages over the full
// window length, target-hit counters, and template insight strings.
func ComputeInsights(rows []InsightRow, targets *DailyTargets, policy InsightsPolicy) *InsightsResult {
	n := len(rows)
	result := &InsightsResult{
		Days:    n,
		Targets: targets,
		Rows:    rows,
	}
	if n == 0 {
		result.Insights = []string{}
		return result
	}

	var calSum, protSum, carbSum, fatSum, stepSum float64
	for _, r := range rows {
		calSum += r.CaloriesTotal
		protSum += r.ProteinTotal
		carbSum += r.CarbsTotal
		fatSum += r.FatTotal
		stepSum += float64(r.Steps)
	}
	// Averages divide by the window length, not days-with-data: an unlogged
	// day drags the average down on purpose (it measures adherence).
	result.Averages = InsightAverages{
		Calories: round2(calSum / float64(n)),
		ProteinG: round2(protSum / float64(n)),
		CarbsG:   round2(carbSum / float64(n)),
		FatG:     round2(fatSum / float64(n)),
		Steps:    round2(stepSum / float64(n)),
	}

	insights := []string{
		fmt.Sprintf("Average intake was %.0f kcal/day over the last %d days.", result.Averages.Calories, n),
	}
	if stepSum > 0 {
		insights = append(insights, fmt.Sprintf("You averaged %.0f steps/day.", result.Averages.Steps))
	}

	if targets != nil {
		hits := 0
		for _, r := range rows {
			if !policy.CountEmptyDaysAsHit && r.CaloriesTotal == 0 {
				continue
			}
			if r.CaloriesTotal <= float64(targets.Calories) {
				hits++
			}
		}
		result.DaysHitCalories = &hits
		insights = append(insights, fmt.Sprintf("You hit your calorie target on %d/%d days.", hits, n))

		// Weekday-focused protein tracking: Monday-Friday only.
		below, weekdays := 0, 0
		for _, r := range rows {
			if r.Weekday < 1 || r.Weekday > 5 {
				continue
			}
			weekdays++
			if r.ProteinTotal < float64(targets.ProteinG) {
				below++
			}
		}
		result.ProteinBelowWeekdays = &below
		if weekdays > 0 {
			insights = append(insights, fmt.Sprintf("Protein came in below target on %d of %d weekdays.", below, weekdays))
		}
	} else {
		insights = append(insights, "Complete your profile (age, sex, height, weight) to unlock target-based insights.")
	}

	result.Insights = insights
	return result
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
