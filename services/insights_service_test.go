package services

import (
	"context"
	"testing"
	"time"

	"backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsightsComputeAgainstDB(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	intake := NewIntakeService(db)
	activity := NewActivityService(db)
	svc := NewInsightsService(db)
	ctx := context.Background()

	today := Today()
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	_, err := intake.Add(ctx, user.ID, IntakeInput{Date: today, ItemName: "Lunch", Calories: 1400, ProteinG: fp(70)})
	require.NoError(t, err)
	_, err = intake.Add(ctx, user.ID, IntakeInput{Date: yesterday, ItemName: "Dinner", Calories: 2100})
	require.NoError(t, err)
	_, err = activity.Upsert(ctx, user.ID, ActivityInput{Date: today, Steps: 7000}, 70)
	require.NoError(t, err)

	// Profile is still blank, so no targets and no hit counters.
	report, err := svc.Compute(ctx, user.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, report.Days)
	require.Len(t, report.Rows, 7)
	assert.Equal(t, 500.0, report.Averages.Calories)
	assert.Equal(t, 1000.0, report.Averages.Steps)
	assert.Nil(t, report.Targets)
	assert.Nil(t, report.DaysHitCalories)

	// Completing the profile unlocks the target-based counters.
	require.NoError(t, db.Model(&models.UserProfile{}).
		Where("user_id = ?", user.ID).
		Updates(map[string]any{"age": 30, "sex": "female", "height_cm": 165, "weight_kg": 60}).Error)

	report, err = svc.Compute(ctx, user.ID, 7)
	require.NoError(t, err)
	require.NotNil(t, report.Targets)
	assert.Equal(t, 2046, report.Targets.Calories)
	require.NotNil(t, report.DaysHitCalories)
	// 1400 and 2100 vs 2046: yesterday missed, every other day (empty ones
	// included) hit.
	assert.Equal(t, 6, *report.DaysHitCalories)
}

func TestInsightsComputeClampsDays(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	svc := NewInsightsService(db)

	report, err := svc.Compute(context.Background(), user.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Days)

	report, err = svc.Compute(context.Background(), user.ID, 5000)
	require.NoError(t, err)
	assert.Equal(t, 90, report.Days)
}
