package services

import (
	"context"
	"testing"

	"backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityUpsertLastWriteWins(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	svc := NewActivityService(db)
	ctx := context.Background()

	first, err := svc.Upsert(ctx, user.ID, ActivityInput{Date: "2026-08-28", Steps: 4000}, 70)
	require.NoError(t, err)
	assert.Equal(t, 4000, first.Steps)

	minutes := 45
	second, err := svc.Upsert(ctx, user.ID, ActivityInput{Date: "2026-08-28", Steps: 12000, ActiveMinutes: &minutes}, 70)
	require.NoError(t, err)
	assert.Equal(t, 12000, second.Steps)
	require.NotNil(t, second.ActiveMinutes)
	assert.Equal(t, 45, *second.ActiveMinutes)

	var count int64
	require.NoError(t, db.Model(&models.ActivityLog{}).
		Where("user_id = ? AND date = ?", user.ID, "2026-08-28").
		Count(&count).Error)
	assert.Equal(t, int64(1), count, "one row per user and date")
}

func TestActivityUpsertEstimatesBurn(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	svc := NewActivityService(db)
	ctx := context.Background()

	row, err := svc.Upsert(ctx, user.ID, ActivityInput{Date: "2026-08-28", Steps: 10000}, 70)
	require.NoError(t, err)
	assert.Equal(t, 400.0, row.CaloriesBurned)

	// Explicit calories_burned overrides the estimate.
	explicit := 650.0
	row, err = svc.Upsert(ctx, user.ID, ActivityInput{Date: "2026-08-28", Steps: 10000, CaloriesBurned: &explicit}, 70)
	require.NoError(t, err)
	assert.Equal(t, 650.0, row.CaloriesBurned)
}

func TestActivityGetByDateDefaultsToZero(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	svc := NewActivityService(db)

	row, err := svc.GetByDate(context.Background(), user.ID, "2026-08-28")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-28", row.Date)
	assert.Equal(t, 0, row.Steps)
	assert.Equal(t, 0.0, row.CaloriesBurned)
}

func TestActivityCalendarBurn(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	svc := NewActivityService(db)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, user.ID, ActivityInput{Date: "2026-08-10", Steps: 5000}, 70)
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, user.ID, ActivityInput{Date: "2026-08-02", Steps: 10000}, 70)
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, user.ID, ActivityInput{Date: "2026-07-30", Steps: 9999}, 70)
	require.NoError(t, err)

	burn, err := svc.CalendarBurn(ctx, user.ID, "2026-08")
	require.NoError(t, err)
	require.Len(t, burn, 2)
	assert.Equal(t, "2026-08-02", burn[0].Date)
	assert.Equal(t, 400.0, burn[0].CaloriesBurnedTotal)
	assert.Equal(t, "2026-08-10", burn[1].Date)
}
