package services

import (
	"context"
	"testing"

	"backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntakeAddDefaults(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	svc := NewIntakeService(db)
	ctx := context.Background()

	entry, err := svc.Add(ctx, user.ID, IntakeInput{ItemName: "Oatmeal", Calories: 350})
	require.NoError(t, err)

	assert.Equal(t, Today(), entry.Date)
	assert.Equal(t, models.SourceManual, entry.SourceType)
	assert.Equal(t, 1.0, entry.Servings)
	assert.Nil(t, entry.ProteinG)
}

func TestIntakeTotalsByDate(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	svc := NewIntakeService(db)
	ctx := context.Background()

	_, err := svc.Add(ctx, user.ID, IntakeInput{Date: "2026-08-28", ItemName: "Breakfast", Calories: 500, ProteinG: fp(30)})
	require.NoError(t, err)
	_, err = svc.Add(ctx, user.ID, IntakeInput{Date: "2026-08-28", ItemName: "Lunch", Calories: 300})
	require.NoError(t, err)
	_, err = svc.Add(ctx, user.ID, IntakeInput{Date: "2026-08-27", ItemName: "Old dinner", Calories: 900})
	require.NoError(t, err)

	totals, err := svc.TotalsByDate(ctx, user.ID, "2026-08-28")
	require.NoError(t, err)
	assert.Equal(t, 800.0, totals.CaloriesTotal)
	assert.Equal(t, 30.0, totals.ProteinTotal)

	empty, err := svc.TotalsByDate(ctx, user.ID, "2026-01-01")
	require.NoError(t, err)
	assert.Equal(t, DailyTotals{}, empty)
}

func TestIntakeCalendarTotals(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	svc := NewIntakeService(db)
	ctx := context.Background()

	for _, in := range []IntakeInput{
		{Date: "2026-08-03", ItemName: "x", Calories: 400},
		{Date: "2026-08-03", ItemName: "y", Calories: 600},
		{Date: "2026-08-20", ItemName: "z", Calories: 300},
		{Date: "2026-07-31", ItemName: "other month", Calories: 999},
	} {
		_, err := svc.Add(ctx, user.ID, in)
		require.NoError(t, err)
	}

	days, err := svc.CalendarTotals(ctx, user.ID, "2026-08")
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, "2026-08-03", days[0].Date)
	assert.Equal(t, 1000.0, days[0].CaloriesTotal)
	assert.Equal(t, "2026-08-20", days[1].Date)
}

func TestIntakeUpdatePartial(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	svc := NewIntakeService(db)
	ctx := context.Background()

	entry, err := svc.Add(ctx, user.ID, IntakeInput{Date: "2026-08-28", ItemName: "Sandwich", Calories: 450, ProteinG: fp(20)})
	require.NoError(t, err)

	newCal := 500.0
	updated, err := svc.Update(ctx, user.ID, entry.ID, IntakeUpdate{Calories: &newCal})
	require.NoError(t, err)

	assert.Equal(t, 500.0, updated.Calories)
	assert.Equal(t, "Sandwich", updated.ItemName, "unset fields stay put")
	require.NotNil(t, updated.ProteinG)
	assert.Equal(t, 20.0, *updated.ProteinG)
}

func TestIntakeOwnershipIsEnforced(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")
	svc := NewIntakeService(db)
	ctx := context.Background()

	entry, err := svc.Add(ctx, owner.ID, IntakeInput{Date: "2026-08-28", ItemName: "Secret snack", Calories: 200})
	require.NoError(t, err)

	name := "hijacked"
	_, err = svc.Update(ctx, other.ID, entry.ID, IntakeUpdate{ItemName: &name})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Delete(ctx, other.ID, entry.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Owner still sees the untouched entry.
	rows, err := svc.ListByDate(ctx, owner.ID, "2026-08-28")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Secret snack", rows[0].ItemName)
}

func TestIntakeDeleteReturnsDate(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	svc := NewIntakeService(db)
	ctx := context.Background()

	entry, err := svc.Add(ctx, user.ID, IntakeInput{Date: "2026-08-28", ItemName: "Snack", Calories: 150})
	require.NoError(t, err)

	date, err := svc.Delete(ctx, user.ID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-28", date)

	totals, err := svc.TotalsByDate(ctx, user.ID, date)
	require.NoError(t, err)
	assert.Equal(t, 0.0, totals.CaloriesTotal)
}

func TestIntakeFrequent(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	svc := NewIntakeService(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Add(ctx, user.ID, IntakeInput{Date: "2026-08-28", ItemName: "Coffee", Calories: 50})
		require.NoError(t, err)
	}
	_, err := svc.Add(ctx, user.ID, IntakeInput{Date: "2026-08-28", ItemName: "Banana", Calories: 100, ProteinG: fp(1)})
	require.NoError(t, err)

	items, err := svc.Frequent(ctx, user.ID, 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Coffee", items[0].ItemName)
	assert.Equal(t, int64(3), items[0].Count)
	assert.Equal(t, 50.0, items[0].AvgCalories)
}
