package services

import (
	"context"
	"testing"

	"backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSavedFoodFixture(t *testing.T) (*SavedFoodService, *IntakeService, uint) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	intake := NewIntakeService(db)
	return NewSavedFoodService(db, intake), intake, user.ID
}

func TestSavedFoodLogCopiesScaledMacros(t *testing.T) {
	svc, intake, userID := newSavedFoodFixture(t)
	ctx := context.Background()

	food, err := svc.Add(ctx, userID, SavedFoodInput{
		Name: "Protein shake", Calories: 200, ProteinG: fp(30), CarbsG: fp(10), FatG: fp(4),
	})
	require.NoError(t, err)

	entry, err := svc.Log(ctx, userID, food.ID, "2026-08-28", 2)
	require.NoError(t, err)

	assert.Equal(t, models.SourceSavedFood, entry.SourceType)
	assert.Equal(t, "Protein shake", entry.ItemName)
	assert.Equal(t, 400.0, entry.Calories)
	assert.Equal(t, 60.0, *entry.ProteinG)
	assert.Equal(t, 2.0, entry.Servings)

	totals, err := intake.TotalsByDate(ctx, userID, "2026-08-28")
	require.NoError(t, err)
	assert.Equal(t, 400.0, totals.CaloriesTotal)
}

func TestSavedFoodLogDefaultsServings(t *testing.T) {
	svc, _, userID := newSavedFoodFixture(t)
	ctx := context.Background()

	food, err := svc.Add(ctx, userID, SavedFoodInput{Name: "Half bagel", Calories: 150, DefaultServings: 0.5})
	require.NoError(t, err)

	entry, err := svc.Log(ctx, userID, food.ID, "2026-08-28", 0)
	require.NoError(t, err)
	assert.Equal(t, 0.5, entry.Servings)
	assert.Equal(t, 75.0, entry.Calories)
}

func TestSavedFoodLogKeepsPastEntriesIndependent(t *testing.T) {
	svc, intake, userID := newSavedFoodFixture(t)
	ctx := context.Background()

	food, err := svc.Add(ctx, userID, SavedFoodInput{Name: "Granola bar", Calories: 180})
	require.NoError(t, err)

	entry, err := svc.Log(ctx, userID, food.ID, "2026-08-28", 1)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, userID, food.ID))

	rows, err := intake.ListByDate(ctx, userID, "2026-08-28")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, entry.ID, rows[0].ID)
	assert.Equal(t, 180.0, rows[0].Calories)
}

func TestSavedFoodDeleteNotFound(t *testing.T) {
	svc, _, userID := newSavedFoodFixture(t)
	assert.ErrorIs(t, svc.Delete(context.Background(), userID, 999), ErrNotFound)
}

func TestSavedFoodLogOtherUsersTemplate(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")
	intake := NewIntakeService(db)
	svc := NewSavedFoodService(db, intake)
	ctx := context.Background()

	food, err := svc.Add(ctx, owner.ID, SavedFoodInput{Name: "Private meal", Calories: 500})
	require.NoError(t, err)

	_, err = svc.Log(ctx, other.ID, food.ID, "2026-08-28", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}
