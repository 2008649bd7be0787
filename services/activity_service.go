package services

import (
	"context"
	"fmt"

	"backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ActivityService struct{ db *gorm.DB }

func NewActivityService(db *gorm.DB) *ActivityService { return &ActivityService{db: db} }

// ActivityInput carries one day's log. CaloriesBurned nil means "estimate
// from steps and bodyweight".
type ActivityInput struct {
	Date           string
	Steps          int
	ActiveMinutes  *int
	CaloriesBurned *float64
}

// Upsert writes the activity row for (user, date), replacing all fields when
// one already exists. The ON CONFLICT clause keeps concurrent writers from
// producing duplicate rows; last writer wins.
func (s *ActivityService) Upsert(ctx context.Context, userID uint, in ActivityInput, weightKg float64) (*models.ActivityLog, error) {
	if in.Date == "" {
		in.Date = Today()
	}

	burned := EstimateCaloriesFromSteps(in.Steps, weightKg)
	if in.CaloriesBurned != nil {
		burned = *in.CaloriesBurned
	}

	row := models.ActivityLog{
		UserID:         userID,
		Date:           in.Date,
		Steps:          in.Steps,
		ActiveMinutes:  in.ActiveMinutes,
		CaloriesBurned: burned,
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"steps", "active_minutes", "calories_burned", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("upsert activity: %w", err)
	}

	// Re-read so the caller sees the surviving row (id included) after a
	// conflict-update.
	var saved models.ActivityLog
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, in.Date).
		First(&saved).Error; err != nil {
		return nil, fmt.Errorf("reload activity: %w", err)
	}
	return &saved, nil
}

// GetByDate returns the row for the date, or a zero-valued one so clients
// never have to handle absence.
func (s *ActivityService) GetByDate(ctx context.Context, userID uint, date string) (*models.ActivityLog, error) {
	var row models.ActivityLog
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&row).Error
	if err != nil {
		if isNotFound(err) {
			zero := 0
			return &models.ActivityLog{Date: date, Steps: 0, ActiveMinutes: &zero, CaloriesBurned: 0}, nil
		}
		return nil, fmt.Errorf("load activity: %w", err)
	}
	return &row, nil
}

// CalendarBurn returns per-date calories_burned for a YYYY-MM month, sparse
// and ascending.
func (s *ActivityService) CalendarBurn(ctx context.Context, userID uint, month string) ([]ActivityBurn, error) {
	var rows []models.ActivityLog
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date LIKE ?", userID, month+"%").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load month activity: %w", err)
	}
	return GroupActivityBurn(rows), nil
}
