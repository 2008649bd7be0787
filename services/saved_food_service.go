package services

import (
	"context"
	"fmt"

	"backend/models"

	"gorm.io/gorm"
)

type SavedFoodService struct {
	db     *gorm.DB
	intake *IntakeService
}

func NewSavedFoodService(db *gorm.DB, intake *IntakeService) *SavedFoodService {
	return &SavedFoodService{db: db, intake: intake}
}

type SavedFoodInput struct {
	Name            string   `json:"name"`
	Calories        float64  `json:"calories"`
	ProteinG        *float64 `json:"protein_g"`
	CarbsG          *float64 `json:"carbs_g"`
	FatG            *float64 `json:"fat_g"`
	DefaultServings float64  `json:"default_servings"`
}

func (s *SavedFoodService) List(ctx context.Context, userID uint) ([]models.SavedFood, error) {
	foods := make([]models.SavedFood, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&foods).Error
	if err != nil {
		return nil, fmt.Errorf("list saved foods: %w", err)
	}
	return foods, nil
}

func (s *SavedFoodService) Add(ctx context.Context, userID uint, in SavedFoodInput) (*models.SavedFood, error) {
	if in.DefaultServings <= 0 {
		in.DefaultServings = 1
	}
	food := models.SavedFood{
		UserID:          userID,
		Name:            in.Name,
		Calories:        in.Calories,
		ProteinG:        in.ProteinG,
		CarbsG:          in.CarbsG,
		FatG:            in.FatG,
		DefaultServings: in.DefaultServings,
	}
	if err := s.db.WithContext(ctx).Create(&food).Error; err != nil {
		return nil, fmt.Errorf("create saved food: %w", err)
	}
	return &food, nil
}

func (s *SavedFoodService) Delete(ctx context.Context, userID, id uint) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.SavedFood{})
	if res.Error != nil {
		return fmt.Errorf("delete saved food: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Log copies the template's macro profile into a saved_food-sourced intake
// entry for the date. Past intake entries keep their own copy of the numbers,
// so later edits or deletion of the template do not affect them.
func (s *SavedFoodService) Log(ctx context.Context, userID, id uint, date string, servings float64) (*models.IntakeLog, error) {
	var food models.SavedFood
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&food).Error
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load saved food: %w", err)
	}

	if servings <= 0 {
		servings = food.DefaultServings
	}

	scale := func(v *float64) *float64 {
		if v == nil {
			return nil
		}
		scaled := *v * servings
		return &scaled
	}

	return s.intake.Add(ctx, userID, IntakeInput{
		Date:       date,
		SourceType: models.SourceSavedFood,
		ItemName:   food.Name,
		Calories:   food.Calories * servings,
		ProteinG:   scale(food.ProteinG),
		CarbsG:     scale(food.CarbsG),
		FatG:       scale(food.FatG),
		Servings:   servings,
	})
}
