package services

import (
	"context"
	"fmt"

	"backend/models"
	"backend/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProfileService struct{ db *gorm.DB }

func NewProfileService(db *gorm.DB) *ProfileService { return &ProfileService{db: db} }

// ProfileUpdate applies partial updates; nil pointers leave the stored value
// alone, which lets clients PATCH-style PUT individual fields.
type ProfileUpdate struct {
	Age              *int                    `json:"age"`
	Sex              *string                 `json:"sex"`
	HeightCm         *float64                `json:"height_cm"`
	WeightKg         *float64                `json:"weight_kg"`
	ActivityLevel    *string                 `json:"activity_level"`
	Goal             *string                 `json:"goal"`
	IntensityPercent *int                    `json:"intensity_percent"`
	TargetCalories   *int                    `json:"target_calories"`
	DietType         *string                 `json:"diet_type"`
	Allergies        *[]string               `json:"allergies"`
	Preferences      *models.MealPreferences `json:"preferences"`
}

func (s *ProfileService) Get(ctx context.Context, userID uint) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return &profile, nil
}

func (s *ProfileService) Update(ctx context.Context, userID uint, in ProfileUpdate) (*models.UserProfile, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Age != nil {
		profile.Age = *in.Age
	}
	if in.Sex != nil {
		profile.Sex = *in.Sex
	}
	if in.HeightCm != nil {
		profile.HeightCm = *in.HeightCm
	}
	if in.WeightKg != nil {
		profile.WeightKg = *in.WeightKg
	}
	if in.ActivityLevel != nil {
		profile.ActivityLevel = *in.ActivityLevel
	}
	if in.Goal != nil {
		profile.Goal = *in.Goal
	}
	if in.IntensityPercent != nil {
		profile.IntensityPercent = in.IntensityPercent
	}
	if in.TargetCalories != nil {
		profile.TargetCalories = *in.TargetCalories
	}
	if in.DietType != nil {
		profile.DietType = *in.DietType
	}
	if in.Allergies != nil {
		profile.Allergies = datatypes.NewJSONSlice(*in.Allergies)
	}
	if in.Preferences != nil {
		profile.Preferences = datatypes.NewJSONType(*in.Preferences)
	}

	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return profile, nil
}

// Render flattens a profile for the API, attaching BMI when computable.
func (s *ProfileService) Render(profile *models.UserProfile) map[string]any {
	out := map[string]any{
		"age":               profile.Age,
		"sex":               profile.Sex,
		"height_cm":         profile.HeightCm,
		"weight_kg":         profile.WeightKg,
		"activity_level":    profile.ActivityLevel,
		"goal":              profile.Goal,
		"intensity_percent": profile.EffectiveIntensityPercent(),
		"target_calories":   profile.TargetCalories,
		"diet_type":         profile.DietType,
		"allergies":         []string(profile.Allergies),
		"preferences":       profile.Preferences.Data(),
	}
	if bmi, err := utils.CalculateBMI(profile.HeightCm, profile.WeightKg); err == nil {
		out["bmi"] = round2(bmi)
		out["bmi_category"] = utils.BMICategory(bmi)
	}
	return out
}
