package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Enum values accepted in profile fields. Unknown values fall back to the
// defaults at computation time rather than being rejected on write.
const (
	SexMale   = "male"
	SexFemale = "female"

	ActivityLow    = "low"
	ActivityMedium = "medium"
	ActivityHigh   = "high"

	GoalGain     = "gain"
	GoalLose     = "lose"
	GoalMaintain = "maintain"
)

// MealPreferences is the semi-structured preference bag attached to a profile.
type MealPreferences struct {
	Cuisine     string `json:"cuisine,omitempty"`
	CookingTime string `json:"cooking_time,omitempty"`
	MealType    string `json:"meal_type,omitempty"`
}

// UserProfile is the one-to-one biometric/goal record per user. Targets are
// derived from it on every read and never persisted.
type UserProfile struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex;not null"`

	Age      int     `json:"age"`
	Sex      string  `json:"sex"` // male | female
	HeightCm float64 `json:"height_cm"`
	WeightKg float64 `json:"weight_kg"`

	ActivityLevel string `json:"activity_level" gorm:"default:medium"` // low | medium | high
	Goal          string `json:"goal" gorm:"default:maintain"`         // gain | lose | maintain

	// Signed percent adjustment to TDEE. Nil means "derive from goal"
	// (lose -20, gain +10, maintain 0).
	IntensityPercent *int `json:"intensity_percent"`

	// When > 0 this overrides the goal-based calorie computation.
	TargetCalories int `json:"target_calories"`

	DietType    string                              `json:"diet_type" gorm:"default:none"`
	Allergies   datatypes.JSONSlice[string]         `json:"allergies"`
	Preferences datatypes.JSONType[MealPreferences] `json:"preferences"`
}

// EffectiveIntensityPercent resolves the stored intensity or the goal default.
func (p *UserProfile) EffectiveIntensityPercent() int {
	if p.IntensityPercent != nil {
		return *p.IntensityPercent
	}
	switch p.Goal {
	case GoalLose:
		return -20
	case GoalGain:
		return 10
	default:
		return 0
	}
}
