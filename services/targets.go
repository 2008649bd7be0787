package services

import (
	"errors"
	"math"

	"backend/models"
)

// ErrProfileIncomplete means targets cannot be derived yet. Controllers map it
// to a 400 "complete your profile" response, not a server error.
var ErrProfileIncomplete = errors.New("profile is missing age, sex, height or weight")

// Activity factors applied to BMR. Unknown levels use the medium factor.
var activityFactors = map[string]float64{
	models.ActivityLow:    1.2,
	models.ActivityMedium: 1.55,
	models.ActivityHigh:   1.725,
}

const (
	proteinGPerKg        = 1.8
	fatPercentOfCalories = 0.275
	caloriesPerGProtein  = 4.0
	caloriesPerGFat      = 9.0
	caloriesPerGCarbs    = 4.0
)

// DailyTargets is derived fresh from the profile on every request and never
// persisted.
type DailyTargets struct {
	BMR      int    `json:"bmr"`
	TDEE     int    `json:"tdee"`
	Calories int    `json:"calories"`
	ProteinG int    `json:"protein_g"`
	FatG     int    `json:"fat_g"`
	CarbsG   int    `json:"carbs_g"`
	Goal     string `json:"goal"`
}

// ComputeDailyTargets turns a biometric profile into calorie and macro
// targets: Mifflin-St Jeor BMR, activity-scaled TDEE, goal-adjusted calories,
// then a fixed macro split (protein by bodyweight, fat as a calorie share,
// carbs as the remainder). Pure function of its input.
func ComputeDailyTargets(p *models.UserProfile) (*DailyTargets, error) {
	if p == nil || p.Age <= 0 || p.Sex == "" || p.HeightCm <= 0 || p.WeightKg <= 0 {
		return nil, ErrProfileIncomplete
	}

	var bmr float64
	if p.Sex == models.SexFemale {
		bmr = 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age) - 161
	} else {
		bmr = 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age) + 5
	}

	factor, ok := activityFactors[p.ActivityLevel]
	if !ok {
		factor = activityFactors[models.ActivityMedium]
	}
	tdee := math.Round(bmr * factor)

	goal := p.Goal
	if goal == "" {
		goal = models.GoalMaintain
	}

	var calories float64
	if p.TargetCalories > 0 {
		calories = math.Round(float64(p.TargetCalories))
	} else {
		intensity := float64(p.EffectiveIntensityPercent())
		multiplier := 1.0
		switch goal {
		case models.GoalLose:
			multiplier = math.Max(0.5, 1+intensity/100)
		case models.GoalGain:
			multiplier = math.Min(1.5, 1+intensity/100)
		}
		calories = math.Round(tdee * multiplier)
	}

	proteinG := math.Round(p.WeightKg * proteinGPerKg)
	proteinCal := proteinG * caloriesPerGProtein
	fatCal := calories * fatPercentOfCalories
	fatG := math.Round(fatCal / caloriesPerGFat)
	remainingCal := math.Max(0, calories-proteinCal-fatCal)
	carbsG := math.Round(remainingCal / caloriesPerGCarbs)

	return &DailyTargets{
		BMR:      int(math.Round(bmr)),
		TDEE:     int(tdee),
		Calories: int(calories),
		ProteinG: int(proteinG),
		FatG:     int(fatG),
		CarbsG:   int(carbsG),
		Goal:     goal,
	}, nil
}
