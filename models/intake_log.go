package models

import "time"

// Intake source types.
const (
	SourceGeneratedRecipe = "generated_recipe"
	SourceSavedFood       = "saved_food"
	SourceManual          = "manual"
)

// IntakeLog is one logged food item. Append-only per day: logging twice adds
// two rows, unlike activity which upserts.
type IntakeLog struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"-" gorm:"index:idx_intake_user_date;not null"`
	Date       string    `json:"date" gorm:"index:idx_intake_user_date;size:10;not null"` // YYYY-MM-DD
	SourceType string    `json:"source_type" gorm:"default:manual"`
	ItemName   string    `json:"item_name" gorm:"not null"`
	Calories   float64   `json:"calories" gorm:"not null"`
	ProteinG   *float64  `json:"protein_g"`
	CarbsG     *float64  `json:"carbs_g"`
	FatG       *float64  `json:"fat_g"`
	Servings   float64   `json:"servings" gorm:"default:1"`
	ImageURL   string    `json:"image_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"-"`
}

func (IntakeLog) TableName() string { return "daily_intake_logs" }
