package models

import "time"

// SavedFood is a reusable per-user food template. Deleting one does not touch
// intake rows that were created from it.
type SavedFood struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	UserID          uint      `json:"-" gorm:"index;not null"`
	Name            string    `json:"name" gorm:"not null"`
	Calories        float64   `json:"calories" gorm:"not null"`
	ProteinG        *float64  `json:"protein_g"`
	CarbsG          *float64  `json:"carbs_g"`
	FatG            *float64  `json:"fat_g"`
	DefaultServings float64   `json:"default_servings" gorm:"default:1"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"-"`
}
