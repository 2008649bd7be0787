package models

import "time"

// ActivityLog holds at most one row per (user, date); writes for an existing
// date replace the previous values wholesale.
type ActivityLog struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"-" gorm:"uniqueIndex:idx_activity_user_date;not null"`
	Date           string    `json:"date" gorm:"uniqueIndex:idx_activity_user_date;size:10;not null"`
	Steps          int       `json:"steps" gorm:"default:0"`
	ActiveMinutes  *int      `json:"active_minutes"`
	CaloriesBurned float64   `json:"calories_burned" gorm:"default:0"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"-"`
}

func (ActivityLog) TableName() string { return "daily_activity_logs" }
