package models

import (
	"time"

	"gorm.io/datatypes"
)

// SessionData keeps the last LLM request/response pair per user, mainly for
// support and prompt debugging.
type SessionData struct {
	UserID       uint           `gorm:"primaryKey"`
	LastRequest  datatypes.JSON `gorm:"column:last_request_json"`
	LastResponse datatypes.JSON `gorm:"column:last_response_json"`
	UpdatedAt    time.Time
}

func (SessionData) TableName() string { return "user_session_data" }
