package services

import (
	"context"
	"encoding/json"
	"time"

	"backend/logger"
	"backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionService struct{ db *gorm.DB }

func NewSessionService(db *gorm.DB) *SessionService { return &SessionService{db: db} }

// Save snapshots the latest LLM request/response for a user. Failures are
// logged and swallowed: losing a debug snapshot must never fail the request
// that produced it.
func (s *SessionService) Save(ctx context.Context, userID uint, request, response any) {
	reqJSON, err := json.Marshal(request)
	if err != nil {
		logger.Warn("marshal session request snapshot", "error", err)
		return
	}
	respJSON, err := json.Marshal(response)
	if err != nil {
		logger.Warn("marshal session response snapshot", "error", err)
		return
	}

	row := models.SessionData{
		UserID:       userID,
		LastRequest:  reqJSON,
		LastResponse: respJSON,
		UpdatedAt:    time.Now(),
	}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_request_json", "last_response_json", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		logger.Warn("save session snapshot", "error", err)
	}
}
