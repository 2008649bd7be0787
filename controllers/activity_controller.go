package controllers

import (
	"errors"
	"net/http"

	"backend/logger"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type ActivityController struct {
	Svc      *services.ActivityService
	Profiles *services.ProfileService
	Hub      *services.RealtimeHub
}

func NewActivityController(svc *services.ActivityService, profiles *services.ProfileService, hub *services.RealtimeHub) *ActivityController {
	return &ActivityController{Svc: svc, Profiles: profiles, Hub: hub}
}

type activityInput struct {
	Date           string   `json:"date"`
	Steps          int      `json:"steps"`
	ActiveMinutes  *int     `json:"active_minutes"`
	CaloriesBurned *float64 `json:"calories_burned"`
}

// Upsert writes (or replaces) the day's activity log. When calories_burned is
// absent it is estimated from steps and the profile's bodyweight.
func (h *ActivityController) Upsert(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input activityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if input.Date != "" && !services.ValidDate(input.Date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}
	if input.Steps < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "steps must not be negative"})
		return
	}

	var weightKg float64
	profile, err := h.Profiles.Get(c.Request.Context(), userID)
	if err == nil {
		weightKg = profile.WeightKg
	} else if !errors.Is(err, services.ErrNotFound) {
		logger.Error("load profile for activity failed", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	row, err := h.Svc.Upsert(c.Request.Context(), userID, services.ActivityInput{
		Date:           input.Date,
		Steps:          input.Steps,
		ActiveMinutes:  input.ActiveMinutes,
		CaloriesBurned: input.CaloriesBurned,
	}, weightKg)
	if err != nil {
		logger.Error("upsert activity failed", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	h.Hub.Broadcast(userID, map[string]any{"kind": "activity.updated", "activity": row})
	c.JSON(http.StatusOK, gin.H{"success": true, "activity": row})
}

// Get returns the activity row for a date (default today), zero-valued when
// nothing was logged.
func (h *ActivityController) Get(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	date := c.Query("date")
	if date == "" {
		date = services.Today()
	}
	if !services.ValidDate(date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	row, err := h.Svc.GetByDate(c.Request.Context(), userID, date)
	if err != nil {
		logger.Error("get activity failed", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "activity": row})
}
