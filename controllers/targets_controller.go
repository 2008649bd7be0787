package controllers

import (
	"errors"
	"net/http"

	"backend/logger"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type TargetsController struct {
	Profiles *services.ProfileService
}

func NewTargetsController(profiles *services.ProfileService) *TargetsController {
	return &TargetsController{Profiles: profiles}
}

// GetTargets recomputes the daily targets from the stored profile. Nothing is
// cached: edits to the profile show up on the next call.
func (h *TargetsController) GetTargets(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	profile, err := h.Profiles.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Complete your profile (age, sex, height, weight) to compute targets"})
			return
		}
		logger.Error("load profile for targets failed", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	targets, err := services.ComputeDailyTargets(profile)
	if err != nil {
		if errors.Is(err, services.ErrProfileIncomplete) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Complete your profile (age, sex, height, weight) to compute targets"})
			return
		}
		logger.Error("compute targets failed", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "targets": targets})
}
