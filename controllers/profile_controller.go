package controllers

import (
	"errors"
	"net/http"

	"backend/logger"
	"backend/models"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	Svc *services.ProfileService
}

func NewProfileController(svc *services.ProfileService) *ProfileController {
	return &ProfileController{Svc: svc}
}

func (h *ProfileController) GetProfile(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	profile, err := h.Svc.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		logger.Error("get profile failed", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "profile": h.Svc.Render(profile)})
}

func validEnum(v *string, allowed ...string) bool {
	if v == nil || *v == "" {
		return true
	}
	for _, a := range allowed {
		if *v == a {
			return true
		}
	}
	return false
}

func (h *ProfileController) UpdateProfile(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input services.ProfileUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if !validEnum(input.Sex, models.SexMale, models.SexFemale) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sex must be 'male' or 'female'"})
		return
	}
	if !validEnum(input.ActivityLevel, models.ActivityLow, models.ActivityMedium, models.ActivityHigh) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "activity_level must be 'low', 'medium' or 'high'"})
		return
	}
	if !validEnum(input.Goal, models.GoalGain, models.GoalLose, models.GoalMaintain) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "goal must be 'gain', 'lose' or 'maintain'"})
		return
	}
	if input.Age != nil && (*input.Age < 0 || *input.Age > 130) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "age is out of range"})
		return
	}
	if input.HeightCm != nil && *input.HeightCm < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "height_cm must be positive"})
		return
	}
	if input.WeightKg != nil && *input.WeightKg < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "weight_kg must be positive"})
		return
	}

	profile, err := h.Svc.Update(c.Request.Context(), userID, input)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		logger.Error("update profile failed", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "profile": h.Svc.Render(profile)})
}
