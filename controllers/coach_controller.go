package controllers

import (
	"net/http"

	"backend/logger"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type CoachController struct {
	Svc *services.CoachService
}

func NewCoachController(svc *services.CoachService) *CoachController {
	return &CoachController{Svc: svc}
}

type coachInput struct {
	Days int `json:"days"`
}

// Coach asks the model for feedback on the recent log. The raw reply always
// comes back; "parsed" is null when the model ignored the JSON schema.
func (h *CoachController) Coach(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	input := coachInput{Days: 7}
	_ = c.ShouldBindJSON(&input)
	if input.Days == 0 {
		input.Days = 7
	}

	raw, feedback, err := h.Svc.Coach(c.Request.Context(), userID, input.Days)
	if err != nil {
		logger.Error("coach failed", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Coaching service unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "raw": raw, "parsed": feedback})
}
