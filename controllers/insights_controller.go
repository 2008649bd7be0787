package controllers

import (
	"net/http"
	"strconv"

	"backend/logger"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type InsightsController struct {
	Svc *services.InsightsService
}

func NewInsightsController(svc *services.InsightsService) *InsightsController {
	return &InsightsController{Svc: svc}
}

// GetInsights computes the trailing-window report. ?days= is clamped into the
// supported range rather than rejected.
func (h *InsightsController) GetInsights(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a number"})
		return
	}

	report, err := h.Svc.Compute(c.Request.Context(), userID, days)
	if err != nil {
		logger.Error("insights failed", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Engine output spreads into the envelope; no wrapper object.
	out := gin.H{
		"success":  true,
		"days":     report.Days,
		"averages": report.Averages,
		"targets":  report.Targets,
		"insights": report.Insights,
		"rows":     report.Rows,
	}
	if report.DaysHitCalories != nil {
		out["days_hit_calories"] = *report.DaysHitCalories
	}
	if report.ProteinBelowWeekdays != nil {
		out["protein_below_target_weekdays"] = *report.ProteinBelowWeekdays
	}
	c.JSON(http.StatusOK, out)
}
