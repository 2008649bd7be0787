package controllers

import (
	"net/http"
	"sort"

	"backend/logger"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type SummaryController struct {
	Intake   *services.IntakeService
	Activity *services.ActivityService
}

func NewSummaryController(intake *services.IntakeService, activity *services.ActivityService) *SummaryController {
	return &SummaryController{Intake: intake, Activity: activity}
}

type summaryDay struct {
	Date string `json:"date"`
	services.DailyTotals
	CaloriesBurnedTotal float64 `json:"calories_burned_total"`
}

// Monthly merges intake totals and activity burn into one sparse per-day list
// for a YYYY-MM month.
func (h *SummaryController) Monthly(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	month := c.Query("month")
	if !services.ValidMonth(month) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
		return
	}

	intake, err := h.Intake.CalendarTotals(c.Request.Context(), userID, month)
	if err != nil {
		logger.Error("monthly intake summary failed", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	burn, err := h.Activity.CalendarBurn(c.Request.Context(), userID, month)
	if err != nil {
		logger.Error("monthly activity summary failed", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	byDate := make(map[string]*summaryDay)
	for _, d := range intake {
		byDate[d.Date] = &summaryDay{Date: d.Date, DailyTotals: d.DailyTotals}
	}
	for _, b := range burn {
		day := byDate[b.Date]
		if day == nil {
			day = &summaryDay{Date: b.Date}
			byDate[b.Date] = day
		}
		day.CaloriesBurnedTotal = b.CaloriesBurnedTotal
	}

	days := make([]summaryDay, 0, len(byDate))
	for _, d := range byDate {
		days = append(days, *d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	c.JSON(http.StatusOK, gin.H{"success": true, "month": month, "days": days})
}
