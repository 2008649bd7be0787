package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"backend/logger"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type SavedFoodController struct {
	Svc    *services.SavedFoodService
	Intake *services.IntakeService
	Hub    *services.RealtimeHub
}

func NewSavedFoodController(svc *services.SavedFoodService, intake *services.IntakeService, hub *services.RealtimeHub) *SavedFoodController {
	return &SavedFoodController{Svc: svc, Intake: intake, Hub: hub}
}

func (h *SavedFoodController) List(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	foods, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		logger.Error("list saved foods failed", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "foods": foods})
}

func (h *SavedFoodController) Create(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input services.SavedFoodInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	if input.Calories < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "calories must not be negative"})
		return
	}

	food, err := h.Svc.Add(c.Request.Context(), userID, input)
	if err != nil {
		logger.Error("create saved food failed", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "food": food})
}

func (h *SavedFoodController) Delete(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid food id"})
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), userID, uint(id)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Saved food not found"})
			return
		}
		logger.Error("delete saved food failed", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type logSavedFoodInput struct {
	Date     string  `json:"date"`
	Servings float64 `json:"servings"`
}

// Log copies a saved food into the intake log for a date (default today).
func (h *SavedFoodController) Log(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid food id"})
		return
	}

	var input logSavedFoodInput
	_ = c.ShouldBindJSON(&input)
	if input.Date != "" && !services.ValidDate(input.Date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	entry, err := h.Svc.Log(c.Request.Context(), userID, uint(id), input.Date, input.Servings)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Saved food not found"})
			return
		}
		logger.Error("log saved food failed", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	totals, err := h.Intake.TotalsByDate(c.Request.Context(), userID, entry.Date)
	if err == nil {
		h.Hub.BroadcastTotals(userID, entry.Date, totals)
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "entry": entry, "totals": totals})
}
