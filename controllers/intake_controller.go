package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"backend/logger"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type IntakeController struct {
	Svc *services.IntakeService
	Hub *services.RealtimeHub
}

func NewIntakeController(svc *services.IntakeService, hub *services.RealtimeHub) *IntakeController {
	return &IntakeController{Svc: svc, Hub: hub}
}

type intakeCreateInput struct {
	Date        string   `json:"date"`
	SourceType  string   `json:"source_type"`
	ItemName    string   `json:"item_name"`
	Calories    *float64 `json:"calories"`
	ProteinG    *float64 `json:"protein_g"`
	CarbsG      *float64 `json:"carbs_g"`
	FatG        *float64 `json:"fat_g"`
	Servings    float64  `json:"servings"`
	ImageURL    string   `json:"image_url"`
	ImageBase64 string   `json:"image_base64"`
}

// Create logs an intake entry, optionally storing an attached photo, and
// replies with the entry plus the day's recomputed totals.
func (h *IntakeController) Create(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input intakeCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if input.ItemName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_name is required"})
		return
	}
	if input.Calories == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "calories is required"})
		return
	}
	if *input.Calories < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "calories must not be negative"})
		return
	}
	if input.Date != "" && !services.ValidDate(input.Date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	imageURL := input.ImageURL
	if input.ImageBase64 != "" {
		url, err := utils.UploadBase64ImageToS3(input.ImageBase64, fmt.Sprintf("user-%d", userID))
		if err != nil {
			// The photo is a nice-to-have; the log entry still goes in.
			logger.Warn("food photo upload failed", "user", userID, "error", err)
		} else {
			imageURL = url
		}
	}

	entry, err := h.Svc.Add(c.Request.Context(), userID, services.IntakeInput{
		Date:       input.Date,
		SourceType: input.SourceType,
		ItemName:   input.ItemName,
		Calories:   *input.Calories,
		ProteinG:   input.ProteinG,
		CarbsG:     input.CarbsG,
		FatG:       input.FatG,
		Servings:   input.Servings,
		ImageURL:   imageURL,
	})
	if err != nil {
		logger.Error("create intake failed", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	totals, err := h.Svc.TotalsByDate(c.Request.Context(), userID, entry.Date)
	if err != nil {
		logger.Error("recompute totals failed", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	h.Hub.BroadcastTotals(userID, entry.Date, totals)

	c.JSON(http.StatusCreated, gin.H{"success": true, "id": entry.ID, "entry": entry, "totals": totals})
}

// List returns the entries and totals for one date (default today).
func (h *IntakeController) List(c *gin.Context) {
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

	entries, err := h.Svc.ListByDate(c.Request.Context(), userID, date)
	if err != nil {
		logger.Error("list intake failed", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"date":    date,
		"items":   entries,
		"totals":  services.SumDailyTotals(entries),
	})
}

// Calendar returns per-day intake totals for a YYYY-MM month.
func (h *IntakeController) Calendar(c *gin.Context) {
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

	days, err := h.Svc.CalendarTotals(c.Request.Context(), userID, month)
	if err != nil {
		logger.Error("calendar totals failed", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "month": month, "totals": days})
}

func (h *IntakeController) Frequent(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	items, err := h.Svc.Frequent(c.Request.Context(), userID, limit)
	if err != nil {
		logger.Error("frequent items failed", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "items": items})
}

func (h *IntakeController) Update(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry id"})
		return
	}

	var input services.IntakeUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if input.Date != nil && !services.ValidDate(*input.Date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	entry, err := h.Svc.Update(c.Request.Context(), userID, uint(id), input)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		logger.Error("update intake failed", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	totals, err := h.Svc.TotalsByDate(c.Request.Context(), userID, entry.Date)
	if err == nil {
		h.Hub.BroadcastTotals(userID, entry.Date, totals)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "entry": entry, "totals": totals})
}

func (h *IntakeController) Delete(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry id"})
		return
	}

	date, err := h.Svc.Delete(c.Request.Context(), userID, uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		logger.Error("delete intake failed", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	totals, err := h.Svc.TotalsByDate(c.Request.Context(), userID, date)
	if err == nil {
		h.Hub.BroadcastTotals(userID, date, totals)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "date": date, "totals": totals})
}
