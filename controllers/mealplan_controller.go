package controllers

import (
	"errors"
	"net/http"

	"backend/logger"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type MealPlanController struct {
	Svc *services.MealPlanService
}

func NewMealPlanController(svc *services.MealPlanService) *MealPlanController {
	return &MealPlanController{Svc: svc}
}

// PlanMeal generates recipe suggestions that fit the user's targets, diet type
// and allergies, with optional per-request overrides.
func (h *MealPlanController) PlanMeal(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var overrides services.MealPlanOverrides
	_ = c.ShouldBindJSON(&overrides)

	recipes, result, err := h.Svc.Plan(c.Request.Context(), userID, overrides)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		logger.Error("meal planning failed", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Meal planning service unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"recipes": recipes,
		"metadata": gin.H{
			"model": result.Model,
			"usage": result.Usage,
		},
	})
}

type analyzeRecipeInput struct {
	URL string `json:"url" binding:"required"`
}

// AnalyzeRecipe returns a free-text analysis of a recipe URL against the
// user's profile.
func (h *MealPlanController) AnalyzeRecipe(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input analyzeRecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	analysis, result, err := h.Svc.AnalyzeRecipe(c.Request.Context(), userID, input.URL)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		logger.Error("recipe analysis failed", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Recipe analysis service unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"analysis": analysis,
		"model":    result.Model,
	})
}
