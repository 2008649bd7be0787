package controllers

import (
	"net/http"

	"backend/logger"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type VisionController struct {
	Svc *services.VisionService
}

func NewVisionController(svc *services.VisionService) *VisionController {
	return &VisionController{Svc: svc}
}

type analyzeImageInput struct {
	ImageBase64 string `json:"image_base64"`
	ImageURL    string `json:"image_url"`
}

// AnalyzeFoodImage runs the multimodal model over a meal photo and returns
// candidate foods with estimated macros.
func (h *VisionController) AnalyzeFoodImage(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input analyzeImageInput
	if err := c.ShouldBindJSON(&input); err != nil || (input.ImageBase64 == "" && input.ImageURL == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_base64 or image_url is required"})
		return
	}

	candidates, err := h.Svc.AnalyzeFoodImage(c.Request.Context(), input.ImageBase64, input.ImageURL)
	if err != nil {
		logger.Error("food image analysis failed", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Image analysis service unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "candidates": candidates})
}
