package http

import (
	"net/http"

	"github.com/elev8ted-roofs/estimator-api/internal/platform/ai"
	"github.com/gin-gonic/gin"
)

type detectRequest struct {
	ImageBase64 string  `json:"image_base64" binding:"required"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	ImageWidth  int     `json:"image_width" binding:"omitempty,min=1"`
	ImageHeight int     `json:"image_height" binding:"omitempty,min=1"`
}

type analyzeRequest struct {
	Address      string  `json:"address" binding:"required"`
	AreaSqFt     float64 `json:"area_sq_ft" binding:"gt=0"`
	PitchDegrees float64 `json:"pitch_degrees"`
	UserNotes    string  `json:"user_notes"`
}

type damageRequest struct {
	ImageDescription string  `json:"image_description" binding:"required"`
	AreaSqFt         float64 `json:"area_sq_ft"`
}

func (r *Router) detectRoof(c *gin.Context) {
	var req detectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ImageWidth == 0 {
		req.ImageWidth = 800
	}
	if req.ImageHeight == 0 {
		req.ImageHeight = 600
	}
	c.JSON(http.StatusOK, r.ai.DetectRoof(c.Request.Context(), ai.DetectionRequest{
		ImageBase64: req.ImageBase64,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		ImageWidth:  req.ImageWidth,
		ImageHeight: req.ImageHeight,
	}))
}

func (r *Router) analyzeRoof(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, r.ai.AnalyzeRoof(c.Request.Context(), ai.AnalysisRequest{
		Address:      req.Address,
		AreaSqFt:     req.AreaSqFt,
		PitchDegrees: req.PitchDegrees,
		UserNotes:    req.UserNotes,
	}))
}

func (r *Router) detectDamage(c *gin.Context) {
	var req damageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, r.ai.DetectDamage(c.Request.Context(), ai.DamageRequest{
		Description: req.ImageDescription,
		AreaSqFt:    req.AreaSqFt,
	}))
}

func (r *Router) aiStatus(c *gin.Context) {
	c.JSON(http.StatusOK, r.ai.Status())
}
