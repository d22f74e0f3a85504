package http

import (
	"errors"
	"net/http"

	"github.com/elev8ted-roofs/estimator-api/internal/business/estimator"
	"github.com/elev8ted-roofs/estimator-api/internal/business/roof"
	"github.com/elev8ted-roofs/estimator-api/pkg/model"
	"github.com/gin-gonic/gin"
)

type measurementRequest struct {
	Points       []model.Point `json:"points" binding:"required"`
	ScaleFactor  float64       `json:"scale_factor"`
	BuildingType string        `json:"building_type" binding:"omitempty,oneof=residential commercial"`
}

type costEstimateRequest struct {
	Address             string        `json:"address"`
	Points              []model.Point `json:"points"`
	AreaSqFt            float64       `json:"area_sq_ft"`
	PitchDegrees        float64       `json:"pitch_degrees"`
	HasDamage           bool          `json:"has_damage"`
	MaterialCostPerSqft *float64      `json:"material_cost_per_sqft"`
	LaborCostPerSqft    *float64      `json:"labor_cost_per_sqft"`
}

type quoteRequest struct {
	Address             string        `json:"address"`
	Points              []model.Point `json:"points" binding:"required"`
	ScaleFactor         float64       `json:"scale_factor"`
	BuildingType        string        `json:"building_type" binding:"omitempty,oneof=residential commercial"`
	PitchDegrees        *float64      `json:"pitch_degrees"`
	HasDamage           bool          `json:"has_damage"`
	MaterialCostPerSqft *float64      `json:"material_cost_per_sqft"`
	LaborCostPerSqft    *float64      `json:"labor_cost_per_sqft"`
}

func (r *Router) calculateMeasurement(c *gin.Context) {
	var req measurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, r.estimator.Measure(estimator.MeasureRequest{
		Points:       req.Points,
		ScaleFactor:  req.ScaleFactor,
		BuildingType: req.BuildingType,
	}))
}

func (r *Router) estimateCost(c *gin.Context) {
	var req costEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	est, err := r.estimator.Estimate(c.Request.Context(), estimator.EstimateRequest{
		Address: req.Address,
		Points:  req.Points,
		Input: roof.EstimateInput{
			AreaSqFt:            req.AreaSqFt,
			PitchDegrees:        req.PitchDegrees,
			HasDamage:           req.HasDamage,
			MaterialCostPerSqft: req.MaterialCostPerSqft,
			LaborCostPerSqft:    req.LaborCostPerSqft,
		},
	})
	if err != nil {
		writeEstimateError(c, err)
		return
	}
	c.JSON(http.StatusOK, est)
}

func (r *Router) quote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	q, err := r.estimator.Quote(c.Request.Context(), estimator.QuoteRequest{
		Address:             req.Address,
		Points:              req.Points,
		ScaleFactor:         req.ScaleFactor,
		BuildingType:        req.BuildingType,
		PitchDegrees:        req.PitchDegrees,
		HasDamage:           req.HasDamage,
		MaterialCostPerSqft: req.MaterialCostPerSqft,
		LaborCostPerSqft:    req.LaborCostPerSqft,
	})
	if err != nil {
		writeEstimateError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func (r *Router) pricingDefaults(c *gin.Context) {
	c.JSON(http.StatusOK, r.estimator.PricingDefaults())
}

func writeEstimateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, roof.ErrInvalidArea), errors.Is(err, roof.ErrInvalidPrice):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute estimate"})
	}
}
