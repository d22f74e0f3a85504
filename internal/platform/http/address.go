package http

import (
	"errors"
	"net/http"

	"github.com/elev8ted-roofs/estimator-api/internal/platform/googlemaps"
	"github.com/gin-gonic/gin"
)

type geocodeRequest struct {
	Address string `json:"address" binding:"required"`
}

type satelliteRequest struct {
	Latitude  float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude float64 `json:"longitude" binding:"min=-180,max=180"`
	Zoom      int     `json:"zoom" binding:"omitempty,min=1,max=21"`
	Width     int     `json:"width" binding:"omitempty,min=1,max=2048"`
	Height    int     `json:"height" binding:"omitempty,min=1,max=2048"`
}

func (r *Router) geocode(c *gin.Context) {
	var req geocodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := r.maps.Geocode(c.Request.Context(), req.Address)
	if errors.Is(err, googlemaps.ErrAddressNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "geocoding failed"})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (r *Router) suggestions(c *gin.Context) {
	input := c.Query("input")
	types := c.DefaultQuery("types", "address")
	c.JSON(http.StatusOK, r.maps.Suggest(c.Request.Context(), input, types))
}

func (r *Router) satelliteImage(c *gin.Context) {
	var req satelliteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, r.maps.SatelliteImage(c.Request.Context(), googlemaps.SatelliteRequest{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Zoom:      req.Zoom,
		Width:     req.Width,
		Height:    req.Height,
	}))
}
