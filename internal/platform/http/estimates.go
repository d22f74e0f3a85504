package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/elev8ted-roofs/estimator-api/internal/business/estimator"
	"github.com/elev8ted-roofs/estimator-api/internal/repository"
	"github.com/gin-gonic/gin"
)

func (r *Router) listEstimates(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	items, err := r.estimator.History(c.Request.Context(), limit)
	if err != nil {
		writeHistoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func (r *Router) getEstimate(c *gin.Context) {
	rec, err := r.estimator.Record(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeHistoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (r *Router) getEstimateStats(c *gin.Context) {
	stats, err := r.estimator.Stats(c.Request.Context())
	if err != nil {
		writeHistoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (r *Router) refreshEstimateStats(c *gin.Context) {
	stats, err := r.estimator.RefreshStats(c.Request.Context())
	if err != nil {
		writeHistoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func writeHistoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, estimator.ErrHistoryDisabled), errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load estimate history"})
	}
}
