package http

import (
	"context"
	"net/http"

	"github.com/elev8ted-roofs/estimator-api/internal/business/estimator"
	"github.com/elev8ted-roofs/estimator-api/internal/platform/ai"
	"github.com/elev8ted-roofs/estimator-api/internal/platform/googlemaps"
	"github.com/elev8ted-roofs/estimator-api/internal/platform/metrics"
	"github.com/elev8ted-roofs/estimator-api/pkg/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MapsClient is the geocoding, autocomplete, and imagery provider.
type MapsClient interface {
	Configured() bool
	Geocode(ctx context.Context, address string) (model.GeocodeResult, error)
	Suggest(ctx context.Context, input, types string) model.AutocompleteResult
	SatelliteImage(ctx context.Context, req googlemaps.SatelliteRequest) model.SatelliteImage
}

// AIClient is the model provider for detection and analysis.
type AIClient interface {
	Configured() bool
	Status() model.AIStatus
	DetectRoof(ctx context.Context, req ai.DetectionRequest) model.RoofDetection
	AnalyzeRoof(ctx context.Context, req ai.AnalysisRequest) model.RoofAnalysis
	DetectDamage(ctx context.Context, req ai.DamageRequest) model.DamageAssessment
}

// AppInfo identifies the running service.
type AppInfo struct {
	Name    string
	Version string
}

// Deps holds everything the router needs.
type Deps struct {
	Estimator       *estimator.Service
	Maps            MapsClient
	AI              AIClient
	Metrics         *metrics.Collector
	Logger          *zap.Logger
	Info            AppInfo
	AllowedOrigins  []string
	AIRatePerMinute int
}

// Router wires HTTP handlers.
type Router struct {
	estimator *estimator.Service
	maps      MapsClient
	ai        AIClient
	metrics   *metrics.Collector
	logger    *zap.Logger
	info      AppInfo
	origins   []string
}

func NewRouter(deps Deps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Router{
		estimator: deps.Estimator,
		maps:      deps.Maps,
		ai:        deps.AI,
		metrics:   deps.Metrics,
		logger:    logger,
		info:      deps.Info,
		origins:   deps.AllowedOrigins,
	}

	router := gin.New()
	router.Use(gin.Recovery(), r.requestLogger(), r.metricsMiddleware(), r.corsMiddleware())

	router.GET("/", r.root)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(r.metrics.Handler()))

	api := router.Group("/api")
	{
		api.GET("/health", r.health)
		api.GET("/config", r.publicConfig)
	}

	v1 := api.Group("/v1")
	{
		v1.POST("/address/geocode", r.geocode)
		v1.GET("/address/suggestions", r.suggestions)

		v1.POST("/satellite/image", r.satelliteImage)

		v1.POST("/measurement/calculate", r.calculateMeasurement)
		v1.POST("/measurement/estimate-cost", r.estimateCost)
		v1.POST("/measurement/quote", r.quote)
		v1.GET("/measurement/pricing-defaults", r.pricingDefaults)

		v1.GET("/estimates", r.listEstimates)
		v1.GET("/estimates/stats", r.getEstimateStats)
		v1.POST("/estimates/stats/refresh", r.refreshEstimateStats)
		v1.GET("/estimates/:id", r.getEstimate)

		v1.GET("/ai/status", r.aiStatus)
	}

	limited := v1.Group("", rateLimit(deps.AIRatePerMinute))
	{
		limited.POST("/roof-detection/detect", r.detectRoof)
		limited.POST("/ai/analyze", r.analyzeRoof)
		limited.POST("/ai/detect-damage", r.detectDamage)
	}

	return router
}

func (r *Router) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"app":     r.info.Name,
		"version": r.info.Version,
		"status":  "operational",
		"api_configured": gin.H{
			"google_maps": r.maps.Configured(),
			"openai":      r.ai.Configured(),
		},
	})
}

func (r *Router) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"app":     r.info.Name,
		"version": r.info.Version,
	})
}

func (r *Router) publicConfig(c *gin.Context) {
	pricing := r.estimator.PricingDefaults()
	c.JSON(http.StatusOK, gin.H{
		"app_name": r.info.Name,
		"version":  r.info.Version,
		"features": gin.H{
			"google_maps":      r.maps.Configured(),
			"ai_analysis":      r.ai.Configured(),
			"cost_estimation":  true,
			"estimate_history": r.estimator.HistoryEnabled(),
		},
		"pricing": gin.H{
			"material_cost_per_sqft": pricing.MaterialCostPerSqft,
			"labor_cost_per_sqft":    pricing.LaborCostPerSqft,
		},
	})
}
