package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elev8ted-roofs/estimator-api/internal/business/estimator"
	"github.com/elev8ted-roofs/estimator-api/internal/business/roof"
	"github.com/elev8ted-roofs/estimator-api/internal/platform/ai"
	"github.com/elev8ted-roofs/estimator-api/internal/platform/config"
	firestoreclient "github.com/elev8ted-roofs/estimator-api/internal/platform/firestore"
	"github.com/elev8ted-roofs/estimator-api/internal/platform/googlemaps"
	apirouter "github.com/elev8ted-roofs/estimator-api/internal/platform/http"
	"github.com/elev8ted-roofs/estimator-api/internal/platform/logging"
	"github.com/elev8ted-roofs/estimator-api/internal/platform/metrics"
	"github.com/elev8ted-roofs/estimator-api/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load(".env.local", ".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	gin.SetMode(cfg.GinMode)

	collector, err := metrics.NewCollector(prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatal("metrics init", zap.Error(err))
	}

	var store estimator.EstimateStore
	fsClient, credsSource, err := firestoreclient.New(ctx, cfg)
	switch {
	case errors.Is(err, firestoreclient.ErrDisabled):
		logger.Info("estimate history disabled")
	case err != nil:
		logger.Fatal("firestore init", zap.Error(err))
	default:
		defer fsClient.Close()
		if err := firestoreclient.Ping(ctx, fsClient); err != nil {
			logger.Fatal("firestore ping", zap.Error(err))
		}
		logger.Info("connected to Firestore",
			zap.String("project", cfg.FirebaseProjectID),
			zap.String("credentials", credsSource))
		store = repository.NewEstimateRepository(fsClient)
	}

	mapsKey := ""
	if cfg.HasGoogleMapsKey() {
		mapsKey = cfg.GoogleMapsAPIKey
	}
	maps := googlemaps.New(nil, collector, googlemaps.Config{
		APIKey:       mapsKey,
		GeocodingKey: cfg.GeocodingKey(),
	})

	openAIKey := ""
	if cfg.HasOpenAIKey() {
		openAIKey = cfg.OpenAIAPIKey
	}
	aiClient, err := ai.New(ai.Config{
		APIKey:  openAIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
	}, nil, collector)
	if err != nil {
		logger.Fatal("ai client init", zap.Error(err))
	}
	if !aiClient.Configured() {
		logger.Warn("OPENAI_API_KEY not set, AI features disabled")
	}
	if !maps.Configured() {
		logger.Warn("GOOGLE_MAPS_API_KEY not set, geocoding returns mock results")
	}

	svc := estimator.NewService(roof.NewCalculator(cfg.Pricing), store, collector, logger)

	router := apirouter.NewRouter(apirouter.Deps{
		Estimator:       svc,
		Maps:            maps,
		AI:              aiClient,
		Metrics:         collector,
		Logger:          logger,
		Info:            apirouter.AppInfo{Name: cfg.AppName, Version: cfg.AppVersion},
		AllowedOrigins:  cfg.CORSOriginList(),
		AIRatePerMinute: cfg.AIRatePerMinute,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()
	logger.Info("server listening", zap.String("port", cfg.Port), zap.String("app", cfg.AppName))

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("server exited")
}
