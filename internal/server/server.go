package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vzahanych/weather-widget/internal/config"
	"github.com/vzahanych/weather-widget/internal/server/handlers"
	"github.com/vzahanych/weather-widget/internal/server/middlewares"
	"github.com/vzahanych/weather-widget/internal/service"
	"github.com/vzahanych/weather-widget/pkg/telemetry"
	"go.uber.org/zap"
)

type Server struct {
	engine     *gin.Engine
	server     *http.Server
	geocoder   service.Geocoder
	forecaster service.ForecastFetcher
	metrics    *middlewares.MetricsMiddleware
	logger     *zap.Logger
	tele       *telemetry.Telemetry
}

// NewServer wires the widget endpoints against the current config.
func NewServer(geocoder service.Geocoder, forecaster service.ForecastFetcher, logger *zap.Logger, tele *telemetry.Telemetry) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	metrics := middlewares.NewMetricsMiddleware(logger, tele)

	engine.Use(middlewares.RequestIDMiddleware(logger))
	engine.Use(middlewares.LoggingMiddleware(logger, time.RFC3339, true))
	engine.Use(middlewares.RecoveryMiddleware(logger, true))
	engine.Use(middlewares.TelemetryMiddleware(logger, tele))
	engine.Use(metrics.Handler())

	engine.SetHTMLTemplate(handlers.PageTemplate)

	s := &Server{
		engine:     engine,
		geocoder:   geocoder,
		forecaster: forecaster,
		metrics:    metrics,
		logger:     logger,
		tele:       tele,
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	cfg := config.GetConfig()

	metricsHandler := handlers.NewMetricsHandler(s.logger, s.metrics)
	weatherHandler := handlers.NewWeatherHandler(s.geocoder, s.forecaster, metricsHandler, s.logger, s.tele)
	healthHandler := handlers.NewHealthHandler(s.logger, cfg.Version)

	// Widget endpoints
	s.engine.GET("/", weatherHandler.Page)
	s.engine.GET("/weather", weatherHandler.GetWeather)

	// Health endpoints (Kubernetes friendly)
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/health/live", healthHandler.Liveness)
	s.engine.GET("/health/ready", healthHandler.Readiness)

	// Monitoring endpoints
	s.engine.GET("/metrics", metricsHandler.ServeMetrics)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Start() error {
	cfg := config.GetConfig()

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.engine,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	s.logger.Info("Starting server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}
