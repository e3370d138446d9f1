package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vzahanych/weather-widget/internal/render"
	"github.com/vzahanych/weather-widget/internal/search"
	"github.com/vzahanych/weather-widget/internal/server/utils"
	"github.com/vzahanych/weather-widget/internal/service"
	"github.com/vzahanych/weather-widget/internal/validation"
	"github.com/vzahanych/weather-widget/internal/view"
	"github.com/vzahanych/weather-widget/pkg/telemetry"
	"go.uber.org/zap"
)

type WeatherHandler struct {
	geocoder   service.Geocoder
	forecaster service.ForecastFetcher
	metrics    search.MetricsRecorder
	logger     *zap.Logger
	tele       *telemetry.Telemetry
	now        func() time.Time
}

func NewWeatherHandler(geocoder service.Geocoder, forecaster service.ForecastFetcher, metrics search.MetricsRecorder, logger *zap.Logger, tele *telemetry.Telemetry) *WeatherHandler {
	return &WeatherHandler{
		geocoder:   geocoder,
		forecaster: forecaster,
		metrics:    metrics,
		logger:     logger,
		tele:       tele,
		now:        time.Now,
	}
}

// GetWeather runs a search for ?city= and returns the rendered widget as JSON.
func (h *WeatherHandler) GetWeather(c *gin.Context) {
	ctx := utils.GetContextFromGinContext(c)
	requestID := utils.GetRequestIDFromGinContext(c)

	// Create logger with request ID for this request
	reqLogger := h.logger.With(zap.String("request_id", requestID))

	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		reqLogger.Warn("Invalid request parameters", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request parameters",
			Code:    "INVALID_PARAMS",
			Details: err.Error(),
		})
		return
	}

	if errs := validation.ValidateStruct(req); errs != nil {
		reqLogger.Warn("Invalid search query", zap.String("city", req.City))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request parameters",
			Code:    "INVALID_PARAMS",
			Details: errs[0].Message,
		})
		return
	}

	snapshot, err := h.search(ctx, reqLogger, req.City)
	status := statusFor(err)

	reqLogger.Info("Weather request completed",
		zap.String("city", req.City),
		zap.Stringer("state", snapshot.State),
		zap.Int("status", status))

	c.JSON(status, WeatherResponse{Query: req.City, Snapshot: snapshot})
}

// Page renders the widget as HTML. Without ?city= it shows the empty state.
func (h *WeatherHandler) Page(c *gin.Context) {
	ctx := utils.GetContextFromGinContext(c)
	reqLogger := h.logger.With(zap.String("request_id", utils.GetRequestIDFromGinContext(c)))

	city := c.Query("city")
	if strings.TrimSpace(city) == "" || validation.ValidateStruct(SearchRequest{City: city}) != nil {
		c.HTML(http.StatusOK, pageTemplateName, WeatherResponse{Snapshot: view.NewMemoryView().Snapshot()})
		return
	}

	snapshot, err := h.search(ctx, reqLogger, city)
	c.HTML(statusFor(err), pageTemplateName, WeatherResponse{Query: city, Snapshot: snapshot})
}

// search runs one search against a fresh view so concurrent requests never share state.
func (h *WeatherHandler) search(ctx context.Context, logger *zap.Logger, city string) (view.Snapshot, error) {
	v := view.NewMemoryView()
	v.SetInput(city)

	orch := search.NewOrchestrator(v, render.NewRenderer(v, h.now), h.geocoder, h.forecaster, logger, h.tele)
	if h.metrics != nil {
		orch.SetMetricsRecorder(h.metrics)
	}

	err := orch.Submit(ctx, city)
	return v.Snapshot(), err
}

func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, service.ErrCityNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrServiceUnavailable), errors.Is(err, service.ErrNetwork):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
