package handlers

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/vzahanych/weather-widget/internal/server/middlewares"
	"go.uber.org/zap"
)

// AppMetrics holds application-level metrics (searches, upstream services)
type AppMetrics struct {
	mutex                sync.RWMutex
	searches             map[string]int64
	weatherServiceCalls  map[string]int64
	weatherServiceErrors map[string]int64
}

// HTTPMetricsProvider exposes request metrics collected by the metrics middleware
type HTTPMetricsProvider interface {
	Snapshot() middlewares.HTTPSnapshot
}

type MetricsHandler struct {
	logger      *zap.Logger
	appMetrics  *AppMetrics
	httpMetrics HTTPMetricsProvider
}

func NewMetricsHandler(logger *zap.Logger, httpMetrics HTTPMetricsProvider) *MetricsHandler {
	return &MetricsHandler{
		logger:      logger,
		httpMetrics: httpMetrics,
		appMetrics: &AppMetrics{
			searches:             make(map[string]int64),
			weatherServiceCalls:  make(map[string]int64),
			weatherServiceErrors: make(map[string]int64),
		},
	}
}

// RecordSearch records the final outcome of a search
func (h *MetricsHandler) RecordSearch(ctx context.Context, outcome string) {
	h.appMetrics.mutex.Lock()
	h.appMetrics.searches[outcome]++
	h.appMetrics.mutex.Unlock()
}

// RecordWeatherServiceCall records a weather service API call
func (h *MetricsHandler) RecordWeatherServiceCall(ctx context.Context, service string, success bool) {
	h.appMetrics.mutex.Lock()
	h.appMetrics.weatherServiceCalls[service]++
	if !success {
		h.appMetrics.weatherServiceErrors[service]++
	}
	h.appMetrics.mutex.Unlock()
}

// ServeMetrics exposes metrics in Prometheus text format
func (h *MetricsHandler) ServeMetrics(c *gin.Context) {
	response := ""

	if h.httpMetrics != nil {
		snap := h.httpMetrics.Snapshot()

		response += "# HELP http_requests_total Total number of HTTP requests\n"
		response += "# TYPE http_requests_total counter\n"
		for _, key := range sortedKeys(snap.RequestsTotal) {
			response += "http_requests_total{route_status=\"" + key + "\"} " + strconv.FormatInt(snap.RequestsTotal[key], 10) + "\n"
		}

		response += "\n# HELP http_request_duration_seconds_avg Average duration of HTTP requests\n"
		response += "# TYPE http_request_duration_seconds_avg gauge\n"
		response += "http_request_duration_seconds_avg " + strconv.FormatFloat(snap.AvgDuration, 'f', 6, 64) + "\n"

		response += "\n# HELP http_active_requests Number of active HTTP requests\n"
		response += "# TYPE http_active_requests gauge\n"
		response += "http_active_requests " + strconv.FormatInt(snap.ActiveRequests, 10) + "\n"
	}

	h.appMetrics.mutex.RLock()
	defer h.appMetrics.mutex.RUnlock()

	response += "\n# HELP searches_total Total searches by outcome\n"
	response += "# TYPE searches_total counter\n"
	for _, outcome := range sortedKeys(h.appMetrics.searches) {
		response += "searches_total{outcome=\"" + outcome + "\"} " + strconv.FormatInt(h.appMetrics.searches[outcome], 10) + "\n"
	}

	response += "\n# HELP weather_service_calls_total Total weather service calls\n"
	response += "# TYPE weather_service_calls_total counter\n"
	for _, service := range sortedKeys(h.appMetrics.weatherServiceCalls) {
		response += "weather_service_calls_total{service=\"" + service + "\"} " + strconv.FormatInt(h.appMetrics.weatherServiceCalls[service], 10) + "\n"
	}

	response += "\n# HELP weather_service_errors_total Total weather service errors\n"
	response += "# TYPE weather_service_errors_total counter\n"
	for _, service := range sortedKeys(h.appMetrics.weatherServiceErrors) {
		response += "weather_service_errors_total{service=\"" + service + "\"} " + strconv.FormatInt(h.appMetrics.weatherServiceErrors[service], 10) + "\n"
	}

	c.Header("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	c.String(200, response)
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
