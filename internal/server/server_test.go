package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vzahanych/weather-widget/internal/config"
	"github.com/vzahanych/weather-widget/internal/server/handlers"
	"github.com/vzahanych/weather-widget/internal/server/middlewares"
	"github.com/vzahanych/weather-widget/internal/service"
	"github.com/vzahanych/weather-widget/internal/view"
	"go.uber.org/zap/zaptest"
)

const upstreamForecast = `{
	"current": {"temperature_2m": 30.4, "relative_humidity_2m": 70, "apparent_temperature": 33.1,
		"is_day": 1, "weather_code": 0, "wind_speed_10m": 9.4, "pressure_msl": 1009.6, "visibility": 12000},
	"daily": {
		"time": ["2026-10-19", "2026-10-20", "2026-10-21", "2026-10-22", "2026-10-23", "2026-10-24", "2026-10-25"],
		"weather_code": [0, 1, 2, 3, 61, 95, 0],
		"temperature_2m_max": [31, 32, 33, 30, 29, 28, 31],
		"temperature_2m_min": [24, 24, 25, 23, 22, 22, 24],
		"precipitation_sum": [0, 0, 0.4, 1.2, 8.5, 20.1, 0]
	}
}`

// newUpstream fakes both Open-Meteo APIs. Geocoding knows Hanoi only; "Broken" answers 500.
func newUpstream(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/geo/search", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("name") {
		case "Hanoi":
			w.Write([]byte(`{"results":[{"name":"Hanoi","country":"Vietnam","latitude":21.0,"longitude":105.8}]}`))
		case "Broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.Write([]byte(`{}`))
		}
	})
	mux.HandleFunc("/forecast/forecast", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(upstreamForecast))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestServer(t *testing.T) *Server {
	upstream := newUpstream(t)

	cfg := config.NewDefaultConfig()
	cfg.Weather.Geocoding.BaseURL = upstream.URL + "/geo"
	cfg.Weather.Forecast.BaseURL = upstream.URL + "/forecast"
	cfg.Weather.RateLimit = config.RateLimitConfig{}
	config.SetConfig(cfg)

	logger := zaptest.NewLogger(t)
	geocoder := service.NewGeocodingServiceWithConfig(cfg.Weather, nil, logger, nil)
	forecaster := service.NewOpenMeteoServiceWithConfig(cfg.Weather, nil, logger, nil)

	return NewServer(geocoder, forecaster, logger, nil)
}

func get(t *testing.T, srv *Server, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) handlers.WeatherResponse {
	var resp handlers.WeatherResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestGetWeather(t *testing.T) {
	srv := newTestServer(t)

	rec := get(t, srv, "/weather?city=Hanoi")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middlewares.RequestIDHeader))

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Equal(t, "weather", raw["state"])
	assert.Equal(t, "Hanoi", raw["query"])

	resp := decode(t, rec)
	assert.Equal(t, "Hanoi, Vietnam", resp.Text(view.RegionLocation))
	assert.Equal(t, "30", resp.Text(view.RegionTemperature))
	assert.Equal(t, "12.0 km", resp.Text(view.RegionVisibility))
	require.Len(t, resp.Forecast, 5)
	assert.Equal(t, "20/10", resp.Forecast[0].ShortDate)
	assert.Equal(t, "24/10", resp.Forecast[4].ShortDate)
}

func TestGetWeatherCityNotFound(t *testing.T) {
	srv := newTestServer(t)

	rec := get(t, srv, "/weather?city="+url.QueryEscape("Atlantis"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"state":"error"`)

	resp := decode(t, rec)
	assert.Contains(t, resp.Text(view.RegionErrorMessage), "Atlantis")
}

func TestGetWeatherUpstreamFailure(t *testing.T) {
	srv := newTestServer(t)

	rec := get(t, srv, "/weather?city=Broken")
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	resp := decode(t, rec)
	assert.Equal(t, "Đã xảy ra lỗi. Vui lòng thử lại.", resp.Text(view.RegionErrorMessage))
}

func TestGetWeatherRejectsBlankCity(t *testing.T) {
	srv := newTestServer(t)

	for _, target := range []string{"/weather", "/weather?city=", "/weather?city=%20%20"} {
		rec := get(t, srv, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Contains(t, rec.Body.String(), "INVALID_PARAMS", target)
	}
}

func TestPage(t *testing.T) {
	srv := newTestServer(t)

	rec := get(t, srv, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="emptyState"`)
	assert.NotContains(t, rec.Body.String(), `id="currentWeatherSection"`)

	rec = get(t, srv, "/?city=Hanoi")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Hanoi, Vietnam")
	assert.Contains(t, body, `id="forecastContainer"`)
	assert.NotContains(t, body, `id="emptyState"`)

	rec = get(t, srv, "/?city=Atlantis")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="retryBtn"`)
	assert.Contains(t, rec.Body.String(), "Atlantis")
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/health", "/health/live", "/health/ready"} {
		rec := get(t, srv, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := get(t, srv, "/health")
	assert.Contains(t, rec.Body.String(), `"version":"1.0.0"`)
}

func TestMetricsCountSearches(t *testing.T) {
	srv := newTestServer(t)

	get(t, srv, "/weather?city=Hanoi")
	get(t, srv, "/weather?city=Atlantis")
	get(t, srv, "/weather?city=Broken")

	rec := get(t, srv, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `searches_total{outcome="weather"} 1`)
	assert.Contains(t, body, `searches_total{outcome="city_not_found"} 1`)
	assert.Contains(t, body, `searches_total{outcome="error"} 1`)
	assert.Contains(t, body, `weather_service_calls_total{service="geocoding"} 3`)
	assert.Contains(t, body, `weather_service_errors_total{service="geocoding"} 1`)
	assert.Contains(t, body, `weather_service_calls_total{service="open-meteo"} 1`)
	assert.Contains(t, body, `http_requests_total{route_status="GET /weather_200"} 1`)
}

func TestRequestIDIsPropagated(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middlewares.RequestIDHeader, "9b2f4a3e-4a1d-4a55-9c39-2f7b0d0b6c11")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "9b2f4a3e-4a1d-4a55-9c39-2f7b0d0b6c11", rec.Header().Get(middlewares.RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middlewares.RequestIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(middlewares.RequestIDHeader))
}
