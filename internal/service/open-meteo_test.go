package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vzahanych/weather-widget/internal/config"
	"go.uber.org/zap/zaptest"
)

const forecastBody = `{
	"latitude": 21.0,
	"longitude": 105.8,
	"timezone": "Asia/Bangkok",
	"current": {
		"time": "2026-10-19T14:00",
		"temperature_2m": 30.4,
		"relative_humidity_2m": 70,
		"apparent_temperature": 33.6,
		"is_day": 1,
		"weather_code": 2,
		"wind_speed_10m": 11.6,
		"pressure_msl": 1012.7,
		"visibility": 12000
	},
	"daily": {
		"time": ["2026-10-19", "2026-10-20", "2026-10-21"],
		"weather_code": [2, 61, 95],
		"temperature_2m_max": [31.2, 30.6, 29.5],
		"temperature_2m_min": [24.1, 23.8, null],
		"precipitation_sum": [0, 3.2]
	}
}`

func newTestForecaster(t *testing.T, baseURL string) *OpenMeteoService {
	cfg := config.NewDefaultConfig().Weather
	cfg.Forecast.BaseURL = baseURL
	return NewOpenMeteoServiceWithConfig(cfg, nil, zaptest.NewLogger(t), nil)
}

func TestOpenMeteoFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/v1/forecast", r.URL.Path)
		assert.Equal(t, "21.000000", q.Get("latitude"))
		assert.Equal(t, "105.800000", q.Get("longitude"))
		assert.Equal(t, currentFields, q.Get("current"))
		assert.Equal(t, dailyFields, q.Get("daily"))
		assert.Equal(t, "auto", q.Get("timezone"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(forecastBody))
	}))
	defer srv.Close()

	fc, err := newTestForecaster(t, srv.URL+"/v1").Fetch(context.Background(), 21.0, 105.8)
	require.NoError(t, err)

	assert.Equal(t, "Asia/Bangkok", fc.Timezone)
	assert.Equal(t, 30.4, fc.Current.Temperature)
	assert.Equal(t, 33.6, fc.Current.ApparentTemperature)
	assert.Equal(t, 70.0, fc.Current.RelativeHumidity)
	assert.Equal(t, 2, fc.Current.WeatherCode)
	assert.Equal(t, 12000.0, fc.Current.Visibility)
	assert.True(t, fc.Current.Daytime())
	assert.Equal(t, 3, fc.Daily.Len())
}

func TestDailySeriesEntry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(forecastBody))
	}))
	defer srv.Close()

	fc, err := newTestForecaster(t, srv.URL).Fetch(context.Background(), 21.0, 105.8)
	require.NoError(t, err)

	day, ok := fc.Daily.Entry(1)
	require.True(t, ok)
	assert.Equal(t, "2026-10-20", day.Date)
	require.NotNil(t, day.WeatherCode)
	assert.Equal(t, 61, *day.WeatherCode)
	require.NotNil(t, day.PrecipitationSum)
	assert.Equal(t, 3.2, *day.PrecipitationSum)

	// null and short arrays come back as nil
	day, ok = fc.Daily.Entry(2)
	require.True(t, ok)
	assert.Nil(t, day.TemperatureMin)
	assert.Nil(t, day.PrecipitationSum)
	require.NotNil(t, day.TemperatureMax)
	assert.Equal(t, 29.5, *day.TemperatureMax)

	_, ok = fc.Daily.Entry(3)
	assert.False(t, ok)
	_, ok = fc.Daily.Entry(-1)
	assert.False(t, ok)
}

func TestOpenMeteoFetchServiceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":true,"reason":"overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestForecaster(t, srv.URL).Fetch(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrServiceUnavailable)
	assert.Contains(t, err.Error(), "503")
}

func TestOpenMeteoFetchNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	_, err := newTestForecaster(t, baseURL).Fetch(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestOpenMeteoFetchMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"current": "nope"}`))
	}))
	defer srv.Close()

	_, err := newTestForecaster(t, srv.URL).Fetch(context.Background(), 1, 2)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrServiceUnavailable)
	assert.NotErrorIs(t, err, ErrNetwork)
}
