package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vzahanych/weather-widget/internal/config"
	"github.com/vzahanych/weather-widget/pkg/telemetry"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	currentFields = "temperature_2m,relative_humidity_2m,apparent_temperature,is_day,weather_code,wind_speed_10m,pressure_msl,visibility"
	dailyFields   = "weather_code,temperature_2m_max,temperature_2m_min,precipitation_sum"
)

// Forecast is the Open-Meteo payload: instantaneous conditions plus a daily series.
type Forecast struct {
	Timezone string            `json:"timezone"`
	Current  CurrentConditions `json:"current"`
	Daily    DailySeries       `json:"daily"`
}

type CurrentConditions struct {
	Time                string  `json:"time"`
	Temperature         float64 `json:"temperature_2m"`
	RelativeHumidity    float64 `json:"relative_humidity_2m"`
	ApparentTemperature float64 `json:"apparent_temperature"`
	IsDay               int     `json:"is_day"`
	WeatherCode         int     `json:"weather_code"`
	WindSpeed           float64 `json:"wind_speed_10m"`
	Pressure            float64 `json:"pressure_msl"`
	Visibility          float64 `json:"visibility"`
}

func (c CurrentConditions) Daytime() bool {
	return c.IsDay == 1
}

// DailySeries holds parallel arrays indexed by day offset, 0 being today.
// Open-Meteo may emit nulls, so numeric values are pointers.
type DailySeries struct {
	Time             []string   `json:"time"`
	WeatherCode      []*int     `json:"weather_code"`
	TemperatureMax   []*float64 `json:"temperature_2m_max"`
	TemperatureMin   []*float64 `json:"temperature_2m_min"`
	PrecipitationSum []*float64 `json:"precipitation_sum"`
}

// DailyForecastEntry is one day of the series. Nil fields were missing or null upstream.
type DailyForecastEntry struct {
	Date             string
	WeatherCode      *int
	TemperatureMax   *float64
	TemperatureMin   *float64
	PrecipitationSum *float64
}

func (d DailySeries) Len() int {
	return len(d.Time)
}

// Entry returns the entry at day offset i and whether a time entry exists for it.
// Shorter companion arrays yield nil fields rather than a panic.
func (d DailySeries) Entry(i int) (DailyForecastEntry, bool) {
	if i < 0 || i >= len(d.Time) || d.Time[i] == "" {
		return DailyForecastEntry{}, false
	}

	return DailyForecastEntry{
		Date:             d.Time[i],
		WeatherCode:      at(d.WeatherCode, i),
		TemperatureMax:   at(d.TemperatureMax, i),
		TemperatureMin:   at(d.TemperatureMin, i),
		PrecipitationSum: at(d.PrecipitationSum, i),
	}, true
}

func at[T any](values []*T, i int) *T {
	if i < len(values) {
		return values[i]
	}
	return nil
}

type OpenMeteoService struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
	tele    *telemetry.Telemetry
}

func NewOpenMeteoServiceWithConfig(cfg config.WeatherConfig, limiter *rate.Limiter, logger *zap.Logger, tele *telemetry.Telemetry) *OpenMeteoService {
	return &OpenMeteoService{
		baseURL: cfg.Forecast.BaseURL,
		client:  newHTTPClient(cfg.Timeout),
		limiter: limiter,
		logger:  logger,
		tele:    tele,
	}
}

func (s *OpenMeteoService) Name() string {
	return "open-meteo"
}

// Fetch retrieves current conditions and the daily forecast for a coordinate pair.
func (s *OpenMeteoService) Fetch(ctx context.Context, lat, lon float64) (*Forecast, error) {
	tracer := s.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "open-meteo.Fetch")
	defer span.End()

	span.SetAttributes(
		attribute.Float64("lat", lat),
		attribute.Float64("lon", lon),
		attribute.String("service", s.Name()),
	)

	u, err := url.Parse(fmt.Sprintf("%s/forecast", s.baseURL))
	if err != nil {
		return nil, err
	}

	q := u.Query()
	q.Set("latitude", fmt.Sprintf("%.6f", lat))
	q.Set("longitude", fmt.Sprintf("%.6f", lon))
	q.Set("current", currentFields)
	q.Set("daily", dailyFields)
	q.Set("timezone", "auto")
	u.RawQuery = q.Encode()

	s.logger.Debug("Fetching forecast from Open-Meteo",
		zap.Float64("lat", lat),
		zap.Float64("lon", lon))

	var forecast Forecast
	if err := getJSON(ctx, s.client, s.limiter, u.String(), &forecast); err != nil {
		span.SetAttributes(
			attribute.Bool("success", false),
			attribute.String("error", err.Error()),
		)
		s.logger.Warn("Forecast request failed",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.Error(err))
		return nil, err
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("days_fetched", forecast.Daily.Len()),
	)

	s.logger.Info("Open-Meteo forecast completed",
		zap.Int("days_fetched", forecast.Daily.Len()),
		zap.Float64("lat", lat),
		zap.Float64("lon", lon))

	return &forecast, nil
}
