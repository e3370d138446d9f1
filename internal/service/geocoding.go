package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/vzahanych/weather-widget/internal/config"
	"github.com/vzahanych/weather-widget/internal/validation"
	"github.com/vzahanych/weather-widget/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Location is the first geocoding match for a searched city.
type Location struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

// DisplayName formats the location as "name, country".
func (l Location) DisplayName() string {
	return fmt.Sprintf("%s, %s", l.Name, l.Country)
}

type geocodingResponse struct {
	Results []Location `json:"results"`
}

type GeocodingService struct {
	baseURL  string
	language string
	client   *http.Client
	limiter  *rate.Limiter
	logger   *zap.Logger
	tele     *telemetry.Telemetry
}

func NewGeocodingServiceWithConfig(cfg config.WeatherConfig, limiter *rate.Limiter, logger *zap.Logger, tele *telemetry.Telemetry) *GeocodingService {
	return &GeocodingService{
		baseURL:  cfg.Geocoding.BaseURL,
		language: cfg.Geocoding.Language,
		client:   newHTTPClient(cfg.Timeout),
		limiter:  limiter,
		logger:   logger,
		tele:     tele,
	}
}

func (s *GeocodingService) Name() string {
	return "geocoding"
}

// Resolve looks up cityName and returns the first match.
func (s *GeocodingService) Resolve(ctx context.Context, cityName string) (*Location, error) {
	tracer := s.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "geocoding.Resolve")
	defer span.End()

	span.SetAttributes(attribute.String("city", cityName))

	u, err := url.Parse(fmt.Sprintf("%s/search", s.baseURL))
	if err != nil {
		return nil, err
	}

	q := u.Query()
	q.Set("name", cityName)
	q.Set("count", "1")
	q.Set("language", s.language)
	q.Set("format", "json")
	u.RawQuery = q.Encode()

	s.logger.Debug("Resolving city", zap.String("city", cityName))

	var result geocodingResponse
	if err := getJSON(ctx, s.client, s.limiter, u.String(), &result); err != nil {
		span.SetAttributes(
			attribute.Bool("success", false),
			attribute.String("error", err.Error()),
		)
		s.logger.Warn("Geocoding request failed", zap.String("city", cityName), zap.Error(err))
		return nil, err
	}

	if len(result.Results) == 0 {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, fmt.Errorf("%w: %q", ErrCityNotFound, cityName)
	}

	loc := result.Results[0]
	if errs := validation.ValidateStruct(loc); errs != nil {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, errors.New("geocoding returned invalid coordinates: " + errs[0].Message)
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Float64("lat", loc.Latitude),
		attribute.Float64("lon", loc.Longitude),
	)

	s.logger.Info("City resolved",
		zap.String("city", cityName),
		zap.String("name", loc.Name),
		zap.String("country", loc.Country),
		zap.Float64("lat", loc.Latitude),
		zap.Float64("lon", loc.Longitude))

	return &loc, nil
}
