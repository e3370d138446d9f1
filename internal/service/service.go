package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vzahanych/weather-widget/internal/config"
	"golang.org/x/time/rate"
)

var (
	// ErrCityNotFound means geocoding returned no results.
	ErrCityNotFound = errors.New("city not found")
	// ErrServiceUnavailable means an upstream answered with a non-success status.
	ErrServiceUnavailable = errors.New("service unavailable")
	// ErrNetwork means the request never produced a response.
	ErrNetwork = errors.New("network error")
)

type Geocoder interface {
	Resolve(ctx context.Context, cityName string) (*Location, error)
	Name() string
}

type ForecastFetcher interface {
	Fetch(ctx context.Context, lat, lon float64) (*Forecast, error)
	Name() string
}

// NewLimiter returns the outbound limiter shared by the Open-Meteo clients,
// or nil when rate limiting is disabled.
func NewLimiter(cfg config.RateLimitConfig) *rate.Limiter {
	if cfg.RPS <= 0 {
		return nil
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(cfg.RPS), burst)
}

func newHTTPClient(timeoutSeconds int) *http.Client {
	return &http.Client{
		Timeout: time.Duration(timeoutSeconds) * time.Second,
	}
}

// getJSON issues a single GET and decodes a 2xx body into out. Transport failures wrap
// ErrNetwork, non-2xx statuses wrap ErrServiceUnavailable, anything else is returned as is.
func getJSON(ctx context.Context, client *http.Client, limiter *rate.Limiter, rawURL string, out interface{}) error {
	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: rate limit wait canceled: %w", ErrNetwork, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: API request failed with status: %d", ErrServiceUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
