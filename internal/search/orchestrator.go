// Package search drives one city lookup: geocode, fetch the forecast, render.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/vzahanych/weather-widget/internal/render"
	"github.com/vzahanych/weather-widget/internal/service"
	"github.com/vzahanych/weather-widget/internal/view"
	"github.com/vzahanych/weather-widget/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	genericErrorMessage  = "Đã xảy ra lỗi. Vui lòng thử lại."
	notFoundErrorMessage = "Không tìm thấy thành phố \"%s\". Vui lòng kiểm tra lại chính tả."
)

var (
	// ErrEmptyQuery is returned for blank submissions; nothing is requested or shown.
	ErrEmptyQuery = errors.New("empty query")
	// ErrSuperseded is returned when a newer search started before this one finished.
	ErrSuperseded = errors.New("search superseded by a newer one")
)

// Search outcomes reported to the MetricsRecorder.
const (
	OutcomeWeather    = "weather"
	OutcomeNotFound   = "city_not_found"
	OutcomeError      = "error"
	OutcomeSuperseded = "superseded"
)

// MetricsRecorder interface for recording metrics
type MetricsRecorder interface {
	RecordSearch(ctx context.Context, outcome string)
	RecordWeatherServiceCall(ctx context.Context, service string, success bool)
}

type Orchestrator struct {
	view       view.View
	renderer   *render.Renderer
	geocoder   service.Geocoder
	forecaster service.ForecastFetcher
	logger     *zap.Logger
	tele       *telemetry.Telemetry
	metrics    MetricsRecorder

	// mu orders state transitions; latest is the sequence number of the newest search.
	mu     sync.Mutex
	latest uint64
	state  view.State
}

func NewOrchestrator(v view.View, renderer *render.Renderer, geocoder service.Geocoder, forecaster service.ForecastFetcher, logger *zap.Logger, tele *telemetry.Telemetry) *Orchestrator {
	return &Orchestrator{
		view:       v,
		renderer:   renderer,
		geocoder:   geocoder,
		forecaster: forecaster,
		logger:     logger,
		tele:       tele,
		state:      view.StateEmpty,
	}
}

// SetMetricsRecorder sets the metrics recorder for the orchestrator
func (o *Orchestrator) SetMetricsRecorder(metrics MetricsRecorder) {
	o.metrics = metrics
}

func (o *Orchestrator) State() view.State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Submit runs a search for query. The visible state ends in Weather or Error unless the
// query is blank (ErrEmptyQuery) or a newer search was submitted meanwhile (ErrSuperseded).
// Upstream failures are shown to the user and also returned.
func (o *Orchestrator) Submit(ctx context.Context, query string) error {
	city := strings.TrimSpace(query)
	if city == "" {
		return ErrEmptyQuery
	}

	searchID := uuid.New().String()
	logger := o.logger.With(zap.String("search_id", searchID), zap.String("city", city))

	tracer := o.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "search.Submit")
	defer span.End()

	span.SetAttributes(
		attribute.String("search.id", searchID),
		attribute.String("city", city),
	)

	seq := o.begin()
	logger.Info("Search started", zap.Uint64("seq", seq))

	loc, err := o.geocoder.Resolve(ctx, city)
	o.recordCall(ctx, o.geocoder.Name(), err)
	if err != nil {
		return o.fail(ctx, logger, seq, city, err)
	}

	forecast, err := o.forecaster.Fetch(ctx, loc.Latitude, loc.Longitude)
	o.recordCall(ctx, o.forecaster.Name(), err)
	if err != nil {
		return o.fail(ctx, logger, seq, city, err)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if seq != o.latest {
		logger.Info("Discarding superseded search result", zap.Uint64("seq", seq), zap.Uint64("latest", o.latest))
		span.SetAttributes(attribute.Bool("superseded", true))
		o.recordSearch(ctx, OutcomeSuperseded)
		return ErrSuperseded
	}

	o.renderer.Render(loc, forecast)
	o.state = view.StateWeather

	span.SetAttributes(attribute.Bool("success", true))
	o.recordSearch(ctx, OutcomeWeather)
	logger.Info("Search completed",
		zap.String("location", loc.DisplayName()),
		zap.Int("days", forecast.Daily.Len()))

	return nil
}

// Retry returns from the error state to the empty state with a cleared, focused input.
// It reports whether a transition happened.
func (o *Orchestrator) Retry() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != view.StateError {
		return false
	}

	o.show(view.StateEmpty)
	o.view.ResetInput()
	return true
}

// begin assigns the next sequence number and shows the loading state.
func (o *Orchestrator) begin() uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.latest++
	o.show(view.StateLoading)
	return o.latest
}

func (o *Orchestrator) fail(ctx context.Context, logger *zap.Logger, seq uint64, city string, err error) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if seq != o.latest {
		logger.Info("Discarding superseded search failure", zap.Uint64("seq", seq), zap.Error(err))
		o.recordSearch(ctx, OutcomeSuperseded)
		return ErrSuperseded
	}

	message := genericErrorMessage
	outcome := OutcomeError
	if errors.Is(err, service.ErrCityNotFound) {
		message = fmt.Sprintf(notFoundErrorMessage, city)
		outcome = OutcomeNotFound
		logger.Info("City not found")
	} else {
		logger.Error("Search failed", zap.Error(err))
	}

	o.view.SetText(view.RegionErrorMessage, message)
	o.show(view.StateError)
	o.recordSearch(ctx, outcome)

	o.tele.RecordError(err, ctx, map[string]interface{}{"city": city, "outcome": outcome})

	return err
}

// show must be called with mu held.
func (o *Orchestrator) show(state view.State) {
	o.state = state
	o.view.Show(state)
}

func (o *Orchestrator) recordSearch(ctx context.Context, outcome string) {
	if o.metrics != nil {
		o.metrics.RecordSearch(ctx, outcome)
	}
}

func (o *Orchestrator) recordCall(ctx context.Context, name string, err error) {
	if o.metrics != nil {
		o.metrics.RecordWeatherServiceCall(ctx, name, err == nil || errors.Is(err, service.ErrCityNotFound))
	}
}
