// Package predict calls the upstream model backend and degrades to a local
// simulation when it is unreachable. A run always produces a usable result;
// the Outcome's Source field tells callers which branch was taken.
package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/ankiibott/Forest-fire-prediction/internal/config"
	"github.com/ankiibott/Forest-fire-prediction/internal/domain"
	"github.com/ankiibott/Forest-fire-prediction/internal/observability"
)

// Source identifies which branch produced an Outcome.
type Source string

const (
	// SourceModel means the upstream backend answered with a valid prediction.
	SourceModel Source = "model"
	// SourceSimulated means the backend failed and the local fallback ran.
	SourceSimulated Source = "simulated"
)

// Outcome is the terminal result of one prediction run. Exactly one of the
// two sources is reached per invocation; simulated outcomes carry a Warning
// for the UI, never an error.
type Outcome struct {
	Prediction  domain.Prediction
	TimeDetails domain.TimeDetails
	Bounds      domain.Bounds
	Center      domain.Geo
	Source      Source
	Warning     string
}

// Client talks to the model backend's /api/predict endpoint.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	clock         clockwork.Clock
	fallbackDelay time.Duration
	noise         func() float64
	metrics       *observability.Metrics
	logger        *slog.Logger
}

// Option adjusts a Client, mainly for tests.
type Option func(*Client)

// WithClock swaps the fallback timer's time source.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Client) { c.clock = clock }
}

// WithNoise swaps the simulation noise source.
func WithNoise(noise func() float64) Option {
	return func(c *Client) { c.noise = noise }
}

// NewClient creates a prediction client from config. A zero SimulationSeed
// seeds the fallback noise from the wall clock.
func NewClient(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger, opts ...Option) *Client {
	seed := cfg.SimulationSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	c := &Client{
		baseURL: cfg.ModelURL,
		httpClient: &http.Client{
			Timeout: cfg.ModelTimeout,
		},
		clock:         clockwork.NewRealClock(),
		fallbackDelay: cfg.FallbackDelay,
		noise:         func() float64 { return rng.Float64() * noiseScale },
		metrics:       metrics,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Predict runs one prediction against the backend. When the attempt fails
// for any reason other than context cancellation, it waits the fallback
// delay and synthesizes a simulated result instead. The only error ever
// returned is context cancellation; the upstream failure is surfaced
// through Outcome.Warning and the logs, not the error path.
func (c *Client) Predict(ctx context.Context, bounds domain.Bounds, manifest domain.Manifest) (Outcome, error) {
	body := domain.BuildRequest(bounds, manifest)

	outcome, err := c.attempt(ctx, body)
	if err == nil {
		c.metrics.RunsComplete.WithLabelValues(string(SourceModel)).Inc()
		return outcome, nil
	}
	if ctx.Err() != nil {
		return Outcome{}, ctx.Err()
	}

	c.logger.Warn("model backend unavailable, falling back to simulation",
		"error", err, "delay", c.fallbackDelay)

	select {
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	case <-c.clock.After(c.fallbackDelay):
	}

	outcome = c.Simulate(bounds)
	c.metrics.RunsComplete.WithLabelValues(string(SourceSimulated)).Inc()
	return outcome, nil
}

// attempt issues the network request and validates the response shape.
func (c *Client) attempt(ctx context.Context, body domain.RequestBody) (Outcome, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return Outcome{}, fmt.Errorf("serialize request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/predict", bytes.NewReader(payload))
	if err != nil {
		return Outcome{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := c.clock.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ModelRequests.WithLabelValues("transport_error").Inc()
		return Outcome{}, fmt.Errorf("model request: %w", err)
	}
	defer resp.Body.Close()
	c.metrics.ModelDuration.Observe(c.clock.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.ModelRequests.WithLabelValues("bad_status").Inc()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Outcome{}, fmt.Errorf("model backend status %d: %s", resp.StatusCode, snippet)
	}

	var modelResp response
	if err := json.NewDecoder(resp.Body).Decode(&modelResp); err != nil {
		c.metrics.ModelRequests.WithLabelValues("bad_body").Inc()
		return Outcome{}, fmt.Errorf("decode response: %w", err)
	}
	if err := domain.ValidatePrediction(modelResp.PredictionResults); err != nil {
		c.metrics.ModelRequests.WithLabelValues("bad_body").Inc()
		return Outcome{}, fmt.Errorf("malformed prediction: %w", err)
	}

	c.metrics.ModelRequests.WithLabelValues("success").Inc()
	bounds := domain.Bounds{LatMin: body.LatMin, LatMax: body.LatMax, LonMin: body.LonMin, LonMax: body.LonMax}
	return Outcome{
		Prediction:  modelResp.PredictionResults,
		TimeDetails: modelResp.TimeDetails,
		Bounds:      bounds,
		Center:      bounds.Center(),
		Source:      SourceModel,
	}, nil
}

// Model backend response body.
type response struct {
	PredictionResults domain.Prediction  `json:"prediction_results"`
	TimeDetails       domain.TimeDetails `json:"time_details"`
}
