// Package upstream performs JSON GET requests against third-party HTTP APIs
// behind a shared rate limiter and a per-endpoint circuit breaker. Every
// failure is reported as a *domain.TransportError; nothing is retried.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	"github.com/couchcryptid/weather-lookup-service/internal/observability"
)

// maxErrorBody caps how much of a non-success response body ends up in an error.
const maxErrorBody = 512

// Options configures an Endpoint.
type Options struct {
	Timeout     time.Duration
	Limiter     *rate.Limiter // shared across endpoints; nil disables limiting
	MaxFailures int           // consecutive failures before the breaker opens
	OpenTimeout time.Duration // how long the breaker stays open
}

// Endpoint is a single upstream URL.
type Endpoint struct {
	service    string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewEndpoint creates an Endpoint for service at baseURL.
func NewEndpoint(service, baseURL string, opts Options, metrics *observability.Metrics, logger *slog.Logger) *Endpoint {
	maxFailures := uint32(max(opts.MaxFailures, 1))

	e := &Endpoint{
		service:    service,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: opts.Timeout},
		limiter:    opts.Limiter,
		metrics:    metrics,
		logger:     logger,
	}
	e.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        service,
		MaxRequests: 1,
		Timeout:     opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		// A caller giving up is not an upstream fault.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change", "service", name, "from", from.String(), "to", to.String())
		},
	})
	return e
}

// Service returns the service name used in errors and metrics.
func (e *Endpoint) Service() string { return e.service }

// GetJSON issues GET baseURL?params and decodes the JSON body into out.
func (e *Endpoint) GetJSON(ctx context.Context, params url.Values, out any) error {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			e.observe("rejected", 0)
			return domain.NewTransportError(e.service, fmt.Errorf("rate limit wait canceled: %w", err))
		}
	}

	fullURL := e.baseURL
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	start := time.Now()
	result, err := e.breaker.Execute(func() (interface{}, error) {
		return e.fetch(ctx, fullURL)
	})
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			e.observe("rejected", 0)
		} else {
			e.observe("error", elapsed)
		}
		e.logger.Debug("upstream request failed", "service", e.service, "error", err)
		return domain.NewTransportError(e.service, err)
	}
	e.observe("success", elapsed)

	body, ok := result.([]byte)
	if !ok {
		return domain.NewTransportError(e.service, errors.New("unexpected result type from circuit breaker"))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return domain.NewTransportError(e.service, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func (e *Endpoint) fetch(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

func (e *Endpoint) observe(outcome string, elapsed time.Duration) {
	if e.metrics == nil {
		return
	}
	e.metrics.UpstreamRequests.WithLabelValues(e.service, outcome).Inc()
	if elapsed > 0 {
		e.metrics.UpstreamDuration.WithLabelValues(e.service).Observe(elapsed.Seconds())
	}
}

// NewLimiter returns a token-bucket limiter for rps requests per second.
func NewLimiter(rps float64, burst int) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(rps), max(burst, 1))
}
