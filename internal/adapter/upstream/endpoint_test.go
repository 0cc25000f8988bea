package upstream

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	"github.com/couchcryptid/weather-lookup-service/internal/observability"
)

type payload struct {
	Value string `json:"value"`
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testOptions() Options {
	return Options{Timeout: 5 * time.Second, MaxFailures: 2, OpenTimeout: time.Minute}
}

func TestEndpoint_GetJSON_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Paris", r.URL.Query().Get("name"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"value":"ok"}`))
	}))
	defer srv.Close()

	metrics := observability.NewMetricsForTesting()
	e := NewEndpoint("geocoding", srv.URL, testOptions(), metrics, discardLogger())

	var out payload
	err := e.GetJSON(context.Background(), map[string][]string{"name": {"Paris"}}, &out)
	require.NoError(t, err)

	assert.Equal(t, "ok", out.Value)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.UpstreamRequests.WithLabelValues("geocoding", "success")))
}

func TestEndpoint_GetJSON_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":true,"reason":"Latitude must be in range of -90 to 90°."}`))
	}))
	defer srv.Close()

	e := NewEndpoint("forecast", srv.URL, testOptions(), nil, discardLogger())

	var out payload
	err := e.GetJSON(context.Background(), nil, &out)
	require.Error(t, err)

	var te *domain.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "forecast", te.Service)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "Latitude must be in range")
}

func TestEndpoint_GetJSON_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer srv.Close()

	e := NewEndpoint("forecast", srv.URL, testOptions(), nil, discardLogger())

	var out payload
	err := e.GetJSON(context.Background(), nil, &out)
	require.Error(t, err)

	var te *domain.TransportError
	require.ErrorAs(t, err, &te)
	assert.Contains(t, err.Error(), "decode response")
}

func TestEndpoint_GetJSON_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	url := srv.URL
	srv.Close()

	e := NewEndpoint("geocoding", url, testOptions(), nil, discardLogger())

	var out payload
	err := e.GetJSON(context.Background(), nil, &out)

	var te *domain.TransportError
	require.ErrorAs(t, err, &te)
}

func TestEndpoint_GetJSON_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	opts := testOptions()
	opts.Timeout = 50 * time.Millisecond
	e := NewEndpoint("forecast", srv.URL, opts, nil, discardLogger())

	var out payload
	err := e.GetJSON(context.Background(), nil, &out)
	require.Error(t, err)
}

func TestEndpoint_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	metrics := observability.NewMetricsForTesting()
	e := NewEndpoint("forecast", srv.URL, testOptions(), metrics, discardLogger())

	var out payload
	for range 2 {
		require.Error(t, e.GetJSON(context.Background(), nil, &out))
	}
	err := e.GetJSON(context.Background(), nil, &out)

	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(2), calls.Load(), "open breaker must not reach the server")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.UpstreamRequests.WithLabelValues("forecast", "rejected")))
}

func TestEndpoint_LimiterHonoursContext(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	opts := testOptions()
	opts.Limiter = NewLimiter(1, 1)
	e := NewEndpoint("geocoding", srv.URL, opts, nil, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out payload
	err := e.GetJSON(ctx, nil, &out)

	var te *domain.TransportError
	require.ErrorAs(t, err, &te)
	assert.Contains(t, err.Error(), "rate limit")
	assert.Zero(t, calls.Load())
}
