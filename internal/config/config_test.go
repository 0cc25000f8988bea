package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/weather-lookup-service/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "web", cfg.WebRoot)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "https://geocoding-api.open-meteo.com/v1/search", cfg.GeocodingURL)
	assert.Equal(t, "https://api.open-meteo.com/v1/forecast", cfg.ForecastURL)
	assert.Equal(t, "https://ipapi.co/json/", cfg.IPLocationURL)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 5.0, cfg.UpstreamRPS)
	assert.Equal(t, 5, cfg.UpstreamBurst)
	assert.Equal(t, 5, cfg.BreakerMaxFailures)
	assert.Equal(t, 30*time.Second, cfg.BreakerOpenTimeout)
	assert.Equal(t, "New York", cfg.DefaultCity)
	assert.Equal(t, domain.UnitsMetric, cfg.DefaultUnits)
	assert.Zero(t, cfg.RefreshInterval)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "weather-lookups", cfg.KafkaTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("WEB_ROOT", "/srv/www")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("GEOCODING_URL", "http://geo.local/search")
	t.Setenv("FORECAST_URL", "http://wx.local/forecast")
	t.Setenv("IPLOCATION_URL", "http://ip.local/json")
	t.Setenv("UPSTREAM_TIMEOUT", "3s")
	t.Setenv("UPSTREAM_RPS", "0.5")
	t.Setenv("UPSTREAM_BURST", "2")
	t.Setenv("BREAKER_MAX_FAILURES", "3")
	t.Setenv("BREAKER_OPEN_TIMEOUT", "1m")
	t.Setenv("DEFAULT_CITY", "Berlin")
	t.Setenv("DEFAULT_UNITS", "imperial")
	t.Setenv("REFRESH_INTERVAL", "15m")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_TOPIC", "lookups")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "/srv/www", cfg.WebRoot)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "http://geo.local/search", cfg.GeocodingURL)
	assert.Equal(t, "http://wx.local/forecast", cfg.ForecastURL)
	assert.Equal(t, "http://ip.local/json", cfg.IPLocationURL)
	assert.Equal(t, 3*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 0.5, cfg.UpstreamRPS)
	assert.Equal(t, 2, cfg.UpstreamBurst)
	assert.Equal(t, 3, cfg.BreakerMaxFailures)
	assert.Equal(t, time.Minute, cfg.BreakerOpenTimeout)
	assert.Equal(t, "Berlin", cfg.DefaultCity)
	assert.Equal(t, domain.UnitsImperial, cfg.DefaultUnits)
	assert.Equal(t, 15*time.Minute, cfg.RefreshInterval)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "lookups", cfg.KafkaTopic)
}

func TestLoad_EmptyDefaultCityDisablesStartupLookup(t *testing.T) {
	t.Setenv("DEFAULT_CITY", "")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.DefaultCity)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidUpstreamTimeout(t *testing.T) {
	t.Setenv("UPSTREAM_TIMEOUT", "bad")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UPSTREAM_TIMEOUT")
}

func TestLoad_NegativeUpstreamTimeout(t *testing.T) {
	t.Setenv("UPSTREAM_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UPSTREAM_TIMEOUT")
}

func TestLoad_InvalidRefreshInterval(t *testing.T) {
	t.Setenv("REFRESH_INTERVAL", "-5m")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REFRESH_INTERVAL")
}

func TestLoad_InvalidUpstreamRPS(t *testing.T) {
	t.Setenv("UPSTREAM_RPS", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UPSTREAM_RPS")
}

func TestLoad_InvalidUpstreamBurst(t *testing.T) {
	t.Setenv("UPSTREAM_BURST", "many")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UPSTREAM_BURST")
}

func TestLoad_InvalidBreakerMaxFailures(t *testing.T) {
	t.Setenv("BREAKER_MAX_FAILURES", "-2")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BREAKER_MAX_FAILURES")
}

func TestLoad_InvalidDefaultUnits(t *testing.T) {
	t.Setenv("DEFAULT_UNITS", "kelvin")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEFAULT_UNITS")
}

func TestLoad_KafkaOnlyWhenExplicitlyEnabled(t *testing.T) {
	t.Setenv("KAFKA_ENABLED", "yes")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.KafkaEnabled)
}
