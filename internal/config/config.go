package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"

	"github.com/couchcryptid/weather-lookup-service/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	WebRoot         string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Upstream API configuration.
	GeocodingURL       string
	ForecastURL        string
	IPLocationURL      string
	UpstreamTimeout    time.Duration
	UpstreamRPS        float64
	UpstreamBurst      int
	BreakerMaxFailures int
	BreakerOpenTimeout time.Duration

	// Default lookup shown on startup and refreshed on a schedule.
	DefaultCity     string
	DefaultUnits    domain.UnitSystem
	RefreshInterval time.Duration // 0 disables scheduled refresh

	// Lookup event publishing.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults where unset.
// A .env file in the working directory is loaded first when present; variables
// already set in the environment take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	upstreamTimeout, err := parsePositiveDuration("UPSTREAM_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	breakerOpenTimeout, err := parsePositiveDuration("BREAKER_OPEN_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}

	refreshInterval, err := time.ParseDuration(sharedcfg.EnvOrDefault("REFRESH_INTERVAL", "0s"))
	if err != nil || refreshInterval < 0 {
		return nil, errors.New("invalid REFRESH_INTERVAL")
	}

	upstreamRPS, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("UPSTREAM_RPS", "5"), 64)
	if err != nil || upstreamRPS <= 0 {
		return nil, errors.New("invalid UPSTREAM_RPS: must be a positive number")
	}

	upstreamBurst, err := parsePositiveInt("UPSTREAM_BURST", 5)
	if err != nil {
		return nil, err
	}

	breakerMaxFailures, err := parsePositiveInt("BREAKER_MAX_FAILURES", 5)
	if err != nil {
		return nil, err
	}

	defaultUnits, err := domain.ParseUnitSystem(sharedcfg.EnvOrDefault("DEFAULT_UNITS", "metric"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_UNITS: %w", err)
	}

	kafkaEnabled := os.Getenv("KAFKA_ENABLED") == "true"

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		WebRoot:         sharedcfg.EnvOrDefault("WEB_ROOT", "web"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		GeocodingURL:       sharedcfg.EnvOrDefault("GEOCODING_URL", "https://geocoding-api.open-meteo.com/v1/search"),
		ForecastURL:        sharedcfg.EnvOrDefault("FORECAST_URL", "https://api.open-meteo.com/v1/forecast"),
		IPLocationURL:      sharedcfg.EnvOrDefault("IPLOCATION_URL", "https://ipapi.co/json/"),
		UpstreamTimeout:    upstreamTimeout,
		UpstreamRPS:        upstreamRPS,
		UpstreamBurst:      upstreamBurst,
		BreakerMaxFailures: breakerMaxFailures,
		BreakerOpenTimeout: breakerOpenTimeout,

		DefaultCity:     os.Getenv("DEFAULT_CITY"),
		DefaultUnits:    defaultUnits,
		RefreshInterval: refreshInterval,

		KafkaEnabled: kafkaEnabled,
		KafkaBrokers: sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "weather-lookups"),
	}
	if _, set := os.LookupEnv("DEFAULT_CITY"); !set {
		cfg.DefaultCity = "New York"
	}

	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_TOPIC is empty")
	}

	return cfg, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", key)
	}
	return n, nil
}
