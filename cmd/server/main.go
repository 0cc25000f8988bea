package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/weather-lookup-service/internal/adapter/http"
	"github.com/couchcryptid/weather-lookup-service/internal/adapter/iplocation"
	kafkaadapter "github.com/couchcryptid/weather-lookup-service/internal/adapter/kafka"
	"github.com/couchcryptid/weather-lookup-service/internal/adapter/openmeteo"
	"github.com/couchcryptid/weather-lookup-service/internal/adapter/upstream"
	"github.com/couchcryptid/weather-lookup-service/internal/config"
	"github.com/couchcryptid/weather-lookup-service/internal/display"
	"github.com/couchcryptid/weather-lookup-service/internal/lookup"
	"github.com/couchcryptid/weather-lookup-service/internal/observability"
	"github.com/couchcryptid/weather-lookup-service/internal/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// All upstream endpoints share one rate limiter.
	opts := upstream.Options{
		Timeout:     cfg.UpstreamTimeout,
		Limiter:     upstream.NewLimiter(cfg.UpstreamRPS, cfg.UpstreamBurst),
		MaxFailures: cfg.BreakerMaxFailures,
		OpenTimeout: cfg.BreakerOpenTimeout,
	}
	geocoder := openmeteo.NewGeocodingClient(cfg.GeocodingURL, opts, metrics, logger)
	forecast := openmeteo.NewForecastClient(cfg.ForecastURL, opts, metrics, logger)
	locator := iplocation.NewLocator(cfg.IPLocationURL, opts, metrics, logger)

	board := display.NewBoard(metrics)

	// Lookup event publishing (feature-flagged via KAFKA_ENABLED).
	var publisher lookup.EventPublisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("lookup event publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("lookup event publishing disabled")
	}

	ctrl := lookup.New(geocoder, forecast, locator, board, publisher, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, ctrl, board, httpadapter.Options{
		WebRoot:      cfg.WebRoot,
		DefaultUnits: cfg.DefaultUnits,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	// Start default city refresh.
	refresher := scheduler.New(ctrl, cfg.DefaultCity, cfg.DefaultUnits, cfg.RefreshInterval, logger)
	if err := refresher.Start(ctx); err != nil {
		logger.Error("scheduler start error", "error", err)
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	refresher.Stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
