// Command weather looks up current conditions from the terminal.
//
//	weather -city "New York"
//	weather -city Paris -units imperial
//	weather -here
//	weather -lat 51.5 -lon -0.12
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/weather-lookup-service/internal/adapter/console"
	"github.com/couchcryptid/weather-lookup-service/internal/adapter/iplocation"
	"github.com/couchcryptid/weather-lookup-service/internal/adapter/openmeteo"
	"github.com/couchcryptid/weather-lookup-service/internal/adapter/upstream"
	"github.com/couchcryptid/weather-lookup-service/internal/config"
	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	"github.com/couchcryptid/weather-lookup-service/internal/lookup"
	"github.com/couchcryptid/weather-lookup-service/internal/observability"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	city := flag.String("city", "", "place name to look up")
	unitsFlag := flag.String("units", "", "unit system: metric or imperial (default from DEFAULT_UNITS)")
	here := flag.Bool("here", false, "look up the weather at this machine's IP location")
	lat := flag.Float64("lat", 0, "latitude; requires -lon")
	lon := flag.Float64("lon", 0, "longitude; requires -lat")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return exitFailed
	}

	units := cfg.DefaultUnits
	if *unitsFlag != "" {
		if units, err = domain.ParseUnitSystem(*unitsFlag); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitUsage
		}
	}

	var latSet, lonSet bool
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "lat":
			latSet = true
		case "lon":
			lonSet = true
		}
	})
	if latSet != lonSet {
		fmt.Fprintln(os.Stderr, "-lat and -lon must be given together")
		return exitUsage
	}

	// Terminal output carries the results; logs are for trouble only.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	opts := upstream.Options{
		Timeout:     cfg.UpstreamTimeout,
		Limiter:     upstream.NewLimiter(cfg.UpstreamRPS, cfg.UpstreamBurst),
		MaxFailures: cfg.BreakerMaxFailures,
		OpenTimeout: cfg.BreakerOpenTimeout,
	}
	metrics := observability.NewMetrics()
	ctrl := lookup.New(
		openmeteo.NewGeocodingClient(cfg.GeocodingURL, opts, metrics, logger),
		openmeteo.NewForecastClient(cfg.ForecastURL, opts, metrics, logger),
		iplocation.NewLocator(cfg.IPLocationURL, opts, metrics, logger),
		console.NewRenderer(os.Stdout, os.Stderr),
		nil,
		logger,
		metrics,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var out lookup.Outcome
	switch {
	case latSet:
		out = ctrl.SubmitCoordinates(ctx, domain.Coordinates{Latitude: *lat, Longitude: *lon}, units)
	case *here:
		out = ctrl.SubmitLocation(ctx, units)
	default:
		out = ctrl.Submit(ctx, *city, units)
	}

	switch out.State {
	case lookup.Done:
		return exitOK
	case lookup.Idle:
		fmt.Fprintln(os.Stderr, "usage: weather -city NAME | -here | -lat LAT -lon LON [-units metric|imperial]")
		return exitUsage
	default:
		return exitFailed
	}
}
