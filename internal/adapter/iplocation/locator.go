package iplocation

import (
	"context"
	"errors"
	"log/slog"

	"github.com/couchcryptid/weather-lookup-service/internal/adapter/upstream"
	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	"github.com/couchcryptid/weather-lookup-service/internal/observability"
)

// Locator implements domain.Locator by geolocating the host's public IP
// address with an ipapi.co-compatible JSON endpoint.
type Locator struct {
	endpoint *upstream.Endpoint
	logger   *slog.Logger
}

// NewLocator creates a Locator for baseURL.
func NewLocator(baseURL string, opts upstream.Options, metrics *observability.Metrics, logger *slog.Logger) *Locator {
	return &Locator{
		endpoint: upstream.NewEndpoint("iplocation", baseURL, opts, metrics, logger),
		logger:   logger,
	}
}

// Locate returns the approximate coordinates of the current public IP.
// Every failure is a *domain.LocationError.
func (l *Locator) Locate(ctx context.Context) (domain.Coordinates, error) {
	var resp response
	if err := l.endpoint.GetJSON(ctx, nil, &resp); err != nil {
		var te *domain.TransportError
		if errors.As(err, &te) {
			return domain.Coordinates{}, &domain.LocationError{Reason: te.Err.Error()}
		}
		return domain.Coordinates{}, &domain.LocationError{Reason: err.Error()}
	}

	if resp.Error {
		reason := resp.Reason
		if resp.Message != "" {
			reason += ": " + resp.Message
		}
		return domain.Coordinates{}, &domain.LocationError{Reason: reason}
	}
	if resp.Latitude == nil || resp.Longitude == nil {
		return domain.Coordinates{}, &domain.LocationError{Reason: "location service returned no coordinates"}
	}

	l.logger.Debug("located by ip", "city", resp.City, "country", resp.CountryCode)
	return domain.Coordinates{Latitude: *resp.Latitude, Longitude: *resp.Longitude}, nil
}

type response struct {
	City        string   `json:"city"`
	CountryCode string   `json:"country_code"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`

	// Set by the provider instead of coordinates on failure.
	Error   bool   `json:"error"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}
