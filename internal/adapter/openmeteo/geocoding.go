package openmeteo

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/couchcryptid/weather-lookup-service/internal/adapter/upstream"
	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	"github.com/couchcryptid/weather-lookup-service/internal/observability"
)

// GeocodingClient implements domain.Geocoder using the Open-Meteo geocoding API.
type GeocodingClient struct {
	endpoint *upstream.Endpoint
	logger   *slog.Logger
}

// NewGeocodingClient creates a geocoding client for baseURL.
func NewGeocodingClient(baseURL string, opts upstream.Options, metrics *observability.Metrics, logger *slog.Logger) *GeocodingClient {
	return &GeocodingClient{
		endpoint: upstream.NewEndpoint("geocoding", baseURL, opts, metrics, logger),
		logger:   logger,
	}
}

// Resolve returns the best match for query. Only one result is requested.
func (c *GeocodingClient) Resolve(ctx context.Context, query string) (domain.Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.Place{}, fmt.Errorf("%w: empty query", domain.ErrNotFound)
	}

	params := url.Values{
		"name":     {query},
		"count":    {"1"},
		"language": {"en"},
		"format":   {"json"},
	}

	var resp geocodingResponse
	if err := c.endpoint.GetJSON(ctx, params, &resp); err != nil {
		return domain.Place{}, err
	}

	if len(resp.Results) == 0 {
		c.logger.Debug("geocoding returned no results", "query", query)
		return domain.Place{}, domain.ErrNotFound
	}

	r := resp.Results[0]
	country := r.Country
	if country == "" {
		country = r.CountryCode
	}
	return domain.Place{
		Name:      r.Name,
		Country:   country,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
	}, nil
}

// Open-Meteo geocoding response types. "results" is omitted entirely when
// nothing matches.

type geocodingResponse struct {
	Results []geocodingResult `json:"results"`
}

type geocodingResult struct {
	Name        string  `json:"name"`
	Country     string  `json:"country"`
	CountryCode string  `json:"country_code"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}
