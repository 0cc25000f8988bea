package openmeteo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/weather-lookup-service/internal/adapter/upstream"
	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	"github.com/couchcryptid/weather-lookup-service/internal/observability"
)

// timeLayout is Open-Meteo's default "iso8601" timeformat: local time, minute precision.
const timeLayout = "2006-01-02T15:04"

// ForecastClient implements domain.ForecastClient using the Open-Meteo forecast API.
type ForecastClient struct {
	endpoint *upstream.Endpoint
	logger   *slog.Logger
}

// NewForecastClient creates a forecast client for baseURL.
func NewForecastClient(baseURL string, opts upstream.Options, metrics *observability.Metrics, logger *slog.Logger) *ForecastClient {
	return &ForecastClient{
		endpoint: upstream.NewEndpoint("forecast", baseURL, opts, metrics, logger),
		logger:   logger,
	}
}

// FetchCurrent fetches current conditions and the hourly humidity series in
// the location's own time zone.
func (c *ForecastClient) FetchCurrent(ctx context.Context, lat, lon float64, units domain.UnitSystem) (domain.CurrentConditions, domain.HourlySeries, error) {
	windUnit := windSpeedParam(units)
	params := url.Values{
		"latitude":        {strconv.FormatFloat(lat, 'f', -1, 64)},
		"longitude":       {strconv.FormatFloat(lon, 'f', -1, 64)},
		"current_weather": {"true"},
		"hourly":          {"relativehumidity_2m,weathercode"},
		"timezone":        {"auto"},
		"windspeed_unit":  {windUnit},
	}

	var resp forecastResponse
	if err := c.endpoint.GetJSON(ctx, params, &resp); err != nil {
		return domain.CurrentConditions{}, domain.HourlySeries{}, err
	}

	if resp.CurrentWeather == nil {
		return domain.CurrentConditions{}, domain.HourlySeries{}, domain.NewTransportError(c.endpoint.Service(), errors.New("response has no current_weather block"))
	}

	loc := time.FixedZone(resp.TimezoneAbbreviation, resp.UTCOffsetSeconds)

	observedAt, err := time.ParseInLocation(timeLayout, resp.CurrentWeather.Time, loc)
	if err != nil {
		return domain.CurrentConditions{}, domain.HourlySeries{}, domain.NewTransportError(c.endpoint.Service(), fmt.Errorf("parse current_weather time: %w", err))
	}

	current := domain.CurrentConditions{
		TemperatureCelsius: resp.CurrentWeather.Temperature,
		WindSpeed:          resp.CurrentWeather.WindSpeed,
		WindSpeedUnit:      windUnit,
		WeatherCode:        resp.CurrentWeather.WeatherCode,
		ObservedAt:         observedAt,
	}

	return current, c.hourlySeries(resp.Hourly, loc), nil
}

// hourlySeries converts the hourly block into an aligned series. Entries with
// a null humidity or an unparseable timestamp are dropped together so indices
// stay aligned; a length mismatch truncates to the shorter array.
func (c *ForecastClient) hourlySeries(h *hourlyBlock, loc *time.Location) domain.HourlySeries {
	if h == nil {
		return domain.HourlySeries{}
	}

	n := min(len(h.Time), len(h.RelativeHumidity))
	if len(h.Time) != len(h.RelativeHumidity) {
		c.logger.Warn("hourly arrays differ in length, truncating",
			"times", len(h.Time),
			"humidity", len(h.RelativeHumidity),
		)
	}

	series := domain.HourlySeries{
		Timestamps:      make([]time.Time, 0, n),
		HumidityPercent: make([]int, 0, n),
	}
	for i := range n {
		if h.RelativeHumidity[i] == nil {
			continue
		}
		ts, err := time.ParseInLocation(timeLayout, h.Time[i], loc)
		if err != nil {
			c.logger.Warn("skipping unparseable hourly timestamp", "time", h.Time[i], "error", err)
			continue
		}
		series.Timestamps = append(series.Timestamps, ts)
		series.HumidityPercent = append(series.HumidityPercent, *h.RelativeHumidity[i])
	}
	return series
}

// windSpeedParam maps a unit system to Open-Meteo's windspeed_unit value.
func windSpeedParam(units domain.UnitSystem) string {
	if units == domain.UnitsImperial {
		return "mph"
	}
	return "kmh"
}

// Open-Meteo forecast response types.

type forecastResponse struct {
	UTCOffsetSeconds     int             `json:"utc_offset_seconds"`
	Timezone             string          `json:"timezone"`
	TimezoneAbbreviation string          `json:"timezone_abbreviation"`
	CurrentWeather       *currentWeather `json:"current_weather"`
	Hourly               *hourlyBlock    `json:"hourly"`
}

type currentWeather struct {
	Temperature float64 `json:"temperature"`
	WindSpeed   float64 `json:"windspeed"`
	WeatherCode int     `json:"weathercode"`
	Time        string  `json:"time"`
}

type hourlyBlock struct {
	Time             []string `json:"time"`
	RelativeHumidity []*int   `json:"relativehumidity_2m"`
}
