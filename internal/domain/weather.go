package domain

import (
	"fmt"
	"strings"
	"time"
)

// UnitSystem selects temperature and wind-speed presentation.
type UnitSystem string

const (
	UnitsMetric   UnitSystem = "metric"
	UnitsImperial UnitSystem = "imperial"
)

// ParseUnitSystem accepts "metric" or "imperial" (case-insensitive).
// An empty string selects metric.
func ParseUnitSystem(s string) (UnitSystem, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(UnitsMetric):
		return UnitsMetric, nil
	case string(UnitsImperial):
		return UnitsImperial, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownUnits, s)
	}
}

// Valid reports whether u is one of the supported unit systems.
func (u UnitSystem) Valid() bool {
	return u == UnitsMetric || u == UnitsImperial
}

// Place is a geocoding match.
type Place struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Label renders the place as "Name, Country", or just the name when the
// country is unknown.
func (p Place) Label() string {
	if p.Country == "" {
		return p.Name
	}
	return p.Name + ", " + p.Country
}

// Coordinates is a WGS-84 latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CurrentConditions is the forecast provider's current-weather block.
type CurrentConditions struct {
	TemperatureCelsius float64   `json:"temperature_celsius"`
	WindSpeed          float64   `json:"wind_speed"`
	WindSpeedUnit      string    `json:"wind_speed_unit"` // as requested upstream: "kmh" or "mph"
	WeatherCode        int       `json:"weather_code"`
	ObservedAt         time.Time `json:"observed_at"`
}

// HourlySeries holds index-aligned hourly timestamps and relative humidity.
// Timestamps[i] and HumidityPercent[i] describe the same instant.
type HourlySeries struct {
	Timestamps      []time.Time `json:"timestamps"`
	HumidityPercent []int       `json:"humidity_percent"`
}

// Len returns the number of aligned entries.
func (s HourlySeries) Len() int {
	return min(len(s.Timestamps), len(s.HumidityPercent))
}

// RenderResult is everything a display needs for one completed lookup.
type RenderResult struct {
	LocationLabel    string `json:"location"`
	TemperatureLabel string `json:"temperature"`
	ConditionsLabel  string `json:"conditions"`
	WindLabel        string `json:"wind"`
	HumidityLabel    string `json:"humidity"`
	TimeLabel        string `json:"time"`
	IconGlyph        string `json:"icon"`
}
