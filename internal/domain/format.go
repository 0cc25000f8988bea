package domain

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

const (
	// UnknownHumidity is rendered when the hourly series has no entry for the
	// observation time.
	UnknownHumidity = "--"

	// CurrentLocationLabel replaces the place label for location lookups.
	CurrentLocationLabel = "Your location"

	// TimeLayout renders observation times for display.
	TimeLayout = "Mon, 2 Jan 2006 15:04 MST"
)

// FormatTemperature renders a Celsius reading in the requested unit system,
// rounded to the nearest whole degree.
func FormatTemperature(celsius float64, units UnitSystem) string {
	if units == UnitsImperial {
		f := celsius*9/5 + 32
		return fmt.Sprintf("%d°F", int(math.Round(f)))
	}
	return fmt.Sprintf("%d°C", int(math.Round(celsius)))
}

// HumidityFor finds the humidity reading taken exactly at observedAt.
func HumidityFor(observedAt time.Time, series HourlySeries) string {
	for i := 0; i < series.Len(); i++ {
		if series.Timestamps[i].Equal(observedAt) {
			return strconv.Itoa(series.HumidityPercent[i]) + "%"
		}
	}
	return UnknownHumidity
}

// WindUnitLabel returns "mph" for imperial and "km/h" for everything else.
func WindUnitLabel(units UnitSystem) string {
	if units == UnitsImperial {
		return "mph"
	}
	return "km/h"
}

// WindLabel returns the unit label for wind speeds in the given unit system.
// The speed does not affect the label.
func WindLabel(_ float64, units UnitSystem) string {
	return WindUnitLabel(units)
}

// WindText renders a wind speed with its unit, e.g. "10 km/h".
func WindText(speed float64, units UnitSystem) string {
	return formatSpeed(speed) + " " + WindLabel(speed, units)
}

// ConditionsLabel renders "Wind {speed} {unit} | {description}".
func ConditionsLabel(speed float64, units UnitSystem, code int) string {
	return "Wind " + WindText(speed, units) + " | " + Describe(code)
}

// TimeLabel renders the observation time in its own zone.
func TimeLabel(observedAt time.Time) string {
	if observedAt.IsZero() {
		return ""
	}
	return observedAt.Format(TimeLayout)
}

// BuildRenderResult derives every display field for one lookup.
func BuildRenderResult(locationLabel string, current CurrentConditions, series HourlySeries, units UnitSystem) RenderResult {
	return RenderResult{
		LocationLabel:    locationLabel,
		TemperatureLabel: FormatTemperature(current.TemperatureCelsius, units),
		ConditionsLabel:  ConditionsLabel(current.WindSpeed, units, current.WeatherCode),
		WindLabel:        WindText(current.WindSpeed, units),
		HumidityLabel:    HumidityFor(current.ObservedAt, series),
		TimeLabel:        TimeLabel(current.ObservedAt),
		IconGlyph:        IconFor(current.WeatherCode),
	}
}

// formatSpeed prints the shortest decimal form, so 10 renders as "10" and
// 10.5 as "10.5".
func formatSpeed(speed float64) string {
	return strconv.FormatFloat(speed, 'f', -1, 64)
}
