package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var newYork = time.FixedZone("EDT", -4*3600)

func TestFormatTemperature(t *testing.T) {
	tests := []struct {
		name     string
		celsius  float64
		units    UnitSystem
		expected string
	}{
		{"metric zero", 0, UnitsMetric, "0°C"},
		{"imperial freezing", 0, UnitsImperial, "32°F"},
		{"imperial boiling", 100, UnitsImperial, "212°F"},
		{"metric rounds down", 15.2, UnitsMetric, "15°C"},
		{"metric rounds up", 15.7, UnitsMetric, "16°C"},
		{"metric half away from zero", 2.5, UnitsMetric, "3°C"},
		{"metric negative half", -2.5, UnitsMetric, "-3°C"},
		{"metric small negative", -0.4, UnitsMetric, "0°C"},
		{"imperial negative", -40, UnitsImperial, "-40°F"},
		{"imperial fractional", 21.3, UnitsImperial, "70°F"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatTemperature(tt.celsius, tt.units))
		})
	}
}

func TestHumidityFor(t *testing.T) {
	base := time.Date(2024, 4, 26, 15, 0, 0, 0, newYork)
	series := HourlySeries{
		Timestamps:      []time.Time{base.Add(-time.Hour), base, base.Add(time.Hour)},
		HumidityPercent: []int{55, 60, 65},
	}

	t.Run("exact match", func(t *testing.T) {
		assert.Equal(t, "60%", HumidityFor(base, series))
	})

	t.Run("first entry", func(t *testing.T) {
		assert.Equal(t, "55%", HumidityFor(base.Add(-time.Hour), series))
	})

	t.Run("nearest is not a match", func(t *testing.T) {
		assert.Equal(t, UnknownHumidity, HumidityFor(base.Add(15*time.Minute), series))
	})

	t.Run("same instant in another zone", func(t *testing.T) {
		assert.Equal(t, "60%", HumidityFor(base.UTC(), series))
	})

	t.Run("empty series", func(t *testing.T) {
		assert.Equal(t, "--", HumidityFor(base, HourlySeries{}))
	})

	t.Run("misaligned series stays in bounds", func(t *testing.T) {
		short := HourlySeries{
			Timestamps:      []time.Time{base.Add(-time.Hour), base},
			HumidityPercent: []int{55},
		}
		assert.Equal(t, UnknownHumidity, HumidityFor(base, short))
	})
}

func TestWindLabel(t *testing.T) {
	for _, units := range []UnitSystem{UnitsMetric, UnitsImperial, "", "nautical"} {
		label := WindLabel(12.5, units)
		assert.Contains(t, []string{"mph", "km/h"}, label, "units %q", units)
	}
	assert.Equal(t, "mph", WindLabel(3, UnitsImperial))
	assert.Equal(t, "km/h", WindLabel(3, UnitsMetric))
}

func TestWindText(t *testing.T) {
	assert.Equal(t, "10 km/h", WindText(10, UnitsMetric))
	assert.Equal(t, "10.5 mph", WindText(10.5, UnitsImperial))
	assert.Equal(t, "0 km/h", WindText(0, UnitsMetric))
}

func TestConditionsLabel(t *testing.T) {
	tests := []struct {
		name     string
		speed    float64
		units    UnitSystem
		code     int
		expected string
	}{
		{"metric partly cloudy", 10, UnitsMetric, 2, "Wind 10 km/h | Partly cloudy"},
		{"imperial rain", 6.2, UnitsImperial, 63, "Wind 6.2 mph | Moderate rain"},
		{"unknown code", 3, UnitsMetric, 999, "Wind 3 km/h | —"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ConditionsLabel(tt.speed, tt.units, tt.code))
		})
	}
}

func TestTimeLabel(t *testing.T) {
	observed := time.Date(2024, 4, 26, 15, 0, 0, 0, newYork)
	assert.Equal(t, "Fri, 26 Apr 2024 15:00 EDT", TimeLabel(observed))
	assert.Empty(t, TimeLabel(time.Time{}))
}

func TestBuildRenderResult(t *testing.T) {
	observed := time.Date(2024, 4, 26, 15, 0, 0, 0, newYork)
	current := CurrentConditions{
		TemperatureCelsius: 15.2,
		WindSpeed:          10,
		WindSpeedUnit:      "kmh",
		WeatherCode:        2,
		ObservedAt:         observed,
	}
	series := HourlySeries{
		Timestamps:      []time.Time{observed.Add(-time.Hour), observed},
		HumidityPercent: []int{58, 60},
	}

	t.Run("metric", func(t *testing.T) {
		result := BuildRenderResult("New York, US", current, series, UnitsMetric)

		assert.Equal(t, RenderResult{
			LocationLabel:    "New York, US",
			TemperatureLabel: "15°C",
			ConditionsLabel:  "Wind 10 km/h | Partly cloudy",
			WindLabel:        "10 km/h",
			HumidityLabel:    "60%",
			TimeLabel:        "Fri, 26 Apr 2024 15:00 EDT",
			IconGlyph:        "🌤️",
		}, result)
	})

	t.Run("unknown code falls back", func(t *testing.T) {
		unknown := current
		unknown.WeatherCode = 999

		result := BuildRenderResult(CurrentLocationLabel, unknown, HourlySeries{}, UnitsImperial)

		assert.Equal(t, "Your location", result.LocationLabel)
		assert.Equal(t, "59°F", result.TemperatureLabel)
		assert.Equal(t, "Wind 10 mph | —", result.ConditionsLabel)
		assert.Equal(t, "--", result.HumidityLabel)
		assert.Equal(t, DefaultIcon, result.IconGlyph)
	})
}
