package domain

const (
	// UnknownDescription is shown for weather codes outside the table.
	UnknownDescription = "—"
	// DefaultIcon is shown for weather codes outside the table.
	DefaultIcon = "🌤️"
)

type condition struct {
	description string
	icon        string
}

// conditions maps Open-Meteo WMO weather codes to a description and icon.
// It is never written after init; use Describe and IconFor.
var conditions = map[int]condition{
	0:  {"Clear sky", "☀️"},
	1:  {"Mainly clear", "☀️"},
	2:  {"Partly cloudy", "🌤️"},
	3:  {"Overcast", "☁️"},
	45: {"Fog", "🌫️"},
	48: {"Depositing rime fog", "🌫️"},
	51: {"Light drizzle", "🌦️"},
	53: {"Moderate drizzle", "🌦️"},
	55: {"Dense drizzle", "🌧️"},
	56: {"Light freezing drizzle", "🌧️"},
	57: {"Dense freezing drizzle", "🌧️"},
	61: {"Slight rain", "🌧️"},
	63: {"Moderate rain", "🌧️"},
	65: {"Heavy rain", "🌧️"},
	66: {"Light freezing rain", "🌧️"},
	67: {"Heavy freezing rain", "🌧️"},
	71: {"Slight snowfall", "❄️"},
	73: {"Moderate snowfall", "❄️"},
	75: {"Heavy snowfall", "❄️"},
	77: {"Snow grains", "❄️"},
	80: {"Slight rain showers", "🌧️"},
	81: {"Moderate rain showers", "🌧️"},
	82: {"Violent rain showers", "🌧️"},
	85: {"Slight snow showers", "❄️"},
	86: {"Heavy snow showers", "❄️"},
	95: {"Thunderstorm", "⛈️"},
	96: {"Thunderstorm with slight hail", "⛈️"},
	99: {"Thunderstorm with heavy hail", "⛈️"},
}

// Describe returns the human-readable description for a weather code.
func Describe(code int) string {
	if c, ok := conditions[code]; ok {
		return c.description
	}
	return UnknownDescription
}

// IconFor returns the display glyph for a weather code.
func IconFor(code int) string {
	if c, ok := conditions[code]; ok {
		return c.icon
	}
	return DefaultIcon
}

// KnownCode reports whether code has its own table entry.
func KnownCode(code int) bool {
	_, ok := conditions[code]
	return ok
}
