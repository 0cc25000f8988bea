// Package domain models a single weather lookup: the place being looked up,
// the current conditions returned by the forecast provider, and the
// user-facing labels derived from them.
//
// # Data Source
//
// Coordinates and conditions come from the Open-Meteo public APIs
// (https://open-meteo.com). Place names are resolved by the geocoding API
// and conditions by the forecast API; neither requires an API key.
//
// # Open-Meteo Conventions
//
// Weather codes:
//
//	WMO weather interpretation codes (WW), e.g. 0 = clear sky, 61 = slight rain,
//	95 = thunderstorm. Only 28 of the 100 WMO codes are ever emitted by
//	Open-Meteo. Unknown codes fall back to "—" and a partly-cloudy glyph.
//	See [Describe] and [IconFor].
//
// Time format:
//
//	ISO-8601 local time without seconds or offset, e.g. "2024-04-26T15:00".
//	Requests set timezone=auto so current and hourly timestamps share the
//	location's zone. The zone offset comes from "utc_offset_seconds".
//
// Humidity:
//
//	The current_weather block carries no humidity. The value is taken from the
//	hourly "relativehumidity_2m" series at the index whose timestamp equals the
//	current observation time exactly. No match renders as "--".
//
// Units:
//
//	Temperatures always arrive in Celsius and are converted locally for
//	imperial output. Wind speed is requested in the caller's unit
//	(windspeed_unit=kmh or mph) and never converted afterwards.
//
// # Rounding
//
// Temperatures are rounded with [math.Round], i.e. half away from zero:
// 0.5 → 1, -0.5 → -1, 2.5 → 3.
package domain
