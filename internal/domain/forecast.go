package domain

import "context"

// ForecastClient fetches current conditions for a coordinate pair.
type ForecastClient interface {
	// FetchCurrent returns the current conditions and the hourly humidity
	// series. Wind speed is in the unit matching units. Failures, including
	// payloads without a current-conditions block, are *TransportError.
	FetchCurrent(ctx context.Context, lat, lon float64, units UnitSystem) (CurrentConditions, HourlySeries, error)
}
