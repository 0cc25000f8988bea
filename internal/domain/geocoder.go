package domain

import "context"

// Geocoder resolves free-text place names.
type Geocoder interface {
	// Resolve returns the single best match for query, or ErrNotFound when
	// the provider has none. Upstream failures are *TransportError.
	Resolve(ctx context.Context, query string) (Place, error)
}

// Locator determines the caller's current position. Failures are
// *LocationError.
type Locator interface {
	Locate(ctx context.Context) (Coordinates, error)
}
