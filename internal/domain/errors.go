package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound means the geocoder had no match for the query. It is an
// expected, user-correctable outcome rather than a fault.
var ErrNotFound = errors.New("city not found")

// ErrUnknownUnits means a unit system other than metric or imperial was requested.
var ErrUnknownUnits = errors.New("unknown unit system")

// TransportError reports that an upstream call could not complete: a network
// failure, a non-success status, or a payload missing required data.
type TransportError struct {
	Service string // "geocoding", "forecast", "iplocation"
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s API error: %v", e.Service, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// NewTransportError wraps err as a TransportError for the given service.
func NewTransportError(service string, err error) *TransportError {
	return &TransportError{Service: service, Err: err}
}

// LocationError reports that the caller's location could not be determined.
// Reason carries the location service's own explanation.
type LocationError struct {
	Reason string
}

func (e *LocationError) Error() string {
	return "location unavailable: " + e.Reason
}
