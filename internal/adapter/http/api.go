package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-playground/validator/v10"

	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	"github.com/couchcryptid/weather-lookup-service/internal/lookup"
)

var validate = validator.New()

// weatherQuery holds the query parameters of /api/weather. A city and a
// coordinate pair are mutually exclusive; latitude and longitude come together.
type weatherQuery struct {
	City  string   `validate:"omitempty,max=200,excluded_with=Lat Lon"`
	Units string   `validate:"omitempty,oneof=metric imperial"`
	Lat   *float64 `validate:"required_with=Lon,omitempty,latitude"`
	Lon   *float64 `validate:"required_with=Lat,omitempty,longitude"`
}

// unitsQuery holds the query parameters of /api/weather/here.
type unitsQuery struct {
	Units string `validate:"omitempty,oneof=metric imperial"`
}

func parseWeatherQuery(r *http.Request) (weatherQuery, error) {
	q := r.URL.Query()
	req := weatherQuery{
		City:  q.Get("city"),
		Units: q.Get("units"),
	}

	var err error
	if req.Lat, err = parseCoordinate(q.Get("lat"), "lat"); err != nil {
		return req, err
	}
	if req.Lon, err = parseCoordinate(q.Get("lon"), "lon"); err != nil {
		return req, err
	}

	if err := validate.Struct(req); err != nil {
		return req, err
	}
	return req, nil
}

func parseCoordinate(raw, name string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errors.New(name + " must be a number")
	}
	return &v, nil
}

// unitsOrDefault maps a validated units parameter to a UnitSystem, falling
// back to the server default when none was given.
func (s *Server) unitsOrDefault(raw string) domain.UnitSystem {
	switch domain.UnitSystem(raw) {
	case domain.UnitsMetric:
		return domain.UnitsMetric
	case domain.UnitsImperial:
		return domain.UnitsImperial
	default:
		return s.units
	}
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	req, err := parseWeatherQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	units := s.unitsOrDefault(req.Units)

	var out lookup.Outcome
	if req.Lat != nil {
		coords := domain.Coordinates{Latitude: *req.Lat, Longitude: *req.Lon}
		out = s.lookups.SubmitCoordinates(r.Context(), coords, units)
	} else {
		out = s.lookups.Submit(r.Context(), req.City, units)
	}
	sharedobs.WriteJSON(w, outcomeStatus(out), out)
}

func (s *Server) handleWeatherHere(w http.ResponseWriter, r *http.Request) {
	req := unitsQuery{Units: r.URL.Query().Get("units")}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out := s.lookups.SubmitLocation(r.Context(), s.unitsOrDefault(req.Units))
	sharedobs.WriteJSON(w, outcomeStatus(out), out)
}

func (s *Server) handleDisplay(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, s.board.Snapshot())
}

// outcomeStatus maps a lookup outcome to an HTTP status code.
func outcomeStatus(out lookup.Outcome) int {
	if out.State != lookup.Failed {
		return http.StatusOK
	}

	var te *domain.TransportError
	var le *domain.LocationError
	switch {
	case errors.Is(out.Err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(out.Err, domain.ErrUnknownUnits):
		return http.StatusBadRequest
	case errors.As(out.Err, &le):
		return http.StatusServiceUnavailable
	case errors.As(out.Err, &te):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
