package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	"github.com/couchcryptid/weather-lookup-service/internal/observability"
)

// Status line messages.
const (
	MsgSearching       = "Searching..."
	MsgLocating        = "Getting your location..."
	MsgNotFound        = "City not found"
	MsgUnknownUnits    = "Unknown unit system"
	fetchingPrefix     = "Fetching weather for "
	fetchErrorPrefix   = "Error fetching weather: "
	locationErrPrefix  = "Unable to get your location: "
	reasonNoGeolocator = "geolocation not supported"
)

// RenderTarget displays lookup progress and results. seq identifies the
// lookup; targets may use it to ignore output from superseded lookups.
type RenderTarget interface {
	ShowStatus(seq uint64, message string, isError bool)
	HideStatus(seq uint64)
	Render(seq uint64, result domain.RenderResult)
}

// EventPublisher records finished lookups.
type EventPublisher interface {
	Publish(ctx context.Context, ev domain.LookupEvent) error
}

// Outcome is the final state of one lookup as seen by the caller.
type Outcome struct {
	Sequence uint64               `json:"sequence"`
	State    State                `json:"state"`
	Place    *domain.Place        `json:"place,omitempty"`
	Result   *domain.RenderResult `json:"result,omitempty"`
	Message  string               `json:"message,omitempty"`
	Err      error                `json:"-"`
}

// Controller runs lookups: geocode (unless coordinates are known), fetch the
// forecast, format, render. It holds no display state and is safe for
// concurrent use; overlapping lookups run independently.
type Controller struct {
	geocoder  domain.Geocoder
	forecast  domain.ForecastClient
	locator   domain.Locator
	target    RenderTarget
	publisher EventPublisher
	logger    *slog.Logger
	metrics   *observability.Metrics

	seq      atomic.Uint64
	finished atomic.Bool
}

// New creates a Controller. locator and publisher may be nil: without a
// locator, location lookups fail with a LocationError; without a publisher,
// no lookup events are emitted.
func New(geocoder domain.Geocoder, forecast domain.ForecastClient, locator domain.Locator, target RenderTarget, publisher EventPublisher, logger *slog.Logger, metrics *observability.Metrics) *Controller {
	return &Controller{
		geocoder:  geocoder,
		forecast:  forecast,
		locator:   locator,
		target:    target,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once at least one lookup has finished.
func (c *Controller) CheckReadiness(_ context.Context) error {
	if !c.finished.Load() {
		return errors.New("no lookup has completed yet")
	}
	return nil
}

// run tracks one lookup through the state machine.
type run struct {
	seq     uint64
	trigger string
	query   string
	units   domain.UnitSystem
	state   State
	place   *domain.Place
	started time.Time
}

// Submit looks up a place by name. A blank query is a no-op: the outcome is
// Idle and neither the network nor the render target is touched.
func (c *Controller) Submit(ctx context.Context, query string, units domain.UnitSystem) Outcome {
	query = strings.TrimSpace(query)
	if query == "" {
		return Outcome{State: Idle}
	}

	r := c.begin(domain.TriggerQuery, query, units)
	if err := checkUnits(units); err != nil {
		return c.fail(ctx, r, err)
	}

	c.transition(r, Searching)
	c.target.ShowStatus(r.seq, MsgSearching, false)

	place, err := c.geocoder.Resolve(ctx, query)
	if err != nil {
		return c.fail(ctx, r, err)
	}
	r.place = &place

	c.transition(r, FetchingWeather)
	c.target.ShowStatus(r.seq, fetchingPrefix+place.Label(), false)

	return c.fetch(ctx, r, place.Label(), place.Latitude, place.Longitude)
}

// SubmitLocation looks up the weather at the caller's position as reported
// by the configured Locator. The geocoder is never called.
func (c *Controller) SubmitLocation(ctx context.Context, units domain.UnitSystem) Outcome {
	r := c.begin(domain.TriggerLocation, "", units)
	if err := checkUnits(units); err != nil {
		return c.fail(ctx, r, err)
	}
	if c.locator == nil {
		return c.fail(ctx, r, &domain.LocationError{Reason: reasonNoGeolocator})
	}

	c.transition(r, Searching)
	c.target.ShowStatus(r.seq, MsgLocating, false)

	coords, err := c.locator.Locate(ctx)
	if err != nil {
		var le *domain.LocationError
		if !errors.As(err, &le) {
			err = &domain.LocationError{Reason: err.Error()}
		}
		return c.fail(ctx, r, err)
	}

	c.transition(r, FetchingWeather)
	return c.fetch(ctx, r, domain.CurrentLocationLabel, coords.Latitude, coords.Longitude)
}

// SubmitCoordinates looks up the weather at coordinates the caller already
// has, such as a browser geolocation fix. No location service is consulted.
func (c *Controller) SubmitCoordinates(ctx context.Context, coords domain.Coordinates, units domain.UnitSystem) Outcome {
	r := c.begin(domain.TriggerLocation, "", units)
	if err := checkUnits(units); err != nil {
		return c.fail(ctx, r, err)
	}

	c.transition(r, FetchingWeather)
	c.target.ShowStatus(r.seq, fetchingPrefix+domain.CurrentLocationLabel, false)
	return c.fetch(ctx, r, domain.CurrentLocationLabel, coords.Latitude, coords.Longitude)
}

func checkUnits(units domain.UnitSystem) error {
	if !units.Valid() {
		return fmt.Errorf("%w %q", domain.ErrUnknownUnits, string(units))
	}
	return nil
}

func (c *Controller) fetch(ctx context.Context, r *run, label string, lat, lon float64) Outcome {
	current, series, err := c.forecast.FetchCurrent(ctx, lat, lon, r.units)
	if err != nil {
		return c.fail(ctx, r, err)
	}

	result := domain.BuildRenderResult(label, current, series, r.units)
	c.transition(r, Done)
	c.target.Render(r.seq, result)
	c.target.HideStatus(r.seq)

	return c.finish(ctx, r, Outcome{
		Sequence: r.seq,
		State:    Done,
		Place:    r.place,
		Result:   &result,
	})
}

// fail reports err on the status line. The previously rendered result, if
// any, is left untouched.
func (c *Controller) fail(ctx context.Context, r *run, err error) Outcome {
	msg := FailureMessage(err)
	c.transition(r, Failed)
	c.target.ShowStatus(r.seq, msg, true)

	if errors.Is(err, domain.ErrNotFound) {
		c.logger.Info("lookup found no place", "seq", r.seq, "query", r.query)
	} else {
		c.logger.Warn("lookup failed", "seq", r.seq, "trigger", r.trigger, "error", err)
	}

	return c.finish(ctx, r, Outcome{
		Sequence: r.seq,
		State:    Failed,
		Place:    r.place,
		Message:  msg,
		Err:      err,
	})
}

// FailureMessage maps a lookup error to the user-facing status text.
func FailureMessage(err error) string {
	var le *domain.LocationError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return MsgNotFound
	case errors.Is(err, domain.ErrUnknownUnits):
		return MsgUnknownUnits
	case errors.As(err, &le):
		return locationErrPrefix + le.Reason
	default:
		return fetchErrorPrefix + err.Error()
	}
}

func (c *Controller) begin(trigger, query string, units domain.UnitSystem) *run {
	c.metrics.LookupsRunning.Inc()
	return &run{
		seq:     c.seq.Add(1),
		trigger: trigger,
		query:   query,
		units:   units,
		state:   Idle,
		started: domain.Now(),
	}
}

func (c *Controller) transition(r *run, to State) {
	c.logger.Debug("lookup transition", "seq", r.seq, "from", r.state.String(), "to", to.String())
	r.state = to
}

func (c *Controller) finish(ctx context.Context, r *run, out Outcome) Outcome {
	c.metrics.LookupsRunning.Dec()
	c.metrics.Lookups.WithLabelValues(r.trigger, out.State.String()).Inc()
	c.metrics.LookupDuration.WithLabelValues(r.trigger).Observe(domain.Now().Sub(r.started).Seconds())
	c.finished.Store(true)

	c.logger.Info("lookup finished",
		"seq", r.seq,
		"trigger", r.trigger,
		"state", out.State.String(),
	)

	if c.publisher != nil {
		ev := domain.NewLookupEvent(domain.LookupEvent{
			Sequence:  r.seq,
			Trigger:   r.trigger,
			Query:     r.query,
			Units:     r.units,
			State:     out.State.String(),
			Message:   out.Message,
			Place:     out.Place,
			Result:    out.Result,
			StartedAt: r.started,
		})
		// The event outlives a caller that has already gone away.
		if err := c.publisher.Publish(context.WithoutCancel(ctx), ev); err != nil {
			c.metrics.EventPublishErrors.Inc()
			c.logger.Warn("publish lookup event failed", "seq", r.seq, "error", err)
		} else {
			c.metrics.EventsPublished.Inc()
		}
	}

	return out
}
