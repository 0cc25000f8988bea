// Package scheduler runs the default-city lookup at startup and, optionally,
// on a fixed interval afterwards.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	"github.com/couchcryptid/weather-lookup-service/internal/lookup"
)

// runTimeout bounds a single scheduled lookup.
const runTimeout = 30 * time.Second

// Submitter starts a lookup by place name. *lookup.Controller satisfies it.
type Submitter interface {
	Submit(ctx context.Context, query string, units domain.UnitSystem) lookup.Outcome
}

// Refresher keeps the display board populated with the default city.
type Refresher struct {
	scheduler *gocron.Scheduler
	submitter Submitter
	city      string
	units     domain.UnitSystem
	interval  time.Duration
	logger    *slog.Logger
}

// New creates a Refresher. An interval of zero runs the lookup once.
func New(submitter Submitter, city string, units domain.UnitSystem, interval time.Duration, logger *slog.Logger) *Refresher {
	return &Refresher{
		scheduler: gocron.NewScheduler(time.UTC),
		submitter: submitter,
		city:      city,
		units:     units,
		interval:  interval,
		logger:    logger,
	}
}

// Start schedules the job and starts the underlying scheduler. Lookups run
// under ctx; cancelling it aborts an in-flight lookup but not the schedule.
func (r *Refresher) Start(ctx context.Context) error {
	if r.city == "" {
		r.logger.Info("scheduler: no default city configured; nothing to schedule")
		return nil
	}

	job := func() {
		runCtx, cancel := context.WithTimeout(ctx, runTimeout)
		defer cancel()

		out := r.submitter.Submit(runCtx, r.city, r.units)
		r.logger.Info("scheduler: default city lookup finished",
			"city", r.city,
			"seq", out.Sequence,
			"state", out.State.String(),
		)
	}

	var err error
	if r.interval > 0 {
		_, err = r.scheduler.Every(r.interval).SingletonMode().Do(job)
	} else {
		_, err = r.scheduler.Every(1).Day().LimitRunsTo(1).Do(job)
	}
	if err != nil {
		return err
	}

	r.scheduler.StartAsync()
	r.logger.Info("scheduler started", "city", r.city, "interval", r.interval)
	return nil
}

// Stop stops the scheduler and cancels any future runs.
func (r *Refresher) Stop() {
	r.scheduler.Stop()
}
