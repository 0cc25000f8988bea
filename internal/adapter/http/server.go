package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/weather-lookup-service/internal/display"
	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	"github.com/couchcryptid/weather-lookup-service/internal/lookup"
)

// Lookups runs weather lookups on behalf of API requests.
// *lookup.Controller satisfies it.
type Lookups interface {
	sharedobs.ReadinessChecker
	Submit(ctx context.Context, query string, units domain.UnitSystem) lookup.Outcome
	SubmitLocation(ctx context.Context, units domain.UnitSystem) lookup.Outcome
	SubmitCoordinates(ctx context.Context, coords domain.Coordinates, units domain.UnitSystem) lookup.Outcome
}

// Board exposes the current display state.
type Board interface {
	Snapshot() display.Snapshot
}

// Options configures the non-operational routes.
type Options struct {
	WebRoot      string            // static file directory; empty disables static serving
	DefaultUnits domain.UnitSystem // used when a request names no units
}

// Server exposes the weather API, the static widget files, and the health,
// readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	lookups    Lookups
	board      Board
	units      domain.UnitSystem
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the API, static, and operational routes.
func NewServer(addr string, lookups Lookups, board Board, opts Options, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	units := opts.DefaultUnits
	if !units.Valid() {
		units = domain.UnitsMetric
	}

	s := &Server{
		httpServer: &http.Server{
			Addr:        addr,
			Handler:     mux,
			ReadTimeout: 10 * time.Second,
			// Lookups make up to two upstream calls.
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		lookups: lookups,
		board:   board,
		units:   units,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(lookups))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/weather", s.handleWeather)
	mux.HandleFunc("GET /api/weather/here", s.handleWeatherHere)
	mux.HandleFunc("GET /api/display", s.handleDisplay)

	if opts.WebRoot != "" {
		mux.Handle("GET /", NewStaticFiles(opts.WebRoot, logger))
	}

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": msg})
}
