// Package console renders lookups to a terminal.
package console

import (
	"fmt"
	"io"
	"sync"

	"github.com/couchcryptid/weather-lookup-service/internal/domain"
)

// Renderer writes status lines to one stream and results to another.
// It implements lookup.RenderTarget.
type Renderer struct {
	mu     sync.Mutex
	out    io.Writer
	status io.Writer
}

// NewRenderer returns a Renderer writing results to out and status to status.
func NewRenderer(out, status io.Writer) *Renderer {
	return &Renderer{out: out, status: status}
}

func (r *Renderer) ShowStatus(_ uint64, message string, isError bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if isError {
		fmt.Fprintf(r.status, "error: %s\n", message)
		return
	}
	fmt.Fprintln(r.status, message)
}

// HideStatus is a no-op; terminal status lines scroll away.
func (r *Renderer) HideStatus(uint64) {}

func (r *Renderer) Render(_ uint64, res domain.RenderResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.out, "%s  %s\n", res.IconGlyph, res.LocationLabel)
	fmt.Fprintf(r.out, "  Temperature: %s\n", res.TemperatureLabel)
	fmt.Fprintf(r.out, "  Conditions:  %s\n", res.ConditionsLabel)
	fmt.Fprintf(r.out, "  Wind:        %s\n", res.WindLabel)
	fmt.Fprintf(r.out, "  Humidity:    %s\n", res.HumidityLabel)
	if res.TimeLabel != "" {
		fmt.Fprintf(r.out, "  Observed:    %s\n", res.TimeLabel)
	}
}
