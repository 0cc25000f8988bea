// Package display holds the most recent lookup output for the HTTP surface.
package display

import (
	"sync"
	"time"

	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	"github.com/couchcryptid/weather-lookup-service/internal/observability"
)

// Snapshot is a point-in-time copy of the board.
type Snapshot struct {
	Result         *domain.RenderResult `json:"result,omitempty"`
	ResultSequence uint64               `json:"result_sequence"`
	Status         string               `json:"status"`
	StatusIsError  bool                 `json:"status_is_error"`
	StatusVisible  bool                 `json:"status_visible"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// Board is a lookup.RenderTarget shared by concurrent lookups. Output from a
// lookup older than the one already shown is discarded, so a slow response
// can never overwrite a newer one.
type Board struct {
	mu        sync.RWMutex
	snap      Snapshot
	statusSeq uint64
	metrics   *observability.Metrics
}

// NewBoard creates an empty Board. metrics may be nil.
func NewBoard(metrics *observability.Metrics) *Board {
	return &Board{metrics: metrics}
}

// ShowStatus sets the status line.
func (b *Board) ShowStatus(seq uint64, message string, isError bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if seq < b.statusSeq {
		return
	}
	b.statusSeq = seq
	b.snap.Status = message
	b.snap.StatusIsError = isError
	b.snap.StatusVisible = true
	b.snap.UpdatedAt = domain.Now()
}

// HideStatus clears the status line if seq still owns it.
func (b *Board) HideStatus(seq uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if seq < b.statusSeq {
		return
	}
	b.statusSeq = seq
	b.snap.Status = ""
	b.snap.StatusIsError = false
	b.snap.StatusVisible = false
	b.snap.UpdatedAt = domain.Now()
}

// Render replaces the displayed result unless a newer lookup already rendered.
func (b *Board) Render(seq uint64, result domain.RenderResult) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if seq < b.snap.ResultSequence {
		if b.metrics != nil {
			b.metrics.StaleRendersDiscarded.Inc()
		}
		return
	}
	b.snap.Result = &result
	b.snap.ResultSequence = seq
	b.snap.UpdatedAt = domain.Now()
}

// Snapshot returns a copy of the current board.
func (b *Board) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	s := b.snap
	if s.Result != nil {
		r := *s.Result
		s.Result = &r
	}
	return s
}
