package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Lookup triggers.
const (
	TriggerQuery    = "query"
	TriggerLocation = "location"
)

// LookupEvent records one finished lookup for downstream consumers.
type LookupEvent struct {
	ID          string        `json:"id"`
	Sequence    uint64        `json:"sequence"`
	Trigger     string        `json:"trigger"`
	Query       string        `json:"query,omitempty"`
	Units       UnitSystem    `json:"units"`
	State       string        `json:"state"`
	Message     string        `json:"message,omitempty"`
	Place       *Place        `json:"place,omitempty"`
	Result      *RenderResult `json:"result,omitempty"`
	StartedAt   time.Time     `json:"started_at"`
	CompletedAt time.Time     `json:"completed_at"`
}

// NewLookupEvent stamps a fresh ID and completion time on ev.
func NewLookupEvent(ev LookupEvent) LookupEvent {
	ev.ID = uuid.NewString()
	ev.CompletedAt = clock.Now()
	return ev
}

// OutputEvent is the serialized form destined for the event topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// SerializeLookupEvent marshals a LookupEvent keyed by its ID.
func SerializeLookupEvent(ev LookupEvent) (OutputEvent, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize lookup event: %w", err)
	}
	return OutputEvent{
		Key:   []byte(ev.ID),
		Value: data,
		Headers: map[string]string{
			"trigger":      ev.Trigger,
			"state":        ev.State,
			"completed_at": ev.CompletedAt.Format(time.RFC3339),
		},
	}, nil
}
