// Package events provides a small in-process event bus so that side effects
// of scoring and recommending (real-time delivery, notifications) stay
// decoupled from the computation and save paths.
package events

import (
	"context"
	"time"
)

// Event is the base interface all domain events implement.
type Event interface {
	// EventName returns a unique identifier for the event type.
	EventName() string
	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time
}

// BaseEvent provides common fields for all events.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// NewBaseEvent creates a base event stamped with the current time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now().UTC()}
}

// Handler processes events of a specific type.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(ctx context.Context, event Event) error

// Handle calls the underlying function.
func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus publishes events to subscribed handlers.
type Bus interface {
	// Publish delivers an event to all handlers registered for its name.
	// Handler errors are the handlers' concern; Publish never fails.
	Publish(ctx context.Context, event Event)
	// Subscribe registers a handler for events matching EventName().
	Subscribe(eventName string, handler Handler)
}

// Event names.
const (
	LeadScoredName      = "lead.scored"
	LeadRecommendedName = "lead.recommended"
)

// LeadScored is published after a computed score has been persisted.
type LeadScored struct {
	BaseEvent
	LeadID string  `json:"lead_id"`
	Score  float64 `json:"score"`
}

// EventName identifies the LeadScored event type.
func (LeadScored) EventName() string { return LeadScoredName }

// LeadRecommended is published when a recommendation set is produced.
type LeadRecommended struct {
	BaseEvent
	LeadIDs []string `json:"lead_ids"`
}

// EventName identifies the LeadRecommended event type.
func (LeadRecommended) EventName() string { return LeadRecommendedName }
