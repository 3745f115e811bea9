// Package event provides the notification channel that drives registration.
//
// The package implements a small pub/sub layer:
//   - Event interface for immutable notifications
//   - Bus for fan-out delivery to interested listeners
//   - Handler for receiving events
//
// The registration core itself is synchronous; the bus exists so that the
// owner of a registry can announce "register now" to many independent
// plugins without knowing who they are. Each listener receives the
// notification, submits its register against the carried registry, and the
// owner finalizes the registry once delivery is complete.
package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is the interface all bus notifications satisfy.
// Events are immutable once created.
type Event interface {
	// ID returns the unique event identifier.
	ID() string

	// Type returns the event type (e.g., "registry.registration").
	Type() string

	// Source identifies what emitted the event (e.g., a registry key).
	Source() string

	// Timestamp returns when the event was created.
	Timestamp() time.Time

	// Data returns the event payload.
	Data() any
}

// Base provides a ready-made Event implementation for embedding or
// direct use.
type Base struct {
	EventID     string
	EventType   string
	EventSource string
	Created     time.Time
	Payload     any
}

// NewBase creates a Base event with a fresh uuid and the current time.
func NewBase(eventType, source string, payload any) Base {
	return Base{
		EventID:     uuid.NewString(),
		EventType:   eventType,
		EventSource: source,
		Created:     time.Now().UTC(),
		Payload:     payload,
	}
}

// ID returns the unique event identifier.
func (b Base) ID() string { return b.EventID }

// Type returns the event type.
func (b Base) Type() string { return b.EventType }

// Source returns the event source.
func (b Base) Source() string { return b.EventSource }

// Timestamp returns when the event was created.
func (b Base) Timestamp() time.Time { return b.Created }

// Data returns the event payload.
func (b Base) Data() any { return b.Payload }

// Handler processes events delivered by the bus.
type Handler interface {
	// Handle processes one event.
	Handle(ctx context.Context, evt Event) error

	// Handles returns the event types this handler processes.
	// An empty slice means the handler accepts all event types.
	// The bus uses this as the subscription filter when Subscribe is
	// given no explicit types.
	Handles() []string
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, evt Event) error

// Handle implements Handler.
func (f HandlerFunc) Handle(ctx context.Context, evt Event) error {
	return f(ctx, evt)
}

// Handles returns nil (accepts all event types).
func (f HandlerFunc) Handles() []string {
	return nil
}
