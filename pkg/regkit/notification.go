package regkit

import (
	"time"

	"github.com/google/uuid"

	"github.com/randalmurphal/regkit/pkg/regkit/event"
)

// RegistrationEventType is the bus event type for registration notifications.
const RegistrationEventType = "registry.registration"

// RegistrationEvent announces that a registry is open for registration.
//
// It is an immutable carrier: the only thing it exposes to listeners is the
// target registry, so a listener can do no more than submit its register.
// It implements event.Event and travels over the event bus like any other
// notification.
//
// Example listener:
//
//	bus.Subscribe([]string{regkit.RegistrationEventType}, event.HandlerFunc(
//	    func(ctx context.Context, e event.Event) error {
//	        evt, ok := e.(*regkit.RegistrationEvent[*Item])
//	        if !ok {
//	            return nil // registration round for a different value type
//	        }
//	        return myRegister.SubmitEvent(evt)
//	    }))
type RegistrationEvent[T comparable] struct {
	id       string
	created  time.Time
	registry *Registry[T]
}

// Compile-time interface check.
var _ event.Event = (*RegistrationEvent[int])(nil)

// NewRegistrationEvent creates a notification carrying the target registry.
// Emit it before the registry is finalized, or every submission it triggers
// will be rejected.
func NewRegistrationEvent[T comparable](r *Registry[T]) *RegistrationEvent[T] {
	return &RegistrationEvent[T]{
		id:       uuid.NewString(),
		created:  time.Now().UTC(),
		registry: r,
	}
}

// Registry returns the registry open for registration.
func (e *RegistrationEvent[T]) Registry() *Registry[T] {
	return e.registry
}

// ID returns the unique event identifier.
func (e *RegistrationEvent[T]) ID() string {
	return e.id
}

// Type returns RegistrationEventType.
func (e *RegistrationEvent[T]) Type() string {
	return RegistrationEventType
}

// Source returns the serialized key of the target registry.
func (e *RegistrationEvent[T]) Source() string {
	return e.registry.Key().String()
}

// Timestamp returns when the notification was created.
func (e *RegistrationEvent[T]) Timestamp() time.Time {
	return e.created
}

// Data returns the target registry.
func (e *RegistrationEvent[T]) Data() any {
	return e.registry
}
