package event

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Bus distributes events to subscribed listeners.
type Bus interface {
	// Publish delivers an event to every matching subscription.
	Publish(ctx context.Context, evt Event) error

	// Subscribe registers a handler for the given event types.
	Subscribe(types []string, handler Handler) Subscription

	// SubscribeAll registers a handler for the types it reports via
	// Handles, or for every event type if it reports none.
	SubscribeAll(handler Handler) Subscription

	// Close shuts down the bus and stops all subscriptions.
	Close() error
}

// Subscription is a live handler registration on a bus.
type Subscription interface {
	// Unsubscribe permanently removes the subscription.
	Unsubscribe()

	// Pause suspends delivery until Resume.
	Pause()

	// Resume restores delivery after Pause.
	Resume()

	// IsPaused reports whether delivery is suspended.
	IsPaused() bool
}

// BusConfig configures bus behavior.
type BusConfig struct {
	// BufferSize is the per-subscription delivery buffer.
	// Default: 64
	BufferSize int

	// MaxSubscribers caps the number of live subscriptions.
	// Default: 0 (unlimited)
	MaxSubscribers int

	// NonBlocking drops events for saturated subscribers instead of
	// blocking the publisher. Default: false (blocking)
	NonBlocking bool

	// OnDrop is invoked for each event dropped in non-blocking mode.
	OnDrop func(evt Event, subscriberID string)

	// OnError is invoked when a handler returns an error.
	OnError func(evt Event, subscriberID string, err error)
}

// DefaultBusConfig provides reasonable defaults.
var DefaultBusConfig = BusConfig{
	BufferSize: 64,
}

// LocalBus is an in-process Bus backed by one goroutine per subscription.
type LocalBus struct {
	config BusConfig

	mu   sync.RWMutex
	subs map[string]*subscription

	closed  atomic.Bool
	closeCh chan struct{}
}

// NewBus creates a local event bus.
func NewBus(config BusConfig) *LocalBus {
	if config.BufferSize <= 0 {
		config.BufferSize = DefaultBusConfig.BufferSize
	}
	return &LocalBus{
		config:  config,
		subs:    make(map[string]*subscription),
		closeCh: make(chan struct{}),
	}
}

// subscription delivers matching events to one handler.
type subscription struct {
	id      string
	types   map[string]struct{} // nil means every type
	handler Handler
	inbox   chan Event
	paused  atomic.Bool
	done    chan struct{}
	bus     *LocalBus
}

// matches reports whether the subscription wants events of the given type.
func (s *subscription) matches(eventType string) bool {
	if s.types == nil {
		return true
	}
	_, ok := s.types[eventType]
	return ok
}

// Publish delivers evt to every subscription whose type set matches.
//
// With NonBlocking unset, a saturated subscriber blocks the publisher until
// the subscriber drains, ctx is canceled, or the bus closes. With
// NonBlocking set, the event is dropped for that subscriber and OnDrop
// fires instead.
func (b *LocalBus) Publish(ctx context.Context, evt Event) error {
	if b.closed.Load() {
		return &EventError{Event: evt, Message: "bus is closed"}
	}

	b.mu.RLock()
	targets := make([]*subscription, 0, len(b.subs))
	for _, s := range b.subs {
		if s.matches(evt.Type()) && !s.paused.Load() {
			targets = append(targets, s)
		}
	}
	b.mu.RUnlock()

	for _, s := range targets {
		if b.config.NonBlocking {
			select {
			case s.inbox <- evt:
			default:
				if b.config.OnDrop != nil {
					b.config.OnDrop(evt, s.id)
				}
			}
			continue
		}

		select {
		case s.inbox <- evt:
		case <-ctx.Done():
			return ctx.Err()
		case <-b.closeCh:
			return &EventError{Event: evt, Message: "bus closed during publish"}
		}
	}
	return nil
}

// Subscribe registers a handler for the given event types. An empty types
// slice falls back to the types the handler reports via Handles.
// Returns nil if the bus is closed or the subscriber limit is reached.
func (b *LocalBus) Subscribe(types []string, handler Handler) Subscription {
	if len(types) == 0 {
		types = handler.Handles()
	}
	return b.subscribe(typeSet(types), handler)
}

// SubscribeAll registers a handler for the types it reports via Handles,
// or for every event type if Handles returns nothing.
func (b *LocalBus) SubscribeAll(handler Handler) Subscription {
	return b.subscribe(typeSet(handler.Handles()), handler)
}

// typeSet builds the subscription filter; nil means every type.
func typeSet(types []string) map[string]struct{} {
	if len(types) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return set
}

func (b *LocalBus) subscribe(types map[string]struct{}, handler Handler) Subscription {
	if b.closed.Load() {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.config.MaxSubscribers > 0 && len(b.subs) >= b.config.MaxSubscribers {
		return nil
	}

	s := &subscription{
		id:      uuid.NewString(),
		types:   types,
		handler: handler,
		inbox:   make(chan Event, b.config.BufferSize),
		done:    make(chan struct{}),
		bus:     b,
	}
	b.subs[s.id] = s

	go s.run()
	return s
}

// Close shuts down the bus. Idempotent.
func (b *LocalBus) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}
	close(b.closeCh)

	b.mu.Lock()
	defer b.mu.Unlock()
	for id, s := range b.subs {
		delete(b.subs, id)
		close(s.done)
	}
	return nil
}

// run drains the subscription inbox until the subscription ends.
func (s *subscription) run() {
	for {
		select {
		case evt := <-s.inbox:
			if s.paused.Load() {
				continue
			}
			if err := s.handler.Handle(context.Background(), evt); err != nil && s.bus.config.OnError != nil {
				s.bus.config.OnError(evt, s.id, err)
			}
		case <-s.done:
			return
		}
	}
}

// Unsubscribe permanently removes the subscription. Idempotent.
func (s *subscription) Unsubscribe() {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()

	if _, live := s.bus.subs[s.id]; !live {
		return
	}
	delete(s.bus.subs, s.id)
	close(s.done)
}

// Pause suspends delivery until Resume.
func (s *subscription) Pause() {
	s.paused.Store(true)
}

// Resume restores delivery after Pause.
func (s *subscription) Resume() {
	s.paused.Store(false)
}

// IsPaused reports whether delivery is suspended.
func (s *subscription) IsPaused() bool {
	return s.paused.Load()
}
