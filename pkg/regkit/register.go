package regkit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/regkit/pkg/regkit/observability"
)

// Register accumulates deferred registrations under one namespace.
//
// Callers declare named factories while the system is loading and receive a
// Ref for each declaration. Nothing is constructed at declaration time; the
// factories run when the register is submitted to a registry, and every Ref
// is resolved immediately after. A register can be submitted exactly once.
//
// Example:
//
//	reg, _ := regkit.NewRegister[*Item]("mods")
//	sword, _ := reg.Declare("sword", NewSword)
//	shield, _ := reg.Declare("shield", NewShield)
//
//	// later, when the registration notification arrives:
//	if err := reg.SubmitEvent(evt); err != nil {
//	    return err
//	}
//	attack := sword.MustGet()
type Register[T comparable] struct {
	namespace string

	mu           sync.Mutex
	declarations []declaration[T]
	declared     map[Key]struct{}
	submitted    bool
}

// declaration is one pending (key, factory) pair and its reference.
type declaration[T comparable] struct {
	key     Key
	factory func() T
	ref     *Ref[T]
}

// NewRegister creates an empty register for the given namespace.
// Returns a *KeyError if the namespace is not [a-z0-9._-]+.
func NewRegister[T comparable](namespace string) (*Register[T], error) {
	if !IsValidNamespace(namespace) {
		return nil, &KeyError{Input: namespace, Reason: "namespace must be [a-z0-9._-]+"}
	}
	return &Register[T]{
		namespace: namespace,
		declared:  make(map[Key]struct{}),
	}, nil
}

// Namespace returns the namespace all declarations are keyed under.
func (g *Register[T]) Namespace() string {
	return g.namespace
}

// Len returns the number of declarations made so far.
func (g *Register[T]) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.declarations)
}

// Submitted reports whether the register has been submitted.
func (g *Register[T]) Submitted() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.submitted
}

// Declare queues a named factory for registration and returns an unresolved
// reference to the value it will produce.
//
// The factory is not invoked here; construction is deferred until Submit.
// Returns ErrAlreadySubmitted after submission, a *KeyError if name is not a
// valid key name, and ErrDuplicateName if name was already declared in this
// register.
func (g *Register[T]) Declare(name string, factory func() T) (*Ref[T], error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.submitted {
		return nil, ErrAlreadySubmitted
	}

	key, err := NewKey(g.namespace, name)
	if err != nil {
		return nil, err
	}
	if _, exists := g.declared[key]; exists {
		return nil, ErrDuplicateName
	}
	if factory == nil {
		return nil, &KeyError{Input: name, Reason: "nil factory"}
	}

	ref := newRef[T](key)
	g.declared[key] = struct{}{}
	g.declarations = append(g.declarations, declaration[T]{
		key:     key,
		factory: factory,
		ref:     ref,
	})
	return ref, nil
}

// Submit constructs every declared value and registers it into r, then
// resolves every reference this register handed out.
//
// Declarations are processed in declaration order. Registry errors propagate
// wrapped in a *RegistrationError carrying the failing key; errors.Is still
// matches the registry sentinels. A reference that cannot be resolved after
// its value was just registered indicates a registry bug, not caller error,
// and aborts the submission with the resolve error.
//
// Returns ErrAlreadySubmitted on a second call; the register is marked
// submitted before any factory runs, so a failed submission cannot be
// retried through the same register.
func (g *Register[T]) Submit(r *Registry[T]) error {
	g.mu.Lock()
	if g.submitted {
		g.mu.Unlock()
		return ErrAlreadySubmitted
	}
	g.submitted = true
	declarations := g.declarations
	g.mu.Unlock()

	logger := observability.EnrichLogger(r.cfg.logger, r.key.String(), g.namespace)
	ctx, span := r.cfg.spans.StartSubmitSpan(context.Background(), g.namespace, r.key.String())
	observability.LogSubmitStart(logger, len(declarations))
	start := time.Now()

	err := g.submitAll(ctx, r, logger, declarations)

	r.cfg.metrics.RecordSubmit(ctx, g.namespace, len(declarations), time.Since(start), err)
	r.cfg.spans.EndSpanWithError(span, err)
	if err == nil {
		observability.LogSubmitComplete(logger, len(declarations), time.Since(start))
	}
	return err
}

// submitAll runs the factories, registers the values, and resolves the refs.
func (g *Register[T]) submitAll(ctx context.Context, r *Registry[T], logger *slog.Logger, declarations []declaration[T]) error {
	for _, d := range declarations {
		value := d.factory()
		if err := r.Register(d.key, value); err != nil {
			observability.LogSubmitError(logger, d.key.String(), err)
			return &RegistrationError{Key: d.key, Op: "register", Err: err}
		}
		r.cfg.spans.AddSpanEvent(ctx, "regkit.registered",
			attribute.String("key", d.key.String()))
	}

	// Every value above was just registered, so a miss here means the
	// registry lost a write; fail loudly rather than hand out dead refs.
	for _, d := range declarations {
		if err := d.ref.Resolve(r); err != nil {
			observability.LogSubmitError(logger, d.ref.Key().String(), err)
			return err
		}
	}
	return nil
}

// SubmitEvent extracts the target registry from a registration notification
// and submits to it. Equivalent to g.Submit(evt.Registry()).
func (g *Register[T]) SubmitEvent(evt *RegistrationEvent[T]) error {
	return g.Submit(evt.Registry())
}
