package regkit

import (
	"sync"
	"sync/atomic"
)

// Ref is a write-once, lazily-resolved reference to a registry value.
//
// A Ref is created unresolved by Register.Declare, bound permanently to the
// key of its declaration. The owning register resolves it during Submit;
// from that point it holds its value for good and can be read from any
// goroutine without locking.
type Ref[T comparable] struct {
	key Key

	// mu serializes the single unresolved→resolved transition.
	mu    sync.Mutex
	value atomic.Pointer[T]
}

// newRef creates an unresolved reference bound to key.
func newRef[T comparable](key Key) *Ref[T] {
	return &Ref[T]{key: key}
}

// Resolve reads the reference's value out of the registry and stores it.
//
// Returns ErrAlreadyResolved if the reference already holds a value, and
// a *RegistrationError wrapping ErrRefNotFound if the registry has no
// entry under the reference's key. Concurrent Resolve calls are mutually
// exclusive; exactly one can succeed.
func (ref *Ref[T]) Resolve(r *Registry[T]) error {
	ref.mu.Lock()
	defer ref.mu.Unlock()

	if ref.value.Load() != nil {
		return ErrAlreadyResolved
	}

	v, ok := r.Get(ref.key)
	if !ok {
		return &RegistrationError{Key: ref.key, Op: "resolve", Err: ErrRefNotFound}
	}

	ref.value.Store(&v)
	return nil
}

// Resolved reports whether the reference holds its value.
func (ref *Ref[T]) Resolved() bool {
	return ref.value.Load() != nil
}

// Get returns the resolved value.
// Returns ErrRefNotResolved if called before the owning register submitted.
func (ref *Ref[T]) Get() (T, error) {
	if p := ref.value.Load(); p != nil {
		return *p, nil
	}
	var zero T
	return zero, ErrRefNotResolved
}

// MustGet returns the resolved value, panicking if the reference is
// unresolved. Intended for use after registration is known to be complete.
func (ref *Ref[T]) MustGet() T {
	p := ref.value.Load()
	if p == nil {
		panic("regkit: reference not resolved: " + ref.key.String())
	}
	return *p
}

// Value returns the resolved value and whether it is present.
// It never fails; an unresolved reference yields the zero value and false.
func (ref *Ref[T]) Value() (T, bool) {
	if p := ref.value.Load(); p != nil {
		return *p, true
	}
	var zero T
	return zero, false
}

// Key returns the key this reference is bound to.
// Always available, independent of resolution state.
func (ref *Ref[T]) Key() Key {
	return ref.key
}
