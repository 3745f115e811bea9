package regkit

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/randalmurphal/regkit/pkg/regkit/journal"
	"github.com/randalmurphal/regkit/pkg/regkit/observability"
)

// Entry is one Key→value binding from a registry snapshot.
type Entry[T comparable] struct {
	Key   Key
	Value T
}

// Registry is a thread-safe bijective store of Key→value bindings with a
// two-phase lifecycle: open, then finalized.
//
// While open, entries can be registered from any goroutine; registrations
// are linearizable with respect to each other. Finalize flips the registry
// to its terminal immutable state. After Finalize returns, no writer can
// exist, so every read is served off the bare maps with no lock at all;
// readers pay only an atomic flag load.
//
// The bijection is enforced in both directions: a key binds at most one
// value and a value binds at most one key. The value type is constrained
// to comparable so the reverse index works; pointer values get the usual
// Go identity semantics, which is the expected shape for plugin objects.
//
// Example:
//
//	reg := regkit.NewRegistry[*Item](regkit.MustKey("core", "items"))
//	if err := reg.Register(regkit.MustKey("mods", "sword"), sword); err != nil {
//	    return err
//	}
//	if err := reg.Finalize(); err != nil {
//	    return err
//	}
//	item, ok := reg.Get(regkit.MustKey("mods", "sword"))
type Registry[T comparable] struct {
	key Key
	cfg registryConfig

	mu        sync.RWMutex
	byKey     map[Key]T
	byValue   map[T]Key
	finalized atomic.Bool
}

// NewRegistry creates an open registry identified by key.
func NewRegistry[T comparable](key Key, opts ...RegistryOption) *Registry[T] {
	cfg := defaultRegistryConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Registry[T]{
		key:     key,
		cfg:     cfg,
		byKey:   make(map[Key]T),
		byValue: make(map[T]Key),
	}
}

// Key returns the unique key identifying this registry.
func (r *Registry[T]) Key() Key {
	return r.key
}

// Register binds key to value.
//
// Returns ErrRegistryFinalized if the registry is finalized, ErrDuplicateKey
// if the key is already bound, and ErrDuplicateValue if the value is already
// bound under another key. On any error the registry is unchanged: both
// directions of the bijection are updated together under the write lock, so
// no reader ever observes a half-inserted pair.
func (r *Registry[T]) Register(key Key, value T) error {
	if key.IsZero() {
		return &KeyError{Input: "", Reason: "zero key"}
	}
	if r.finalized.Load() {
		return r.reject(key, ErrRegistryFinalized)
	}

	r.mu.Lock()
	err := r.registerLocked(key, value)
	r.mu.Unlock()

	if err != nil {
		return r.reject(key, err)
	}

	observability.LogRegistration(r.cfg.logger, r.key.String(), key.String())
	r.cfg.metrics.RecordRegistration(context.Background(), r.key.String(), nil)
	r.appendJournal(journal.Record{
		RegistryKey: r.key.String(),
		EntryKey:    key.String(),
		Op:          journal.OpRegister,
	})
	return nil
}

// registerLocked performs the bijective insert. Caller holds the write lock.
func (r *Registry[T]) registerLocked(key Key, value T) error {
	// Finalize may have won the lock race; re-check under the lock.
	if r.finalized.Load() {
		return ErrRegistryFinalized
	}
	if _, exists := r.byKey[key]; exists {
		return ErrDuplicateKey
	}
	if _, exists := r.byValue[value]; exists {
		return ErrDuplicateValue
	}

	r.byKey[key] = value
	r.byValue[value] = key
	return nil
}

// reject records a refused registration and returns the error.
func (r *Registry[T]) reject(key Key, err error) error {
	observability.LogConflict(r.cfg.logger, r.key.String(), key.String(), err)
	r.cfg.metrics.RecordRegistration(context.Background(), r.key.String(), err)
	r.appendJournal(journal.Record{
		RegistryKey: r.key.String(),
		EntryKey:    key.String(),
		Op:          journal.OpReject,
		Detail:      err.Error(),
	})
	return err
}

// Finalize closes the registry, making it immutable for the rest of the
// process. Returns ErrAlreadyFinalized on a second call.
//
// The flag flips under the write lock, after every in-flight registration
// has completed. Readers that observe the flag therefore observe every
// registered entry, and from then on read without locking.
func (r *Registry[T]) Finalize() error {
	r.mu.Lock()
	if r.finalized.Load() {
		r.mu.Unlock()
		return ErrAlreadyFinalized
	}
	r.finalized.Store(true)
	entries := len(r.byKey)
	r.mu.Unlock()

	observability.LogFinalize(r.cfg.logger, r.key.String(), entries)
	r.cfg.metrics.RecordFinalize(context.Background(), r.key.String(), entries)
	r.appendJournal(journal.Record{
		RegistryKey: r.key.String(),
		Op:          journal.OpFinalize,
	})
	return nil
}

// Finalized reports whether the registry has been finalized.
func (r *Registry[T]) Finalized() bool {
	return r.finalized.Load()
}

// Get returns the value bound to key and whether it exists.
func (r *Registry[T]) Get(key Key) (T, bool) {
	if r.finalized.Load() {
		v, ok := r.byKey[key]
		return v, ok
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.byKey[key]
	return v, ok
}

// GetKey returns the key bound to value and whether it exists.
func (r *Registry[T]) GetKey(value T) (Key, bool) {
	if r.finalized.Load() {
		k, ok := r.byValue[value]
		return k, ok
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	k, ok := r.byValue[value]
	return k, ok
}

// ContainsKey reports whether key is bound in the registry.
func (r *Registry[T]) ContainsKey(key Key) bool {
	_, ok := r.Get(key)
	return ok
}

// ContainsValue reports whether value is bound in the registry.
func (r *Registry[T]) ContainsValue(value T) bool {
	_, ok := r.GetKey(value)
	return ok
}

// IsEmpty reports whether the registry has no entries.
func (r *Registry[T]) IsEmpty() bool {
	return r.Len() == 0
}

// Len returns the number of entries in the registry.
func (r *Registry[T]) Len() int {
	if r.finalized.Load() {
		return len(r.byKey)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byKey)
}

// Keys returns a snapshot of all keys. The order is not guaranteed.
// The returned slice is the caller's to keep; mutating it does not
// affect the registry.
func (r *Registry[T]) Keys() []Key {
	unlock := r.readLock()
	defer unlock()

	keys := make([]Key, 0, len(r.byKey))
	for k := range r.byKey {
		keys = append(keys, k)
	}
	return keys
}

// Values returns a snapshot of all values. The order is not guaranteed.
func (r *Registry[T]) Values() []T {
	unlock := r.readLock()
	defer unlock()

	values := make([]T, 0, len(r.byKey))
	for _, v := range r.byKey {
		values = append(values, v)
	}
	return values
}

// Entries returns a snapshot of all key→value bindings.
// The order is not guaranteed.
func (r *Registry[T]) Entries() []Entry[T] {
	unlock := r.readLock()
	defer unlock()

	entries := make([]Entry[T], 0, len(r.byKey))
	for k, v := range r.byKey {
		entries = append(entries, Entry[T]{Key: k, Value: v})
	}
	return entries
}

// readLock acquires the read lock unless the registry is finalized,
// returning the matching release function.
func (r *Registry[T]) readLock() func() {
	if r.finalized.Load() {
		return func() {}
	}
	r.mu.RLock()
	return r.mu.RUnlock
}

// appendJournal records an operation, reporting failures to the logger.
func (r *Registry[T]) appendJournal(rec journal.Record) {
	if r.cfg.journal == nil {
		return
	}
	if err := r.cfg.journal.Append(rec); err != nil {
		observability.LogJournalError(r.cfg.logger, r.key.String(), err)
	}
}
