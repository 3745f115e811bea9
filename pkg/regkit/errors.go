package regkit

import (
	"errors"
	"fmt"
)

// Sentinel errors for registry lifecycle and conflicts.
var (
	// ErrRegistryFinalized indicates Register() was called on a finalized registry.
	ErrRegistryFinalized = errors.New("registry is finalized")

	// ErrAlreadyFinalized indicates Finalize() was called twice.
	ErrAlreadyFinalized = errors.New("registry already finalized")

	// ErrDuplicateKey indicates the key is already bound to a value.
	ErrDuplicateKey = errors.New("key already registered")

	// ErrDuplicateValue indicates the value is already bound to a key.
	ErrDuplicateValue = errors.New("value already registered")
)

// Sentinel errors for registration batches.
var (
	// ErrAlreadySubmitted indicates Declare() or Submit() was called after
	// the batch had already been submitted.
	ErrAlreadySubmitted = errors.New("register already submitted")

	// ErrDuplicateName indicates a name was declared twice in the same batch.
	ErrDuplicateName = errors.New("name already declared in this register")
)

// Sentinel errors for reference resolution.
var (
	// ErrAlreadyResolved indicates Resolve() was called on a resolved reference.
	ErrAlreadyResolved = errors.New("reference already resolved")

	// ErrRefNotResolved indicates Get() was called before resolution.
	ErrRefNotResolved = errors.New("reference not resolved")

	// ErrRefNotFound indicates the registry holds no value under the
	// reference's key.
	ErrRefNotFound = errors.New("registry has no entry for reference")
)

// KeyError reports a malformed namespace, name, or serialized key.
// It is always detected at construction or parse time.
type KeyError struct {
	// Input is the offending string.
	Input string
	// Reason describes the rule that was violated.
	Reason string
}

// Error implements the error interface.
func (e *KeyError) Error() string {
	return fmt.Sprintf("invalid key %q: %s", e.Input, e.Reason)
}

// RegistrationError wraps a registry error with the key being registered.
// It is returned by Register.Submit so callers can tell which declaration
// failed; Unwrap keeps errors.Is matching against the registry sentinels.
type RegistrationError struct {
	// Key is the key whose registration failed.
	Key Key
	// Op is the operation that failed ("register", "resolve").
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *RegistrationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *RegistrationError) Unwrap() error {
	return e.Err
}
