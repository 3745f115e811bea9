// Package journal provides an append-only audit trail of registry operations.
//
// A journal records what happened to a registry: which keys were accepted,
// which registrations were rejected, and when the registry was finalized. It
// stores operation metadata only, never the registered values themselves, so
// it is a diagnostic aid rather than a persistence layer.
package journal

import (
	"errors"
	"time"
)

// Op identifies the kind of registry operation a record describes.
const (
	// OpRegister records an accepted registration.
	OpRegister = "register"

	// OpReject records a registration the registry refused.
	OpReject = "reject"

	// OpFinalize records the registry's finalization.
	OpFinalize = "finalize"
)

// Record is one journal entry.
type Record struct {
	// RegistryKey is the serialized key of the registry the operation
	// targeted.
	RegistryKey string

	// EntryKey is the serialized key of the affected entry.
	// Empty for finalize records.
	EntryKey string

	// Op is one of OpRegister, OpReject, OpFinalize.
	Op string

	// Detail carries extra context, such as the rejection reason.
	Detail string

	// Sequence orders records within a registry. Assigned by the journal
	// on append; the value supplied by the caller is ignored.
	Sequence int

	// Timestamp is when the record was appended.
	Timestamp time.Time
}

// Journal stores registry operation records.
// Implementations must be safe for concurrent use.
type Journal interface {
	// Append adds a record, assigning its sequence and timestamp.
	Append(rec Record) error

	// List returns all records for a registry, ordered by sequence.
	// Returns an empty slice (not an error) if the registry has no records.
	List(registryKey string) ([]Record, error)

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for journal operations.
var (
	// ErrClosed indicates the journal has been closed.
	ErrClosed = errors.New("journal closed")
)
