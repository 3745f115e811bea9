package journal

import (
	"sync"
	"time"
)

// MemoryJournal is an in-memory journal for testing and examples.
// Records are lost when the process exits.
type MemoryJournal struct {
	mu      sync.RWMutex
	records map[string][]Record // registry key -> ordered records
	closed  bool
}

// NewMemoryJournal creates a new in-memory journal.
func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{
		records: make(map[string][]Record),
	}
}

// Append implements Journal.
func (m *MemoryJournal) Append(rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	rec.Sequence = len(m.records[rec.RegistryKey]) + 1
	rec.Timestamp = time.Now().UTC()
	m.records[rec.RegistryKey] = append(m.records[rec.RegistryKey], rec)
	return nil
}

// List implements Journal.
func (m *MemoryJournal) List(registryKey string) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}

	recs := m.records[registryKey]

	// Return a copy so callers cannot mutate internal state
	out := make([]Record, len(recs))
	copy(out, recs)
	return out, nil
}

// Close implements Journal.
func (m *MemoryJournal) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.records = nil
	return nil
}

// Len returns the total number of records across all registries.
// Useful for testing.
func (m *MemoryJournal) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, recs := range m.records {
		count += len(recs)
	}
	return count
}
