package journal

import (
	"fmt"
	"time"
)

// Kind classifies a journal entry by the operation that produced it
type Kind string

const (
	// KindAdd records a direct stock addition
	KindAdd Kind = "ADD"

	// KindMake records a production request, including declined ones
	KindMake Kind = "MAKE"
)

// IsValid reports whether the kind is one of the known values
func (k Kind) IsValid() bool {
	return k == KindAdd || k == KindMake
}

// Entry is an immutable record of one inventory mutation. Requested holds the
// amount asked for, Applied the amount actually added or produced - a Make
// that degraded to zero is still recorded so declined requests stay visible.
type Entry struct {
	id        EntryID
	timestamp time.Time
	kind      Kind
	substance string
	requested float64
	applied   float64
	deltas    map[string]float64
}

// NewEntry creates a journal entry with validation
func NewEntry(timestamp time.Time, kind Kind, substance string, requested, applied float64, deltas map[string]float64) (*Entry, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid journal entry kind: %s", kind)
	}
	if substance == "" {
		return nil, fmt.Errorf("journal entry substance cannot be empty")
	}

	copied := make(map[string]float64, len(deltas))
	for name, delta := range deltas {
		copied[name] = delta
	}

	return &Entry{
		id:        NewEntryID(),
		timestamp: timestamp,
		kind:      kind,
		substance: substance,
		requested: requested,
		applied:   applied,
		deltas:    copied,
	}, nil
}

// ID returns the entry's unique identifier
func (e *Entry) ID() EntryID {
	return e.id
}

// Timestamp returns when the operation was recorded
func (e *Entry) Timestamp() time.Time {
	return e.timestamp
}

// Kind returns the operation kind
func (e *Entry) Kind() Kind {
	return e.kind
}

// Substance returns the substance the operation targeted
func (e *Entry) Substance() string {
	return e.substance
}

// Requested returns the quantity asked for
func (e *Entry) Requested() float64 {
	return e.requested
}

// Applied returns the quantity actually added or produced
func (e *Entry) Applied() float64 {
	return e.applied
}

// Deltas returns a copy of the per-substance stock changes
func (e *Entry) Deltas() map[string]float64 {
	deltas := make(map[string]float64, len(e.deltas))
	for name, delta := range e.deltas {
		deltas[name] = delta
	}
	return deltas
}
