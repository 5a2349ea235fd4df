package journal

import (
	"fmt"

	"github.com/google/uuid"
)

// EntryID is a value object identifying a journal entry
type EntryID struct {
	value string
}

// NewEntryID creates an EntryID with a generated UUID
func NewEntryID() EntryID {
	return EntryID{value: uuid.New().String()}
}

// NewEntryIDFromString creates an EntryID from an existing UUID string
func NewEntryIDFromString(id string) (EntryID, error) {
	if id == "" {
		return EntryID{}, fmt.Errorf("entry_id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return EntryID{}, fmt.Errorf("invalid entry_id format: %w", err)
	}
	return EntryID{value: id}, nil
}

// Value returns the string value of the EntryID
func (id EntryID) Value() string {
	return id.value
}

// String returns a string representation of the EntryID
func (id EntryID) String() string {
	return id.value
}

// IsZero checks if the EntryID is the zero value (uninitialized)
func (id EntryID) IsZero() bool {
	return id.value == ""
}
