package journal_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/alchemist-go/internal/domain/journal"
)

func TestNewEntry_Validation(t *testing.T) {
	// Act
	_, badKind := journal.NewEntry(time.Now(), journal.Kind("TRANSMUTE"), "elixir", 1, 1, nil)
	_, badSubstance := journal.NewEntry(time.Now(), journal.KindMake, "", 1, 1, nil)

	// Assert
	assert.Error(t, badKind)
	assert.Error(t, badSubstance)
}

func TestEntry_DeltasAreCopied(t *testing.T) {
	// Arrange
	deltas := map[string]float64{"stardust": -2}
	entry, err := journal.NewEntry(time.Now(), journal.KindMake, "elixir", 1, 1, deltas)
	require.NoError(t, err)

	// Act: mutate both the input map and a returned copy
	deltas["stardust"] = 99
	got := entry.Deltas()
	got["stardust"] = -100

	// Assert
	assert.Equal(t, -2.0, entry.Deltas()["stardust"])
}

func TestJournal_RecordAndFilter(t *testing.T) {
	// Arrange
	j := journal.NewJournal()
	add, err := journal.NewEntry(time.Now(), journal.KindAdd, "stardust", 5, 5, map[string]float64{"stardust": 5})
	require.NoError(t, err)
	made, err := journal.NewEntry(time.Now(), journal.KindMake, "elixir", 3, 2.5, nil)
	require.NoError(t, err)
	declined, err := journal.NewEntry(time.Now(), journal.KindMake, "elixir", 4, 0, nil)
	require.NoError(t, err)

	// Act
	j.Record(add)
	j.Record(made)
	j.Record(declined)

	// Assert
	assert.Equal(t, 3, j.Len())
	makes := j.ByKind(journal.KindMake)
	require.Len(t, makes, 2)
	assert.Equal(t, 2.5, makes[0].Applied())
	assert.Equal(t, 0.0, makes[1].Applied(), "declined requests stay visible")
	assert.False(t, makes[0].ID().IsZero())
	assert.NotEqual(t, makes[0].ID(), makes[1].ID())
}
