package journal

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteTest(t *testing.T) *SQLiteJournal {
	t.Helper()
	j, err := NewSQLiteJournal(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestSQLiteAppendAndList(t *testing.T) {
	j := newSQLiteTest(t)

	require.NoError(t, j.Append(Record{
		RegistryKey: "core:items",
		EntryKey:    "mods:sword",
		Op:          OpRegister,
	}))
	require.NoError(t, j.Append(Record{
		RegistryKey: "core:items",
		EntryKey:    "mods:sword",
		Op:          OpReject,
		Detail:      "key already registered",
	}))
	require.NoError(t, j.Append(Record{
		RegistryKey: "core:items",
		Op:          OpFinalize,
	}))

	recs, err := j.List("core:items")
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, OpRegister, recs[0].Op)
	assert.Equal(t, "mods:sword", recs[0].EntryKey)
	assert.Equal(t, 1, recs[0].Sequence)
	assert.False(t, recs[0].Timestamp.IsZero())

	assert.Equal(t, OpReject, recs[1].Op)
	assert.Equal(t, "key already registered", recs[1].Detail)
	assert.Equal(t, 2, recs[1].Sequence)

	assert.Equal(t, OpFinalize, recs[2].Op)
	assert.Equal(t, 3, recs[2].Sequence)
}

func TestSQLiteListEmpty(t *testing.T) {
	j := newSQLiteTest(t)

	recs, err := j.List("core:items")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestSQLiteIsolationBetweenRegistries(t *testing.T) {
	j := newSQLiteTest(t)

	require.NoError(t, j.Append(Record{RegistryKey: "core:items", Op: OpFinalize}))
	require.NoError(t, j.Append(Record{RegistryKey: "core:blocks", Op: OpFinalize}))

	items, err := j.List("core:items")
	require.NoError(t, err)
	require.Len(t, items, 1)

	// Sequences are scoped per registry.
	blocks, err := j.List("core:blocks")
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, 1, blocks[0].Sequence)
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	j, err := NewSQLiteJournal(path)
	require.NoError(t, err)
	require.NoError(t, j.Append(Record{RegistryKey: "core:items", EntryKey: "mods:sword", Op: OpRegister}))
	require.NoError(t, j.Close())

	reopened, err := NewSQLiteJournal(path)
	require.NoError(t, err)
	defer reopened.Close()

	recs, err := reopened.List("core:items")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "mods:sword", recs[0].EntryKey)
}

func TestSQLiteClosed(t *testing.T) {
	j, err := NewSQLiteJournal(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	require.NoError(t, j.Close())

	assert.ErrorIs(t, j.Append(Record{RegistryKey: "core:items"}), ErrClosed)

	_, err = j.List("core:items")
	assert.ErrorIs(t, err, ErrClosed)

	// Closing twice is harmless.
	require.NoError(t, j.Close())
}
