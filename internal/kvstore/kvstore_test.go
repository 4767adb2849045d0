package kvstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeContract exercises the Store behavior shared by every backend.
func storeContract(t *testing.T, store Store) {
	t.Helper()

	_, err := store.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set("greeting", []byte("hello")))
	value, err := store.Get("greeting")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), value)

	// Overwrite replaces the previous value.
	require.NoError(t, store.Set("greeting", []byte("goodbye")))
	value, err = store.Get("greeting")
	require.NoError(t, err)
	assert.Equal(t, []byte("goodbye"), value)

	require.NoError(t, store.Remove("greeting"))
	_, err = store.Get("greeting")
	assert.ErrorIs(t, err, ErrNotFound)

	// Removing a missing key is not an error.
	assert.NoError(t, store.Remove("greeting"))
}

func TestMemoryStore(t *testing.T) {
	store := NewMemory()
	defer store.Close()
	storeContract(t, store)
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	store := NewMemory()
	defer store.Close()

	original := []byte("immutable")
	require.NoError(t, store.Set("key", original))
	original[0] = 'X'

	value, err := store.Get("key")
	require.NoError(t, err)
	assert.Equal(t, []byte("immutable"), value)
}

func TestSqliteStore(t *testing.T) {
	store, err := OpenSqlite(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	defer store.Close()
	storeContract(t, store)
}

func TestBadgerStore(t *testing.T) {
	store, err := OpenBadger(filepath.Join(t.TempDir(), "badger"))
	require.NoError(t, err)
	defer store.Close()
	storeContract(t, store)
}
