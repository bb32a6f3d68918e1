package kvstore

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE kv (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return NewSQLiteStore(db)
}

// runStoreContract checks the Store behavior every backend must satisfy.
func runStoreContract(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("get missing key returns nil nil", func(t *testing.T) {
		v, err := s.Get(ctx, "absent")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "k1", []byte(`{"a":1}`)))
		v, err := s.Get(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"a":1}`), v)
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "k1", []byte(`{"a":2}`)))
		v, err := s.Get(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"a":2}`), v)
	})

	t.Run("delete then get", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "k2", []byte("x")))
		require.NoError(t, s.Delete(ctx, "k2"))
		v, err := s.Get(ctx, "k2")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("delete missing key is a no-op", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, "never-existed"))
	})

	t.Run("list", func(t *testing.T) {
		require.NoError(t, s.Clear(ctx))
		require.NoError(t, s.Set(ctx, "a", []byte("1")))
		require.NoError(t, s.Set(ctx, "b", []byte("2")))
		all, err := s.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string][]byte{"a": []byte("1"), "b": []byte("2")}, all)
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, s.Clear(ctx))
		all, err := s.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestMemoryStore_Contract(t *testing.T) {
	runStoreContract(t, NewMemoryStore())
}

func TestSQLiteStore_Contract(t *testing.T) {
	runStoreContract(t, setupSQLite(t))
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, "k", []byte("abc")))

	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	v[0] = 'z'

	again, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestOpenSQLite_RunsMigrations(t *testing.T) {
	ctx := context.Background()
	store, db, err := OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, store.Set(ctx, "k", []byte("v")))
	v, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)
}
