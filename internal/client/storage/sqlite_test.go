package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "profile.db")
	db, err := OpenProfileDB(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteStore(db)
}

func TestSQLiteStore_GetAbsentKey(t *testing.T) {
	s := setupStore(t)
	v, err := s.Get(context.Background(), KeyDealerToken)
	require.NoError(t, err)
	require.Equal(t, "", v)
}

func TestSQLiteStore_SetGetOverwrite(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyDealerToken, "tok-1"))
	v, err := s.Get(ctx, KeyDealerToken)
	require.NoError(t, err)
	require.Equal(t, "tok-1", v)

	require.NoError(t, s.Set(ctx, KeyDealerToken, "tok-2"))
	v, err = s.Get(ctx, KeyDealerToken)
	require.NoError(t, err)
	require.Equal(t, "tok-2", v)
}

func TestSQLiteStore_Delete(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyCurrentUser, `{"id":1}`))
	require.NoError(t, s.Delete(ctx, KeyCurrentUser))

	v, err := s.Get(ctx, KeyCurrentUser)
	require.NoError(t, err)
	require.Equal(t, "", v)

	// Deleting an absent key is not an error.
	require.NoError(t, s.Delete(ctx, KeyCurrentUser))
}

func TestSQLiteStore_KeysWithPrefix(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "saved-truck-42", "true"))
	require.NoError(t, s.Set(ctx, "saved-trailer-7", "true"))
	require.NoError(t, s.Set(ctx, KeyDealerToken, "tok"))

	keys, err := s.Keys(ctx, "saved-")
	require.NoError(t, err)
	require.Equal(t, []string{"saved-trailer-7", "saved-truck-42"}, keys)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "profile.db")

	db, err := OpenProfileDB(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, NewSQLiteStore(db).Set(ctx, KeyDealerToken, "persisted"))
	require.NoError(t, db.Close())

	db2, err := OpenProfileDB(ctx, dsn)
	require.NoError(t, err)
	defer db2.Close()

	v, err := NewSQLiteStore(db2).Get(ctx, KeyDealerToken)
	require.NoError(t, err)
	require.Equal(t, "persisted", v)
}

func TestSQLiteStore_Clear(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyDealerToken, "tok"))
	require.NoError(t, s.Set(ctx, "saved-truck-1", "true"))
	require.NoError(t, s.Clear(ctx))

	keys, err := s.Keys(ctx, "")
	require.NoError(t, err)
	require.Empty(t, keys)
}

func TestMemoryStore_MatchesContract(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	v, err := m.Get(ctx, "missing")
	require.NoError(t, err)
	require.Equal(t, "", v)

	require.NoError(t, m.Set(ctx, "saved-truck-42", "true"))
	require.NoError(t, m.Set(ctx, "saved-trailer-7", "true"))

	keys, err := m.Keys(ctx, "saved-")
	require.NoError(t, err)
	require.Equal(t, []string{"saved-trailer-7", "saved-truck-42"}, keys)

	require.NoError(t, m.Delete(ctx, "saved-truck-42"))
	v, err = m.Get(ctx, "saved-truck-42")
	require.NoError(t, err)
	require.Equal(t, "", v)
}
