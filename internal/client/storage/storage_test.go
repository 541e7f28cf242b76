package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Anisah23/lartduvraisoi-client/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlistStore_MissingFileIsEmpty(t *testing.T) {
	store := NewWishlistStore(filepath.Join(t.TempDir(), "wishlist.json"))
	items, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestWishlistStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wishlist.json")
	store := NewWishlistStore(path)

	want := []models.Artwork{
		{ID: "7", Title: "Nocturne", Price: 100, Artist: "R. Doe"},
		{ID: "9", Title: "Dawn", Price: 40},
	}
	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWishlistStore_SaveNilWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wishlist.json")
	store := NewWishlistStore(path)
	require.NoError(t, store.Save(nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestWishlistStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wishlist.json")
	require.NoError(t, os.WriteFile(path, []byte("not-json"), 0600))

	_, err := NewWishlistStore(path).Load()
	assert.Error(t, err)
}

func TestToken_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")

	token, err := LoadToken(path)
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, SaveToken(path, "secret"))
	token, err = LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "secret", token)

	require.NoError(t, SaveToken(path, ""))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
