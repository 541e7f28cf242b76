// Package storage holds the client-side persisted state: the wishlist
// fallback file and the auth token.
package storage

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/Anisah23/lartduvraisoi-client/internal/models"
)

// WishlistStore persists the wishlist as one JSON document on disk. It is
// the source of truth while the user is logged out and the backstop when a
// remote wishlist call fails.
type WishlistStore struct {
	path string
	mu   sync.Mutex
}

// NewWishlistStore returns a store backed by the file at path.
func NewWishlistStore(path string) *WishlistStore {
	return &WishlistStore{path: path}
}

// Load reads the persisted wishlist. A missing file is an empty wishlist.
func (s *WishlistStore) Load() ([]models.Artwork, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Artwork{}, nil
		}
		return nil, err
	}
	defer f.Close()

	var items []models.Artwork
	if err := json.NewDecoder(f).Decode(&items); err != nil {
		return nil, err
	}
	return items, nil
}

// Save replaces the persisted wishlist with items.
func (s *WishlistStore) Save(items []models.Artwork) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()
	if items == nil {
		items = []models.Artwork{}
	}
	return json.NewEncoder(f).Encode(items)
}
