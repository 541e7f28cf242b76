package sync

import (
	"context"
	stdsync "sync"

	"github.com/Anisah23/lartduvraisoi-client/internal/models"
	"go.uber.org/zap"
)

// WishlistAPI defines the remote operations the wishlist synchronizer
// needs. Mutations return the full resulting wishlist.
type WishlistAPI interface {
	GetWishlist(ctx context.Context) ([]models.Artwork, error)
	AddWishlistItem(ctx context.Context, artworkID string) ([]models.Artwork, error)
	RemoveWishlistItem(ctx context.Context, artworkID string) ([]models.Artwork, error)
}

// FallbackStore persists the wishlist locally. It is the sole source of
// truth while logged out and the backstop when a remote call fails.
type FallbackStore interface {
	Load() ([]models.Artwork, error)
	Save(items []models.Artwork) error
}

// Wishlist mirrors the server-side wishlist when the session is
// authenticated and the fallback store otherwise. Remote failures fall
// through to the local path; the caller is not told the remote write failed.
type Wishlist struct {
	api      WishlistAPI
	store    FallbackStore
	sessions SessionReader
	log      *zap.Logger

	mu    stdsync.Mutex
	state State
	items []models.Artwork
}

// NewWishlist constructs a wishlist synchronizer seeded from the fallback
// store, so a mutation issued before the first Fetch still sees the
// persisted entries instead of overwriting them with just its own delta.
func NewWishlist(api WishlistAPI, store FallbackStore, sessions SessionReader, log *zap.Logger) *Wishlist {
	if log == nil {
		log = zap.NewNop()
	}
	w := &Wishlist{api: api, store: store, sessions: sessions, log: log}
	items, err := store.Load()
	if err != nil {
		log.Warn("failed to seed wishlist from local store", zap.Error(err))
		return w
	}
	w.items = items
	return w
}

// Fetch loads the wishlist: from the API when authenticated (falling back
// to the local store on failure), from the local store otherwise.
func (w *Wishlist) Fetch(ctx context.Context) {
	w.mu.Lock()
	w.state = StateLoading
	w.mu.Unlock()

	if w.sessions.LoggedIn() {
		remote, err := w.api.GetWishlist(ctx)
		if err == nil {
			w.replace(remote)
			return
		}
		w.log.Error("failed to fetch wishlist, falling back to local store", zap.Error(err))
	}

	items, err := w.store.Load()
	if err != nil {
		w.log.Error("failed to load local wishlist", zap.Error(err))
		items = []models.Artwork{}
	}
	w.replace(items)
}

// Add puts an artwork on the wishlist. When authenticated the remote add is
// attempted first and, on success, the server's wishlist replaces the local
// one without touching the fallback store.
//
// TODO: decide whether a successful remote add should also refresh the
// fallback store; today a later logout can read a stale local copy.
func (w *Wishlist) Add(ctx context.Context, artwork models.Artwork) error {
	if w.sessions.LoggedIn() {
		items, err := w.api.AddWishlistItem(ctx, artwork.ID)
		if err == nil {
			w.replace(items)
			return nil
		}
		w.log.Error("failed to add to remote wishlist, keeping a local copy", zap.Error(err))
	}

	w.mu.Lock()
	w.items = append(w.items, artwork)
	items := append([]models.Artwork(nil), w.items...)
	w.state = StateLoaded
	w.mu.Unlock()
	return w.store.Save(items)
}

// Remove takes an artwork off the wishlist, remote-first when authenticated
// with the same local fallback as Add.
func (w *Wishlist) Remove(ctx context.Context, artworkID string) error {
	if w.sessions.LoggedIn() {
		items, err := w.api.RemoveWishlistItem(ctx, artworkID)
		if err == nil {
			w.replace(items)
			return nil
		}
		w.log.Error("failed to remove from remote wishlist, updating local copy", zap.Error(err))
	}

	w.mu.Lock()
	kept := w.items[:0]
	for _, item := range w.items {
		if item.ID != artworkID {
			kept = append(kept, item)
		}
	}
	w.items = kept
	items := append([]models.Artwork(nil), w.items...)
	w.state = StateLoaded
	w.mu.Unlock()
	return w.store.Save(items)
}

// Contains reports whether the artwork is on the current wishlist.
func (w *Wishlist) Contains(artworkID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, item := range w.items {
		if item.ID == artworkID {
			return true
		}
	}
	return false
}

// Count is the number of wishlisted artworks.
func (w *Wishlist) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.items)
}

// Items returns a copy of the current wishlist.
func (w *Wishlist) Items() []models.Artwork {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]models.Artwork(nil), w.items...)
}

// State reports how far the wishlist has loaded.
func (w *Wishlist) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *Wishlist) replace(items []models.Artwork) {
	if items == nil {
		items = []models.Artwork{}
	}
	w.mu.Lock()
	w.items = items
	w.state = StateLoaded
	w.mu.Unlock()
}
