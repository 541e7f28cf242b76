package sync

import (
	"context"
	stdsync "sync"

	"github.com/Anisah23/lartduvraisoi-client/internal/models"
	"go.uber.org/zap"
)

// CartAPI defines the remote operations the cart synchronizer needs. Every
// mutation returns the full resulting cart.
type CartAPI interface {
	GetCart(ctx context.Context) ([]models.CartItem, error)
	AddCartItem(ctx context.Context, artworkID string, quantity int) ([]models.CartItem, error)
	UpdateCartItem(ctx context.Context, artworkID string, quantity int) ([]models.CartItem, error)
	RemoveCartItem(ctx context.Context, artworkID string) ([]models.CartItem, error)
}

// Cart mirrors the server-side cart. Mutations go remote-first: on success
// the local collection is replaced with the server's response, on failure it
// is left untouched. Fetch fails open to an empty cart so the surface always
// has something to render.
type Cart struct {
	api    CartAPI
	notify Notifier
	log    *zap.Logger

	mu    stdsync.Mutex
	state State
	items []models.CartItem
}

// NewCart constructs a cart synchronizer. notify may be nil.
func NewCart(api CartAPI, notify Notifier, log *zap.Logger) *Cart {
	if notify == nil {
		notify = NopNotifier{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Cart{api: api, notify: notify, log: log}
}

// Fetch loads the authoritative cart. A failed fetch is recovered locally by
// substituting an empty cart; the error is never surfaced.
func (c *Cart) Fetch(ctx context.Context) {
	c.mu.Lock()
	c.state = StateLoading
	c.mu.Unlock()

	items, err := c.api.GetCart(ctx)
	if err != nil {
		c.log.Error("failed to fetch cart", zap.Error(err))
		items = []models.CartItem{}
	}

	c.mu.Lock()
	c.items = items
	c.state = StateLoaded
	c.mu.Unlock()
}

// Add puts an artwork in the cart. On failure the local cart is unchanged.
func (c *Cart) Add(ctx context.Context, artworkID string, quantity int) error {
	items, err := c.api.AddCartItem(ctx, artworkID, quantity)
	if err != nil {
		c.notify.Failure("Failed to add to cart")
		return err
	}
	c.replace(items)
	c.notify.Success("Added to cart")
	return nil
}

// SetQuantity changes the quantity of one line. Quantity 0 removes the line
// server-side; the request is the same shape either way, only the
// notification differs.
func (c *Cart) SetQuantity(ctx context.Context, artworkID string, quantity int) error {
	items, err := c.api.UpdateCartItem(ctx, artworkID, quantity)
	if err != nil {
		c.notify.Failure("Failed to update cart")
		return err
	}
	c.replace(items)
	if quantity == 0 {
		c.notify.Success("Removed from cart")
	} else {
		c.notify.Success("Cart updated")
	}
	return nil
}

// Remove deletes one line from the cart.
func (c *Cart) Remove(ctx context.Context, artworkID string) error {
	items, err := c.api.RemoveCartItem(ctx, artworkID)
	if err != nil {
		c.notify.Failure("Failed to remove from cart")
		return err
	}
	c.replace(items)
	c.notify.Success("Removed from cart")
	return nil
}

// Clear removes every line, one remove at a time. The removals are issued
// sequentially so only one mutation of the server-side cart is ever in
// flight. Individual failures are ignored; the local cart always ends empty.
func (c *Cart) Clear(ctx context.Context) {
	c.mu.Lock()
	ids := make([]string, 0, len(c.items))
	for _, item := range c.items {
		ids = append(ids, item.ArtworkID)
	}
	c.mu.Unlock()

	for _, id := range ids {
		if err := c.Remove(ctx, id); err != nil {
			c.log.Warn("failed to remove cart item during clear", zap.String("artwork_id", id), zap.Error(err))
		}
	}

	c.mu.Lock()
	c.items = []models.CartItem{}
	c.state = StateLoaded
	c.mu.Unlock()
	c.notify.Success("Cart cleared")
}

// Reset empties the cart without touching the server, used on logout.
func (c *Cart) Reset() {
	c.mu.Lock()
	c.items = nil
	c.state = StateUnloaded
	c.mu.Unlock()
}

func (c *Cart) replace(items []models.CartItem) {
	c.mu.Lock()
	c.items = items
	c.state = StateLoaded
	c.mu.Unlock()
}

// Items returns a copy of the current cart lines.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.CartItem(nil), c.items...)
}

// State reports how far the cart has loaded.
func (c *Cart) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Count is the sum of line quantities, recomputed on every call.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// Total is the sum of unit price times quantity, recomputed on every call.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0.0
	for _, item := range c.items {
		total += item.Artwork.Price * float64(item.Quantity)
	}
	return total
}
