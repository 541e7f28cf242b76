package sync_test

import (
	"context"
	"sync"

	"github.com/Anisah23/lartduvraisoi-client/internal/models"
)

type mockCartAPI struct {
	GetCartFunc        func(ctx context.Context) ([]models.CartItem, error)
	AddCartItemFunc    func(ctx context.Context, artworkID string, quantity int) ([]models.CartItem, error)
	UpdateCartItemFunc func(ctx context.Context, artworkID string, quantity int) ([]models.CartItem, error)
	RemoveCartItemFunc func(ctx context.Context, artworkID string) ([]models.CartItem, error)
}

func (m *mockCartAPI) GetCart(ctx context.Context) ([]models.CartItem, error) {
	return m.GetCartFunc(ctx)
}
func (m *mockCartAPI) AddCartItem(ctx context.Context, artworkID string, quantity int) ([]models.CartItem, error) {
	return m.AddCartItemFunc(ctx, artworkID, quantity)
}
func (m *mockCartAPI) UpdateCartItem(ctx context.Context, artworkID string, quantity int) ([]models.CartItem, error) {
	return m.UpdateCartItemFunc(ctx, artworkID, quantity)
}
func (m *mockCartAPI) RemoveCartItem(ctx context.Context, artworkID string) ([]models.CartItem, error) {
	return m.RemoveCartItemFunc(ctx, artworkID)
}

type mockWishlistAPI struct {
	GetWishlistFunc        func(ctx context.Context) ([]models.Artwork, error)
	AddWishlistItemFunc    func(ctx context.Context, artworkID string) ([]models.Artwork, error)
	RemoveWishlistItemFunc func(ctx context.Context, artworkID string) ([]models.Artwork, error)
}

func (m *mockWishlistAPI) GetWishlist(ctx context.Context) ([]models.Artwork, error) {
	return m.GetWishlistFunc(ctx)
}
func (m *mockWishlistAPI) AddWishlistItem(ctx context.Context, artworkID string) ([]models.Artwork, error) {
	return m.AddWishlistItemFunc(ctx, artworkID)
}
func (m *mockWishlistAPI) RemoveWishlistItem(ctx context.Context, artworkID string) ([]models.Artwork, error) {
	return m.RemoveWishlistItemFunc(ctx, artworkID)
}

type mockOrdersAPI struct {
	GetOrdersFunc         func(ctx context.Context) ([]models.Order, error)
	UpdateOrderStatusFunc func(ctx context.Context, orderID string, status models.OrderStatus) error
}

func (m *mockOrdersAPI) GetOrders(ctx context.Context) ([]models.Order, error) {
	return m.GetOrdersFunc(ctx)
}
func (m *mockOrdersAPI) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	return m.UpdateOrderStatusFunc(ctx, orderID, status)
}

// recorder captures notifications so tests can assert on them separately
// from state.
type recorder struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (r *recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, msg)
}

func (r *recorder) Failure(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, msg)
}

// stubSession is a fixed login state.
type stubSession struct {
	loggedIn bool
}

func (s *stubSession) LoggedIn() bool { return s.loggedIn }

// memStore is an in-memory fallback store that counts writes.
type memStore struct {
	items   []models.Artwork
	saves   int
	loadErr error
	saveErr error
}

func (m *memStore) Load() ([]models.Artwork, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]models.Artwork(nil), m.items...), nil
}

func (m *memStore) Save(items []models.Artwork) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.items = append([]models.Artwork(nil), items...)
	return nil
}
