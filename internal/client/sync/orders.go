package sync

import (
	"context"
	stdsync "sync"

	"github.com/Anisah23/lartduvraisoi-client/internal/models"
	"go.uber.org/zap"
)

// OrdersAPI defines the remote operations the orders synchronizer needs.
type OrdersAPI interface {
	GetOrders(ctx context.Context) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) error
}

// Orders mirrors the order list for the current session. The server scopes
// the listing by role and owns the status state machine; this synchronizer
// only requests transitions and renders what comes back.
type Orders struct {
	api OrdersAPI
	log *zap.Logger

	mu    stdsync.Mutex
	state State
	items []models.Order
}

// NewOrders constructs an orders synchronizer.
func NewOrders(api OrdersAPI, log *zap.Logger) *Orders {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orders{api: api, log: log}
}

// Fetch loads the order list. Failures are logged and swallowed, leaving
// the previous snapshot in place.
func (o *Orders) Fetch(ctx context.Context) {
	o.mu.Lock()
	o.state = StateLoading
	o.mu.Unlock()

	items, err := o.api.GetOrders(ctx)
	if err != nil {
		o.log.Error("failed to fetch orders", zap.Error(err))
		o.mu.Lock()
		o.state = StateLoaded
		o.mu.Unlock()
		return
	}
	if items == nil {
		items = []models.Order{}
	}

	o.mu.Lock()
	o.items = items
	o.state = StateLoaded
	o.mu.Unlock()
}

// UpdateStatus requests a status transition, then re-fetches the whole list
// instead of patching the one entry locally, so the mirror always reflects
// the server's decision. This is the one operation whose error propagates
// to the caller.
func (o *Orders) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	if err := o.api.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return err
	}
	o.Fetch(ctx)
	return nil
}

// Reset empties the order list without touching the server, used on logout.
func (o *Orders) Reset() {
	o.mu.Lock()
	o.items = nil
	o.state = StateUnloaded
	o.mu.Unlock()
}

// Items returns a copy of the current order list.
func (o *Orders) Items() []models.Order {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]models.Order(nil), o.items...)
}

// Get returns the order with the given ID, or nil.
func (o *Orders) Get(orderID string) *models.Order {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, order := range o.items {
		if order.ID == orderID {
			cp := order
			return &cp
		}
	}
	return nil
}

// State reports how far the order list has loaded.
func (o *Orders) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}
