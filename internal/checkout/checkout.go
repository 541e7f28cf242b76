// Package checkout computes order summaries and drives the two-step
// checkout flow: initialize a payment intent, then place the order.
package checkout

import (
	"context"
	"fmt"

	"github.com/Anisah23/lartduvraisoi-client/internal/models"
	"go.uber.org/zap"
)

const (
	// freeShippingThreshold is the subtotal above which shipping is free.
	freeShippingThreshold = 500.0
	// flatShippingRate applies to any non-empty cart under the threshold.
	flatShippingRate = 50.0
	// taxRate is applied to the subtotal.
	taxRate = 0.10
)

// Summary is the cost breakdown of a cart at checkout.
type Summary struct {
	Subtotal float64
	Shipping float64
	Tax      float64
	Total    float64
}

// Summarize computes the checkout summary for the given cart lines.
// Shipping is free on an empty cart and above the free-shipping threshold,
// otherwise a flat rate; tax is 10% of the subtotal.
func Summarize(items []models.CartItem) Summary {
	var s Summary
	for _, item := range items {
		s.Subtotal += item.Artwork.Price * float64(item.Quantity)
	}
	if s.Subtotal > 0 && s.Subtotal <= freeShippingThreshold {
		s.Shipping = flatShippingRate
	}
	s.Tax = s.Subtotal * taxRate
	s.Total = s.Subtotal + s.Shipping + s.Tax
	return s
}

// FreeShippingGap is how much more the subtotal needs before shipping is
// free; zero when shipping already is.
func (s Summary) FreeShippingGap() float64 {
	if s.Subtotal > 0 && s.Subtotal < freeShippingThreshold {
		return freeShippingThreshold - s.Subtotal
	}
	return 0
}

// API defines the remote operations the checkout flow needs.
type API interface {
	CreatePaymentIntent(ctx context.Context, amount float64, currency, description string) (*models.PaymentIntent, error)
	CreateOrder(ctx context.Context, items []models.OrderItem, shipping models.ShippingDetails, totalAmount float64) (*models.Order, error)
}

// Checkout drives a purchase of the current cart.
type Checkout struct {
	api API
	log *zap.Logger
}

// New constructs a Checkout.
func New(api API, log *zap.Logger) *Checkout {
	if log == nil {
		log = zap.NewNop()
	}
	return &Checkout{api: api, log: log}
}

// Begin asks the payment gateway for an intent covering the cart total and
// returns it for the card widget to confirm.
func (c *Checkout) Begin(ctx context.Context, items []models.CartItem) (*models.PaymentIntent, error) {
	summary := Summarize(items)
	description := fmt.Sprintf("Art purchase - %d items", len(items))
	intent, err := c.api.CreatePaymentIntent(ctx, summary.Total, "usd", description)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	return intent, nil
}

// PlaceOrder submits the order for the given cart lines after payment has
// been confirmed and returns the created order.
func (c *Checkout) PlaceOrder(ctx context.Context, items []models.CartItem, shipping models.ShippingDetails) (*models.Order, error) {
	lines := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, models.OrderItem{
			ArtworkID: item.ArtworkID,
			Quantity:  item.Quantity,
			Price:     item.Artwork.Price,
		})
	}
	summary := Summarize(items)
	order, err := c.api.CreateOrder(ctx, lines, shipping, summary.Total)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	c.log.Info("order placed", zap.String("order_id", order.ID), zap.Float64("total", order.TotalAmount))
	return order, nil
}
