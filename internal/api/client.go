// Package api implements the HTTP client for the marketplace REST API.
// Every call is JSON over HTTP, bearer-token authenticated when the session
// holds a token, and every failure is normalized into a single *Error shape
// before it reaches callers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Anisah23/lartduvraisoi-client/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Error is the normalized failure shape of the API layer. Status 0 means the
// request never produced a response (network error); any other value is the
// HTTP status returned by the server, with Message and Details taken from
// the response body when present.
type Error struct {
	Status  int
	Message string
	Details json.RawMessage
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("network error: %s", e.Message)
	}
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// TokenSource supplies the bearer token for outgoing requests. An empty
// token means the request is sent unauthenticated.
type TokenSource interface {
	Token() string
}

// Client talks to the marketplace REST API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     *zap.Logger
}

// New creates a Client for the API at baseURL. httpClient may be nil, in
// which case a default client with no timeout is used (matching the
// transport defaults the original relies on).
func New(baseURL string, httpClient *http.Client, tokens TokenSource, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{baseURL: baseURL, http: httpClient, tokens: tokens, log: log}
}

// do issues one request and decodes the response into out (when out is
// non-nil). All failures come back as *Error.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: fmt.Sprintf("encode request: %v", err)}
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &Error{Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return &Error{Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Message: fmt.Sprintf("read response: %v", err)}
	}

	c.log.Debug("request done",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode, Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
		var payload struct {
			Message string          `json:"message"`
			Details json.RawMessage `json:"details"`
		}
		if err := json.Unmarshal(data, &payload); err == nil && payload.Message != "" {
			apiErr.Message = payload.Message
			apiErr.Details = payload.Details
		}
		return apiErr
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return &Error{Status: resp.StatusCode, Message: fmt.Sprintf("decode response: %v", err)}
		}
	}
	return nil
}

// cartEntry is the wire shape of one cart line. Older server responses carry
// the artwork fields flat on the entry instead of nested.
type cartEntry struct {
	ArtworkID string          `json:"artwork_id"`
	Quantity  int             `json:"quantity"`
	Artwork   *models.Artwork `json:"artwork"`
	AddedAt   time.Time       `json:"added_at"`

	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	ImageURL string  `json:"image"`
	Artist   string  `json:"artist"`
}

// normalize maps either wire shape onto the single CartItem form.
func (e cartEntry) normalize() models.CartItem {
	item := models.CartItem{ArtworkID: e.ArtworkID, Quantity: e.Quantity, AddedAt: e.AddedAt}
	if e.Artwork != nil {
		item.Artwork = *e.Artwork
		if item.ArtworkID == "" {
			item.ArtworkID = e.Artwork.ID
		}
		return item
	}
	if item.ArtworkID == "" {
		item.ArtworkID = e.ID
	}
	item.Artwork = models.Artwork{
		ID:       item.ArtworkID,
		Title:    e.Title,
		Price:    e.Price,
		Category: e.Category,
		ImageURL: e.ImageURL,
		Artist:   e.Artist,
	}
	return item
}

type cartEnvelope struct {
	Items []cartEntry `json:"items"`
}

func (env cartEnvelope) normalize() []models.CartItem {
	items := make([]models.CartItem, 0, len(env.Items))
	for _, e := range env.Items {
		items = append(items, e.normalize())
	}
	return items
}

// GetCart fetches the authoritative cart for the current session.
func (c *Client) GetCart(ctx context.Context) ([]models.CartItem, error) {
	var env cartEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/cart/", nil, &env); err != nil {
		return nil, err
	}
	return env.normalize(), nil
}

// AddCartItem adds an artwork to the cart and returns the full new cart.
func (c *Client) AddCartItem(ctx context.Context, artworkID string, quantity int) ([]models.CartItem, error) {
	body := map[string]any{"artworkId": artworkID, "quantity": quantity}
	var env cartEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/cart/", body, &env); err != nil {
		return nil, err
	}
	return env.normalize(), nil
}

// UpdateCartItem changes the quantity of one cart line and returns the full
// new cart. Quantity 0 removes the line on the server side.
func (c *Client) UpdateCartItem(ctx context.Context, artworkID string, quantity int) ([]models.CartItem, error) {
	body := map[string]any{"quantity": quantity}
	var env cartEnvelope
	if err := c.do(ctx, http.MethodPatch, "/api/cart/"+artworkID, body, &env); err != nil {
		return nil, err
	}
	return env.normalize(), nil
}

// RemoveCartItem deletes one cart line and returns the full new cart.
func (c *Client) RemoveCartItem(ctx context.Context, artworkID string) ([]models.CartItem, error) {
	var env cartEnvelope
	if err := c.do(ctx, http.MethodDelete, "/api/cart/"+artworkID, nil, &env); err != nil {
		return nil, err
	}
	return env.normalize(), nil
}

type wishlistEnvelope struct {
	Items []models.Artwork `json:"items"`
}

// GetWishlist fetches the remote wishlist for the current session.
func (c *Client) GetWishlist(ctx context.Context) ([]models.Artwork, error) {
	var env wishlistEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/wishlist/", nil, &env); err != nil {
		return nil, err
	}
	return env.Items, nil
}

// AddWishlistItem adds an artwork to the remote wishlist and returns the
// full new wishlist.
func (c *Client) AddWishlistItem(ctx context.Context, artworkID string) ([]models.Artwork, error) {
	body := map[string]any{"artworkId": artworkID}
	var env wishlistEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/wishlist/", body, &env); err != nil {
		return nil, err
	}
	return env.Items, nil
}

// RemoveWishlistItem removes an artwork from the remote wishlist and returns
// the full new wishlist.
func (c *Client) RemoveWishlistItem(ctx context.Context, artworkID string) ([]models.Artwork, error) {
	var env wishlistEnvelope
	if err := c.do(ctx, http.MethodDelete, "/api/wishlist/"+artworkID, nil, &env); err != nil {
		return nil, err
	}
	return env.Items, nil
}

type ordersEnvelope struct {
	Items []models.Order `json:"items"`
}

// GetOrders fetches the order list for the current session. The server
// scopes the result by role.
func (c *Client) GetOrders(ctx context.Context) ([]models.Order, error) {
	var env ordersEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, &env); err != nil {
		return nil, err
	}
	return env.Items, nil
}

// CreateOrder places an order for the given lines and returns the created
// order.
func (c *Client) CreateOrder(ctx context.Context, items []models.OrderItem, shipping models.ShippingDetails, totalAmount float64) (*models.Order, error) {
	body := map[string]any{
		"items":            items,
		"shipping_details": shipping,
		"total_amount":     totalAmount,
	}
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus requests a status transition for one order. The server
// validates the transition and the caller's role.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	body := map[string]any{"status": status}
	return c.do(ctx, http.MethodPut, "/api/orders/"+orderID, body, nil)
}

// GetOrderPayments fetches the payments recorded against an order.
func (c *Client) GetOrderPayments(ctx context.Context, orderID string) ([]models.Payment, error) {
	var payments []models.Payment
	if err := c.do(ctx, http.MethodGet, "/api/orders/"+orderID+"/payments", nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// GetOrderDeliveries fetches the deliveries recorded against an order.
func (c *Client) GetOrderDeliveries(ctx context.Context, orderID string) ([]models.Delivery, error) {
	var deliveries []models.Delivery
	if err := c.do(ctx, http.MethodGet, "/api/orders/"+orderID+"/deliveries", nil, &deliveries); err != nil {
		return nil, err
	}
	return deliveries, nil
}

// CreatePaymentIntent asks the payment gateway for a new intent covering the
// given amount.
func (c *Client) CreatePaymentIntent(ctx context.Context, amount float64, currency, description string) (*models.PaymentIntent, error) {
	body := map[string]any{"amount": amount, "currency": currency, "description": description}
	var intent models.PaymentIntent
	if err := c.do(ctx, http.MethodPost, "/api/payments/create-intent", body, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}
