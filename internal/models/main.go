// Package models defines the core data structures shared by the marketplace
// client: artworks, cart entries, orders and their related records.
package models

import "time"

// Role identifies which side of the marketplace the session belongs to.
type Role string

const (
	// RoleCollector is a buyer browsing and purchasing artworks.
	RoleCollector Role = "Collector"
	// RoleArtist is a seller fulfilling orders placed against their artworks.
	RoleArtist Role = "Artist"
)

// Artwork is a single listed piece as returned by the catalog.
type Artwork struct {
	// ID is the unique identifier of the artwork.
	ID string `json:"id"`
	// Title is the display title of the piece.
	Title string `json:"title"`
	// Price is the unit price in the marketplace currency.
	Price float64 `json:"price"`
	// Category is the catalog category ("painting", "sculpture", ...).
	Category string `json:"category"`
	// ImageURL points at the primary image of the piece.
	ImageURL string `json:"image"`
	// Artist is the display name of the creator.
	Artist string `json:"artist"`
}

// CartItem is one line of the cart. The server may return the referenced
// artwork either nested or as flat fields; the API layer normalizes both
// shapes into this one.
type CartItem struct {
	// ArtworkID references the artwork in the catalog.
	ArtworkID string `json:"artwork_id"`
	// Quantity is the number of units, always >= 1 in server responses.
	Quantity int `json:"quantity"`
	// Artwork is the resolved artwork for this line.
	Artwork Artwork `json:"artwork"`
	// AddedAt is when the line entered the cart.
	AddedAt time.Time `json:"added_at"`
}

// OrderStatus is the fulfilment state of an order. Transitions are enforced
// by the server; the client only requests them and renders the result.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// AvailableTransitions lists the statuses an Artist may request next from
// the given current status. It mirrors what the server will accept and is
// used only to decide which actions to offer; the request itself is sent
// as-is and the server has the final word.
func AvailableTransitions(status OrderStatus) []OrderStatus {
	switch status {
	case StatusPending:
		return []OrderStatus{StatusProcessing, StatusCancelled}
	case StatusProcessing:
		return []OrderStatus{StatusShipped, StatusCancelled}
	case StatusShipped:
		return []OrderStatus{StatusDelivered}
	default:
		return nil
	}
}

// OrderItem is one purchased line within an order.
type OrderItem struct {
	// ArtworkID references the purchased artwork.
	ArtworkID string `json:"artwork_id"`
	// Quantity is the number of units purchased.
	Quantity int `json:"quantity"`
	// Price is the unit price at purchase time.
	Price float64 `json:"price"`
}

// ShippingDetails is the delivery address collected at checkout.
type ShippingDetails struct {
	FullName   string `json:"fullName"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Order is a placed order as returned by the orders endpoint. The server
// scopes the listing by role: a Collector sees their purchases, an Artist
// sees orders placed against their artworks.
type Order struct {
	// ID is the unique identifier of the order.
	ID string `json:"id"`
	// Items are the purchased lines.
	Items []OrderItem `json:"items"`
	// ShippingDetails is the delivery address.
	ShippingDetails ShippingDetails `json:"shipping_details"`
	// TotalAmount is the charged total including shipping and tax.
	TotalAmount float64 `json:"total_amount"`
	// Status is the current fulfilment state.
	Status OrderStatus `json:"status"`
	// CreatedAt is when the order was placed.
	CreatedAt time.Time `json:"created_at"`
}

// Payment is a charge recorded against an order.
type Payment struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
	Status string  `json:"status"`
}

// Delivery is a shipment recorded against an order.
type Delivery struct {
	ID             string `json:"id"`
	Carrier        string `json:"carrier"`
	TrackingNumber string `json:"tracking_number"`
	Status         string `json:"status"`
}

// PaymentIntent is the handle returned by the payment gateway when a
// checkout begins; the client secret is consumed by the card widget.
type PaymentIntent struct {
	ClientSecret string `json:"client_secret"`
}
