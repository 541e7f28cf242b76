// Package apitest implements the marketplace REST contract in memory. It
// backs the integration tests and the local development stub; it is not a
// production server.
package apitest

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/Anisah23/lartduvraisoi-client/internal/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type ctxKey string

const tokenKey ctxKey = "token"

// account is one seeded user of the stub, keyed by bearer token.
type account struct {
	name     string
	role     models.Role
	cart     []models.CartItem
	wishlist []models.Artwork
}

// orderRecord couples an order with the token of the collector who placed it.
type orderRecord struct {
	order      models.Order
	ownerToken string
}

// Server is an in-memory marketplace API. The zero value is not usable;
// construct with New.
type Server struct {
	mu         sync.Mutex
	accounts   map[string]*account
	catalog    map[string]models.Artwork
	orders     []*orderRecord
	payments   map[string][]models.Payment
	deliveries map[string][]models.Delivery

	router chi.Router
}

// New returns an empty stub server. Seed users and artworks before use.
func New() *Server {
	s := &Server{
		accounts:   make(map[string]*account),
		catalog:    make(map[string]models.Artwork),
		payments:   make(map[string][]models.Payment),
		deliveries: make(map[string][]models.Delivery),
	}

	r := chi.NewRouter()
	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(s.bearerAuth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", s.getCart)
			r.Post("/", s.addCartItem)
			r.Patch("/{id}", s.updateCartItem)
			r.Delete("/{id}", s.removeCartItem)
		})
		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", s.getWishlist)
			r.Post("/", s.addWishlistItem)
			r.Delete("/{id}", s.removeWishlistItem)
		})
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", s.getOrders)
			r.Post("/", s.createOrder)
			r.Put("/{id}", s.updateOrderStatus)
			r.Get("/{id}/payments", s.getOrderPayments)
			r.Get("/{id}/deliveries", s.getOrderDeliveries)
		})
		r.Post("/payments/create-intent", s.createPaymentIntent)
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SeedUser registers an account reachable with the given bearer token.
func (s *Server) SeedUser(token, name string, role models.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[token] = &account{name: name, role: role}
}

// SeedArtwork adds an artwork to the catalog.
func (s *Server) SeedArtwork(art models.Artwork) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog[art.ID] = art
}

// bearerAuth resolves the Authorization header to a seeded account and
// stores its token in the request context. Requests without a valid token
// are rejected; registration-free endpoints do not exist in this stub.
func (s *Server) bearerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		const prefix = "Bearer "
		if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		token := header[len(prefix):]
		s.mu.Lock()
		_, ok := s.accounts[token]
		s.mu.Unlock()
		if !ok {
			writeError(w, http.StatusUnauthorized, "unknown token")
			return
		}
		ctx := context.WithValue(r.Context(), tokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func tokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

func (s *Server) accountFor(r *http.Request) *account {
	return s.accounts[tokenFrom(r.Context())]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func cartEnvelope(items []models.CartItem) map[string]any {
	if items == nil {
		items = []models.CartItem{}
	}
	return map[string]any{"items": items}
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, cartEnvelope(s.accountFor(r).cart))
}

func (s *Server) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ArtworkID string `json:"artworkId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	art, ok := s.catalog[req.ArtworkID]
	if !ok {
		writeError(w, http.StatusNotFound, "artwork not found")
		return
	}
	acc := s.accountFor(r)
	for i := range acc.cart {
		if acc.cart[i].ArtworkID == req.ArtworkID {
			acc.cart[i].Quantity += req.Quantity
			writeJSON(w, http.StatusOK, cartEnvelope(acc.cart))
			return
		}
	}
	acc.cart = append(acc.cart, models.CartItem{
		ArtworkID: req.ArtworkID,
		Quantity:  req.Quantity,
		Artwork:   art,
		AddedAt:   time.Now().UTC(),
	})
	writeJSON(w, http.StatusOK, cartEnvelope(acc.cart))
}

func (s *Server) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	artworkID := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.accountFor(r)
	for i := range acc.cart {
		if acc.cart[i].ArtworkID != artworkID {
			continue
		}
		if req.Quantity <= 0 {
			acc.cart = append(acc.cart[:i], acc.cart[i+1:]...)
		} else {
			acc.cart[i].Quantity = req.Quantity
		}
		writeJSON(w, http.StatusOK, cartEnvelope(acc.cart))
		return
	}
	writeError(w, http.StatusNotFound, "cart item not found")
}

func (s *Server) removeCartItem(w http.ResponseWriter, r *http.Request) {
	artworkID := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.accountFor(r)
	for i := range acc.cart {
		if acc.cart[i].ArtworkID == artworkID {
			acc.cart = append(acc.cart[:i], acc.cart[i+1:]...)
			writeJSON(w, http.StatusOK, cartEnvelope(acc.cart))
			return
		}
	}
	writeError(w, http.StatusNotFound, "cart item not found")
}

func wishlistEnvelope(items []models.Artwork) map[string]any {
	if items == nil {
		items = []models.Artwork{}
	}
	return map[string]any{"items": items}
}

func (s *Server) getWishlist(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, wishlistEnvelope(s.accountFor(r).wishlist))
}

func (s *Server) addWishlistItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ArtworkID string `json:"artworkId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	art, ok := s.catalog[req.ArtworkID]
	if !ok {
		writeError(w, http.StatusNotFound, "artwork not found")
		return
	}
	acc := s.accountFor(r)
	for _, item := range acc.wishlist {
		if item.ID == req.ArtworkID {
			writeJSON(w, http.StatusOK, wishlistEnvelope(acc.wishlist))
			return
		}
	}
	acc.wishlist = append(acc.wishlist, art)
	writeJSON(w, http.StatusOK, wishlistEnvelope(acc.wishlist))
}

func (s *Server) removeWishlistItem(w http.ResponseWriter, r *http.Request) {
	artworkID := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.accountFor(r)
	for i, item := range acc.wishlist {
		if item.ID == artworkID {
			acc.wishlist = append(acc.wishlist[:i], acc.wishlist[i+1:]...)
			break
		}
	}
	writeJSON(w, http.StatusOK, wishlistEnvelope(acc.wishlist))
}

// getOrders lists orders scoped by role: a Collector sees the orders they
// placed, an Artist sees orders containing their artworks.
func (s *Server) getOrders(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.accountFor(r)
	token := tokenFrom(r.Context())

	items := []models.Order{}
	for _, rec := range s.orders {
		switch acc.role {
		case models.RoleArtist:
			if s.orderInvolvesArtist(rec.order, acc.name) {
				items = append(items, rec.order)
			}
		default:
			if rec.ownerToken == token {
				items = append(items, rec.order)
			}
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) orderInvolvesArtist(order models.Order, artist string) bool {
	for _, item := range order.Items {
		if art, ok := s.catalog[item.ArtworkID]; ok && art.Artist == artist {
			return true
		}
	}
	return false
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items           []models.OrderItem     `json:"items"`
		ShippingDetails models.ShippingDetails `json:"shipping_details"`
		TotalAmount     float64                `json:"total_amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "order has no items")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	order := models.Order{
		ID:              uuid.NewString(),
		Items:           req.Items,
		ShippingDetails: req.ShippingDetails,
		TotalAmount:     req.TotalAmount,
		Status:          models.StatusPending,
		CreatedAt:       time.Now().UTC(),
	}
	s.orders = append(s.orders, &orderRecord{order: order, ownerToken: tokenFrom(r.Context())})
	s.payments[order.ID] = []models.Payment{{
		ID:     uuid.NewString(),
		Amount: order.TotalAmount,
		Status: "succeeded",
	}}
	writeJSON(w, http.StatusCreated, order)
}

// validNext is the status state machine the stub enforces, matching the
// production contract.
var validNext = map[models.OrderStatus][]models.OrderStatus{
	models.StatusPending:    {models.StatusProcessing, models.StatusCancelled},
	models.StatusProcessing: {models.StatusShipped, models.StatusCancelled},
	models.StatusShipped:    {models.StatusDelivered},
}

func (s *Server) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	orderID := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.accountFor(r)
	if acc.role != models.RoleArtist {
		writeError(w, http.StatusForbidden, "only artists may update order status")
		return
	}

	for _, rec := range s.orders {
		if rec.order.ID != orderID {
			continue
		}
		if !transitionAllowed(rec.order.Status, req.Status) {
			writeError(w, http.StatusConflict, "invalid status transition")
			return
		}
		rec.order.Status = req.Status
		if req.Status == models.StatusShipped {
			s.deliveries[orderID] = append(s.deliveries[orderID], models.Delivery{
				ID:             uuid.NewString(),
				Carrier:        "ArtFreight",
				TrackingNumber: uuid.NewString(),
				Status:         "in_transit",
			})
		}
		if req.Status == models.StatusDelivered {
			for i := range s.deliveries[orderID] {
				s.deliveries[orderID][i].Status = "delivered"
			}
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeError(w, http.StatusNotFound, "order not found")
}

func transitionAllowed(from, to models.OrderStatus) bool {
	for _, next := range validNext[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s *Server) getOrderPayments(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	payments := s.payments[orderID]
	if payments == nil {
		payments = []models.Payment{}
	}
	writeJSON(w, http.StatusOK, payments)
}

func (s *Server) getOrderDeliveries(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	deliveries := s.deliveries[orderID]
	if deliveries == nil {
		deliveries = []models.Delivery{}
	}
	writeJSON(w, http.StatusOK, deliveries)
}

func (s *Server) createPaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount      float64 `json:"amount"`
		Currency    string  `json:"currency"`
		Description string  `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"client_secret": "pi_" + uuid.NewString() + "_secret",
	})
}
