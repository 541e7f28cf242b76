package sync_test

import (
	"context"
	"testing"

	clientsync "github.com/Anisah23/lartduvraisoi-client/internal/client/sync"
	"github.com/Anisah23/lartduvraisoi-client/internal/models"
	"github.com/Anisah23/lartduvraisoi-client/internal/session"
)

func TestBind_LoginTriggersOneFetchEach(t *testing.T) {
	sessions := session.NewManager()

	cartFetches, wishlistFetches, orderFetches := 0, 0, 0
	cartAPI := &mockCartAPI{
		GetCartFunc: func(context.Context) ([]models.CartItem, error) {
			cartFetches++
			return []models.CartItem{{ArtworkID: "a", Quantity: 1}}, nil
		},
	}
	wishlistAPI := &mockWishlistAPI{
		GetWishlistFunc: func(context.Context) ([]models.Artwork, error) {
			wishlistFetches++
			return []models.Artwork{{ID: "w"}}, nil
		},
	}
	ordersAPI := &mockOrdersAPI{
		GetOrdersFunc: func(context.Context) ([]models.Order, error) {
			orderFetches++
			return []models.Order{{ID: "o"}}, nil
		},
	}

	store := &memStore{items: []models.Artwork{{ID: "saved"}}}
	cart := clientsync.NewCart(cartAPI, nil, nil)
	wishlist := clientsync.NewWishlist(wishlistAPI, store, sessions, nil)
	orders := clientsync.NewOrders(ordersAPI, nil)
	clientsync.Bind(sessions, cart, wishlist, orders)

	sessions.Login("tok", models.RoleCollector)

	if cartFetches != 1 || wishlistFetches != 1 || orderFetches != 1 {
		t.Errorf("fetches = %d/%d/%d; want exactly one each", cartFetches, wishlistFetches, orderFetches)
	}
	if cart.Count() != 1 || wishlist.Count() != 1 || len(orders.Items()) != 1 {
		t.Error("collections not populated after login")
	}
}

func TestBind_LogoutClearsAndSwapsWishlistToStore(t *testing.T) {
	sessions := session.NewManager()

	cartAPI := &mockCartAPI{
		GetCartFunc: func(context.Context) ([]models.CartItem, error) {
			return []models.CartItem{{ArtworkID: "a", Quantity: 2}}, nil
		},
	}
	wishlistAPI := &mockWishlistAPI{
		GetWishlistFunc: func(context.Context) ([]models.Artwork, error) {
			return []models.Artwork{{ID: "remote"}}, nil
		},
	}
	ordersAPI := &mockOrdersAPI{
		GetOrdersFunc: func(context.Context) ([]models.Order, error) {
			return []models.Order{{ID: "o"}}, nil
		},
	}

	store := &memStore{items: []models.Artwork{{ID: "saved"}}}
	cart := clientsync.NewCart(cartAPI, nil, nil)
	wishlist := clientsync.NewWishlist(wishlistAPI, store, sessions, nil)
	orders := clientsync.NewOrders(ordersAPI, nil)
	clientsync.Bind(sessions, cart, wishlist, orders)

	sessions.Login("tok", models.RoleCollector)
	if !wishlist.Contains("remote") {
		t.Fatal("expected remote wishlist after login")
	}

	sessions.Logout()

	if cart.Count() != 0 || len(cart.Items()) != 0 {
		t.Errorf("cart = %+v; want cleared on logout", cart.Items())
	}
	if len(orders.Items()) != 0 {
		t.Errorf("orders = %+v; want cleared on logout", orders.Items())
	}
	if !wishlist.Contains("saved") || wishlist.Contains("remote") {
		t.Errorf("wishlist = %+v; want fallback store contents", wishlist.Items())
	}
}
