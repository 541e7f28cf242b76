package sync

import (
	"context"

	"github.com/Anisah23/lartduvraisoi-client/internal/session"
)

// Bind subscribes the synchronizers to session transitions: a login
// triggers exactly one fetch on each collection, a logout clears the cart
// and orders and swaps the wishlist back to its fallback store.
func Bind(sessions *session.Manager, cart *Cart, wishlist *Wishlist, orders *Orders) {
	sessions.OnChange(func(snap session.Snapshot) {
		ctx := context.Background()
		if snap.LoggedIn {
			cart.Fetch(ctx)
			wishlist.Fetch(ctx)
			orders.Fetch(ctx)
			return
		}
		cart.Reset()
		orders.Reset()
		// The wishlist survives logout through its local store.
		wishlist.Fetch(ctx)
	})
}
