// Package sync keeps the client-side collections (cart, wishlist, orders)
// consistent with the marketplace API. Each synchronizer holds an in-memory
// mirror of the last-known-good server collection, replaced wholesale after
// every mutating call, and reacts to session transitions through Bind.
package sync

// State describes how far a collection has come since construction.
type State int

const (
	// StateUnloaded means nothing has been fetched yet.
	StateUnloaded State = iota
	// StateLoading means a fetch is in flight.
	StateLoading
	// StateLoaded means the collection holds a concrete (possibly empty)
	// snapshot.
	StateLoaded
)

// SessionReader exposes the login state the synchronizers react to. The
// session is owned elsewhere; synchronizers never write it.
type SessionReader interface {
	LoggedIn() bool
}
