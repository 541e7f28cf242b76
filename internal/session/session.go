// Package session tracks the login state of the client. The Manager is
// written only by auth-facing code; everything else reads snapshots or
// subscribes to transitions.
package session

import (
	"sync"

	"github.com/Anisah23/lartduvraisoi-client/internal/models"
)

// Snapshot is an immutable view of the session at one point in time.
type Snapshot struct {
	// LoggedIn reports whether a user is authenticated.
	LoggedIn bool
	// Role is the role of the authenticated user; empty when logged out.
	Role models.Role
	// Token is the bearer token for API calls; empty when logged out.
	Token string
}

// Manager owns the session state and notifies subscribers when it changes.
type Manager struct {
	mu        sync.Mutex
	current   Snapshot
	listeners []func(Snapshot)
}

// NewManager returns a Manager in the logged-out state.
func NewManager() *Manager {
	return &Manager{}
}

// Login records an authenticated session and notifies subscribers.
func (m *Manager) Login(token string, role models.Role) {
	m.mu.Lock()
	m.current = Snapshot{LoggedIn: true, Role: role, Token: token}
	snap := m.current
	listeners := append([]func(Snapshot){}, m.listeners...)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

// Logout clears the session and notifies subscribers.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.current = Snapshot{}
	snap := m.current
	listeners := append([]func(Snapshot){}, m.listeners...)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

// OnChange registers fn to run on every login/logout transition. Listeners
// are invoked synchronously in registration order.
func (m *Manager) OnChange(fn func(Snapshot)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Current returns the session state as of this call.
func (m *Manager) Current() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// LoggedIn reports whether a user is authenticated.
func (m *Manager) LoggedIn() bool {
	return m.Current().LoggedIn
}

// Role returns the role of the authenticated user.
func (m *Manager) Role() models.Role {
	return m.Current().Role
}

// Token returns the bearer token for API calls. It satisfies the token
// source the API client expects.
func (m *Manager) Token() string {
	return m.Current().Token
}
