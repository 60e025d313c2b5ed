package api

import (
	"sync"

	"github.com/arvindmenon/literature-be/internal/game"
)

// SessionRegistry tracks the single live transport binding per player
// identity. A second concurrent connection for a bound identity is rejected
// instead of displacing the first.
type SessionRegistry struct {
	clients map[string]*Client
	mu      sync.RWMutex
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{clients: make(map[string]*Client)}
}

// Bind claims the identity for the client. Fails with SessionConflict when
// the identity is already bound, leaving the existing binding untouched.
func (r *SessionRegistry) Bind(playerID string, c *Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, bound := r.clients[playerID]; bound {
		if current == c {
			return nil
		}
		return game.ErrSessionConflict
	}
	r.clients[playerID] = c
	return nil
}

// Unbind releases the identity, making it reconnect-eligible again. Only the
// owning client may release it; a stale teardown after a rebind is a no-op.
func (r *SessionRegistry) Unbind(playerID string, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, bound := r.clients[playerID]; bound && current == c {
		delete(r.clients, playerID)
	}
}

// Get returns the live client bound to the identity, if any.
func (r *SessionRegistry) Get(playerID string) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, bound := r.clients[playerID]
	return c, bound
}

// Count returns the number of live bindings.
func (r *SessionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}
