package cart

import "sync"

// Registry owns one cart per user for the HTTP layer. Carts live for the
// process lifetime; a successful checkout clears a cart but never removes it.
type Registry struct {
	mu    sync.Mutex
	carts map[int64]*Cart
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{carts: make(map[int64]*Cart)}
}

// Get returns the cart for a user, creating an empty one on first use
func (r *Registry) Get(userID int64) *Cart {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.carts[userID]
	if !ok {
		c = New()
		r.carts[userID] = c
	}
	return c
}
