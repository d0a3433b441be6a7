package cart

import (
	"errors"
	"sync"
)

// ErrInvalidQuantity is returned for a non-positive add or a negative update
var ErrInvalidQuantity = errors.New("quantity must be positive")

// Cart is a session-scoped mapping of menu item id to requested quantity.
// It holds no prices and never touches the store; pricing happens at checkout.
type Cart struct {
	mu    sync.Mutex
	lines map[int64]int
}

// New creates an empty cart
func New() *Cart {
	return &Cart{lines: make(map[int64]int)}
}

// AddItem adds quantity of an item, merging with any existing line by summing
func (c *Cart) AddItem(itemID int64, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines[itemID] += quantity
	return nil
}

// SetQuantity replaces the stored quantity for an item. Quantity zero removes
// the line entirely.
func (c *Cart) SetQuantity(itemID int64, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if quantity == 0 {
		delete(c.lines, itemID)
		return nil
	}
	c.lines[itemID] = quantity
	return nil
}

// Clear empties the cart unconditionally
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = make(map[int64]int)
}

// Snapshot returns a copy of the current mapping
func (c *Cart) Snapshot() map[int64]int {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := make(map[int64]int, len(c.lines))
	for id, qty := range c.lines {
		snapshot[id] = qty
	}
	return snapshot
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}
