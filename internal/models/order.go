package models

import "time"

// OrderStatus represents the status of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusPreparing OrderStatus = "Preparing"
	StatusReady     OrderStatus = "Ready"
	StatusCompleted OrderStatus = "Completed"
)

// KnownStatus reports whether s is one of the statuses the admin path may set.
func KnownStatus(s string) bool {
	switch OrderStatus(s) {
	case StatusPending, StatusPreparing, StatusReady, StatusCompleted:
		return true
	}
	return false
}

// Order represents a persisted order header
type Order struct {
	ID           int64       `json:"id,omitempty"`
	UserID       int64       `json:"user_id"`
	CustomerName string      `json:"customer_name"`
	Total        Cents       `json:"total_cents"`
	Status       OrderStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at,omitempty"`
}

// OrderLine represents one line of a persisted order. Subtotal is the price
// captured at commit time multiplied by quantity; it is never recomputed from
// the current menu price.
type OrderLine struct {
	OrderID  int64 `json:"order_id,omitempty"`
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
	Subtotal Cents `json:"subtotal_cents"`
}

// CheckoutLine is one priced line of a successful checkout
type CheckoutLine struct {
	ItemID        int64  `json:"item_id"`
	Name          string `json:"name"`
	Quantity      int    `json:"quantity"`
	SubtotalCents Cents  `json:"subtotal_cents"`
	Subtotal      string `json:"subtotal"`
}

// CheckoutResult is returned by the commit engine on success. DroppedItemIDs
// lists cart items that no longer existed in the catalog at commit time; their
// presence does not make the checkout a failure.
type CheckoutResult struct {
	OrderID        int64          `json:"order_id"`
	Status         OrderStatus    `json:"status"`
	TotalCents     Cents          `json:"total_cents"`
	Total          string         `json:"total"`
	Lines          []CheckoutLine `json:"lines"`
	DroppedItemIDs []int64        `json:"dropped_item_ids,omitempty"`
}

// OrderSummary is one row of the order history view
type OrderSummary struct {
	ID           int64     `json:"id"`
	CustomerName string    `json:"customer_name,omitempty"`
	TotalCents   Cents     `json:"total_cents"`
	Total        string    `json:"total"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	Items        string    `json:"items"`
}

// AddCartItemRequest is the request body for adding an item to the cart
type AddCartItemRequest struct {
	UserID   int64 `json:"user_id"`
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
}

// UpdateCartItemRequest is the request body for replacing a cart quantity.
// Quantity zero removes the line.
type UpdateCartItemRequest struct {
	UserID   int64 `json:"user_id"`
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
}

// PlaceOrderRequest is the request body for committing the cart as an order
type PlaceOrderRequest struct {
	UserID       int64  `json:"user_id"`
	CustomerName string `json:"customer_name"`
}

// CartViewLine is one priced line of the cart display
type CartViewLine struct {
	ItemID        int64  `json:"item_id"`
	Name          string `json:"name"`
	PriceCents    Cents  `json:"price_cents"`
	Price         string `json:"price"`
	Quantity      int    `json:"quantity"`
	SubtotalCents Cents  `json:"subtotal_cents"`
	Subtotal      string `json:"subtotal"`
}

// CartView is the priced cart display returned to the customer
type CartView struct {
	Lines      []CartViewLine `json:"lines"`
	TotalCents Cents          `json:"total_cents"`
	Total      string         `json:"total"`
}
