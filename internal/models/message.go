package models

import "time"

// OrderPlacedMessage is published to RabbitMQ after an order commit succeeds
type OrderPlacedMessage struct {
	OrderID      int64          `json:"order_id"`
	UserID       int64          `json:"user_id"`
	CustomerName string         `json:"customer_name"`
	TotalCents   Cents          `json:"total_cents"`
	Lines        []CheckoutLine `json:"lines"`
	PlacedAt     time.Time      `json:"placed_at"`
}
