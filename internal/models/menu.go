package models

// MenuItem represents one entry of the catalog as shown to customers
type MenuItem struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	PriceCents  Cents   `json:"price_cents"`
	Price       string  `json:"price"`
	Category    *string `json:"category,omitempty"`
}

// ItemSnapshot is the authoritative name and price of a menu item as read at
// checkout time
type ItemSnapshot struct {
	Name  string
	Price Cents
}
