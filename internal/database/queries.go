package database

// Order queries
const (
	InsertOrderSQL = `
		INSERT INTO orders (user_id, customer_name, total_cents, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	InsertOrderItemSQL = `
		INSERT INTO order_items (order_id, item_id, quantity, subtotal_cents)
		VALUES ($1, $2, $3, $4)`

	UpdateOrderStatusSQL = `
		UPDATE orders SET status = $1 WHERE id = $2`
)

// Catalog queries
const (
	FetchItemsByIDsSQL = `
		SELECT id, name, price_cents
		FROM menu_items
		WHERE id = ANY($1)`

	ListMenuSQL = `
		SELECT m.id, m.name, m.description, m.price_cents, c.name AS category
		FROM menu_items m
		LEFT JOIN categories c ON m.category_id = c.id
		ORDER BY c.name, m.name`
)

// History queries. Lines referencing deleted menu items concatenate to NULL
// and are skipped by string_agg, matching the original summary behavior.
const (
	orderSummarySelect = `
		SELECT o.id, o.customer_name, o.total_cents, o.status, o.created_at,
			   COALESCE(string_agg(mi.name || ' (x' || oi.quantity || ')', ', ' ORDER BY oi.id), 'No items') AS items
		FROM orders o
		LEFT JOIN order_items oi ON oi.order_id = o.id
		LEFT JOIN menu_items mi ON mi.id = oi.item_id`

	UserOrdersSQL = orderSummarySelect + `
		WHERE o.user_id = $1
		GROUP BY o.id
		ORDER BY o.created_at DESC`

	AllOrdersSQL = orderSummarySelect + `
		GROUP BY o.id
		ORDER BY o.created_at DESC`
)
