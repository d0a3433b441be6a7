package checkout

import (
	"context"
	"fmt"

	"cafe-system/internal/database"
	"cafe-system/internal/models"
)

// Repository persists orders in PostgreSQL
type Repository struct {
	db *database.DB
}

// NewRepository creates an order repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// CreateOrder inserts the order header and all of its lines inside a single
// transaction. Either every row is committed or none is; no partial order is
// ever observable to readers.
func (r *Repository) CreateOrder(ctx context.Context, order *models.Order, lines []models.OrderLine) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	// No-op after a successful commit; resolves the transaction even when the
	// caller's context is cancelled mid-flight.
	defer tx.Rollback(context.WithoutCancel(ctx))

	var orderID int64
	err = tx.QueryRow(ctx, database.InsertOrderSQL,
		order.UserID, order.CustomerName, int64(order.Total), string(order.Status),
	).Scan(&orderID, &order.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert order: %w", err)
	}

	for _, line := range lines {
		_, err = tx.Exec(ctx, database.InsertOrderItemSQL,
			orderID, line.ItemID, line.Quantity, int64(line.Subtotal))
		if err != nil {
			return 0, fmt.Errorf("failed to insert order line for item %d: %w", line.ItemID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	order.ID = orderID
	return orderID, nil
}
