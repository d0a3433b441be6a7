package history

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"cafe-system/internal/database"
	"cafe-system/internal/logger"
	"cafe-system/internal/models"
)

// Service reads persisted orders with their line summaries. Order lines are
// immutable after commit, so these reads need no coordination with checkout.
type Service struct {
	db     *database.DB
	logger *logger.Logger
}

// NewService creates a new history service
func NewService(db *database.DB, log *logger.Logger) *Service {
	return &Service{db: db, logger: log}
}

// UserOrders returns one user's orders, most recent first
func (s *Service) UserOrders(ctx context.Context, userID int64) ([]models.OrderSummary, error) {
	rows, err := s.db.Query(ctx, database.UserOrdersSQL, userID)
	if err != nil {
		s.logger.Error("db_query_failed", "Failed to query user orders", "", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	return s.scanSummaries(rows)
}

// AllOrders returns every order in the system, most recent first. Admin view.
func (s *Service) AllOrders(ctx context.Context) ([]models.OrderSummary, error) {
	rows, err := s.db.Query(ctx, database.AllOrdersSQL)
	if err != nil {
		s.logger.Error("db_query_failed", "Failed to query all orders", "", err, nil)
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	return s.scanSummaries(rows)
}

func (s *Service) scanSummaries(rows pgx.Rows) ([]models.OrderSummary, error) {
	var orders []models.OrderSummary
	for rows.Next() {
		var o models.OrderSummary
		var total int64
		if err := rows.Scan(&o.ID, &o.CustomerName, &total, &o.Status, &o.CreatedAt, &o.Items); err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		o.TotalCents = models.Cents(total)
		o.Total = o.TotalCents.String()
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order rows: %w", err)
	}

	return orders, nil
}
