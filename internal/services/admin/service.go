package admin

import (
	"context"
	"errors"
	"fmt"

	"cafe-system/internal/database"
	"cafe-system/internal/logger"
	"cafe-system/internal/models"
)

var (
	// ErrUnknownStatus is returned for a status outside the known set
	ErrUnknownStatus = errors.New("unknown order status")

	// ErrOrderNotFound is returned when a status update matches no order
	ErrOrderNotFound = errors.New("order not found")
)

// QueryResult holds the rows of an ad-hoc read-only query, stringified for
// display
type QueryResult struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Service provides the admin operations: order status updates and guarded
// ad-hoc queries
type Service struct {
	db     *database.DB
	logger *logger.Logger
}

// NewService creates a new admin service
func NewService(db *database.DB, log *logger.Logger) *Service {
	return &Service{db: db, logger: log}
}

// UpdateStatus sets the status of an order. The engine enforces no transition
// graph; any of the known statuses may be set in any order.
func (s *Service) UpdateStatus(ctx context.Context, orderID int64, status string, requestID string) error {
	if !models.KnownStatus(status) {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}

	tag, err := s.db.Pool.Exec(ctx, database.UpdateOrderStatusSQL, status, orderID)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id %d", ErrOrderNotFound, orderID)
	}

	s.logger.Info("order_status_updated", "Order status changed", requestID, map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})

	return nil
}

// RunQuery validates the statement against the read-only gate and executes it,
// returning column names and stringified rows
func (s *Service) RunQuery(ctx context.Context, statement string, requestID string) (*QueryResult, error) {
	if err := ValidateQuery(statement); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, statement)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	result := &QueryResult{Rows: [][]string{}}
	for _, fd := range rows.FieldDescriptions() {
		result.Columns = append(result.Columns, fd.Name)
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		row := make([]string, len(values))
		for i, v := range values {
			if v == nil {
				row[i] = "NULL"
				continue
			}
			row[i] = fmt.Sprint(v)
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}

	s.logger.Info("adhoc_query_executed", "Ad-hoc query executed", requestID, map[string]interface{}{
		"rows": len(result.Rows),
	})

	return result, nil
}
