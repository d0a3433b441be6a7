package catalog

import (
	"context"
	"errors"
	"fmt"

	"cafe-system/internal/database"
	"cafe-system/internal/logger"
	"cafe-system/internal/models"
)

// ErrStoreUnavailable is returned when the catalog read itself fails. It is
// distinct from an empty result: identifiers that simply do not exist are
// silently absent from the returned mapping.
var ErrStoreUnavailable = errors.New("catalog store unavailable")

// Reader fetches authoritative menu data from the catalog store
type Reader struct {
	db     *database.DB
	logger *logger.Logger
}

// NewReader creates a catalog reader
func NewReader(db *database.DB, log *logger.Logger) *Reader {
	return &Reader{db: db, logger: log}
}

// FetchByIDs returns current name and price for the given item ids. Ids that
// no longer resolve are dropped from the result; the caller decides how to
// react to the gap.
func (r *Reader) FetchByIDs(ctx context.Context, ids []int64) (map[int64]models.ItemSnapshot, error) {
	snapshots := make(map[int64]models.ItemSnapshot, len(ids))
	if len(ids) == 0 {
		return snapshots, nil
	}

	rows, err := r.db.Query(ctx, database.FetchItemsByIDsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var name string
		var price int64
		if err := rows.Scan(&id, &name, &price); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		snapshots[id] = models.ItemSnapshot{Name: name, Price: models.Cents(price)}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return snapshots, nil
}

// ListMenu returns the full menu with category names, for display
func (r *Reader) ListMenu(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := r.db.Query(ctx, database.ListMenuSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu: %w", err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var item models.MenuItem
		var description *string
		var price int64
		if err := rows.Scan(&item.ID, &item.Name, &description, &price, &item.Category); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		if description != nil {
			item.Description = *description
		}
		item.PriceCents = models.Cents(price)
		item.Price = item.PriceCents.String()
		items = append(items, item)
	}

	return items, rows.Err()
}
