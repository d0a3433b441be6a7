package checkout

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"cafe-system/internal/cart"
	"cafe-system/internal/logger"
	"cafe-system/internal/models"
)

var (
	// ErrEmptyCart is returned when checkout is attempted on an empty cart.
	// The store is never touched in this case.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrNoResolvableItems is returned when every cart item has vanished from
	// the catalog between add-to-cart and checkout. Nothing is persisted and
	// the cart is left unchanged.
	ErrNoResolvableItems = errors.New("no cart items resolve against the catalog")

	// ErrCommitFailed is returned when the order transaction could not
	// complete. The transaction is rolled back and the cart is left unchanged.
	ErrCommitFailed = errors.New("order commit failed")
)

// MenuReader provides authoritative name and price for a set of item ids
type MenuReader interface {
	FetchByIDs(ctx context.Context, ids []int64) (map[int64]models.ItemSnapshot, error)
}

// OrderStore persists an order header together with its lines in one atomic
// unit
type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order, lines []models.OrderLine) (int64, error)
}

// EventPublisher announces committed orders
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, msg *models.OrderPlacedMessage) error
}

// Service is the cart-to-order commit engine
type Service struct {
	menu      MenuReader
	store     OrderStore
	publisher EventPublisher
	logger    *logger.Logger
}

// NewService creates a checkout service. publisher may be nil when order
// events are not wired.
func NewService(menu MenuReader, store OrderStore, publisher EventPublisher, log *logger.Logger) *Service {
	return &Service{
		menu:      menu,
		store:     store,
		publisher: publisher,
		logger:    log,
	}
}

// PlaceOrder commits the cart as one order. Prices are re-read from the
// catalog at this moment and frozen into the order lines; items that no longer
// resolve are dropped and reported. On success the whole cart is cleared,
// dropped lines included. On any failure the cart is left exactly as it was.
//
// The price read and the insert are deliberately not one serializable unit; a
// price change landing between them is an accepted race, and the customer pays
// the price that was authoritative when the totals were computed.
func (s *Service) PlaceOrder(ctx context.Context, crt *cart.Cart, userID int64, customerName string, requestID string) (*models.CheckoutResult, error) {
	snapshot := crt.Snapshot()
	if len(snapshot) == 0 {
		return nil, ErrEmptyCart
	}

	ids := make([]int64, 0, len(snapshot))
	for id, qty := range snapshot {
		// The cart already rejects these; the engine does not rely on that.
		if qty <= 0 {
			return nil, fmt.Errorf("item %d: %w", id, cart.ErrInvalidQuantity)
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	items, err := s.menu.FetchByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var (
		lines      []models.OrderLine
		resultRows []models.CheckoutLine
		dropped    []int64
		total      models.Cents
	)
	for _, id := range ids {
		item, ok := items[id]
		if !ok {
			dropped = append(dropped, id)
			continue
		}

		qty := snapshot[id]
		subtotal := item.Price.Times(qty)
		total += subtotal

		lines = append(lines, models.OrderLine{
			ItemID:   id,
			Quantity: qty,
			Subtotal: subtotal,
		})
		resultRows = append(resultRows, models.CheckoutLine{
			ItemID:        id,
			Name:          item.Name,
			Quantity:      qty,
			SubtotalCents: subtotal,
			Subtotal:      subtotal.String(),
		})
	}

	if len(lines) == 0 {
		return nil, ErrNoResolvableItems
	}

	order := &models.Order{
		UserID:       userID,
		CustomerName: customerName,
		Total:        total,
		Status:       models.StatusPending,
	}

	orderID, err := s.store.CreateOrder(ctx, order, lines)
	if err != nil {
		s.logger.Error("order_commit_failed", "Order transaction rolled back", requestID, err, map[string]interface{}{
			"user_id":    userID,
			"line_count": len(lines),
		})
		return nil, fmt.Errorf("%w: %v", ErrCommitFailed, err)
	}

	// The order is durable; the customer must re-add a dropped item
	// deliberately rather than have it resurface on the next checkout.
	crt.Clear()

	if len(dropped) > 0 {
		s.logger.Info("stale_cart_items_dropped", "Some cart items no longer exist in the catalog", requestID, map[string]interface{}{
			"order_id":    orderID,
			"dropped_ids": dropped,
		})
	}

	s.publishOrderPlaced(ctx, orderID, userID, customerName, total, resultRows, requestID)

	return &models.CheckoutResult{
		OrderID:        orderID,
		Status:         models.StatusPending,
		TotalCents:     total,
		Total:          total.String(),
		Lines:          resultRows,
		DroppedItemIDs: dropped,
	}, nil
}

func (s *Service) publishOrderPlaced(ctx context.Context, orderID, userID int64, customerName string, total models.Cents, lines []models.CheckoutLine, requestID string) {
	if s.publisher == nil {
		return
	}

	msg := &models.OrderPlacedMessage{
		OrderID:      orderID,
		UserID:       userID,
		CustomerName: customerName,
		TotalCents:   total,
		Lines:        lines,
		PlacedAt:     time.Now().UTC(),
	}

	if err := s.publisher.PublishOrderPlaced(ctx, msg); err != nil {
		// The commit already succeeded; the event is best effort.
		s.logger.Error("order_event_publish_failed", "Failed to publish order.placed", requestID, err, map[string]interface{}{
			"order_id": orderID,
		})
	}
}
