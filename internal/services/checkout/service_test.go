package checkout

import (
	"context"
	"errors"
	"testing"

	"cafe-system/internal/cart"
	"cafe-system/internal/catalog"
	"cafe-system/internal/logger"
	"cafe-system/internal/models"
)

type fakeMenuReader struct {
	items map[int64]models.ItemSnapshot
	err   error
	calls int
}

func (f *fakeMenuReader) FetchByIDs(ctx context.Context, ids []int64) (map[int64]models.ItemSnapshot, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	result := make(map[int64]models.ItemSnapshot)
	for _, id := range ids {
		if item, ok := f.items[id]; ok {
			result[id] = item
		}
	}
	return result, nil
}

type fakeOrderStore struct {
	err    error
	nextID int64
	orders []*models.Order
	lines  [][]models.OrderLine
	calls  int
}

func (f *fakeOrderStore) CreateOrder(ctx context.Context, order *models.Order, lines []models.OrderLine) (int64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	f.nextID++
	f.orders = append(f.orders, order)
	f.lines = append(f.lines, lines)
	return f.nextID, nil
}

func newTestService(menu *fakeMenuReader, store *fakeOrderStore) *Service {
	return NewService(menu, store, nil, logger.New("checkout-test"))
}

func cartWith(t *testing.T, lines map[int64]int) *cart.Cart {
	t.Helper()
	c := cart.New()
	for id, qty := range lines {
		if err := c.AddItem(id, qty); err != nil {
			t.Fatalf("AddItem(%d, %d) error: %v", id, qty, err)
		}
	}
	return c
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	menu := &fakeMenuReader{}
	store := &fakeOrderStore{}
	svc := newTestService(menu, store)

	_, err := svc.PlaceOrder(context.Background(), cart.New(), 1, "Alice", "req")
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}

	if menu.calls != 0 || store.calls != 0 {
		t.Error("empty cart commit must not touch the catalog or the store")
	}
}

func TestPlaceOrderFullResolution(t *testing.T) {
	menu := &fakeMenuReader{items: map[int64]models.ItemSnapshot{
		3: {Name: "Latte", Price: 550},
		7: {Name: "Club Sandwich", Price: 1200},
	}}
	store := &fakeOrderStore{}
	svc := newTestService(menu, store)

	crt := cartWith(t, map[int64]int{3: 2, 7: 1})

	result, err := svc.PlaceOrder(context.Background(), crt, 42, "Alice", "req")
	if err != nil {
		t.Fatalf("PlaceOrder error: %v", err)
	}

	if result.OrderID != 1 {
		t.Errorf("expected order id 1, got %d", result.OrderID)
	}
	if result.TotalCents != 2300 {
		t.Errorf("expected total 2300 cents, got %d", result.TotalCents)
	}
	if result.Total != "23.00" {
		t.Errorf("expected total \"23.00\", got %q", result.Total)
	}
	if len(result.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(result.Lines))
	}
	if result.Lines[0].SubtotalCents != 1100 || result.Lines[1].SubtotalCents != 1200 {
		t.Errorf("unexpected subtotals: %d, %d", result.Lines[0].SubtotalCents, result.Lines[1].SubtotalCents)
	}
	if len(result.DroppedItemIDs) != 0 {
		t.Errorf("expected no dropped items, got %v", result.DroppedItemIDs)
	}

	// total must equal the exact sum of the persisted lines
	var sum models.Cents
	for _, line := range store.lines[0] {
		sum += line.Subtotal
	}
	if store.orders[0].Total != sum {
		t.Errorf("persisted total %d does not equal line sum %d", store.orders[0].Total, sum)
	}
	if store.orders[0].Status != models.StatusPending {
		t.Errorf("expected initial status Pending, got %s", store.orders[0].Status)
	}

	if !crt.IsEmpty() {
		t.Error("cart must be cleared after a successful commit")
	}
}

func TestPlaceOrderNoResolvableItems(t *testing.T) {
	menu := &fakeMenuReader{items: map[int64]models.ItemSnapshot{}}
	store := &fakeOrderStore{}
	svc := newTestService(menu, store)

	crt := cartWith(t, map[int64]int{3: 2, 7: 1})

	_, err := svc.PlaceOrder(context.Background(), crt, 42, "Alice", "req")
	if !errors.Is(err, ErrNoResolvableItems) {
		t.Fatalf("expected ErrNoResolvableItems, got %v", err)
	}

	if store.calls != 0 {
		t.Error("nothing may be persisted when no items resolve")
	}
	if crt.IsEmpty() {
		t.Error("cart must be left unchanged on failure")
	}
	if got := crt.Snapshot()[3]; got != 2 {
		t.Errorf("cart line changed on failure, got quantity %d", got)
	}
}

func TestPlaceOrderPartialResolution(t *testing.T) {
	menu := &fakeMenuReader{items: map[int64]models.ItemSnapshot{
		3: {Name: "Latte", Price: 550},
	}}
	store := &fakeOrderStore{}
	svc := newTestService(menu, store)

	crt := cartWith(t, map[int64]int{3: 2, 7: 1})

	result, err := svc.PlaceOrder(context.Background(), crt, 42, "Alice", "req")
	if err != nil {
		t.Fatalf("PlaceOrder error: %v", err)
	}

	if len(result.Lines) != 1 || result.Lines[0].ItemID != 3 {
		t.Fatalf("expected only item 3 committed, got %+v", result.Lines)
	}
	if result.TotalCents != 1100 {
		t.Errorf("expected total 1100 cents, got %d", result.TotalCents)
	}
	if len(result.DroppedItemIDs) != 1 || result.DroppedItemIDs[0] != 7 {
		t.Errorf("expected item 7 reported as dropped, got %v", result.DroppedItemIDs)
	}
	if len(store.lines[0]) != 1 {
		t.Errorf("expected 1 persisted line, got %d", len(store.lines[0]))
	}

	// the whole cart is cleared, dropped lines included
	if !crt.IsEmpty() {
		t.Error("cart must be fully cleared, including dropped lines")
	}
}

func TestPlaceOrderCatalogUnavailable(t *testing.T) {
	menu := &fakeMenuReader{err: catalog.ErrStoreUnavailable}
	store := &fakeOrderStore{}
	svc := newTestService(menu, store)

	crt := cartWith(t, map[int64]int{3: 2})

	_, err := svc.PlaceOrder(context.Background(), crt, 42, "Alice", "req")
	if !errors.Is(err, catalog.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}

	if store.calls != 0 {
		t.Error("store must not be touched when the catalog read fails")
	}
	if crt.IsEmpty() {
		t.Error("cart must be left unchanged when the catalog read fails")
	}
}

func TestPlaceOrderCommitFailureLeavesCart(t *testing.T) {
	menu := &fakeMenuReader{items: map[int64]models.ItemSnapshot{
		3: {Name: "Latte", Price: 550},
	}}
	store := &fakeOrderStore{err: errors.New("constraint violation")}
	svc := newTestService(menu, store)

	crt := cartWith(t, map[int64]int{3: 2})

	_, err := svc.PlaceOrder(context.Background(), crt, 42, "Alice", "req")
	if !errors.Is(err, ErrCommitFailed) {
		t.Fatalf("expected ErrCommitFailed, got %v", err)
	}

	if crt.IsEmpty() {
		t.Error("cart must be left unchanged when the transaction fails")
	}
	if got := crt.Snapshot()[3]; got != 2 {
		t.Errorf("cart line changed on commit failure, got quantity %d", got)
	}
}

func TestPlaceOrderRetryAfterFailure(t *testing.T) {
	menu := &fakeMenuReader{items: map[int64]models.ItemSnapshot{
		3: {Name: "Latte", Price: 550},
	}}
	store := &fakeOrderStore{err: errors.New("connection reset")}
	svc := newTestService(menu, store)

	crt := cartWith(t, map[int64]int{3: 2})

	if _, err := svc.PlaceOrder(context.Background(), crt, 42, "Alice", "req"); err == nil {
		t.Fatal("expected first attempt to fail")
	}

	// the untouched cart makes an identical retry possible
	store.err = nil
	result, err := svc.PlaceOrder(context.Background(), crt, 42, "Alice", "req")
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if result.TotalCents != 1100 {
		t.Errorf("expected total 1100 cents on retry, got %d", result.TotalCents)
	}
	if !crt.IsEmpty() {
		t.Error("cart must be cleared after the successful retry")
	}
}
