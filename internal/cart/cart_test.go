package cart

import (
	"errors"
	"testing"
)

func TestAddItemMergesQuantities(t *testing.T) {
	c := New()

	if err := c.AddItem(3, 2); err != nil {
		t.Fatalf("AddItem(3, 2) error: %v", err)
	}
	if err := c.AddItem(3, 1); err != nil {
		t.Fatalf("AddItem(3, 1) error: %v", err)
	}

	if got := c.Snapshot()[3]; got != 3 {
		t.Errorf("expected merged quantity 3, got %d", got)
	}
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	c := New()

	for _, qty := range []int{0, -1, -10} {
		if err := c.AddItem(1, qty); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("AddItem(1, %d) = %v, want ErrInvalidQuantity", qty, err)
		}
	}

	if !c.IsEmpty() {
		t.Error("cart should remain empty after rejected adds")
	}
}

func TestSetQuantityReplaces(t *testing.T) {
	c := New()
	_ = c.AddItem(7, 5)

	if err := c.SetQuantity(7, 2); err != nil {
		t.Fatalf("SetQuantity(7, 2) error: %v", err)
	}

	if got := c.Snapshot()[7]; got != 2 {
		t.Errorf("expected quantity replaced to 2, got %d", got)
	}
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	c := New()
	_ = c.AddItem(7, 5)

	if err := c.SetQuantity(7, 0); err != nil {
		t.Fatalf("SetQuantity(7, 0) error: %v", err)
	}

	if _, ok := c.Snapshot()[7]; ok {
		t.Error("expected line removed after SetQuantity to zero")
	}
	if !c.IsEmpty() {
		t.Error("cart should be empty after removing its only line")
	}
}

func TestSetQuantityRejectsNegative(t *testing.T) {
	c := New()
	_ = c.AddItem(7, 5)

	if err := c.SetQuantity(7, -1); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("SetQuantity(7, -1) = %v, want ErrInvalidQuantity", err)
	}
	if got := c.Snapshot()[7]; got != 5 {
		t.Errorf("rejected update must not change the line, got %d", got)
	}
}

func TestClear(t *testing.T) {
	c := New()
	_ = c.AddItem(1, 1)
	_ = c.AddItem(2, 2)

	c.Clear()

	if !c.IsEmpty() {
		t.Error("cart should be empty after Clear")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	c := New()
	_ = c.AddItem(1, 1)

	snapshot := c.Snapshot()
	snapshot[1] = 99
	snapshot[2] = 5

	if got := c.Snapshot()[1]; got != 1 {
		t.Errorf("mutating a snapshot must not affect the cart, got %d", got)
	}
	if _, ok := c.Snapshot()[2]; ok {
		t.Error("mutating a snapshot must not add lines to the cart")
	}
}

func TestRegistryReturnsSameCartPerUser(t *testing.T) {
	r := NewRegistry()

	a := r.Get(42)
	_ = a.AddItem(1, 1)

	b := r.Get(42)
	if b.IsEmpty() {
		t.Error("expected the same cart instance for the same user")
	}

	other := r.Get(43)
	if !other.IsEmpty() {
		t.Error("expected a fresh cart for a different user")
	}
}
