package admin

import (
	"context"
	"errors"
	"testing"

	"cafe-system/internal/logger"
)

func TestValidateQuery(t *testing.T) {
	tests := []struct {
		name      string
		statement string
		wantErr   bool
	}{
		{"select allowed", "SELECT * FROM orders", false},
		{"lowercase select allowed", "select id from users", false},
		{"show allowed", "SHOW TABLES", false},
		{"describe allowed", "DESCRIBE orders", false},
		{"explain allowed", "EXPLAIN SELECT 1", false},
		{"leading whitespace allowed", "  \n\tselect 1", false},
		{"delete rejected", "DELETE FROM orders", true},
		{"update rejected", "UPDATE orders SET status = 'Ready'", true},
		{"insert rejected", "INSERT INTO orders VALUES (1)", true},
		{"drop rejected", "DROP TABLE orders", true},
		{"empty rejected", "", true},
		{"whitespace only rejected", "   \t\n", true},
		// The gate inspects the leading token only. A stacked statement
		// passing here is the documented limitation, not a bug in the test.
		{"stacked statement passes the gate", "SELECT 1; DELETE FROM orders", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuery(tt.statement)
			if tt.wantErr {
				if !errors.Is(err, ErrQueryRejected) {
					t.Errorf("ValidateQuery(%q) = %v, want ErrQueryRejected", tt.statement, err)
				}
			} else if err != nil {
				t.Errorf("ValidateQuery(%q) = %v, want nil", tt.statement, err)
			}
		})
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	// unknown statuses are rejected before the store is touched
	svc := NewService(nil, logger.New("admin-test"))

	for _, status := range []string{"", "Shipped", "pending", "COMPLETED"} {
		err := svc.UpdateStatus(context.Background(), 1, status, "req")
		if !errors.Is(err, ErrUnknownStatus) {
			t.Errorf("UpdateStatus(%q) = %v, want ErrUnknownStatus", status, err)
		}
	}
}

func TestRunQueryRejectsBeforeExecution(t *testing.T) {
	// a rejected statement must fail validation before any store access
	svc := NewService(nil, logger.New("admin-test"))

	_, err := svc.RunQuery(context.Background(), "TRUNCATE orders", "req")
	if !errors.Is(err, ErrQueryRejected) {
		t.Errorf("RunQuery(TRUNCATE) = %v, want ErrQueryRejected", err)
	}
}
