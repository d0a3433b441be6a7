package models

import "testing"

func TestCentsString(t *testing.T) {
	tests := []struct {
		amount Cents
		want   string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{50, "0.50"},
		{550, "5.50"},
		{1200, "12.00"},
		{2300, "23.00"},
		{99999, "999.99"},
		{-550, "-5.50"},
	}

	for _, tt := range tests {
		if got := tt.amount.String(); got != tt.want {
			t.Errorf("Cents(%d).String() = %s, want %s", tt.amount, got, tt.want)
		}
	}
}

func TestCentsTimes(t *testing.T) {
	if got := Cents(550).Times(2); got != 1100 {
		t.Errorf("Cents(550).Times(2) = %d, want 1100", got)
	}
	if got := Cents(1200).Times(1); got != 1200 {
		t.Errorf("Cents(1200).Times(1) = %d, want 1200", got)
	}
}
