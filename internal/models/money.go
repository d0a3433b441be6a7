package models

import "fmt"

// Cents is a monetary amount in integer minor units. All price arithmetic in
// the system happens on this type; floating point never touches money.
type Cents int64

// Times returns the amount multiplied by a line quantity.
func (c Cents) Times(qty int) Cents {
	return c * Cents(qty)
}

// String renders the amount with two fractional digits, e.g. "12.50".
func (c Cents) String() string {
	sign := ""
	v := c
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
