package money

import (
	"fmt"
	"math"
)

// Cents is a money amount in integer minor units (US cents). Prices arrive
// from the catalog API as plain decimal numbers; they are converted to Cents
// exactly once, when a product is snapshotted into the cart, and every later
// computation is integer arithmetic.
type Cents int64

// FromFloat converts a decimal amount (e.g. 12.34) to Cents, rounding half
// away from zero.
func FromFloat(amount float64) Cents {
	return Cents(math.Round(amount * 100))
}

// Mul scales the amount by an item quantity.
func (c Cents) Mul(qty int) Cents {
	return c * Cents(qty)
}

// Float64 returns the amount in major units for JSON payloads.
func (c Cents) Float64() float64 {
	return float64(c) / 100
}

func (c Cents) String() string {
	sign := ""
	v := c
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s$%d.%02d", sign, v/100, v%100)
}
