package money

import "github.com/shopspring/decimal"

// Cents is an amount in the currency's minor unit. All balance and split
// arithmetic happens on this type; decimals exist only at the API and
// database boundaries.
type Cents int64

// FromDecimal converts a decimal amount to cents, rounding half away from
// zero at the second decimal place.
func FromDecimal(d decimal.Decimal) Cents {
	return Cents(d.Round(2).Shift(2).IntPart())
}

// Decimal converts cents back to a two-decimal amount.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// String formats cents as a plain decimal string, e.g. "33.34".
func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

// Abs returns the magnitude of the amount.
func (c Cents) Abs() Cents {
	if c < 0 {
		return -c
	}
	return c
}
