// Package fees computes the marketplace cut of a sale.
package fees

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Calculator splits a gross amount into the platform fee and the seller's share.
// The percentage is fixed when the calculator is built.
type Calculator struct {
	percent decimal.Decimal
}

// New creates a calculator for a percentage in the [0, 100] range, e.g. "15" or "12.5".
func New(percent string) (*Calculator, error) {
	p, err := decimal.NewFromString(percent)
	if err != nil {
		return nil, fmt.Errorf("invalid platform fee percent %q: %w", percent, err)
	}

	if p.IsNegative() || p.GreaterThan(hundred) {
		return nil, fmt.Errorf("platform fee percent %s is out of range [0, 100]", p)
	}

	return &Calculator{percent: p}, nil
}

// Percent returns the configured percentage.
func (c *Calculator) Percent() decimal.Decimal {
	return c.percent
}

// PlatformFee returns the fee for amount in minor units, rounded to the nearest unit.
func (c *Calculator) PlatformFee(amount int64) int64 {
	if amount == 0 {
		return 0
	}

	return decimal.NewFromInt(amount).
		Mul(c.percent).
		Div(hundred).
		Round(0).
		IntPart()
}

// SellerAmount returns what is left for the seller after the platform fee.
func (c *Calculator) SellerAmount(amount int64) int64 {
	return amount - c.PlatformFee(amount)
}
