// Package pricing derives cart totals. It holds no state besides the tax rate.
//
// All arithmetic is done in full decimal precision; rounding to cents only
// happens through Round2 or Summary.Rounded at output boundaries.
package pricing

import (
	"fmt"

	"go-pos-cart/internal/model"

	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the rate used when configuration does not set one.
var DefaultTaxRate = decimal.RequireFromString("0.08")

type Calculator struct {
	taxRate decimal.Decimal
}

type Summary struct {
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
}

func NewCalculator(taxRate decimal.Decimal) (*Calculator, error) {
	if taxRate.IsNegative() {
		return nil, fmt.Errorf("tax rate must not be negative, got %s", taxRate)
	}
	return &Calculator{taxRate: taxRate}, nil
}

// MustCalculator is NewCalculator for static rates; it panics on a negative rate.
func MustCalculator(taxRate decimal.Decimal) *Calculator {
	c, err := NewCalculator(taxRate)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Calculator) TaxRate() decimal.Decimal {
	return c.taxRate
}

// Compute returns unrounded figures for lines.
func (c *Calculator) Compute(lines []model.CartLine) Summary {
	var s Summary
	s.Subtotal = decimal.Zero
	for _, l := range lines {
		s.ItemCount += l.Quantity
		s.Subtotal = s.Subtotal.Add(l.LineTotal())
	}
	s.Tax = s.Subtotal.Mul(c.taxRate)
	s.Total = s.Subtotal.Add(s.Tax)
	return s
}

// Rounded rounds every money figure to cents. Total is rounded from the
// full-precision total, not summed from the rounded parts.
func (s Summary) Rounded() Summary {
	return Summary{
		ItemCount: s.ItemCount,
		Subtotal:  Round2(s.Subtotal),
		Tax:       Round2(s.Tax),
		Total:     Round2(s.Total),
	}
}

// Round2 rounds half-up (away from zero) to two decimal places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatMoney renders d with two decimals behind symbol, e.g. "$9.45".
func FormatMoney(symbol string, d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + symbol + d.Neg().StringFixed(2)
	}
	return symbol + d.StringFixed(2)
}

// FormatRate renders a fractional rate as a percentage label, e.g. "8%".
func FormatRate(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String() + "%"
}
