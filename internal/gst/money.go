// Package gst implements the Indian GST arithmetic used by sales and purchase
// documents: the CGST/SGST versus IGST split and the intra-state test.
package gst

import "github.com/shopspring/decimal"

var (
	hundred    = decimal.NewFromInt(100)
	twoHundred = decimal.NewFromInt(200)
)

// Round2 rounds to two decimal places, half away from zero. Every monetary
// rounding step in the engine goes through here.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// RoundWhole rounds to the nearest integer, half away from zero.
func RoundWhole(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// Percent returns round2(base × pct / 100).
func Percent(base, pct decimal.Decimal) decimal.Decimal {
	return Round2(base.Mul(pct).Div(hundred))
}

// Clamp limits d to [lo, hi].
func Clamp(d, lo, hi decimal.Decimal) decimal.Decimal {
	if d.LessThan(lo) {
		return lo
	}
	if d.GreaterThan(hi) {
		return hi
	}
	return d
}

// NonNegative floors d at zero.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
