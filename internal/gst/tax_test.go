package gst_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"quotedesk/internal/gst"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "want %s, got %s %v", want, got.String(), msgAndArgs)
}

func TestComputeTax_SameState(t *testing.T) {
	b := gst.ComputeTax(d("180"), d("18"), true)

	assertDec(t, "16.20", b.CGST)
	assertDec(t, "16.20", b.SGST)
	assertDec(t, "0", b.IGST)
	assertDec(t, "32.40", b.TotalTax)
	assertDec(t, "212.40", b.GrandTotal)
}

func TestComputeTax_InterState(t *testing.T) {
	b := gst.ComputeTax(d("180"), d("18"), false)

	assertDec(t, "0", b.CGST)
	assertDec(t, "0", b.SGST)
	assertDec(t, "32.40", b.IGST)
	assertDec(t, "32.40", b.TotalTax)
	assertDec(t, "212.40", b.GrandTotal)
}

func TestComputeTax_SplitExclusivity(t *testing.T) {
	amounts := []string{"0", "0.01", "1", "99.99", "180", "12345.67"}
	rates := []string{"0", "0.25", "3", "5", "12", "18", "28"}

	for _, a := range amounts {
		for _, r := range rates {
			for _, same := range []bool{true, false} {
				b := gst.ComputeTax(d(a), d(r), same)
				if same {
					assert.True(t, b.IGST.IsZero(), "igst must be zero intra-state (%s @ %s)", a, r)
					assert.True(t, b.CGST.Equal(b.SGST), "cgst must equal sgst (%s @ %s)", a, r)
					assertDec(t, d(a).Mul(d(r)).Div(decimal.NewFromInt(200)).Round(2).String(), b.CGST)
				} else {
					assert.True(t, b.CGST.IsZero() && b.SGST.IsZero(), "cgst/sgst must be zero inter-state (%s @ %s)", a, r)
					assertDec(t, d(a).Mul(d(r)).Div(decimal.NewFromInt(100)).Round(2).String(), b.IGST)
				}
			}
		}
	}
}

func TestComputeTax_RoundsHalfAwayFromZero(t *testing.T) {
	// 0.25 × 18 / 200 = 0.0225 and 50.5 × 1 / 100 = 0.505
	b := gst.ComputeTax(d("0.25"), d("18"), true)
	assertDec(t, "0.02", b.CGST)

	b = gst.ComputeTax(d("50.5"), d("1"), false)
	assertDec(t, "0.51", b.IGST)
}

func TestComputeTax_NegativeTaxable(t *testing.T) {
	b := gst.ComputeTax(d("-100"), d("18"), false)

	assertDec(t, "-18", b.IGST)
	assertDec(t, "-118", b.GrandTotal)
}

func TestRoundWhole(t *testing.T) {
	assertDec(t, "202", gst.RoundWhole(d("201.78")))
	assertDec(t, "3", gst.RoundWhole(d("2.5")))
	assertDec(t, "-3", gst.RoundWhole(d("-2.5")))
}

func TestClamp(t *testing.T) {
	assertDec(t, "0", gst.Clamp(d("-1"), decimal.Zero, d("100")))
	assertDec(t, "100", gst.Clamp(d("101"), decimal.Zero, d("100")))
	assertDec(t, "42", gst.Clamp(d("42"), decimal.Zero, d("100")))
}
