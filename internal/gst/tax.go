package gst

import "github.com/shopspring/decimal"

// TaxBreakdown is the tax split for a single taxable amount.
type TaxBreakdown struct {
	CGST       decimal.Decimal `json:"cgst"`
	SGST       decimal.Decimal `json:"sgst"`
	IGST       decimal.Decimal `json:"igst"`
	TotalTax   decimal.Decimal `json:"total_tax"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// ComputeTax splits GST on taxable at gstPercent. Intra-state supplies carry
// CGST and SGST in equal halves; inter-state supplies carry IGST only.
// A negative taxable amount yields negative components.
func ComputeTax(taxable, gstPercent decimal.Decimal, sameState bool) TaxBreakdown {
	var b TaxBreakdown
	if sameState {
		half := Round2(taxable.Mul(gstPercent).Div(twoHundred))
		b.CGST, b.SGST, b.IGST = half, half, decimal.Zero
	} else {
		b.CGST, b.SGST = decimal.Zero, decimal.Zero
		b.IGST = Percent(taxable, gstPercent)
	}
	b.TotalTax = Round2(b.CGST.Add(b.SGST).Add(b.IGST))
	b.GrandTotal = Round2(taxable.Add(b.TotalTax))
	return b
}
