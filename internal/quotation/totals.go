package quotation

import (
	"github.com/shopspring/decimal"

	"quotedesk/internal/gst"
)

// Totals are the document-level figures derived from lines and adjustments.
type Totals struct {
	TaxableSubtotal decimal.Decimal `json:"taxable_subtotal"`
	TaxSubtotal     decimal.Decimal `json:"tax_subtotal"`
	Base            decimal.Decimal `json:"base"`
	ChargeTotal     decimal.Decimal `json:"charge_total"`
	DiscountTotal   decimal.Decimal `json:"discount_total"`
	Total           decimal.Decimal `json:"total"`
	RoundOffAmount  decimal.Decimal `json:"roundoff_amount"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
}

// ComputeTotals folds lines, charges and discounts into document totals.
// The tax subtotal sums every component each line carries, so a document mixing
// intra-state and inter-state lines still adds up.
func ComputeTotals(lines []LineItem, charges, discounts []Adjustment, includeRoundOff bool) Totals {
	var t Totals
	for i := range lines {
		t.TaxableSubtotal = t.TaxableSubtotal.Add(lines[i].TaxableAmount)
		t.TaxSubtotal = t.TaxSubtotal.Add(lines[i].TaxAmount())
	}
	t.Base = t.TaxableSubtotal.Add(t.TaxSubtotal)
	t.ChargeTotal = ChargeTotal(t.Base, charges)
	t.DiscountTotal = DiscountTotal(t.Base, discounts)
	t.Total = gst.Round2(t.Base.Add(t.ChargeTotal).Sub(t.DiscountTotal))

	if includeRoundOff {
		t.GrandTotal = gst.RoundWhole(t.Total)
		t.RoundOffAmount = t.GrandTotal.Sub(t.Total)
	} else {
		t.GrandTotal = t.Total
		t.RoundOffAmount = decimal.Zero
	}
	return t
}
