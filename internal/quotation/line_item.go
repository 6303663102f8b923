// Package quotation holds the document draft aggregate and the arithmetic that
// keeps its lines, charges, discounts and totals consistent.
package quotation

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"quotedesk/internal/domain"
	"quotedesk/internal/gst"
)

var hundred = decimal.NewFromInt(100)

// DiscountBasis records which discount field the user last edited. The other
// field is derived from it on every recompute.
type DiscountBasis string

const (
	DiscountByPercent DiscountBasis = "percent"
	DiscountByAmount  DiscountBasis = "amount"
)

// LineItem is one product or service row on a document.
type LineItem struct {
	RowID           string          `json:"row_id"`
	ProductID       string          `json:"product_id"`
	VariantID       string          `json:"variant_id"`
	Name            string          `json:"name"`
	HSN             string          `json:"hsn"`
	Unit            string          `json:"unit"`
	IsService       bool            `json:"is_service"`
	Quantity        decimal.Decimal `json:"quantity"`
	Rate            decimal.Decimal `json:"rate"`
	FixedRate       decimal.Decimal `json:"fixed_rate"`
	DiscountPercent decimal.Decimal `json:"discount_percentage"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	DiscountBasis   DiscountBasis   `json:"discount_basis"`
	GSTPercent      decimal.Decimal `json:"gst"`
	TaxableAmount   decimal.Decimal `json:"taxable_amount"`
	CGST            decimal.Decimal `json:"cgst"`
	SGST            decimal.Decimal `json:"sgst"`
	IGST            decimal.Decimal `json:"igst"`
	Amount          decimal.Decimal `json:"line_total"`
	RateOverridden  bool            `json:"rate_overridden"`
	GSTOverridden   bool            `json:"gst_overridden"`
}

// LineEdit carries the user-editable fields of a row. Nil fields are left alone.
// When both discount fields are set the amount wins, as if it were typed last.
type LineEdit struct {
	Quantity        *decimal.Decimal `json:"quantity,omitempty"`
	Rate            *decimal.Decimal `json:"rate,omitempty"`
	DiscountPercent *decimal.Decimal `json:"discount_percentage,omitempty"`
	DiscountAmount  *decimal.Decimal `json:"discount_amount,omitempty"`
	GSTPercent      *decimal.Decimal `json:"gst,omitempty"`
}

// IsZero reports whether the edit changes nothing.
func (e LineEdit) IsZero() bool {
	return e.Quantity == nil && e.Rate == nil && e.DiscountPercent == nil &&
		e.DiscountAmount == nil && e.GSTPercent == nil
}

func newRowID() string {
	return uuid.New().String()
}

// newCatalogLine builds a row from catalog defaults. The rate source depends on
// the document type.
func newCatalogLine(item *domain.CatalogItem, docType domain.DocumentType, qty decimal.Decimal) LineItem {
	rate := item.DefaultRate(docType)
	return LineItem{
		RowID:         newRowID(),
		ProductID:     item.Ref.ProductID,
		VariantID:     item.Ref.VariantID,
		IsService:     item.Ref.IsService,
		Name:          item.Name,
		HSN:           item.HSN,
		Unit:          item.Unit,
		Quantity:      qty,
		Rate:          rate,
		FixedRate:     rate,
		GSTPercent:    item.GSTPercent,
		DiscountBasis: DiscountByPercent,
	}
}

// Ref returns the catalog reference of the row.
func (l *LineItem) Ref() domain.ItemRef {
	return domain.ItemRef{ProductID: l.ProductID, VariantID: l.VariantID, IsService: l.IsService}
}

// IsAdHoc reports whether the row was typed in rather than picked from the catalog.
func (l *LineItem) IsAdHoc() bool {
	return l.ProductID == ""
}

// TaxAmount is the sum of whatever tax components the row carries.
func (l *LineItem) TaxAmount() decimal.Decimal {
	return l.CGST.Add(l.SGST).Add(l.IGST)
}

// Gross is round2(quantity × rate).
func (l *LineItem) Gross() decimal.Decimal {
	return gst.Round2(l.Quantity.Mul(l.Rate))
}

// Apply copies the set fields of e onto the row. Editing the rate or GST marks
// the row as manually overridden so re-resolution leaves it alone.
func (l *LineItem) Apply(e LineEdit) {
	if e.Quantity != nil {
		l.Quantity = *e.Quantity
	}
	if e.Rate != nil {
		l.Rate = *e.Rate
		l.RateOverridden = true
	}
	if e.GSTPercent != nil {
		l.GSTPercent = *e.GSTPercent
		l.GSTOverridden = true
	}
	if e.DiscountPercent != nil {
		l.DiscountPercent = *e.DiscountPercent
		l.DiscountBasis = DiscountByPercent
	}
	if e.DiscountAmount != nil {
		l.DiscountAmount = *e.DiscountAmount
		l.DiscountBasis = DiscountByAmount
	}
}

// resolveFrom refreshes catalog-sourced fields. Manually overridden rate and GST
// are kept.
func (l *LineItem) resolveFrom(item *domain.CatalogItem, docType domain.DocumentType) {
	rate := item.DefaultRate(docType)
	l.FixedRate = rate
	if !l.RateOverridden {
		l.Rate = rate
	}
	if !l.GSTOverridden {
		l.GSTPercent = item.GSTPercent
	}
	if l.HSN == "" {
		l.HSN = item.HSN
	}
	if l.Unit == "" {
		l.Unit = item.Unit
	}
}

// Recompute derives the discount pair, taxable amount, tax split and line total.
// It never fails: negative inputs are floored and a zero gross yields a zero percent.
func (l *LineItem) Recompute(sameState bool) {
	l.Quantity = gst.NonNegative(l.Quantity)
	l.Rate = gst.NonNegative(l.Rate)
	l.GSTPercent = gst.NonNegative(l.GSTPercent)

	gross := l.Gross()
	// Cap at the exact product truncated to paise so rounding never lifts the
	// discount above quantity × rate.
	ceiling := l.Quantity.Mul(l.Rate).Truncate(2)
	switch l.DiscountBasis {
	case DiscountByAmount:
		l.DiscountAmount = gst.Clamp(gst.Round2(l.DiscountAmount), decimal.Zero, ceiling)
		if gross.IsZero() {
			l.DiscountPercent = decimal.Zero
		} else {
			l.DiscountPercent = gst.Round2(l.DiscountAmount.Mul(hundred).Div(gross))
		}
	default:
		l.DiscountBasis = DiscountByPercent
		l.DiscountPercent = gst.Clamp(l.DiscountPercent, decimal.Zero, hundred)
		l.DiscountAmount = decimal.Min(gst.Percent(gross, l.DiscountPercent), ceiling)
	}

	l.TaxableAmount = gst.NonNegative(gross.Sub(l.DiscountAmount))
	tax := gst.ComputeTax(l.TaxableAmount, l.GSTPercent, sameState)
	l.CGST, l.SGST, l.IGST = tax.CGST, tax.SGST, tax.IGST
	l.Amount = gst.Round2(l.TaxableAmount.Add(l.TaxAmount()))
}
