package quotation

import (
	"github.com/shopspring/decimal"

	"quotedesk/internal/domain"
)

// BillingDetail is the editable view of a single row shown while its billing
// details are open. Edits are previewed here and only reach the row on Apply.
type BillingDetail struct {
	RowID           string          `json:"row_id"`
	Name            string          `json:"name"`
	HSN             string          `json:"hsn"`
	Quantity        decimal.Decimal `json:"quantity"`
	Rate            decimal.Decimal `json:"rate"`
	FixedRate       decimal.Decimal `json:"fixed_rate"`
	DiscountPercent decimal.Decimal `json:"discount_percentage"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	GSTPercent      decimal.Decimal `json:"gst"`
	TaxableAmount   decimal.Decimal `json:"taxable_amount"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	Amount          decimal.Decimal `json:"line_total"`
}

type billingDraft struct {
	rowID   string
	line    LineItem
	pending LineEdit
}

func (b *billingDraft) view() BillingDetail {
	return BillingDetail{
		RowID:           b.rowID,
		Name:            b.line.Name,
		HSN:             b.line.HSN,
		Quantity:        b.line.Quantity,
		Rate:            b.line.Rate,
		FixedRate:       b.line.FixedRate,
		DiscountPercent: b.line.DiscountPercent,
		DiscountAmount:  b.line.DiscountAmount,
		GSTPercent:      b.line.GSTPercent,
		TaxableAmount:   b.line.TaxableAmount,
		TaxAmount:       b.line.TaxAmount(),
		Amount:          b.line.Amount,
	}
}

// reset rebuilds the preview from the row with the pending edits on top. With
// dropRate a pending rate edit is discarded so the shown rate matches the
// freshly resolved one.
func (b *billingDraft) reset(row *LineItem, sameState, dropRate bool) {
	if dropRate {
		b.pending.Rate = nil
	}
	b.line = *row
	b.line.Apply(b.pending)
	b.line.Recompute(sameState)
}

// OpenBillingDetail starts editing the billing details of a row. Any detail
// already open is discarded.
func (d *Draft) OpenBillingDetail(rowID string) (BillingDetail, error) {
	idx := d.indexOf(rowID)
	if idx < 0 {
		return BillingDetail{}, domain.ErrRowNotFound
	}
	d.billing = &billingDraft{rowID: rowID}
	d.billing.reset(&d.lines[idx], d.ctx.SameState, false)
	return d.billing.view(), nil
}

// BillingDetail returns the open billing detail, if any.
func (d *Draft) BillingDetail() (BillingDetail, bool) {
	if d.billing == nil {
		return BillingDetail{}, false
	}
	return d.billing.view(), true
}

// EditBillingDetail previews an edit without touching the row.
func (d *Draft) EditBillingDetail(e LineEdit) (BillingDetail, error) {
	if d.billing == nil {
		return BillingDetail{}, domain.ErrRowNotFound
	}
	mergeEdit(&d.billing.pending, e)
	d.billing.line.Apply(e)
	d.billing.line.Recompute(d.ctx.SameState)
	return d.billing.view(), nil
}

// ApplyBillingDetail writes the previewed edits to the row and closes the detail.
func (d *Draft) ApplyBillingDetail() error {
	if d.billing == nil {
		return domain.ErrRowNotFound
	}
	b := d.billing
	d.billing = nil
	return d.UpdateLine(b.rowID, b.pending)
}

// AddBillingDetailAsRow appends the previewed values as a new row, leaving the
// source row unchanged, and closes the detail. It never merges into an existing row.
func (d *Draft) AddBillingDetailAsRow() (string, error) {
	if d.billing == nil {
		return "", domain.ErrRowNotFound
	}
	line := d.billing.line
	line.RowID = newRowID()
	d.billing = nil

	line.Recompute(d.ctx.SameState)
	d.lines = append(d.lines, line)
	d.recomputeTotals()
	return line.RowID, nil
}

// CloseBillingDetail discards the open detail.
func (d *Draft) CloseBillingDetail() {
	d.billing = nil
}

func (d *Draft) refreshBillingDetail(reResolved bool) {
	if d.billing == nil {
		return
	}
	idx := d.indexOf(d.billing.rowID)
	if idx < 0 {
		d.billing = nil
		return
	}
	d.billing.reset(&d.lines[idx], d.ctx.SameState, reResolved)
}

func mergeEdit(dst *LineEdit, e LineEdit) {
	if e.Quantity != nil {
		dst.Quantity = e.Quantity
	}
	if e.Rate != nil {
		dst.Rate = e.Rate
	}
	if e.GSTPercent != nil {
		dst.GSTPercent = e.GSTPercent
	}
	if e.DiscountPercent != nil {
		dst.DiscountPercent = e.DiscountPercent
		dst.DiscountAmount = nil
	}
	if e.DiscountAmount != nil {
		dst.DiscountAmount = e.DiscountAmount
		dst.DiscountPercent = nil
	}
}
