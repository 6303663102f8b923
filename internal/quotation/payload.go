package quotation

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"quotedesk/internal/domain"
)

// PayloadLine is the persisted form of a row.
type PayloadLine struct {
	RowID           string          `json:"row_id"`
	ProductID       string          `json:"product_id"`
	VariantID       string          `json:"variant_id,omitempty"`
	Name            string          `json:"name"`
	HSN             string          `json:"hsn"`
	Unit            string          `json:"unit"`
	Quantity        decimal.Decimal `json:"quantity"`
	Rate            decimal.Decimal `json:"rate"`
	FixedRate       decimal.Decimal `json:"fixed_rate"`
	DiscountPercent decimal.Decimal `json:"discount_percentage"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	GST             decimal.Decimal `json:"gst"`
	TaxableAmount   decimal.Decimal `json:"taxable_amount"`
	CGST            decimal.Decimal `json:"cgst"`
	SGST            decimal.Decimal `json:"sgst"`
	IGST            decimal.Decimal `json:"igst"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	LineTotal       decimal.Decimal `json:"line_total"`
	IsService       bool            `json:"is_service"`
}

// Payload is the document body stored with a quotation and returned to clients.
// TotalAmount is the taxable subtotal.
type Payload struct {
	DocumentType    domain.DocumentType `json:"document_type"`
	LineItems       []PayloadLine       `json:"line_items"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	TaxAmount       decimal.Decimal     `json:"tax_amount"`
	ChargeTotal     decimal.Decimal     `json:"charge_total"`
	DiscountTotal   decimal.Decimal     `json:"discount_total"`
	RoundOffAmount  decimal.Decimal     `json:"roundoff_amount"`
	GrandTotal      decimal.Decimal     `json:"grand_total"`
	IncludeRoundOff bool                `json:"include_round_off"`
	ExtraCharges    []Adjustment        `json:"extra_charges"`
	Discounts       []Adjustment        `json:"discounts"`
	SameState       bool                `json:"same_state"`
}

// Payload snapshots the draft in its persisted form.
func (d *Draft) Payload() Payload {
	p := Payload{
		DocumentType:    d.docType,
		LineItems:       make([]PayloadLine, 0, len(d.lines)),
		TotalAmount:     d.totals.TaxableSubtotal,
		TaxAmount:       d.totals.TaxSubtotal,
		ChargeTotal:     d.totals.ChargeTotal,
		DiscountTotal:   d.totals.DiscountTotal,
		RoundOffAmount:  d.totals.RoundOffAmount,
		GrandTotal:      d.totals.GrandTotal,
		IncludeRoundOff: d.includeRoundOff,
		ExtraCharges:    d.Charges(),
		Discounts:       d.Discounts(),
		SameState:       d.ctx.SameState,
	}
	for i := range d.lines {
		l := &d.lines[i]
		p.LineItems = append(p.LineItems, PayloadLine{
			RowID:           l.RowID,
			ProductID:       l.ProductID,
			VariantID:       l.VariantID,
			Name:            l.Name,
			HSN:             l.HSN,
			Unit:            l.Unit,
			Quantity:        l.Quantity,
			Rate:            l.Rate,
			FixedRate:       l.FixedRate,
			DiscountPercent: l.DiscountPercent,
			DiscountAmount:  l.DiscountAmount,
			GST:             l.GSTPercent,
			TaxableAmount:   l.TaxableAmount,
			CGST:            l.CGST,
			SGST:            l.SGST,
			IGST:            l.IGST,
			TaxAmount:       l.TaxAmount(),
			LineTotal:       l.Amount,
			IsService:       l.IsService,
		})
	}
	return p
}

// Marshal encodes the payload for storage.
func (p *Payload) Marshal() (json.RawMessage, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshaling quotation payload: %w", err)
	}
	return raw, nil
}

// ParsePayload decodes a stored payload.
func ParsePayload(raw json.RawMessage) (*Payload, error) {
	var p Payload
	if len(raw) == 0 {
		return &p, nil
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("unmarshaling quotation payload: %w", err)
	}
	return &p, nil
}

// PrefillOptions carries the master data a stored document is reopened against.
type PrefillOptions struct {
	Catalog  Catalog
	Branch   *domain.Branch
	Customer *domain.Customer
	Billing  *domain.Address
	Shipping *domain.Address
}

// Prefill rebuilds a draft from a stored payload. Rows are fully populated
// before the first recompute so stored values are never replaced by catalog
// defaults: stored rate and GST are kept as manual values and the stored
// discount amount is authoritative. Recomputing therefore reproduces the
// stored taxable, tax and line figures.
func Prefill(p *Payload, opts PrefillOptions) *Draft {
	d := NewDraft(p.DocumentType, opts.Catalog)
	d.branch = opts.Branch
	d.customer = opts.Customer
	d.billingAddr = opts.Billing
	d.shippingAddr = opts.Shipping
	d.includeRoundOff = p.IncludeRoundOff
	d.charges = normalizeAdjustments(p.ExtraCharges)
	d.discounts = normalizeAdjustments(p.Discounts)

	d.lines = make([]LineItem, 0, len(p.LineItems))
	for i := range p.LineItems {
		pl := &p.LineItems[i]
		rowID := pl.RowID
		if rowID == "" {
			rowID = newRowID()
		}
		d.lines = append(d.lines, LineItem{
			RowID:           rowID,
			ProductID:       pl.ProductID,
			VariantID:       pl.VariantID,
			Name:            pl.Name,
			HSN:             pl.HSN,
			Unit:            pl.Unit,
			IsService:       pl.IsService,
			Quantity:        pl.Quantity,
			Rate:            pl.Rate,
			FixedRate:       pl.FixedRate,
			DiscountPercent: pl.DiscountPercent,
			DiscountAmount:  pl.DiscountAmount,
			DiscountBasis:   DiscountByAmount,
			GSTPercent:      pl.GST,
			RateOverridden:  true,
			GSTOverridden:   true,
		})
	}
	d.recomputeAll(false)
	return d
}
