package quotation

import (
	"github.com/shopspring/decimal"

	"quotedesk/internal/domain"
)

// Catalog resolves catalog defaults for a row. A miss is not an error: the row
// keeps whatever values it already has.
type Catalog interface {
	Lookup(ref domain.ItemRef) (*domain.CatalogItem, bool)
}

// StaticCatalog is an in-memory Catalog keyed by item reference.
type StaticCatalog map[domain.ItemRef]*domain.CatalogItem

// NewStaticCatalog indexes items by their reference.
func NewStaticCatalog(items []domain.CatalogItem) StaticCatalog {
	c := make(StaticCatalog, len(items))
	for i := range items {
		c[items[i].Ref] = &items[i]
	}
	return c
}

// Lookup implements Catalog.
func (c StaticCatalog) Lookup(ref domain.ItemRef) (*domain.CatalogItem, bool) {
	item, ok := c[ref]
	return item, ok
}

// State is the recalculation state of a draft.
type State int

const (
	StateIdle State = iota
	StateRecomputing
)

func (s State) String() string {
	if s == StateRecomputing {
		return "recomputing"
	}
	return "idle"
}

// AddOptions controls how a catalog item is added.
type AddOptions struct {
	// NewRow appends even when a row for the same item already exists.
	NewRow bool
}

// AdHocItem is a row typed in by the user with no catalog entry behind it.
type AdHocItem struct {
	Name       string          `json:"name"`
	HSN        string          `json:"hsn"`
	Unit       string          `json:"unit"`
	IsService  bool            `json:"is_service"`
	Quantity   decimal.Decimal `json:"quantity"`
	Rate       decimal.Decimal `json:"rate"`
	GSTPercent decimal.Decimal `json:"gst"`
}

// Draft is a document being edited. It owns its lines and adjustments and keeps
// the tax context and totals current after every mutation. A Draft is not safe
// for concurrent use.
type Draft struct {
	docType         domain.DocumentType
	branch          *domain.Branch
	customer        *domain.Customer
	billingAddr     *domain.Address
	shippingAddr    *domain.Address
	includeRoundOff bool

	lines     []LineItem
	charges   []Adjustment
	discounts []Adjustment

	catalog Catalog
	ctx     TaxContext
	totals  Totals
	billing *billingDraft
	state   State
}

// NewDraft returns an empty draft. An invalid document type falls back to quotation.
func NewDraft(docType domain.DocumentType, catalog Catalog) *Draft {
	if !domain.ValidDocumentTypes[docType] {
		docType = domain.DocumentTypeQuotation
	}
	if catalog == nil {
		catalog = StaticCatalog{}
	}
	d := &Draft{docType: docType, catalog: catalog}
	d.recomputeAll(false)
	return d
}

func (d *Draft) DocumentType() domain.DocumentType { return d.docType }
func (d *Draft) Branch() *domain.Branch            { return d.branch }
func (d *Draft) Customer() *domain.Customer        { return d.customer }
func (d *Draft) BillingAddress() *domain.Address   { return d.billingAddr }
func (d *Draft) ShippingAddress() *domain.Address  { return d.shippingAddr }
func (d *Draft) IncludeRoundOff() bool             { return d.includeRoundOff }
func (d *Draft) TaxContext() TaxContext            { return d.ctx }
func (d *Draft) Totals() Totals                    { return d.totals }
func (d *Draft) State() State                      { return d.state }

// Lines returns a copy of the rows in display order.
func (d *Draft) Lines() []LineItem {
	out := make([]LineItem, len(d.lines))
	copy(out, d.lines)
	return out
}

// Line returns a copy of the row with the given ID.
func (d *Draft) Line(rowID string) (LineItem, bool) {
	idx := d.indexOf(rowID)
	if idx < 0 {
		return LineItem{}, false
	}
	return d.lines[idx], true
}

func (d *Draft) Charges() []Adjustment   { return append([]Adjustment(nil), d.charges...) }
func (d *Draft) Discounts() []Adjustment { return append([]Adjustment(nil), d.discounts...) }

// SetCatalog swaps the catalog used for later additions and re-resolution.
func (d *Draft) SetCatalog(c Catalog) {
	if c == nil {
		c = StaticCatalog{}
	}
	d.catalog = c
}

// SetDocumentType changes the document type. The type decides the default rate
// source, so manual rate overrides are cleared and every row is re-resolved.
// Setting the current type is a no-op.
func (d *Draft) SetDocumentType(t domain.DocumentType) error {
	if !domain.ValidDocumentTypes[t] {
		return domain.ErrInvalidDocumentType
	}
	if t == d.docType {
		return nil
	}
	d.docType = t
	for i := range d.lines {
		if !d.lines[i].IsAdHoc() {
			d.lines[i].RateOverridden = false
		}
	}
	d.recomputeAll(true)
	return nil
}

// SetBranch changes the seller branch and recomputes every row.
func (d *Draft) SetBranch(b *domain.Branch) {
	d.branch = b
	d.recomputeAll(true)
}

// SetCustomer changes the buyer. Selected addresses are rebound to the new
// customer's book by ID, or cleared when the book has no such address.
func (d *Draft) SetCustomer(c *domain.Customer) {
	d.customer = c
	d.billingAddr = rebindAddress(c, d.billingAddr)
	d.shippingAddr = rebindAddress(c, d.shippingAddr)
	d.recomputeAll(true)
}

func rebindAddress(c *domain.Customer, a *domain.Address) *domain.Address {
	if a == nil {
		return nil
	}
	if fresh, ok := c.Address(a.ID); ok {
		return fresh
	}
	return nil
}

// SetBillingAddress changes the billing address and recomputes every row.
func (d *Draft) SetBillingAddress(a *domain.Address) {
	d.billingAddr = a
	d.recomputeAll(true)
}

// SetShippingAddress changes the shipping address and recomputes every row.
func (d *Draft) SetShippingAddress(a *domain.Address) {
	d.shippingAddr = a
	d.recomputeAll(true)
}

// SetIncludeRoundOff toggles rounding the grand total to a whole amount.
func (d *Draft) SetIncludeRoundOff(on bool) {
	d.includeRoundOff = on
	d.recomputeTotals()
}

// SetCharges replaces the charge list.
func (d *Draft) SetCharges(charges []Adjustment) error {
	if err := validateAdjustments(charges); err != nil {
		return err
	}
	d.charges = normalizeAdjustments(charges)
	d.recomputeTotals()
	return nil
}

// SetDiscounts replaces the document-level discount list.
func (d *Draft) SetDiscounts(discounts []Adjustment) error {
	if err := validateAdjustments(discounts); err != nil {
		return err
	}
	d.discounts = normalizeAdjustments(discounts)
	d.recomputeTotals()
	return nil
}

// AddItem adds a catalog item. Unless opts.NewRow is set, an existing row for
// the same product, variant and kind has its quantity incremented instead.
// A non-positive qty counts as one.
func (d *Draft) AddItem(ref domain.ItemRef, qty decimal.Decimal, opts AddOptions) (string, error) {
	if !qty.IsPositive() {
		qty = decimal.NewFromInt(1)
	}
	item, ok := d.catalog.Lookup(ref)
	if !ok {
		return "", domain.ErrCatalogItemNotFound
	}

	if !opts.NewRow {
		for i := range d.lines {
			l := &d.lines[i]
			if !l.IsAdHoc() && l.Ref() == ref {
				l.Quantity = l.Quantity.Add(qty)
				d.recomputeRow(i)
				return l.RowID, nil
			}
		}
	}

	line := newCatalogLine(item, d.docType, qty)
	d.lines = append(d.lines, line)
	d.recomputeRow(len(d.lines) - 1)
	return line.RowID, nil
}

// AddAdHocItem appends a row with no catalog entry. Its rate and GST count as
// manual values.
func (d *Draft) AddAdHocItem(item AdHocItem) string {
	qty := item.Quantity
	if !qty.IsPositive() {
		qty = decimal.NewFromInt(1)
	}
	line := LineItem{
		RowID:          newRowID(),
		Name:           item.Name,
		HSN:            item.HSN,
		Unit:           item.Unit,
		IsService:      item.IsService,
		Quantity:       qty,
		Rate:           item.Rate,
		FixedRate:      item.Rate,
		GSTPercent:     item.GSTPercent,
		DiscountBasis:  DiscountByPercent,
		RateOverridden: true,
		GSTOverridden:  true,
	}
	d.lines = append(d.lines, line)
	d.recomputeRow(len(d.lines) - 1)
	return line.RowID
}

// UpdateLine applies a user edit to one row.
func (d *Draft) UpdateLine(rowID string, e LineEdit) error {
	idx := d.indexOf(rowID)
	if idx < 0 {
		return domain.ErrRowNotFound
	}
	d.lines[idx].Apply(e)
	d.recomputeRow(idx)
	return nil
}

// RemoveLine deletes a row.
func (d *Draft) RemoveLine(rowID string) error {
	idx := d.indexOf(rowID)
	if idx < 0 {
		return domain.ErrRowNotFound
	}
	d.lines = append(d.lines[:idx], d.lines[idx+1:]...)
	if d.billing != nil && d.billing.rowID == rowID {
		d.billing = nil
	}
	d.recomputeTotals()
	return nil
}

func (d *Draft) indexOf(rowID string) int {
	for i := range d.lines {
		if d.lines[i].RowID == rowID {
			return i
		}
	}
	return -1
}

// recomputeAll re-derives the tax context and every row. With reResolve set,
// catalog rows pick up fresh defaults first; a row whose lookup misses is left
// exactly as it was.
func (d *Draft) recomputeAll(reResolve bool) {
	d.state = StateRecomputing
	defer func() { d.state = StateIdle }()

	d.ctx = ResolveTaxContext(d.branch, d.customer, d.billingAddr, d.shippingAddr)
	for i := range d.lines {
		l := &d.lines[i]
		if reResolve && !l.IsAdHoc() {
			item, ok := d.catalog.Lookup(l.Ref())
			if !ok {
				continue
			}
			l.resolveFrom(item, d.docType)
		}
		l.Recompute(d.ctx.SameState)
	}
	d.refreshBillingDetail(reResolve)
	d.recomputeTotals()
}

func (d *Draft) recomputeRow(idx int) {
	d.lines[idx].Recompute(d.ctx.SameState)
	if d.billing != nil && d.billing.rowID == d.lines[idx].RowID {
		d.billing.reset(&d.lines[idx], d.ctx.SameState, false)
	}
	d.recomputeTotals()
}

func (d *Draft) recomputeTotals() {
	d.totals = ComputeTotals(d.lines, d.charges, d.discounts, d.includeRoundOff)
}
