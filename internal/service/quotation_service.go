package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"quotedesk/internal/domain"
	"quotedesk/internal/gst"
	"quotedesk/internal/metrics"
	"quotedesk/internal/port"
	"quotedesk/internal/quotation"
)

const dateLayout = "2006-01-02"

// LineInput is one row of a document request. Catalog rows name a product
// (and optionally a variant); ad-hoc rows carry the item inline. Edit is applied
// after the row is added.
type LineInput struct {
	ProductID string               `json:"product_id"`
	VariantID string               `json:"variant_id"`
	IsService bool                 `json:"is_service"`
	Quantity  decimal.Decimal      `json:"quantity"`
	NewRow    bool                 `json:"new_row"`
	AdHoc     *quotation.AdHocItem `json:"ad_hoc,omitempty"`
	Edit      quotation.LineEdit   `json:"edit"`
}

func (l *LineInput) ref() domain.ItemRef {
	return domain.ItemRef{ProductID: l.ProductID, VariantID: l.VariantID, IsService: l.IsService}
}

// BillingDetailAction says what happens to a billing-detail edit after it is previewed.
type BillingDetailAction string

const (
	BillingDetailPreview BillingDetailAction = "preview"
	BillingDetailApply   BillingDetailAction = "apply"
	BillingDetailAddRow  BillingDetailAction = "add_row"
)

// BillingDetailInput opens the billing details of one request line and edits them.
// With the apply action the edit reaches the row; add_row appends it as a new row.
type BillingDetailInput struct {
	LineIndex int                 `json:"line_index"`
	Edit      quotation.LineEdit  `json:"edit"`
	Action    BillingDetailAction `json:"action"`
}

// QuotationInput is the DTO for previewing, creating and replacing a document.
type QuotationInput struct {
	TenantID          uuid.UUID              `json:"-"`
	UserID            uuid.UUID              `json:"-"`
	DocumentType      domain.DocumentType    `json:"document_type"`
	SeriesID          string                 `json:"series_id"`
	DocumentNumber    string                 `json:"document_number"`
	CustomerID        string                 `json:"customer_id"`
	BranchID          string                 `json:"branch_id"`
	BillingAddressID  string                 `json:"billing_address_id"`
	ShippingAddressID string                 `json:"shipping_address_id"`
	SalesPersonID     string                 `json:"sales_person_id"`
	IssueDate         string                 `json:"issue_date"`
	ValidUntil        string                 `json:"valid_until"`
	Notes             string                 `json:"notes"`
	Terms             string                 `json:"terms"`
	IncludeRoundOff   bool                   `json:"include_round_off"`
	Lines             []LineInput            `json:"lines"`
	ExtraCharges      []quotation.Adjustment `json:"extra_charges"`
	Discounts         []quotation.Adjustment `json:"discounts"`
	BillingDetail     *BillingDetailInput    `json:"billing_detail,omitempty"`
}

// ChangeContextInput is the DTO for repricing a stored document against a new
// document type, branch or address. Nil fields keep the stored value.
type ChangeContextInput struct {
	TenantID          uuid.UUID            `json:"-"`
	ID                uuid.UUID            `json:"-"`
	DocumentType      *domain.DocumentType `json:"document_type"`
	BranchID          *string              `json:"branch_id"`
	BillingAddressID  *string              `json:"billing_address_id"`
	ShippingAddressID *string              `json:"shipping_address_id"`
}

// QuotationResult is the outcome of a preview.
type QuotationResult struct {
	TaxContext    quotation.TaxContext     `json:"tax_context"`
	Payload       quotation.Payload        `json:"payload"`
	RowIDs        []string                 `json:"row_ids"`
	BillingDetail *quotation.BillingDetail `json:"billing_detail,omitempty"`
}

// QuotationService defines the quotation drafting and persistence contract.
type QuotationService interface {
	Preview(ctx context.Context, input *QuotationInput) (*QuotationResult, error)
	Create(ctx context.Context, input *QuotationInput) (*domain.Quotation, error)
	Update(ctx context.Context, id uuid.UUID, input *QuotationInput) (*domain.Quotation, error)
	ChangeContext(ctx context.Context, input *ChangeContextInput) (*domain.Quotation, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Quotation, error)
	List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Quotation, int, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type quotationService struct {
	repo    port.QuotationRepository
	records port.MasterDataSource
	hsn     *gst.HSNLookup
	metrics *metrics.Metrics
	log     *zap.Logger
	now     func() time.Time
}

// NewQuotationService creates a new QuotationService implementation. hsn, m and
// log may be nil.
func NewQuotationService(
	repo port.QuotationRepository,
	records port.MasterDataSource,
	hsn *gst.HSNLookup,
	m *metrics.Metrics,
	log *zap.Logger,
) QuotationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &quotationService{
		repo:    repo,
		records: records,
		hsn:     hsn,
		metrics: m,
		log:     log.Named("quotation"),
		now:     time.Now,
	}
}

func (s *quotationService) Preview(ctx context.Context, input *QuotationInput) (result *QuotationResult, err error) {
	defer func(start time.Time) { s.metrics.ObserveOperation("preview", start, err) }(time.Now())

	d, rowIDs, err := s.buildDraft(ctx, input)
	if err != nil {
		return nil, err
	}

	result = &QuotationResult{
		TaxContext: d.TaxContext(),
		RowIDs:     rowIDs,
	}
	if bd := input.BillingDetail; bd != nil {
		if bd.LineIndex < 0 || bd.LineIndex >= len(rowIDs) {
			return nil, domain.ErrRowNotFound
		}
		if _, err = d.OpenBillingDetail(rowIDs[bd.LineIndex]); err != nil {
			return nil, err
		}
		var view quotation.BillingDetail
		if view, err = d.EditBillingDetail(bd.Edit); err != nil {
			return nil, err
		}
		switch bd.Action {
		case BillingDetailApply:
			if err = d.ApplyBillingDetail(); err != nil {
				return nil, err
			}
		case BillingDetailAddRow:
			var rowID string
			if rowID, err = d.AddBillingDetailAsRow(); err != nil {
				return nil, err
			}
			result.RowIDs = append(result.RowIDs, rowID)
		default:
			result.BillingDetail = &view
		}
	}
	result.Payload = d.Payload()
	return result, nil
}

func (s *quotationService) Create(ctx context.Context, input *QuotationInput) (q *domain.Quotation, err error) {
	defer func(start time.Time) { s.metrics.ObserveOperation("create", start, err) }(time.Now())

	d, _, err := s.buildDraft(ctx, input)
	if err != nil {
		return nil, err
	}
	if err = quotation.ValidateForSave(header(input), d); err != nil {
		return nil, err
	}

	q = &domain.Quotation{
		ID:        uuid.New(),
		TenantID:  input.TenantID,
		CreatedBy: input.UserID,
	}
	if err = s.fill(q, input, d); err != nil {
		return nil, err
	}
	if err = s.repo.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("creating quotation: %w", err)
	}

	s.observeSaved(q, d)
	s.log.Info("quotation created",
		zap.String("quotation_id", q.ID.String()),
		zap.String("tenant_id", q.TenantID.String()),
		zap.String("document_type", string(q.DocumentType)),
		zap.String("grand_total", q.GrandTotal.StringFixed(2)),
	)
	return q, nil
}

func (s *quotationService) Update(ctx context.Context, id uuid.UUID, input *QuotationInput) (q *domain.Quotation, err error) {
	defer func(start time.Time) { s.metrics.ObserveOperation("update", start, err) }(time.Now())

	q, err = s.repo.GetByID(ctx, input.TenantID, id)
	if err != nil {
		return nil, err
	}

	d, _, err := s.buildDraft(ctx, input)
	if err != nil {
		return nil, err
	}
	if err = quotation.ValidateForSave(header(input), d); err != nil {
		return nil, err
	}

	if err = s.fill(q, input, d); err != nil {
		return nil, err
	}
	// The stored workbook no longer matches the document.
	q.ArchiveKey = ""
	if err = s.repo.Update(ctx, q); err != nil {
		return nil, fmt.Errorf("updating quotation: %w", err)
	}

	s.observeSaved(q, d)
	s.log.Info("quotation updated",
		zap.String("quotation_id", q.ID.String()),
		zap.String("tenant_id", q.TenantID.String()),
		zap.String("grand_total", q.GrandTotal.StringFixed(2)),
	)
	return q, nil
}

func (s *quotationService) ChangeContext(ctx context.Context, input *ChangeContextInput) (q *domain.Quotation, err error) {
	defer func(start time.Time) { s.metrics.ObserveOperation("change_context", start, err) }(time.Now())

	q, err = s.repo.GetByID(ctx, input.TenantID, input.ID)
	if err != nil {
		return nil, err
	}
	p, err := quotation.ParsePayload(q.Payload)
	if err != nil {
		return nil, err
	}

	// Resolve everything before touching the draft so a failed lookup leaves nothing half-applied.
	branch, err := s.branch(ctx, q.TenantID, q.BranchID)
	if err != nil {
		return nil, err
	}
	customer, err := s.customer(ctx, q.TenantID, q.CustomerID)
	if err != nil {
		return nil, err
	}
	billing, err := address(customer, q.BillingAddressID)
	if err != nil {
		return nil, err
	}
	shipping, err := address(customer, q.ShippingAddressID)
	if err != nil {
		return nil, err
	}

	refs := make([]domain.ItemRef, 0, len(p.LineItems))
	for i := range p.LineItems {
		if l := &p.LineItems[i]; l.ProductID != "" {
			refs = append(refs, domain.ItemRef{ProductID: l.ProductID, VariantID: l.VariantID, IsService: l.IsService})
		}
	}
	catalog, err := s.catalog(ctx, q.TenantID, refs)
	if err != nil {
		return nil, err
	}

	var newBranch *domain.Branch
	if input.BranchID != nil && *input.BranchID != q.BranchID {
		if newBranch, err = s.branch(ctx, q.TenantID, *input.BranchID); err != nil {
			return nil, err
		}
	}
	var newBilling, newShipping *domain.Address
	if input.BillingAddressID != nil {
		if newBilling, err = address(customer, *input.BillingAddressID); err != nil {
			return nil, err
		}
	}
	if input.ShippingAddressID != nil {
		if newShipping, err = address(customer, *input.ShippingAddressID); err != nil {
			return nil, err
		}
	}

	d := quotation.Prefill(p, quotation.PrefillOptions{
		Catalog:  catalog,
		Branch:   branch,
		Customer: customer,
		Billing:  billing,
		Shipping: shipping,
	})

	if input.DocumentType != nil && *input.DocumentType != d.DocumentType() {
		if err = d.SetDocumentType(*input.DocumentType); err != nil {
			return nil, err
		}
		q.DocumentType = d.DocumentType()
	}
	if input.BranchID != nil && *input.BranchID != q.BranchID {
		d.SetBranch(newBranch)
		q.BranchID = *input.BranchID
	}
	if input.BillingAddressID != nil {
		d.SetBillingAddress(newBilling)
		q.BillingAddressID = *input.BillingAddressID
	}
	if input.ShippingAddressID != nil {
		d.SetShippingAddress(newShipping)
		q.ShippingAddressID = *input.ShippingAddressID
	}

	if err = applyTotals(q, d); err != nil {
		return nil, err
	}
	q.ArchiveKey = ""
	if err = s.repo.Update(ctx, q); err != nil {
		return nil, fmt.Errorf("updating quotation: %w", err)
	}

	s.log.Info("quotation context changed",
		zap.String("quotation_id", q.ID.String()),
		zap.String("document_type", string(q.DocumentType)),
		zap.Bool("same_state", d.TaxContext().SameState),
		zap.String("grand_total", q.GrandTotal.StringFixed(2)),
	)
	return q, nil
}

func (s *quotationService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Quotation, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *quotationService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Quotation, int, error) {
	return s.repo.ListByTenant(ctx, tenantID, offset, limit)
}

func (s *quotationService) Delete(ctx context.Context, tenantID, id uuid.UUID) (err error) {
	defer func(start time.Time) { s.metrics.ObserveOperation("delete", start, err) }(time.Now())

	if err = s.repo.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	s.log.Info("quotation deleted", zap.String("quotation_id", id.String()), zap.String("tenant_id", tenantID.String()))
	return nil
}

// buildDraft resolves master data for input and replays its lines, edits and
// adjustments through a fresh draft. It returns the row ID of each input line.
func (s *quotationService) buildDraft(ctx context.Context, input *QuotationInput) (*quotation.Draft, []string, error) {
	docType := input.DocumentType
	if docType == "" {
		docType = domain.DocumentTypeQuotation
	}
	if !domain.ValidDocumentTypes[docType] {
		return nil, nil, domain.ErrInvalidDocumentType
	}

	branch, err := s.branch(ctx, input.TenantID, input.BranchID)
	if err != nil {
		return nil, nil, err
	}
	customer, err := s.customer(ctx, input.TenantID, input.CustomerID)
	if err != nil {
		return nil, nil, err
	}
	billing, err := address(customer, input.BillingAddressID)
	if err != nil {
		return nil, nil, err
	}
	shipping, err := address(customer, input.ShippingAddressID)
	if err != nil {
		return nil, nil, err
	}

	var refs []domain.ItemRef
	for i := range input.Lines {
		l := &input.Lines[i]
		switch {
		case l.AdHoc != nil:
		case strings.TrimSpace(l.ProductID) != "":
			refs = append(refs, l.ref())
		default:
			return nil, nil, fmt.Errorf("line %d: %w", i+1, domain.ErrInvalidLineItem)
		}
	}
	catalog, err := s.catalog(ctx, input.TenantID, refs)
	if err != nil {
		return nil, nil, err
	}

	d := quotation.NewDraft(docType, catalog)
	d.SetBranch(branch)
	d.SetCustomer(customer)
	d.SetBillingAddress(billing)
	d.SetShippingAddress(shipping)

	rowIDs := make([]string, 0, len(input.Lines))
	for i := range input.Lines {
		l := &input.Lines[i]
		var rowID string
		if l.AdHoc != nil {
			rowID = d.AddAdHocItem(*l.AdHoc)
		} else {
			rowID, err = d.AddItem(l.ref(), l.Quantity, quotation.AddOptions{NewRow: l.NewRow})
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", i+1, err)
			}
		}
		if !l.Edit.IsZero() {
			if err := d.UpdateLine(rowID, l.Edit); err != nil {
				return nil, nil, err
			}
		}
		rowIDs = append(rowIDs, rowID)
	}

	if err := d.SetCharges(input.ExtraCharges); err != nil {
		return nil, nil, err
	}
	if err := d.SetDiscounts(input.Discounts); err != nil {
		return nil, nil, err
	}
	d.SetIncludeRoundOff(input.IncludeRoundOff)
	return d, rowIDs, nil
}

func (s *quotationService) branch(ctx context.Context, tenantID uuid.UUID, id string) (*domain.Branch, error) {
	if strings.TrimSpace(id) == "" {
		return nil, nil
	}
	return s.records.GetBranch(ctx, tenantID, id)
}

func (s *quotationService) customer(ctx context.Context, tenantID uuid.UUID, id string) (*domain.Customer, error) {
	if strings.TrimSpace(id) == "" {
		return nil, nil
	}
	return s.records.GetCustomer(ctx, tenantID, id)
}

// address picks an address from the customer's book. An empty id means none.
func address(customer *domain.Customer, id string) (*domain.Address, error) {
	if strings.TrimSpace(id) == "" {
		return nil, nil
	}
	a, ok := customer.Address(id)
	if !ok {
		return nil, domain.ErrAddressNotFound
	}
	return a, nil
}

// catalog fetches the referenced items. Items whose upstream record carries no
// tax class take the GST rate of their HSN code when that rate is unambiguous.
func (s *quotationService) catalog(ctx context.Context, tenantID uuid.UUID, refs []domain.ItemRef) (quotation.StaticCatalog, error) {
	if len(refs) == 0 {
		return quotation.StaticCatalog{}, nil
	}
	items, err := s.records.GetCatalogItems(ctx, tenantID, refs)
	if err != nil {
		return nil, err
	}
	for i := range items {
		it := &items[i]
		if it.HasTaxClass || s.hsn.Len() == 0 {
			continue
		}
		if rate, ok := s.hsn.DefaultRate(it.HSN); ok {
			it.GSTPercent = rate
		}
	}
	return quotation.NewStaticCatalog(items), nil
}

func (s *quotationService) fill(q *domain.Quotation, input *QuotationInput, d *quotation.Draft) error {
	issue, err := parseDate(input.IssueDate)
	if err != nil {
		return err
	}
	if issue == nil {
		today := s.now().UTC().Truncate(24 * time.Hour)
		issue = &today
	}
	validUntil, err := parseDate(input.ValidUntil)
	if err != nil {
		return err
	}

	q.DocumentType = d.DocumentType()
	q.SeriesID = strings.TrimSpace(input.SeriesID)
	q.DocumentNumber = strings.TrimSpace(input.DocumentNumber)
	q.CustomerID = strings.TrimSpace(input.CustomerID)
	q.BranchID = strings.TrimSpace(input.BranchID)
	q.BillingAddressID = strings.TrimSpace(input.BillingAddressID)
	q.ShippingAddressID = strings.TrimSpace(input.ShippingAddressID)
	q.SalesPersonID = strings.TrimSpace(input.SalesPersonID)
	q.IssueDate = *issue
	q.ValidUntil = validUntil
	q.Notes = input.Notes
	q.Terms = input.Terms
	return applyTotals(q, d)
}

// applyTotals copies the draft's figures and payload onto the stored row.
func applyTotals(q *domain.Quotation, d *quotation.Draft) error {
	p := d.Payload()
	raw, err := p.Marshal()
	if err != nil {
		return err
	}
	t := d.Totals()
	q.IncludeRoundOff = d.IncludeRoundOff()
	q.TotalAmount = t.TaxableSubtotal
	q.TaxAmount = t.TaxSubtotal
	q.RoundOffAmount = t.RoundOffAmount
	q.GrandTotal = t.GrandTotal
	q.Payload = raw
	return nil
}

func (s *quotationService) observeSaved(q *domain.Quotation, d *quotation.Draft) {
	total, _ := q.GrandTotal.Float64()
	s.metrics.ObserveSaved(q.DocumentType, len(d.Lines()), total)
}

func header(input *QuotationInput) quotation.Header {
	return quotation.Header{CustomerID: input.CustomerID, SalesPersonID: input.SalesPersonID}
}

// parseDate accepts YYYY-MM-DD or RFC 3339. Blank means unset.
func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	t = t.UTC()
	return &t, nil
}
