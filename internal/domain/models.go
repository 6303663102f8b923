package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Quotation is a persisted sales or purchase document. Line items, charges and
// discounts are kept in Payload; the document-level figures are denormalised into
// columns for listing and reporting.
type Quotation struct {
	ID                uuid.UUID       `db:"id" json:"id"`
	TenantID          uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	DocumentType      DocumentType    `db:"document_type" json:"document_type"`
	SeriesID          string          `db:"series_id" json:"series_id"`
	DocumentNumber    string          `db:"document_number" json:"document_number"`
	CustomerID        string          `db:"customer_id" json:"customer_id"`
	BranchID          string          `db:"branch_id" json:"branch_id"`
	BillingAddressID  string          `db:"billing_address_id" json:"billing_address_id"`
	ShippingAddressID string          `db:"shipping_address_id" json:"shipping_address_id"`
	SalesPersonID     string          `db:"sales_person_id" json:"sales_person_id"`
	IssueDate         time.Time       `db:"issue_date" json:"issue_date"`
	ValidUntil        *time.Time      `db:"valid_until" json:"valid_until"`
	Notes             string          `db:"notes" json:"notes"`
	Terms             string          `db:"terms" json:"terms"`
	IncludeRoundOff   bool            `db:"include_round_off" json:"include_round_off"`
	TotalAmount       decimal.Decimal `db:"total_amount" json:"total_amount"`
	TaxAmount         decimal.Decimal `db:"tax_amount" json:"tax_amount"`
	RoundOffAmount    decimal.Decimal `db:"roundoff_amount" json:"roundoff_amount"`
	GrandTotal        decimal.Decimal `db:"grand_total" json:"grand_total"`
	Payload           json.RawMessage `db:"payload" json:"payload"`
	ArchiveKey        string          `db:"archive_key" json:"archive_key"`
	CreatedBy         uuid.UUID       `db:"created_by" json:"created_by"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`
}

// Branch is a seller location. Its GSTIN supplies the seller state code.
type Branch struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	State     string `json:"state"`
	GSTNumber string `json:"gst_number"`
}

// Address is a customer billing or shipping address.
type Address struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Line1   string `json:"line1"`
	Line2   string `json:"line2"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	GSTIN   string `json:"gstin"`
}

// Customer is a buyer with its registered (legal) GSTIN and address book.
type Customer struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	LegalGSTIN string    `json:"legal_gstin"`
	Addresses  []Address `json:"addresses"`
}

// Address returns the customer's address with the given ID.
func (c *Customer) Address(id string) (*Address, bool) {
	if c == nil || id == "" {
		return nil, false
	}
	for i := range c.Addresses {
		if c.Addresses[i].ID == id {
			return &c.Addresses[i], true
		}
	}
	return nil, false
}

// ItemRef identifies a catalog entry: a stock product (optionally a variant of it)
// or a non-stock/service item.
type ItemRef struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id,omitempty"`
	IsService bool   `json:"is_service"`
}

// CatalogItem is the read-only master data a line item is created or re-resolved from.
type CatalogItem struct {
	Ref          ItemRef         `json:"ref"`
	Name         string          `json:"name"`
	HSN          string          `json:"hsn"`
	Unit         string          `json:"unit"`
	SalesPrice   decimal.Decimal `json:"sales_price"`
	PurchaseCost decimal.Decimal `json:"purchase_cost"`
	GSTPercent   decimal.Decimal `json:"gst_percent"`
	HasTaxClass  bool            `json:"has_tax_class"`
}

// DefaultRate is the catalog rate a new line starts with for the given document type.
func (c *CatalogItem) DefaultRate(docType DocumentType) decimal.Decimal {
	if docType.UsesPurchaseCost() {
		return c.PurchaseCost
	}
	return c.SalesPrice
}
