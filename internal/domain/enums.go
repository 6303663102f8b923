package domain

// DocumentType identifies the kind of sales or purchase document being drafted.
type DocumentType string

const (
	DocumentTypeQuotation     DocumentType = "quotation"
	DocumentTypeProforma      DocumentType = "proforma_invoice"
	DocumentTypeSalesOrder    DocumentType = "sales_order"
	DocumentTypeInvoice       DocumentType = "invoice"
	DocumentTypePurchaseOrder DocumentType = "purchase_order"
)

// ValidDocumentTypes is the set of accepted document types.
var ValidDocumentTypes = map[DocumentType]bool{
	DocumentTypeQuotation:     true,
	DocumentTypeProforma:      true,
	DocumentTypeSalesOrder:    true,
	DocumentTypeInvoice:       true,
	DocumentTypePurchaseOrder: true,
}

// UsesPurchaseCost reports whether line rates default to the catalog purchase cost
// rather than the sales price.
func (t DocumentType) UsesPurchaseCost() bool {
	return t == DocumentTypePurchaseOrder
}

// AdjustmentType says how a charge or discount value is interpreted.
type AdjustmentType string

const (
	AdjustmentPercent AdjustmentType = "percent"
	AdjustmentFixed   AdjustmentType = "fixed"
)

// UserRole defines the role hierarchy within a tenant.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)
