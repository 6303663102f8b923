package masterdata

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"quotedesk/internal/domain"
)

var errMissingID = errors.New("record has no id")

var (
	idKeys = []string{"id", "_id", "ID", "uuid"}

	branchNameKeys  = []string{"name", "branch_name", "branchName", "Name"}
	branchStateKeys = []string{"state", "State", "state_name", "address.state"}
	branchGSTKeys   = []string{"gst_number", "gstNumber", "gstin", "GSTIN", "gst_in"}

	customerNameKeys  = []string{"name", "customer_name", "company_name", "display_name", "Name"}
	customerEmailKeys = []string{"email", "Email", "email_id", "contact.email"}
	customerGSTKeys   = []string{"gst_in", "gstin", "GSTIN", "legal.gstin"}
	documentValueKeys = []string{"number", "value", "document_number"}

	addressTitleKeys   = []string{"title", "address_title", "label", "type"}
	addressLine1Keys   = []string{"address_line1", "line1", "address1", "street"}
	addressLine2Keys   = []string{"address_line2", "line2", "address2"}
	addressCityKeys    = []string{"city", "City", "town"}
	addressStateKeys   = []string{"state", "State", "state_name"}
	addressPincodeKeys = []string{"pincode", "pin_code", "zip", "postal_code"}
	addressGSTKeys     = []string{"gstin", "gst_in", "GSTIN", "gst_number"}

	itemNameKeys     = []string{"name", "product_name", "item_name", "title"}
	itemHSNKeys      = []string{"hsn", "hsn_code", "HSN", "hsn_sac", "sac"}
	itemUnitKeys     = []string{"unit", "uom", "unit_name"}
	itemSalesKeys    = []string{"sales_price", "SalesPrice", "selling_price", "price"}
	itemPurchaseKeys = []string{"purchase_cost", "PurchaseCost", "cost_price", "cost"}
	itemTaxKeys      = []string{"Tax.Percentage", "tax.percentage", "gst_percent"}
)

// NormalizeBranch maps a branch record.
func NormalizeBranch(raw json.RawMessage) (*domain.Branch, error) {
	f, err := decodeFields(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding branch: %w", err)
	}
	b := &domain.Branch{
		ID:        f.str(idKeys...),
		Name:      f.str(branchNameKeys...),
		State:     f.str(branchStateKeys...),
		GSTNumber: strings.ToUpper(f.str(branchGSTKeys...)),
	}
	if b.ID == "" {
		return nil, errMissingID
	}
	return b, nil
}

// NormalizeAddress maps an address record.
func NormalizeAddress(raw json.RawMessage) (domain.Address, error) {
	f, err := decodeFields(raw)
	if err != nil {
		return domain.Address{}, fmt.Errorf("decoding address: %w", err)
	}
	return normalizeAddress(f), nil
}

func normalizeAddress(f fields) domain.Address {
	return domain.Address{
		ID:      f.str(idKeys...),
		Title:   f.str(addressTitleKeys...),
		Line1:   f.str(addressLine1Keys...),
		Line2:   f.str(addressLine2Keys...),
		City:    f.str(addressCityKeys...),
		State:   f.str(addressStateKeys...),
		Pincode: f.str(addressPincodeKeys...),
		GSTIN:   strings.ToUpper(f.str(addressGSTKeys...)),
	}
}

// NormalizeAddresses maps a list of address records, dropping ones without an id.
func NormalizeAddresses(items []json.RawMessage) []domain.Address {
	out := make([]domain.Address, 0, len(items))
	for _, raw := range items {
		a, err := NormalizeAddress(raw)
		if err != nil || a.ID == "" {
			continue
		}
		out = append(out, a)
	}
	return out
}

// NormalizeCustomer maps a customer record, including any embedded addresses.
func NormalizeCustomer(raw json.RawMessage) (*domain.Customer, error) {
	f, err := decodeFields(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding customer: %w", err)
	}
	c := &domain.Customer{
		ID:         f.str(idKeys...),
		Name:       f.str(customerNameKeys...),
		Email:      f.str(customerEmailKeys...),
		LegalGSTIN: strings.ToUpper(legalGSTIN(f)),
	}
	if c.ID == "" {
		return nil, errMissingID
	}
	for _, af := range f.list("addresses") {
		if a := normalizeAddress(af); a.ID != "" {
			c.Addresses = append(c.Addresses, a)
		}
	}
	return c, nil
}

// legalGSTIN tries the top-level fields, then the legal object, then the first
// attached document whose type or name mentions GST.
func legalGSTIN(f fields) string {
	if v := f.str(customerGSTKeys...); v != "" {
		return v
	}
	for _, doc := range f.list("documents") {
		kind := strings.ToLower(doc.str("type") + " " + doc.str("name"))
		if !strings.Contains(kind, "gst") {
			continue
		}
		if v := doc.str(documentValueKeys...); v != "" {
			return v
		}
	}
	return ""
}

// NormalizeCatalogItems maps product or non-stock item records. Products with
// variants yield the parent plus one item per variant; a variant inherits every
// field it does not set from its parent.
func NormalizeCatalogItems(items []json.RawMessage, isService bool) []domain.CatalogItem {
	out := make([]domain.CatalogItem, 0, len(items))
	for _, raw := range items {
		f, err := decodeFields(raw)
		if err != nil {
			continue
		}
		parent := normalizeItem(f, nil, isService)
		if parent.Ref.ProductID == "" {
			continue
		}
		out = append(out, parent)
		for _, vf := range f.list("variants") {
			v := normalizeItem(vf, &parent, isService)
			if v.Ref.VariantID == "" {
				continue
			}
			out = append(out, v)
		}
	}
	return out
}

func normalizeItem(f fields, parent *domain.CatalogItem, isService bool) domain.CatalogItem {
	var item domain.CatalogItem
	if parent != nil {
		item = *parent
		item.Ref.VariantID = f.str(idKeys...)
	} else {
		item.Ref = domain.ItemRef{ProductID: f.str(idKeys...), IsService: isService}
	}

	if v := f.str(itemNameKeys...); v != "" {
		item.Name = v
	}
	if v := f.str(itemHSNKeys...); v != "" {
		item.HSN = v
	}
	if v := f.str(itemUnitKeys...); v != "" {
		item.Unit = v
	}
	if v, ok := f.dec(itemSalesKeys...); ok {
		item.SalesPrice = v
	}
	if v, ok := f.dec(itemPurchaseKeys...); ok {
		item.PurchaseCost = v
	}
	if v, ok := f.dec(itemTaxKeys...); ok {
		item.GSTPercent = v
		item.HasTaxClass = true
	}
	return item
}
