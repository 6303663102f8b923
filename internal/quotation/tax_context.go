package quotation

import (
	"strings"

	"quotedesk/internal/domain"
	"quotedesk/internal/gst"
)

// TaxContext is derived on every context change and is the only input a line
// consults to decide between CGST+SGST and IGST.
type TaxContext struct {
	SellerGSTIN        string `json:"seller_gstin"`
	BuyerGSTIN         string `json:"buyer_gstin"`
	SellerState        string `json:"seller_state"`
	BuyerState         string `json:"buyer_state"`
	EffectiveAddressID string `json:"effective_address_id"`
	SameState          bool   `json:"same_state"`
}

// EffectiveAddress returns the address tax is determined against: the shipping
// address when it is set and differs from billing, otherwise billing.
func EffectiveAddress(billing, shipping *domain.Address) *domain.Address {
	if shipping != nil && (billing == nil || shipping.ID != billing.ID) {
		return shipping
	}
	return billing
}

// IsPermanentAddress reports whether the address is the customer's registered
// address, whose GSTIN is the customer's legal GSTIN.
func IsPermanentAddress(a *domain.Address) bool {
	return a != nil && strings.Contains(strings.ToLower(a.Title), "permanent")
}

// ResolveTaxContext derives seller and buyer GSTINs and the same-state flag.
// Any argument may be nil.
func ResolveTaxContext(branch *domain.Branch, customer *domain.Customer, billing, shipping *domain.Address) TaxContext {
	var tc TaxContext
	if branch != nil {
		tc.SellerGSTIN = strings.TrimSpace(branch.GSTNumber)
		tc.SellerState = strings.TrimSpace(branch.State)
	}

	if addr := EffectiveAddress(billing, shipping); addr != nil {
		tc.EffectiveAddressID = addr.ID
		tc.BuyerState = strings.TrimSpace(addr.State)
		tc.BuyerGSTIN = strings.TrimSpace(addr.GSTIN)
		if IsPermanentAddress(addr) && customer != nil {
			tc.BuyerGSTIN = strings.TrimSpace(customer.LegalGSTIN)
		}
	}

	tc.SameState = gst.IsSameState(tc.BuyerGSTIN, tc.SellerGSTIN, tc.BuyerState, tc.SellerState)
	return tc
}
