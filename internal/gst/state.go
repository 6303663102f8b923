package gst

import "strings"

// StateCode returns the two-character state code a GSTIN starts with.
func StateCode(gstin string) (string, bool) {
	g := strings.TrimSpace(gstin)
	if len(g) < 2 {
		return "", false
	}
	return strings.ToUpper(g[:2]), true
}

// IsSameState reports whether a supply is intra-state.
//
// An unregistered buyer (blank GSTIN) is treated as being in the seller's state.
// When both GSTINs carry a state code those are compared; otherwise the state
// names are compared, and a missing name on either side counts as a match.
func IsSameState(buyerGSTIN, sellerGSTIN, buyerState, sellerState string) bool {
	if strings.TrimSpace(buyerGSTIN) == "" {
		return true
	}
	buyerCode, okBuyer := StateCode(buyerGSTIN)
	sellerCode, okSeller := StateCode(sellerGSTIN)
	if okBuyer && okSeller {
		return buyerCode == sellerCode
	}

	b := strings.TrimSpace(buyerState)
	s := strings.TrimSpace(sellerState)
	if b == "" || s == "" {
		return true
	}
	return strings.EqualFold(b, s)
}
