package quotation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"quotedesk/internal/domain"
	"quotedesk/internal/quotation"
)

func TestResolveTaxContext(t *testing.T) {
	c := testCustomer()

	t.Run("nothing_selected_is_same_state", func(t *testing.T) {
		tc := quotation.ResolveTaxContext(nil, nil, nil, nil)
		assert.True(t, tc.SameState)
		assert.Empty(t, tc.BuyerGSTIN)
	})

	t.Run("inter_state_billing", func(t *testing.T) {
		tc := quotation.ResolveTaxContext(mhBranch(), c, addr(t, c, "a-ka"), nil)
		assert.Equal(t, "29ABCDE1234F1Z5", tc.BuyerGSTIN)
		assert.Equal(t, "27XYZAB5678K1Z3", tc.SellerGSTIN)
		assert.Equal(t, "a-ka", tc.EffectiveAddressID)
		assert.False(t, tc.SameState)
	})

	t.Run("permanent_address_uses_legal_gstin", func(t *testing.T) {
		tc := quotation.ResolveTaxContext(mhBranch(), c, addr(t, c, "a-perm"), nil)
		assert.Equal(t, "27AAAAA0000A1Z5", tc.BuyerGSTIN)
		assert.True(t, tc.SameState)
	})

	t.Run("shipping_overrides_billing", func(t *testing.T) {
		tc := quotation.ResolveTaxContext(kaBranch(), c, addr(t, c, "a-ka"), addr(t, c, "a-mh"))
		assert.Equal(t, "a-mh", tc.EffectiveAddressID)
		// Unregistered site address: blank buyer GSTIN counts as same state.
		assert.Empty(t, tc.BuyerGSTIN)
		assert.True(t, tc.SameState)
	})

	t.Run("shipping_same_as_billing", func(t *testing.T) {
		tc := quotation.ResolveTaxContext(mhBranch(), c, addr(t, c, "a-ka"), addr(t, c, "a-ka"))
		assert.Equal(t, "a-ka", tc.EffectiveAddressID)
		assert.False(t, tc.SameState)
	})

	t.Run("branch_without_gstin_falls_back_to_state_names", func(t *testing.T) {
		b := &domain.Branch{ID: "b-x", State: "karnataka"}
		tc := quotation.ResolveTaxContext(b, c, addr(t, c, "a-ka"), nil)
		assert.True(t, tc.SameState)

		b.State = "Goa"
		tc = quotation.ResolveTaxContext(b, c, addr(t, c, "a-ka"), nil)
		assert.False(t, tc.SameState)
	})
}

func TestIsPermanentAddress(t *testing.T) {
	assert.True(t, quotation.IsPermanentAddress(&domain.Address{Title: "PERMANENT"}))
	assert.True(t, quotation.IsPermanentAddress(&domain.Address{Title: "Registered / permanent office"}))
	assert.False(t, quotation.IsPermanentAddress(&domain.Address{Title: "Warehouse"}))
	assert.False(t, quotation.IsPermanentAddress(nil))
}
