package quotation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"quotedesk/internal/domain"
	"quotedesk/internal/quotation"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "want %s, got %s %v", want, got.String(), msgAndArgs)
}

var (
	refProduct = domain.ItemRef{ProductID: "p-1"}
	refVariant = domain.ItemRef{ProductID: "p-1", VariantID: "v-2"}
	refService = domain.ItemRef{ProductID: "s-1", IsService: true}
)

func testCatalog() quotation.StaticCatalog {
	return quotation.NewStaticCatalog([]domain.CatalogItem{
		{Ref: refProduct, Name: "Steel bracket", HSN: "7326", Unit: "NOS", SalesPrice: d("100"), PurchaseCost: d("80"), GSTPercent: d("18"), HasTaxClass: true},
		{Ref: refVariant, Name: "Steel bracket (large)", HSN: "7326", Unit: "NOS", SalesPrice: d("120"), PurchaseCost: d("90"), GSTPercent: d("18"), HasTaxClass: true},
		{Ref: refService, Name: "Installation", HSN: "9987", Unit: "HRS", SalesPrice: d("500"), PurchaseCost: d("0"), GSTPercent: d("18"), HasTaxClass: true},
	})
}

func mhBranch() *domain.Branch {
	return &domain.Branch{ID: "b-mh", Name: "Pune", State: "Maharashtra", GSTNumber: "27XYZAB5678K1Z3"}
}

func kaBranch() *domain.Branch {
	return &domain.Branch{ID: "b-ka", Name: "Bengaluru", State: "Karnataka", GSTNumber: "29PQRST1234K1Z1"}
}

func testCustomer() *domain.Customer {
	return &domain.Customer{
		ID:         "c-1",
		Name:       "Acme Traders",
		Email:      "accounts@acme.test",
		LegalGSTIN: "27AAAAA0000A1Z5",
		Addresses: []domain.Address{
			{ID: "a-perm", Title: "Permanent Address", State: "Karnataka", GSTIN: "29ABCDE1234F1Z5"},
			{ID: "a-ka", Title: "Warehouse", State: "Karnataka", GSTIN: "29ABCDE1234F1Z5"},
			{ID: "a-mh", Title: "Site office", State: "Maharashtra"},
		},
	}
}

func addr(t *testing.T, c *domain.Customer, id string) *domain.Address {
	t.Helper()
	a, ok := c.Address(id)
	if !ok {
		t.Fatalf("address %s not found", id)
	}
	return a
}
