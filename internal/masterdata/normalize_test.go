package masterdata_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotedesk/internal/masterdata"
)

func TestNormalizeBranch_FieldVariants(t *testing.T) {
	bodies := []string{
		`{"id":"b-1","name":"Pune","state":"Maharashtra","gst_number":"27xyzab5678k1z3"}`,
		`{"_id":"b-1","branch_name":"Pune","State":"Maharashtra","gstNumber":"27XYZAB5678K1Z3"}`,
		`{"id":"b-1","name":"Pune","address":{"state":"Maharashtra"},"GSTIN":"27XYZAB5678K1Z3"}`,
		`{"id":"b-1","name":"Pune","state":"Maharashtra","gst_in":"27XYZAB5678K1Z3"}`,
	}
	for _, body := range bodies {
		b, err := masterdata.NormalizeBranch(json.RawMessage(body))
		require.NoError(t, err, body)
		assert.Equal(t, "b-1", b.ID)
		assert.Equal(t, "Pune", b.Name)
		assert.Equal(t, "Maharashtra", b.State)
		assert.Equal(t, "27XYZAB5678K1Z3", b.GSTNumber)
	}

	_, err := masterdata.NormalizeBranch(json.RawMessage(`{"name":"no id"}`))
	assert.Error(t, err)
}

func TestNormalizeBranch_NumericID(t *testing.T) {
	b, err := masterdata.NormalizeBranch(json.RawMessage(`{"id":42,"name":"HQ"}`))
	require.NoError(t, err)
	assert.Equal(t, "42", b.ID)
	assert.Empty(t, b.GSTNumber)
}

func TestNormalizeCustomer_LegalGSTIN(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"gst_in", `{"id":"c-1","gst_in":"29ABCDE1234F1Z5"}`, "29ABCDE1234F1Z5"},
		{"gstin", `{"id":"c-1","gstin":"29abcde1234f1z5"}`, "29ABCDE1234F1Z5"},
		{"GSTIN", `{"id":"c-1","GSTIN":"29ABCDE1234F1Z5"}`, "29ABCDE1234F1Z5"},
		{"top_level_before_legal", `{"id":"c-1","gst_in":"27AAAAA0000A1Z5","legal":{"gstin":"29ABCDE1234F1Z5"}}`, "27AAAAA0000A1Z5"},
		{"legal_object", `{"id":"c-1","legal":{"gstin":"29ABCDE1234F1Z5"}}`, "29ABCDE1234F1Z5"},
		{"documents_by_type", `{"id":"c-1","documents":[{"type":"PAN","number":"ABCDE1234F"},{"type":"GST Certificate","number":"29ABCDE1234F1Z5"}]}`, "29ABCDE1234F1Z5"},
		{"documents_by_name_value", `{"id":"c-1","documents":[{"name":"gstin","value":"29ABCDE1234F1Z5"}]}`, "29ABCDE1234F1Z5"},
		{"documents_document_number", `{"id":"c-1","documents":[{"type":"gst","document_number":"29ABCDE1234F1Z5"}]}`, "29ABCDE1234F1Z5"},
		{"blank_top_level_falls_through", `{"id":"c-1","gst_in":"  ","legal":{"gstin":"29ABCDE1234F1Z5"}}`, "29ABCDE1234F1Z5"},
		{"none", `{"id":"c-1","documents":[{"type":"PAN","number":"ABCDE1234F"}]}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := masterdata.NormalizeCustomer(json.RawMessage(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.LegalGSTIN)
		})
	}
}

func TestNormalizeCustomer_EmbeddedAddresses(t *testing.T) {
	body := `{
		"id":"c-1","customer_name":"Acme Traders","contact":{"email":"accounts@acme.test"},
		"addresses":[
			{"id":"a-1","title":"Permanent Address","address_line1":"12 MG Road","city":"Bengaluru","state":"Karnataka","pincode":560001,"gstin":"29abcde1234f1z5"},
			{"title":"missing id"},
			{"id":"a-2","label":"Warehouse","line1":"Plot 4","state_name":"Karnataka","zip":"560100"}
		]
	}`
	c, err := masterdata.NormalizeCustomer(json.RawMessage(body))
	require.NoError(t, err)

	assert.Equal(t, "Acme Traders", c.Name)
	assert.Equal(t, "accounts@acme.test", c.Email)
	require.Len(t, c.Addresses, 2)
	assert.Equal(t, "Permanent Address", c.Addresses[0].Title)
	assert.Equal(t, "560001", c.Addresses[0].Pincode)
	assert.Equal(t, "29ABCDE1234F1Z5", c.Addresses[0].GSTIN)
	assert.Equal(t, "Warehouse", c.Addresses[1].Title)
	assert.Equal(t, "Karnataka", c.Addresses[1].State)
}

func TestNormalizeCatalogItems(t *testing.T) {
	items := []json.RawMessage{
		json.RawMessage(`{
			"id":"p-1","name":"Steel bracket","hsn_code":"7326","uom":"NOS",
			"sales_price":"1,250.50","purchase_cost":900,"Tax":{"Percentage":"18"},
			"variants":[
				{"id":"v-1","name":"Steel bracket (large)","SalesPrice":1400},
				{"id":"v-2","Tax":{"Percentage":12}},
				{"name":"no id"}
			]
		}`),
		json.RawMessage(`{"_id":"p-2","product_name":"Rice","selling_price":55,"cost_price":"40","gst_percent":"5%"}`),
		json.RawMessage(`{"id":"p-3","name":"Untaxed","price":10}`),
		json.RawMessage(`{"name":"no id"}`),
	}

	out := masterdata.NormalizeCatalogItems(items, false)
	require.Len(t, out, 5)

	parent := out[0]
	assert.Equal(t, "p-1", parent.Ref.ProductID)
	assert.Empty(t, parent.Ref.VariantID)
	assert.True(t, parent.SalesPrice.Equal(decimal.RequireFromString("1250.50")))
	assert.True(t, parent.PurchaseCost.Equal(decimal.NewFromInt(900)))
	assert.True(t, parent.GSTPercent.Equal(decimal.NewFromInt(18)))
	assert.True(t, parent.HasTaxClass)

	large := out[1]
	assert.Equal(t, "p-1", large.Ref.ProductID)
	assert.Equal(t, "v-1", large.Ref.VariantID)
	assert.Equal(t, "Steel bracket (large)", large.Name)
	assert.True(t, large.SalesPrice.Equal(decimal.NewFromInt(1400)))
	assert.True(t, large.PurchaseCost.Equal(decimal.NewFromInt(900)), "inherited")
	assert.Equal(t, "7326", large.HSN, "inherited")

	v2 := out[2]
	assert.Equal(t, "Steel bracket", v2.Name, "inherited")
	assert.True(t, v2.GSTPercent.Equal(decimal.NewFromInt(12)))

	rice := out[3]
	assert.True(t, rice.SalesPrice.Equal(decimal.NewFromInt(55)))
	assert.True(t, rice.PurchaseCost.Equal(decimal.NewFromInt(40)))
	assert.True(t, rice.GSTPercent.Equal(decimal.NewFromInt(5)))

	untaxed := out[4]
	assert.False(t, untaxed.HasTaxClass)
	assert.True(t, untaxed.GSTPercent.IsZero())
}

func TestNormalizeCatalogItems_Services(t *testing.T) {
	out := masterdata.NormalizeCatalogItems([]json.RawMessage{
		json.RawMessage(`{"id":"s-1","name":"Installation","sac":"9987","price":500,"tax":{"percentage":18}}`),
	}, true)
	require.Len(t, out, 1)
	assert.True(t, out[0].Ref.IsService)
	assert.Equal(t, "9987", out[0].HSN)
	assert.True(t, out[0].HasTaxClass)
}
