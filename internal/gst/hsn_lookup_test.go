package gst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"quotedesk/internal/gst"
	"quotedesk/internal/port"
)

func testHSNLookup() *gst.HSNLookup {
	return gst.NewHSNLookup([]port.HSNEntry{
		{Code: "8471", Description: "Automatic data processing machines", GSTRate: d("18")},
		{Code: "8471", Description: "Automatic data processing machines (conditional)", GSTRate: d("12"), ConditionDesc: "used/refurbished"},
		{Code: "84714100", Description: "Digital computers", GSTRate: d("18")},
		{Code: "1006", Description: "Rice", GSTRate: d("5")},
		{Code: "100630", Description: "Semi-milled or wholly milled rice", GSTRate: d("5")},
	})
}

func TestHSNLookup_Rates(t *testing.T) {
	lookup := testHSNLookup()

	t.Run("exact_match", func(t *testing.T) {
		assert.Len(t, lookup.Rates("8471"), 2)
		assert.Len(t, lookup.Rates("84714100"), 1)
	})

	t.Run("prefix_fallback_8_to_6", func(t *testing.T) {
		assert.Len(t, lookup.Rates("10063010"), 1)
	})

	t.Run("prefix_fallback_8_to_4", func(t *testing.T) {
		assert.Len(t, lookup.Rates("84719000"), 2)
	})

	t.Run("not_found", func(t *testing.T) {
		assert.Nil(t, lookup.Rates("9999"))
		assert.Nil(t, lookup.Rates(""))
	})
}

func TestHSNLookup_DefaultRate(t *testing.T) {
	lookup := testHSNLookup()

	rate, ok := lookup.DefaultRate("10063010")
	assert.True(t, ok)
	assertDec(t, "5", rate)

	rate, ok = lookup.DefaultRate("84714100")
	assert.True(t, ok)
	assertDec(t, "18", rate)

	_, ok = lookup.DefaultRate("8471")
	assert.False(t, ok, "ambiguous code has no default")

	_, ok = lookup.DefaultRate("0000")
	assert.False(t, ok)
}

func TestHSNLookup_Nil(t *testing.T) {
	var lookup *gst.HSNLookup
	assert.Equal(t, 0, lookup.Len())
	_, ok := lookup.DefaultRate("8471")
	assert.False(t, ok)
}
