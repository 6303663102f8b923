package gst

import (
	"github.com/shopspring/decimal"

	"quotedesk/internal/port"
)

// HSNRateEntry holds a GST rate and optional condition for an HSN code.
type HSNRateEntry struct {
	Rate          decimal.Decimal
	ConditionDesc string
}

// HSNLookup provides in-memory lookups of GST rates by HSN/SAC code.
// It is immutable after construction and safe for concurrent access.
type HSNLookup struct {
	byCode map[string][]HSNRateEntry
}

// NewHSNLookup builds an HSNLookup from entries loaded from the database.
func NewHSNLookup(entries []port.HSNEntry) *HSNLookup {
	m := make(map[string][]HSNRateEntry, len(entries))
	for idx := range entries {
		e := &entries[idx]
		m[e.Code] = append(m[e.Code], HSNRateEntry{
			Rate:          e.GSTRate,
			ConditionDesc: e.ConditionDesc,
		})
	}
	return &HSNLookup{byCode: m}
}

// Len returns the number of distinct codes loaded.
func (h *HSNLookup) Len() int {
	if h == nil {
		return 0
	}
	return len(h.byCode)
}

// Rates returns the rate entries for the code, falling back from 8→6→4 digit prefixes.
func (h *HSNLookup) Rates(code string) []HSNRateEntry {
	if h == nil || len(h.byCode) == 0 || code == "" {
		return nil
	}
	if rates, ok := h.byCode[code]; ok {
		return rates
	}
	for _, prefixLen := range []int{6, 4} {
		if len(code) > prefixLen {
			if rates, ok := h.byCode[code[:prefixLen]]; ok {
				return rates
			}
		}
	}
	return nil
}

// DefaultRate returns the GST rate for code when it is unambiguous, that is when
// every entry for the code carries the same rate.
func (h *HSNLookup) DefaultRate(code string) (decimal.Decimal, bool) {
	rates := h.Rates(code)
	if len(rates) == 0 {
		return decimal.Zero, false
	}
	first := rates[0].Rate
	for i := 1; i < len(rates); i++ {
		if !rates[i].Rate.Equal(first) {
			return decimal.Zero, false
		}
	}
	return first, true
}
