package quotation

import (
	"strings"

	"github.com/shopspring/decimal"

	"quotedesk/internal/domain"
	"quotedesk/internal/gst"
)

// Adjustment is a named document-level charge (freight, packing) or discount.
// Percent values apply to the post-tax subtotal of all lines.
type Adjustment struct {
	Title string                `json:"title"`
	Type  domain.AdjustmentType `json:"type"`
	Value decimal.Decimal       `json:"value"`
}

// Validate checks the adjustment type. Values are not clamped.
func (a Adjustment) Validate() error {
	switch a.Type {
	case domain.AdjustmentPercent, domain.AdjustmentFixed:
		return nil
	default:
		return domain.ErrInvalidAdjustmentType
	}
}

// Amount returns the currency value of the adjustment against base.
func (a Adjustment) Amount(base decimal.Decimal) decimal.Decimal {
	if a.Type == domain.AdjustmentPercent {
		return gst.Percent(base, a.Value)
	}
	return gst.Round2(a.Value)
}

// ChargeTotal sums charges against base.
func ChargeTotal(base decimal.Decimal, charges []Adjustment) decimal.Decimal {
	return sumAdjustments(base, charges)
}

// DiscountTotal sums discounts against base. The result may exceed base.
func DiscountTotal(base decimal.Decimal, discounts []Adjustment) decimal.Decimal {
	return sumAdjustments(base, discounts)
}

func sumAdjustments(base decimal.Decimal, list []Adjustment) decimal.Decimal {
	total := decimal.Zero
	for i := range list {
		total = total.Add(list[i].Amount(base))
	}
	return total
}

func validateAdjustments(list []Adjustment) error {
	for i := range list {
		if err := list[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

func normalizeAdjustments(list []Adjustment) []Adjustment {
	out := make([]Adjustment, len(list))
	for i := range list {
		out[i] = list[i]
		out[i].Title = strings.TrimSpace(out[i].Title)
	}
	return out
}
