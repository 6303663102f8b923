package quotation

import (
	"strings"

	"quotedesk/internal/domain"
)

// Header is the part of a document that is not tax-relevant but is required to save.
type Header struct {
	CustomerID    string
	SalesPersonID string
}

// ValidateForSave checks what must be present before a document can be saved.
// It is only called on save; live editing is never blocked.
func ValidateForSave(h Header, d *Draft) error {
	if strings.TrimSpace(h.CustomerID) == "" {
		return domain.ErrCustomerRequired
	}
	if strings.TrimSpace(h.SalesPersonID) == "" {
		return domain.ErrSalesPersonRequired
	}
	if d == nil || len(d.lines) == 0 {
		return domain.ErrNoLineItems
	}
	return nil
}
