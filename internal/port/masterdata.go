package port

import (
	"context"

	"github.com/google/uuid"

	"quotedesk/internal/domain"
)

// MasterDataSource reads branches, customers and catalog items owned by the
// upstream records service. Implementations return canonical domain types.
type MasterDataSource interface {
	GetBranch(ctx context.Context, tenantID uuid.UUID, id string) (*domain.Branch, error)
	// GetCustomer returns the customer with its address book populated.
	GetCustomer(ctx context.Context, tenantID uuid.UUID, id string) (*domain.Customer, error)
	// GetCatalogItems returns the items it could resolve. Unknown references are
	// omitted rather than reported as errors.
	GetCatalogItems(ctx context.Context, tenantID uuid.UUID, refs []domain.ItemRef) ([]domain.CatalogItem, error)
}
