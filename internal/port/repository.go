package port

import (
	"context"

	"github.com/google/uuid"

	"quotedesk/internal/domain"
)

// QuotationRepository defines the contract for quotation persistence.
// All query methods include tenantID to enforce tenant isolation at the data layer.
type QuotationRepository interface {
	Create(ctx context.Context, q *domain.Quotation) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Quotation, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Quotation, int, error)
	Update(ctx context.Context, q *domain.Quotation) error
	UpdateArchiveKey(ctx context.Context, tenantID, id uuid.UUID, key string) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
