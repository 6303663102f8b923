package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"quotedesk/internal/domain"
)

// MockQuotationRepo is a mock implementation of port.QuotationRepository.
type MockQuotationRepo struct {
	mock.Mock
}

func (m *MockQuotationRepo) Create(ctx context.Context, q *domain.Quotation) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuotationRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Quotation, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quotation), args.Error(1)
}

func (m *MockQuotationRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Quotation, int, error) {
	args := m.Called(ctx, tenantID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Quotation), args.Int(1), args.Error(2)
}

func (m *MockQuotationRepo) Update(ctx context.Context, q *domain.Quotation) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuotationRepo) UpdateArchiveKey(ctx context.Context, tenantID, id uuid.UUID, key string) error {
	args := m.Called(ctx, tenantID, id, key)
	return args.Error(0)
}

func (m *MockQuotationRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}
