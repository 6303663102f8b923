package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"quotedesk/internal/domain"
)

// MockMasterDataSource is a mock implementation of port.MasterDataSource.
type MockMasterDataSource struct {
	mock.Mock
}

func (m *MockMasterDataSource) GetBranch(ctx context.Context, tenantID uuid.UUID, id string) (*domain.Branch, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

func (m *MockMasterDataSource) GetCustomer(ctx context.Context, tenantID uuid.UUID, id string) (*domain.Customer, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockMasterDataSource) GetCatalogItems(ctx context.Context, tenantID uuid.UUID, refs []domain.ItemRef) ([]domain.CatalogItem, error) {
	args := m.Called(ctx, tenantID, refs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CatalogItem), args.Error(1)
}
