package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"quotedesk/internal/service"
)

// MockExportService is a mock implementation of service.ExportService.
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) WriteRegister(ctx context.Context, tenantID uuid.UUID, w io.Writer) error {
	args := m.Called(ctx, tenantID, w)
	return args.Error(0)
}

func (m *MockExportService) Workbook(ctx context.Context, tenantID, id uuid.UUID) (*service.WorkbookFile, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WorkbookFile), args.Error(1)
}

func (m *MockExportService) Archive(ctx context.Context, tenantID, id uuid.UUID) (*service.ArchiveResult, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArchiveResult), args.Error(1)
}

func (m *MockExportService) Send(ctx context.Context, tenantID, id uuid.UUID) (*service.SendResult, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SendResult), args.Error(1)
}
