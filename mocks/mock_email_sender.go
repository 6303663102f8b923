package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"quotedesk/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendQuotationEmail(ctx context.Context, msg port.QuotationEmail) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
