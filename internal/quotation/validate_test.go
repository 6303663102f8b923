package quotation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotedesk/internal/domain"
	"quotedesk/internal/quotation"
)

func TestValidateForSave(t *testing.T) {
	empty := newTestDraft(t)
	filled := newTestDraft(t)
	_, err := filled.AddItem(refProduct, d("1"), quotation.AddOptions{})
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  quotation.Header
		draft   *quotation.Draft
		wantErr error
	}{
		{"missing customer", quotation.Header{SalesPersonID: "e-1"}, filled, domain.ErrCustomerRequired},
		{"blank customer", quotation.Header{CustomerID: "  ", SalesPersonID: "e-1"}, filled, domain.ErrCustomerRequired},
		{"missing sales person", quotation.Header{CustomerID: "c-1"}, filled, domain.ErrSalesPersonRequired},
		{"no lines", quotation.Header{CustomerID: "c-1", SalesPersonID: "e-1"}, empty, domain.ErrNoLineItems},
		{"nil draft", quotation.Header{CustomerID: "c-1", SalesPersonID: "e-1"}, nil, domain.ErrNoLineItems},
		{"valid", quotation.Header{CustomerID: "c-1", SalesPersonID: "e-1"}, filled, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := quotation.ValidateForSave(tt.header, tt.draft)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, domain.IsValidationError(err))
		})
	}
}
