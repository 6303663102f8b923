package handler

import (
	"quotedesk/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// ChangeContextRequest represents the change context request body.
// Omitted fields keep the stored value.
type ChangeContextRequest struct {
	DocumentType      *domain.DocumentType `json:"document_type" example:"purchase_order"`
	BranchID          *string              `json:"branch_id" example:"br-pune"`
	BillingAddressID  *string              `json:"billing_address_id" example:"addr-1"`
	ShippingAddressID *string              `json:"shipping_address_id" example:"addr-2"`
}

// --- Response Types ---

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"quotation deleted"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
