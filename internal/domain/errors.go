package domain

import "errors"

var (
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrQuotationNotFound     = errors.New("quotation not found")
	ErrBranchNotFound        = errors.New("branch not found")
	ErrCustomerNotFound      = errors.New("customer not found")
	ErrAddressNotFound       = errors.New("address not found")
	ErrCatalogItemNotFound   = errors.New("catalog item not found")
	ErrRowNotFound           = errors.New("line item row not found")
	ErrInvalidDocumentType   = errors.New("invalid document type")
	ErrInvalidAdjustmentType = errors.New("invalid charge or discount type")
	ErrMasterDataUnavailable = errors.New("master data service unavailable")
	ErrUploadFailed          = errors.New("file upload to storage failed")
	ErrCustomerEmailMissing  = errors.New("customer has no email address")
	ErrInvalidDate           = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidLineItem       = errors.New("line item needs a product_id or an ad_hoc item")

	// Save-time validation failures. These are user facing.
	ErrCustomerRequired    = errors.New("please select a customer")
	ErrSalesPersonRequired = errors.New("please select a sales credit person")
	ErrNoLineItems         = errors.New("add at least one item before saving")
)

// IsValidationError reports whether err is one of the blocking save-time validation errors.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrCustomerRequired) ||
		errors.Is(err, ErrSalesPersonRequired) ||
		errors.Is(err, ErrNoLineItems)
}
