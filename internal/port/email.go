package port

import "context"

// QuotationEmail carries what the customer-facing quotation email shows.
type QuotationEmail struct {
	ToEmail        string
	ToName         string
	DocumentType   string
	DocumentNumber string
	GrandTotal     string
	DownloadURL    string
}

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendQuotationEmail(ctx context.Context, msg QuotationEmail) error
}
