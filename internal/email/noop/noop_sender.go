package noop

import (
	"context"

	"go.uber.org/zap"

	"quotedesk/internal/port"
)

type noopSender struct {
	log *zap.Logger
}

// NewNoopSender creates a no-op EmailSender that logs each message instead of sending it.
func NewNoopSender(log *zap.Logger) port.EmailSender {
	if log == nil {
		log = zap.NewNop()
	}
	return &noopSender{log: log.Named("email")}
}

func (s *noopSender) SendQuotationEmail(_ context.Context, msg port.QuotationEmail) error {
	s.log.Info("noop quotation email",
		zap.String("to", msg.ToEmail),
		zap.String("document_type", msg.DocumentType),
		zap.String("document_number", msg.DocumentNumber),
		zap.String("grand_total", msg.GrandTotal),
		zap.String("url", msg.DownloadURL),
	)
	return nil
}
