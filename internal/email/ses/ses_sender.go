package ses

import (
	"context"
	"fmt"
	"html"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"quotedesk/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(ctx context.Context, region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client:      sesv2.NewFromConfig(cfg),
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendQuotationEmail(ctx context.Context, msg port.QuotationEmail) error {
	subject := Subject(msg, s.fromName)
	htmlBody := BuildQuotationHTML(msg, s.fromName)
	textBody := BuildQuotationText(msg, s.fromName)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{msg.ToEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

// Subject is the email subject line, e.g. "Quotation Q-001 from Acme".
func Subject(msg port.QuotationEmail, fromName string) string {
	s := documentLabel(msg.DocumentType)
	if msg.DocumentNumber != "" {
		s += " " + msg.DocumentNumber
	}
	if fromName != "" {
		s += " from " + fromName
	}
	return s
}

// BuildQuotationText renders the plain-text body.
func BuildQuotationText(msg port.QuotationEmail, fromName string) string {
	return fmt.Sprintf("Hi %s,\n\nPlease find your %s for a total of Rs. %s.\n\nDownload it here:\n%s\n\nThis link is valid for a limited time.\n\n%s",
		greetingName(msg.ToName), documentLabel(msg.DocumentType), msg.GrandTotal, msg.DownloadURL, fromName)
}

// BuildQuotationHTML renders the HTML body. All interpolated values are escaped.
func BuildQuotationHTML(msg port.QuotationEmail, fromName string) string {
	link := html.EscapeString(msg.DownloadURL)
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">%s %s</h2>
  <p>Hi %s,</p>
  <p>Please find your %s for a total of <strong>Rs. %s</strong>.</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Download</a>
  </p>
  <p>Or copy and paste this link into your browser:</p>
  <p style="word-break: break-all; color: #666;">%s</p>
  <p style="color: #999; font-size: 12px;">This link is valid for a limited time.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">%s</p>
</body>
</html>`,
		html.EscapeString(documentLabel(msg.DocumentType)), html.EscapeString(msg.DocumentNumber),
		html.EscapeString(greetingName(msg.ToName)), html.EscapeString(documentLabel(msg.DocumentType)),
		html.EscapeString(msg.GrandTotal), link, link, html.EscapeString(fromName))
}

func greetingName(name string) string {
	if name == "" {
		return "there"
	}
	return name
}

func documentLabel(docType string) string {
	switch docType {
	case "proforma_invoice":
		return "Proforma Invoice"
	case "sales_order":
		return "Sales Order"
	case "invoice":
		return "Invoice"
	case "purchase_order":
		return "Purchase Order"
	default:
		return "Quotation"
	}
}
