// Package export renders saved quotations as a CSV register and as XLSX workbooks.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"quotedesk/internal/domain"
	"quotedesk/internal/quotation"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

const dateLayout = "2006-01-02"

var registerColumns = []string{
	"Document Type",
	"Series",
	"Document Number",
	"Issue Date",
	"Valid Until",
	"Customer ID",
	"Branch ID",
	"Sales Person ID",
	"Supply",
	"Line Item Count",
	"Taxable Amount",
	"CGST",
	"SGST",
	"IGST",
	"Tax Amount",
	"Charges",
	"Discounts",
	"Round Off",
	"Grand Total",
	"Created At",
}

// RegisterWriter wraps csv.Writer for exporting the quotation register.
type RegisterWriter struct {
	csv *csv.Writer
}

// NewRegisterWriter creates a RegisterWriter that writes CSV to w.
func NewRegisterWriter(w io.Writer) *RegisterWriter {
	return &RegisterWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *RegisterWriter) WriteHeader() error {
	return w.csv.Write(registerColumns)
}

// WriteQuotations converts a batch of quotations to CSV rows and writes them.
func (w *RegisterWriter) WriteQuotations(qs []domain.Quotation) error {
	for i := range qs {
		if err := w.csv.Write(quotationToRow(&qs[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *RegisterWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *RegisterWriter) Error() error {
	return w.csv.Error()
}

// quotationToRow fills the header columns from the row itself. Tax split and
// adjustment columns need the payload and stay empty when it cannot be decoded.
func quotationToRow(q *domain.Quotation) []string {
	row := make([]string, len(registerColumns))
	row[0] = string(q.DocumentType)
	row[1] = q.SeriesID
	row[2] = q.DocumentNumber
	row[3] = q.IssueDate.Format(dateLayout)
	row[4] = formatDate(q.ValidUntil)
	row[5] = q.CustomerID
	row[6] = q.BranchID
	row[7] = q.SalesPersonID
	row[10] = formatMoney(q.TotalAmount)
	row[14] = formatMoney(q.TaxAmount)
	row[17] = formatMoney(q.RoundOffAmount)
	row[18] = formatMoney(q.GrandTotal)
	row[19] = q.CreatedAt.Format(time.RFC3339)

	p, err := quotation.ParsePayload(q.Payload)
	if err != nil {
		return row
	}
	split := SumTaxSplit(p.LineItems)
	row[8] = SupplyLabel(p.SameState)
	row[9] = strconv.Itoa(len(p.LineItems))
	row[11] = formatMoney(split.CGST)
	row[12] = formatMoney(split.SGST)
	row[13] = formatMoney(split.IGST)
	row[15] = formatMoney(p.ChargeTotal)
	row[16] = formatMoney(p.DiscountTotal)
	return row
}

// TaxSplit is the per-component tax total of a document.
type TaxSplit struct {
	CGST decimal.Decimal
	SGST decimal.Decimal
	IGST decimal.Decimal
}

// SumTaxSplit adds up the CGST, SGST and IGST of the given lines.
func SumTaxSplit(lines []quotation.PayloadLine) TaxSplit {
	var s TaxSplit
	for i := range lines {
		s.CGST = s.CGST.Add(lines[i].CGST)
		s.SGST = s.SGST.Add(lines[i].SGST)
		s.IGST = s.IGST.Add(lines[i].IGST)
	}
	return s
}

// SupplyLabel names the GST regime of a document.
func SupplyLabel(sameState bool) string {
	if sameState {
		return "Intra-state"
	}
	return "Inter-state"
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition. It replaces
// characters other than letters, digits, "-" and "_" with "_", collapses runs of
// underscores and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// RegisterFilename returns the download name of the register for the given day.
// Format: quotations_{YYYY-MM-DD}.csv
func RegisterFilename(now time.Time) string {
	return fmt.Sprintf("quotations_%s.csv", now.Format(dateLayout))
}

// WorkbookFilename returns the download name of a single document's workbook.
// The document number is used when set, otherwise the document ID.
func WorkbookFilename(q *domain.Quotation) string {
	name := SanitizeFilename(q.DocumentNumber)
	if name == "" {
		name = q.ID.String()
	}
	return fmt.Sprintf("%s_%s.xlsx", SanitizeFilename(string(q.DocumentType)), name)
}
