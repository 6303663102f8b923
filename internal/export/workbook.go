package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"quotedesk/internal/domain"
	"quotedesk/internal/quotation"
)

// WorkbookContentType is the MIME type of an XLSX workbook.
const WorkbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SheetName is the single sheet a document workbook contains.
const SheetName = "Document"

var lineColumns = []string{
	"#", "Item", "HSN/SAC", "Unit", "Qty", "Rate", "Discount %", "Discount",
	"Taxable", "GST %", "CGST", "SGST", "IGST", "Amount",
}

// WriteWorkbook renders q as an XLSX workbook with the document header, one row per
// line item and the totals block, and writes it to w.
func WriteWorkbook(w io.Writer, q *domain.Quotation) error {
	p, err := quotation.ParsePayload(q.Payload)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}

	sw := &sheetWriter{f: f, sheet: SheetName}

	header := [][2]interface{}{
		{"Document Type", string(q.DocumentType)},
		{"Document Number", q.DocumentNumber},
		{"Issue Date", q.IssueDate.Format(dateLayout)},
		{"Valid Until", formatDate(q.ValidUntil)},
		{"Customer", q.CustomerID},
		{"Branch", q.BranchID},
		{"Supply", SupplyLabel(p.SameState)},
	}
	row := 1
	for _, h := range header {
		sw.setRow(row, h[0], h[1])
		row++
	}

	row++
	tableHeader := row
	cells := make([]interface{}, len(lineColumns))
	for i, c := range lineColumns {
		cells[i] = c
	}
	sw.setRow(row, cells...)
	row++

	for i := range p.LineItems {
		l := &p.LineItems[i]
		sw.setRow(row,
			i+1, l.Name, l.HSN, l.Unit,
			num(l.Quantity), num(l.Rate), num(l.DiscountPercent), num(l.DiscountAmount),
			num(l.TaxableAmount), num(l.GST), num(l.CGST), num(l.SGST), num(l.IGST), num(l.LineTotal),
		)
		row++
	}

	row++
	totalsStart := row
	totals := [][2]interface{}{
		{"Taxable Amount", num(p.TotalAmount)},
		{"Tax Amount", num(p.TaxAmount)},
		{"Charges", num(p.ChargeTotal)},
		{"Discounts", num(p.DiscountTotal)},
	}
	if p.IncludeRoundOff {
		totals = append(totals, [2]interface{}{"Round Off", num(p.RoundOffAmount)})
	}
	totals = append(totals, [2]interface{}{"Grand Total", num(p.GrandTotal)})
	for _, t := range totals {
		sw.setRow(row, t[0], t[1])
		row++
	}

	if sw.err != nil {
		return sw.err
	}

	last, _ := excelize.ColumnNumberToName(len(lineColumns))
	if err := f.SetCellStyle(SheetName, "A1", fmt.Sprintf("A%d", len(header)), bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	if err := f.SetCellStyle(SheetName, fmt.Sprintf("A%d", tableHeader), fmt.Sprintf("%s%d", last, tableHeader), bold); err != nil {
		return fmt.Errorf("styling table header: %w", err)
	}
	if err := f.SetCellStyle(SheetName, fmt.Sprintf("A%d", totalsStart), fmt.Sprintf("A%d", row-1), bold); err != nil {
		return fmt.Errorf("styling totals: %w", err)
	}
	if err := f.SetColWidth(SheetName, "B", "B", 36); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// sheetWriter writes rows and keeps the first error.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (s *sheetWriter) setRow(row int, values ...interface{}) {
	if s.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		s.err = err
		return
	}
	if err := s.f.SetSheetRow(s.sheet, cell, &values); err != nil {
		s.err = fmt.Errorf("writing row %d: %w", row, err)
	}
}

// num converts an amount to float64 for a numeric cell.
func num(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
