package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"quotedesk/internal/domain"
	"quotedesk/internal/quotation"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleQuotation(t *testing.T, sameState, roundOff bool) domain.Quotation {
	t.Helper()
	line := quotation.PayloadLine{
		RowID: "r1", ProductID: "p-1", Name: "Steel bracket", HSN: "7308", Unit: "NOS",
		Quantity: d("2"), Rate: d("100"), DiscountPercent: d("10"), DiscountAmount: d("20"),
		GST: d("18"), TaxableAmount: d("180"), TaxAmount: d("32.4"), LineTotal: d("212.4"),
	}
	if sameState {
		line.CGST, line.SGST = d("16.2"), d("16.2")
	} else {
		line.IGST = d("32.4")
	}
	p := quotation.Payload{
		DocumentType:    domain.DocumentTypeQuotation,
		LineItems:       []quotation.PayloadLine{line},
		TotalAmount:     d("180"),
		TaxAmount:       d("32.4"),
		ChargeTotal:     d("50"),
		DiscountTotal:   d("10"),
		RoundOffAmount:  d("-0.4"),
		GrandTotal:      d("252"),
		IncludeRoundOff: roundOff,
		SameState:       sameState,
	}
	raw, err := p.Marshal()
	require.NoError(t, err)

	valid := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)
	return domain.Quotation{
		ID:             uuid.New(),
		DocumentType:   domain.DocumentTypeQuotation,
		SeriesID:       "QT",
		DocumentNumber: "QT/001",
		CustomerID:     "c-1",
		BranchID:       "b-1",
		SalesPersonID:  "sp-1",
		IssueDate:      time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		ValidUntil:     &valid,
		TotalAmount:    d("180"),
		TaxAmount:      d("32.4"),
		RoundOffAmount: d("-0.4"),
		GrandTotal:     d("252"),
		Payload:        raw,
		CreatedAt:      time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestRegister_HeaderAndRow(t *testing.T) {
	var buf bytes.Buffer
	w := NewRegisterWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteQuotations([]domain.Quotation{sampleQuotation(t, true, true)}))
	w.Flush()
	require.NoError(t, w.Error())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Len(t, rows[0], len(registerColumns))
	assert.Equal(t, "Document Type", rows[0][0])

	row := rows[1]
	assert.Equal(t, "quotation", row[0])
	assert.Equal(t, "QT/001", row[2])
	assert.Equal(t, "2025-01-15", row[3])
	assert.Equal(t, "2025-02-15", row[4])
	assert.Equal(t, "Intra-state", row[8])
	assert.Equal(t, "1", row[9])
	assert.Equal(t, "180.00", row[10])
	assert.Equal(t, "16.20", row[11])
	assert.Equal(t, "16.20", row[12])
	assert.Equal(t, "0.00", row[13])
	assert.Equal(t, "50.00", row[15])
	assert.Equal(t, "10.00", row[16])
	assert.Equal(t, "-0.40", row[17])
	assert.Equal(t, "252.00", row[18])
	assert.Equal(t, "2025-01-15T10:00:00Z", row[19])
}

func TestRegister_BadPayloadKeepsHeaderColumns(t *testing.T) {
	q := sampleQuotation(t, false, false)
	q.Payload = []byte("{broken")

	row := quotationToRow(&q)

	assert.Equal(t, "QT/001", row[2])
	assert.Equal(t, "252.00", row[18])
	assert.Empty(t, row[8])
	assert.Empty(t, row[11])
}

func TestSumTaxSplit(t *testing.T) {
	split := SumTaxSplit([]quotation.PayloadLine{
		{CGST: d("1.5"), SGST: d("1.5")},
		{IGST: d("3.25")},
		{CGST: d("0.5"), SGST: d("0.5")},
	})

	assert.True(t, split.CGST.Equal(d("2")))
	assert.True(t, split.SGST.Equal(d("2")))
	assert.True(t, split.IGST.Equal(d("3.25")))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "QT_001", SanitizeFilename("QT/001"))
	assert.Equal(t, "a_b", SanitizeFilename("  a // b  "))
	assert.Len(t, SanitizeFilename(string(bytes.Repeat([]byte("x"), 150))), 100)
}

func TestFilenames(t *testing.T) {
	assert.Equal(t, "quotations_2025-03-01.csv", RegisterFilename(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)))

	q := sampleQuotation(t, true, false)
	assert.Equal(t, "quotation_QT_001.xlsx", WorkbookFilename(&q))

	q.DocumentNumber = ""
	assert.Equal(t, "quotation_"+q.ID.String()+".xlsx", WorkbookFilename(&q))
}

func TestWriteWorkbook(t *testing.T) {
	q := sampleQuotation(t, false, true)

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, &q))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)

	assert.Equal(t, []string{"Document Number", "QT/001"}, rows[1])
	assert.Equal(t, []string{"Supply", "Inter-state"}, rows[6])
	assert.Equal(t, "#", rows[8][0])
	assert.Equal(t, "Amount", rows[8][len(lineColumns)-1])

	line := rows[9]
	assert.Equal(t, "1", line[0])
	assert.Equal(t, "Steel bracket", line[1])
	assert.Equal(t, "32.4", line[12])
	assert.Equal(t, "212.4", line[13])

	last := rows[len(rows)-1]
	assert.Equal(t, []string{"Grand Total", "252"}, last)
	assert.Equal(t, []string{"Round Off", "-0.4"}, rows[len(rows)-2])
}

func TestWriteWorkbook_NoRoundOffRow(t *testing.T) {
	q := sampleQuotation(t, true, false)

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, &q))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	for _, r := range rows {
		if len(r) > 0 {
			assert.NotEqual(t, "Round Off", r[0])
		}
	}
}

func TestWriteWorkbook_BadPayload(t *testing.T) {
	q := sampleQuotation(t, true, false)
	q.Payload = []byte("nope")

	assert.Error(t, WriteWorkbook(&bytes.Buffer{}, &q))
}
