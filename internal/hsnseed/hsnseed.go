// Package hsnseed converts the GST HSN/SAC rate workbook into SQL seed data for
// the hsn_codes table.
package hsnseed

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	// SACSheet is the name of the services sheet.
	SACSheet = "SAC_Master"

	// EffectiveFrom is the GST rollout date every seeded rate applies from.
	EffectiveFrom = "2017-07-01"

	hsnFirstRow = 5
	sacFirstRow = 3
)

// Entry is one code/rate pair destined for hsn_codes.
type Entry struct {
	Code        string
	Description string
	Rate        decimal.Decimal
	Condition   string
	ParentCode  string
}

// Rate is a GST rate with the condition it applies under, if any.
type Rate struct {
	Percent   decimal.Decimal
	Condition string
}

// ParseWorkbook reads the goods sheet (first sheet) and the SAC_Master sheet.
// Codes are deduplicated on code, rate and condition across both sheets.
func ParseWorkbook(f *excelize.File) (goods, services []Entry, err error) {
	seen := make(map[string]bool)

	goods, err = parseHSNSheet(f, seen)
	if err != nil {
		return nil, nil, fmt.Errorf("parse HSN sheet: %w", err)
	}
	services, err = parseSACSheet(f, seen)
	if err != nil {
		return nil, nil, fmt.Errorf("parse SAC sheet: %w", err)
	}
	return goods, services, nil
}

// parseHSNSheet reads the goods sheet.
// Columns: F(5)=4-digit, H(7)=4-digit desc, I(8)=6-digit, J(9)=6-digit desc,
// K(10)=8-digit, M(12)=8-digit desc, N(13)=GST rate (percentage formatted).
func parseHSNSheet(f *excelize.File, seen map[string]bool) ([]Entry, error) {
	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for i := hsnFirstRow; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 14 {
			continue
		}
		rate, err := decimal.NewFromString(strings.TrimSuffix(strings.TrimSpace(row[13]), "%"))
		if err != nil {
			continue
		}
		r := Rate{Percent: rate}

		for _, col := range [][2]int{{10, 12}, {8, 9}, {5, 7}} {
			if code := strings.TrimSpace(cellVal(row, col[0])); isNumeric(code) {
				entries = addEntry(entries, seen, code, strings.TrimSpace(cellVal(row, col[1])), r)
			}
		}
	}
	return entries, nil
}

// parseSACSheet reads the services sheet.
// Columns: A(0)=4-digit SAC, B(1)=4-digit desc, C(2)=6-digit SAC, D(3)=6-digit desc,
// E(4)=GST rate as free text.
func parseSACSheet(f *excelize.File, seen map[string]bool) ([]Entry, error) {
	rows, err := f.GetRows(SACSheet)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for i := sacFirstRow; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 5 {
			continue
		}
		rates := ParseSACRate(row[4])
		if len(rates) == 0 {
			continue
		}

		code6, desc6 := strings.TrimSpace(cellVal(row, 2)), strings.TrimSpace(cellVal(row, 3))
		code4, desc4 := strings.TrimSpace(cellVal(row, 0)), strings.TrimSpace(cellVal(row, 1))
		for _, r := range rates {
			if isNumeric(code6) {
				entries = addEntry(entries, seen, code6, desc6, r)
			}
			if isNumeric(code4) {
				entries = addEntry(entries, seen, code4, desc4, r)
			}
		}
	}
	return entries, nil
}

// ratePattern matches a percentage and an optional parenthesised condition after it.
var ratePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%\s*(?:\(([^)]*)\))?`)

// ParseSACRate extracts the GST rates from a free-text SAC rate cell.
//
//	"18%"                                   -> 18
//	"Exempt"                                -> 0
//	"12%-18%"                               -> 12, 18
//	"1% (without ITC) or 5% (without ITC)"  -> 1 "without ITC", 5 "without ITC"
func ParseSACRate(s string) []Rate {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return nil
	case "exempt", "nil":
		return []Rate{{Percent: decimal.Zero}}
	}

	seen := make(map[string]bool)
	var rates []Rate
	for _, m := range ratePattern.FindAllStringSubmatch(s, -1) {
		pct, err := decimal.NewFromString(m[1])
		if err != nil {
			continue
		}
		r := Rate{Percent: pct, Condition: strings.TrimSpace(m[2])}
		key := r.Percent.StringFixed(2) + "|" + r.Condition
		if seen[key] {
			continue
		}
		seen[key] = true
		rates = append(rates, r)
	}
	return rates
}

func addEntry(entries []Entry, seen map[string]bool, code, description string, r Rate) []Entry {
	key := code + "|" + r.Percent.StringFixed(2) + "|" + r.Condition
	if seen[key] {
		return entries
	}
	seen[key] = true

	parent := ""
	if len(code) > 4 {
		parent = code[:4]
	}
	return append(entries, Entry{
		Code:        code,
		Description: description,
		Rate:        r.Percent,
		Condition:   r.Condition,
		ParentCode:  parent,
	})
}

// WriteSQL writes entries as a single transaction of batched multi-row inserts.
// Existing rows are left untouched.
func WriteSQL(w io.Writer, entries []Entry, batchSize int) error {
	if batchSize <= 0 {
		batchSize = 500
	}

	header := fmt.Sprintf("-- HSN/SAC code seed data generated from Excel.\n-- %d entries in batches of %d.\nBEGIN;\n\n",
		len(entries), batchSize)
	if _, err := io.WriteString(w, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := 0; i < len(entries); i += batchSize {
		end := i + batchSize
		if end > len(entries) {
			end = len(entries)
		}
		if err := writeBatch(w, entries[i:end]); err != nil {
			return fmt.Errorf("write batch at offset %d: %w", i, err)
		}
	}

	if _, err := io.WriteString(w, "\nCOMMIT;\n"); err != nil {
		return fmt.Errorf("write footer: %w", err)
	}
	return nil
}

func writeBatch(w io.Writer, batch []Entry) error {
	var b strings.Builder
	b.WriteString("INSERT INTO hsn_codes (code, description, gst_rate, condition_desc, parent_code, effective_from) VALUES\n")

	for i := range batch {
		e := &batch[i]
		if i > 0 {
			b.WriteString(",\n")
		}
		parent := "NULL"
		if e.ParentCode != "" {
			parent = quote(e.ParentCode)
		}
		fmt.Fprintf(&b, "  (%s, %s, %s, %s, %s, '%s')",
			quote(e.Code), quote(e.Description), e.Rate.StringFixed(2), quote(e.Condition), parent, EffectiveFrom)
	}

	b.WriteString("\nON CONFLICT (code, gst_rate, condition_desc, effective_from) DO NOTHING;\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
