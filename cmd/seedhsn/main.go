// Command seedhsn converts the GST HSN/SAC Excel file into a SQL seed file for
// the hsn_codes table.
//
// Usage: go run ./cmd/seedhsn -in rates.xlsx -out db/seeds/hsn_codes.sql
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"quotedesk/internal/config"
	"quotedesk/internal/hsnseed"
	"quotedesk/internal/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	in := flag.String("in", "GST_HSN_Code_summary.xlsx", "path to the HSN/SAC rate workbook")
	out := flag.String("out", "db/seeds/hsn_codes.sql", "path of the generated SQL file")
	batch := flag.Int("batch", 500, "rows per INSERT statement")
	flag.Parse()

	zlog, err := logger.New(config.LogConfig{Level: "info", Format: "console"}, "cli")
	if err != nil {
		return err
	}
	defer func() { _ = zlog.Sync() }()

	f, err := excelize.OpenFile(*in)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	goods, services, err := hsnseed.ParseWorkbook(f)
	if err != nil {
		return err
	}
	zlog.Info("workbook parsed", zap.Int("hsn", len(goods)), zap.Int("sac", len(services)))

	w, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = w.Close() }()

	entries := append(goods, services...)
	if err := hsnseed.WriteSQL(w, entries, *batch); err != nil {
		return err
	}

	zlog.Info("seed file written", zap.String("path", *out), zap.Int("entries", len(entries)))
	return nil
}
