package stockreport

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// csvHeader is the 9-column export layout, one row per material.
var csvHeader = []string{
	"Material Code",
	"Material Name",
	"Category",
	"Current Stock",
	"Unit",
	"Reorder Level",
	"Unit Cost",
	"Total Value",
	"Status",
}

// WriteCSV writes the report as comma-joined rows with every field
// quoted, numerics to three decimal places.
func WriteCSV(w io.Writer, report Report) error {
	if err := writeCSVRecord(w, csvHeader); err != nil {
		return err
	}
	for _, row := range report.Rows {
		record := []string{
			row.MaterialCode,
			row.MaterialName,
			row.Category,
			row.CurrentStock.StringFixed(3),
			row.Unit,
			row.ReorderLevel.StringFixed(3),
			row.UnitCost.StringFixed(3),
			row.TotalValue.StringFixed(3),
			row.Status,
		}
		if err := writeCSVRecord(w, record); err != nil {
			return err
		}
	}
	return nil
}

func writeCSVRecord(w io.Writer, fields []string) error {
	quoted := make([]string, len(fields))
	for i, field := range fields {
		quoted[i] = `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	if _, err := fmt.Fprintln(w, strings.Join(quoted, ",")); err != nil {
		return fmt.Errorf("write csv record: %w", err)
	}
	return nil
}

// CSVFilename returns the dated default export name.
func CSVFilename(now time.Time) string {
	return fmt.Sprintf("stock-valuation-%s.csv", now.Format("2006-01-02"))
}
