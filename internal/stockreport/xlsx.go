package stockreport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Stock Valuation"

// WriteXLSX writes the report as an Excel workbook with the same
// columns as the CSV export.
func WriteXLSX(w io.Writer, report Report) error {
	f := excelize.NewFile()
	index, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	for col, heading := range csvHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell name: %w", err)
		}
		if err := f.SetCellValue(xlsxSheet, cell, heading); err != nil {
			return fmt.Errorf("set header cell: %w", err)
		}
	}

	for i, row := range report.Rows {
		values := []interface{}{
			row.MaterialCode,
			row.MaterialName,
			row.Category,
			row.CurrentStock.InexactFloat64(),
			row.Unit,
			row.ReorderLevel.InexactFloat64(),
			row.UnitCost.InexactFloat64(),
			row.TotalValue.InexactFloat64(),
			row.Status,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("data cell name: %w", err)
			}
			if err := f.SetCellValue(xlsxSheet, cell, value); err != nil {
				return fmt.Errorf("set data cell: %w", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
