// Package stockreport derives a printable stock valuation report from
// inventory data: per-material valuation rows with threshold-based
// status, plus summary statistics. It performs no network calls; the
// report is a pure function of its input.
package stockreport

import (
	"sort"

	"github.com/shopspring/decimal"

	"procure/pkg/models"
)

// Stock status classifications.
const (
	StatusGood       = "good"
	StatusLow        = "low"
	StatusCritical   = "critical"
	StatusOutOfStock = "out-of-stock"
)

// Row is one material's valuation line.
type Row struct {
	MaterialCode string
	MaterialName string
	Category     string
	CurrentStock decimal.Decimal
	Unit         string
	ReorderLevel decimal.Decimal
	UnitCost     decimal.Decimal
	TotalValue   decimal.Decimal
	Status       string
}

// Summary aggregates the report's headline numbers.
type Summary struct {
	TotalMaterials  int
	InStockCount    int
	TotalValue      decimal.Decimal
	LowStockCount   int
	OutOfStockCount int
}

// Report is the derived valuation report, rows sorted by total value
// descending.
type Report struct {
	Summary Summary
	Rows    []Row
}

// Build derives the report from the given inventory.
func Build(items []models.InventoryItem) Report {
	report := Report{
		Summary: Summary{
			TotalMaterials: len(items),
			TotalValue:     decimal.Zero,
		},
		Rows: make([]Row, 0, len(items)),
	}

	for _, item := range items {
		unitCost := item.UnitCost()
		totalValue := item.CurrentStock.Mul(unitCost)

		row := Row{
			MaterialCode: item.MaterialCode,
			MaterialName: item.MaterialName,
			Category:     item.Category,
			CurrentStock: item.CurrentStock,
			Unit:         item.Unit,
			ReorderLevel: item.ReorderLevel,
			UnitCost:     unitCost,
			TotalValue:   totalValue,
			Status:       Classify(item.CurrentStock, item.ReorderLevel),
		}
		report.Rows = append(report.Rows, row)

		report.Summary.TotalValue = report.Summary.TotalValue.Add(totalValue)
		switch {
		case item.CurrentStock.IsZero():
			report.Summary.OutOfStockCount++
		default:
			report.Summary.InStockCount++
			if !item.ReorderLevel.IsZero() && item.CurrentStock.LessThanOrEqual(item.ReorderLevel) {
				report.Summary.LowStockCount++
			}
		}
	}

	sort.SliceStable(report.Rows, func(i, j int) bool {
		return report.Rows[i].TotalValue.GreaterThan(report.Rows[j].TotalValue)
	})

	return report
}

// Classify maps a stock level to its status. Out-of-stock takes
// precedence; critical is at or below half the reorder level, low at
// or below the reorder level. Materials without a reorder level are
// good whenever stocked.
func Classify(currentStock, reorderLevel decimal.Decimal) string {
	if currentStock.IsZero() {
		return StatusOutOfStock
	}
	if reorderLevel.IsZero() {
		return StatusGood
	}
	half := reorderLevel.Div(decimal.NewFromInt(2))
	switch {
	case currentStock.LessThanOrEqual(half):
		return StatusCritical
	case currentStock.LessThanOrEqual(reorderLevel):
		return StatusLow
	default:
		return StatusGood
	}
}
