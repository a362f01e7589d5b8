package stockreport

import (
	"fmt"
	"html/template"
	"io"
	"time"
)

// printTemplate is the standalone printable document: the browser-print
// rendition of the report with embedded print styling.
var printTemplate = template.Must(template.New("stock-report").Parse(printDocument))

const printDocument = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Stock Valuation Report</title>
<style>
  body { font-family: Arial, Helvetica, sans-serif; margin: 24px; color: #1a1a1a; }
  h1 { font-size: 20px; margin-bottom: 2px; }
  .generated { color: #666; font-size: 12px; margin-bottom: 16px; }
  .summary { display: flex; gap: 24px; margin-bottom: 16px; }
  .summary div { border: 1px solid #ddd; padding: 8px 14px; border-radius: 4px; }
  .summary .label { font-size: 11px; color: #666; text-transform: uppercase; }
  .summary .value { font-size: 16px; font-weight: bold; }
  table { width: 100%; border-collapse: collapse; font-size: 12px; }
  th, td { border: 1px solid #ccc; padding: 6px 8px; text-align: left; }
  th { background: #f3f3f3; }
  td.num { text-align: right; }
  .status-out-of-stock { color: #b91c1c; font-weight: bold; }
  .status-critical { color: #c2410c; font-weight: bold; }
  .status-low { color: #a16207; }
  .status-good { color: #15803d; }
  @media print {
    body { margin: 8mm; }
    .summary div { border-color: #999; }
  }
</style>
</head>
<body>
<h1>Stock Valuation Report</h1>
<p class="generated">Generated {{.GeneratedAt}}</p>
<div class="summary">
  <div><span class="label">Materials</span><br><span class="value">{{.Summary.TotalMaterials}}</span></div>
  <div><span class="label">In Stock</span><br><span class="value">{{.Summary.InStockCount}}</span></div>
  <div><span class="label">Total Value</span><br><span class="value">{{.TotalValue}}</span></div>
  <div><span class="label">Low Stock</span><br><span class="value">{{.Summary.LowStockCount}}</span></div>
  <div><span class="label">Out of Stock</span><br><span class="value">{{.Summary.OutOfStockCount}}</span></div>
</div>
<table>
<thead>
<tr><th>Material Code</th><th>Material Name</th><th>Category</th><th>Current Stock</th><th>Unit</th><th>Reorder Level</th><th>Unit Cost</th><th>Total Value</th><th>Status</th></tr>
</thead>
<tbody>
{{range .Rows}}<tr>
  <td>{{.MaterialCode}}</td>
  <td>{{.MaterialName}}</td>
  <td>{{.Category}}</td>
  <td class="num">{{.CurrentStock}}</td>
  <td>{{.Unit}}</td>
  <td class="num">{{.ReorderLevel}}</td>
  <td class="num">{{.UnitCost}}</td>
  <td class="num">{{.TotalValue}}</td>
  <td class="status-{{.Status}}">{{.Status}}</td>
</tr>
{{end}}</tbody>
</table>
</body>
</html>
`

type printRow struct {
	MaterialCode string
	MaterialName string
	Category     string
	CurrentStock string
	Unit         string
	ReorderLevel string
	UnitCost     string
	TotalValue   string
	Status       string
}

type printData struct {
	GeneratedAt string
	Summary     Summary
	TotalValue  string
	Rows        []printRow
}

// WriteHTML writes the report as a self-contained printable HTML
// document.
func WriteHTML(w io.Writer, report Report, generatedAt time.Time) error {
	data := printData{
		GeneratedAt: generatedAt.Format("2006-01-02 15:04"),
		Summary:     report.Summary,
		TotalValue:  report.Summary.TotalValue.StringFixed(3),
		Rows:        make([]printRow, 0, len(report.Rows)),
	}
	for _, row := range report.Rows {
		data.Rows = append(data.Rows, printRow{
			MaterialCode: row.MaterialCode,
			MaterialName: row.MaterialName,
			Category:     row.Category,
			CurrentStock: row.CurrentStock.StringFixed(3),
			Unit:         row.Unit,
			ReorderLevel: row.ReorderLevel.StringFixed(3),
			UnitCost:     row.UnitCost.StringFixed(3),
			TotalValue:   row.TotalValue.StringFixed(3),
			Status:       row.Status,
		})
	}

	if err := printTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render print document: %w", err)
	}
	return nil
}
