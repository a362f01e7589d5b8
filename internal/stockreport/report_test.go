package stockreport

import (
	"testing"

	"github.com/shopspring/decimal"

	"procure/pkg/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		stock   string
		reorder string
		want    string
	}{
		{"zero stock is out of stock", "0", "100", StatusOutOfStock},
		{"zero stock without reorder level", "0", "0", StatusOutOfStock},
		{"at reorder level is low not critical", "100", "100", StatusLow},
		{"at half the reorder level is critical", "50", "100", StatusCritical},
		{"below half the reorder level is critical", "30", "100", StatusCritical},
		{"between half and reorder level is low", "75", "100", StatusLow},
		{"above reorder level is good", "150", "100", StatusGood},
		{"no reorder level but stocked is good", "5", "0", StatusGood},
		{"odd reorder level halves exactly", "12.5", "25", StatusCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(dec(tt.stock), dec(tt.reorder)); got != tt.want {
				t.Errorf("Classify(%s, %s) = %s, want %s", tt.stock, tt.reorder, got, tt.want)
			}
		})
	}
}

func TestBuildSummary(t *testing.T) {
	items := []models.InventoryItem{
		{MaterialCode: "M-1", CurrentStock: dec("10"), ReorderLevel: dec("20"), StandardPrice: dec("2")},  // low, value 20
		{MaterialCode: "M-2", CurrentStock: dec("0"), ReorderLevel: dec("5"), AverageCost: dec("9")},      // out of stock, value 0
		{MaterialCode: "M-3", CurrentStock: dec("100"), ReorderLevel: dec("10"), StandardPrice: dec("3")}, // good, value 300
		{MaterialCode: "M-4", CurrentStock: dec("2"), ReorderLevel: dec("8"), AverageCost: dec("1.5")},    // critical, value 3
	}

	report := Build(items)

	if report.Summary.TotalMaterials != 4 {
		t.Errorf("TotalMaterials = %d, want 4", report.Summary.TotalMaterials)
	}
	if report.Summary.InStockCount != 3 {
		t.Errorf("InStockCount = %d, want 3", report.Summary.InStockCount)
	}
	if report.Summary.OutOfStockCount != 1 {
		t.Errorf("OutOfStockCount = %d, want 1", report.Summary.OutOfStockCount)
	}
	// low-stock counts everything with 0 < stock <= reorder level,
	// critical included
	if report.Summary.LowStockCount != 2 {
		t.Errorf("LowStockCount = %d, want 2", report.Summary.LowStockCount)
	}
	if got := report.Summary.TotalValue.StringFixed(3); got != "323.000" {
		t.Errorf("TotalValue = %s, want 323.000", got)
	}
}

func TestBuildSortsByValueDescending(t *testing.T) {
	items := []models.InventoryItem{
		{MaterialCode: "CHEAP", CurrentStock: dec("1"), StandardPrice: dec("1")},
		{MaterialCode: "DEAR", CurrentStock: dec("10"), StandardPrice: dec("100")},
		{MaterialCode: "MID", CurrentStock: dec("5"), StandardPrice: dec("4")},
	}

	report := Build(items)

	want := []string{"DEAR", "MID", "CHEAP"}
	for i, code := range want {
		if report.Rows[i].MaterialCode != code {
			t.Fatalf("row %d = %s, want %s (rows: %+v)", i, report.Rows[i].MaterialCode, code, report.Rows)
		}
	}
}

func TestUnitCostPrefersStandardPrice(t *testing.T) {
	report := Build([]models.InventoryItem{
		{MaterialCode: "M-1", CurrentStock: dec("2"), StandardPrice: dec("5"), AverageCost: dec("9")},
		{MaterialCode: "M-2", CurrentStock: dec("2"), AverageCost: dec("9")},
	})

	byCode := map[string]Row{}
	for _, row := range report.Rows {
		byCode[row.MaterialCode] = row
	}
	if got := byCode["M-1"].UnitCost.String(); got != "5" {
		t.Errorf("M-1 unit cost = %s, want standard price 5", got)
	}
	if got := byCode["M-2"].UnitCost.String(); got != "9" {
		t.Errorf("M-2 unit cost = %s, want average cost 9", got)
	}
}
