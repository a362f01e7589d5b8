package invoices

import "testing"

func TestFiltersQuery(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
		want    string
	}{
		{
			name:    "empty filters",
			filters: Filters{},
			want:    "",
		},
		{
			name: "all fields",
			filters: Filters{
				Search:          "acme",
				SupplierID:      "SUP-1",
				PurchaseOrderID: "PO-9",
				PaymentStatus:   "overdue",
				BillStatus:      "draft",
				BillType:        "company",
				FromDate:        "2026-01-01",
				ToDate:          "2026-06-30",
				Page:            2,
				Limit:           25,
				ProjectID:       "PRJ-4",
			},
			want: "billStatus=draft&billType=company&fromDate=2026-01-01&limit=25&page=2&paymentStatus=overdue&project_id=PRJ-4&purchaseOrderId=PO-9&search=acme&supplierId=SUP-1&toDate=2026-06-30",
		},
		{
			name:    "project id all is omitted",
			filters: Filters{ProjectID: "all"},
			want:    "",
		},
		{
			name:    "zero page and limit omitted",
			filters: Filters{Page: 0, Limit: 0, PaymentStatus: "unpaid"},
			want:    "paymentStatus=unpaid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filters.Query().Encode(); got != tt.want {
				t.Errorf("Query() = %q, want %q", got, tt.want)
			}
		})
	}
}
