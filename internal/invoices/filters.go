package invoices

import (
	"net/url"
	"strconv"
)

// Filters enumerates the query parameters accepted by the invoice
// listing endpoint. Zero values are omitted from the query string;
// ProjectID is additionally omitted when set to "all".
type Filters struct {
	Search          string
	SupplierID      string
	PurchaseOrderID string
	PaymentStatus   string
	BillStatus      string
	BillType        string
	FromDate        string
	ToDate          string
	Page            int
	Limit           int
	ProjectID       string
}

// Query encodes the filter set as URL query parameters.
func (f Filters) Query() url.Values {
	q := url.Values{}
	setIfPresent(q, "search", f.Search)
	setIfPresent(q, "supplierId", f.SupplierID)
	setIfPresent(q, "purchaseOrderId", f.PurchaseOrderID)
	setIfPresent(q, "paymentStatus", f.PaymentStatus)
	setIfPresent(q, "billStatus", f.BillStatus)
	setIfPresent(q, "billType", f.BillType)
	setIfPresent(q, "fromDate", f.FromDate)
	setIfPresent(q, "toDate", f.ToDate)
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.ProjectID != "" && f.ProjectID != "all" {
		q.Set("project_id", f.ProjectID)
	}
	return q
}

func setIfPresent(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
