package billing

import (
	"github.com/shopspring/decimal"

	"procure/pkg/models"
)

// SuggestedInvoiceAmount computes the prefill for the create form: the
// sum of line totals over the purchase order's items, or the order's
// stored total amount when it has no items.
func SuggestedInvoiceAmount(order models.PurchaseOrder) decimal.Decimal {
	if len(order.Items) == 0 {
		return order.TotalAmount
	}
	total := decimal.Zero
	for _, item := range order.Items {
		total = total.Add(item.ItemTotal())
	}
	return total
}

// FormatAmount renders an amount the way the form displays it, to
// three decimal places.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(3)
}
