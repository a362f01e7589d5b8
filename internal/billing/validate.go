package billing

import (
	"strings"

	"github.com/shopspring/decimal"

	"procure/pkg/models"
)

// Inline validation messages shown in the workspace banner. Validation
// failures abort submission before any network call.
const (
	msgInvoiceNumberRequired = "Invoice number is required"
	msgAmountRequired        = "Invoice amount must be greater than zero"
	msgNoOrdersSelected      = "Select at least one purchase order for the vendor bill"
	msgMixedSuppliers        = "All selected purchase orders must belong to the same supplier."
	msgPaymentAmountRequired = "Payment amount must be greater than zero"
)

// validateCreate checks the create form and returns the inline error
// message, or "" when the form may be submitted.
func validateCreate(form CreateForm) string {
	if strings.TrimSpace(form.InvoiceNumber) == "" {
		return msgInvoiceNumberRequired
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(form.Amount))
	if err != nil || !amount.IsPositive() {
		return msgAmountRequired
	}
	if form.BillType == models.BillTypeVendor {
		selected := form.selectedOrderDetails()
		if len(selected) == 0 {
			return msgNoOrdersSelected
		}
		if !singleSupplier(selected) {
			return msgMixedSuppliers
		}
	}
	return ""
}

// validatePayment checks the payment form. The balance-due cap is a
// form affordance only (see Workspace.MaxPayment); it is not
// re-validated here.
func validatePayment(form PaymentForm) string {
	amount, err := decimal.NewFromString(strings.TrimSpace(form.Amount))
	if err != nil || !amount.IsPositive() {
		return msgPaymentAmountRequired
	}
	return ""
}

// singleSupplier reports whether every selected purchase order belongs
// to one supplier.
func singleSupplier(orders []models.PurchaseOrder) bool {
	supplier := ""
	for _, order := range orders {
		if supplier == "" {
			supplier = order.SupplierID
			continue
		}
		if order.SupplierID != supplier {
			return false
		}
	}
	return true
}

// selectedOrderDetails resolves the selected ids against the fetched
// unbilled orders, dropping ids that no longer resolve.
func (f CreateForm) selectedOrderDetails() []models.PurchaseOrder {
	byID := make(map[string]models.PurchaseOrder, len(f.UnbilledOrders))
	for _, order := range f.UnbilledOrders {
		byID[order.ID] = order
	}
	selected := make([]models.PurchaseOrder, 0, len(f.SelectedOrders))
	for _, id := range f.SelectedOrders {
		if order, found := byID[id]; found {
			selected = append(selected, order)
		}
	}
	return selected
}
