package billing

import "procure/pkg/models"

// Mode is the workspace's current screen, a sealed union over the four
// states the invoice workflow can be in. Exactly one mode value exists
// at a time and each carries only the data that state needs, so a
// payment buffer cannot coexist with a half-filled create form.
type Mode interface {
	isMode()
}

// ListMode shows the invoice list for the purchase order. It is the
// initial mode and the one every flow returns to.
type ListMode struct{}

// CreateMode holds the new-invoice form buffer.
type CreateMode struct {
	Form CreateForm
}

// ViewMode shows one invoice's detail, including its attachment slot.
type ViewMode struct {
	Invoice models.PurchaseInvoice
}

// PaymentMode holds the payment form for one invoice.
type PaymentMode struct {
	Invoice models.PurchaseInvoice
	Form    PaymentForm
}

func (ListMode) isMode()    {}
func (CreateMode) isMode()  {}
func (ViewMode) isMode()    {}
func (PaymentMode) isMode() {}

// CreateForm is the new-invoice form buffer. Amount is kept as the
// user-visible string (prefilled to three decimal places) until
// submission.
type CreateForm struct {
	InvoiceNumber    string
	InvoiceDate      string
	DueDate          string
	Amount           string
	PaymentTermsDays int
	Notes            string

	// BillType selects the company/vendor branch of the form.
	BillType string

	// Vendor branch only: the unbilled purchase orders offered for
	// selection, and the ids the user has picked.
	UnbilledOrders []models.PurchaseOrder
	SelectedOrders []string
}

// PaymentForm is the record-payment form buffer.
type PaymentForm struct {
	Amount      string
	PaymentDate string
	Method      string
	Reference   string
	Notes       string
}
