// Package billing drives the invoice workflow for a single purchase
// order: listing its invoices, creating company or vendor bills,
// recording payments, and managing the per-invoice attachment slot.
//
// The workflow is an explicit state machine (see Mode). All backend
// calls run through the invoices service and their failures surface as
// a banner message on the workspace; nothing is retried and no error
// escapes to the caller.
package billing

import (
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"procure/internal/invoices"
	"procure/internal/logger"
	"procure/pkg/models"
)

// InvoiceAPI is the slice of the invoice service the workspace needs.
// *invoices.Service satisfies it.
type InvoiceAPI interface {
	GetByPurchaseOrder(ctx context.Context, purchaseOrderID string) invoices.Result[[]models.PurchaseInvoice]
	GetByID(ctx context.Context, id string) invoices.Result[*models.PurchaseInvoice]
	GetUnbilledPurchaseOrders(ctx context.Context, supplierID string) invoices.Result[[]models.PurchaseOrder]
	Create(ctx context.Context, invoice models.NewPurchaseInvoice) invoices.Result[*models.PurchaseInvoice]
	CreateVendorBill(ctx context.Context, invoice models.NewPurchaseInvoice) invoices.Result[*models.PurchaseInvoice]
	RecordPayment(ctx context.Context, id string, payment models.Payment) invoices.Result[*models.PurchaseInvoice]
	UploadAttachment(ctx context.Context, id, filename string, file io.Reader) invoices.Result[*models.PurchaseInvoice]
	DeleteAttachment(ctx context.Context, id string) invoices.Result[*models.PurchaseInvoice]
}

// Workspace is the stateful invoice workflow for one purchase order.
// It is not safe for concurrent use; the loading flag is a reentrancy
// guard rendered as a disabled state, not a lock.
type Workspace struct {
	api   InvoiceAPI
	order models.PurchaseOrder

	mode     Mode
	invoices []models.PurchaseInvoice
	message  string
	loading  bool

	onSuccess func()
	log       zerolog.Logger
}

// WorkspaceOption configures a Workspace.
type WorkspaceOption func(*Workspace)

// WithSuccessCallback registers a callback invoked after every
// successful mutating operation.
func WithSuccessCallback(fn func()) WorkspaceOption {
	return func(w *Workspace) { w.onSuccess = fn }
}

// NewWorkspace creates a workspace in list mode for the given purchase
// order. Call Refresh to populate the invoice list.
func NewWorkspace(api InvoiceAPI, order models.PurchaseOrder, opts ...WorkspaceOption) *Workspace {
	w := &Workspace{
		api:   api,
		order: order,
		mode:  ListMode{},
		log:   logger.WithComponent("billing"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Mode returns the current mode. Callers switch over the union.
func (w *Workspace) Mode() Mode { return w.mode }

// Invoices returns the cached invoice list from the last fetch.
func (w *Workspace) Invoices() []models.PurchaseInvoice { return w.invoices }

// Message returns the current banner message, empty when none.
func (w *Workspace) Message() string { return w.message }

// Loading reports whether an operation is in flight.
func (w *Workspace) Loading() bool { return w.loading }

// Order returns the purchase order this workspace is bound to.
func (w *Workspace) Order() models.PurchaseOrder { return w.order }

// Refresh re-fetches the invoice list for the purchase order.
func (w *Workspace) Refresh(ctx context.Context) {
	if w.loading {
		return
	}
	w.loading = true
	defer func() { w.loading = false }()

	result := w.api.GetByPurchaseOrder(ctx, w.order.ID)
	if !result.Success {
		w.message = result.Error
		return
	}
	w.invoices = result.Data
	w.message = ""
}

// StartCreate opens the create form, prefilling the invoice amount
// from the order's line items (or its stored total when it has none).
func (w *Workspace) StartCreate() {
	form := CreateForm{
		BillType:         models.BillTypeCompany,
		Amount:           FormatAmount(SuggestedInvoiceAmount(w.order)),
		PaymentTermsDays: 30,
	}
	w.mode = CreateMode{Form: form}
	w.message = ""
}

// SetBillType switches the create form between the company and vendor
// branches. Entering the vendor branch fetches the supplier's unbilled
// purchase orders; leaving it clears the selection.
func (w *Workspace) SetBillType(ctx context.Context, billType string) {
	create, active := w.mode.(CreateMode)
	if !active || create.Form.BillType == billType {
		return
	}

	create.Form.BillType = billType
	create.Form.SelectedOrders = nil
	create.Form.UnbilledOrders = nil

	if billType == models.BillTypeVendor {
		result := w.api.GetUnbilledPurchaseOrders(ctx, w.order.SupplierID)
		if !result.Success {
			w.message = result.Error
		} else {
			create.Form.UnbilledOrders = result.Data
		}
	}
	w.mode = create
}

// ToggleOrder adds or removes a purchase order from the vendor-bill
// selection.
func (w *Workspace) ToggleOrder(orderID string) {
	create, active := w.mode.(CreateMode)
	if !active {
		return
	}
	for i, id := range create.Form.SelectedOrders {
		if id == orderID {
			create.Form.SelectedOrders = append(create.Form.SelectedOrders[:i], create.Form.SelectedOrders[i+1:]...)
			w.mode = create
			return
		}
	}
	create.Form.SelectedOrders = append(create.Form.SelectedOrders, orderID)
	w.mode = create
}

// UpdateCreateForm replaces the create form buffer with edited values,
// preserving the fetched unbilled orders.
func (w *Workspace) UpdateCreateForm(form CreateForm) {
	create, active := w.mode.(CreateMode)
	if !active {
		return
	}
	form.UnbilledOrders = create.Form.UnbilledOrders
	w.mode = CreateMode{Form: form}
}

// SubmitCreate validates the create form and submits it. Validation
// failures set the banner message and make no network call.
func (w *Workspace) SubmitCreate(ctx context.Context) bool {
	create, active := w.mode.(CreateMode)
	if !active || w.loading {
		return false
	}
	form := create.Form

	if msg := validateCreate(form); msg != "" {
		w.message = msg
		return false
	}

	w.loading = true
	defer func() { w.loading = false }()

	amount, _ := decimal.NewFromString(strings.TrimSpace(form.Amount))
	payload := models.NewPurchaseInvoice{
		InvoiceNumber:    strings.TrimSpace(form.InvoiceNumber),
		InvoiceDate:      form.InvoiceDate,
		DueDate:          form.DueDate,
		InvoiceAmount:    amount,
		PaymentTermsDays: form.PaymentTermsDays,
		Notes:            form.Notes,
	}

	var result invoices.Result[*models.PurchaseInvoice]
	if form.BillType == models.BillTypeVendor {
		selected := form.selectedOrderDetails()
		payload.CoversPurchaseOrders = form.SelectedOrders
		payload.SupplierID = selected[0].SupplierID
		result = w.api.CreateVendorBill(ctx, payload)
	} else {
		payload.BillType = models.BillTypeCompany
		payload.BillStatus = models.BillStatusDraft
		payload.PurchaseOrderID = w.order.ID
		payload.SupplierID = w.order.SupplierID
		result = w.api.Create(ctx, payload)
	}

	if !result.Success {
		w.message = result.Error
		return false
	}
	w.afterMutation(ctx)
	return true
}

// ShowInvoice opens the detail view for one invoice.
func (w *Workspace) ShowInvoice(ctx context.Context, id string) {
	if w.loading {
		return
	}
	w.loading = true
	defer func() { w.loading = false }()

	result := w.api.GetByID(ctx, id)
	if !result.Success {
		w.message = result.Error
		return
	}
	w.mode = ViewMode{Invoice: *result.Data}
	w.message = ""
}

// StartPayment opens the payment form for the given invoice.
func (w *Workspace) StartPayment(invoice models.PurchaseInvoice) {
	w.mode = PaymentMode{
		Invoice: invoice,
		Form:    PaymentForm{Method: models.PaymentMethodBankTransfer},
	}
	w.message = ""
}

// UpdatePaymentForm replaces the payment form buffer.
func (w *Workspace) UpdatePaymentForm(form PaymentForm) {
	payment, active := w.mode.(PaymentMode)
	if !active {
		return
	}
	payment.Form = form
	w.mode = payment
}

// MaxPayment returns the balance due of the invoice being paid, used
// to cap the amount input. This is a form affordance; the submit path
// only re-checks that the amount is positive.
func (w *Workspace) MaxPayment() decimal.Decimal {
	if payment, active := w.mode.(PaymentMode); active {
		return payment.Invoice.BalanceDue
	}
	return decimal.Zero
}

// SubmitPayment validates the payment form and records the payment.
func (w *Workspace) SubmitPayment(ctx context.Context) bool {
	payment, active := w.mode.(PaymentMode)
	if !active || w.loading {
		return false
	}

	if msg := validatePayment(payment.Form); msg != "" {
		w.message = msg
		return false
	}

	w.loading = true
	defer func() { w.loading = false }()

	amount, _ := decimal.NewFromString(strings.TrimSpace(payment.Form.Amount))
	result := w.api.RecordPayment(ctx, payment.Invoice.ID, models.Payment{
		Amount:        amount,
		PaymentDate:   payment.Form.PaymentDate,
		PaymentMethod: payment.Form.Method,
		Reference:     payment.Form.Reference,
		Notes:         payment.Form.Notes,
	})
	if !result.Success {
		w.message = result.Error
		return false
	}
	w.afterMutation(ctx)
	return true
}

// UploadAttachment stores a document in the viewed invoice's
// attachment slot, then re-fetches both the list and the detail so the
// new path is reflected everywhere.
func (w *Workspace) UploadAttachment(ctx context.Context, filename string, file io.Reader) bool {
	view, active := w.mode.(ViewMode)
	if !active || w.loading {
		return false
	}
	w.loading = true

	result := w.api.UploadAttachment(ctx, view.Invoice.ID, filename, file)
	w.loading = false
	if !result.Success {
		w.message = result.Error
		return false
	}
	w.refreshView(ctx, view.Invoice.ID)
	return true
}

// RemoveAttachment clears the viewed invoice's attachment slot.
func (w *Workspace) RemoveAttachment(ctx context.Context) bool {
	view, active := w.mode.(ViewMode)
	if !active || w.loading {
		return false
	}
	w.loading = true

	result := w.api.DeleteAttachment(ctx, view.Invoice.ID)
	w.loading = false
	if !result.Success {
		w.message = result.Error
		return false
	}
	w.refreshView(ctx, view.Invoice.ID)
	return true
}

// Back returns to list mode without clearing the invoice cache.
func (w *Workspace) Back() {
	w.mode = ListMode{}
	w.message = ""
}

// Close resets the workspace: back to list mode, form buffers and
// banner cleared.
func (w *Workspace) Close() {
	w.mode = ListMode{}
	w.message = ""
}

// afterMutation is the shared success path: re-fetch the list, return
// to list mode, and notify the caller.
func (w *Workspace) afterMutation(ctx context.Context) {
	result := w.api.GetByPurchaseOrder(ctx, w.order.ID)
	if result.Success {
		w.invoices = result.Data
	}
	w.mode = ListMode{}
	w.message = ""
	if w.onSuccess != nil {
		w.onSuccess()
	}
}

// refreshView re-fetches the list and the viewed invoice after an
// attachment change.
func (w *Workspace) refreshView(ctx context.Context, id string) {
	if list := w.api.GetByPurchaseOrder(ctx, w.order.ID); list.Success {
		w.invoices = list.Data
	}
	detail := w.api.GetByID(ctx, id)
	if !detail.Success {
		w.message = detail.Error
		return
	}
	w.mode = ViewMode{Invoice: *detail.Data}
	w.message = ""
	if w.onSuccess != nil {
		w.onSuccess()
	}
}
