package billing_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"procure/internal/billing"
	"procure/internal/invoices"
	"procure/pkg/models"
)

// fakeAPI records every call so tests can assert which network
// operations (if any) a workspace action triggered.
type fakeAPI struct {
	calls []string

	invoices       []models.PurchaseInvoice
	unbilledOrders []models.PurchaseOrder
	detail         *models.PurchaseInvoice
	failWith       string
}

func listResult(data []models.PurchaseInvoice, errMsg string) invoices.Result[[]models.PurchaseInvoice] {
	if errMsg != "" {
		return invoices.Result[[]models.PurchaseInvoice]{Success: false, Error: errMsg, Data: []models.PurchaseInvoice{}}
	}
	return invoices.Result[[]models.PurchaseInvoice]{Success: true, Data: data}
}

func oneResult(data *models.PurchaseInvoice, errMsg string) invoices.Result[*models.PurchaseInvoice] {
	if errMsg != "" {
		return invoices.Result[*models.PurchaseInvoice]{Success: false, Error: errMsg}
	}
	return invoices.Result[*models.PurchaseInvoice]{Success: true, Data: data}
}

func (f *fakeAPI) GetByPurchaseOrder(_ context.Context, id string) invoices.Result[[]models.PurchaseInvoice] {
	f.calls = append(f.calls, "GetByPurchaseOrder:"+id)
	return listResult(f.invoices, f.failWith)
}

func (f *fakeAPI) GetByID(_ context.Context, id string) invoices.Result[*models.PurchaseInvoice] {
	f.calls = append(f.calls, "GetByID:"+id)
	return oneResult(f.detail, f.failWith)
}

func (f *fakeAPI) GetUnbilledPurchaseOrders(_ context.Context, supplierID string) invoices.Result[[]models.PurchaseOrder] {
	f.calls = append(f.calls, "GetUnbilledPurchaseOrders:"+supplierID)
	if f.failWith != "" {
		return invoices.Result[[]models.PurchaseOrder]{Success: false, Error: f.failWith}
	}
	return invoices.Result[[]models.PurchaseOrder]{Success: true, Data: f.unbilledOrders}
}

func (f *fakeAPI) Create(_ context.Context, inv models.NewPurchaseInvoice) invoices.Result[*models.PurchaseInvoice] {
	f.calls = append(f.calls, "Create:"+inv.InvoiceNumber)
	return oneResult(&models.PurchaseInvoice{ID: "NEW", InvoiceNumber: inv.InvoiceNumber}, f.failWith)
}

func (f *fakeAPI) CreateVendorBill(_ context.Context, inv models.NewPurchaseInvoice) invoices.Result[*models.PurchaseInvoice] {
	f.calls = append(f.calls, "CreateVendorBill:"+inv.SupplierID)
	return oneResult(&models.PurchaseInvoice{ID: "NEW", BillType: models.BillTypeVendor}, f.failWith)
}

func (f *fakeAPI) RecordPayment(_ context.Context, id string, _ models.Payment) invoices.Result[*models.PurchaseInvoice] {
	f.calls = append(f.calls, "RecordPayment:"+id)
	return oneResult(f.detail, f.failWith)
}

func (f *fakeAPI) UploadAttachment(_ context.Context, id, filename string, _ io.Reader) invoices.Result[*models.PurchaseInvoice] {
	f.calls = append(f.calls, "UploadAttachment:"+id+":"+filename)
	return oneResult(f.detail, f.failWith)
}

func (f *fakeAPI) DeleteAttachment(_ context.Context, id string) invoices.Result[*models.PurchaseInvoice] {
	f.calls = append(f.calls, "DeleteAttachment:"+id)
	return oneResult(f.detail, f.failWith)
}

func (f *fakeAPI) mutatingCalls() []string {
	var muts []string
	for _, call := range f.calls {
		if strings.HasPrefix(call, "Create") || strings.HasPrefix(call, "RecordPayment") ||
			strings.HasPrefix(call, "UploadAttachment") || strings.HasPrefix(call, "DeleteAttachment") {
			muts = append(muts, call)
		}
	}
	return muts
}

var testOrder = models.PurchaseOrder{
	ID:          "PO-1",
	OrderNumber: "PO-2026-001",
	SupplierID:  "SUP-1",
	TotalAmount: dec("500"),
}

func TestWorkspaceStartsInListMode(t *testing.T) {
	w := billing.NewWorkspace(&fakeAPI{}, testOrder)
	if _, isList := w.Mode().(billing.ListMode); !isList {
		t.Fatalf("new workspace mode = %T, want ListMode", w.Mode())
	}
}

func TestStartCreatePrefillsAmount(t *testing.T) {
	w := billing.NewWorkspace(&fakeAPI{}, testOrder)
	w.StartCreate()

	create, isCreate := w.Mode().(billing.CreateMode)
	if !isCreate {
		t.Fatalf("mode after StartCreate = %T, want CreateMode", w.Mode())
	}
	if create.Form.Amount != "500.000" {
		t.Errorf("prefilled amount = %q, want 500.000", create.Form.Amount)
	}
	if create.Form.BillType != models.BillTypeCompany {
		t.Errorf("default bill type = %q, want company", create.Form.BillType)
	}
}

func TestSubmitCreateValidation(t *testing.T) {
	tests := []struct {
		name        string
		form        billing.CreateForm
		wantMessage string
	}{
		{
			name:        "blank invoice number",
			form:        billing.CreateForm{InvoiceNumber: "   ", Amount: "10"},
			wantMessage: "Invoice number is required",
		},
		{
			name:        "zero amount",
			form:        billing.CreateForm{InvoiceNumber: "INV-1", Amount: "0"},
			wantMessage: "Invoice amount must be greater than zero",
		},
		{
			name:        "negative amount",
			form:        billing.CreateForm{InvoiceNumber: "INV-1", Amount: "-5"},
			wantMessage: "Invoice amount must be greater than zero",
		},
		{
			name:        "unparseable amount",
			form:        billing.CreateForm{InvoiceNumber: "INV-1", Amount: "abc"},
			wantMessage: "Invoice amount must be greater than zero",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAPI{}
			w := billing.NewWorkspace(fake, testOrder)
			w.StartCreate()
			w.UpdateCreateForm(tt.form)

			if w.SubmitCreate(context.Background()) {
				t.Fatal("SubmitCreate succeeded, want validation failure")
			}
			if w.Message() != tt.wantMessage {
				t.Errorf("message = %q, want %q", w.Message(), tt.wantMessage)
			}
			if len(fake.mutatingCalls()) != 0 {
				t.Errorf("network calls made despite validation failure: %v", fake.calls)
			}
		})
	}
}

func TestVendorBillRejectsEmptySelection(t *testing.T) {
	fake := &fakeAPI{unbilledOrders: []models.PurchaseOrder{{ID: "PO-2", SupplierID: "SUP-1"}}}
	w := billing.NewWorkspace(fake, testOrder)
	w.StartCreate()
	w.SetBillType(context.Background(), models.BillTypeVendor)

	create, _ := w.Mode().(billing.CreateMode)
	form := create.Form
	form.InvoiceNumber = "VB-1"
	form.Amount = "100"
	w.UpdateCreateForm(form)

	if w.SubmitCreate(context.Background()) {
		t.Fatal("SubmitCreate succeeded with no purchase orders selected")
	}
	if len(fake.mutatingCalls()) != 0 {
		t.Errorf("network calls made despite validation failure: %v", fake.calls)
	}
}

func TestVendorBillRejectsMixedSuppliers(t *testing.T) {
	fake := &fakeAPI{unbilledOrders: []models.PurchaseOrder{
		{ID: "PO-2", SupplierID: "SUP-1"},
		{ID: "PO-3", SupplierID: "SUP-2"},
	}}
	w := billing.NewWorkspace(fake, testOrder)
	w.StartCreate()
	w.SetBillType(context.Background(), models.BillTypeVendor)
	w.ToggleOrder("PO-2")
	w.ToggleOrder("PO-3")

	create, _ := w.Mode().(billing.CreateMode)
	form := create.Form
	form.InvoiceNumber = "VB-1"
	form.Amount = "100"
	w.UpdateCreateForm(form)

	if w.SubmitCreate(context.Background()) {
		t.Fatal("SubmitCreate succeeded with purchase orders from two suppliers")
	}
	if w.Message() != "All selected purchase orders must belong to the same supplier." {
		t.Errorf("message = %q", w.Message())
	}
	if len(fake.mutatingCalls()) != 0 {
		t.Errorf("network calls made despite validation failure: %v", fake.calls)
	}
}

func TestVendorBillSubmitsSingleSupplier(t *testing.T) {
	fake := &fakeAPI{unbilledOrders: []models.PurchaseOrder{
		{ID: "PO-2", SupplierID: "SUP-1"},
		{ID: "PO-3", SupplierID: "SUP-1"},
	}}
	w := billing.NewWorkspace(fake, testOrder)
	w.StartCreate()
	w.SetBillType(context.Background(), models.BillTypeVendor)
	w.ToggleOrder("PO-2")
	w.ToggleOrder("PO-3")

	create, _ := w.Mode().(billing.CreateMode)
	form := create.Form
	form.InvoiceNumber = "VB-1"
	form.Amount = "100"
	w.UpdateCreateForm(form)

	if !w.SubmitCreate(context.Background()) {
		t.Fatalf("SubmitCreate failed: %s", w.Message())
	}
	if _, isList := w.Mode().(billing.ListMode); !isList {
		t.Errorf("mode after successful submit = %T, want ListMode", w.Mode())
	}
	found := false
	for _, call := range fake.calls {
		if call == "CreateVendorBill:SUP-1" {
			found = true
		}
	}
	if !found {
		t.Errorf("CreateVendorBill not called with supplier SUP-1: %v", fake.calls)
	}
}

func TestToggleOrderDeselects(t *testing.T) {
	fake := &fakeAPI{unbilledOrders: []models.PurchaseOrder{{ID: "PO-2", SupplierID: "SUP-1"}}}
	w := billing.NewWorkspace(fake, testOrder)
	w.StartCreate()
	w.SetBillType(context.Background(), models.BillTypeVendor)

	w.ToggleOrder("PO-2")
	w.ToggleOrder("PO-2")

	create, _ := w.Mode().(billing.CreateMode)
	if len(create.Form.SelectedOrders) != 0 {
		t.Errorf("selected orders after double toggle = %v, want none", create.Form.SelectedOrders)
	}
}

func TestSubmitCreateSuccessInvokesCallback(t *testing.T) {
	fake := &fakeAPI{invoices: []models.PurchaseInvoice{{ID: "INV-1"}}}
	notified := false
	w := billing.NewWorkspace(fake, testOrder, billing.WithSuccessCallback(func() { notified = true }))
	w.StartCreate()

	create, _ := w.Mode().(billing.CreateMode)
	form := create.Form
	form.InvoiceNumber = "INV-9"
	w.UpdateCreateForm(form)

	if !w.SubmitCreate(context.Background()) {
		t.Fatalf("SubmitCreate failed: %s", w.Message())
	}
	if !notified {
		t.Error("success callback not invoked")
	}
	if len(w.Invoices()) != 1 {
		t.Errorf("invoice cache not refreshed, have %d entries", len(w.Invoices()))
	}
}

func TestSubmitPaymentValidation(t *testing.T) {
	fake := &fakeAPI{}
	w := billing.NewWorkspace(fake, testOrder)
	w.StartPayment(models.PurchaseInvoice{ID: "INV-1", BalanceDue: dec("50")})

	w.UpdatePaymentForm(billing.PaymentForm{Amount: "0"})
	if w.SubmitPayment(context.Background()) {
		t.Fatal("SubmitPayment succeeded with zero amount")
	}
	if len(fake.mutatingCalls()) != 0 {
		t.Errorf("network calls made despite validation failure: %v", fake.calls)
	}
	if w.MaxPayment().String() != "50" {
		t.Errorf("MaxPayment = %s, want 50", w.MaxPayment())
	}
}

func TestSubmitPaymentSuccess(t *testing.T) {
	fake := &fakeAPI{detail: &models.PurchaseInvoice{ID: "INV-1"}}
	w := billing.NewWorkspace(fake, testOrder)
	w.StartPayment(models.PurchaseInvoice{ID: "INV-1", BalanceDue: dec("50")})
	w.UpdatePaymentForm(billing.PaymentForm{Amount: "25.5", Method: models.PaymentMethodCash})

	if !w.SubmitPayment(context.Background()) {
		t.Fatalf("SubmitPayment failed: %s", w.Message())
	}
	if _, isList := w.Mode().(billing.ListMode); !isList {
		t.Errorf("mode after payment = %T, want ListMode", w.Mode())
	}
}

func TestServerErrorSurfacesInBanner(t *testing.T) {
	fake := &fakeAPI{failWith: "supplier account is frozen"}
	w := billing.NewWorkspace(fake, testOrder)
	w.StartCreate()

	create, _ := w.Mode().(billing.CreateMode)
	form := create.Form
	form.InvoiceNumber = "INV-9"
	w.UpdateCreateForm(form)

	if w.SubmitCreate(context.Background()) {
		t.Fatal("SubmitCreate succeeded despite backend failure")
	}
	if w.Message() != "supplier account is frozen" {
		t.Errorf("banner = %q, want the server error", w.Message())
	}
	if _, isCreate := w.Mode().(billing.CreateMode); !isCreate {
		t.Errorf("mode after failed submit = %T, want CreateMode preserved", w.Mode())
	}
}

func TestAttachmentUploadRefreshesListAndDetail(t *testing.T) {
	detail := &models.PurchaseInvoice{ID: "INV-1", Attachment: "docs/inv-1.pdf"}
	fake := &fakeAPI{detail: detail, invoices: []models.PurchaseInvoice{*detail}}
	w := billing.NewWorkspace(fake, testOrder)

	w.ShowInvoice(context.Background(), "INV-1")
	if _, isView := w.Mode().(billing.ViewMode); !isView {
		t.Fatalf("mode after ShowInvoice = %T, want ViewMode", w.Mode())
	}

	if !w.UploadAttachment(context.Background(), "inv-1.pdf", strings.NewReader("%PDF")) {
		t.Fatalf("UploadAttachment failed: %s", w.Message())
	}

	view, isView := w.Mode().(billing.ViewMode)
	if !isView {
		t.Fatalf("mode after upload = %T, want ViewMode", w.Mode())
	}
	if view.Invoice.Attachment != "docs/inv-1.pdf" {
		t.Errorf("viewed attachment = %q, want refreshed path", view.Invoice.Attachment)
	}

	var sawList, sawDetail bool
	for _, call := range fake.calls {
		if strings.HasPrefix(call, "UploadAttachment") {
			sawList, sawDetail = false, false // only count re-fetches after the upload
			continue
		}
		if strings.HasPrefix(call, "GetByPurchaseOrder") {
			sawList = true
		}
		if strings.HasPrefix(call, "GetByID") {
			sawDetail = true
		}
	}
	if !sawList || !sawDetail {
		t.Errorf("upload did not re-fetch list and detail: %v", fake.calls)
	}
}

func TestCloseResetsToListMode(t *testing.T) {
	w := billing.NewWorkspace(&fakeAPI{}, testOrder)
	w.StartCreate()
	w.Close()

	if _, isList := w.Mode().(billing.ListMode); !isList {
		t.Errorf("mode after Close = %T, want ListMode", w.Mode())
	}
	if w.Message() != "" {
		t.Errorf("message after Close = %q, want empty", w.Message())
	}
}
