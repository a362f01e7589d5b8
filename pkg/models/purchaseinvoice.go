package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment status values as stored by the backend.
const (
	PaymentStatusUnpaid  = "unpaid"
	PaymentStatusPartial = "partial"
	PaymentStatusPaid    = "paid"
	PaymentStatusOverdue = "overdue"
)

// Bill types. A company bill covers exactly one purchase order; a vendor
// bill aggregates several purchase orders (or company bills) from a
// single supplier.
const (
	BillTypeCompany = "company"
	BillTypeVendor  = "vendor"
)

// Company bill statuses.
const (
	BillStatusDraft = "draft"
	BillStatusSent  = "sent"
)

// PurchaseInvoice is the transport shape of an invoice as returned by
// the purchase-invoices endpoints. BalanceDue is authoritative on the
// server (invoice_amount - paid_amount); clients read it, never
// recompute it for persistence.
type PurchaseInvoice struct {
	ID               string          `json:"id"`
	InvoiceNumber    string          `json:"invoice_number"`
	InvoiceDate      *time.Time      `json:"invoice_date,omitempty"`
	DueDate          *time.Time      `json:"due_date,omitempty"`
	InvoiceAmount    decimal.Decimal `json:"invoice_amount"`
	PaidAmount       decimal.Decimal `json:"paid_amount"`
	BalanceDue       decimal.Decimal `json:"balance_due"`
	PaymentStatus    string          `json:"payment_status"`
	PaymentTermsDays int             `json:"payment_terms_days,omitempty"`
	Notes            string          `json:"notes,omitempty"`

	// Attachment is the stored document path, empty when no document
	// has been uploaded to the invoice's single attachment slot.
	Attachment string `json:"attachment,omitempty"`

	BillType   string `json:"billType"`
	BillStatus string `json:"bill_status,omitempty"`

	PurchaseOrderID string `json:"purchaseOrderId,omitempty"`
	SupplierID      string `json:"supplierId,omitempty"`
	SupplierName    string `json:"supplierName,omitempty"`

	// Vendor bills only: the purchase orders / company bills this
	// invoice covers.
	CoversPurchaseOrders []string `json:"coversPurchaseOrders,omitempty"`
	CoversCompanyBills   []string `json:"coversCompanyBills,omitempty"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// NewPurchaseInvoice is the create/update payload.
type NewPurchaseInvoice struct {
	InvoiceNumber    string          `json:"invoice_number"`
	InvoiceDate      string          `json:"invoice_date,omitempty"`
	DueDate          string          `json:"due_date,omitempty"`
	InvoiceAmount    decimal.Decimal `json:"invoice_amount"`
	PaymentTermsDays int             `json:"payment_terms_days,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	BillType         string          `json:"billType"`
	BillStatus       string          `json:"bill_status,omitempty"`
	PurchaseOrderID  string          `json:"purchaseOrderId,omitempty"`
	SupplierID       string          `json:"supplierId,omitempty"`

	CoversPurchaseOrders []string `json:"coversPurchaseOrders,omitempty"`
	CoversCompanyBills   []string `json:"coversCompanyBills,omitempty"`
}
