// Package invoices is a stateless client for the purchase-invoice
// endpoints of the procurement backend.
//
// Every method maps 1:1 to a REST call and returns a Result: callers
// receive the failure variant with a display-ready message instead of
// a Go error, matching the backend's {success, data, error} envelope
// convention end to end.
package invoices

import (
	"context"
	"io"
	"net/url"

	"github.com/rs/zerolog"

	"procure/internal/api"
	"procure/internal/logger"
	"procure/pkg/models"
)

const (
	basePath           = "/purchase-invoices"
	purchaseOrdersPath = "/purchase-orders"
)

// Service issues purchase-invoice operations against the backend.
type Service struct {
	client *api.Client
	log    zerolog.Logger
}

// NewService creates an invoice service on top of the given transport.
func NewService(client *api.Client) *Service {
	return &Service{
		client: client,
		log:    logger.WithComponent("invoices"),
	}
}

// GetAll lists invoices matching the filter set.
func (s *Service) GetAll(ctx context.Context, filters Filters) Result[[]models.PurchaseInvoice] {
	var data []models.PurchaseInvoice
	if err := s.client.Get(ctx, basePath, filters.Query(), &data); err != nil {
		return s.failList(err, "list invoices")
	}
	if data == nil {
		data = []models.PurchaseInvoice{}
	}
	return ok(data)
}

// GetByID fetches a single invoice.
func (s *Service) GetByID(ctx context.Context, id string) Result[*models.PurchaseInvoice] {
	var data models.PurchaseInvoice
	if err := s.client.Get(ctx, basePath+"/"+url.PathEscape(id), nil, &data); err != nil {
		return s.failOne(err, "get invoice")
	}
	return ok(&data)
}

// GetByPurchaseOrder lists invoices issued against one purchase order.
func (s *Service) GetByPurchaseOrder(ctx context.Context, purchaseOrderID string) Result[[]models.PurchaseInvoice] {
	return s.GetAll(ctx, Filters{PurchaseOrderID: purchaseOrderID})
}

// GetByPaymentStatus lists invoices in the given payment status.
func (s *Service) GetByPaymentStatus(ctx context.Context, status string) Result[[]models.PurchaseInvoice] {
	return s.GetAll(ctx, Filters{PaymentStatus: status})
}

// GetUnpaid lists invoices with no recorded payment.
func (s *Service) GetUnpaid(ctx context.Context) Result[[]models.PurchaseInvoice] {
	return s.GetByPaymentStatus(ctx, models.PaymentStatusUnpaid)
}

// GetOverdue lists invoices past their due date.
func (s *Service) GetOverdue(ctx context.Context) Result[[]models.PurchaseInvoice] {
	return s.GetByPaymentStatus(ctx, models.PaymentStatusOverdue)
}

// GetCompanyBills lists company bills (one purchase order each).
func (s *Service) GetCompanyBills(ctx context.Context) Result[[]models.PurchaseInvoice] {
	return s.GetAll(ctx, Filters{BillType: models.BillTypeCompany})
}

// GetVendorBills lists vendor bills (multi purchase order).
func (s *Service) GetVendorBills(ctx context.Context) Result[[]models.PurchaseInvoice] {
	return s.GetAll(ctx, Filters{BillType: models.BillTypeVendor})
}

// GetDraftCompanyBills lists company bills still in draft.
func (s *Service) GetDraftCompanyBills(ctx context.Context) Result[[]models.PurchaseInvoice] {
	return s.GetAll(ctx, Filters{BillType: models.BillTypeCompany, BillStatus: models.BillStatusDraft})
}

// GetSentCompanyBills lists company bills already sent.
func (s *Service) GetSentCompanyBills(ctx context.Context) Result[[]models.PurchaseInvoice] {
	return s.GetAll(ctx, Filters{BillType: models.BillTypeCompany, BillStatus: models.BillStatusSent})
}

// GetUnlinkedCompanyBills lists company bills not yet covered by a
// vendor bill, optionally narrowed by supplier and bill status.
func (s *Service) GetUnlinkedCompanyBills(ctx context.Context, supplierID, status string) Result[[]models.PurchaseInvoice] {
	q := url.Values{}
	setIfPresent(q, "supplierId", supplierID)
	setIfPresent(q, "status", status)

	var data []models.PurchaseInvoice
	if err := s.client.Get(ctx, basePath+"/unlinked-company-bills", q, &data); err != nil {
		return s.failList(err, "list unlinked company bills")
	}
	if data == nil {
		data = []models.PurchaseInvoice{}
	}
	return ok(data)
}

// GetUnbilledPurchaseOrders lists purchase orders with no invoice yet
// issued against them, eligible for inclusion in a new vendor bill.
func (s *Service) GetUnbilledPurchaseOrders(ctx context.Context, supplierID string) Result[[]models.PurchaseOrder] {
	q := url.Values{}
	setIfPresent(q, "supplierId", supplierID)

	var data []models.PurchaseOrder
	if err := s.client.Get(ctx, purchaseOrdersPath+"/unbilled", q, &data); err != nil {
		s.log.Error().Err(err).Msg("Failed to list unbilled purchase orders")
		return fail[[]models.PurchaseOrder](err)
	}
	if data == nil {
		data = []models.PurchaseOrder{}
	}
	return ok(data)
}

// Create submits a new invoice.
func (s *Service) Create(ctx context.Context, invoice models.NewPurchaseInvoice) Result[*models.PurchaseInvoice] {
	var data models.PurchaseInvoice
	if err := s.client.Post(ctx, basePath, invoice, &data); err != nil {
		return s.failOne(err, "create invoice")
	}
	s.log.Info().
		Str("invoice_id", data.ID).
		Str("invoice_number", data.InvoiceNumber).
		Str("bill_type", data.BillType).
		Msg("Invoice created")
	return ok(&data)
}

// CreateVendorBill submits a vendor bill covering several purchase
// orders from one supplier. The bill type is forced to vendor.
func (s *Service) CreateVendorBill(ctx context.Context, invoice models.NewPurchaseInvoice) Result[*models.PurchaseInvoice] {
	invoice.BillType = models.BillTypeVendor
	return s.Create(ctx, invoice)
}

// Update replaces an invoice's editable fields.
func (s *Service) Update(ctx context.Context, id string, invoice models.NewPurchaseInvoice) Result[*models.PurchaseInvoice] {
	var data models.PurchaseInvoice
	if err := s.client.Put(ctx, basePath+"/"+url.PathEscape(id), invoice, &data); err != nil {
		return s.failOne(err, "update invoice")
	}
	return ok(&data)
}

// Delete removes an invoice.
func (s *Service) Delete(ctx context.Context, id string) Result[*models.PurchaseInvoice] {
	if err := s.client.Delete(ctx, basePath+"/"+url.PathEscape(id), nil); err != nil {
		return s.failOne(err, "delete invoice")
	}
	s.log.Info().Str("invoice_id", id).Msg("Invoice deleted")
	return ok[*models.PurchaseInvoice](nil)
}

// RecordPayment submits a payment against an invoice and returns the
// updated invoice.
func (s *Service) RecordPayment(ctx context.Context, id string, payment models.Payment) Result[*models.PurchaseInvoice] {
	var data models.PurchaseInvoice
	if err := s.client.Post(ctx, basePath+"/"+url.PathEscape(id)+"/payment", payment, &data); err != nil {
		return s.failOne(err, "record payment")
	}
	s.log.Info().
		Str("invoice_id", id).
		Str("amount", payment.Amount.String()).
		Str("method", payment.PaymentMethod).
		Msg("Payment recorded")
	return ok(&data)
}

// UploadAttachment stores a document in the invoice's single
// attachment slot.
func (s *Service) UploadAttachment(ctx context.Context, id, filename string, file io.Reader) Result[*models.PurchaseInvoice] {
	var data models.PurchaseInvoice
	err := s.client.PostMultipart(ctx, basePath+"/"+url.PathEscape(id)+"/attachment", "attachment", filename, file, &data)
	if err != nil {
		return s.failOne(err, "upload attachment")
	}
	s.log.Info().
		Str("invoice_id", id).
		Str("filename", filename).
		Msg("Attachment uploaded")
	return ok(&data)
}

// DeleteAttachment clears the invoice's attachment slot.
func (s *Service) DeleteAttachment(ctx context.Context, id string) Result[*models.PurchaseInvoice] {
	var data models.PurchaseInvoice
	if err := s.client.Delete(ctx, basePath+"/"+url.PathEscape(id)+"/attachment", &data); err != nil {
		return s.failOne(err, "delete attachment")
	}
	return ok(&data)
}

// UpdateCompanyBillStatus moves a company bill between draft and sent.
func (s *Service) UpdateCompanyBillStatus(ctx context.Context, id, status string) Result[*models.PurchaseInvoice] {
	body := map[string]string{"status": status}
	var data models.PurchaseInvoice
	if err := s.client.Put(ctx, basePath+"/"+url.PathEscape(id)+"/status", body, &data); err != nil {
		return s.failOne(err, "update bill status")
	}
	return ok(&data)
}

func (s *Service) failList(err error, action string) Result[[]models.PurchaseInvoice] {
	s.log.Error().Err(err).Str("action", action).Msg("Invoice request failed")
	r := fail[[]models.PurchaseInvoice](err)
	r.Data = []models.PurchaseInvoice{}
	return r
}

func (s *Service) failOne(err error, action string) Result[*models.PurchaseInvoice] {
	s.log.Error().Err(err).Str("action", action).Msg("Invoice request failed")
	return fail[*models.PurchaseInvoice](err)
}
