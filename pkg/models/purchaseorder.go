package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderItem is a single line on a purchase order.
// Amount fields use decimal zero as "not provided"; callers fall back
// through the alternatives (see ItemTotal).
type PurchaseOrderItem struct {
	MaterialCode     string          `json:"materialCode,omitempty"`
	Description      string          `json:"description,omitempty"`
	QuantityOrdered  decimal.Decimal `json:"quantityOrdered"`
	QuantityReceived decimal.Decimal `json:"quantityReceived"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	ContractRate     decimal.Decimal `json:"contractRate"`
	TotalPrice       decimal.Decimal `json:"totalPrice"`
}

// ItemTotal returns the line value: the stated TotalPrice when present,
// otherwise quantity (ordered, falling back to received) times rate
// (unit price, falling back to contract rate).
func (it PurchaseOrderItem) ItemTotal() decimal.Decimal {
	if !it.TotalPrice.IsZero() {
		return it.TotalPrice
	}
	qty := it.QuantityOrdered
	if qty.IsZero() {
		qty = it.QuantityReceived
	}
	rate := it.UnitPrice
	if rate.IsZero() {
		rate = it.ContractRate
	}
	return qty.Mul(rate)
}

// PurchaseOrder mirrors the backend's purchase order shape as consumed
// by the billing workflow.
type PurchaseOrder struct {
	ID           string              `json:"id"`
	OrderNumber  string              `json:"orderNumber"`
	SupplierID   string              `json:"supplierId"`
	SupplierName string              `json:"supplierName"`
	OrderDate    *time.Time          `json:"orderDate,omitempty"`
	TotalAmount  decimal.Decimal     `json:"totalAmount"`
	Items        []PurchaseOrderItem `json:"items,omitempty"`
}
