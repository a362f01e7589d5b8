package models

import "github.com/shopspring/decimal"

// Accepted payment methods.
const (
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCheque       = "cheque"
	PaymentMethodCash         = "cash"
	PaymentMethodCard         = "card"
)

// Payment is the payload submitted against an invoice's payment
// sub-resource. It is transient: the client never stores payments, the
// backend folds them into paid_amount / balance_due / payment_status.
type Payment struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   string          `json:"paymentDate,omitempty"`
	PaymentMethod string          `json:"paymentMethod"`
	Reference     string          `json:"reference,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}
