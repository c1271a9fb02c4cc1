package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a single amount applied to a bill. Payments are append-only.
type Payment struct {
	PaymentDate   time.Time       `json:"payment_date"`
	CreatedAt     time.Time       `json:"created_at"`
	PaymentMethod string          `json:"payment_method"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	ID            int64           `json:"id"`
	BillID        int64           `json:"bill_id"`
}

// PaymentResult is the outcome of recording a payment.
type PaymentResult struct {
	Payment    Payment         `json:"payment"`
	BillStatus BillStatus      `json:"bill_status"`
	TotalPaid  decimal.Decimal `json:"total_paid"`
}
