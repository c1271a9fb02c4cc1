package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillStatus is the payment state of a bill.
type BillStatus string

const (
	BillStatusUnpaid        BillStatus = "unpaid"
	BillStatusPartiallyPaid BillStatus = "partially paid"
	BillStatusPaid          BillStatus = "paid"
	BillStatusOverdue       BillStatus = "overdue"
)

// IsValid reports whether s is any known bill status.
func (s BillStatus) IsValid() bool {
	switch s {
	case BillStatusUnpaid, BillStatusPartiallyPaid, BillStatusPaid, BillStatusOverdue:
		return true
	}
	return false
}

// IsManuallySettable reports whether an operator may set s directly.
// "partially paid" is only ever derived from payments.
func (s BillStatus) IsManuallySettable() bool {
	return s == BillStatusPaid || s == BillStatusUnpaid || s == BillStatusOverdue
}

// IsOutstanding reports whether the bill counts toward unpaid balances.
func (s BillStatus) IsOutstanding() bool {
	return s == BillStatusUnpaid || s == BillStatusOverdue
}

// Bill is the monthly charge for one tenant.
type Bill struct {
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	DueDate            Date            `json:"due_date"`
	BillingPeriodStart *Date           `json:"billing_period_start"`
	BillingPeriodEnd   *Date           `json:"billing_period_end"`
	Status             BillStatus      `json:"status"`
	RoomFee            decimal.Decimal `json:"room_fee"`
	InternetFee        decimal.Decimal `json:"internet_fee"`
	WaterFee           decimal.Decimal `json:"water_fee"`
	ElectricityFee     decimal.Decimal `json:"electricity_fee"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	ID                 int64           `json:"id"`
	TenantID           int64           `json:"tenant_id"`
	Month              int             `json:"month"`
	Year               int             `json:"year"`
}

// BillSummary is a bill with its tenant, room and amount paid so far.
type BillSummary struct {
	Bill
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	RoomName   string          `json:"room_name"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
	UserID     int64           `json:"user_id"`
}
