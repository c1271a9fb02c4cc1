package billing

import (
	"github.com/shopspring/decimal"

	"github.com/stwalsh4118/room4rent/internal/models"
)

// StatusForPayments derives a bill's status from the sum of its payments.
// Overpayment stays "paid"; "overdue" is never produced here.
func StatusForPayments(total, paid decimal.Decimal) models.BillStatus {
	switch {
	case paid.GreaterThanOrEqual(total):
		return models.BillStatusPaid
	case paid.IsPositive():
		return models.BillStatusPartiallyPaid
	default:
		return models.BillStatusUnpaid
	}
}

// RemainingBalance is total minus paid. It goes negative on overpayment.
func RemainingBalance(total, paid decimal.Decimal) decimal.Decimal {
	return total.Sub(paid)
}
