package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stwalsh4118/room4rent/internal/billing"
	"github.com/stwalsh4118/room4rent/internal/logger"
	"github.com/stwalsh4118/room4rent/internal/metrics"
	"github.com/stwalsh4118/room4rent/internal/models"
	"github.com/stwalsh4118/room4rent/internal/repository"
)

// RecordPaymentInput is a payment submission. A nil PaymentDate means now.
type RecordPaymentInput struct {
	PaymentDate   *time.Time
	PaymentMethod string
	AmountPaid    decimal.Decimal
	BillID        int64
}

// PaymentService defines the payment ledger operations.
type PaymentService interface {
	// Record appends a payment and recomputes the bill's status from the
	// total paid. Returns ErrNotFound for an unknown bill.
	Record(ctx context.Context, in RecordPaymentInput) (*models.PaymentResult, error)
	// History returns the bill's payments, most recent first.
	History(ctx context.Context, billID int64) ([]models.Payment, error)
}

type paymentService struct {
	payments repository.PaymentRepository
	bills    repository.BillRepository
	log      *logger.Logger
	now      func() time.Time
}

// NewPaymentService creates a new instance of PaymentService.
func NewPaymentService(payments repository.PaymentRepository, bills repository.BillRepository, log *logger.Logger) PaymentService {
	return &paymentService{
		payments: payments,
		bills:    bills,
		log:      log.Component("ledger"),
		now:      time.Now,
	}
}

func (s *paymentService) Record(ctx context.Context, in RecordPaymentInput) (*models.PaymentResult, error) {
	method := strings.TrimSpace(in.PaymentMethod)
	amount := in.AmountPaid.Round(billing.CurrencyPlaces)

	switch {
	case in.BillID <= 0:
		return nil, fmt.Errorf("%w: bill_id is required", ErrInvalidArgument)
	case !amount.IsPositive():
		return nil, fmt.Errorf("%w: amount_paid must be at least 0.01, got %s", ErrInvalidArgument, in.AmountPaid.String())
	case method == "":
		return nil, fmt.Errorf("%w: payment_method is required", ErrInvalidArgument)
	}
	if err := billing.CheckAmount("amount_paid", amount); err != nil {
		return nil, invalid(err)
	}

	paidAt := s.now()
	if in.PaymentDate != nil && !in.PaymentDate.IsZero() {
		paidAt = *in.PaymentDate
	}

	result, err := s.payments.Record(ctx, models.Payment{
		BillID:        in.BillID,
		AmountPaid:    amount,
		PaymentDate:   paidAt,
		PaymentMethod: method,
	}, billing.StatusForPayments)
	if err != nil {
		if isValidationError(err) {
			s.log.Warn("Payment rejected", map[string]interface{}{"bill_id": in.BillID, "error": err.Error()})
			return nil, invalid(err)
		}
		s.log.Error("Failed to record payment", err, map[string]interface{}{"bill_id": in.BillID})
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	if result == nil {
		return nil, notFound("bill", in.BillID)
	}

	metrics.ObservePayment(string(result.BillStatus))
	s.log.Info("Payment recorded", map[string]interface{}{
		"bill_id":     in.BillID,
		"payment_id":  result.Payment.ID,
		"amount_paid": result.Payment.AmountPaid.StringFixed(billing.CurrencyPlaces),
		"total_paid":  result.TotalPaid.StringFixed(billing.CurrencyPlaces),
		"bill_status": result.BillStatus,
	})
	return result, nil
}

func (s *paymentService) History(ctx context.Context, billID int64) ([]models.Payment, error) {
	bill, err := s.bills.FindByID(ctx, billID)
	if err != nil {
		s.log.Error("Failed to query bill", err, map[string]interface{}{"bill_id": billID})
		return nil, fmt.Errorf("failed to query payment history: %w", err)
	}
	if bill == nil {
		return nil, notFound("bill", billID)
	}

	payments, err := s.payments.ListByBill(ctx, billID)
	if err != nil {
		s.log.Error("Failed to list payments", err, map[string]interface{}{"bill_id": billID})
		return nil, fmt.Errorf("failed to query payment history: %w", err)
	}
	return payments, nil
}
