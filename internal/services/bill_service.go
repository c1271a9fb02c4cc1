package services

import (
	"context"
	"fmt"
	"time"

	"github.com/stwalsh4118/room4rent/internal/billing"
	"github.com/stwalsh4118/room4rent/internal/logger"
	"github.com/stwalsh4118/room4rent/internal/metrics"
	"github.com/stwalsh4118/room4rent/internal/models"
	"github.com/stwalsh4118/room4rent/internal/repository"
)

// GenerateBillInput identifies the bill to generate and its dates.
type GenerateBillInput struct {
	DueDate            models.Date
	BillingPeriodStart *models.Date
	BillingPeriodEnd   *models.Date
	TenantID           int64
	Month              int
	Year               int
}

// BillService defines the billing engine operations.
type BillService interface {
	// Generate computes the tenant's bill for the period from the room's
	// base rent and the period's meter reading, then creates it or
	// overwrites the existing one. Regeneration resets status to unpaid.
	Generate(ctx context.Context, in GenerateBillInput) (bill *models.Bill, created bool, err error)
	// Get returns ErrNotFound when the bill does not exist.
	Get(ctx context.Context, id int64) (*models.Bill, error)
	// List returns every bill with tenant, room and amount paid.
	List(ctx context.Context) ([]models.BillSummary, error)
	// ListByTenant returns ErrNotFound for an unknown tenant.
	ListByTenant(ctx context.Context, tenantID int64) ([]models.Bill, error)
	// Current returns the tenant's bill for the current month or ErrNotFound.
	Current(ctx context.Context, tenantID int64) (*models.Bill, error)
	// UpdateStatus sets paid, unpaid or overdue; any other value is
	// ErrInvalidArgument.
	UpdateStatus(ctx context.Context, id int64, status models.BillStatus) (*models.Bill, error)
}

type billService struct {
	bills    repository.BillRepository
	tenants  repository.TenantRepository
	readings repository.MeterReadingRepository
	log      *logger.Logger
	now      func() time.Time
}

// NewBillService creates a new instance of BillService.
func NewBillService(
	bills repository.BillRepository,
	tenants repository.TenantRepository,
	readings repository.MeterReadingRepository,
	log *logger.Logger,
) BillService {
	return &billService{
		bills:    bills,
		tenants:  tenants,
		readings: readings,
		log:      log.Component("billing"),
		now:      time.Now,
	}
}

func (s *billService) Generate(ctx context.Context, in GenerateBillInput) (*models.Bill, bool, error) {
	fields := map[string]interface{}{
		"tenant_id": in.TenantID,
		"month":     in.Month,
		"year":      in.Year,
	}

	if in.TenantID <= 0 {
		return nil, false, fmt.Errorf("%w: tenant_id is required", ErrInvalidArgument)
	}
	if err := billing.ValidatePeriod(in.Month, in.Year); err != nil {
		s.log.Warn("Bill generation rejected", withError(fields, err))
		return nil, false, invalid(err)
	}
	if in.DueDate.IsZero() {
		return nil, false, fmt.Errorf("%w: due_date is required", ErrInvalidArgument)
	}
	if in.BillingPeriodStart != nil && in.BillingPeriodEnd != nil &&
		in.BillingPeriodEnd.Before(in.BillingPeriodStart.Time) {
		return nil, false, fmt.Errorf("%w: billing_period_end is before billing_period_start", ErrInvalidArgument)
	}

	tenant, err := s.tenants.FindByID(ctx, in.TenantID)
	if err != nil {
		s.log.Error("Failed to query tenant", err, fields)
		return nil, false, fmt.Errorf("failed to generate bill: %w", err)
	}
	if tenant == nil || tenant.BaseRent == nil {
		return nil, false, notFound("tenant", in.TenantID)
	}

	reading, err := s.readings.FindByPeriod(ctx, tenant.RoomID, in.Month, in.Year)
	if err != nil {
		s.log.Error("Failed to query meter reading", err, fields)
		return nil, false, fmt.Errorf("failed to generate bill: %w", err)
	}

	fees := billing.ComputeFees(*tenant.BaseRent, reading)
	if err := billing.CheckFees(fees); err != nil {
		s.log.Warn("Bill generation rejected", withError(fields, err))
		return nil, false, invalid(err)
	}

	bill, created, err := s.bills.Upsert(ctx, models.Bill{
		TenantID:           in.TenantID,
		Month:              in.Month,
		Year:               in.Year,
		RoomFee:            fees.RoomFee,
		InternetFee:        fees.InternetFee,
		WaterFee:           fees.WaterFee,
		ElectricityFee:     fees.ElectricityFee,
		TotalAmount:        fees.TotalAmount,
		DueDate:            in.DueDate,
		BillingPeriodStart: in.BillingPeriodStart,
		BillingPeriodEnd:   in.BillingPeriodEnd,
		Status:             models.BillStatusUnpaid,
	})
	if err != nil {
		if isValidationError(err) {
			s.log.Warn("Bill generation rejected", withError(fields, err))
			return nil, false, invalid(err)
		}
		s.log.Error("Failed to save bill", err, fields)
		return nil, false, fmt.Errorf("failed to generate bill: %w", err)
	}

	metrics.ObserveBillGenerated(created)
	fields["bill_id"] = bill.ID
	fields["created"] = created
	fields["total_amount"] = bill.TotalAmount.StringFixed(billing.CurrencyPlaces)
	fields["has_meter_reading"] = reading != nil
	s.log.Info("Bill generated", fields)

	return bill, created, nil
}

func (s *billService) Get(ctx context.Context, id int64) (*models.Bill, error) {
	bill, err := s.bills.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to query bill", err, map[string]interface{}{"bill_id": id})
		return nil, fmt.Errorf("failed to query bill: %w", err)
	}
	if bill == nil {
		return nil, notFound("bill", id)
	}
	return bill, nil
}

func (s *billService) List(ctx context.Context) ([]models.BillSummary, error) {
	bills, err := s.bills.ListSummaries(ctx)
	if err != nil {
		s.log.Error("Failed to list bills", err, nil)
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	return bills, nil
}

func (s *billService) ListByTenant(ctx context.Context, tenantID int64) ([]models.Bill, error) {
	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		s.log.Error("Failed to query tenant", err, map[string]interface{}{"tenant_id": tenantID})
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	if tenant == nil {
		return nil, notFound("tenant", tenantID)
	}

	bills, err := s.bills.ListByTenant(ctx, tenantID)
	if err != nil {
		s.log.Error("Failed to list tenant bills", err, map[string]interface{}{"tenant_id": tenantID})
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	return bills, nil
}

func (s *billService) Current(ctx context.Context, tenantID int64) (*models.Bill, error) {
	now := s.now()
	month, year := int(now.Month()), now.Year()

	bill, err := s.bills.FindByPeriod(ctx, tenantID, month, year)
	if err != nil {
		s.log.Error("Failed to query current bill", err, map[string]interface{}{"tenant_id": tenantID})
		return nil, fmt.Errorf("failed to query current bill: %w", err)
	}
	if bill == nil {
		return nil, fmt.Errorf("%w: no bill for tenant %d in %d/%d", ErrNotFound, tenantID, month, year)
	}
	return bill, nil
}

func (s *billService) UpdateStatus(ctx context.Context, id int64, status models.BillStatus) (*models.Bill, error) {
	if !status.IsManuallySettable() {
		s.log.Warn("Invalid bill status rejected", map[string]interface{}{"bill_id": id, "status": status})
		return nil, fmt.Errorf("%w: status must be one of paid, unpaid, overdue; got %q", ErrInvalidArgument, status)
	}

	bill, err := s.bills.UpdateStatus(ctx, id, status)
	if err != nil {
		s.log.Error("Failed to update bill status", err, map[string]interface{}{"bill_id": id})
		return nil, fmt.Errorf("failed to update bill status: %w", err)
	}
	if bill == nil {
		return nil, notFound("bill", id)
	}

	s.log.Info("Bill status updated", map[string]interface{}{"bill_id": id, "status": status})
	return bill, nil
}
