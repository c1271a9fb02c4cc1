package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stwalsh4118/room4rent/internal/billing"
	"github.com/stwalsh4118/room4rent/internal/logger"
	"github.com/stwalsh4118/room4rent/internal/models"
	"github.com/stwalsh4118/room4rent/internal/repository"
)

// ReportService defines the read-only reporting rollups.
type ReportService interface {
	// Income returns twelve rows, one per month, zero-filled.
	Income(ctx context.Context, year int) ([]models.MonthlyIncome, error)
	// UnpaidBills returns unpaid and overdue bills with remaining balances.
	UnpaidBills(ctx context.Context) ([]models.UnpaidBill, error)
	// UtilityUsage returns the year's readings with derived usage and cost.
	UtilityUsage(ctx context.Context, year int) ([]models.UtilityUsage, error)
	// Dashboard returns the current-month snapshot.
	Dashboard(ctx context.Context) (*models.DashboardStats, error)
}

type reportService struct {
	reports repository.ReportRepository
	rooms   repository.RoomRepository
	log     *logger.Logger
	now     func() time.Time
}

// NewReportService creates a new instance of ReportService.
func NewReportService(reports repository.ReportRepository, rooms repository.RoomRepository, log *logger.Logger) ReportService {
	return &reportService{
		reports: reports,
		rooms:   rooms,
		log:     log.Component("reports"),
		now:     time.Now,
	}
}

func (s *reportService) Income(ctx context.Context, year int) ([]models.MonthlyIncome, error) {
	if err := billing.ValidatePeriod(1, year); err != nil {
		return nil, invalid(err)
	}

	rows, err := s.reports.MonthlyIncome(ctx, year)
	if err != nil {
		s.log.Error("Failed to build income report", err, map[string]interface{}{"year": year})
		return nil, fmt.Errorf("failed to build income report: %w", err)
	}

	months := make([]models.MonthlyIncome, 12)
	for i := range months {
		months[i] = models.MonthlyIncome{
			Month:      i + 1,
			Total:      decimal.Zero,
			PaidAmount: decimal.Zero,
		}
	}
	for _, row := range rows {
		if row.Month >= 1 && row.Month <= 12 {
			months[row.Month-1] = row
		}
	}
	return months, nil
}

func (s *reportService) UnpaidBills(ctx context.Context) ([]models.UnpaidBill, error) {
	bills, err := s.reports.UnpaidBills(ctx)
	if err != nil {
		s.log.Error("Failed to build unpaid bills report", err, nil)
		return nil, fmt.Errorf("failed to build unpaid bills report: %w", err)
	}
	return bills, nil
}

func (s *reportService) UtilityUsage(ctx context.Context, year int) ([]models.UtilityUsage, error) {
	if err := billing.ValidatePeriod(1, year); err != nil {
		return nil, invalid(err)
	}

	rows, err := s.reports.UtilityRows(ctx, year)
	if err != nil {
		s.log.Error("Failed to build utility usage report", err, map[string]interface{}{"year": year})
		return nil, fmt.Errorf("failed to build utility usage report: %w", err)
	}

	usage := make([]models.UtilityUsage, 0, len(rows))
	for _, row := range rows {
		r := row.Reading
		usage = append(usage, models.UtilityUsage{
			PreviousReading: r.PreviousReading,
			CurrentReading:  r.CurrentReading,
			Usage:           billing.ElectricityUsage(&r),
			RatePerKwh:      r.RatePerKwh,
			ElectricityCost: billing.ElectricityCost(&r),
			WaterFee:        row.WaterFee,
			RoomName:        row.RoomName,
			RoomID:          r.RoomID,
			Month:           r.Month,
			Year:            r.Year,
		})
	}
	return usage, nil
}

func (s *reportService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	now := s.now()
	month, year := int(now.Month()), now.Year()

	income, err := s.reports.PaidIncome(ctx, month, year)
	if err != nil {
		s.log.Error("Failed to compute monthly income", err, nil)
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	outstanding, err := s.reports.OutstandingBalance(ctx)
	if err != nil {
		s.log.Error("Failed to compute outstanding balance", err, nil)
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	occupied, vacant, err := s.rooms.CountByStatus(ctx)
	if err != nil {
		s.log.Error("Failed to count rooms", err, nil)
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	return &models.DashboardStats{
		TotalIncome:   income,
		TotalUnpaid:   outstanding,
		Month:         month,
		Year:          year,
		OccupiedRooms: occupied,
		VacantRooms:   vacant,
	}, nil
}
