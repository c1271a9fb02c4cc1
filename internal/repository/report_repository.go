package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/stwalsh4118/room4rent/internal/database"
	"github.com/stwalsh4118/room4rent/internal/models"
)

// UtilityRow is one meter reading joined with its room name and the water
// fee billed to that room's tenants for the same period.
type UtilityRow struct {
	Reading  models.MeterReading
	RoomName string
	WaterFee *decimal.Decimal
}

// ReportRepository defines the read-only aggregate queries.
type ReportRepository interface {
	// MonthlyIncome returns one row per month of the year that has bills.
	// Months without bills are absent.
	MonthlyIncome(ctx context.Context, year int) ([]models.MonthlyIncome, error)
	// UnpaidBills returns unpaid and overdue bills with their remaining
	// balance, latest due date first.
	UnpaidBills(ctx context.Context) ([]models.UnpaidBill, error)
	// UtilityRows returns the year's meter readings, newest month first.
	UtilityRows(ctx context.Context, year int) ([]UtilityRow, error)
	// PaidIncome sums total_amount of paid bills for the period.
	PaidIncome(ctx context.Context, month, year int) (decimal.Decimal, error)
	// OutstandingBalance sums remaining balances over unpaid and overdue bills.
	OutstandingBalance(ctx context.Context) (decimal.Decimal, error)
}

type reportRepository struct {
	db *database.Database
}

// NewReportRepository creates a new instance of ReportRepository.
func NewReportRepository(db *database.Database) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) MonthlyIncome(ctx context.Context, year int) ([]models.MonthlyIncome, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT
			month,
			COALESCE(SUM(total_amount), 0) AS total,
			COUNT(*) FILTER (WHERE status = 'paid') AS paid_count,
			COALESCE(SUM(total_amount) FILTER (WHERE status = 'paid'), 0) AS paid_amount
		FROM bills
		WHERE year = $1
		GROUP BY month
		ORDER BY month
	`, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query income report for %d: %w", year, err)
	}
	defer rows.Close()

	months := []models.MonthlyIncome{}
	for rows.Next() {
		var m models.MonthlyIncome
		if err := rows.Scan(&m.Month, &m.Total, &m.PaidCount, &m.PaidAmount); err != nil {
			return nil, fmt.Errorf("failed to scan income row: %w", err)
		}
		months = append(months, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating income rows: %w", err)
	}
	return months, nil
}

func (r *reportRepository) UnpaidBills(ctx context.Context) ([]models.UnpaidBill, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+billColumns+`, u.name, u.email, r.room_name,
			b.total_amount - COALESCE(SUM(p.amount_paid), 0) AS remaining_balance
		FROM bills b
		JOIN tenants t ON t.id = b.tenant_id
		JOIN users u ON u.id = t.user_id
		JOIN rooms r ON r.id = t.room_id
		LEFT JOIN payments p ON p.bill_id = b.id
		WHERE b.status IN ('unpaid', 'overdue')
		GROUP BY b.id, u.name, u.email, r.room_name
		ORDER BY b.due_date DESC, b.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query unpaid bills: %w", err)
	}
	defer rows.Close()

	bills := []models.UnpaidBill{}
	for rows.Next() {
		var u models.UnpaidBill
		dest := append(billFields(&u.Bill), &u.Name, &u.Email, &u.RoomName, &u.RemainingBalance)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan unpaid bill row: %w", err)
		}
		bills = append(bills, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating unpaid bill rows: %w", err)
	}
	return bills, nil
}

func (r *reportRepository) UtilityRows(ctx context.Context, year int) ([]UtilityRow, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT
			mr.id, mr.room_id, mr.month, mr.year,
			mr.previous_reading, mr.current_reading, mr.rate_per_kwh,
			mr.water_number_of_people, mr.water_fee_per_head,
			mr.internet_number_of_devices, mr.internet_fee_per_device,
			mr.created_at, mr.updated_at,
			r.room_name,
			(
				SELECT SUM(b.water_fee)
				FROM bills b
				JOIN tenants t ON t.id = b.tenant_id
				WHERE t.room_id = mr.room_id AND b.month = mr.month AND b.year = mr.year
			) AS water_fee
		FROM meter_readings mr
		JOIN rooms r ON r.id = mr.room_id
		WHERE mr.year = $1
		ORDER BY mr.month DESC, r.room_name
	`, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query utility usage for %d: %w", year, err)
	}
	defer rows.Close()

	result := []UtilityRow{}
	for rows.Next() {
		var u UtilityRow
		m := &u.Reading
		err := rows.Scan(
			&m.ID,
			&m.RoomID,
			&m.Month,
			&m.Year,
			&m.PreviousReading,
			&m.CurrentReading,
			&m.RatePerKwh,
			&m.WaterNumberOfPeople,
			&m.WaterFeePerHead,
			&m.InternetNumberOfDevices,
			&m.InternetFeePerDevice,
			&m.CreatedAt,
			&m.UpdatedAt,
			&u.RoomName,
			&u.WaterFee,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan utility row: %w", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating utility rows: %w", err)
	}
	return result, nil
}

func (r *reportRepository) PaidIncome(ctx context.Context, month, year int) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM bills
		WHERE status = 'paid' AND month = $1 AND year = $2
	`, month, year).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum paid income for %d/%d: %w", month, year, err)
	}
	return total, nil
}

func (r *reportRepository) OutstandingBalance(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(b.total_amount - COALESCE(p.paid, 0)), 0)
		FROM bills b
		LEFT JOIN (
			SELECT bill_id, SUM(amount_paid) AS paid
			FROM payments
			GROUP BY bill_id
		) p ON p.bill_id = b.id
		WHERE b.status IN ('unpaid', 'overdue')
	`).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum outstanding balance: %w", err)
	}
	return total, nil
}
