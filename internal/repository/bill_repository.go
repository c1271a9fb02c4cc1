package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stwalsh4118/room4rent/internal/database"
	"github.com/stwalsh4118/room4rent/internal/models"
)

// BillRepository defines data access for bills.
type BillRepository interface {
	// Upsert inserts the bill for its (tenant, month, year) or overwrites
	// the fees, total, dates and status of the existing one. created
	// reports whether a new row was inserted.
	Upsert(ctx context.Context, bill models.Bill) (result *models.Bill, created bool, err error)
	// FindByID returns nil, nil when the bill does not exist.
	FindByID(ctx context.Context, id int64) (*models.Bill, error)
	// FindByPeriod returns the tenant's bill for the period, or nil, nil.
	FindByPeriod(ctx context.Context, tenantID int64, month, year int) (*models.Bill, error)
	// ListSummaries returns every bill with tenant, room and amount paid,
	// newest period first.
	ListSummaries(ctx context.Context) ([]models.BillSummary, error)
	// ListByTenant returns the tenant's bills, newest period first.
	ListByTenant(ctx context.Context, tenantID int64) ([]models.Bill, error)
	// UpdateStatus sets the status. Returns nil, nil when the bill does not exist.
	UpdateStatus(ctx context.Context, id int64, status models.BillStatus) (*models.Bill, error)
}

type billRepository struct {
	db *database.Database
}

// NewBillRepository creates a new instance of BillRepository.
func NewBillRepository(db *database.Database) BillRepository {
	return &billRepository{db: db}
}

const billColumns = `b.id, b.tenant_id, b.month, b.year,
	b.room_fee, b.internet_fee, b.water_fee, b.electricity_fee, b.total_amount,
	b.due_date, b.billing_period_start, b.billing_period_end, b.status,
	b.created_at, b.updated_at`

func billFields(b *models.Bill) []any {
	return []any{
		&b.ID,
		&b.TenantID,
		&b.Month,
		&b.Year,
		&b.RoomFee,
		&b.InternetFee,
		&b.WaterFee,
		&b.ElectricityFee,
		&b.TotalAmount,
		&b.DueDate,
		&b.BillingPeriodStart,
		&b.BillingPeriodEnd,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	}
}

func scanBill(row pgx.Row) (*models.Bill, error) {
	var b models.Bill
	if err := row.Scan(billFields(&b)...); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *billRepository) Upsert(ctx context.Context, bill models.Bill) (*models.Bill, bool, error) {
	var (
		result  models.Bill
		created bool
	)

	// xmax is zero only for a freshly inserted tuple
	dest := append(billFields(&result), &created)
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO bills AS b (
			tenant_id, month, year,
			room_fee, internet_fee, water_fee, electricity_fee, total_amount,
			due_date, billing_period_start, billing_period_end, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (tenant_id, month, year) DO UPDATE SET
			room_fee = EXCLUDED.room_fee,
			internet_fee = EXCLUDED.internet_fee,
			water_fee = EXCLUDED.water_fee,
			electricity_fee = EXCLUDED.electricity_fee,
			total_amount = EXCLUDED.total_amount,
			due_date = EXCLUDED.due_date,
			billing_period_start = EXCLUDED.billing_period_start,
			billing_period_end = EXCLUDED.billing_period_end,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING `+billColumns+`, (b.xmax = 0) AS inserted`,
		bill.TenantID, bill.Month, bill.Year,
		bill.RoomFee, bill.InternetFee, bill.WaterFee, bill.ElectricityFee, bill.TotalAmount,
		bill.DueDate, bill.BillingPeriodStart, bill.BillingPeriodEnd, bill.Status,
	).Scan(dest...)
	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert bill (tenant=%d, %d/%d): %w",
			bill.TenantID, bill.Month, bill.Year, translateError(err))
	}
	return &result, created, nil
}

func (r *billRepository) FindByID(ctx context.Context, id int64) (*models.Bill, error) {
	b, err := scanBill(r.db.Pool.QueryRow(ctx, `SELECT `+billColumns+` FROM bills b WHERE b.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query bill %d: %w", id, err)
	}
	return b, nil
}

func (r *billRepository) FindByPeriod(ctx context.Context, tenantID int64, month, year int) (*models.Bill, error) {
	b, err := scanBill(r.db.Pool.QueryRow(ctx, `
		SELECT `+billColumns+`
		FROM bills b
		WHERE b.tenant_id = $1 AND b.month = $2 AND b.year = $3
	`, tenantID, month, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query bill (tenant=%d, %d/%d): %w", tenantID, month, year, err)
	}
	return b, nil
}

func (r *billRepository) ListSummaries(ctx context.Context) ([]models.BillSummary, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+billColumns+`, t.user_id, u.name, u.email, r.room_name,
			COALESCE(SUM(p.amount_paid), 0) AS amount_paid
		FROM bills b
		JOIN tenants t ON t.id = b.tenant_id
		JOIN users u ON u.id = t.user_id
		JOIN rooms r ON r.id = t.room_id
		LEFT JOIN payments p ON p.bill_id = b.id
		GROUP BY b.id, t.user_id, u.name, u.email, r.room_name
		ORDER BY b.year DESC, b.month DESC, u.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer rows.Close()

	bills := []models.BillSummary{}
	for rows.Next() {
		var s models.BillSummary
		dest := append(billFields(&s.Bill), &s.UserID, &s.Name, &s.Email, &s.RoomName, &s.AmountPaid)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan bill row: %w", err)
		}
		bills = append(bills, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bill rows: %w", err)
	}
	return bills, nil
}

func (r *billRepository) ListByTenant(ctx context.Context, tenantID int64) ([]models.Bill, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+billColumns+`
		FROM bills b
		WHERE b.tenant_id = $1
		ORDER BY b.year DESC, b.month DESC
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills for tenant %d: %w", tenantID, err)
	}
	defer rows.Close()

	bills := []models.Bill{}
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill row: %w", err)
		}
		bills = append(bills, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bill rows: %w", err)
	}
	return bills, nil
}

func (r *billRepository) UpdateStatus(ctx context.Context, id int64, status models.BillStatus) (*models.Bill, error) {
	b, err := scanBill(r.db.Pool.QueryRow(ctx, `
		UPDATE bills AS b
		SET status = $2, updated_at = NOW()
		WHERE b.id = $1
		RETURNING `+billColumns, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update status of bill %d: %w", id, err)
	}
	return b, nil
}
