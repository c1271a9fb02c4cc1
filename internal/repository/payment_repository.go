package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/stwalsh4118/room4rent/internal/database"
	"github.com/stwalsh4118/room4rent/internal/models"
)

// StatusResolver derives a bill status from its total and the sum paid.
type StatusResolver func(total, paid decimal.Decimal) models.BillStatus

// PaymentRepository defines data access for the payment ledger.
type PaymentRepository interface {
	// Record appends the payment and recomputes the bill status in one
	// transaction holding the bill row lock, so concurrent payments on the
	// same bill serialize. Returns nil, nil when the bill does not exist.
	Record(ctx context.Context, payment models.Payment, resolve StatusResolver) (*models.PaymentResult, error)
	// ListByBill returns the bill's payments, most recent first.
	ListByBill(ctx context.Context, billID int64) ([]models.Payment, error)
}

type paymentRepository struct {
	db *database.Database
}

// NewPaymentRepository creates a new instance of PaymentRepository.
func NewPaymentRepository(db *database.Database) PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, bill_id, amount_paid, payment_date, payment_method, created_at`

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var p models.Payment
	err := row.Scan(&p.ID, &p.BillID, &p.AmountPaid, &p.PaymentDate, &p.PaymentMethod, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepository) Record(ctx context.Context, payment models.Payment, resolve StatusResolver) (*models.PaymentResult, error) {
	var result *models.PaymentResult

	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		var total decimal.Decimal
		err := tx.QueryRow(ctx,
			`SELECT total_amount FROM bills WHERE id = $1 FOR UPDATE`, payment.BillID,
		).Scan(&total)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to lock bill %d: %w", payment.BillID, err)
		}

		inserted, err := scanPayment(tx.QueryRow(ctx, `
			INSERT INTO payments (bill_id, amount_paid, payment_date, payment_method)
			VALUES ($1, $2, $3, $4)
			RETURNING `+paymentColumns,
			payment.BillID, payment.AmountPaid, payment.PaymentDate, payment.PaymentMethod))
		if err != nil {
			return fmt.Errorf("failed to insert payment: %w", translateError(err))
		}

		var paid decimal.Decimal
		if err := tx.QueryRow(ctx,
			`SELECT COALESCE(SUM(amount_paid), 0) FROM payments WHERE bill_id = $1`, payment.BillID,
		).Scan(&paid); err != nil {
			return fmt.Errorf("failed to sum payments for bill %d: %w", payment.BillID, err)
		}

		status := resolve(total, paid)
		if _, err := tx.Exec(ctx,
			`UPDATE bills SET status = $2, updated_at = NOW() WHERE id = $1`, payment.BillID, status,
		); err != nil {
			return fmt.Errorf("failed to update status of bill %d: %w", payment.BillID, err)
		}

		result = &models.PaymentResult{
			Payment:    *inserted,
			BillStatus: status,
			TotalPaid:  paid,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *paymentRepository) ListByBill(ctx context.Context, billID int64) ([]models.Payment, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+paymentColumns+`
		FROM payments
		WHERE bill_id = $1
		ORDER BY payment_date DESC, id DESC
	`, billID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for bill %d: %w", billID, err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}
	return payments, nil
}
