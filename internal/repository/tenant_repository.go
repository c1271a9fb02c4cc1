package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stwalsh4118/room4rent/internal/database"
	"github.com/stwalsh4118/room4rent/internal/models"
)

// TenantRepository defines data access for tenants. Writes that change
// occupancy also update the room status in the same transaction.
type TenantRepository interface {
	// ListActive returns tenants without a move-out date, ordered by name.
	ListActive(ctx context.Context) ([]models.TenantDetails, error)
	// FindByID returns nil, nil when the tenant does not exist.
	FindByID(ctx context.Context, id int64) (*models.TenantDetails, error)
	// FindActiveByUserID returns the user's current tenancy, or nil, nil.
	FindActiveByUserID(ctx context.Context, userID int64) (*models.TenantDetails, error)
	// Create inserts the user and tenant rows and marks the room occupied.
	// Returns ErrUniqueViolation for a duplicate email and
	// ErrForeignKeyViolation when the room does not exist.
	Create(ctx context.Context, t models.NewTenant) (*models.Tenant, error)
	// Update overwrites contact, occupants and move-out date. A set move-out
	// date vacates the room. Returns nil, nil when the tenant does not exist.
	Update(ctx context.Context, t models.Tenant) (*models.Tenant, error)
	// MoveOut sets the move-out date and vacates the room. Returns nil, nil
	// when the tenant does not exist.
	MoveOut(ctx context.Context, id int64, date models.Date) (*models.Tenant, error)
}

type tenantRepository struct {
	db *database.Database
}

// NewTenantRepository creates a new instance of TenantRepository.
func NewTenantRepository(db *database.Database) TenantRepository {
	return &tenantRepository{db: db}
}

const tenantColumns = `t.id, t.user_id, t.room_id, t.contact_number, t.number_of_occupants,
	t.move_in_date, t.move_out_date, t.created_at`

const tenantDetailsQuery = `
	SELECT ` + tenantColumns + `, u.name, u.email, r.room_name, r.base_rent, r.internet_fee
	FROM tenants t
	JOIN users u ON u.id = t.user_id
	JOIN rooms r ON r.id = t.room_id
`

func tenantFields(t *models.Tenant) []any {
	return []any{
		&t.ID,
		&t.UserID,
		&t.RoomID,
		&t.ContactNumber,
		&t.NumberOfOccupants,
		&t.MoveInDate,
		&t.MoveOutDate,
		&t.CreatedAt,
	}
}

func scanTenant(row pgx.Row) (*models.Tenant, error) {
	var t models.Tenant
	if err := row.Scan(tenantFields(&t)...); err != nil {
		return nil, err
	}
	return &t, nil
}

func scanTenantDetails(row pgx.Row) (*models.TenantDetails, error) {
	var d models.TenantDetails
	dest := append(tenantFields(&d.Tenant), &d.Name, &d.Email, &d.RoomName, &d.BaseRent, &d.InternetFee)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *tenantRepository) ListActive(ctx context.Context) ([]models.TenantDetails, error) {
	rows, err := r.db.Pool.Query(ctx, tenantDetailsQuery+`
		WHERE t.move_out_date IS NULL
		ORDER BY u.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query active tenants: %w", err)
	}
	defer rows.Close()

	tenants := []models.TenantDetails{}
	for rows.Next() {
		t, err := scanTenantDetails(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tenant row: %w", err)
		}
		tenants = append(tenants, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tenant rows: %w", err)
	}
	return tenants, nil
}

func (r *tenantRepository) FindByID(ctx context.Context, id int64) (*models.TenantDetails, error) {
	t, err := scanTenantDetails(r.db.Pool.QueryRow(ctx, tenantDetailsQuery+`WHERE t.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query tenant %d: %w", id, err)
	}
	return t, nil
}

func (r *tenantRepository) FindActiveByUserID(ctx context.Context, userID int64) (*models.TenantDetails, error) {
	t, err := scanTenantDetails(r.db.Pool.QueryRow(ctx, tenantDetailsQuery+`
		WHERE t.user_id = $1 AND t.move_out_date IS NULL
		ORDER BY t.move_in_date DESC
		LIMIT 1
	`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query tenant for user %d: %w", userID, err)
	}
	return t, nil
}

func (r *tenantRepository) Create(ctx context.Context, nt models.NewTenant) (*models.Tenant, error) {
	var tenant *models.Tenant

	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		var userID int64
		err := tx.QueryRow(ctx, `
			INSERT INTO users (name, email, password_hash, role)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, nt.Name, nt.Email, nt.PasswordHash, models.RoleTenant).Scan(&userID)
		if err != nil {
			return fmt.Errorf("failed to insert tenant user: %w", translateError(err))
		}

		tenant, err = scanTenant(tx.QueryRow(ctx, `
			INSERT INTO tenants AS t (user_id, room_id, contact_number, number_of_occupants, move_in_date)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+tenantColumns,
			userID, nt.RoomID, nt.ContactNumber, nt.NumberOfOccupants, nt.MoveInDate))
		if err != nil {
			return fmt.Errorf("failed to insert tenant: %w", translateError(err))
		}

		if _, err := tx.Exec(ctx, `UPDATE rooms SET status = 'occupied' WHERE id = $1`, nt.RoomID); err != nil {
			return fmt.Errorf("failed to mark room %d occupied: %w", nt.RoomID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

func (r *tenantRepository) Update(ctx context.Context, t models.Tenant) (*models.Tenant, error) {
	var updated *models.Tenant

	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		var err error
		updated, err = scanTenant(tx.QueryRow(ctx, `
			UPDATE tenants AS t
			SET contact_number = $2, number_of_occupants = $3, move_out_date = $4
			WHERE t.id = $1
			RETURNING `+tenantColumns,
			t.ID, t.ContactNumber, t.NumberOfOccupants, t.MoveOutDate))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				updated = nil
				return nil
			}
			return fmt.Errorf("failed to update tenant %d: %w", t.ID, translateError(err))
		}

		if updated.MoveOutDate != nil {
			return vacateRoom(ctx, tx, updated.RoomID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *tenantRepository) MoveOut(ctx context.Context, id int64, date models.Date) (*models.Tenant, error) {
	var tenant *models.Tenant

	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		var err error
		tenant, err = scanTenant(tx.QueryRow(ctx, `
			UPDATE tenants AS t
			SET move_out_date = $2
			WHERE t.id = $1
			RETURNING `+tenantColumns, id, date))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				tenant = nil
				return nil
			}
			return fmt.Errorf("failed to move out tenant %d: %w", id, err)
		}
		return vacateRoom(ctx, tx, tenant.RoomID)
	})
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

// vacateRoom marks the room vacant once no active tenant remains in it.
func vacateRoom(ctx context.Context, tx pgx.Tx, roomID int64) error {
	_, err := tx.Exec(ctx, `
		UPDATE rooms SET status = 'vacant'
		WHERE id = $1
		  AND NOT EXISTS (SELECT 1 FROM tenants WHERE room_id = $1 AND move_out_date IS NULL)
	`, roomID)
	if err != nil {
		return fmt.Errorf("failed to vacate room %d: %w", roomID, err)
	}
	return nil
}
