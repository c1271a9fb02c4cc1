package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stwalsh4118/room4rent/internal/database"
	"github.com/stwalsh4118/room4rent/internal/models"
)

// MergeFunc produces the record to store from the current one. For a
// period with no reading yet it receives a record carrying only the key.
// Returning an error aborts the write.
type MergeFunc func(stored models.MeterReading) (models.MeterReading, error)

// MeterReadingRepository defines data access for meter readings.
type MeterReadingRepository interface {
	// FindByPeriod returns nil, nil when the room has no reading for the period.
	FindByPeriod(ctx context.Context, roomID int64, month, year int) (*models.MeterReading, error)
	// ListByRoom returns the room's readings, newest period first.
	ListByRoom(ctx context.Context, roomID int64) ([]models.MeterReading, error)
	// Upsert locks the period's reading, merges it and writes the result.
	// created reports whether a new row was inserted.
	Upsert(ctx context.Context, roomID int64, month, year int, merge MergeFunc) (reading *models.MeterReading, created bool, err error)
}

// errInsertRace signals that a concurrent request inserted the same period
// first; the upsert is retried as an update.
var errInsertRace = errors.New("meter reading inserted concurrently")

const maxUpsertAttempts = 3

type meterReadingRepository struct {
	db *database.Database
}

// NewMeterReadingRepository creates a new instance of MeterReadingRepository.
func NewMeterReadingRepository(db *database.Database) MeterReadingRepository {
	return &meterReadingRepository{db: db}
}

const meterReadingColumns = `id, room_id, month, year,
	previous_reading, current_reading, rate_per_kwh,
	water_number_of_people, water_fee_per_head,
	internet_number_of_devices, internet_fee_per_device,
	created_at, updated_at`

func scanMeterReading(row pgx.Row) (*models.MeterReading, error) {
	var m models.MeterReading
	err := row.Scan(
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
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *meterReadingRepository) FindByPeriod(ctx context.Context, roomID int64, month, year int) (*models.MeterReading, error) {
	m, err := scanMeterReading(r.db.Pool.QueryRow(ctx, `
		SELECT `+meterReadingColumns+`
		FROM meter_readings
		WHERE room_id = $1 AND month = $2 AND year = $3
	`, roomID, month, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query meter reading (room=%d, %d/%d): %w", roomID, month, year, err)
	}
	return m, nil
}

func (r *meterReadingRepository) ListByRoom(ctx context.Context, roomID int64) ([]models.MeterReading, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+meterReadingColumns+`
		FROM meter_readings
		WHERE room_id = $1
		ORDER BY year DESC, month DESC
	`, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to query meter readings for room %d: %w", roomID, err)
	}
	defer rows.Close()

	readings := []models.MeterReading{}
	for rows.Next() {
		m, err := scanMeterReading(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meter reading row: %w", err)
		}
		readings = append(readings, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating meter reading rows: %w", err)
	}
	return readings, nil
}

func (r *meterReadingRepository) Upsert(ctx context.Context, roomID int64, month, year int, merge MergeFunc) (*models.MeterReading, bool, error) {
	for attempt := 0; attempt < maxUpsertAttempts; attempt++ {
		reading, created, err := r.upsertOnce(ctx, roomID, month, year, merge)
		if errors.Is(err, errInsertRace) {
			continue
		}
		return reading, created, err
	}
	return nil, false, fmt.Errorf("failed to upsert meter reading (room=%d, %d/%d): %w", roomID, month, year, errInsertRace)
}

func (r *meterReadingRepository) upsertOnce(ctx context.Context, roomID int64, month, year int, merge MergeFunc) (*models.MeterReading, bool, error) {
	var (
		result  *models.MeterReading
		created bool
	)

	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		stored, err := scanMeterReading(tx.QueryRow(ctx, `
			SELECT `+meterReadingColumns+`
			FROM meter_readings
			WHERE room_id = $1 AND month = $2 AND year = $3
			FOR UPDATE
		`, roomID, month, year))
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("failed to lock meter reading: %w", err)
		}

		base := models.MeterReading{RoomID: roomID, Month: month, Year: year}
		if stored != nil {
			base = *stored
		}

		merged, err := merge(base)
		if err != nil {
			return err
		}

		if stored == nil {
			result, err = scanMeterReading(tx.QueryRow(ctx, `
				INSERT INTO meter_readings (
					room_id, month, year,
					previous_reading, current_reading, rate_per_kwh,
					water_number_of_people, water_fee_per_head,
					internet_number_of_devices, internet_fee_per_device
				)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
				ON CONFLICT (room_id, month, year) DO NOTHING
				RETURNING `+meterReadingColumns,
				roomID, month, year,
				merged.PreviousReading, merged.CurrentReading, merged.RatePerKwh,
				merged.WaterNumberOfPeople, merged.WaterFeePerHead,
				merged.InternetNumberOfDevices, merged.InternetFeePerDevice))
			if errors.Is(err, pgx.ErrNoRows) {
				return errInsertRace
			}
			if err != nil {
				return fmt.Errorf("failed to insert meter reading: %w", translateError(err))
			}
			created = true
			return nil
		}

		result, err = scanMeterReading(tx.QueryRow(ctx, `
			UPDATE meter_readings
			SET previous_reading = $2,
				current_reading = $3,
				rate_per_kwh = $4,
				water_number_of_people = $5,
				water_fee_per_head = $6,
				internet_number_of_devices = $7,
				internet_fee_per_device = $8,
				updated_at = NOW()
			WHERE id = $1
			RETURNING `+meterReadingColumns,
			stored.ID,
			merged.PreviousReading, merged.CurrentReading, merged.RatePerKwh,
			merged.WaterNumberOfPeople, merged.WaterFeePerHead,
			merged.InternetNumberOfDevices, merged.InternetFeePerDevice))
		if err != nil {
			return fmt.Errorf("failed to update meter reading %d: %w", stored.ID, translateError(err))
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return result, created, nil
}
