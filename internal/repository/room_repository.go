package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stwalsh4118/room4rent/internal/database"
	"github.com/stwalsh4118/room4rent/internal/models"
)

// RoomRepository defines data access for rooms.
type RoomRepository interface {
	// List returns all rooms ordered by name.
	List(ctx context.Context) ([]models.Room, error)
	// FindByID returns nil, nil when the room does not exist.
	FindByID(ctx context.Context, id int64) (*models.Room, error)
	// Create inserts the room and fills in ID and CreatedAt.
	// Returns ErrUniqueViolation for a duplicate name.
	Create(ctx context.Context, room *models.Room) error
	// Update overwrites the mutable columns. Returns nil, nil when the room
	// does not exist.
	Update(ctx context.Context, room models.Room) (*models.Room, error)
	// Delete removes the room, reporting whether a row was deleted.
	Delete(ctx context.Context, id int64) (bool, error)
	// CountTenants counts tenants, past and present, referencing the room.
	CountTenants(ctx context.Context, id int64) (int, error)
	// CountByStatus returns the number of occupied and vacant rooms.
	CountByStatus(ctx context.Context) (occupied, vacant int, err error)
}

type roomRepository struct {
	db *database.Database
}

// NewRoomRepository creates a new instance of RoomRepository.
func NewRoomRepository(db *database.Database) RoomRepository {
	return &roomRepository{db: db}
}

const roomColumns = `id, room_name, base_rent, internet_fee, status, created_at`

func scanRoom(row pgx.Row) (*models.Room, error) {
	var room models.Room
	err := row.Scan(
		&room.ID,
		&room.RoomName,
		&room.BaseRent,
		&room.InternetFee,
		&room.Status,
		&room.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) List(ctx context.Context) ([]models.Room, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+roomColumns+` FROM rooms ORDER BY room_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	defer rows.Close()

	rooms := []models.Room{}
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room row: %w", err)
		}
		rooms = append(rooms, *room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating room rows: %w", err)
	}
	return rooms, nil
}

func (r *roomRepository) FindByID(ctx context.Context, id int64) (*models.Room, error) {
	room, err := scanRoom(r.db.Pool.QueryRow(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query room %d: %w", id, err)
	}
	return room, nil
}

func (r *roomRepository) Create(ctx context.Context, room *models.Room) error {
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO rooms (room_name, base_rent, internet_fee, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, room.RoomName, room.BaseRent, room.InternetFee, room.Status).Scan(&room.ID, &room.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert room: %w", translateError(err))
	}
	return nil
}

func (r *roomRepository) Update(ctx context.Context, room models.Room) (*models.Room, error) {
	updated, err := scanRoom(r.db.Pool.QueryRow(ctx, `
		UPDATE rooms
		SET room_name = $2, base_rent = $3, internet_fee = $4, status = $5
		WHERE id = $1
		RETURNING `+roomColumns,
		room.ID, room.RoomName, room.BaseRent, room.InternetFee, room.Status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update room %d: %w", room.ID, translateError(err))
	}
	return updated, nil
}

func (r *roomRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete room %d: %w", id, translateError(err))
	}
	return tag.RowsAffected() > 0, nil
}

func (r *roomRepository) CountTenants(ctx context.Context, id int64) (int, error) {
	var count int
	if err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM tenants WHERE room_id = $1`, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tenants for room %d: %w", id, err)
	}
	return count, nil
}

func (r *roomRepository) CountByStatus(ctx context.Context) (int, int, error) {
	var occupied, vacant int
	err := r.db.Pool.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status = 'occupied'),
			COUNT(*) FILTER (WHERE status = 'vacant')
		FROM rooms
	`).Scan(&occupied, &vacant)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count rooms by status: %w", err)
	}
	return occupied, vacant, nil
}
