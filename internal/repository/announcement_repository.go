package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stwalsh4118/room4rent/internal/database"
	"github.com/stwalsh4118/room4rent/internal/models"
)

// AnnouncementRepository defines data access for announcements.
type AnnouncementRepository interface {
	List(ctx context.Context) ([]models.Announcement, error)
	// FindByID returns nil, nil when the announcement does not exist.
	FindByID(ctx context.Context, id int64) (*models.Announcement, error)
	Create(ctx context.Context, a *models.Announcement) error
	// Update returns nil, nil when the announcement does not exist.
	Update(ctx context.Context, id int64, patch models.AnnouncementPatch) (*models.Announcement, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type announcementRepository struct {
	db *database.Database
}

// NewAnnouncementRepository creates a new instance of AnnouncementRepository.
func NewAnnouncementRepository(db *database.Database) AnnouncementRepository {
	return &announcementRepository{db: db}
}

const announcementColumns = `id, title, content, created_at`

func scanAnnouncement(row pgx.Row) (*models.Announcement, error) {
	var a models.Announcement
	if err := row.Scan(&a.ID, &a.Title, &a.Content, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *announcementRepository) List(ctx context.Context) ([]models.Announcement, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+announcementColumns+` FROM announcements ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query announcements: %w", err)
	}
	defer rows.Close()

	list := []models.Announcement{}
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan announcement row: %w", err)
		}
		list = append(list, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating announcement rows: %w", err)
	}
	return list, nil
}

func (r *announcementRepository) FindByID(ctx context.Context, id int64) (*models.Announcement, error) {
	a, err := scanAnnouncement(r.db.Pool.QueryRow(ctx,
		`SELECT `+announcementColumns+` FROM announcements WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query announcement %d: %w", id, err)
	}
	return a, nil
}

func (r *announcementRepository) Create(ctx context.Context, a *models.Announcement) error {
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO announcements (title, content) VALUES ($1, $2) RETURNING id, created_at`,
		a.Title, a.Content,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert announcement: %w", err)
	}
	return nil
}

func (r *announcementRepository) Update(ctx context.Context, id int64, patch models.AnnouncementPatch) (*models.Announcement, error) {
	a, err := scanAnnouncement(r.db.Pool.QueryRow(ctx, `
		UPDATE announcements
		SET title = COALESCE($2, title), content = COALESCE($3, content)
		WHERE id = $1
		RETURNING `+announcementColumns, id, patch.Title, patch.Content))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update announcement %d: %w", id, err)
	}
	return a, nil
}

func (r *announcementRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete announcement %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}
