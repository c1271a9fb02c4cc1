package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/stwalsh4118/room4rent/internal/logger"
	"github.com/stwalsh4118/room4rent/internal/models"
	"github.com/stwalsh4118/room4rent/internal/repository"
)

// AnnouncementService defines announcement CRUD.
type AnnouncementService interface {
	List(ctx context.Context) ([]models.Announcement, error)
	Get(ctx context.Context, id int64) (*models.Announcement, error)
	Create(ctx context.Context, title, content string) (*models.Announcement, error)
	Update(ctx context.Context, id int64, patch models.AnnouncementPatch) (*models.Announcement, error)
	Delete(ctx context.Context, id int64) error
}

type announcementService struct {
	repo repository.AnnouncementRepository
	log  *logger.Logger
}

// NewAnnouncementService creates a new instance of AnnouncementService.
func NewAnnouncementService(repo repository.AnnouncementRepository, log *logger.Logger) AnnouncementService {
	return &announcementService{repo: repo, log: log.Component("announcements")}
}

func (s *announcementService) List(ctx context.Context) ([]models.Announcement, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("Failed to list announcements", err, nil)
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return list, nil
}

func (s *announcementService) Get(ctx context.Context, id int64) (*models.Announcement, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to query announcement", err, map[string]interface{}{"announcement_id": id})
		return nil, fmt.Errorf("failed to query announcement: %w", err)
	}
	if a == nil {
		return nil, notFound("announcement", id)
	}
	return a, nil
}

func (s *announcementService) Create(ctx context.Context, title, content string) (*models.Announcement, error) {
	a := &models.Announcement{Title: strings.TrimSpace(title), Content: strings.TrimSpace(content)}
	if a.Title == "" || a.Content == "" {
		return nil, fmt.Errorf("%w: title and content are required", ErrInvalidArgument)
	}

	if err := s.repo.Create(ctx, a); err != nil {
		s.log.Error("Failed to create announcement", err, nil)
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}

	s.log.Info("Announcement created", map[string]interface{}{"announcement_id": a.ID})
	return a, nil
}

func (s *announcementService) Update(ctx context.Context, id int64, patch models.AnnouncementPatch) (*models.Announcement, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", ErrInvalidArgument)
	}
	if patch.Content != nil && strings.TrimSpace(*patch.Content) == "" {
		return nil, fmt.Errorf("%w: content cannot be empty", ErrInvalidArgument)
	}

	a, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		s.log.Error("Failed to update announcement", err, map[string]interface{}{"announcement_id": id})
		return nil, fmt.Errorf("failed to update announcement: %w", err)
	}
	if a == nil {
		return nil, notFound("announcement", id)
	}
	return a, nil
}

func (s *announcementService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Error("Failed to delete announcement", err, map[string]interface{}{"announcement_id": id})
		return fmt.Errorf("failed to delete announcement: %w", err)
	}
	if !deleted {
		return notFound("announcement", id)
	}

	s.log.Info("Announcement deleted", map[string]interface{}{"announcement_id": id})
	return nil
}
