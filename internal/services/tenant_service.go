package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/stwalsh4118/room4rent/internal/auth"
	"github.com/stwalsh4118/room4rent/internal/logger"
	"github.com/stwalsh4118/room4rent/internal/models"
	"github.com/stwalsh4118/room4rent/internal/repository"
)

// CreateTenantInput describes a new tenant and their login account.
type CreateTenantInput struct {
	MoveInDate        models.Date
	ContactNumber     *string
	Name              string
	Email             string
	Password          string
	RoomID            int64
	NumberOfOccupants int
}

// TenantService defines tenant management operations.
type TenantService interface {
	// ListActive returns tenants that have not moved out.
	ListActive(ctx context.Context) ([]models.TenantDetails, error)
	// Get returns ErrNotFound when the tenant does not exist.
	Get(ctx context.Context, id int64) (*models.TenantDetails, error)
	// GetByUserID returns the user's active tenancy or ErrNotFound.
	GetByUserID(ctx context.Context, userID int64) (*models.TenantDetails, error)
	// Create registers the tenant user and assigns them to the room, which
	// becomes occupied.
	Create(ctx context.Context, in CreateTenantInput) (*models.Tenant, error)
	// Update applies a partial update. Setting a move-out date vacates the room.
	Update(ctx context.Context, id int64, patch models.TenantPatch) (*models.Tenant, error)
	// Remove moves the tenant out today and vacates the room.
	Remove(ctx context.Context, id int64) (*models.Tenant, error)
}

type tenantService struct {
	repo  repository.TenantRepository
	rooms repository.RoomRepository
	log   *logger.Logger
	now   func() time.Time
}

// NewTenantService creates a new instance of TenantService.
func NewTenantService(repo repository.TenantRepository, rooms repository.RoomRepository, log *logger.Logger) TenantService {
	return &tenantService{
		repo:  repo,
		rooms: rooms,
		log:   log.Component("tenants"),
		now:   time.Now,
	}
}

func (s *tenantService) ListActive(ctx context.Context) ([]models.TenantDetails, error) {
	tenants, err := s.repo.ListActive(ctx)
	if err != nil {
		s.log.Error("Failed to list tenants", err, nil)
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	return tenants, nil
}

func (s *tenantService) Get(ctx context.Context, id int64) (*models.TenantDetails, error) {
	tenant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to query tenant", err, map[string]interface{}{"tenant_id": id})
		return nil, fmt.Errorf("failed to query tenant: %w", err)
	}
	if tenant == nil {
		return nil, notFound("tenant", id)
	}
	return tenant, nil
}

func (s *tenantService) GetByUserID(ctx context.Context, userID int64) (*models.TenantDetails, error) {
	tenant, err := s.repo.FindActiveByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to query tenant by user", err, map[string]interface{}{"user_id": userID})
		return nil, fmt.Errorf("failed to query tenant: %w", err)
	}
	if tenant == nil {
		return nil, fmt.Errorf("%w: no active tenancy for user %d", ErrNotFound, userID)
	}
	return tenant, nil
}

func (s *tenantService) Create(ctx context.Context, in CreateTenantInput) (*models.Tenant, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.NumberOfOccupants == 0 {
		in.NumberOfOccupants = 1
	}

	switch {
	case in.Name == "":
		return nil, fmt.Errorf("%w: name is required", ErrInvalidArgument)
	case in.RoomID <= 0:
		return nil, fmt.Errorf("%w: room_id is required", ErrInvalidArgument)
	case in.MoveInDate.IsZero():
		return nil, fmt.Errorf("%w: move_in_date is required", ErrInvalidArgument)
	case in.NumberOfOccupants < 1:
		return nil, fmt.Errorf("%w: number_of_occupants must be at least 1", ErrInvalidArgument)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, fmt.Errorf("%w: email %q is not valid", ErrInvalidArgument, in.Email)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	room, err := s.rooms.FindByID(ctx, in.RoomID)
	if err != nil {
		s.log.Error("Failed to query room", err, map[string]interface{}{"room_id": in.RoomID})
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}
	if room == nil {
		return nil, notFound("room", in.RoomID)
	}

	tenant, err := s.repo.Create(ctx, models.NewTenant{
		MoveInDate:        in.MoveInDate,
		ContactNumber:     in.ContactNumber,
		Name:              in.Name,
		Email:             in.Email,
		PasswordHash:      hash,
		RoomID:            in.RoomID,
		NumberOfOccupants: in.NumberOfOccupants,
	})
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return nil, fmt.Errorf("%w: email %q is already registered", ErrConflict, in.Email)
		case errors.Is(err, repository.ErrForeignKeyViolation):
			return nil, notFound("room", in.RoomID)
		}
		s.log.Error("Failed to create tenant", err, map[string]interface{}{"room_id": in.RoomID})
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	s.log.Info("Tenant created", map[string]interface{}{
		"tenant_id": tenant.ID,
		"room_id":   tenant.RoomID,
	})
	return tenant, nil
}

func (s *tenantService) Update(ctx context.Context, id int64, patch models.TenantPatch) (*models.Tenant, error) {
	if patch.NumberOfOccupants != nil && *patch.NumberOfOccupants < 1 {
		return nil, fmt.Errorf("%w: number_of_occupants must be at least 1", ErrInvalidArgument)
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := patch.Apply(current.Tenant)
	if updated.MoveOutDate != nil && updated.MoveOutDate.Before(updated.MoveInDate.Time) {
		return nil, fmt.Errorf("%w: move_out_date cannot be before move_in_date", ErrInvalidArgument)
	}

	tenant, err := s.repo.Update(ctx, updated)
	if err != nil {
		s.log.Error("Failed to update tenant", err, map[string]interface{}{"tenant_id": id})
		return nil, fmt.Errorf("failed to update tenant: %w", err)
	}
	if tenant == nil {
		return nil, notFound("tenant", id)
	}

	s.log.Info("Tenant updated", map[string]interface{}{"tenant_id": id, "active": tenant.IsActive()})
	return tenant, nil
}

func (s *tenantService) Remove(ctx context.Context, id int64) (*models.Tenant, error) {
	tenant, err := s.repo.MoveOut(ctx, id, models.DateOf(s.now()))
	if err != nil {
		s.log.Error("Failed to remove tenant", err, map[string]interface{}{"tenant_id": id})
		return nil, fmt.Errorf("failed to remove tenant: %w", err)
	}
	if tenant == nil {
		return nil, notFound("tenant", id)
	}

	s.log.Info("Tenant moved out", map[string]interface{}{"tenant_id": id, "room_id": tenant.RoomID})
	return tenant, nil
}
