package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/stwalsh4118/room4rent/internal/billing"
	"github.com/stwalsh4118/room4rent/internal/logger"
	"github.com/stwalsh4118/room4rent/internal/models"
	"github.com/stwalsh4118/room4rent/internal/repository"
)

// RoomService defines room management operations.
type RoomService interface {
	List(ctx context.Context) ([]models.Room, error)
	// Get returns ErrNotFound when the room does not exist.
	Get(ctx context.Context, id int64) (*models.Room, error)
	// Create returns ErrConflict for a duplicate name.
	Create(ctx context.Context, room models.Room) (*models.Room, error)
	// Update applies a partial update.
	Update(ctx context.Context, id int64, patch models.RoomPatch) (*models.Room, error)
	// Delete refuses rooms that still have tenants with ErrInvalidArgument.
	Delete(ctx context.Context, id int64) error
}

type roomService struct {
	repo repository.RoomRepository
	log  *logger.Logger
}

// NewRoomService creates a new instance of RoomService.
func NewRoomService(repo repository.RoomRepository, log *logger.Logger) RoomService {
	return &roomService{repo: repo, log: log.Component("rooms")}
}

func (s *roomService) List(ctx context.Context) ([]models.Room, error) {
	rooms, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("Failed to list rooms", err, nil)
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (s *roomService) Get(ctx context.Context, id int64) (*models.Room, error) {
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to query room", err, map[string]interface{}{"room_id": id})
		return nil, fmt.Errorf("failed to query room: %w", err)
	}
	if room == nil {
		return nil, notFound("room", id)
	}
	return room, nil
}

func validateRoom(room models.Room) error {
	if strings.TrimSpace(room.RoomName) == "" {
		return fmt.Errorf("%w: room_name is required", ErrInvalidArgument)
	}
	if room.BaseRent.IsNegative() {
		return fmt.Errorf("%w: base_rent cannot be negative", ErrInvalidArgument)
	}
	if room.InternetFee.IsNegative() {
		return fmt.Errorf("%w: internet_fee cannot be negative", ErrInvalidArgument)
	}
	if err := billing.CheckAmount("base_rent", room.BaseRent); err != nil {
		return invalid(err)
	}
	if err := billing.CheckAmount("internet_fee", room.InternetFee); err != nil {
		return invalid(err)
	}
	if !room.Status.IsValid() {
		return fmt.Errorf("%w: status must be vacant or occupied, got %q", ErrInvalidArgument, room.Status)
	}
	return nil
}

func (s *roomService) Create(ctx context.Context, room models.Room) (*models.Room, error) {
	room.RoomName = strings.TrimSpace(room.RoomName)
	if room.Status == "" {
		room.Status = models.RoomStatusVacant
	}

	if err := validateRoom(room); err != nil {
		s.log.Warn("Invalid room rejected", map[string]interface{}{"room_name": room.RoomName, "error": err.Error()})
		return nil, err
	}

	if err := s.repo.Create(ctx, &room); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: room %q already exists", ErrConflict, room.RoomName)
		}
		s.log.Error("Failed to create room", err, map[string]interface{}{"room_name": room.RoomName})
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	s.log.Info("Room created", map[string]interface{}{"room_id": room.ID, "room_name": room.RoomName})
	return &room, nil
}

func (s *roomService) Update(ctx context.Context, id int64, patch models.RoomPatch) (*models.Room, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return current, nil
	}

	updated := patch.Apply(*current)
	updated.RoomName = strings.TrimSpace(updated.RoomName)
	if err := validateRoom(updated); err != nil {
		s.log.Warn("Invalid room update rejected", map[string]interface{}{"room_id": id, "error": err.Error()})
		return nil, err
	}

	room, err := s.repo.Update(ctx, updated)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: room %q already exists", ErrConflict, updated.RoomName)
		}
		s.log.Error("Failed to update room", err, map[string]interface{}{"room_id": id})
		return nil, fmt.Errorf("failed to update room: %w", err)
	}
	if room == nil {
		return nil, notFound("room", id)
	}

	s.log.Info("Room updated", map[string]interface{}{"room_id": id})
	return room, nil
}

func (s *roomService) Delete(ctx context.Context, id int64) error {
	tenants, err := s.repo.CountTenants(ctx, id)
	if err != nil {
		s.log.Error("Failed to count room tenants", err, map[string]interface{}{"room_id": id})
		return fmt.Errorf("failed to delete room: %w", err)
	}
	if tenants > 0 {
		return fmt.Errorf("%w: room %d has %d tenant record(s)", ErrInvalidArgument, id, tenants)
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Error("Failed to delete room", err, map[string]interface{}{"room_id": id})
		return fmt.Errorf("failed to delete room: %w", err)
	}
	if !deleted {
		return notFound("room", id)
	}

	s.log.Info("Room deleted", map[string]interface{}{"room_id": id})
	return nil
}
