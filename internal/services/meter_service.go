package services

import (
	"context"
	"fmt"

	"github.com/stwalsh4118/room4rent/internal/billing"
	"github.com/stwalsh4118/room4rent/internal/logger"
	"github.com/stwalsh4118/room4rent/internal/metrics"
	"github.com/stwalsh4118/room4rent/internal/models"
	"github.com/stwalsh4118/room4rent/internal/repository"
)

// MeterReadingInput is a meter reading submission for one room and period.
type MeterReadingInput struct {
	Patch  models.MeterReadingPatch
	RoomID int64
	Month  int
	Year   int
}

// MeterService defines the meter reading store operations.
type MeterService interface {
	// ListByRoom returns a room's readings, newest period first.
	ListByRoom(ctx context.Context, roomID int64) ([]models.MeterReading, error)
	// Upsert creates the period's reading or merges the submission into it.
	// Omitted fields keep their stored values. Invalid submissions fail with
	// ErrInvalidArgument and leave the stored reading untouched.
	Upsert(ctx context.Context, in MeterReadingInput) (reading *models.MeterReading, created bool, err error)
}

type meterService struct {
	repo  repository.MeterReadingRepository
	rooms repository.RoomRepository
	log   *logger.Logger
}

// NewMeterService creates a new instance of MeterService.
func NewMeterService(repo repository.MeterReadingRepository, rooms repository.RoomRepository, log *logger.Logger) MeterService {
	return &meterService{repo: repo, rooms: rooms, log: log.Component("meter")}
}

func (s *meterService) ListByRoom(ctx context.Context, roomID int64) ([]models.MeterReading, error) {
	readings, err := s.repo.ListByRoom(ctx, roomID)
	if err != nil {
		s.log.Error("Failed to list meter readings", err, map[string]interface{}{"room_id": roomID})
		return nil, fmt.Errorf("failed to list meter readings: %w", err)
	}
	return readings, nil
}

func (s *meterService) Upsert(ctx context.Context, in MeterReadingInput) (*models.MeterReading, bool, error) {
	fields := map[string]interface{}{
		"room_id": in.RoomID,
		"month":   in.Month,
		"year":    in.Year,
	}

	if in.RoomID <= 0 {
		return nil, false, fmt.Errorf("%w: room_id is required", ErrInvalidArgument)
	}
	if err := billing.ValidatePeriod(in.Month, in.Year); err != nil {
		s.log.Warn("Meter reading rejected", withError(fields, err))
		return nil, false, invalid(err)
	}
	if err := billing.ValidatePatch(in.Patch); err != nil {
		s.log.Warn("Meter reading rejected", withError(fields, err))
		return nil, false, invalid(err)
	}

	room, err := s.rooms.FindByID(ctx, in.RoomID)
	if err != nil {
		s.log.Error("Failed to query room", err, fields)
		return nil, false, fmt.Errorf("failed to save meter reading: %w", err)
	}
	if room == nil {
		return nil, false, notFound("room", in.RoomID)
	}

	reading, created, err := s.repo.Upsert(ctx, in.RoomID, in.Month, in.Year,
		func(stored models.MeterReading) (models.MeterReading, error) {
			merged := in.Patch.Apply(stored)
			if err := billing.ValidateMerged(in.Patch, merged); err != nil {
				return stored, err
			}
			return merged, nil
		})
	if err != nil {
		if isValidationError(err) {
			s.log.Warn("Meter reading rejected", withError(fields, err))
			return nil, false, invalid(err)
		}
		s.log.Error("Failed to save meter reading", err, fields)
		return nil, false, fmt.Errorf("failed to save meter reading: %w", err)
	}

	metrics.ObserveMeterReading(created)
	fields["reading_id"] = reading.ID
	fields["created"] = created
	s.log.Info("Meter reading saved", fields)
	return reading, created, nil
}

func withError(fields map[string]interface{}, err error) map[string]interface{} {
	out := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["error"] = err.Error()
	return out
}
