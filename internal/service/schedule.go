package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"churchcms/internal/domain"
	"churchcms/internal/repository"
	"churchcms/pkg/validator"
)

const (
	minSlotMinutes = 10
	maxSlotMinutes = 240
)

type ScheduleServiceImpl struct {
	repo           repository.ScheduleRepository
	counsellorRepo repository.CounsellorRepository
	logger         *zap.Logger
}

func NewScheduleService(
	repo repository.ScheduleRepository,
	counsellorRepo repository.CounsellorRepository,
	logger *zap.Logger,
) *ScheduleServiceImpl {
	return &ScheduleServiceImpl{
		repo:           repo,
		counsellorRepo: counsellorRepo,
		logger:         logger,
	}
}

func (s *ScheduleServiceImpl) Create(ctx context.Context, dto domain.CreateScheduleDTO) (int64, error) {
	counsellor, err := s.counsellorRepo.GetByID(ctx, dto.CounsellorID)
	if err != nil {
		return 0, err
	}

	fields := make(map[string]string)

	date, err := time.Parse(domain.DateLayout, dto.Date)
	if err != nil {
		fields["date"] = "Date must be in YYYY-MM-DD format"
	}

	start, startErr := time.Parse(domain.TimeLayout, dto.StartTime)
	if startErr != nil {
		fields["startTime"] = "Start time must be in HH:MM format"
	}
	end, endErr := time.Parse(domain.TimeLayout, dto.EndTime)
	if endErr != nil {
		fields["endTime"] = "End time must be in HH:MM format"
	}
	if startErr == nil && endErr == nil && !start.Before(end) {
		fields["endTime"] = "End time must be after start time"
	}

	if dto.SlotMinutes < minSlotMinutes || dto.SlotMinutes > maxSlotMinutes {
		fields["slotMinutes"] = fmt.Sprintf("Slot length must be between %d and %d minutes", minSlotMinutes, maxSlotMinutes)
	}

	for _, t := range dto.ExcludeTimes {
		if !validator.ValidateClock(t) {
			fields["excludeTimes"] = "Excluded times must be in HH:MM format"
			break
		}
	}

	switch dto.BookingType {
	case domain.BookingTypeOnline, domain.BookingTypeInPerson:
		if !counsellor.Supports(dto.BookingType) {
			fields["bookingType"] = "Counsellor does not offer this session type"
		}
	case domain.BookingTypeBoth:
		if !counsellor.IsOnline || !counsellor.IsInPerson {
			fields["bookingType"] = "Counsellor does not offer both session types"
		}
	default:
		fields["bookingType"] = "Booking type must be online, in-person or both"
	}

	if len(fields) > 0 {
		return 0, &domain.ValidationError{Fields: fields}
	}

	now := time.Now()
	schedule := domain.Schedule{
		CounsellorID: dto.CounsellorID,
		Date:         date,
		StartTime:    dto.StartTime,
		EndTime:      dto.EndTime,
		SlotMinutes:  dto.SlotMinutes,
		BookingType:  dto.BookingType,
		ExcludeTimes: dto.ExcludeTimes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, err := s.repo.Create(ctx, schedule)
	if err != nil {
		s.logger.Error("failed to create schedule", zap.String("counsellorId", dto.CounsellorID), zap.Error(err))
		return 0, fmt.Errorf("create schedule: %w", err)
	}

	return id, nil
}

func (s *ScheduleServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	schedule, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("failed to get schedule", zap.Int64("id", id), zap.Error(err))
		}
		return nil, err
	}
	return schedule, nil
}

func (s *ScheduleServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("failed to delete schedule", zap.Int64("id", id), zap.Error(err))
		}
		return err
	}
	return nil
}

func (s *ScheduleServiceImpl) List(ctx context.Context, filter domain.ScheduleFilter) ([]domain.Schedule, int, error) {
	schedules, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list schedules", zap.Error(err))
		return nil, 0, fmt.Errorf("list schedules: %w", err)
	}
	return schedules, total, nil
}
