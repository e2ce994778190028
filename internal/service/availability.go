package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"churchcms/internal/domain"
	"churchcms/internal/repository"
)

type AvailabilityConfig struct {
	WindowDays int
	// Location is the wall clock schedules are written in.
	Location *time.Location
}

type AvailabilityServiceImpl struct {
	counsellorRepo repository.CounsellorRepository
	scheduleRepo   repository.ScheduleRepository
	bookingRepo    repository.BookingRepository
	cfg            AvailabilityConfig
	now            func() time.Time
	logger         *zap.Logger
}

func NewAvailabilityService(
	counsellorRepo repository.CounsellorRepository,
	scheduleRepo repository.ScheduleRepository,
	bookingRepo repository.BookingRepository,
	cfg AvailabilityConfig,
	now func() time.Time,
	logger *zap.Logger,
) *AvailabilityServiceImpl {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = 28
	}
	return &AvailabilityServiceImpl{
		counsellorRepo: counsellorRepo,
		scheduleRepo:   scheduleRepo,
		bookingRepo:    bookingRepo,
		cfg:            cfg,
		now:            now,
		logger:         logger,
	}
}

// SlotID is the stable identifier of a slot: <counsellorId>-<date>-<HHMM>.
func SlotID(counsellorID, date, clock string) string {
	return counsellorID + "-" + date + "-" + strings.ReplaceAll(clock, ":", "")
}

// Slots lists every slot in the booking window for the counsellor and
// modality, including ones already taken or in the past.
func (s *AvailabilityServiceImpl) Slots(ctx context.Context, counsellorID string, bookingType domain.BookingType) ([]domain.TimeSlot, error) {
	if !bookingType.IsValid() {
		return nil, &domain.ValidationError{Fields: map[string]string{
			"bookingType": "Booking type must be online or in-person",
		}}
	}

	counsellor, err := s.counsellorRepo.GetByID(ctx, counsellorID)
	if err != nil {
		return nil, err
	}
	if !counsellor.IsActive {
		return nil, domain.ErrCounsellorNotFound
	}
	if !counsellor.Supports(bookingType) {
		return []domain.TimeSlot{}, nil
	}

	now := s.now().In(s.cfg.Location)
	y, m, d := now.Date()
	// DATE columns compare on the calendar day, so the bounds carry no zone.
	from := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, s.cfg.WindowDays)

	schedules, err := s.scheduleRepo.ListForRange(ctx, counsellorID, from, to)
	if err != nil {
		s.logger.Error("failed to load schedules", zap.String("counsellorId", counsellorID), zap.Error(err))
		return nil, fmt.Errorf("load schedules: %w", err)
	}

	booked, err := s.bookingRepo.BookedTimes(ctx, counsellorID, from, to)
	if err != nil {
		s.logger.Error("failed to load booked times", zap.String("counsellorId", counsellorID), zap.Error(err))
		return nil, fmt.Errorf("load booked times: %w", err)
	}

	return GenerateSlots(counsellorID, bookingType, schedules, booked, now), nil
}

// GenerateSlots cuts schedules into slots. A slot must end by the schedule's
// end time. Slots already booked or starting before now are marked
// unavailable. The result is ordered by date, then start time.
func GenerateSlots(
	counsellorID string,
	bookingType domain.BookingType,
	schedules []domain.Schedule,
	booked map[string][]string,
	now time.Time,
) []domain.TimeSlot {
	loc := now.Location()

	taken := make(map[string]bool)
	for date, times := range booked {
		for _, t := range times {
			taken[date+" "+t] = true
		}
	}

	seen := make(map[string]bool)
	slots := make([]domain.TimeSlot, 0)

	for _, sch := range schedules {
		if !sch.Serves(bookingType) || sch.SlotMinutes <= 0 {
			continue
		}

		date := sch.Date.Format(domain.DateLayout)
		day, err := time.ParseInLocation(domain.DateLayout, date, loc)
		if err != nil {
			continue
		}
		start, err := time.Parse(domain.TimeLayout, sch.StartTime)
		if err != nil {
			continue
		}
		end, err := time.Parse(domain.TimeLayout, sch.EndTime)
		if err != nil {
			continue
		}

		excluded := make(map[string]bool, len(sch.ExcludeTimes))
		for _, t := range sch.ExcludeTimes {
			excluded[t] = true
		}

		step := time.Duration(sch.SlotMinutes) * time.Minute
		for cur := start; !cur.Add(step).After(end); cur = cur.Add(step) {
			clock := cur.Format(domain.TimeLayout)
			if excluded[clock] {
				continue
			}

			id := SlotID(counsellorID, date, clock)
			if seen[id] {
				continue
			}
			seen[id] = true

			startsAt := day.Add(time.Duration(cur.Hour())*time.Hour + time.Duration(cur.Minute())*time.Minute)

			slots = append(slots, domain.TimeSlot{
				ID:          id,
				Date:        date,
				StartTime:   clock,
				EndTime:     cur.Add(step).Format(domain.TimeLayout),
				IsAvailable: !taken[date+" "+clock] && startsAt.After(now),
			})
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Date != slots[j].Date {
			return slots[i].Date < slots[j].Date
		}
		return slots[i].StartTime < slots[j].StartTime
	})

	return slots
}

// FindSlot returns the slot starting at date/clock if it is bookable now, or
// domain.ErrSlotUnavailable.
func (s *AvailabilityServiceImpl) FindSlot(ctx context.Context, counsellorID string, bookingType domain.BookingType, date, clock string) (*domain.TimeSlot, error) {
	slots, err := s.Slots(ctx, counsellorID, bookingType)
	if err != nil {
		return nil, err
	}

	id := SlotID(counsellorID, date, clock)
	for i := range slots {
		if slots[i].ID == id {
			if !slots[i].IsAvailable {
				return nil, domain.ErrSlotUnavailable
			}
			return &slots[i], nil
		}
	}

	return nil, domain.ErrSlotUnavailable
}
