package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"churchcms/internal/bookingflow"
	"churchcms/internal/domain"
	"churchcms/internal/events"
	"churchcms/internal/notify"
	"churchcms/internal/repository"
	"churchcms/pkg/validator"
)

const (
	minSessionMinutes    = 15
	maxSessionMinutes    = 180
	maxIdempotencyKeyLen = 255
)

type BookingDeps struct {
	Bookings       repository.BookingRepository
	Idempotency    repository.IdempotencyRepository
	Counsellors    repository.CounsellorRepository
	Availability   AvailabilityService
	Dispatcher     notify.Dispatcher
	Meetings       *notify.MeetingLinks
	Events         events.Publisher
	IdempotencyTTL time.Duration
	Clock          func() time.Time
	Logger         *zap.Logger
}

type BookingServiceImpl struct {
	repo           repository.BookingRepository
	idempotency    repository.IdempotencyRepository
	counsellorRepo repository.CounsellorRepository
	availability   AvailabilityService
	dispatcher     notify.Dispatcher
	meetings       *notify.MeetingLinks
	events         events.Publisher
	idempotencyTTL time.Duration
	now            func() time.Time
	logger         *zap.Logger
}

func NewBookingService(deps BookingDeps) *BookingServiceImpl {
	s := &BookingServiceImpl{
		repo:           deps.Bookings,
		idempotency:    deps.Idempotency,
		counsellorRepo: deps.Counsellors,
		availability:   deps.Availability,
		dispatcher:     deps.Dispatcher,
		meetings:       deps.Meetings,
		events:         deps.Events,
		idempotencyTTL: deps.IdempotencyTTL,
		now:            deps.Clock,
		logger:         deps.Logger,
	}
	if s.events == nil {
		s.events = events.NoopPublisher{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.idempotencyTTL <= 0 {
		s.idempotencyTTL = 24 * time.Hour
	}
	return s
}

// NewConfirmationNumber returns an id of the form CN-YYYYMMDD-XXXXXX.
func NewConfirmationNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return "CN-" + now.Format("20060102") + "-" + suffix
}

// FieldOrder is the order validation messages are reported in.
func FieldOrder() []string {
	order := make([]string, 0, len(bookingflow.FieldOrder)+1)
	for _, f := range bookingflow.FieldOrder {
		order = append(order, string(f))
	}
	return append(order, "idempotencyKey")
}

// ValidateBooking applies the wizard's per-step rules plus the format checks
// only the server can enforce.
func ValidateBooking(form domain.BookingFormData, idempotencyKey string) *domain.ValidationError {
	fields := make(map[string]string)

	for _, step := range []bookingflow.Step{bookingflow.StepCounsellor, bookingflow.StepDateTime, bookingflow.StepDetails} {
		for f, msg := range bookingflow.Validate(step, form) {
			fields[string(f)] = msg
		}
	}

	if !form.BookingType.IsValid() {
		fields[string(bookingflow.FieldBookingType)] = "Booking type must be online or in-person"
	}
	if form.PreferredDate != "" && !validator.ValidateDate(form.PreferredDate) {
		fields[string(bookingflow.FieldPreferredDate)] = "Date must be in YYYY-MM-DD format"
	}
	if form.PreferredTime != "" && !validator.ValidateClock(form.PreferredTime) {
		fields[string(bookingflow.FieldPreferredTime)] = "Time must be in HH:MM format"
	}
	if form.Phone != "" && !validator.ValidatePhone(form.Phone) {
		fields[string(bookingflow.FieldPhone)] = "Please enter a valid phone number"
	}
	if form.SessionDuration != 0 && (form.SessionDuration < minSessionMinutes || form.SessionDuration > maxSessionMinutes) {
		fields[string(bookingflow.FieldSessionDuration)] = fmt.Sprintf("Session duration must be between %d and %d minutes", minSessionMinutes, maxSessionMinutes)
	}
	if len(idempotencyKey) > maxIdempotencyKeyLen {
		fields["idempotencyKey"] = "Idempotency key is too long"
	}

	if len(fields) == 0 {
		return nil
	}
	return &domain.ValidationError{Fields: fields}
}

func normalizeForm(form domain.BookingFormData) domain.BookingFormData {
	form.FirstName = validator.FormatName(validator.SanitizeString(form.FirstName))
	form.LastName = validator.FormatName(validator.SanitizeString(form.LastName))
	form.Email = strings.TrimSpace(form.Email)
	form.Phone = strings.TrimSpace(form.Phone)
	form.Country = validator.SanitizeString(form.Country)
	form.City = validator.SanitizeString(form.City)
	form.Topic = validator.SanitizeString(form.Topic)
	form.Notes = strings.TrimSpace(form.Notes)
	if form.SessionDuration == 0 {
		form.SessionDuration = domain.DefaultSessionDuration
	}
	return form
}

// Create runs phase one of a booking: validate, claim the slot and persist.
// Phase two (meeting link, emails) is handed to the dispatcher and can never
// fail the booking. A request carrying an idempotency key that already
// produced a booking gets that booking back.
func (s *BookingServiceImpl) Create(ctx context.Context, req domain.CreateBookingRequest) (*domain.BookingResult, error) {
	key := strings.TrimSpace(req.IdempotencyKey)
	form := normalizeForm(req.BookingFormData)

	if verr := ValidateBooking(form, key); verr != nil {
		return nil, verr
	}

	if key != "" {
		if result, ok, err := s.replay(ctx, key); err != nil || ok {
			return result, err
		}
	}

	counsellor, err := s.counsellorRepo.GetByID(ctx, form.CounsellorID)
	if err != nil {
		if errors.Is(err, domain.ErrCounsellorNotFound) {
			return nil, err
		}
		s.logger.Error("failed to load counsellor for booking", zap.String("counsellorId", form.CounsellorID), zap.Error(err))
		return nil, fmt.Errorf("load counsellor: %w", err)
	}
	if !counsellor.IsActive {
		return nil, domain.ErrCounsellorNotFound
	}
	if !counsellor.Supports(form.BookingType) {
		return nil, domain.ErrModalityUnsupported
	}

	slot, err := s.availability.FindSlot(ctx, form.CounsellorID, form.BookingType, form.PreferredDate, form.PreferredTime)
	if err != nil {
		return nil, err
	}
	if exceedsSlot(*slot, form.SessionDuration) {
		return nil, &domain.ValidationError{Fields: map[string]string{
			string(bookingflow.FieldSessionDuration): "Session duration is longer than the selected time slot",
		}}
	}

	now := s.now()
	booking := domain.Booking{
		ConfirmationNumber: NewConfirmationNumber(now),
		Status:             domain.BookingStatusPending,
		NotificationStatus: domain.NotificationStatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
		BookingFormData:    form,
	}

	created, err := s.repo.Create(ctx, repository.NewBooking{
		Booking:        booking,
		IdempotencyKey: key,
		KeyExpiresAt:   now.Add(s.idempotencyTTL),
	})
	if err != nil {
		// A concurrent request with the same key may have won the race, in
		// which case its booking is the answer.
		if key != "" && (errors.Is(err, domain.ErrDuplicateRequest) || errors.Is(err, domain.ErrSlotUnavailable)) {
			if result, ok, lookupErr := s.replay(ctx, key); lookupErr == nil && ok {
				return result, nil
			}
		}
		if errors.Is(err, domain.ErrSlotUnavailable) || errors.Is(err, domain.ErrDuplicateRequest) {
			return nil, domain.ErrSlotUnavailable
		}
		s.logger.Error("failed to create booking", zap.String("counsellorId", form.CounsellorID), zap.Error(err))
		return nil, fmt.Errorf("create booking: %w", err)
	}
	created.CounsellorName = counsellor.Name

	s.logger.Info("booking created",
		zap.Int64("bookingId", created.ID),
		zap.String("confirmationNumber", created.ConfirmationNumber),
		zap.String("counsellorId", created.CounsellorID),
	)

	s.attachMeetingLink(ctx, created)
	s.afterCommit(ctx, created, events.BookingCreated)

	return &domain.BookingResult{
		ConfirmationNumber: created.ConfirmationNumber,
		Booking:            *created,
		MeetingURL:         created.MeetingURL,
	}, nil
}

func exceedsSlot(slot domain.TimeSlot, minutes int) bool {
	start, err1 := time.Parse(domain.TimeLayout, slot.StartTime)
	end, err2 := time.Parse(domain.TimeLayout, slot.EndTime)
	if err1 != nil || err2 != nil {
		return false
	}
	return time.Duration(minutes)*time.Minute > end.Sub(start)
}

// replay returns the booking previously created under key.
func (s *BookingServiceImpl) replay(ctx context.Context, key string) (*domain.BookingResult, bool, error) {
	bookingID, found, err := s.idempotency.Lookup(ctx, key)
	if err != nil {
		s.logger.Error("failed to look up idempotency key", zap.Error(err))
		return nil, false, fmt.Errorf("lookup idempotency key: %w", err)
	}
	if !found {
		return nil, false, nil
	}

	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		s.logger.Error("idempotency key points at a missing booking", zap.Int64("bookingId", bookingID), zap.Error(err))
		return nil, false, fmt.Errorf("load replayed booking: %w", err)
	}

	s.logger.Info("replayed booking for repeated idempotency key",
		zap.Int64("bookingId", booking.ID),
		zap.String("confirmationNumber", booking.ConfirmationNumber),
	)

	return &domain.BookingResult{
		ConfirmationNumber: booking.ConfirmationNumber,
		Booking:            *booking,
		MeetingURL:         booking.MeetingURL,
	}, true, nil
}

// attachMeetingLink gives online bookings their join URL before the response
// is sent. Failures only leave the link for phase two to fill in.
func (s *BookingServiceImpl) attachMeetingLink(ctx context.Context, b *domain.Booking) {
	if s.meetings == nil {
		return
	}
	link := s.meetings.For(ctx, *b)
	if link == "" {
		return
	}
	if err := s.repo.UpdateNotification(ctx, b.ID, link, b.NotificationStatus); err != nil {
		s.logger.Warn("failed to store meeting link", zap.Int64("bookingId", b.ID), zap.Error(err))
		return
	}
	b.MeetingURL = link
}

func (s *BookingServiceImpl) afterCommit(ctx context.Context, b *domain.Booking, subject string) {
	if s.dispatcher != nil && subject == events.BookingCreated {
		if err := s.dispatcher.Dispatch(ctx, b.ID); err != nil {
			s.logger.Warn("failed to dispatch booking notification", zap.Int64("bookingId", b.ID), zap.Error(err))
		}
	}

	if err := s.events.Publish(ctx, subject, events.NewBookingEvent(*b, s.now())); err != nil {
		s.logger.Warn("failed to publish booking event", zap.String("subject", subject), zap.Int64("bookingId", b.ID), zap.Error(err))
	}
}

func (s *BookingServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("failed to get booking", zap.Int64("id", id), zap.Error(err))
		}
		return nil, err
	}
	return booking, nil
}

func (s *BookingServiceImpl) GetByConfirmationNumber(ctx context.Context, number string) (*domain.Booking, error) {
	booking, err := s.repo.GetByConfirmationNumber(ctx, strings.ToUpper(strings.TrimSpace(number)))
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("failed to get booking", zap.String("confirmationNumber", number), zap.Error(err))
		}
		return nil, err
	}
	return booking, nil
}

func (s *BookingServiceImpl) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, int, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, 0, &domain.ValidationError{Fields: map[string]string{"status": "Unknown booking status"}}
	}
	if filter.StartDate != nil && !validator.ValidateDate(*filter.StartDate) {
		return nil, 0, &domain.ValidationError{Fields: map[string]string{"startDate": "Date must be in YYYY-MM-DD format"}}
	}
	if filter.EndDate != nil && !validator.ValidateDate(*filter.EndDate) {
		return nil, 0, &domain.ValidationError{Fields: map[string]string{"endDate": "Date must be in YYYY-MM-DD format"}}
	}

	bookings, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list bookings", zap.Error(err))
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, total, nil
}

func (s *BookingServiceImpl) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	if !status.IsValid() {
		return &domain.ValidationError{Fields: map[string]string{"status": "Unknown booking status"}}
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrSlotUnavailable) {
			s.logger.Error("failed to update booking status", zap.Int64("id", id), zap.Error(err))
		}
		return err
	}

	s.logger.Info("booking status updated", zap.Int64("id", id), zap.String("status", string(status)))

	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Warn("failed to reload booking after status change", zap.Int64("id", id), zap.Error(err))
		return nil
	}
	s.afterCommit(ctx, booking, events.SubjectForStatus(status))

	return nil
}

// Renotify re-runs phase two for a booking, e.g. after a mail outage. Only
// recipients not reached before are mailed.
func (s *BookingServiceImpl) Renotify(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if s.dispatcher == nil {
		return errors.New("notifications are not configured")
	}
	if err := s.dispatcher.Dispatch(ctx, id); err != nil {
		s.logger.Error("failed to dispatch notification", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("dispatch notification: %w", err)
	}
	return nil
}
