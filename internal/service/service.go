package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"churchcms/config"
	"churchcms/internal/cache"
	"churchcms/internal/domain"
	"churchcms/internal/events"
	"churchcms/internal/notify"
	"churchcms/internal/repository"
	"churchcms/internal/storage"
)

type Deps struct {
	Repos       *repository.Repositories
	Logger      *zap.Logger
	Config      *config.Config
	FileStorage storage.FileStorage
	Cache       cache.CounsellorCache
	Dispatcher  notify.Dispatcher
	Meetings    *notify.MeetingLinks
	Events      events.Publisher
	Clock       func() time.Time
}

type Services struct {
	Counsellor   CounsellorService
	Schedule     ScheduleService
	Availability AvailabilityService
	Booking      BookingService
	Auth         AuthService
	Maintenance  MaintenanceService
}

func NewServices(deps Deps) (*Services, error) {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}

	loc, err := time.LoadLocation(deps.Config.Booking.TimeZone)
	if err != nil {
		return nil, err
	}

	availability := NewAvailabilityService(
		deps.Repos.Counsellor,
		deps.Repos.Schedule,
		deps.Repos.Booking,
		AvailabilityConfig{WindowDays: deps.Config.Booking.WindowDays, Location: loc},
		clock,
		deps.Logger,
	)

	return &Services{
		Counsellor:   NewCounsellorService(deps.Repos.Counsellor, deps.FileStorage, deps.Cache, deps.Logger),
		Schedule:     NewScheduleService(deps.Repos.Schedule, deps.Repos.Counsellor, deps.Logger),
		Availability: availability,
		Booking: NewBookingService(BookingDeps{
			Bookings:       deps.Repos.Booking,
			Idempotency:    deps.Repos.Idempotency,
			Counsellors:    deps.Repos.Counsellor,
			Availability:   availability,
			Dispatcher:     deps.Dispatcher,
			Meetings:       deps.Meetings,
			Events:         deps.Events,
			IdempotencyTTL: deps.Config.Booking.IdempotencyTTL,
			Clock:          clock,
			Logger:         deps.Logger,
		}),
		Auth:        NewAuthService(deps.Repos.Session, deps.Repos.Admin, deps.Config.JWT, deps.Logger),
		Maintenance: NewMaintenanceService(deps.Repos.Idempotency, deps.Repos.Session, deps.Logger),
	}, nil
}

type CounsellorService interface {
	Create(ctx context.Context, dto domain.CreateCounsellorDTO) (*domain.Counsellor, error)
	GetByID(ctx context.Context, id string) (*domain.Counsellor, error)
	Update(ctx context.Context, id string, dto domain.UpdateCounsellorDTO) error
	Delete(ctx context.Context, id string) error
	// List returns the public directory: active counsellors only.
	List(ctx context.Context, bookingType *domain.BookingType) ([]domain.Counsellor, error)
	ListAll(ctx context.Context) ([]domain.Counsellor, error)
	UploadPhoto(ctx context.Context, id string, photo []byte, filename string) (string, error)
}

type ScheduleService interface {
	Create(ctx context.Context, dto domain.CreateScheduleDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.ScheduleFilter) ([]domain.Schedule, int, error)
}

type AvailabilityService interface {
	Slots(ctx context.Context, counsellorID string, bookingType domain.BookingType) ([]domain.TimeSlot, error)
	FindSlot(ctx context.Context, counsellorID string, bookingType domain.BookingType, date, clock string) (*domain.TimeSlot, error)
}

type BookingService interface {
	Create(ctx context.Context, req domain.CreateBookingRequest) (*domain.BookingResult, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByConfirmationNumber(ctx context.Context, number string) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, int, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Renotify(ctx context.Context, id int64) error
}

type AuthService interface {
	Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error)
	RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error)
	Logout(ctx context.Context, refreshToken string) error
	ParseToken(ctx context.Context, token string) (int64, error)
	EnsureAdmin(ctx context.Context, email, password, name string) error
}

type MaintenanceService interface {
	PurgeExpired(ctx context.Context) error
}
