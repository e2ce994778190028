package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"churchcms/internal/domain"
)

type Repositories struct {
	Counsellor  CounsellorRepository
	Schedule    ScheduleRepository
	Booking     BookingRepository
	Idempotency IdempotencyRepository
	Admin       AdminRepository
	Session     SessionRepository
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Counsellor:  NewCounsellorRepository(db),
		Schedule:    NewScheduleRepository(db),
		Booking:     NewBookingRepository(db),
		Idempotency: NewIdempotencyRepository(db),
		Admin:       NewAdminRepository(db),
		Session:     NewSessionRepository(db),
	}
}

type CounsellorRepository interface {
	Create(ctx context.Context, counsellor domain.Counsellor) error
	GetByID(ctx context.Context, id string) (*domain.Counsellor, error)
	Update(ctx context.Context, id string, dto domain.UpdateCounsellorDTO) error
	Deactivate(ctx context.Context, id string) error
	List(ctx context.Context, filter domain.CounsellorFilter) ([]domain.Counsellor, error)
	UpdatePhoto(ctx context.Context, id string, photoURL string) error
}

type ScheduleRepository interface {
	Create(ctx context.Context, schedule domain.Schedule) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.ScheduleFilter) ([]domain.Schedule, int, error)
	ListForRange(ctx context.Context, counsellorID string, from, to time.Time) ([]domain.Schedule, error)
}

// NewBooking is what the booking service persists in phase one.
type NewBooking struct {
	Booking        domain.Booking
	IdempotencyKey string
	KeyExpiresAt   time.Time
}

type BookingRepository interface {
	// Create inserts the booking and, when a key is given, its idempotency
	// record in one transaction. It returns domain.ErrSlotUnavailable when a
	// live booking already holds the slot and domain.ErrDuplicateRequest when
	// the key was claimed concurrently.
	Create(ctx context.Context, b NewBooking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByConfirmationNumber(ctx context.Context, number string) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, int, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	UpdateNotification(ctx context.Context, id int64, meetingURL string, status domain.NotificationStatus) error
	MarkNotified(ctx context.Context, id int64, recipient domain.Recipient) error
	// BookedTimes returns the start times held by live bookings, keyed by date.
	BookedTimes(ctx context.Context, counsellorID string, from, to time.Time) (map[string][]string, error)
}

type IdempotencyRepository interface {
	Lookup(ctx context.Context, key string) (bookingID int64, found bool, err error)
	CleanupExpired(ctx context.Context) (int64, error)
}

type AdminRepository interface {
	Create(ctx context.Context, admin domain.Admin) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Admin, error)
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session domain.AdminSession) error
	GetByRefreshToken(ctx context.Context, refreshToken string) (*domain.AdminSession, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

const uniqueViolation = "23505"

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
