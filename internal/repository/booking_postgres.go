package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"churchcms/internal/domain"
)

const bookingColumns = `b.id, b.confirmation_number, b.status, b.meeting_url, b.notification_status, b.client_notified, b.counsellor_notified,
	COALESCE(c.name, ''), b.created_at, b.updated_at,
	b.first_name, b.last_name, b.email, b.phone, b.country, b.city, b.counsellor_id, b.booking_type,
	to_char(b.preferred_date, 'YYYY-MM-DD'), b.preferred_time, b.session_duration, b.topic, b.notes`

const bookingFrom = ` FROM bookings b LEFT JOIN counsellors c ON c.id = b.counsellor_id`

const (
	slotConstraint        = "uq_bookings_slot"
	idempotencyConstraint = "booking_idempotency_pkey"
)

type BookingRepo struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) *BookingRepo {
	return &BookingRepo{db: db}
}

func (r *BookingRepo) Create(ctx context.Context, nb NewBooking) (*domain.Booking, error) {
	b := nb.Booking

	date, err := time.Parse(domain.DateLayout, b.PreferredDate)
	if err != nil {
		return nil, fmt.Errorf("parse preferred date: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO bookings (
			confirmation_number, counsellor_id, booking_type, preferred_date, preferred_time,
			session_duration, first_name, last_name, email, phone, country, city, topic, notes,
			status, meeting_url, notification_status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id
	`

	err = tx.QueryRow(ctx, query,
		b.ConfirmationNumber,
		b.CounsellorID,
		b.BookingType,
		date,
		b.PreferredTime,
		b.SessionDuration,
		b.FirstName,
		b.LastName,
		b.Email,
		b.Phone,
		b.Country,
		b.City,
		b.Topic,
		b.Notes,
		b.Status,
		b.MeetingURL,
		b.NotificationStatus,
		b.CreatedAt,
		b.UpdatedAt,
	).Scan(&b.ID)
	if err != nil {
		if isUniqueViolation(err, slotConstraint) {
			return nil, domain.ErrSlotUnavailable
		}
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	if nb.IdempotencyKey != "" {
		_, err = tx.Exec(ctx,
			`INSERT INTO booking_idempotency (key_hash, booking_id, created_at, expires_at) VALUES ($1, $2, $3, $4)`,
			HashIdempotencyKey(nb.IdempotencyKey), b.ID, b.CreatedAt, nb.KeyExpiresAt,
		)
		if err != nil {
			if isUniqueViolation(err, idempotencyConstraint) {
				return nil, domain.ErrDuplicateRequest
			}
			return nil, fmt.Errorf("insert idempotency record: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit booking: %w", err)
	}

	return &b, nil
}

func (r *BookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, `SELECT `+bookingColumns+bookingFrom+` WHERE b.id = $1`, id)
}

func (r *BookingRepo) GetByConfirmationNumber(ctx context.Context, number string) (*domain.Booking, error) {
	return r.getOne(ctx, `SELECT `+bookingColumns+bookingFrom+` WHERE b.confirmation_number = $1`, number)
}

func (r *BookingRepo) getOne(ctx context.Context, query string, arg interface{}) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

func (r *BookingRepo) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, int, error) {
	var conditions string
	var args []interface{}
	argPos := 1

	if filter.CounsellorID != nil {
		conditions += fmt.Sprintf(" AND b.counsellor_id = $%d", argPos)
		args = append(args, *filter.CounsellorID)
		argPos++
	}
	if filter.Status != nil {
		conditions += fmt.Sprintf(" AND b.status = $%d", argPos)
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.StartDate != nil {
		conditions += fmt.Sprintf(" AND b.preferred_date >= $%d::date", argPos)
		args = append(args, *filter.StartDate)
		argPos++
	}
	if filter.EndDate != nil {
		conditions += fmt.Sprintf(" AND b.preferred_date <= $%d::date", argPos)
		args = append(args, *filter.EndDate)
		argPos++
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM bookings b WHERE 1=1` + conditions
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}

	selectQuery := `SELECT ` + bookingColumns + bookingFrom + ` WHERE 1=1` + conditions +
		fmt.Sprintf(" ORDER BY b.preferred_date DESC, b.preferred_time DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate bookings: %w", err)
	}

	return bookings, total, nil
}

func (r *BookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), id,
	)
	if err != nil {
		// Re-activating a cancelled booking whose slot was taken meanwhile.
		if isUniqueViolation(err, slotConstraint) {
			return domain.ErrSlotUnavailable
		}
		return fmt.Errorf("update booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BookingRepo) UpdateNotification(ctx context.Context, id int64, meetingURL string, status domain.NotificationStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE bookings SET meeting_url = $1, notification_status = $2, updated_at = $3 WHERE id = $4`,
		meetingURL, status, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("update booking notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkNotified records that the recipient's email went out, so retries skip it.
func (r *BookingRepo) MarkNotified(ctx context.Context, id int64, recipient domain.Recipient) error {
	var column string
	switch recipient {
	case domain.RecipientClient:
		column = "client_notified"
	case domain.RecipientCounsellor:
		column = "counsellor_notified"
	default:
		return fmt.Errorf("unknown recipient %q", recipient)
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE bookings SET `+column+` = TRUE, updated_at = $1 WHERE id = $2`,
		time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("mark %s notified: %w", recipient, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BookingRepo) BookedTimes(ctx context.Context, counsellorID string, from, to time.Time) (map[string][]string, error) {
	query := `
		SELECT to_char(preferred_date, 'YYYY-MM-DD'), preferred_time
		FROM bookings
		WHERE counsellor_id = $1 AND preferred_date >= $2 AND preferred_date < $3 AND status <> 'cancelled'
	`

	rows, err := r.db.Query(ctx, query, counsellorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list booked times: %w", err)
	}
	defer rows.Close()

	booked := make(map[string][]string)
	for rows.Next() {
		var date, clock string
		if err := rows.Scan(&date, &clock); err != nil {
			return nil, fmt.Errorf("scan booked time: %w", err)
		}
		booked[date] = append(booked[date], clock)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booked times: %w", err)
	}

	return booked, nil
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.ID,
		&b.ConfirmationNumber,
		&b.Status,
		&b.MeetingURL,
		&b.NotificationStatus,
		&b.ClientNotified,
		&b.CounsellorNotified,
		&b.CounsellorName,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.FirstName,
		&b.LastName,
		&b.Email,
		&b.Phone,
		&b.Country,
		&b.City,
		&b.CounsellorID,
		&b.BookingType,
		&b.PreferredDate,
		&b.PreferredTime,
		&b.SessionDuration,
		&b.Topic,
		&b.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
