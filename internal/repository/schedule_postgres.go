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

const scheduleColumns = `id, counsellor_id, date, start_time, end_time, slot_minutes, booking_type,
	exclude_times, created_at, updated_at`

type ScheduleRepo struct {
	db *pgxpool.Pool
}

func NewScheduleRepository(db *pgxpool.Pool) *ScheduleRepo {
	return &ScheduleRepo{db: db}
}

func (r *ScheduleRepo) Create(ctx context.Context, schedule domain.Schedule) (int64, error) {
	var id int64

	query := `
		INSERT INTO schedules (
			counsellor_id, date, start_time, end_time, slot_minutes, booking_type, exclude_times, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	excludeTimes := schedule.ExcludeTimes
	if excludeTimes == nil {
		excludeTimes = []string{}
	}

	err := r.db.QueryRow(
		ctx,
		query,
		schedule.CounsellorID,
		schedule.Date,
		schedule.StartTime,
		schedule.EndTime,
		schedule.SlotMinutes,
		schedule.BookingType,
		excludeTimes,
		schedule.CreatedAt,
		schedule.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert schedule: %w", err)
	}

	return id, nil
}

func (r *ScheduleRepo) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = $1`

	schedule, err := scanSchedule(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get schedule: %w", err)
	}

	return schedule, nil
}

func (r *ScheduleRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *ScheduleRepo) List(ctx context.Context, filter domain.ScheduleFilter) ([]domain.Schedule, int, error) {
	countQuery := `SELECT COUNT(*) FROM schedules WHERE 1=1`
	selectQuery := `SELECT ` + scheduleColumns + ` FROM schedules WHERE 1=1`

	var conditions string
	var args []interface{}
	argPos := 1

	if filter.CounsellorID != nil {
		conditions += fmt.Sprintf(" AND counsellor_id = $%d", argPos)
		args = append(args, *filter.CounsellorID)
		argPos++
	}

	if filter.StartDate != nil {
		conditions += fmt.Sprintf(" AND date >= $%d", argPos)
		args = append(args, *filter.StartDate)
		argPos++
	}

	if filter.EndDate != nil {
		conditions += fmt.Sprintf(" AND date <= $%d", argPos)
		args = append(args, *filter.EndDate)
		argPos++
	}

	countQuery += conditions
	selectQuery += conditions

	selectQuery += fmt.Sprintf(" ORDER BY date, start_time LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args[:argPos-1]...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count schedules: %w", err)
	}

	schedules, err := r.query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, err
	}

	return schedules, total, nil
}

// ListForRange returns the counsellor's schedules with from <= date < to.
func (r *ScheduleRepo) ListForRange(ctx context.Context, counsellorID string, from, to time.Time) ([]domain.Schedule, error) {
	query := `SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE counsellor_id = $1 AND date >= $2 AND date < $3
		ORDER BY date, start_time`

	return r.query(ctx, query, counsellorID, from, to)
}

func (r *ScheduleRepo) query(ctx context.Context, query string, args ...interface{}) ([]domain.Schedule, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	schedules := make([]domain.Schedule, 0)
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		schedules = append(schedules, *schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schedules: %w", err)
	}

	return schedules, nil
}

func scanSchedule(row pgx.Row) (*domain.Schedule, error) {
	var s domain.Schedule
	err := row.Scan(
		&s.ID,
		&s.CounsellorID,
		&s.Date,
		&s.StartTime,
		&s.EndTime,
		&s.SlotMinutes,
		&s.BookingType,
		&s.ExcludeTimes,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
