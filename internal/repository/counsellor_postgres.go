package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"churchcms/internal/domain"
)

const counsellorColumns = `id, name, title, is_online, is_in_person, specializations, years_of_experience,
	rating, review_count, bio, email, photo_url, is_active, created_at, updated_at`

type CounsellorRepo struct {
	db *pgxpool.Pool
}

func NewCounsellorRepository(db *pgxpool.Pool) *CounsellorRepo {
	return &CounsellorRepo{db: db}
}

func (r *CounsellorRepo) Create(ctx context.Context, c domain.Counsellor) error {
	query := `
		INSERT INTO counsellors (
			id, name, title, is_online, is_in_person, specializations, years_of_experience,
			rating, review_count, bio, email, photo_url, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	specializations := c.Specializations
	if specializations == nil {
		specializations = []string{}
	}

	_, err := r.db.Exec(ctx, query,
		c.ID,
		c.Name,
		c.Title,
		c.IsOnline,
		c.IsInPerson,
		specializations,
		c.YearsOfExperience,
		c.Rating,
		c.ReviewCount,
		c.Bio,
		c.Email,
		c.PhotoURL,
		c.IsActive,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert counsellor: %w", err)
	}

	return nil
}

func (r *CounsellorRepo) GetByID(ctx context.Context, id string) (*domain.Counsellor, error) {
	query := `SELECT ` + counsellorColumns + ` FROM counsellors WHERE id = $1`

	c, err := scanCounsellor(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCounsellorNotFound
		}
		return nil, fmt.Errorf("get counsellor: %w", err)
	}

	return c, nil
}

func (r *CounsellorRepo) Update(ctx context.Context, id string, dto domain.UpdateCounsellorDTO) error {
	var sets []string
	var args []interface{}
	argPos := 1

	add := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if dto.Name != nil {
		add("name", *dto.Name)
	}
	if dto.Title != nil {
		add("title", *dto.Title)
	}
	if dto.IsOnline != nil {
		add("is_online", *dto.IsOnline)
	}
	if dto.IsInPerson != nil {
		add("is_in_person", *dto.IsInPerson)
	}
	if dto.Specializations != nil {
		add("specializations", *dto.Specializations)
	}
	if dto.YearsOfExperience != nil {
		add("years_of_experience", *dto.YearsOfExperience)
	}
	if dto.Rating != nil {
		add("rating", *dto.Rating)
	}
	if dto.ReviewCount != nil {
		add("review_count", *dto.ReviewCount)
	}
	if dto.Bio != nil {
		add("bio", *dto.Bio)
	}
	if dto.Email != nil {
		add("email", *dto.Email)
	}
	if dto.IsActive != nil {
		add("is_active", *dto.IsActive)
	}

	if len(sets) == 0 {
		return nil
	}
	add("updated_at", time.Now())

	query := fmt.Sprintf("UPDATE counsellors SET %s WHERE id = $%d", strings.Join(sets, ", "), argPos)
	args = append(args, id)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update counsellor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCounsellorNotFound
	}

	return nil
}

// Deactivate hides the counsellor from the public directory. Rows are kept
// because bookings reference them.
func (r *CounsellorRepo) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE counsellors SET is_active = FALSE, updated_at = $1 WHERE id = $2`

	tag, err := r.db.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("deactivate counsellor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCounsellorNotFound
	}

	return nil
}

func (r *CounsellorRepo) List(ctx context.Context, filter domain.CounsellorFilter) ([]domain.Counsellor, error) {
	query := `SELECT ` + counsellorColumns + ` FROM counsellors WHERE 1=1`

	if filter.ActiveOnly {
		query += " AND is_active"
	}
	if filter.BookingType != nil {
		switch *filter.BookingType {
		case domain.BookingTypeOnline:
			query += " AND is_online"
		case domain.BookingTypeInPerson:
			query += " AND is_in_person"
		}
	}
	query += " ORDER BY rating DESC, name"

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list counsellors: %w", err)
	}
	defer rows.Close()

	counsellors := make([]domain.Counsellor, 0)
	for rows.Next() {
		c, err := scanCounsellor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan counsellor: %w", err)
		}
		counsellors = append(counsellors, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate counsellors: %w", err)
	}

	return counsellors, nil
}

func (r *CounsellorRepo) UpdatePhoto(ctx context.Context, id string, photoURL string) error {
	query := `UPDATE counsellors SET photo_url = $1, updated_at = $2 WHERE id = $3`

	tag, err := r.db.Exec(ctx, query, photoURL, time.Now(), id)
	if err != nil {
		return fmt.Errorf("update counsellor photo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCounsellorNotFound
	}

	return nil
}

func scanCounsellor(row pgx.Row) (*domain.Counsellor, error) {
	var c domain.Counsellor
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Title,
		&c.IsOnline,
		&c.IsInPerson,
		&c.Specializations,
		&c.YearsOfExperience,
		&c.Rating,
		&c.ReviewCount,
		&c.Bio,
		&c.Email,
		&c.PhotoURL,
		&c.IsActive,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
