package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"churchcms/internal/domain"
)

type AdminRepo struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) *AdminRepo {
	return &AdminRepo{db: db}
}

func (r *AdminRepo) Create(ctx context.Context, admin domain.Admin) (int64, error) {
	query := `
		INSERT INTO admins (email, name, password_hash, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		admin.Email,
		admin.Name,
		admin.PasswordHash,
		admin.IsActive,
		admin.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert admin: %w", err)
	}

	return id, nil
}

func (r *AdminRepo) GetByID(ctx context.Context, id int64) (*domain.Admin, error) {
	return r.getOne(ctx, `SELECT id, email, name, password_hash, is_active, created_at FROM admins WHERE id = $1`, id)
}

func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return r.getOne(ctx, `SELECT id, email, name, password_hash, is_active, created_at FROM admins WHERE lower(email) = lower($1)`, email)
}

func (r *AdminRepo) getOne(ctx context.Context, query string, arg interface{}) (*domain.Admin, error) {
	var a domain.Admin
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&a.ID,
		&a.Email,
		&a.Name,
		&a.PasswordHash,
		&a.IsActive,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return &a, nil
}
