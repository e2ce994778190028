package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"churchcms/internal/domain"
)

type SessionRepo struct {
	db *pgxpool.Pool
}

func NewSessionRepository(db *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{
		db: db,
	}
}

func (r *SessionRepo) Create(ctx context.Context, session domain.AdminSession) error {
	query := `
		INSERT INTO admin_sessions (id, admin_id, refresh_token, user_agent, ip, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		session.ID,
		session.AdminID,
		session.RefreshToken,
		session.UserAgent,
		session.IP,
		session.ExpiresAt,
		session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert admin session: %w", err)
	}

	return nil
}

func (r *SessionRepo) GetByRefreshToken(ctx context.Context, refreshToken string) (*domain.AdminSession, error) {
	query := `
		SELECT id, admin_id, refresh_token, user_agent, ip, expires_at, created_at
		FROM admin_sessions
		WHERE refresh_token = $1
	`

	var session domain.AdminSession
	err := r.db.QueryRow(ctx, query, refreshToken).Scan(
		&session.ID,
		&session.AdminID,
		&session.RefreshToken,
		&session.UserAgent,
		&session.IP,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("get admin session: %w", err)
	}

	return &session, nil
}

func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM admin_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete admin session: %w", err)
	}

	return nil
}

func (r *SessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM admin_sessions WHERE expires_at < now()`)
	if err != nil {
		return 0, fmt.Errorf("delete expired admin sessions: %w", err)
	}

	return tag.RowsAffected(), nil
}
