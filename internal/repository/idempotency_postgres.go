package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HashIdempotencyKey gives client-supplied keys a fixed length and keeps them
// out of the database in clear.
func HashIdempotencyKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

type IdempotencyRepo struct {
	db *pgxpool.Pool
}

func NewIdempotencyRepository(db *pgxpool.Pool) *IdempotencyRepo {
	return &IdempotencyRepo{db: db}
}

// Lookup finds the booking created under key, ignoring expired records.
func (r *IdempotencyRepo) Lookup(ctx context.Context, key string) (int64, bool, error) {
	query := `SELECT booking_id FROM booking_idempotency WHERE key_hash = $1 AND expires_at > now()`

	var bookingID int64
	err := r.db.QueryRow(ctx, query, HashIdempotencyKey(key)).Scan(&bookingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("lookup idempotency key: %w", err)
	}

	return bookingID, true, nil
}

func (r *IdempotencyRepo) CleanupExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM booking_idempotency WHERE expires_at < now()`)
	if err != nil {
		return 0, fmt.Errorf("delete expired idempotency keys: %w", err)
	}
	return tag.RowsAffected(), nil
}
