package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"churchcms/config"
	"churchcms/internal/domain"
)

const keyPrefix = "counsellors:"

// CounsellorCache holds public directory listings keyed by modality filter.
type CounsellorCache interface {
	Get(ctx context.Context, bookingType string) ([]domain.Counsellor, bool)
	Set(ctx context.Context, bookingType string, counsellors []domain.Counsellor)
	Invalidate(ctx context.Context)
}

// Key returns the redis key for a listing. An empty modality means the
// unfiltered list.
func Key(bookingType string) string {
	if bookingType == "" {
		return keyPrefix + "all"
	}
	return keyPrefix + bookingType
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.CacheDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

func NewRedisCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get treats every redis failure as a miss; the database stays authoritative.
func (c *RedisCache) Get(ctx context.Context, bookingType string) ([]domain.Counsellor, bool) {
	raw, err := c.client.Get(ctx, Key(bookingType)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("counsellor cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var counsellors []domain.Counsellor
	if err := json.Unmarshal(raw, &counsellors); err != nil {
		c.logger.Warn("counsellor cache entry is corrupt", zap.String("key", Key(bookingType)), zap.Error(err))
		return nil, false
	}

	return counsellors, true
}

func (c *RedisCache) Set(ctx context.Context, bookingType string, counsellors []domain.Counsellor) {
	raw, err := json.Marshal(counsellors)
	if err != nil {
		c.logger.Warn("encode counsellor cache entry", zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, Key(bookingType), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("counsellor cache write failed", zap.Error(err))
	}
}

func (c *RedisCache) Invalidate(ctx context.Context) {
	keys := []string{
		Key(""),
		Key(string(domain.BookingTypeOnline)),
		Key(string(domain.BookingTypeInPerson)),
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("counsellor cache invalidation failed", zap.Error(err))
	}
}

// NoopCache is used when no redis address is configured.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) ([]domain.Counsellor, bool) { return nil, false }
func (NoopCache) Set(context.Context, string, []domain.Counsellor)        {}
func (NoopCache) Invalidate(context.Context)                              {}
