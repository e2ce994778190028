package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, 28, cfg.Booking.WindowDays)
	assert.Equal(t, "inline", cfg.Booking.NotifyQueue)
	assert.Equal(t, 24*time.Hour, cfg.Booking.IdempotencyTTL)
	assert.Equal(t, "log", cfg.Mail.Provider)
	assert.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
}

func TestNewConfig_FromEnv(t *testing.T) {
	t.Setenv("BOOKING_WINDOW_DAYS", "14")
	t.Setenv("NOTIFY_QUEUE", "ASYNQ")
	t.Setenv("MAIL_PROVIDER", "SMTP")
	t.Setenv("SMTP_PORT", "not-a-number")
	t.Setenv("CACHE_TTL", "30s")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 14, cfg.Booking.WindowDays)
	assert.Equal(t, "asynq", cfg.Booking.NotifyQueue)
	assert.Equal(t, "smtp", cfg.Mail.Provider)
	assert.Equal(t, 1025, cfg.Mail.SMTPPort)
	assert.Equal(t, 30*time.Second, cfg.Redis.CacheTTL)
}

func TestNewConfig_BadDuration(t *testing.T) {
	t.Setenv("NOTIFY_TIMEOUT", "soon")

	_, err := NewConfig()
	assert.Error(t, err)
}
