package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Name        string
	Version     string
	LogLevel    string
	HTTP        HTTPConfig
	Postgres    PostgresConfig
	JWT         JWTConfig
	S3          S3Config
	Redis       RedisConfig
	NATS        NATSConfig
	Mail        MailConfig
	Meeting     MeetingConfig
	Booking     BookingConfig
	Admin       AdminConfig
	RateLimit   RateLimitConfig
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxHeaderMB  int
}

type PostgresConfig struct {
	Host               string
	Port               string
	Username           string
	Password           string
	DBName             string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
	MaxLifetime        time.Duration
}

type JWTConfig struct {
	SigningKey      string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type S3Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
	PublicURL       string
}

type RedisConfig struct {
	Addr     string
	Password string
	CacheDB  int
	QueueDB  int
	CacheTTL time.Duration
}

type NATSConfig struct {
	URL string
}

// MailConfig selects the mail provider: "mailersend", "smtp" or "log".
type MailConfig struct {
	Provider         string
	FromName         string
	FromEmail        string
	MailerSendAPIKey string
	SMTPHost         string
	SMTPPort         int
	SMTPUser         string
	SMTPPassword     string
	SMTPUseTLS       bool
}

type MeetingConfig struct {
	BaseURL        string
	PlaceholderURL string
}

type BookingConfig struct {
	WindowDays      int
	NotifyQueue     string
	NotifyTimeout   time.Duration
	NotifyRetries   int
	WorkerCount     int
	IdempotencyTTL  time.Duration
	CleanupSchedule string
	TimeZone        string
}

type AdminConfig struct {
	Email    string
	Password string
	Name     string
}

type RateLimitConfig struct {
	BookingsPerMinute int
	Burst             int
}

func NewConfig() (*Config, error) {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	httpReadTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "10s"))
	if err != nil {
		return nil, err
	}

	httpWriteTimeout, err := time.ParseDuration(getEnv("HTTP_WRITE_TIMEOUT", "10s"))
	if err != nil {
		return nil, err
	}

	postgresMaxLifetime, err := time.ParseDuration(getEnv("POSTGRES_MAX_LIFETIME", "5m"))
	if err != nil {
		return nil, err
	}

	jwtAccessTokenTTL, err := time.ParseDuration(getEnv("JWT_ACCESS_TOKEN_TTL", "15m"))
	if err != nil {
		return nil, err
	}

	jwtRefreshTokenTTL, err := time.ParseDuration(getEnv("JWT_REFRESH_TOKEN_TTL", "24h"))
	if err != nil {
		return nil, err
	}

	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "5m"))
	if err != nil {
		return nil, err
	}

	notifyTimeout, err := time.ParseDuration(getEnv("NOTIFY_TIMEOUT", "30s"))
	if err != nil {
		return nil, err
	}

	idempotencyTTL, err := time.ParseDuration(getEnv("IDEMPOTENCY_TTL", "24h"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		Name:        getEnv("APP_NAME", "churchcms"),
		Version:     getEnv("APP_VERSION", "1.0.0"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		HTTP: HTTPConfig{
			Port:         getEnv("HTTP_PORT", "8080"),
			ReadTimeout:  httpReadTimeout,
			WriteTimeout: httpWriteTimeout,
			MaxHeaderMB:  getEnvAsInt("HTTP_MAX_HEADER_MB", 1),
		},
		Postgres: PostgresConfig{
			Host:               getEnv("POSTGRES_HOST", "localhost"),
			Port:               getEnv("POSTGRES_PORT", "5432"),
			Username:           getEnv("POSTGRES_USER", "postgres"),
			Password:           getEnv("POSTGRES_PASSWORD", "postgres"),
			DBName:             getEnv("POSTGRES_DB", "churchcms"),
			SSLMode:            getEnv("POSTGRES_SSL_MODE", "disable"),
			MaxConnections:     getEnvAsInt("POSTGRES_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("POSTGRES_MAX_IDLE_CONNECTIONS", 5),
			MaxLifetime:        postgresMaxLifetime,
		},
		JWT: JWTConfig{
			SigningKey:      getEnv("JWT_SIGNING_KEY", "your_secret_key"),
			AccessTokenTTL:  jwtAccessTokenTTL,
			RefreshTokenTTL: jwtRefreshTokenTTL,
		},
		S3: S3Config{
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			Region:          getEnv("S3_REGION", "us-east-1"),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			Bucket:          getEnv("S3_BUCKET", "churchcms"),
			UseSSL:          getEnv("S3_USE_SSL", "true") == "true",
			PublicURL:       getEnv("S3_PUBLIC_URL", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			CacheDB:  getEnvAsInt("REDIS_CACHE_DB", 0),
			QueueDB:  getEnvAsInt("REDIS_QUEUE_DB", 1),
			CacheTTL: cacheTTL,
		},
		NATS: NATSConfig{
			URL: getEnv("NATS_URL", ""),
		},
		Mail: MailConfig{
			Provider:         strings.ToLower(getEnv("MAIL_PROVIDER", "log")),
			FromName:         getEnv("MAIL_FROM_NAME", "Church Counselling"),
			FromEmail:        getEnv("MAIL_FROM", "counselling@example.org"),
			MailerSendAPIKey: getEnv("MAILERSEND_API_KEY", ""),
			SMTPHost:         getEnv("SMTP_HOST", "localhost"),
			SMTPPort:         getEnvAsInt("SMTP_PORT", 1025),
			SMTPUser:         getEnv("SMTP_USER", ""),
			SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
			SMTPUseTLS:       getEnv("SMTP_USE_TLS", "false") == "true",
		},
		Meeting: MeetingConfig{
			BaseURL:        getEnv("MEETING_BASE_URL", "https://meet.jit.si"),
			PlaceholderURL: getEnv("MEETING_PLACEHOLDER_URL", "https://meet.jit.si/church-counselling"),
		},
		Booking: BookingConfig{
			WindowDays:      getEnvAsInt("BOOKING_WINDOW_DAYS", 28),
			NotifyQueue:     strings.ToLower(getEnv("NOTIFY_QUEUE", "inline")),
			NotifyTimeout:   notifyTimeout,
			NotifyRetries:   getEnvAsInt("NOTIFY_MAX_RETRY", 5),
			WorkerCount:     getEnvAsInt("NOTIFY_WORKERS", 5),
			IdempotencyTTL:  idempotencyTTL,
			CleanupSchedule: getEnv("IDEMPOTENCY_CLEANUP_CRON", "@hourly"),
			TimeZone:        getEnv("BOOKING_TIME_ZONE", "UTC"),
		},
		Admin: AdminConfig{
			Email:    getEnv("ADMIN_EMAIL", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
			Name:     getEnv("ADMIN_NAME", "Administrator"),
		},
		RateLimit: RateLimitConfig{
			BookingsPerMinute: getEnvAsInt("RATE_LIMIT_BOOKINGS_PER_MINUTE", 10),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 5),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value := 0
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}

	return value
}
