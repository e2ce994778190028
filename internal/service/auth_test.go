package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"churchcms/config"
	"churchcms/internal/domain"
	"churchcms/internal/repository/mocks"
	"churchcms/pkg/auth"
)

var testJWT = config.JWTConfig{
	SigningKey:      "test-signing-key",
	AccessTokenTTL:  15 * time.Minute,
	RefreshTokenTTL: 24 * time.Hour,
}

func newAuth(t *testing.T) (*AuthServiceImpl, *mocks.SessionRepository, *mocks.AdminRepository) {
	sessions := mocks.NewSessionRepository(t)
	admins := mocks.NewAdminRepository(t)
	return NewAuthService(sessions, admins, testJWT, zap.NewNop()), sessions, admins
}

func testAdmin(t *testing.T, active bool) *domain.Admin {
	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)
	return &domain.Admin{ID: 7, Email: "admin@church.org", Name: "Office", PasswordHash: hash, IsActive: active}
}

func TestAuthService_Login(t *testing.T) {
	svc, sessions, admins := newAuth(t)
	admins.On("GetByEmail", mock.Anything, "admin@church.org").Return(testAdmin(t, true), nil)
	sessions.On("Create", mock.Anything, mock.MatchedBy(func(s domain.AdminSession) bool {
		return s.AdminID == 7 && s.RefreshToken != "" && s.UserAgent == "curl" && s.IP == "10.0.0.1"
	})).Return(nil)

	tokens, err := svc.Login(context.Background(), domain.LoginRequest{Email: " admin@church.org ", Password: "s3cret"}, "curl", "10.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.WithinDuration(t, time.Now().Add(testJWT.AccessTokenTTL), tokens.ExpiresAt, time.Minute)

	adminID, err := svc.ParseToken(context.Background(), tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(7), adminID)
}

func TestAuthService_Login_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		admin   *domain.Admin
		repoErr error
		pass    string
		want    error
	}{
		{name: "unknown email", repoErr: domain.ErrNotFound, pass: "s3cret", want: domain.ErrInvalidCredentials},
		{name: "wrong password", admin: testAdmin(t, true), pass: "nope", want: domain.ErrInvalidCredentials},
		{name: "deactivated", admin: testAdmin(t, false), pass: "s3cret", want: domain.ErrInactiveAccount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, admins := newAuth(t)
			admins.On("GetByEmail", mock.Anything, "admin@church.org").Return(tt.admin, tt.repoErr)

			_, err := svc.Login(context.Background(), domain.LoginRequest{Email: "admin@church.org", Password: tt.pass}, "", "")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAuthService_RefreshTokens(t *testing.T) {
	svc, sessions, admins := newAuth(t)
	sessions.On("GetByRefreshToken", mock.Anything, "old").
		Return(&domain.AdminSession{ID: "s1", AdminID: 7, ExpiresAt: time.Now().Add(time.Hour)}, nil)
	sessions.On("Delete", mock.Anything, "s1").Return(nil)
	admins.On("GetByID", mock.Anything, int64(7)).Return(testAdmin(t, true), nil)
	sessions.On("Create", mock.Anything, mock.Anything).Return(nil)

	tokens, err := svc.RefreshTokens(context.Background(), "old", "", "")
	require.NoError(t, err)
	assert.NotEqual(t, "old", tokens.RefreshToken)
}

func TestAuthService_RefreshTokens_Expired(t *testing.T) {
	svc, sessions, _ := newAuth(t)
	sessions.On("GetByRefreshToken", mock.Anything, "old").
		Return(&domain.AdminSession{ID: "s1", AdminID: 7, ExpiresAt: time.Now().Add(-time.Minute)}, nil)
	sessions.On("Delete", mock.Anything, "s1").Return(nil)

	_, err := svc.RefreshTokens(context.Background(), "old", "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestAuthService_RefreshTokens_Unknown(t *testing.T) {
	svc, sessions, _ := newAuth(t)
	sessions.On("GetByRefreshToken", mock.Anything, "missing").Return(nil, domain.ErrInvalidToken)

	_, err := svc.RefreshTokens(context.Background(), "missing", "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestAuthService_Logout(t *testing.T) {
	svc, sessions, _ := newAuth(t)
	sessions.On("GetByRefreshToken", mock.Anything, "gone").Return(nil, domain.ErrInvalidToken)
	sessions.On("GetByRefreshToken", mock.Anything, "live").Return(&domain.AdminSession{ID: "s2"}, nil)
	sessions.On("Delete", mock.Anything, "s2").Return(nil)

	assert.NoError(t, svc.Logout(context.Background(), "gone"))
	assert.NoError(t, svc.Logout(context.Background(), "live"))
}

func TestAuthService_ParseToken_Invalid(t *testing.T) {
	svc, _, _ := newAuth(t)

	_, err := svc.ParseToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))},
		AdminID:          7,
	})
	signed, err := expired.SignedString([]byte(testJWT.SigningKey))
	require.NoError(t, err)
	_, err = svc.ParseToken(context.Background(), signed)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{AdminID: 7})
	signed, err = other.SignedString([]byte("another-key"))
	require.NoError(t, err)
	_, err = svc.ParseToken(context.Background(), signed)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	t.Run("creates missing admin", func(t *testing.T) {
		svc, _, admins := newAuth(t)
		admins.On("GetByEmail", mock.Anything, "admin@church.org").Return(nil, domain.ErrNotFound)
		admins.On("Create", mock.Anything, mock.MatchedBy(func(a domain.Admin) bool {
			ok, err := auth.VerifyPassword("s3cret", a.PasswordHash)
			return a.Email == "admin@church.org" && a.IsActive && ok && err == nil
		})).Return(int64(1), nil)

		require.NoError(t, svc.EnsureAdmin(context.Background(), "admin@church.org", "s3cret", "Office"))
	})

	t.Run("keeps existing admin", func(t *testing.T) {
		svc, _, admins := newAuth(t)
		admins.On("GetByEmail", mock.Anything, "admin@church.org").Return(testAdmin(t, true), nil)

		require.NoError(t, svc.EnsureAdmin(context.Background(), "admin@church.org", "other", "Office"))
	})

	t.Run("not configured", func(t *testing.T) {
		svc, _, _ := newAuth(t)
		require.NoError(t, svc.EnsureAdmin(context.Background(), "", "", ""))
	})

	t.Run("lookup failure", func(t *testing.T) {
		svc, _, admins := newAuth(t)
		admins.On("GetByEmail", mock.Anything, "admin@church.org").Return(nil, errors.New("db down"))

		assert.Error(t, svc.EnsureAdmin(context.Background(), "admin@church.org", "s3cret", "Office"))
	})
}
