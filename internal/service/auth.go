package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"churchcms/config"
	"churchcms/internal/domain"
	"churchcms/internal/repository"
	"churchcms/pkg/auth"
)

const refreshTokenBytes = 32

type tokenClaims struct {
	jwt.RegisteredClaims
	AdminID int64 `json:"admin_id"`
}

type AuthServiceImpl struct {
	sessionRepo repository.SessionRepository
	adminRepo   repository.AdminRepository
	jwtConfig   config.JWTConfig
	logger      *zap.Logger
}

func NewAuthService(sessionRepo repository.SessionRepository, adminRepo repository.AdminRepository, jwtConfig config.JWTConfig, logger *zap.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		sessionRepo: sessionRepo,
		adminRepo:   adminRepo,
		jwtConfig:   jwtConfig,
		logger:      logger,
	}
}

func (s *AuthServiceImpl) Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, strings.TrimSpace(dto.Email))
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("failed to load admin", zap.Error(err))
			return nil, fmt.Errorf("load admin: %w", err)
		}
		s.logger.Info("login for unknown admin", zap.String("email", dto.Email))
		return nil, domain.ErrInvalidCredentials
	}

	ok, err := auth.VerifyPassword(dto.Password, admin.PasswordHash)
	if err != nil {
		s.logger.Error("stored password hash is unusable", zap.Int64("adminId", admin.ID), zap.Error(err))
		return nil, domain.ErrInvalidCredentials
	}
	if !ok {
		s.logger.Info("wrong password", zap.Int64("adminId", admin.ID))
		return nil, domain.ErrInvalidCredentials
	}

	if !admin.IsActive {
		return nil, domain.ErrInactiveAccount
	}

	return s.openSession(ctx, admin.ID, userAgent, ip)
}

func (s *AuthServiceImpl) RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error) {
	session, err := s.sessionRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidToken) {
			s.logger.Error("failed to load session", zap.Error(err))
		}
		return nil, domain.ErrInvalidToken
	}

	// Refresh tokens are single use.
	if err := s.sessionRepo.Delete(ctx, session.ID); err != nil {
		s.logger.Warn("failed to delete old session", zap.String("sessionId", session.ID), zap.Error(err))
	}

	if session.ExpiresAt.Before(time.Now()) {
		return nil, domain.ErrInvalidToken
	}

	admin, err := s.adminRepo.GetByID(ctx, session.AdminID)
	if err != nil {
		s.logger.Error("session admin not found", zap.Int64("adminId", session.AdminID), zap.Error(err))
		return nil, domain.ErrInvalidToken
	}
	if !admin.IsActive {
		return nil, domain.ErrInactiveAccount
	}

	return s.openSession(ctx, admin.ID, userAgent, ip)
}

func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	session, err := s.sessionRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			return nil
		}
		s.logger.Error("failed to load session on logout", zap.Error(err))
		return fmt.Errorf("load session: %w", err)
	}

	if err := s.sessionRepo.Delete(ctx, session.ID); err != nil {
		s.logger.Error("failed to delete session", zap.Error(err))
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

func (s *AuthServiceImpl) ParseToken(_ context.Context, tokenString string) (int64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.SigningKey), nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid || claims.AdminID == 0 {
		return 0, domain.ErrInvalidToken
	}

	return claims.AdminID, nil
}

// EnsureAdmin creates the bootstrap admin unless one with that email exists.
func (s *AuthServiceImpl) EnsureAdmin(ctx context.Context, email, password, name string) error {
	if email == "" || password == "" {
		return nil
	}

	_, err := s.adminRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("look up admin: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	id, err := s.adminRepo.Create(ctx, domain.Admin{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	s.logger.Info("bootstrap admin created", zap.Int64("adminId", id), zap.String("email", email))
	return nil
}

func (s *AuthServiceImpl) openSession(ctx context.Context, adminID int64, userAgent, ip string) (*domain.Tokens, error) {
	tokens, err := s.generateTokens(adminID)
	if err != nil {
		s.logger.Error("failed to generate tokens", zap.Error(err))
		return nil, fmt.Errorf("generate tokens: %w", err)
	}

	now := time.Now()
	session := domain.AdminSession{
		ID:           uuid.New().String(),
		AdminID:      adminID,
		RefreshToken: tokens.RefreshToken,
		UserAgent:    userAgent,
		IP:           ip,
		ExpiresAt:    now.Add(s.jwtConfig.RefreshTokenTTL),
		CreatedAt:    now,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		s.logger.Error("failed to save session", zap.Error(err))
		return nil, fmt.Errorf("save session: %w", err)
	}

	return tokens, nil
}

func (s *AuthServiceImpl) generateTokens(adminID int64) (*domain.Tokens, error) {
	now := time.Now()
	expiresAt := now.Add(s.jwtConfig.AccessTokenTTL)

	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   fmt.Sprintf("%d", adminID),
		},
		AdminID: adminID,
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtConfig.SigningKey))
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshToken, err := auth.GenerateRandomToken(refreshTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	return &domain.Tokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}
