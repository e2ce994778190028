package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"churchcms/internal/repository"
)

type MaintenanceServiceImpl struct {
	idempotencyRepo repository.IdempotencyRepository
	sessionRepo     repository.SessionRepository
	logger          *zap.Logger
}

func NewMaintenanceService(idempotencyRepo repository.IdempotencyRepository, sessionRepo repository.SessionRepository, logger *zap.Logger) *MaintenanceServiceImpl {
	return &MaintenanceServiceImpl{
		idempotencyRepo: idempotencyRepo,
		sessionRepo:     sessionRepo,
		logger:          logger,
	}
}

// PurgeExpired removes expired idempotency keys and admin sessions. Both
// purges run even if one fails.
func (s *MaintenanceServiceImpl) PurgeExpired(ctx context.Context) error {
	var errs []error

	keys, err := s.idempotencyRepo.CleanupExpired(ctx)
	if err != nil {
		s.logger.Error("failed to purge idempotency keys", zap.Error(err))
		errs = append(errs, err)
	}

	sessions, err := s.sessionRepo.DeleteExpired(ctx)
	if err != nil {
		s.logger.Error("failed to purge admin sessions", zap.Error(err))
		errs = append(errs, err)
	}

	s.logger.Info("expired records purged",
		zap.Int64("idempotencyKeys", keys),
		zap.Int64("sessions", sessions),
	)

	return errors.Join(errs...)
}
