package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/linapteam/linap-api/internal/repository"
)

// CleanupService removes expired sessions and single-use tokens. Expired rows
// are already invisible to the auth flows; the sweep only keeps the tables
// from growing without bound.
type CleanupService struct {
	sessionRepo      repository.SessionRepository
	resetRepo        repository.PasswordResetRepository
	verificationRepo repository.EmailVerificationRepository
	logger           *zap.Logger
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(
	sessionRepo repository.SessionRepository,
	resetRepo repository.PasswordResetRepository,
	verificationRepo repository.EmailVerificationRepository,
	logger *zap.Logger,
) *CleanupService {
	return &CleanupService{
		sessionRepo:      sessionRepo,
		resetRepo:        resetRepo,
		verificationRepo: verificationRepo,
		logger:           logger,
	}
}

// Sweep deletes expired sessions, password reset tokens and email
// verification tokens in one pass. Each table is swept even when an earlier
// one fails.
func (s *CleanupService) Sweep(ctx context.Context) error {
	return errors.Join(
		s.sessionRepo.DeleteExpired(ctx),
		s.resetRepo.DeleteExpired(ctx),
		s.verificationRepo.DeleteExpired(ctx),
	)
}

// Run sweeps immediately and then on every tick until the context is
// cancelled. A non-positive interval sweeps once and returns.
func (s *CleanupService) Run(ctx context.Context, interval time.Duration) {
	if err := s.Sweep(ctx); err != nil {
		s.logger.Warn("expired token sweep failed", zap.Error(err))
	}

	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				s.logger.Warn("expired token sweep failed", zap.Error(err))
			}
		}
	}
}
