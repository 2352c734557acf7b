package service

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/linapteam/linap-api/internal/domain"
	"github.com/linapteam/linap-api/internal/dto"
	"github.com/linapteam/linap-api/internal/repository"
	"github.com/linapteam/linap-api/internal/utils"
	"github.com/linapteam/linap-api/pkg/database"
)

// authService implements AuthService interface
type authService struct {
	db                 *database.Postgres
	userRepo           repository.UserRepository
	accountRepo        repository.AuthAccountRepository
	sessionRepo        repository.SessionRepository
	resetRepo          repository.PasswordResetRepository
	verificationRepo   repository.EmailVerificationRepository
	jwtManager         *utils.JWTManager
	blacklistService   *TokenBlacklistService
	logger             *zap.Logger
	bcryptCost         int
	refreshTokenExpiry time.Duration
	resetTokenExpiry   time.Duration
	verifyTokenExpiry  time.Duration
}

// AuthServiceDeps bundles the dependencies of the auth service
type AuthServiceDeps struct {
	DB               *database.Postgres
	Repos            *repository.Repositories
	JWTManager       *utils.JWTManager
	BlacklistService *TokenBlacklistService
	Logger           *zap.Logger

	BCryptCost         int
	RefreshTokenExpiry time.Duration
	ResetTokenExpiry   time.Duration
	VerifyTokenExpiry  time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(deps AuthServiceDeps) AuthService {
	return &authService{
		db:                 deps.DB,
		userRepo:           deps.Repos.User,
		accountRepo:        deps.Repos.AuthAccount,
		sessionRepo:        deps.Repos.Session,
		resetRepo:          deps.Repos.PasswordReset,
		verificationRepo:   deps.Repos.EmailVerification,
		jwtManager:         deps.JWTManager,
		blacklistService:   deps.BlacklistService,
		logger:             deps.Logger,
		bcryptCost:         deps.BCryptCost,
		refreshTokenExpiry: deps.RefreshTokenExpiry,
		resetTokenExpiry:   deps.ResetTokenExpiry,
		verifyTokenExpiry:  deps.VerifyTokenExpiry,
	}
}

// Register creates the user together with its local credential record. Both
// rows are written in one transaction, so a failed credential insert never
// leaves an orphaned user behind. Uniqueness of username and email is left to
// the database constraints.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*AuthResult, error) {
	if !utils.ValidateUsername(req.Username) {
		return nil, fmt.Errorf("username must be 3-50 characters of letters, digits, '_', '.' or '-': %w", ErrInvalidInput)
	}
	if !utils.ValidateEmail(req.Email) {
		return nil, fmt.Errorf("invalid email format: %w", ErrInvalidInput)
	}
	if !utils.ValidatePassword(req.Password) {
		return nil, fmt.Errorf("password must be at least 8 characters long and contain uppercase, lowercase, and number: %w", ErrInvalidInput)
	}

	passwordHash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:        req.Username,
		Email:           utils.SanitizeEmail(req.Email),
		IsActive:        true,
		IsEmailVerified: false,
	}

	err = s.db.WithinTx(ctx, func(tx *sql.Tx) error {
		if err := s.userRepo.WithTx(tx).Create(ctx, user); err != nil {
			return err
		}

		account := &domain.AuthAccount{
			UserID:       user.ID,
			Provider:     domain.ProviderLocal,
			PasswordHash: &passwordHash,
			IsPrimary:    true,
		}
		return s.accountRepo.WithTx(tx).Create(ctx, account)
	})
	if err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Login authenticates a user by username or email
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*AuthResult, error) {
	user, err := s.findUser(ctx, req.Identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.IsActive {
		return nil, fmt.Errorf("user account is inactive: %w", ErrForbidden)
	}

	account, err := s.accountRepo.GetLocalByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to get auth account: %w", err)
	}

	if account.PasswordHash == nil || !utils.CheckPasswordHash(req.Password, *account.PasswordHash) {
		return nil, fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	}

	if err := s.accountRepo.UpdateLastLogin(ctx, account.ID); err != nil {
		s.logger.Warn("failed to update last login", zap.String("user_id", user.ID), zap.Error(err))
	}

	return s.issueTokens(ctx, user)
}

// findUser resolves a login identifier to a user. Identifiers containing '@'
// are treated as emails, everything else as usernames.
func (s *authService) findUser(ctx context.Context, identifier string) (*domain.User, error) {
	if utils.ValidateEmail(identifier) {
		return s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(identifier))
	}
	return s.userRepo.GetByUsername(ctx, identifier)
}

// RefreshToken rotates a refresh token: the old session is deleted and
// blacklisted before new tokens are issued.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", ErrUnauthorized)
	}

	tokenHash := s.hashToken(refreshToken)

	session, err := s.sessionRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("invalid refresh token: %w", ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if session.UserID != userID {
		return nil, fmt.Errorf("invalid refresh token: %w", ErrUnauthorized)
	}

	if time.Now().After(session.ExpiresAt) {
		return nil, fmt.Errorf("refresh token expired: %w", ErrUnauthorized)
	}

	isBlacklisted, err := s.blacklistService.IsTokenBlacklisted(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	if isBlacklisted {
		return nil, fmt.Errorf("refresh token is revoked: %w", ErrUnauthorized)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.IsActive {
		return nil, fmt.Errorf("user account is inactive: %w", ErrForbidden)
	}

	if err := s.blacklistService.AddToken(ctx, refreshToken, s.refreshTokenExpiry); err != nil {
		s.logger.Warn("failed to blacklist rotated refresh token", zap.Error(err))
	}

	if err := s.sessionRepo.DeleteByTokenHash(ctx, tokenHash); err != nil {
		s.logger.Warn("failed to delete rotated session", zap.Error(err))
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes a refresh token if it belongs to the given user
func (s *authService) Logout(ctx context.Context, userID, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	tokenHash := s.hashToken(refreshToken)

	session, err := s.sessionRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil || session.UserID != userID {
		// Unknown or foreign token, nothing to revoke
		return nil
	}

	if err := s.blacklistService.AddToken(ctx, refreshToken, s.refreshTokenExpiry); err != nil {
		s.logger.Warn("failed to blacklist refresh token on logout", zap.Error(err))
	}

	if err := s.sessionRepo.DeleteByTokenHash(ctx, tokenHash); err != nil {
		s.logger.Warn("failed to delete session on logout", zap.Error(err))
	}

	return nil
}

// ChangePassword verifies the current password and replaces the stored hash.
// All of the user's sessions are revoked afterwards.
func (s *authService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if !utils.ValidatePassword(newPassword) {
		return fmt.Errorf("password must be at least 8 characters long and contain uppercase, lowercase, and number: %w", ErrInvalidInput)
	}

	account, err := s.accountRepo.GetLocalByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get auth account: %w", err)
	}

	if account.PasswordHash == nil || !utils.CheckPasswordHash(currentPassword, *account.PasswordHash) {
		return fmt.Errorf("current password is incorrect: %w", ErrUnauthorized)
	}

	newHash, err := utils.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.accountRepo.UpdatePasswordHash(ctx, account.ID, newHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.sessionRepo.DeleteByUserID(ctx, userID); err != nil {
		s.logger.Warn("failed to revoke sessions after password change", zap.String("user_id", userID), zap.Error(err))
	}

	return nil
}

// RequestPasswordReset creates a single-use reset token for the given email.
// The returned token is handed to the mail delivery pipeline; unknown emails
// produce no error so callers cannot probe for registered addresses.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	token := uuid.New().String()
	reset := &domain.PasswordReset{
		UserID:    user.ID,
		Token:     s.hashToken(token),
		ExpiresAt: time.Now().Add(s.resetTokenExpiry),
	}

	if err := s.resetRepo.Create(ctx, reset); err != nil {
		return "", fmt.Errorf("failed to create password reset: %w", err)
	}

	return token, nil
}

// ConfirmPasswordReset consumes a reset token and sets a new password. All of
// the user's sessions are revoked.
func (s *authService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if !utils.ValidatePassword(newPassword) {
		return fmt.Errorf("password must be at least 8 characters long and contain uppercase, lowercase, and number: %w", ErrInvalidInput)
	}

	reset, err := s.resetRepo.GetByToken(ctx, s.hashToken(token))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("invalid or expired reset token: %w", ErrUnauthorized)
		}
		return fmt.Errorf("failed to get password reset: %w", err)
	}

	if reset.Used || time.Now().After(reset.ExpiresAt) {
		return fmt.Errorf("invalid or expired reset token: %w", ErrUnauthorized)
	}

	// MarkUsed only succeeds for an unused token, so concurrent confirmations
	// of the same token cannot both pass.
	if err := s.resetRepo.MarkUsed(ctx, reset.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("invalid or expired reset token: %w", ErrUnauthorized)
		}
		return fmt.Errorf("failed to consume reset token: %w", err)
	}

	account, err := s.accountRepo.GetLocalByUserID(ctx, reset.UserID)
	if err != nil {
		return fmt.Errorf("failed to get auth account: %w", err)
	}

	newHash, err := utils.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.accountRepo.UpdatePasswordHash(ctx, account.ID, newHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.sessionRepo.DeleteByUserID(ctx, reset.UserID); err != nil {
		s.logger.Warn("failed to revoke sessions after password reset", zap.String("user_id", reset.UserID), zap.Error(err))
	}

	return nil
}

// RequestEmailVerification creates a verification token for the user's email
func (s *authService) RequestEmailVerification(ctx context.Context, userID string) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	if user.IsEmailVerified {
		return "", fmt.Errorf("email is already verified: %w", ErrInvalidInput)
	}

	token := uuid.New().String()
	verification := &domain.EmailVerification{
		UserID:    user.ID,
		Token:     s.hashToken(token),
		ExpiresAt: time.Now().Add(s.verifyTokenExpiry),
	}

	if err := s.verificationRepo.Create(ctx, verification); err != nil {
		return "", fmt.Errorf("failed to create email verification: %w", err)
	}

	return token, nil
}

// ConfirmEmailVerification consumes a verification token and marks the user's
// email as verified
func (s *authService) ConfirmEmailVerification(ctx context.Context, token string) error {
	verification, err := s.verificationRepo.GetByToken(ctx, s.hashToken(token))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("invalid or expired verification token: %w", ErrUnauthorized)
		}
		return fmt.Errorf("failed to get email verification: %w", err)
	}

	if time.Now().After(verification.ExpiresAt) {
		return fmt.Errorf("invalid or expired verification token: %w", ErrUnauthorized)
	}

	if err := s.userRepo.SetEmailVerified(ctx, verification.UserID); err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}

	if err := s.verificationRepo.Delete(ctx, verification.ID); err != nil {
		s.logger.Warn("failed to delete consumed verification token", zap.Error(err))
	}

	return nil
}

// ListSessions lists the user's refresh sessions, newest first
func (s *authService) ListSessions(ctx context.Context, userID string) ([]*domain.Session, error) {
	return s.sessionRepo.ListByUserID(ctx, userID)
}

// ValidateToken validates an access token
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error) {
	isBlacklisted, err := s.blacklistService.IsTokenBlacklisted(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	if isBlacklisted {
		return nil, fmt.Errorf("token is revoked: %w", ErrUnauthorized)
	}

	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", ErrUnauthorized)
	}

	return claims, nil
}

// hashToken hashes a token using SHA256
func (s *authService) hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
