package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/linapteam/linap-api/internal/domain"
	"github.com/linapteam/linap-api/pkg/database"
)

// passwordResetRepository implements PasswordResetRepository interface
type passwordResetRepository struct {
	db querier
}

// NewPasswordResetRepository creates a new password reset repository
func NewPasswordResetRepository(db *database.Postgres) PasswordResetRepository {
	return &passwordResetRepository{db: db.DB}
}

// Create creates a new password reset token
func (r *passwordResetRepository) Create(ctx context.Context, reset *domain.PasswordReset) error {
	query := `
		INSERT INTO linap.password_resets (id, user_id, token, expires_at, created_at, used)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if reset.ID == "" {
		reset.ID = uuid.New().String()
	}
	if reset.CreatedAt.IsZero() {
		reset.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		reset.ID,
		reset.UserID,
		reset.Token,
		reset.ExpiresAt,
		reset.CreatedAt,
		reset.Used,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("user with id %s not found: %w", reset.UserID, ErrNotFound)
		}
		return fmt.Errorf("failed to create password reset: %w", err)
	}

	return nil
}

// GetByToken retrieves a password reset record by token
func (r *passwordResetRepository) GetByToken(ctx context.Context, token string) (*domain.PasswordReset, error) {
	query := `
		SELECT id, user_id, token, expires_at, created_at, used
		FROM linap.password_resets
		WHERE token = $1
	`

	reset := &domain.PasswordReset{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&reset.ID,
		&reset.UserID,
		&reset.Token,
		&reset.ExpiresAt,
		&reset.CreatedAt,
		&reset.Used,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("password reset token not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get password reset: %w", err)
	}

	return reset, nil
}

// MarkUsed marks a password reset token as consumed. A token that is already
// used cannot be marked again, which keeps reset tokens single-use.
func (r *passwordResetRepository) MarkUsed(ctx context.Context, id string) error {
	query := `UPDATE linap.password_resets SET used = TRUE WHERE id = $1 AND used = FALSE`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark password reset used: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("password reset with id %s not found: %w", id, ErrNotFound)
	}

	return nil
}

// DeleteExpired removes expired password reset tokens
func (r *passwordResetRepository) DeleteExpired(ctx context.Context) error {
	query := `DELETE FROM linap.password_resets WHERE expires_at < NOW()`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to delete expired password resets: %w", err)
	}

	return nil
}

// emailVerificationRepository implements EmailVerificationRepository interface
type emailVerificationRepository struct {
	db querier
}

// NewEmailVerificationRepository creates a new email verification repository
func NewEmailVerificationRepository(db *database.Postgres) EmailVerificationRepository {
	return &emailVerificationRepository{db: db.DB}
}

// Create creates a new email verification token
func (r *emailVerificationRepository) Create(ctx context.Context, verification *domain.EmailVerification) error {
	query := `
		INSERT INTO linap.email_verifications (id, user_id, token, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	if verification.ID == "" {
		verification.ID = uuid.New().String()
	}
	if verification.CreatedAt.IsZero() {
		verification.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		verification.ID,
		verification.UserID,
		verification.Token,
		verification.ExpiresAt,
		verification.CreatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("user with id %s not found: %w", verification.UserID, ErrNotFound)
		}
		return fmt.Errorf("failed to create email verification: %w", err)
	}

	return nil
}

// GetByToken retrieves an email verification record by token
func (r *emailVerificationRepository) GetByToken(ctx context.Context, token string) (*domain.EmailVerification, error) {
	query := `
		SELECT id, user_id, token, expires_at, created_at
		FROM linap.email_verifications
		WHERE token = $1
	`

	verification := &domain.EmailVerification{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&verification.ID,
		&verification.UserID,
		&verification.Token,
		&verification.ExpiresAt,
		&verification.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("email verification token not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get email verification: %w", err)
	}

	return verification, nil
}

// Delete removes an email verification token after it has been consumed
func (r *emailVerificationRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM linap.email_verifications WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete email verification: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("email verification with id %s not found: %w", id, ErrNotFound)
	}

	return nil
}

// DeleteExpired removes expired email verification tokens
func (r *emailVerificationRepository) DeleteExpired(ctx context.Context) error {
	query := `DELETE FROM linap.email_verifications WHERE expires_at < NOW()`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to delete expired email verifications: %w", err)
	}

	return nil
}
