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

// authAccountRepository implements AuthAccountRepository interface
type authAccountRepository struct {
	db querier
}

// NewAuthAccountRepository creates a new auth account repository
func NewAuthAccountRepository(db *database.Postgres) AuthAccountRepository {
	return &authAccountRepository{db: db.DB}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *authAccountRepository) WithTx(tx *sql.Tx) AuthAccountRepository {
	return &authAccountRepository{db: tx}
}

// Create creates a new auth account. UNIQUE(user_id, provider) guarantees at
// most one account per provider per user.
func (r *authAccountRepository) Create(ctx context.Context, account *domain.AuthAccount) error {
	query := `
		INSERT INTO linap.auth_accounts (id, user_id, provider, provider_id, password_hash, is_primary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.UserID,
		account.Provider,
		account.ProviderID,
		account.PasswordHash,
		account.IsPrimary,
		account.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("auth account for provider %s already exists: %w", account.Provider, ErrConflict)
		}
		return fmt.Errorf("failed to create auth account: %w", err)
	}

	return nil
}

// GetLocalByUserID retrieves the password-based account for a user
func (r *authAccountRepository) GetLocalByUserID(ctx context.Context, userID string) (*domain.AuthAccount, error) {
	query := `
		SELECT id, user_id, provider, provider_id, password_hash, is_primary, created_at, last_login_at
		FROM linap.auth_accounts
		WHERE user_id = $1 AND provider = $2
	`

	account := &domain.AuthAccount{}
	var lastLoginAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, userID, domain.ProviderLocal).Scan(
		&account.ID,
		&account.UserID,
		&account.Provider,
		&account.ProviderID,
		&account.PasswordHash,
		&account.IsPrimary,
		&account.CreatedAt,
		&lastLoginAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("local auth account for user %s not found: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get auth account: %w", err)
	}

	if lastLoginAt.Valid {
		account.LastLoginAt = &lastLoginAt.Time
	}

	return account, nil
}

// UpdatePasswordHash replaces the stored password hash
func (r *authAccountRepository) UpdatePasswordHash(ctx context.Context, accountID, passwordHash string) error {
	query := `UPDATE linap.auth_accounts SET password_hash = $2 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, accountID, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password hash: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("auth account with id %s not found: %w", accountID, ErrNotFound)
	}

	return nil
}

// UpdateLastLogin sets the last login timestamp
func (r *authAccountRepository) UpdateLastLogin(ctx context.Context, accountID string) error {
	query := `UPDATE linap.auth_accounts SET last_login_at = $2 WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, accountID, time.Now()); err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	return nil
}
