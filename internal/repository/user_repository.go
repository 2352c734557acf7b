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

const userColumns = `id, username, email, display_name, bio, avatar_url, locale, timezone,
		is_active, is_email_verified, created_at, updated_at`

// userRepository implements UserRepository interface
type userRepository struct {
	db querier
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.Postgres) UserRepository {
	return &userRepository{db: db.DB}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *userRepository) WithTx(tx *sql.Tx) UserRepository {
	return &userRepository{db: tx}
}

// Create creates a new user. Username and email uniqueness is enforced by the
// database; violations are reported as ErrConflict.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO linap.users (id, username, email, display_name, bio, avatar_url, locale, timezone,
			is_active, is_email_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.DisplayName,
		user.Bio,
		user.AvatarURL,
		user.Locale,
		user.Timezone,
		user.IsActive,
		user.IsEmailVerified,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user with this username or email already exists: %w", ErrConflict)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *userRepository) scanUser(row *sql.Row) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.DisplayName,
		&user.Bio,
		&user.AvatarURL,
		&user.Locale,
		&user.Timezone,
		&user.IsActive,
		&user.IsEmailVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM linap.users WHERE id = $1`

	user, err := r.scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// GetByUsername retrieves a user by username
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM linap.users WHERE username = $1`

	user, err := r.scanUser(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with username %s not found: %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM linap.users WHERE email = $1`

	user, err := r.scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with email %s not found: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// Update applies the non-nil patch fields and returns the updated user
func (r *userRepository) Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error) {
	query := `
		UPDATE linap.users
		SET username = COALESCE($2, username),
			display_name = COALESCE($3, display_name),
			bio = COALESCE($4, bio),
			avatar_url = COALESCE($5, avatar_url),
			locale = COALESCE($6, locale),
			timezone = COALESCE($7, timezone),
			updated_at = $8
		WHERE id = $1
		RETURNING ` + userColumns

	user, err := r.scanUser(r.db.QueryRowContext(ctx, query,
		id,
		patch.Username,
		patch.DisplayName,
		patch.Bio,
		patch.AvatarURL,
		patch.Locale,
		patch.Timezone,
		time.Now(),
	))

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with id %s not found: %w", id, ErrNotFound)
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("user with this username already exists: %w", ErrConflict)
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// UpdateAvatar updates the avatar URL for a user
func (r *userRepository) UpdateAvatar(ctx context.Context, id, avatarURL string) error {
	query := `UPDATE linap.users SET avatar_url = $2, updated_at = $3 WHERE id = $1`

	return r.exec(ctx, query, "user", id, avatarURL, time.Now())
}

// SetActive toggles the is_active flag for a user
func (r *userRepository) SetActive(ctx context.Context, id string, active bool) error {
	query := `UPDATE linap.users SET is_active = $2, updated_at = $3 WHERE id = $1`

	return r.exec(ctx, query, "user", id, active, time.Now())
}

// SetEmailVerified marks a user's email as verified
func (r *userRepository) SetEmailVerified(ctx context.Context, id string) error {
	query := `UPDATE linap.users SET is_email_verified = TRUE, updated_at = $2 WHERE id = $1`

	return r.exec(ctx, query, "user", id, time.Now())
}

func (r *userRepository) exec(ctx context.Context, query, entity, id string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, append([]any{id}, args...)...)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", entity, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%s with id %s not found: %w", entity, id, ErrNotFound)
	}

	return nil
}
