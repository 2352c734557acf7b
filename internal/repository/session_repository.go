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

// sessionRepository implements SessionRepository interface
type sessionRepository struct {
	db querier
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *database.Postgres) SessionRepository {
	return &sessionRepository{db: db.DB}
}

// Create creates a new session. The refresh token hash is unique.
func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	query := `
		INSERT INTO linap.sessions (id, user_id, refresh_token_hash, expires_at, created_at, device_info, ip)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		session.ID,
		session.UserID,
		session.TokenHash,
		session.ExpiresAt,
		session.CreatedAt,
		session.DeviceInfo,
		session.IPAddress,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("session with this token hash already exists: %w", ErrConflict)
		}
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// GetByTokenHash retrieves a session by its refresh token hash
func (r *sessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error) {
	query := `
		SELECT id, user_id, refresh_token_hash, expires_at, created_at, device_info, ip
		FROM linap.sessions
		WHERE refresh_token_hash = $1
	`

	session := &domain.Session{}
	var deviceInfo, ipAddress sql.NullString

	err := r.db.QueryRowContext(ctx, query, tokenHash).Scan(
		&session.ID,
		&session.UserID,
		&session.TokenHash,
		&session.ExpiresAt,
		&session.CreatedAt,
		&deviceInfo,
		&ipAddress,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get session by token hash: %w", err)
	}

	if deviceInfo.Valid {
		session.DeviceInfo = &deviceInfo.String
	}
	if ipAddress.Valid {
		session.IPAddress = &ipAddress.String
	}

	return session, nil
}

// ListByUserID retrieves all sessions for a user
func (r *sessionRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Session, error) {
	query := `
		SELECT id, user_id, refresh_token_hash, expires_at, created_at, device_info, ip
		FROM linap.sessions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.Session
	for rows.Next() {
		session := &domain.Session{}
		var deviceInfo, ipAddress sql.NullString

		err := rows.Scan(
			&session.ID,
			&session.UserID,
			&session.TokenHash,
			&session.ExpiresAt,
			&session.CreatedAt,
			&deviceInfo,
			&ipAddress,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}

		if deviceInfo.Valid {
			session.DeviceInfo = &deviceInfo.String
		}
		if ipAddress.Valid {
			session.IPAddress = &ipAddress.String
		}

		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	return sessions, nil
}

// DeleteByTokenHash deletes a session by its refresh token hash
func (r *sessionRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	query := `DELETE FROM linap.sessions WHERE refresh_token_hash = $1`

	result, err := r.db.ExecContext(ctx, query, tokenHash)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("session not found: %w", ErrNotFound)
	}

	return nil
}

// DeleteByUserID deletes all sessions for a user
func (r *sessionRepository) DeleteByUserID(ctx context.Context, userID string) error {
	query := `DELETE FROM linap.sessions WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete sessions for user: %w", err)
	}

	return nil
}

// DeleteExpired deletes all expired sessions
func (r *sessionRepository) DeleteExpired(ctx context.Context) error {
	query := `DELETE FROM linap.sessions WHERE expires_at < $1`

	if _, err := r.db.ExecContext(ctx, query, time.Now()); err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	return nil
}
