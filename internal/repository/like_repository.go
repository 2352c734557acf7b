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

// likeRepository implements LikeRepository interface
type likeRepository struct {
	db querier
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *database.Postgres) LikeRepository {
	return &likeRepository{db: db.DB}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *likeRepository) WithTx(tx *sql.Tx) LikeRepository {
	return &likeRepository{db: tx}
}

// Create inserts a like row. UNIQUE(user_id, target_type, target_id) makes a
// second like by the same user a conflict, closing the duplicate-like race.
func (r *likeRepository) Create(ctx context.Context, like *domain.Like) error {
	query := `
		INSERT INTO linap.likes (id, user_id, target_type, target_id, value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if like.ID == "" {
		like.ID = uuid.New().String()
	}
	if like.CreatedAt.IsZero() {
		like.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		like.ID,
		like.UserID,
		like.TargetType,
		like.TargetID,
		like.Value,
		like.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user already reacted to this %s: %w", like.TargetType, ErrConflict)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("user not found: %w", ErrNotFound)
		}
		return fmt.Errorf("failed to create like: %w", err)
	}

	return nil
}

// GetByUserAndTarget retrieves a like by user and target
func (r *likeRepository) GetByUserAndTarget(ctx context.Context, userID, targetType, targetID string) (*domain.Like, error) {
	query := `
		SELECT id, user_id, target_type, target_id, value, created_at
		FROM linap.likes
		WHERE user_id = $1 AND target_type = $2 AND target_id = $3
	`

	like := &domain.Like{}
	err := r.db.QueryRowContext(ctx, query, userID, targetType, targetID).Scan(
		&like.ID,
		&like.UserID,
		&like.TargetType,
		&like.TargetID,
		&like.Value,
		&like.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("like not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get like: %w", err)
	}

	return like, nil
}

// DeleteByUserAndTarget removes a like and returns its value, so callers can
// reverse counter adjustments in the same transaction.
func (r *likeRepository) DeleteByUserAndTarget(ctx context.Context, userID, targetType, targetID string) (int, error) {
	query := `
		DELETE FROM linap.likes
		WHERE user_id = $1 AND target_type = $2 AND target_id = $3
		RETURNING value
	`

	var value int
	err := r.db.QueryRowContext(ctx, query, userID, targetType, targetID).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("like not found: %w", ErrNotFound)
		}
		return 0, fmt.Errorf("failed to delete like: %w", err)
	}

	return value, nil
}

func (r *likeRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Like, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}
	defer rows.Close()

	var likes []*domain.Like
	for rows.Next() {
		like := &domain.Like{}
		err := rows.Scan(
			&like.ID,
			&like.UserID,
			&like.TargetType,
			&like.TargetID,
			&like.Value,
			&like.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan like: %w", err)
		}
		likes = append(likes, like)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate likes: %w", err)
	}

	return likes, nil
}

// ListByUser retrieves all likes by a user, newest first
func (r *likeRepository) ListByUser(ctx context.Context, userID string, skip, limit int) ([]*domain.Like, error) {
	query := `
		SELECT id, user_id, target_type, target_id, value, created_at
		FROM linap.likes
		WHERE user_id = $1
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3
	`

	return r.list(ctx, query, userID, skip, limit)
}

// ListByTarget retrieves all likes on a target, newest first
func (r *likeRepository) ListByTarget(ctx context.Context, targetType, targetID string, skip, limit int) ([]*domain.Like, error) {
	query := `
		SELECT id, user_id, target_type, target_id, value, created_at
		FROM linap.likes
		WHERE target_type = $1 AND target_id = $2
		ORDER BY created_at DESC
		OFFSET $3 LIMIT $4
	`

	return r.list(ctx, query, targetType, targetID, skip, limit)
}
