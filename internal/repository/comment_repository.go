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

const commentColumns = `id, user_id, post_id, parent_id, content, is_deleted, created_at, updated_at`

// commentRepository implements CommentRepository interface
type commentRepository struct {
	db querier
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *database.Postgres) CommentRepository {
	return &commentRepository{db: db.DB}
}

// Create creates a new comment
func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO linap.comments (id, user_id, post_id, parent_id, content, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}

	now := time.Now()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = now
	}
	if comment.UpdatedAt.IsZero() {
		comment.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		comment.ID,
		comment.UserID,
		comment.PostID,
		comment.ParentID,
		comment.Content,
		comment.IsDeleted,
		comment.CreatedAt,
		comment.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("referenced post, user or parent comment not found: %w", ErrNotFound)
		}
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

func scanComment(row *sql.Row) (*domain.Comment, error) {
	comment := &domain.Comment{}
	err := row.Scan(
		&comment.ID,
		&comment.UserID,
		&comment.PostID,
		&comment.ParentID,
		&comment.Content,
		&comment.IsDeleted,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// GetByID retrieves a comment by ID
func (r *commentRepository) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM linap.comments WHERE id = $1`

	comment, err := scanComment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("comment with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get comment by id: %w", err)
	}

	return comment, nil
}

func (r *commentRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		comment := &domain.Comment{}
		err := rows.Scan(
			&comment.ID,
			&comment.UserID,
			&comment.PostID,
			&comment.ParentID,
			&comment.Content,
			&comment.IsDeleted,
			&comment.CreatedAt,
			&comment.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}

	return comments, nil
}

// ListByPost retrieves comments of a post, newest first. Deleted comments are
// returned with blanked content so reply trees stay walkable.
func (r *commentRepository) ListByPost(ctx context.Context, postID string, skip, limit int) ([]*domain.Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM linap.comments
		WHERE post_id = $1
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3
	`

	return r.list(ctx, query, postID, skip, limit)
}

// ListByUser retrieves non-deleted comments written by a user, newest first
func (r *commentRepository) ListByUser(ctx context.Context, userID string, skip, limit int) ([]*domain.Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM linap.comments
		WHERE user_id = $1 AND is_deleted = FALSE
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3
	`

	return r.list(ctx, query, userID, skip, limit)
}

// UpdateContent replaces the content of a non-deleted comment
func (r *commentRepository) UpdateContent(ctx context.Context, id, content string) (*domain.Comment, error) {
	query := `
		UPDATE linap.comments
		SET content = $2, updated_at = $3
		WHERE id = $1 AND is_deleted = FALSE
		RETURNING ` + commentColumns

	comment, err := scanComment(r.db.QueryRowContext(ctx, query, id, content, time.Now()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("comment with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return comment, nil
}

// SoftDelete marks a comment as deleted and blanks its content. The row is
// kept so replies stay attached to the tree.
func (r *commentRepository) SoftDelete(ctx context.Context, id string) error {
	query := `
		UPDATE linap.comments
		SET is_deleted = TRUE, content = '', updated_at = $2
		WHERE id = $1 AND is_deleted = FALSE
	`

	result, err := r.db.ExecContext(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("comment with id %s not found: %w", id, ErrNotFound)
	}

	return nil
}
