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

const postColumns = `id, owner_id, title, slug, excerpt, content, type, map_id,
		published, views, created_at, updated_at`

// postRepository implements PostRepository interface
type postRepository struct {
	db querier
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *database.Postgres) PostRepository {
	return &postRepository{db: db.DB}
}

// Create creates a new post. Slug uniqueness is enforced by the database.
func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	query := `
		INSERT INTO linap.posts (id, owner_id, title, slug, excerpt, content, type, map_id,
			published, views, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if post.Type == "" {
		post.Type = "post"
	}

	now := time.Now()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	if post.UpdatedAt.IsZero() {
		post.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		post.ID,
		post.OwnerID,
		post.Title,
		post.Slug,
		post.Excerpt,
		post.Content,
		post.Type,
		post.MapID,
		post.Published,
		post.Views,
		post.CreatedAt,
		post.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("post with slug %s already exists: %w", post.Slug, ErrConflict)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("referenced owner or map not found: %w", ErrNotFound)
		}
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func scanPost(row *sql.Row) (*domain.Post, error) {
	post := &domain.Post{}
	err := row.Scan(
		&post.ID,
		&post.OwnerID,
		&post.Title,
		&post.Slug,
		&post.Excerpt,
		&post.Content,
		&post.Type,
		&post.MapID,
		&post.Published,
		&post.Views,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return post, nil
}

// GetByID retrieves a post by ID
func (r *postRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	query := `SELECT ` + postColumns + ` FROM linap.posts WHERE id = $1`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}

	return post, nil
}

// GetBySlug retrieves a post by slug
func (r *postRepository) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	query := `SELECT ` + postColumns + ` FROM linap.posts WHERE slug = $1`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post with slug %s not found: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post by slug: %w", err)
	}

	return post, nil
}

func (r *postRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []*domain.Post
	for rows.Next() {
		post := &domain.Post{}
		err := rows.Scan(
			&post.ID,
			&post.OwnerID,
			&post.Title,
			&post.Slug,
			&post.Excerpt,
			&post.Content,
			&post.Type,
			&post.MapID,
			&post.Published,
			&post.Views,
			&post.CreatedAt,
			&post.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return posts, nil
}

// ListPublished retrieves published posts, newest first
func (r *postRepository) ListPublished(ctx context.Context, skip, limit int) ([]*domain.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM linap.posts
		WHERE published = TRUE
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2
	`

	return r.list(ctx, query, skip, limit)
}

// ListByOwner retrieves posts owned by a user, newest first
func (r *postRepository) ListByOwner(ctx context.Context, ownerID string, skip, limit int) ([]*domain.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM linap.posts
		WHERE owner_id = $1
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3
	`

	return r.list(ctx, query, ownerID, skip, limit)
}

// Update applies the non-nil patch fields and returns the updated post
func (r *postRepository) Update(ctx context.Context, id string, patch PostPatch) (*domain.Post, error) {
	query := `
		UPDATE linap.posts
		SET title = COALESCE($2, title),
			slug = COALESCE($3, slug),
			excerpt = COALESCE($4, excerpt),
			content = COALESCE($5, content),
			type = COALESCE($6, type),
			map_id = COALESCE($7, map_id),
			updated_at = $8
		WHERE id = $1
		RETURNING ` + postColumns

	post, err := scanPost(r.db.QueryRowContext(ctx, query,
		id,
		patch.Title,
		patch.Slug,
		patch.Excerpt,
		patch.Content,
		patch.Type,
		patch.MapID,
		time.Now(),
	))

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post with id %s not found: %w", id, ErrNotFound)
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("post with this slug already exists: %w", ErrConflict)
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return post, nil
}

// SetPublished toggles the published flag
func (r *postRepository) SetPublished(ctx context.Context, id string, published bool) error {
	query := `UPDATE linap.posts SET published = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, published, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post with id %s not found: %w", id, ErrNotFound)
	}

	return nil
}

// IncrementViews atomically increments the view counter and returns the new
// value. Concurrent increments are serialized by the store, so no update is
// lost.
func (r *postRepository) IncrementViews(ctx context.Context, id string) (int64, error) {
	query := `UPDATE linap.posts SET views = views + 1 WHERE id = $1 RETURNING views`

	var views int64
	err := r.db.QueryRowContext(ctx, query, id).Scan(&views)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("post with id %s not found: %w", id, ErrNotFound)
		}
		return 0, fmt.Errorf("failed to increment views: %w", err)
	}

	return views, nil
}

// Delete deletes a post
func (r *postRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM linap.posts WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post with id %s not found: %w", id, ErrNotFound)
	}

	return nil
}

// AttachTag links a tag to a post. The composite primary key makes the link
// idempotent-conflicting: attaching twice is a conflict.
func (r *postRepository) AttachTag(ctx context.Context, postID, tagID string) error {
	query := `INSERT INTO linap.post_tags (post_id, tag_id) VALUES ($1, $2)`

	_, err := r.db.ExecContext(ctx, query, postID, tagID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("tag already attached to post: %w", ErrConflict)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("post or tag not found: %w", ErrNotFound)
		}
		return fmt.Errorf("failed to attach tag: %w", err)
	}

	return nil
}

// DetachTag removes a tag from a post
func (r *postRepository) DetachTag(ctx context.Context, postID, tagID string) error {
	query := `DELETE FROM linap.post_tags WHERE post_id = $1 AND tag_id = $2`

	result, err := r.db.ExecContext(ctx, query, postID, tagID)
	if err != nil {
		return fmt.Errorf("failed to detach tag: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("tag not attached to post: %w", ErrNotFound)
	}

	return nil
}

// ListTags retrieves all tags attached to a post
func (r *postRepository) ListTags(ctx context.Context, postID string) ([]*domain.Tag, error) {
	query := `
		SELECT t.id, t.name, t.slug
		FROM linap.tags t
		JOIN linap.post_tags pt ON pt.tag_id = t.id
		WHERE pt.post_id = $1
		ORDER BY t.name
	`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list post tags: %w", err)
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		tag := &domain.Tag{}
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}

	return tags, nil
}
