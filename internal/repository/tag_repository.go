package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/linapteam/linap-api/internal/domain"
	"github.com/linapteam/linap-api/pkg/database"
)

// tagRepository implements TagRepository interface
type tagRepository struct {
	db querier
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *database.Postgres) TagRepository {
	return &tagRepository{db: db.DB}
}

// Create creates a new tag. Name and slug uniqueness is enforced by the database.
func (r *tagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	query := `INSERT INTO linap.tags (id, name, slug) VALUES ($1, $2, $3)`

	if tag.ID == "" {
		tag.ID = uuid.New().String()
	}

	_, err := r.db.ExecContext(ctx, query, tag.ID, tag.Name, tag.Slug)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("tag with this name or slug already exists: %w", ErrConflict)
		}
		return fmt.Errorf("failed to create tag: %w", err)
	}

	return nil
}

// GetByID retrieves a tag by ID
func (r *tagRepository) GetByID(ctx context.Context, id string) (*domain.Tag, error) {
	query := `SELECT id, name, slug FROM linap.tags WHERE id = $1`

	tag := &domain.Tag{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&tag.ID, &tag.Name, &tag.Slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("tag with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	return tag, nil
}

// GetByName retrieves a tag by name
func (r *tagRepository) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	query := `SELECT id, name, slug FROM linap.tags WHERE name = $1`

	tag := &domain.Tag{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(&tag.ID, &tag.Name, &tag.Slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("tag %s not found: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	return tag, nil
}

// List retrieves tags ordered by name
func (r *tagRepository) List(ctx context.Context, skip, limit int) ([]*domain.Tag, error) {
	query := `SELECT id, name, slug FROM linap.tags ORDER BY name OFFSET $1 LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
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

// Update applies the non-nil patch fields and returns the updated tag
func (r *tagRepository) Update(ctx context.Context, id string, patch TagPatch) (*domain.Tag, error) {
	query := `
		UPDATE linap.tags
		SET name = COALESCE($2, name),
			slug = COALESCE($3, slug)
		WHERE id = $1
		RETURNING id, name, slug
	`

	tag := &domain.Tag{}
	err := r.db.QueryRowContext(ctx, query, id, patch.Name, patch.Slug).
		Scan(&tag.ID, &tag.Name, &tag.Slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("tag with id %s not found: %w", id, ErrNotFound)
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("tag with this name or slug already exists: %w", ErrConflict)
		}
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}

	return tag, nil
}

// Delete removes a tag. Rows in post_tags cascade.
func (r *tagRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM linap.tags WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("tag with id %s not found: %w", id, ErrNotFound)
	}

	return nil
}
