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

const mapColumns = `id, name, slug, description, thumbnail_url, created_at, updated_at`

// mapRepository implements MapRepository interface
type mapRepository struct {
	db querier
}

// NewMapRepository creates a new map repository
func NewMapRepository(db *database.Postgres) MapRepository {
	return &mapRepository{db: db.DB}
}

// Create creates a new map. Name and slug uniqueness is enforced by the database.
func (r *mapRepository) Create(ctx context.Context, m *domain.Map) error {
	query := `
		INSERT INTO linap.maps (id, name, slug, description, thumbnail_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if m.ID == "" {
		m.ID = uuid.New().String()
	}

	now := time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.Name,
		m.Slug,
		m.Description,
		m.ThumbnailURL,
		m.CreatedAt,
		m.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("map with this name or slug already exists: %w", ErrConflict)
		}
		return fmt.Errorf("failed to create map: %w", err)
	}

	return nil
}

func (r *mapRepository) scanMap(row *sql.Row) (*domain.Map, error) {
	m := &domain.Map{}
	err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Slug,
		&m.Description,
		&m.ThumbnailURL,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// GetByID retrieves a map by ID
func (r *mapRepository) GetByID(ctx context.Context, id string) (*domain.Map, error) {
	query := `SELECT ` + mapColumns + ` FROM linap.maps WHERE id = $1`

	m, err := r.scanMap(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("map with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get map: %w", err)
	}

	return m, nil
}

// GetBySlug retrieves a map by slug
func (r *mapRepository) GetBySlug(ctx context.Context, slug string) (*domain.Map, error) {
	query := `SELECT ` + mapColumns + ` FROM linap.maps WHERE slug = $1`

	m, err := r.scanMap(r.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("map %s not found: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get map: %w", err)
	}

	return m, nil
}

// List retrieves maps ordered by name
func (r *mapRepository) List(ctx context.Context, skip, limit int) ([]*domain.Map, error) {
	query := `SELECT ` + mapColumns + ` FROM linap.maps ORDER BY name OFFSET $1 LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list maps: %w", err)
	}
	defer rows.Close()

	var maps []*domain.Map
	for rows.Next() {
		m := &domain.Map{}
		err := rows.Scan(
			&m.ID,
			&m.Name,
			&m.Slug,
			&m.Description,
			&m.ThumbnailURL,
			&m.CreatedAt,
			&m.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan map: %w", err)
		}
		maps = append(maps, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate maps: %w", err)
	}

	return maps, nil
}

// Update applies the non-nil patch fields and returns the updated map
func (r *mapRepository) Update(ctx context.Context, id string, patch MapPatch) (*domain.Map, error) {
	query := `
		UPDATE linap.maps
		SET name = COALESCE($2, name),
			slug = COALESCE($3, slug),
			description = COALESCE($4, description),
			thumbnail_url = COALESCE($5, thumbnail_url),
			updated_at = $6
		WHERE id = $1
		RETURNING ` + mapColumns

	m, err := r.scanMap(r.db.QueryRowContext(ctx, query,
		id,
		patch.Name,
		patch.Slug,
		patch.Description,
		patch.ThumbnailURL,
		time.Now(),
	))

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("map with id %s not found: %w", id, ErrNotFound)
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("map with this name or slug already exists: %w", ErrConflict)
		}
		return nil, fmt.Errorf("failed to update map: %w", err)
	}

	return m, nil
}

// Delete removes a map. Posts and videos referencing it keep a null map_id.
func (r *mapRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM linap.maps WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete map: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("map with id %s not found: %w", id, ErrNotFound)
	}

	return nil
}
