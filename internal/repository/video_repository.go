package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/linapteam/linap-api/internal/domain"
	"github.com/linapteam/linap-api/pkg/database"
)

const videoColumns = `id, owner_id, title, description, map_id, agent, side, video_url, thumb_url,
		views, likes, dislikes, published, created_at, updated_at`

// videoRepository implements VideoRepository interface
type videoRepository struct {
	db querier
}

// NewVideoRepository creates a new video repository
func NewVideoRepository(db *database.Postgres) VideoRepository {
	return &videoRepository{db: db.DB}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *videoRepository) WithTx(tx *sql.Tx) VideoRepository {
	return &videoRepository{db: tx}
}

// Create creates a new video
func (r *videoRepository) Create(ctx context.Context, video *domain.Video) error {
	query := `
		INSERT INTO linap.videos (id, owner_id, title, description, map_id, agent, side, video_url, thumb_url,
			views, likes, dislikes, published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	if video.ID == "" {
		video.ID = uuid.New().String()
	}

	now := time.Now()
	if video.CreatedAt.IsZero() {
		video.CreatedAt = now
	}
	if video.UpdatedAt.IsZero() {
		video.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		video.ID,
		video.OwnerID,
		video.Title,
		video.Description,
		video.MapID,
		video.Agent,
		video.Side,
		video.VideoURL,
		video.ThumbURL,
		video.Views,
		video.Likes,
		video.Dislikes,
		video.Published,
		video.CreatedAt,
		video.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("referenced owner or map not found: %w", ErrNotFound)
		}
		return fmt.Errorf("failed to create video: %w", err)
	}

	return nil
}

func scanVideo(row *sql.Row) (*domain.Video, error) {
	video := &domain.Video{}
	err := row.Scan(
		&video.ID,
		&video.OwnerID,
		&video.Title,
		&video.Description,
		&video.MapID,
		&video.Agent,
		&video.Side,
		&video.VideoURL,
		&video.ThumbURL,
		&video.Views,
		&video.Likes,
		&video.Dislikes,
		&video.Published,
		&video.CreatedAt,
		&video.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return video, nil
}

// GetByID retrieves a video by ID
func (r *videoRepository) GetByID(ctx context.Context, id string) (*domain.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM linap.videos WHERE id = $1`

	video, err := scanVideo(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("video with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get video by id: %w", err)
	}

	return video, nil
}

// List retrieves videos matching the filter, most viewed first when filtered
// by agent or map, newest first otherwise
func (r *videoRepository) List(ctx context.Context, filter VideoFilter, skip, limit int) ([]*domain.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM linap.videos WHERE 1=1`
	args := []any{}

	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		query += ` AND owner_id = $` + strconv.Itoa(len(args))
	}
	if filter.Agent != nil {
		args = append(args, *filter.Agent)
		query += ` AND agent = $` + strconv.Itoa(len(args))
	}
	if filter.MapID != nil {
		args = append(args, *filter.MapID)
		query += ` AND map_id = $` + strconv.Itoa(len(args))
	}

	if filter.Agent != nil || filter.MapID != nil {
		query += ` ORDER BY views DESC`
	} else {
		query += ` ORDER BY created_at DESC`
	}

	args = append(args, skip)
	query += ` OFFSET $` + strconv.Itoa(len(args))
	args = append(args, limit)
	query += ` LIMIT $` + strconv.Itoa(len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	var videos []*domain.Video
	for rows.Next() {
		video := &domain.Video{}
		err := rows.Scan(
			&video.ID,
			&video.OwnerID,
			&video.Title,
			&video.Description,
			&video.MapID,
			&video.Agent,
			&video.Side,
			&video.VideoURL,
			&video.ThumbURL,
			&video.Views,
			&video.Likes,
			&video.Dislikes,
			&video.Published,
			&video.CreatedAt,
			&video.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate videos: %w", err)
	}

	return videos, nil
}

// Update applies the non-nil patch fields and returns the updated video
func (r *videoRepository) Update(ctx context.Context, id string, patch VideoPatch) (*domain.Video, error) {
	query := `
		UPDATE linap.videos
		SET title = COALESCE($2, title),
			description = COALESCE($3, description),
			map_id = COALESCE($4, map_id),
			agent = COALESCE($5, agent),
			side = COALESCE($6, side),
			video_url = COALESCE($7, video_url),
			thumb_url = COALESCE($8, thumb_url),
			published = COALESCE($9, published),
			updated_at = $10
		WHERE id = $1
		RETURNING ` + videoColumns

	video, err := scanVideo(r.db.QueryRowContext(ctx, query,
		id,
		patch.Title,
		patch.Description,
		patch.MapID,
		patch.Agent,
		patch.Side,
		patch.VideoURL,
		patch.ThumbURL,
		patch.Published,
		time.Now(),
	))

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("video with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update video: %w", err)
	}

	return video, nil
}

// IncrementViews atomically increments the view counter and returns the new
// value
func (r *videoRepository) IncrementViews(ctx context.Context, id string) (int64, error) {
	query := `UPDATE linap.videos SET views = views + 1 WHERE id = $1 RETURNING views`

	var views int64
	err := r.db.QueryRowContext(ctx, query, id).Scan(&views)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("video with id %s not found: %w", id, ErrNotFound)
		}
		return 0, fmt.Errorf("failed to increment views: %w", err)
	}

	return views, nil
}

// AddReactionCounts atomically adjusts the like/dislike counters. Callers run
// this in the same transaction as the like-row write so the counters cannot
// drift from the per-user like rows.
func (r *videoRepository) AddReactionCounts(ctx context.Context, id string, likesDelta, dislikesDelta int) error {
	query := `UPDATE linap.videos SET likes = likes + $2, dislikes = dislikes + $3 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, likesDelta, dislikesDelta)
	if err != nil {
		return fmt.Errorf("failed to update reaction counts: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("video with id %s not found: %w", id, ErrNotFound)
	}

	return nil
}

// Delete deletes a video
func (r *videoRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM linap.videos WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("video with id %s not found: %w", id, ErrNotFound)
	}

	return nil
}
