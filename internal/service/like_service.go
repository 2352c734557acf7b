package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/linapteam/linap-api/internal/domain"
	"github.com/linapteam/linap-api/internal/repository"
	"github.com/linapteam/linap-api/pkg/database"
)

// likeService implements LikeService interface
type likeService struct {
	db          *database.Postgres
	likeRepo    repository.LikeRepository
	postRepo    repository.PostRepository
	videoRepo   repository.VideoRepository
	commentRepo repository.CommentRepository
}

// NewLikeService creates a new like service
func NewLikeService(
	db *database.Postgres,
	likeRepo repository.LikeRepository,
	postRepo repository.PostRepository,
	videoRepo repository.VideoRepository,
	commentRepo repository.CommentRepository,
) LikeService {
	return &likeService{
		db:          db,
		likeRepo:    likeRepo,
		postRepo:    postRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
	}
}

// Like records a reaction. Only videos accept dislikes; a video's counters are
// adjusted in the same transaction as the like row, so the counter can never
// drift from the rows behind it. A second reaction by the same user is a
// conflict regardless of value.
func (s *likeService) Like(ctx context.Context, userID, targetType, targetID string, value int) (*domain.Like, error) {
	if value == 0 {
		value = domain.LikeValueUp
	}
	if value != domain.LikeValueUp && value != domain.LikeValueDown {
		return nil, fmt.Errorf("reaction value must be 1 or -1: %w", ErrInvalidInput)
	}
	if value == domain.LikeValueDown && targetType != domain.LikeTargetVideo {
		return nil, fmt.Errorf("only videos accept dislikes: %w", ErrInvalidInput)
	}

	if err := s.checkTarget(ctx, targetType, targetID); err != nil {
		return nil, err
	}

	like := &domain.Like{
		UserID:     userID,
		TargetType: targetType,
		TargetID:   targetID,
		Value:      value,
	}

	if targetType == domain.LikeTargetVideo {
		likesDelta, dislikesDelta := counterDeltas(value, 1)
		err := s.db.WithinTx(ctx, func(tx *sql.Tx) error {
			if err := s.likeRepo.WithTx(tx).Create(ctx, like); err != nil {
				return err
			}
			return s.videoRepo.WithTx(tx).AddReactionCounts(ctx, targetID, likesDelta, dislikesDelta)
		})
		if err != nil {
			return nil, err
		}
		return like, nil
	}

	if err := s.likeRepo.Create(ctx, like); err != nil {
		return nil, err
	}

	return like, nil
}

// Unlike removes a reaction. For videos the matching counter is decremented in
// the same transaction.
func (s *likeService) Unlike(ctx context.Context, userID, targetType, targetID string) error {
	if !validLikeTarget(targetType) {
		return fmt.Errorf("unknown reaction target %q: %w", targetType, ErrInvalidInput)
	}

	if targetType == domain.LikeTargetVideo {
		return s.db.WithinTx(ctx, func(tx *sql.Tx) error {
			value, err := s.likeRepo.WithTx(tx).DeleteByUserAndTarget(ctx, userID, targetType, targetID)
			if err != nil {
				return err
			}
			likesDelta, dislikesDelta := counterDeltas(value, -1)
			return s.videoRepo.WithTx(tx).AddReactionCounts(ctx, targetID, likesDelta, dislikesDelta)
		})
	}

	_, err := s.likeRepo.DeleteByUserAndTarget(ctx, userID, targetType, targetID)
	return err
}

// Get returns the caller's reaction on a target, or ErrNotFound if there is none
func (s *likeService) Get(ctx context.Context, userID, targetType, targetID string) (*domain.Like, error) {
	if !validLikeTarget(targetType) {
		return nil, fmt.Errorf("unknown reaction target %q: %w", targetType, ErrInvalidInput)
	}

	return s.likeRepo.GetByUserAndTarget(ctx, userID, targetType, targetID)
}

// ListByUser lists a user's reactions, newest first
func (s *likeService) ListByUser(ctx context.Context, userID string, skip, limit int) ([]*domain.Like, error) {
	return s.likeRepo.ListByUser(ctx, userID, skip, limit)
}

// ListByTarget lists the reactions on a target, newest first
func (s *likeService) ListByTarget(ctx context.Context, targetType, targetID string, skip, limit int) ([]*domain.Like, error) {
	if !validLikeTarget(targetType) {
		return nil, fmt.Errorf("unknown reaction target %q: %w", targetType, ErrInvalidInput)
	}

	return s.likeRepo.ListByTarget(ctx, targetType, targetID, skip, limit)
}

// checkTarget verifies the reaction target exists and can be reacted to
func (s *likeService) checkTarget(ctx context.Context, targetType, targetID string) error {
	switch targetType {
	case domain.LikeTargetPost:
		_, err := s.postRepo.GetByID(ctx, targetID)
		return err
	case domain.LikeTargetVideo:
		_, err := s.videoRepo.GetByID(ctx, targetID)
		return err
	case domain.LikeTargetComment:
		comment, err := s.commentRepo.GetByID(ctx, targetID)
		if err != nil {
			return err
		}
		if comment.IsDeleted {
			return fmt.Errorf("cannot react to a deleted comment: %w", ErrInvalidInput)
		}
		return nil
	default:
		return fmt.Errorf("unknown reaction target %q: %w", targetType, ErrInvalidInput)
	}
}

func validLikeTarget(targetType string) bool {
	switch targetType {
	case domain.LikeTargetPost, domain.LikeTargetVideo, domain.LikeTargetComment:
		return true
	}
	return false
}

// counterDeltas maps a reaction value to (likesDelta, dislikesDelta). Sign is
// +1 when adding a reaction and -1 when removing one.
func counterDeltas(value, sign int) (int, int) {
	if value == domain.LikeValueDown {
		return 0, sign
	}
	return sign, 0
}
