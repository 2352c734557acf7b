package service

import (
	"context"
	"fmt"

	"github.com/linapteam/linap-api/internal/domain"
	"github.com/linapteam/linap-api/internal/dto"
	"github.com/linapteam/linap-api/internal/repository"
)

// videoService implements VideoService interface
type videoService struct {
	videoRepo repository.VideoRepository
}

// NewVideoService creates a new video service
func NewVideoService(videoRepo repository.VideoRepository) VideoService {
	return &videoService{videoRepo: videoRepo}
}

// Create creates a video owned by the caller. Videos are published on
// creation; counters start at zero.
func (s *videoService) Create(ctx context.Context, ownerID string, req *dto.CreateVideoRequest) (*domain.Video, error) {
	video := &domain.Video{
		OwnerID:     &ownerID,
		Title:       req.Title,
		Description: req.Description,
		MapID:       req.MapID,
		Agent:       req.Agent,
		Side:        req.Side,
		VideoURL:    req.VideoURL,
		ThumbURL:    req.ThumbURL,
		Published:   true,
	}

	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, err
	}

	return video, nil
}

// GetByID retrieves a video by ID
func (s *videoService) GetByID(ctx context.Context, id string) (*domain.Video, error) {
	return s.videoRepo.GetByID(ctx, id)
}

// List lists videos matching the filter
func (s *videoService) List(ctx context.Context, filter repository.VideoFilter, skip, limit int) ([]*domain.Video, error) {
	return s.videoRepo.List(ctx, filter, skip, limit)
}

// requireOwner loads a video and verifies the actor owns it
func (s *videoService) requireOwner(ctx context.Context, actorID, videoID string) (*domain.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if video.OwnerID == nil || *video.OwnerID != actorID {
		return nil, fmt.Errorf("video does not belong to user: %w", ErrForbidden)
	}

	return video, nil
}

// Update applies a patch to a video owned by the actor
func (s *videoService) Update(ctx context.Context, actorID, videoID string, req *dto.UpdateVideoRequest) (*domain.Video, error) {
	if _, err := s.requireOwner(ctx, actorID, videoID); err != nil {
		return nil, err
	}

	patch := repository.VideoPatch{
		Title:       req.Title,
		Description: req.Description,
		MapID:       req.MapID,
		Agent:       req.Agent,
		Side:        req.Side,
		VideoURL:    req.VideoURL,
		ThumbURL:    req.ThumbURL,
		Published:   req.Published,
	}

	return s.videoRepo.Update(ctx, videoID, patch)
}

// RegisterView atomically bumps the view counter and returns the new value
func (s *videoService) RegisterView(ctx context.Context, videoID string) (int64, error) {
	return s.videoRepo.IncrementViews(ctx, videoID)
}

// Delete removes a video owned by the actor
func (s *videoService) Delete(ctx context.Context, actorID, videoID string) error {
	if _, err := s.requireOwner(ctx, actorID, videoID); err != nil {
		return err
	}

	return s.videoRepo.Delete(ctx, videoID)
}
