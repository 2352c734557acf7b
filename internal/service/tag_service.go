package service

import (
	"context"
	"fmt"

	"github.com/linapteam/linap-api/internal/domain"
	"github.com/linapteam/linap-api/internal/dto"
	"github.com/linapteam/linap-api/internal/repository"
	"github.com/linapteam/linap-api/internal/utils"
)

// tagService implements TagService interface
type tagService struct {
	tagRepo repository.TagRepository
}

// NewTagService creates a new tag service
func NewTagService(tagRepo repository.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

// Create creates a tag. A missing slug is derived from the name.
func (s *tagService) Create(ctx context.Context, req *dto.CreateTagRequest) (*domain.Tag, error) {
	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}
	if slug == "" {
		return nil, fmt.Errorf("tag slug cannot be derived from name: %w", ErrInvalidInput)
	}

	tag := &domain.Tag{
		Name: req.Name,
		Slug: slug,
	}

	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}

	return tag, nil
}

// GetByID retrieves a tag by ID
func (s *tagService) GetByID(ctx context.Context, id string) (*domain.Tag, error) {
	return s.tagRepo.GetByID(ctx, id)
}

// GetByName retrieves a tag by its exact name
func (s *tagService) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	return s.tagRepo.GetByName(ctx, name)
}

// List lists tags ordered by name
func (s *tagService) List(ctx context.Context, skip, limit int) ([]*domain.Tag, error) {
	return s.tagRepo.List(ctx, skip, limit)
}

// Update applies a patch to a tag
func (s *tagService) Update(ctx context.Context, id string, req *dto.UpdateTagRequest) (*domain.Tag, error) {
	patch := repository.TagPatch{
		Name: req.Name,
		Slug: req.Slug,
	}

	return s.tagRepo.Update(ctx, id, patch)
}

// Delete removes a tag
func (s *tagService) Delete(ctx context.Context, id string) error {
	return s.tagRepo.Delete(ctx, id)
}
