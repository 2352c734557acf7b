package service

import (
	"context"
	"fmt"

	"github.com/linapteam/linap-api/internal/domain"
	"github.com/linapteam/linap-api/internal/dto"
	"github.com/linapteam/linap-api/internal/repository"
	"github.com/linapteam/linap-api/internal/utils"
)

const defaultPostType = "article"

// postService implements PostService interface
type postService struct {
	postRepo repository.PostRepository
	tagRepo  repository.TagRepository
}

// NewPostService creates a new post service
func NewPostService(postRepo repository.PostRepository, tagRepo repository.TagRepository) PostService {
	return &postService{postRepo: postRepo, tagRepo: tagRepo}
}

// Create creates an unpublished post owned by the caller. A missing slug is
// derived from the title; slug uniqueness is enforced by the database.
func (s *postService) Create(ctx context.Context, ownerID string, req *dto.CreatePostRequest) (*domain.Post, error) {
	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Title)
	}
	if slug == "" {
		return nil, fmt.Errorf("post slug cannot be derived from title: %w", ErrInvalidInput)
	}

	postType := req.Type
	if postType == "" {
		postType = defaultPostType
	}

	post := &domain.Post{
		OwnerID: &ownerID,
		Title:   req.Title,
		Slug:    slug,
		Excerpt: req.Excerpt,
		Content: req.Content,
		Type:    postType,
		MapID:   req.MapID,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// GetByID retrieves a post by ID
func (s *postService) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// GetBySlug retrieves a post by slug
func (s *postService) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	return s.postRepo.GetBySlug(ctx, slug)
}

// ListPublished lists published posts, newest first
func (s *postService) ListPublished(ctx context.Context, skip, limit int) ([]*domain.Post, error) {
	return s.postRepo.ListPublished(ctx, skip, limit)
}

// ListByOwner lists all posts of an owner, newest first
func (s *postService) ListByOwner(ctx context.Context, ownerID string, skip, limit int) ([]*domain.Post, error) {
	return s.postRepo.ListByOwner(ctx, ownerID, skip, limit)
}

// requireOwner loads a post and verifies the actor owns it
func (s *postService) requireOwner(ctx context.Context, actorID, postID string) (*domain.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.OwnerID == nil || *post.OwnerID != actorID {
		return nil, fmt.Errorf("post does not belong to user: %w", ErrForbidden)
	}

	return post, nil
}

// Update applies a patch to a post owned by the actor
func (s *postService) Update(ctx context.Context, actorID, postID string, req *dto.UpdatePostRequest) (*domain.Post, error) {
	if _, err := s.requireOwner(ctx, actorID, postID); err != nil {
		return nil, err
	}

	patch := repository.PostPatch{
		Title:   req.Title,
		Slug:    req.Slug,
		Excerpt: req.Excerpt,
		Content: req.Content,
		Type:    req.Type,
		MapID:   req.MapID,
	}

	return s.postRepo.Update(ctx, postID, patch)
}

// SetPublished publishes or unpublishes a post owned by the actor
func (s *postService) SetPublished(ctx context.Context, actorID, postID string, published bool) error {
	if _, err := s.requireOwner(ctx, actorID, postID); err != nil {
		return err
	}

	return s.postRepo.SetPublished(ctx, postID, published)
}

// RegisterView atomically bumps the view counter and returns the new value
func (s *postService) RegisterView(ctx context.Context, postID string) (int64, error) {
	return s.postRepo.IncrementViews(ctx, postID)
}

// Delete removes a post owned by the actor
func (s *postService) Delete(ctx context.Context, actorID, postID string) error {
	if _, err := s.requireOwner(ctx, actorID, postID); err != nil {
		return err
	}

	return s.postRepo.Delete(ctx, postID)
}

// AttachTag attaches a tag to a post owned by the actor
func (s *postService) AttachTag(ctx context.Context, actorID, postID, tagID string) error {
	if _, err := s.requireOwner(ctx, actorID, postID); err != nil {
		return err
	}

	if _, err := s.tagRepo.GetByID(ctx, tagID); err != nil {
		return err
	}

	return s.postRepo.AttachTag(ctx, postID, tagID)
}

// DetachTag detaches a tag from a post owned by the actor
func (s *postService) DetachTag(ctx context.Context, actorID, postID, tagID string) error {
	if _, err := s.requireOwner(ctx, actorID, postID); err != nil {
		return err
	}

	return s.postRepo.DetachTag(ctx, postID, tagID)
}

// ListTags lists the tags of a post
func (s *postService) ListTags(ctx context.Context, postID string) ([]*domain.Tag, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	return s.postRepo.ListTags(ctx, postID)
}
