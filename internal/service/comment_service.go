package service

import (
	"context"
	"fmt"

	"github.com/linapteam/linap-api/internal/domain"
	"github.com/linapteam/linap-api/internal/dto"
	"github.com/linapteam/linap-api/internal/repository"
)

// commentService implements CommentService interface
type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// NewCommentService creates a new comment service
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) CommentService {
	return &commentService{commentRepo: commentRepo, postRepo: postRepo}
}

// Create creates a comment on a post. A reply must point at a live comment on
// the same post.
func (s *commentService) Create(ctx context.Context, userID, postID string, req *dto.CreateCommentRequest) (*domain.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != postID {
			return nil, fmt.Errorf("parent comment belongs to a different post: %w", ErrInvalidInput)
		}
		if parent.IsDeleted {
			return nil, fmt.Errorf("cannot reply to a deleted comment: %w", ErrInvalidInput)
		}
	}

	comment := &domain.Comment{
		UserID:   &userID,
		PostID:   postID,
		ParentID: req.ParentID,
		Content:  req.Content,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// GetByID retrieves a comment by ID
func (s *commentService) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	return s.commentRepo.GetByID(ctx, id)
}

// ListByPost lists a post's comments, oldest first. Deleted comments are
// included as placeholders so reply threads stay intact.
func (s *commentService) ListByPost(ctx context.Context, postID string, skip, limit int) ([]*domain.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	return s.commentRepo.ListByPost(ctx, postID, skip, limit)
}

// ListByUser lists a user's live comments, newest first
func (s *commentService) ListByUser(ctx context.Context, userID string, skip, limit int) ([]*domain.Comment, error) {
	return s.commentRepo.ListByUser(ctx, userID, skip, limit)
}

// requireAuthor loads a comment and verifies the actor wrote it
func (s *commentService) requireAuthor(ctx context.Context, actorID, commentID string) (*domain.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if comment.UserID == nil || *comment.UserID != actorID {
		return nil, fmt.Errorf("comment does not belong to user: %w", ErrForbidden)
	}

	return comment, nil
}

// Update edits a comment written by the actor. Deleted comments cannot be
// edited.
func (s *commentService) Update(ctx context.Context, actorID, commentID, content string) (*domain.Comment, error) {
	comment, err := s.requireAuthor(ctx, actorID, commentID)
	if err != nil {
		return nil, err
	}

	if comment.IsDeleted {
		return nil, fmt.Errorf("comment is deleted: %w", ErrInvalidInput)
	}

	return s.commentRepo.UpdateContent(ctx, commentID, content)
}

// Delete logically deletes a comment written by the actor. The row stays in
// place with blanked content so replies keep their parent.
func (s *commentService) Delete(ctx context.Context, actorID, commentID string) error {
	if _, err := s.requireAuthor(ctx, actorID, commentID); err != nil {
		return err
	}

	return s.commentRepo.SoftDelete(ctx, commentID)
}
