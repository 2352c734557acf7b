package service

import (
	"context"
	"errors"
	"testing"

	"github.com/linapteam/linap-api/internal/domain"
	"github.com/linapteam/linap-api/internal/dto"
	"github.com/linapteam/linap-api/internal/repository"
)

func TestCreatePostDerivesSlug(t *testing.T) {
	var created *domain.Post

	svc := NewPostService(
		&mockPostRepo{
			createFn: func(ctx context.Context, post *domain.Post) error {
				created = post
				return nil
			},
		}, nil)

	post, err := svc.Create(context.Background(), "u1", &dto.CreatePostRequest{Title: "Haven Retake Guide"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if post.Slug != "haven-retake-guide" {
		t.Errorf("Slug = %q, want haven-retake-guide", post.Slug)
	}
	if post.Type != defaultPostType {
		t.Errorf("Type = %q, want %q", post.Type, defaultPostType)
	}
	if post.Published {
		t.Error("new posts must start unpublished")
	}
	if created == nil || created.OwnerID == nil || *created.OwnerID != "u1" {
		t.Errorf("unexpected post row: %+v", created)
	}
}

func TestCreatePostUnsluggableTitle(t *testing.T) {
	svc := NewPostService(nil, nil)

	_, err := svc.Create(context.Background(), "u1", &dto.CreatePostRequest{Title: "!!!"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Create() error = %v, want ErrInvalidInput", err)
	}
}

func TestUpdatePostOfAnotherUser(t *testing.T) {
	svc := NewPostService(
		&mockPostRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Post, error) {
				owner := "someone-else"
				return &domain.Post{ID: id, OwnerID: &owner}, nil
			},
		}, nil)

	title := "New Title"
	_, err := svc.Update(context.Background(), "u1", "p1", &dto.UpdatePostRequest{Title: &title})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("Update() error = %v, want ErrForbidden", err)
	}
}

func TestUpdateOrphanedPost(t *testing.T) {
	// Posts whose owner was deleted keep a NULL owner and become read-only.
	svc := NewPostService(
		&mockPostRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Post, error) {
				return &domain.Post{ID: id, OwnerID: nil}, nil
			},
		}, nil)

	title := "New Title"
	_, err := svc.Update(context.Background(), "u1", "p1", &dto.UpdatePostRequest{Title: &title})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("Update() error = %v, want ErrForbidden", err)
	}
}

func TestAttachTagChecksTagExists(t *testing.T) {
	svc := NewPostService(
		&mockPostRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Post, error) {
				owner := "u1"
				return &domain.Post{ID: id, OwnerID: &owner}, nil
			},
		},
		&mockTagRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Tag, error) {
				return nil, repository.ErrNotFound
			},
		})

	err := svc.AttachTag(context.Background(), "u1", "p1", "missing-tag")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("AttachTag() error = %v, want ErrNotFound", err)
	}
}

func TestRegisterViewReturnsNewCount(t *testing.T) {
	svc := NewPostService(
		&mockPostRepo{
			incrementViewsFn: func(ctx context.Context, id string) (int64, error) {
				return 42, nil
			},
		}, nil)

	views, err := svc.RegisterView(context.Background(), "p1")
	if err != nil {
		t.Fatalf("RegisterView() error = %v", err)
	}
	if views != 42 {
		t.Errorf("views = %d, want 42", views)
	}
}
