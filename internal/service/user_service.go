package service

import (
	"context"
	"fmt"

	"github.com/linapteam/linap-api/internal/domain"
	"github.com/linapteam/linap-api/internal/dto"
	"github.com/linapteam/linap-api/internal/repository"
	"github.com/linapteam/linap-api/internal/utils"
)

// userService implements UserService interface
type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// GetByID retrieves a user by ID
func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetByUsername retrieves a user by username
func (s *userService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.userRepo.GetByUsername(ctx, username)
}

// Update applies a profile patch to the calling user
func (s *userService) Update(ctx context.Context, userID string, req *dto.UpdateUserRequest) (*domain.User, error) {
	if req.Username != nil && !utils.ValidateUsername(*req.Username) {
		return nil, fmt.Errorf("username must be 3-50 characters of letters, digits, '_', '.' or '-': %w", ErrInvalidInput)
	}

	patch := repository.UserPatch{
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
		Locale:      req.Locale,
		Timezone:    req.Timezone,
	}

	return s.userRepo.Update(ctx, userID, patch)
}

// UpdateAvatar updates the avatar URL of the calling user
func (s *userService) UpdateAvatar(ctx context.Context, userID, avatarURL string) error {
	return s.userRepo.UpdateAvatar(ctx, userID, avatarURL)
}

// Deactivate disables a user account. Sessions stay in place but login and
// refresh are rejected for inactive users.
func (s *userService) Deactivate(ctx context.Context, userID string) error {
	return s.userRepo.SetActive(ctx, userID, false)
}

// Activate re-enables a user account
func (s *userService) Activate(ctx context.Context, userID string) error {
	return s.userRepo.SetActive(ctx, userID, true)
}
