package service

import (
	"context"
	"fmt"
	"time"

	"github.com/linapteam/linap-api/internal/domain"
	"github.com/linapteam/linap-api/internal/dto"
)

// AuthResult contains the issued token pair and user info
type AuthResult struct {
	Response              *dto.TokenResponse
	RefreshTokenExpiresIn int
}

// issueTokens generates an access/refresh token pair and records the refresh
// token session (hash only).
func (s *authService) issueTokens(ctx context.Context, user *domain.User) (*AuthResult, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	session := &domain.Session{
		UserID:    user.ID,
		TokenHash: s.hashToken(refreshToken),
		ExpiresAt: time.Now().Add(s.refreshTokenExpiry),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &AuthResult{
		Response: &dto.TokenResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			TokenType:    "Bearer",
			ExpiresIn:    s.jwtManager.GetAccessTokenExpiry(),
			User: dto.UserInfo{
				ID:       user.ID,
				Username: user.Username,
				Email:    user.Email,
			},
		},
		RefreshTokenExpiresIn: int(s.refreshTokenExpiry.Seconds()),
	}, nil
}
