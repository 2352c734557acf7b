package utils

import (
	"testing"
	"time"
)

const testSecret = "test-secret-key-that-is-at-least-32-characters-long"

func newTestManager() *JWTManager {
	return NewJWTManager(testSecret, 15*time.Minute, 7*24*time.Hour)
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	manager := newTestManager()

	token, err := manager.GenerateAccessToken("user-123", "shroud")
	if err != nil {
		t.Fatalf("Failed to generate access token: %v", err)
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}

	if claims.UserID != "user-123" {
		t.Errorf("Expected UserID 'user-123', got '%s'", claims.UserID)
	}

	if claims.Username != "shroud" {
		t.Errorf("Expected Username 'shroud', got '%s'", claims.Username)
	}

	if claims.IsExpired() {
		t.Error("Freshly issued token should not be expired")
	}
}

func TestValidateTokenWithWrongSecret(t *testing.T) {
	manager := newTestManager()
	other := NewJWTManager("another-secret-key-that-is-32-chars-long!!", 15*time.Minute, 7*24*time.Hour)

	token, err := manager.GenerateAccessToken("user-123", "shroud")
	if err != nil {
		t.Fatalf("Failed to generate access token: %v", err)
	}

	if _, err := other.ValidateToken(token); err == nil {
		t.Error("Expected error when validating token with wrong secret")
	}
}

func TestValidateExpiredToken(t *testing.T) {
	manager := NewJWTManager(testSecret, -time.Minute, 7*24*time.Hour)

	token, err := manager.GenerateAccessToken("user-123", "shroud")
	if err != nil {
		t.Fatalf("Failed to generate access token: %v", err)
	}

	if _, err := manager.ValidateToken(token); err == nil {
		t.Error("Expected error when validating expired token")
	}
}

func TestValidateRefreshToken(t *testing.T) {
	manager := newTestManager()

	token, err := manager.GenerateRefreshToken("user-123")
	if err != nil {
		t.Fatalf("Failed to generate refresh token: %v", err)
	}

	userID, err := manager.ValidateRefreshToken(token)
	if err != nil {
		t.Fatalf("Failed to validate refresh token: %v", err)
	}

	if userID != "user-123" {
		t.Errorf("Expected user ID 'user-123', got '%s'", userID)
	}
}

func TestAccessTokenIsNotARefreshToken(t *testing.T) {
	manager := newTestManager()

	token, err := manager.GenerateAccessToken("user-123", "shroud")
	if err != nil {
		t.Fatalf("Failed to generate access token: %v", err)
	}

	if _, err := manager.ValidateRefreshToken(token); err == nil {
		t.Error("Expected error when using an access token as a refresh token")
	}
}

func TestGetAccessTokenExpiry(t *testing.T) {
	manager := newTestManager()

	if got := manager.GetAccessTokenExpiry(); got != 900 {
		t.Errorf("Expected access token expiry 900s, got %d", got)
	}
}
