package domain

import "time"

// User represents a user in the system
type User struct {
	ID              string    `json:"id" db:"id"`
	Username        string    `json:"username" db:"username"`
	Email           string    `json:"email" db:"email"`
	DisplayName     *string   `json:"display_name" db:"display_name"`
	Bio             *string   `json:"bio" db:"bio"`
	AvatarURL       *string   `json:"avatar_url" db:"avatar_url"`
	Locale          *string   `json:"locale" db:"locale"`
	Timezone        *string   `json:"timezone" db:"timezone"`
	IsActive        bool      `json:"is_active" db:"is_active"`
	IsEmailVerified bool      `json:"is_email_verified" db:"is_email_verified"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// ProviderLocal is the provider name for password-based accounts.
const ProviderLocal = "local"

// AuthAccount represents a credential record for a user. Local accounts carry
// a bcrypt password hash; external providers carry a provider user ID instead.
type AuthAccount struct {
	ID           string     `json:"id" db:"id"`
	UserID       string     `json:"user_id" db:"user_id"`
	Provider     string     `json:"provider" db:"provider"`
	ProviderID   *string    `json:"provider_id" db:"provider_id"`
	PasswordHash *string    `json:"-" db:"password_hash"`
	IsPrimary    bool       `json:"is_primary" db:"is_primary"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at" db:"last_login_at"`
}

// Session represents a refresh token session. Only a SHA256 hash of the
// refresh token is stored.
type Session struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	TokenHash  string    `json:"-" db:"refresh_token_hash"`
	ExpiresAt  time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	DeviceInfo *string   `json:"device_info" db:"device_info"`
	IPAddress  *string   `json:"ip_address" db:"ip"`
}

// PasswordReset represents a single-use password reset token
type PasswordReset struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Token     string    `json:"-" db:"token"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Used      bool      `json:"used" db:"used"`
}

// EmailVerification represents a single-use email verification token
type EmailVerification struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Token     string    `json:"-" db:"token"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
