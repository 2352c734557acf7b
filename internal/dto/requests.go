package dto

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents a login request. Identifier is a username or email.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest represents a logout request
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// PasswordResetRequest represents a password reset initiation request
type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// PasswordResetConfirmRequest represents a password reset confirmation
type PasswordResetConfirmRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// EmailVerifyConfirmRequest represents an email verification confirmation
type EmailVerifyConfirmRequest struct {
	Token string `json:"token" binding:"required"`
}

// UpdateUserRequest represents a profile update. Absent fields are untouched.
type UpdateUserRequest struct {
	Username    *string `json:"username" binding:"omitempty,min=3,max=50"`
	DisplayName *string `json:"display_name" binding:"omitempty,max=100"`
	Bio         *string `json:"bio" binding:"omitempty,max=1000"`
	AvatarURL   *string `json:"avatar_url" binding:"omitempty,url"`
	Locale      *string `json:"locale" binding:"omitempty,max=10"`
	Timezone    *string `json:"timezone" binding:"omitempty,max=50"`
}

// UpdateAvatarRequest represents an avatar change request
type UpdateAvatarRequest struct {
	AvatarURL string `json:"avatar_url" binding:"required,url"`
}

// CreatePostRequest represents a post creation request
type CreatePostRequest struct {
	Title   string  `json:"title" binding:"required,max=200"`
	Slug    string  `json:"slug" binding:"omitempty,max=200"`
	Excerpt *string `json:"excerpt" binding:"omitempty,max=500"`
	Content *string `json:"content"`
	Type    string  `json:"type" binding:"omitempty,oneof=article guide news"`
	MapID   *string `json:"map_id" binding:"omitempty,uuid"`
}

// UpdatePostRequest represents a post update. Absent fields are untouched.
type UpdatePostRequest struct {
	Title   *string `json:"title" binding:"omitempty,max=200"`
	Slug    *string `json:"slug" binding:"omitempty,max=200"`
	Excerpt *string `json:"excerpt" binding:"omitempty,max=500"`
	Content *string `json:"content"`
	Type    *string `json:"type" binding:"omitempty,oneof=article guide news"`
	MapID   *string `json:"map_id" binding:"omitempty,uuid"`
}

// CreateVideoRequest represents a video creation request
type CreateVideoRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	MapID       *string `json:"map_id" binding:"omitempty,uuid"`
	Agent       *string `json:"agent" binding:"omitempty,max=50"`
	Side        *string `json:"side" binding:"omitempty,oneof=attack defense"`
	VideoURL    *string `json:"video_url" binding:"omitempty,url"`
	ThumbURL    *string `json:"thumb_url" binding:"omitempty,url"`
}

// UpdateVideoRequest represents a video update. Absent fields are untouched.
type UpdateVideoRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	MapID       *string `json:"map_id" binding:"omitempty,uuid"`
	Agent       *string `json:"agent" binding:"omitempty,max=50"`
	Side        *string `json:"side" binding:"omitempty,oneof=attack defense"`
	VideoURL    *string `json:"video_url" binding:"omitempty,url"`
	ThumbURL    *string `json:"thumb_url" binding:"omitempty,url"`
	Published   *bool   `json:"published"`
}

// CreateCommentRequest represents a comment creation request
type CreateCommentRequest struct {
	Content  string  `json:"content" binding:"required,max=5000"`
	ParentID *string `json:"parent_id" binding:"omitempty,uuid"`
}

// UpdateCommentRequest represents a comment edit request
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,max=5000"`
}

// LikeRequest represents a reaction request. Value is 1 for a like and -1 for
// a dislike; only videos accept dislikes.
type LikeRequest struct {
	Value int `json:"value" binding:"omitempty,oneof=1 -1"`
}

// CreateTagRequest represents a tag creation request
type CreateTagRequest struct {
	Name string `json:"name" binding:"required,max=50"`
	Slug string `json:"slug" binding:"omitempty,max=50"`
}

// UpdateTagRequest represents a tag update. Absent fields are untouched.
type UpdateTagRequest struct {
	Name *string `json:"name" binding:"omitempty,max=50"`
	Slug *string `json:"slug" binding:"omitempty,max=50"`
}

// CreateMapRequest represents a map creation request
type CreateMapRequest struct {
	Name         string  `json:"name" binding:"required,max=100"`
	Slug         string  `json:"slug" binding:"omitempty,max=100"`
	Description  *string `json:"description" binding:"omitempty,max=2000"`
	ThumbnailURL *string `json:"thumbnail_url" binding:"omitempty,url"`
}

// UpdateMapRequest represents a map update. Absent fields are untouched.
type UpdateMapRequest struct {
	Name         *string `json:"name" binding:"omitempty,max=100"`
	Slug         *string `json:"slug" binding:"omitempty,max=100"`
	Description  *string `json:"description" binding:"omitempty,max=2000"`
	ThumbnailURL *string `json:"thumbnail_url" binding:"omitempty,url"`
}

// CreateAgentRequest represents an agent creation request
type CreateAgentRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Role        *string `json:"role" binding:"omitempty,max=50"`
	Origin      *string `json:"origin" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	PortraitURL *string `json:"portrait_url" binding:"omitempty,url"`
}

// UpdateAgentRequest represents an agent update. Absent fields are untouched.
type UpdateAgentRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Role        *string `json:"role" binding:"omitempty,max=50"`
	Origin      *string `json:"origin" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	PortraitURL *string `json:"portrait_url" binding:"omitempty,url"`
}

// CreateAbilityRequest represents an ability creation request
type CreateAbilityRequest struct {
	Name            string  `json:"name" binding:"required,max=100"`
	Key             *string `json:"key" binding:"omitempty,max=10"`
	Description     *string `json:"description" binding:"omitempty,max=2000"`
	CooldownSeconds *int    `json:"cooldown_seconds" binding:"omitempty,min=0"`
}

// UpdateAbilityRequest represents an ability update. Absent fields are untouched.
type UpdateAbilityRequest struct {
	Name            *string `json:"name" binding:"omitempty,max=100"`
	Key             *string `json:"key" binding:"omitempty,max=10"`
	Description     *string `json:"description" binding:"omitempty,max=2000"`
	CooldownSeconds *int    `json:"cooldown_seconds" binding:"omitempty,min=0"`
}
