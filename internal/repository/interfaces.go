package repository

import (
	"context"
	"database/sql"

	"github.com/linapteam/linap-api/internal/domain"
)

// UserPatch lists the user fields that may be changed. Nil fields are left
// untouched.
type UserPatch struct {
	Username    *string
	DisplayName *string
	Bio         *string
	AvatarURL   *string
	Locale      *string
	Timezone    *string
}

// PostPatch lists the post fields that may be changed
type PostPatch struct {
	Title   *string
	Slug    *string
	Excerpt *string
	Content *string
	Type    *string
	MapID   *string
}

// VideoPatch lists the video fields that may be changed
type VideoPatch struct {
	Title       *string
	Description *string
	MapID       *string
	Agent       *string
	Side        *string
	VideoURL    *string
	ThumbURL    *string
	Published   *bool
}

// TagPatch lists the tag fields that may be changed
type TagPatch struct {
	Name *string
	Slug *string
}

// MapPatch lists the map fields that may be changed
type MapPatch struct {
	Name         *string
	Slug         *string
	Description  *string
	ThumbnailURL *string
}

// AgentPatch lists the agent fields that may be changed
type AgentPatch struct {
	Name        *string
	Role        *string
	Origin      *string
	Description *string
	PortraitURL *string
}

// AbilityPatch lists the ability fields that may be changed
type AbilityPatch struct {
	Name            *string
	Key             *string
	Description     *string
	CooldownSeconds *int
}

// VideoFilter narrows video listings. Nil fields match everything.
type VideoFilter struct {
	OwnerID *string
	Agent   *string
	MapID   *string
}

// UserRepository defines methods for user operations
type UserRepository interface {
	WithTx(tx *sql.Tx) UserRepository
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	UpdateAvatar(ctx context.Context, id, avatarURL string) error
	SetActive(ctx context.Context, id string, active bool) error
	SetEmailVerified(ctx context.Context, id string) error
}

// AuthAccountRepository defines methods for credential records
type AuthAccountRepository interface {
	WithTx(tx *sql.Tx) AuthAccountRepository
	Create(ctx context.Context, account *domain.AuthAccount) error
	GetLocalByUserID(ctx context.Context, userID string) (*domain.AuthAccount, error)
	UpdatePasswordHash(ctx context.Context, accountID, passwordHash string) error
	UpdateLastLogin(ctx context.Context, accountID string) error
}

// SessionRepository defines methods for refresh token sessions
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error)
	ListByUserID(ctx context.Context, userID string) ([]*domain.Session, error)
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
	DeleteByUserID(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context) error
}

// PostRepository defines methods for post operations
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Post, error)
	ListPublished(ctx context.Context, skip, limit int) ([]*domain.Post, error)
	ListByOwner(ctx context.Context, ownerID string, skip, limit int) ([]*domain.Post, error)
	Update(ctx context.Context, id string, patch PostPatch) (*domain.Post, error)
	SetPublished(ctx context.Context, id string, published bool) error
	IncrementViews(ctx context.Context, id string) (int64, error)
	Delete(ctx context.Context, id string) error
	AttachTag(ctx context.Context, postID, tagID string) error
	DetachTag(ctx context.Context, postID, tagID string) error
	ListTags(ctx context.Context, postID string) ([]*domain.Tag, error)
}

// VideoRepository defines methods for video operations
type VideoRepository interface {
	WithTx(tx *sql.Tx) VideoRepository
	Create(ctx context.Context, video *domain.Video) error
	GetByID(ctx context.Context, id string) (*domain.Video, error)
	List(ctx context.Context, filter VideoFilter, skip, limit int) ([]*domain.Video, error)
	Update(ctx context.Context, id string, patch VideoPatch) (*domain.Video, error)
	IncrementViews(ctx context.Context, id string) (int64, error)
	AddReactionCounts(ctx context.Context, id string, likesDelta, dislikesDelta int) error
	Delete(ctx context.Context, id string) error
}

// CommentRepository defines methods for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id string) (*domain.Comment, error)
	ListByPost(ctx context.Context, postID string, skip, limit int) ([]*domain.Comment, error)
	ListByUser(ctx context.Context, userID string, skip, limit int) ([]*domain.Comment, error)
	UpdateContent(ctx context.Context, id, content string) (*domain.Comment, error)
	SoftDelete(ctx context.Context, id string) error
}

// LikeRepository defines methods for like operations
type LikeRepository interface {
	WithTx(tx *sql.Tx) LikeRepository
	Create(ctx context.Context, like *domain.Like) error
	GetByUserAndTarget(ctx context.Context, userID, targetType, targetID string) (*domain.Like, error)
	DeleteByUserAndTarget(ctx context.Context, userID, targetType, targetID string) (int, error)
	ListByUser(ctx context.Context, userID string, skip, limit int) ([]*domain.Like, error)
	ListByTarget(ctx context.Context, targetType, targetID string, skip, limit int) ([]*domain.Like, error)
}

// TagRepository defines methods for tag operations
type TagRepository interface {
	Create(ctx context.Context, tag *domain.Tag) error
	GetByID(ctx context.Context, id string) (*domain.Tag, error)
	GetByName(ctx context.Context, name string) (*domain.Tag, error)
	List(ctx context.Context, skip, limit int) ([]*domain.Tag, error)
	Update(ctx context.Context, id string, patch TagPatch) (*domain.Tag, error)
	Delete(ctx context.Context, id string) error
}

// MapRepository defines methods for map operations
type MapRepository interface {
	Create(ctx context.Context, m *domain.Map) error
	GetByID(ctx context.Context, id string) (*domain.Map, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Map, error)
	List(ctx context.Context, skip, limit int) ([]*domain.Map, error)
	Update(ctx context.Context, id string, patch MapPatch) (*domain.Map, error)
	Delete(ctx context.Context, id string) error
}

// AgentRepository defines methods for agent and ability operations
type AgentRepository interface {
	Create(ctx context.Context, agent *domain.Agent) error
	GetByID(ctx context.Context, id string) (*domain.Agent, error)
	GetByName(ctx context.Context, name string) (*domain.Agent, error)
	List(ctx context.Context, skip, limit int) ([]*domain.Agent, error)
	Update(ctx context.Context, id string, patch AgentPatch) (*domain.Agent, error)
	Delete(ctx context.Context, id string) error

	CreateAbility(ctx context.Context, ability *domain.Ability) error
	GetAbilityByID(ctx context.Context, id string) (*domain.Ability, error)
	ListAbilities(ctx context.Context, agentID string) ([]*domain.Ability, error)
	UpdateAbility(ctx context.Context, id string, patch AbilityPatch) (*domain.Ability, error)
	DeleteAbility(ctx context.Context, id string) error
}

// PasswordResetRepository defines methods for password reset tokens
type PasswordResetRepository interface {
	Create(ctx context.Context, reset *domain.PasswordReset) error
	GetByToken(ctx context.Context, token string) (*domain.PasswordReset, error)
	MarkUsed(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) error
}

// EmailVerificationRepository defines methods for email verification tokens
type EmailVerificationRepository interface {
	Create(ctx context.Context, verification *domain.EmailVerification) error
	GetByToken(ctx context.Context, token string) (*domain.EmailVerification, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) error
}
