package service

import (
	"context"

	"github.com/linapteam/linap-api/internal/domain"
	"github.com/linapteam/linap-api/internal/dto"
	"github.com/linapteam/linap-api/internal/repository"
)

// AuthService defines methods for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*AuthResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, userID, refreshToken string) error
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
	RequestEmailVerification(ctx context.Context, userID string) (string, error)
	ConfirmEmailVerification(ctx context.Context, token string) error
	ListSessions(ctx context.Context, userID string) ([]*domain.Session, error)
	ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error)
}

// UserService defines methods for user profile operations
type UserService interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, userID string, req *dto.UpdateUserRequest) (*domain.User, error)
	UpdateAvatar(ctx context.Context, userID, avatarURL string) error
	Deactivate(ctx context.Context, userID string) error
	Activate(ctx context.Context, userID string) error
}

// PostService defines methods for post operations
type PostService interface {
	Create(ctx context.Context, ownerID string, req *dto.CreatePostRequest) (*domain.Post, error)
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Post, error)
	ListPublished(ctx context.Context, skip, limit int) ([]*domain.Post, error)
	ListByOwner(ctx context.Context, ownerID string, skip, limit int) ([]*domain.Post, error)
	Update(ctx context.Context, actorID, postID string, req *dto.UpdatePostRequest) (*domain.Post, error)
	SetPublished(ctx context.Context, actorID, postID string, published bool) error
	RegisterView(ctx context.Context, postID string) (int64, error)
	Delete(ctx context.Context, actorID, postID string) error
	AttachTag(ctx context.Context, actorID, postID, tagID string) error
	DetachTag(ctx context.Context, actorID, postID, tagID string) error
	ListTags(ctx context.Context, postID string) ([]*domain.Tag, error)
}

// VideoService defines methods for video operations
type VideoService interface {
	Create(ctx context.Context, ownerID string, req *dto.CreateVideoRequest) (*domain.Video, error)
	GetByID(ctx context.Context, id string) (*domain.Video, error)
	List(ctx context.Context, filter repository.VideoFilter, skip, limit int) ([]*domain.Video, error)
	Update(ctx context.Context, actorID, videoID string, req *dto.UpdateVideoRequest) (*domain.Video, error)
	RegisterView(ctx context.Context, videoID string) (int64, error)
	Delete(ctx context.Context, actorID, videoID string) error
}

// CommentService defines methods for comment operations
type CommentService interface {
	Create(ctx context.Context, userID, postID string, req *dto.CreateCommentRequest) (*domain.Comment, error)
	GetByID(ctx context.Context, id string) (*domain.Comment, error)
	ListByPost(ctx context.Context, postID string, skip, limit int) ([]*domain.Comment, error)
	ListByUser(ctx context.Context, userID string, skip, limit int) ([]*domain.Comment, error)
	Update(ctx context.Context, actorID, commentID, content string) (*domain.Comment, error)
	Delete(ctx context.Context, actorID, commentID string) error
}

// LikeService defines methods for reactions on posts, videos and comments
type LikeService interface {
	Like(ctx context.Context, userID, targetType, targetID string, value int) (*domain.Like, error)
	Unlike(ctx context.Context, userID, targetType, targetID string) error
	Get(ctx context.Context, userID, targetType, targetID string) (*domain.Like, error)
	ListByUser(ctx context.Context, userID string, skip, limit int) ([]*domain.Like, error)
	ListByTarget(ctx context.Context, targetType, targetID string, skip, limit int) ([]*domain.Like, error)
}

// TagService defines methods for tag operations
type TagService interface {
	Create(ctx context.Context, req *dto.CreateTagRequest) (*domain.Tag, error)
	GetByID(ctx context.Context, id string) (*domain.Tag, error)
	GetByName(ctx context.Context, name string) (*domain.Tag, error)
	List(ctx context.Context, skip, limit int) ([]*domain.Tag, error)
	Update(ctx context.Context, id string, req *dto.UpdateTagRequest) (*domain.Tag, error)
	Delete(ctx context.Context, id string) error
}

// CatalogService defines methods for the maps, agents and abilities reference data
type CatalogService interface {
	CreateMap(ctx context.Context, req *dto.CreateMapRequest) (*domain.Map, error)
	GetMap(ctx context.Context, idOrSlug string) (*domain.Map, error)
	ListMaps(ctx context.Context, skip, limit int) ([]*domain.Map, error)
	UpdateMap(ctx context.Context, id string, req *dto.UpdateMapRequest) (*domain.Map, error)
	DeleteMap(ctx context.Context, id string) error

	CreateAgent(ctx context.Context, req *dto.CreateAgentRequest) (*domain.Agent, error)
	GetAgent(ctx context.Context, idOrName string) (*domain.Agent, error)
	ListAgents(ctx context.Context, skip, limit int) ([]*domain.Agent, error)
	UpdateAgent(ctx context.Context, id string, req *dto.UpdateAgentRequest) (*domain.Agent, error)
	DeleteAgent(ctx context.Context, id string) error

	CreateAbility(ctx context.Context, agentID string, req *dto.CreateAbilityRequest) (*domain.Ability, error)
	ListAbilities(ctx context.Context, agentID string) ([]*domain.Ability, error)
	UpdateAbility(ctx context.Context, id string, req *dto.UpdateAbilityRequest) (*domain.Ability, error)
	DeleteAbility(ctx context.Context, id string) error
}
