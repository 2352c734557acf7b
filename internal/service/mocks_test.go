package service

import (
	"context"
	"database/sql"

	"github.com/linapteam/linap-api/internal/domain"
	"github.com/linapteam/linap-api/internal/repository"
)

// Function-field mocks: each test wires only the calls it expects, anything
// else panics with a nil function call and fails the test loudly.

type mockUserRepo struct {
	createFn           func(ctx context.Context, user *domain.User) error
	getByIDFn          func(ctx context.Context, id string) (*domain.User, error)
	getByUsernameFn    func(ctx context.Context, username string) (*domain.User, error)
	getByEmailFn       func(ctx context.Context, email string) (*domain.User, error)
	updateFn           func(ctx context.Context, id string, patch repository.UserPatch) (*domain.User, error)
	updateAvatarFn     func(ctx context.Context, id, avatarURL string) error
	setActiveFn        func(ctx context.Context, id string, active bool) error
	setEmailVerifiedFn func(ctx context.Context, id string) error
}

func (m *mockUserRepo) WithTx(tx *sql.Tx) repository.UserRepository { return m }
func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.createFn(ctx, user)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return m.getByUsernameFn(ctx, username)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.getByEmailFn(ctx, email)
}
func (m *mockUserRepo) Update(ctx context.Context, id string, patch repository.UserPatch) (*domain.User, error) {
	return m.updateFn(ctx, id, patch)
}
func (m *mockUserRepo) UpdateAvatar(ctx context.Context, id, avatarURL string) error {
	return m.updateAvatarFn(ctx, id, avatarURL)
}
func (m *mockUserRepo) SetActive(ctx context.Context, id string, active bool) error {
	return m.setActiveFn(ctx, id, active)
}
func (m *mockUserRepo) SetEmailVerified(ctx context.Context, id string) error {
	return m.setEmailVerifiedFn(ctx, id)
}

type mockAuthAccountRepo struct {
	createFn             func(ctx context.Context, account *domain.AuthAccount) error
	getLocalByUserIDFn   func(ctx context.Context, userID string) (*domain.AuthAccount, error)
	updatePasswordHashFn func(ctx context.Context, accountID, passwordHash string) error
	updateLastLoginFn    func(ctx context.Context, accountID string) error
}

func (m *mockAuthAccountRepo) WithTx(tx *sql.Tx) repository.AuthAccountRepository { return m }
func (m *mockAuthAccountRepo) Create(ctx context.Context, account *domain.AuthAccount) error {
	return m.createFn(ctx, account)
}
func (m *mockAuthAccountRepo) GetLocalByUserID(ctx context.Context, userID string) (*domain.AuthAccount, error) {
	return m.getLocalByUserIDFn(ctx, userID)
}
func (m *mockAuthAccountRepo) UpdatePasswordHash(ctx context.Context, accountID, passwordHash string) error {
	return m.updatePasswordHashFn(ctx, accountID, passwordHash)
}
func (m *mockAuthAccountRepo) UpdateLastLogin(ctx context.Context, accountID string) error {
	return m.updateLastLoginFn(ctx, accountID)
}

type mockSessionRepo struct {
	createFn            func(ctx context.Context, session *domain.Session) error
	getByTokenHashFn    func(ctx context.Context, tokenHash string) (*domain.Session, error)
	listByUserIDFn      func(ctx context.Context, userID string) ([]*domain.Session, error)
	deleteByTokenHashFn func(ctx context.Context, tokenHash string) error
	deleteByUserIDFn    func(ctx context.Context, userID string) error
	deleteExpiredFn     func(ctx context.Context) error
}

func (m *mockSessionRepo) Create(ctx context.Context, session *domain.Session) error {
	return m.createFn(ctx, session)
}
func (m *mockSessionRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error) {
	return m.getByTokenHashFn(ctx, tokenHash)
}
func (m *mockSessionRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Session, error) {
	return m.listByUserIDFn(ctx, userID)
}
func (m *mockSessionRepo) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	return m.deleteByTokenHashFn(ctx, tokenHash)
}
func (m *mockSessionRepo) DeleteByUserID(ctx context.Context, userID string) error {
	return m.deleteByUserIDFn(ctx, userID)
}
func (m *mockSessionRepo) DeleteExpired(ctx context.Context) error {
	return m.deleteExpiredFn(ctx)
}

type mockPostRepo struct {
	createFn         func(ctx context.Context, post *domain.Post) error
	getByIDFn        func(ctx context.Context, id string) (*domain.Post, error)
	getBySlugFn      func(ctx context.Context, slug string) (*domain.Post, error)
	listPublishedFn  func(ctx context.Context, skip, limit int) ([]*domain.Post, error)
	listByOwnerFn    func(ctx context.Context, ownerID string, skip, limit int) ([]*domain.Post, error)
	updateFn         func(ctx context.Context, id string, patch repository.PostPatch) (*domain.Post, error)
	setPublishedFn   func(ctx context.Context, id string, published bool) error
	incrementViewsFn func(ctx context.Context, id string) (int64, error)
	deleteFn         func(ctx context.Context, id string) error
	attachTagFn      func(ctx context.Context, postID, tagID string) error
	detachTagFn      func(ctx context.Context, postID, tagID string) error
	listTagsFn       func(ctx context.Context, postID string) ([]*domain.Tag, error)
}

func (m *mockPostRepo) Create(ctx context.Context, post *domain.Post) error {
	return m.createFn(ctx, post)
}
func (m *mockPostRepo) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockPostRepo) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	return m.getBySlugFn(ctx, slug)
}
func (m *mockPostRepo) ListPublished(ctx context.Context, skip, limit int) ([]*domain.Post, error) {
	return m.listPublishedFn(ctx, skip, limit)
}
func (m *mockPostRepo) ListByOwner(ctx context.Context, ownerID string, skip, limit int) ([]*domain.Post, error) {
	return m.listByOwnerFn(ctx, ownerID, skip, limit)
}
func (m *mockPostRepo) Update(ctx context.Context, id string, patch repository.PostPatch) (*domain.Post, error) {
	return m.updateFn(ctx, id, patch)
}
func (m *mockPostRepo) SetPublished(ctx context.Context, id string, published bool) error {
	return m.setPublishedFn(ctx, id, published)
}
func (m *mockPostRepo) IncrementViews(ctx context.Context, id string) (int64, error) {
	return m.incrementViewsFn(ctx, id)
}
func (m *mockPostRepo) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}
func (m *mockPostRepo) AttachTag(ctx context.Context, postID, tagID string) error {
	return m.attachTagFn(ctx, postID, tagID)
}
func (m *mockPostRepo) DetachTag(ctx context.Context, postID, tagID string) error {
	return m.detachTagFn(ctx, postID, tagID)
}
func (m *mockPostRepo) ListTags(ctx context.Context, postID string) ([]*domain.Tag, error) {
	return m.listTagsFn(ctx, postID)
}

type mockVideoRepo struct {
	createFn            func(ctx context.Context, video *domain.Video) error
	getByIDFn           func(ctx context.Context, id string) (*domain.Video, error)
	listFn              func(ctx context.Context, filter repository.VideoFilter, skip, limit int) ([]*domain.Video, error)
	updateFn            func(ctx context.Context, id string, patch repository.VideoPatch) (*domain.Video, error)
	incrementViewsFn    func(ctx context.Context, id string) (int64, error)
	addReactionCountsFn func(ctx context.Context, id string, likesDelta, dislikesDelta int) error
	deleteFn            func(ctx context.Context, id string) error
}

func (m *mockVideoRepo) WithTx(tx *sql.Tx) repository.VideoRepository { return m }
func (m *mockVideoRepo) Create(ctx context.Context, video *domain.Video) error {
	return m.createFn(ctx, video)
}
func (m *mockVideoRepo) GetByID(ctx context.Context, id string) (*domain.Video, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockVideoRepo) List(ctx context.Context, filter repository.VideoFilter, skip, limit int) ([]*domain.Video, error) {
	return m.listFn(ctx, filter, skip, limit)
}
func (m *mockVideoRepo) Update(ctx context.Context, id string, patch repository.VideoPatch) (*domain.Video, error) {
	return m.updateFn(ctx, id, patch)
}
func (m *mockVideoRepo) IncrementViews(ctx context.Context, id string) (int64, error) {
	return m.incrementViewsFn(ctx, id)
}
func (m *mockVideoRepo) AddReactionCounts(ctx context.Context, id string, likesDelta, dislikesDelta int) error {
	return m.addReactionCountsFn(ctx, id, likesDelta, dislikesDelta)
}
func (m *mockVideoRepo) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

type mockCommentRepo struct {
	createFn        func(ctx context.Context, comment *domain.Comment) error
	getByIDFn       func(ctx context.Context, id string) (*domain.Comment, error)
	listByPostFn    func(ctx context.Context, postID string, skip, limit int) ([]*domain.Comment, error)
	listByUserFn    func(ctx context.Context, userID string, skip, limit int) ([]*domain.Comment, error)
	updateContentFn func(ctx context.Context, id, content string) (*domain.Comment, error)
	softDeleteFn    func(ctx context.Context, id string) error
}

func (m *mockCommentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	return m.createFn(ctx, comment)
}
func (m *mockCommentRepo) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockCommentRepo) ListByPost(ctx context.Context, postID string, skip, limit int) ([]*domain.Comment, error) {
	return m.listByPostFn(ctx, postID, skip, limit)
}
func (m *mockCommentRepo) ListByUser(ctx context.Context, userID string, skip, limit int) ([]*domain.Comment, error) {
	return m.listByUserFn(ctx, userID, skip, limit)
}
func (m *mockCommentRepo) UpdateContent(ctx context.Context, id, content string) (*domain.Comment, error) {
	return m.updateContentFn(ctx, id, content)
}
func (m *mockCommentRepo) SoftDelete(ctx context.Context, id string) error {
	return m.softDeleteFn(ctx, id)
}

type mockLikeRepo struct {
	createFn                func(ctx context.Context, like *domain.Like) error
	getByUserAndTargetFn    func(ctx context.Context, userID, targetType, targetID string) (*domain.Like, error)
	deleteByUserAndTargetFn func(ctx context.Context, userID, targetType, targetID string) (int, error)
	listByUserFn            func(ctx context.Context, userID string, skip, limit int) ([]*domain.Like, error)
	listByTargetFn          func(ctx context.Context, targetType, targetID string, skip, limit int) ([]*domain.Like, error)
}

func (m *mockLikeRepo) WithTx(tx *sql.Tx) repository.LikeRepository { return m }
func (m *mockLikeRepo) Create(ctx context.Context, like *domain.Like) error {
	return m.createFn(ctx, like)
}
func (m *mockLikeRepo) GetByUserAndTarget(ctx context.Context, userID, targetType, targetID string) (*domain.Like, error) {
	return m.getByUserAndTargetFn(ctx, userID, targetType, targetID)
}
func (m *mockLikeRepo) DeleteByUserAndTarget(ctx context.Context, userID, targetType, targetID string) (int, error) {
	return m.deleteByUserAndTargetFn(ctx, userID, targetType, targetID)
}
func (m *mockLikeRepo) ListByUser(ctx context.Context, userID string, skip, limit int) ([]*domain.Like, error) {
	return m.listByUserFn(ctx, userID, skip, limit)
}
func (m *mockLikeRepo) ListByTarget(ctx context.Context, targetType, targetID string, skip, limit int) ([]*domain.Like, error) {
	return m.listByTargetFn(ctx, targetType, targetID, skip, limit)
}

type mockPasswordResetRepo struct {
	createFn        func(ctx context.Context, reset *domain.PasswordReset) error
	getByTokenFn    func(ctx context.Context, token string) (*domain.PasswordReset, error)
	markUsedFn      func(ctx context.Context, id string) error
	deleteExpiredFn func(ctx context.Context) error
}

func (m *mockPasswordResetRepo) Create(ctx context.Context, reset *domain.PasswordReset) error {
	return m.createFn(ctx, reset)
}
func (m *mockPasswordResetRepo) GetByToken(ctx context.Context, token string) (*domain.PasswordReset, error) {
	return m.getByTokenFn(ctx, token)
}
func (m *mockPasswordResetRepo) MarkUsed(ctx context.Context, id string) error {
	return m.markUsedFn(ctx, id)
}
func (m *mockPasswordResetRepo) DeleteExpired(ctx context.Context) error {
	return m.deleteExpiredFn(ctx)
}

type mockEmailVerificationRepo struct {
	createFn        func(ctx context.Context, verification *domain.EmailVerification) error
	getByTokenFn    func(ctx context.Context, token string) (*domain.EmailVerification, error)
	deleteFn        func(ctx context.Context, id string) error
	deleteExpiredFn func(ctx context.Context) error
}

func (m *mockEmailVerificationRepo) Create(ctx context.Context, verification *domain.EmailVerification) error {
	return m.createFn(ctx, verification)
}
func (m *mockEmailVerificationRepo) GetByToken(ctx context.Context, token string) (*domain.EmailVerification, error) {
	return m.getByTokenFn(ctx, token)
}
func (m *mockEmailVerificationRepo) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}
func (m *mockEmailVerificationRepo) DeleteExpired(ctx context.Context) error {
	return m.deleteExpiredFn(ctx)
}

type mockTagRepo struct {
	createFn    func(ctx context.Context, tag *domain.Tag) error
	getByIDFn   func(ctx context.Context, id string) (*domain.Tag, error)
	getByNameFn func(ctx context.Context, name string) (*domain.Tag, error)
	listFn      func(ctx context.Context, skip, limit int) ([]*domain.Tag, error)
	updateFn    func(ctx context.Context, id string, patch repository.TagPatch) (*domain.Tag, error)
	deleteFn    func(ctx context.Context, id string) error
}

func (m *mockTagRepo) Create(ctx context.Context, tag *domain.Tag) error {
	return m.createFn(ctx, tag)
}
func (m *mockTagRepo) GetByID(ctx context.Context, id string) (*domain.Tag, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockTagRepo) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	return m.getByNameFn(ctx, name)
}
func (m *mockTagRepo) List(ctx context.Context, skip, limit int) ([]*domain.Tag, error) {
	return m.listFn(ctx, skip, limit)
}
func (m *mockTagRepo) Update(ctx context.Context, id string, patch repository.TagPatch) (*domain.Tag, error) {
	return m.updateFn(ctx, id, patch)
}
func (m *mockTagRepo) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}
