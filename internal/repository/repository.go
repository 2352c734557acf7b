package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/linapteam/linap-api/pkg/database"
)

// querier is satisfied by both *sql.DB and *sql.Tx, so repositories can run
// inside a caller-owned transaction via WithTx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// isUniqueViolation reports whether err is a postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	return false
}

// isForeignKeyViolation reports whether err is a postgres foreign key
// violation (SQLSTATE 23503).
func isForeignKeyViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23503"
	}
	return false
}

// Repositories holds all repository interfaces
type Repositories struct {
	User              UserRepository
	AuthAccount       AuthAccountRepository
	Session           SessionRepository
	Post              PostRepository
	Video             VideoRepository
	Comment           CommentRepository
	Like              LikeRepository
	Tag               TagRepository
	Map               MapRepository
	Agent             AgentRepository
	PasswordReset     PasswordResetRepository
	EmailVerification EmailVerificationRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *database.Postgres) *Repositories {
	return &Repositories{
		User:              NewUserRepository(db),
		AuthAccount:       NewAuthAccountRepository(db),
		Session:           NewSessionRepository(db),
		Post:              NewPostRepository(db),
		Video:             NewVideoRepository(db),
		Comment:           NewCommentRepository(db),
		Like:              NewLikeRepository(db),
		Tag:               NewTagRepository(db),
		Map:               NewMapRepository(db),
		Agent:             NewAgentRepository(db),
		PasswordReset:     NewPasswordResetRepository(db),
		EmailVerification: NewEmailVerificationRepository(db),
	}
}
