package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-crm-auth/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByID(ctx context.Context, userID string) (models.User, error)
	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error
	UpdatePasswordHash(ctx context.Context, userID, passwordHash string, at time.Time) error
}

// SessionRepository persists login sessions keyed by their token.
type SessionRepository interface {
	CreateSession(ctx context.Context, session models.Session) error
	// FindSessionWithUser loads the session and its owner in one query.
	FindSessionWithUser(ctx context.Context, sessionID string) (models.Session, models.User, error)
	UpdateSessionExpiry(ctx context.Context, sessionID string, expiresAt time.Time) error
	DeleteSession(ctx context.Context, sessionID string) error
	DeleteUserSessions(ctx context.Context, userID string) (int64, error)
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}
