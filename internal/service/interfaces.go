package service

import (
	"context"

	"github.com/MKhiriev/go-crm-auth/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// SessionService manages the lifecycle of login sessions.
type SessionService interface {
	// CreateSession persists a new session for userID under token.
	CreateSession(ctx context.Context, token, userID string) (models.Session, error)

	// ValidateSessionToken resolves token to a session and its user,
	// refreshing the expiry when it is close. It never returns an error:
	// anything that prevents a positive answer yields the null validation.
	ValidateSessionToken(ctx context.Context, token string) models.SessionValidation

	// InvalidateSession deletes one session. Failures are logged only.
	InvalidateSession(ctx context.Context, sessionID string)

	// InvalidateAllUserSessions deletes every session of userID.
	InvalidateAllUserSessions(ctx context.Context, userID string) (int64, error)

	// CleanupExpiredSessions deletes every session past its expiry.
	CleanupExpiredSessions(ctx context.Context) (int64, error)
}

type AuthService interface {
	Login(ctx context.Context, creds models.Credentials, origin string) (models.LoginResult, error)
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)
	CreateUser(ctx context.Context, req models.RegisterRequest, role models.Role) (models.User, error)
	Logout(ctx context.Context, sessionID string)
	ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest, origin string) (models.LoginResult, error)
	RevokeUserSessions(ctx context.Context, username string) (int64, error)
}

// LoginLimiter is the part of the rate limiter the auth flows depend on.
// *ratelimit.Limiter satisfies it.
type LoginLimiter interface {
	Check(origin string) models.RateLimitDecision
	RecordFailure(origin string)
	RecordSuccess(origin string)
	Status(origin string) models.RateLimitStatus
	Sweep() int
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
