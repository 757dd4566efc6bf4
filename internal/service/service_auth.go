package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-crm-auth/internal/crypto"
	"github.com/MKhiriev/go-crm-auth/internal/logger"
	"github.com/MKhiriev/go-crm-auth/internal/store"
	"github.com/MKhiriev/go-crm-auth/internal/utils"
	"github.com/MKhiriev/go-crm-auth/internal/validators"
	"github.com/MKhiriev/go-crm-auth/models"
)

// dummyPasswordHash is verified against when the user does not exist or is
// inactive, so those paths cost one key derivation just like a wrong
// password.
var dummyPasswordHash = base64.StdEncoding.EncodeToString(make([]byte, 96))

// authService is the concrete implementation of AuthService.
// It composes the rate limiter, the password hasher and the session
// service into the login, registration and password change flows.
type authService struct {
	userRepository store.UserRepository
	sessionService SessionService

	hasher    crypto.PasswordHasher
	tokens    utils.TokenGenerator
	limiter   LoginLimiter
	validator validators.Validator

	now func() time.Time

	logger *logger.Logger
}

// NewAuthService constructs an AuthService. All collaborators are
// required; the returned service is safe for concurrent use.
func NewAuthService(
	userRepository store.UserRepository,
	sessionService SessionService,
	hasher crypto.PasswordHasher,
	tokens utils.TokenGenerator,
	limiter LoginLimiter,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepository: userRepository,
		sessionService: sessionService,
		hasher:         hasher,
		tokens:         tokens,
		limiter:        limiter,
		validator:      validators.NewCredentialsValidator(),
		now:            time.Now,
		logger:         logger,
	}
}

// Login authenticates creds on behalf of origin and opens a session.
//
// The limiter is consulted before anything else. Every failure after that
// point is recorded against origin; a successful login clears it.
//
// Returns:
//   - *RateLimitedError (matches ErrRateLimited) when origin is blocked.
//   - ErrInvalidDataProvided when creds fail validation.
//   - ErrInvalidCredentials for an unknown user, an inactive user or a wrong
//     password alike.
//   - ErrLoginFailed for storage or token generation failures.
func (a *authService) Login(ctx context.Context, creds models.Credentials, origin string) (models.LoginResult, error) {
	log := logger.FromContext(ctx)

	if decision := a.limiter.Check(origin); decision.IsLimited {
		log.Warn().Str("origin", origin).Str("reason", decision.Reason).Msg("login attempt rate limited")
		return models.LoginResult{}, &RateLimitedError{Decision: decision}
	}

	if err := a.validator.Validate(ctx, creds); err != nil {
		a.limiter.RecordFailure(origin)
		return models.LoginResult{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := a.userRepository.FindUserByUsername(ctx, creds.Username)
	if err != nil {
		a.limiter.RecordFailure(origin)
		if errors.Is(err, store.ErrNoUserWasFound) {
			a.hasher.Verify(dummyPasswordHash, creds.Password)
			log.Info().Str("origin", origin).Msg("login failed: unknown user")
			return models.LoginResult{}, ErrInvalidCredentials
		}
		log.Err(err).Str("origin", origin).Msg("user lookup failed")
		return models.LoginResult{}, fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}

	if !user.IsActive {
		a.hasher.Verify(dummyPasswordHash, creds.Password)
		a.limiter.RecordFailure(origin)
		log.Info().Str("user_id", user.ID).Msg("login failed: user inactive")
		return models.LoginResult{}, ErrInvalidCredentials
	}

	if !a.hasher.Verify(user.PasswordHash, creds.Password) {
		a.limiter.RecordFailure(origin)
		log.Info().Str("user_id", user.ID).Str("origin", origin).Msg("login failed: wrong password")
		return models.LoginResult{}, ErrInvalidCredentials
	}

	now := a.now()
	if err = a.userRepository.UpdateLastLogin(ctx, user.ID, now); err != nil {
		a.limiter.RecordFailure(origin)
		log.Err(err).Str("user_id", user.ID).Msg("updating last login failed")
		return models.LoginResult{}, fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}
	user.LastLogin = &now

	session, err := a.openSession(ctx, user.ID)
	if err != nil {
		a.limiter.RecordFailure(origin)
		log.Err(err).Str("user_id", user.ID).Msg("opening session failed")
		return models.LoginResult{}, fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}

	a.limiter.RecordSuccess(origin)
	log.Info().Str("user_id", user.ID).Str("session", session.ShortID()).Msg("user logged in")

	return models.LoginResult{User: user, Session: session}, nil
}

// Register creates a regular USER account.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	return a.CreateUser(ctx, req, models.RoleUser)
}

// CreateUser validates req and persists a new active account with role.
//
// Returns ErrInvalidDataProvided for invalid input, ErrUserAlreadyExists
// (wrapping the store error naming the clashing column) for a taken
// username or email, and ErrRegistrationFailed otherwise.
func (a *authService) CreateUser(ctx context.Context, req models.RegisterRequest, role models.Role) (models.User, error) {
	log := logger.FromContext(ctx)

	if !role.Valid() {
		return models.User{}, fmt.Errorf("%w: unknown role %q", ErrInvalidDataProvided, role)
	}
	req.Email = trimOptional(req.Email)
	req.Name = trimOptional(req.Name)
	if err := a.validator.Validate(ctx, req); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	_, err := a.userRepository.FindUserByUsername(ctx, req.Username)
	switch {
	case err == nil:
		log.Info().Str("username", req.Username).Msg("registration rejected: username taken")
		return models.User{}, fmt.Errorf("%w: %w", ErrUserAlreadyExists, store.ErrUsernameAlreadyExists)
	case !errors.Is(err, store.ErrNoUserWasFound):
		log.Err(err).Msg("username lookup failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}

	id, err := a.tokens.UserID()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}
	hash, err := a.hasher.Hash(req.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}

	now := a.now()
	created, err := a.userRepository.CreateUser(ctx, models.User{
		ID:           id,
		Username:     req.Username,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		Email:        req.Email,
		Name:         req.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, store.ErrUsernameAlreadyExists) || errors.Is(err, store.ErrEmailAlreadyExists) {
			return models.User{}, fmt.Errorf("%w: %w", ErrUserAlreadyExists, err)
		}
		log.Err(err).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}

	log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user created")
	return created, nil
}

// Logout ends the session. It never fails from the caller's point of view.
func (a *authService) Logout(ctx context.Context, sessionID string) {
	a.sessionService.InvalidateSession(ctx, sessionID)
}

// ChangePassword replaces the password of userID after checking the
// current one. Every existing session of the user is revoked and a fresh
// one is opened, so a stolen session does not survive the change.
//
// A wrong current password counts as a failed attempt for origin and is
// subject to the same rate limit as login.
func (a *authService) ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest, origin string) (models.LoginResult, error) {
	log := logger.FromContext(ctx)

	if decision := a.limiter.Check(origin); decision.IsLimited {
		return models.LoginResult{}, &RateLimitedError{Decision: decision}
	}

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.LoginResult{}, ErrUserNotFound
		}
		return models.LoginResult{}, fmt.Errorf("%w: %w", ErrChangePassword, err)
	}

	if !a.hasher.Verify(user.PasswordHash, req.CurrentPassword) {
		a.limiter.RecordFailure(origin)
		log.Info().Str("user_id", userID).Msg("password change rejected: wrong current password")
		return models.LoginResult{}, ErrWrongPassword
	}

	if err = a.validator.Validate(ctx, req); err != nil {
		return models.LoginResult{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	hash, err := a.hasher.Hash(req.NewPassword)
	if err != nil {
		return models.LoginResult{}, fmt.Errorf("%w: %w", ErrChangePassword, err)
	}

	now := a.now()
	if err = a.userRepository.UpdatePasswordHash(ctx, userID, hash, now); err != nil {
		return models.LoginResult{}, fmt.Errorf("%w: %w", ErrChangePassword, err)
	}
	user.PasswordHash = hash
	user.UpdatedAt = now

	if _, err = a.sessionService.InvalidateAllUserSessions(ctx, userID); err != nil {
		return models.LoginResult{}, err
	}

	session, err := a.openSession(ctx, userID)
	if err != nil {
		return models.LoginResult{}, fmt.Errorf("%w: %w", ErrChangePassword, err)
	}

	a.limiter.RecordSuccess(origin)
	log.Info().Str("user_id", userID).Msg("password changed")

	return models.LoginResult{User: user, Session: session}, nil
}

// RevokeUserSessions deletes every session of the named user.
func (a *authService) RevokeUserSessions(ctx context.Context, username string) (int64, error) {
	user, err := a.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("%w: %w", ErrInvalidateSessions, err)
	}

	return a.sessionService.InvalidateAllUserSessions(ctx, user.ID)
}

// trimOptional maps blank optional profile fields to nil so they are stored
// as NULL and never collide on the email unique index.
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (a *authService) openSession(ctx context.Context, userID string) (models.Session, error) {
	token, err := a.tokens.SessionToken()
	if err != nil {
		return models.Session{}, err
	}

	return a.sessionService.CreateSession(ctx, token, userID)
}
