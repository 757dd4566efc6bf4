package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-crm-auth/models"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrLoginFailed         = errors.New("login failed, try again later")
	ErrRateLimited         = errors.New("too many failed login attempts")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrRegistrationFailed  = errors.New("registration failed")
	ErrWrongPassword       = errors.New("current password is incorrect")
	ErrChangePassword      = errors.New("password change failed")

	ErrCreateSession      = errors.New("session creation failed")
	ErrInvalidateSessions = errors.New("session invalidation failed")
	ErrCleanupSessions    = errors.New("expired session cleanup failed")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// RateLimitedError is returned when the limiter refuses an attempt. It
// carries the decision so transports can report the reset time.
type RateLimitedError struct {
	Decision models.RateLimitDecision
}

func (e *RateLimitedError) Error() string {
	if e.Decision.Reason != "" {
		return fmt.Sprintf("%s: %s", ErrRateLimited, e.Decision.Reason)
	}
	return ErrRateLimited.Error()
}

func (e *RateLimitedError) Unwrap() error {
	return ErrRateLimited
}

// RetryAfter returns the time left until the block ends, rounded up to a
// whole second. Zero when no reset time is known.
func (e *RateLimitedError) RetryAfter(now time.Time) time.Duration {
	if e.Decision.ResetTime == nil {
		return 0
	}
	left := e.Decision.ResetTime.Sub(now)
	if left <= 0 {
		return 0
	}
	return (left + time.Second - 1).Truncate(time.Second)
}
