// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, HTTP response
// writing, and identifier generation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-crm-auth/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

var (
	// SessionCtxKey holds the validated *models.Session of the request.
	SessionCtxKey = contextKey("session")
	// UserCtxKey holds the *models.User owning the request's session.
	UserCtxKey = contextKey("user")
)

// WithIdentity returns a copy of ctx carrying the authenticated session and
// its user. The request gate calls it once per authenticated request.
func WithIdentity(ctx context.Context, session *models.Session, user *models.User) context.Context {
	ctx = context.WithValue(ctx, SessionCtxKey, session)
	return context.WithValue(ctx, UserCtxKey, user)
}

// GetSessionFromContext retrieves the session stored by [WithIdentity].
//
// Returns ok == false when the request is anonymous.
func GetSessionFromContext(ctx context.Context) (*models.Session, bool) {
	session, ok := ctx.Value(SessionCtxKey).(*models.Session)
	return session, ok && session != nil
}

// GetUserFromContext retrieves the user stored by [WithIdentity].
//
// Example usage:
//
//	user, ok := utils.GetUserFromContext(r.Context())
//	if !ok {
//	    // anonymous request
//	}
func GetUserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(*models.User)
	return user, ok && user != nil
}
