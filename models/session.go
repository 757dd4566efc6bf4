// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Session is a server-side login session.
//
// The ID is the opaque session token itself: it is the primary key of the
// record and the value stored in the session cookie. No surrogate key
// exists.
type Session struct {
	// ID is the 32-character session token.
	ID string `json:"-"`

	// UserID references the owning [User].
	UserID string `json:"user_id"`

	// ExpiresAt is the instant after which the session is no longer valid.
	ExpiresAt time.Time `json:"expires_at"`
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}

// SessionValidation is the outcome of validating a session token.
// Either both fields are set or both are nil.
type SessionValidation struct {
	Session *Session
	User    *User
}

// Valid reports whether the validation resolved to an authenticated identity.
func (v SessionValidation) Valid() bool {
	return v.Session != nil && v.User != nil
}

// ShortID returns a prefix of the session token that is safe to log.
func (s Session) ShortID() string {
	if len(s.ID) <= 6 {
		return s.ID
	}
	return s.ID[:6] + "…"
}
