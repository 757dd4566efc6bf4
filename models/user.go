package models

import "time"

// Role is the label attached to every user record. The auth core only
// carries it around; access policy built on top of it lives elsewhere.
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleSalesperson Role = "SALESPERSON"
	RoleUser        Role = "USER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSalesperson, RoleUser:
		return true
	}
	return false
}

// User represents a CRM account used for authentication.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the 21-character opaque user identifier.
	ID string `json:"id"`

	// Username is the unique, case-sensitive login name.
	Username string `json:"username"`

	// PasswordHash is the encoded salt and derived key produced by the
	// credential hasher. Never serialized.
	PasswordHash string `json:"-"`

	// Role is the user's role label.
	Role Role `json:"role"`

	// IsActive marks accounts that are allowed to log in.
	IsActive bool `json:"is_active"`

	// Email and Name are optional profile fields.
	Email *string `json:"email,omitempty"`
	Name  *string `json:"name,omitempty"`

	// LastLogin is the time of the most recent successful login.
	LastLogin *time.Time `json:"last_login,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
