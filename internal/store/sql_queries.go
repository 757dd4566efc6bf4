package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

const (
	usersTable    = "users"
	sessionsTable = "sessions"
)

var userColumns = []string{
	"id", "username", "password_hash", "role", "is_active",
	"email", "name", "last_login", "created_at", "updated_at",
}

// sessionUserColumns selects a session joined with its owner.
var sessionUserColumns = []string{
	"s.id", "s.user_id", "s.expires_at",
	"u.id", "u.username", "u.password_hash", "u.role", "u.is_active",
	"u.email", "u.name", "u.last_login", "u.created_at", "u.updated_at",
}

// toSQL renders a squirrel builder and wraps failures with ErrBuildingSQLQuery.
func toSQL(b sq.Sqlizer) (string, []any, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func (db *DB) insertUserQuery(u userRow) (string, []any, error) {
	return toSQL(db.builder.
		Insert(usersTable).
		Columns(userColumns...).
		Values(u.ID, u.Username, u.PasswordHash, u.Role, u.IsActive,
			u.Email, u.Name, u.LastLogin, u.CreatedAt, u.UpdatedAt))
}

func (db *DB) selectUserQuery(where sq.Eq) (string, []any, error) {
	return toSQL(db.builder.
		Select(userColumns...).
		From(usersTable).
		Where(where))
}

func (db *DB) updateLastLoginQuery(userID string, at time.Time) (string, []any, error) {
	return toSQL(db.builder.
		Update(usersTable).
		Set("last_login", at).
		Set("updated_at", at).
		Where(sq.Eq{"id": userID}))
}

func (db *DB) updatePasswordHashQuery(userID, hash string, at time.Time) (string, []any, error) {
	return toSQL(db.builder.
		Update(usersTable).
		Set("password_hash", hash).
		Set("updated_at", at).
		Where(sq.Eq{"id": userID}))
}

func (db *DB) insertSessionQuery(id, userID string, expiresAt time.Time) (string, []any, error) {
	return toSQL(db.builder.
		Insert(sessionsTable).
		Columns("id", "user_id", "expires_at").
		Values(id, userID, expiresAt))
}

func (db *DB) selectSessionWithUserQuery(sessionID string) (string, []any, error) {
	return toSQL(db.builder.
		Select(sessionUserColumns...).
		From(sessionsTable + " s").
		Join(usersTable + " u ON u.id = s.user_id").
		Where(sq.Eq{"s.id": sessionID}))
}

func (db *DB) updateSessionExpiryQuery(sessionID string, expiresAt time.Time) (string, []any, error) {
	return toSQL(db.builder.
		Update(sessionsTable).
		Set("expires_at", expiresAt).
		Where(sq.Eq{"id": sessionID}))
}

func (db *DB) deleteSessionsQuery(where sq.Sqlizer) (string, []any, error) {
	return toSQL(db.builder.
		Delete(sessionsTable).
		Where(where))
}
