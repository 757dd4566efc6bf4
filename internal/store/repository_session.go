package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-crm-auth/internal/logger"
	"github.com/MKhiriev/go-crm-auth/models"
)

// sessionRepository is the SQL implementation of [SessionRepository] over
// the "sessions" table.
type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSessionRepository constructs a [SessionRepository].
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *sessionRepository) CreateSession(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.insertSessionQuery(session.ID, session.UserID, session.ExpiresAt.UTC())
	if err != nil {
		return err
	}

	err = r.db.withRetry(ctx, func() error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.CreateSession").
			Str("session", session.ShortID()).
			Msg("error inserting session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// FindSessionWithUser returns [ErrSessionNotFound] when no session matches.
// A session whose user row is gone is reported the same way.
func (r *sessionRepository) FindSessionWithUser(ctx context.Context, sessionID string) (models.Session, models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.selectSessionWithUserQuery(sessionID)
	if err != nil {
		return models.Session{}, models.User{}, err
	}

	var (
		session models.Session
		user    userRow
	)
	err = r.db.withRetry(ctx, func() error {
		dest := append([]any{&session.ID, &session.UserID, &session.ExpiresAt}, user.dest()...)
		return r.db.QueryRowContext(ctx, query, args...).Scan(dest...)
	})
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Session{}, models.User{}, ErrSessionNotFound
	case err != nil:
		log.Err(err).Str("func", "*sessionRepository.FindSessionWithUser").Msg("error querying session")
		return models.Session{}, models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	session.ExpiresAt = session.ExpiresAt.UTC()
	return session, user.model(), nil
}

// UpdateSessionExpiry moves the expiry of one session in a single statement.
func (r *sessionRepository) UpdateSessionExpiry(ctx context.Context, sessionID string, expiresAt time.Time) error {
	query, args, err := r.db.updateSessionExpiryQuery(sessionID, expiresAt.UTC())
	if err != nil {
		return err
	}

	affected, err := r.exec(ctx, "*sessionRepository.UpdateSessionExpiry", query, args)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// DeleteSession removes one session. Deleting a missing session is not an
// error.
func (r *sessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	query, args, err := r.db.deleteSessionsQuery(sq.Eq{"id": sessionID})
	if err != nil {
		return err
	}

	_, err = r.exec(ctx, "*sessionRepository.DeleteSession", query, args)
	return err
}

// DeleteUserSessions removes every session of a user and returns how many
// were removed.
func (r *sessionRepository) DeleteUserSessions(ctx context.Context, userID string) (int64, error) {
	query, args, err := r.db.deleteSessionsQuery(sq.Eq{"user_id": userID})
	if err != nil {
		return 0, err
	}

	return r.exec(ctx, "*sessionRepository.DeleteUserSessions", query, args)
}

// DeleteExpiredSessions removes sessions whose expiry lies before now.
func (r *sessionRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	query, args, err := r.db.deleteSessionsQuery(sq.Lt{"expires_at": now.UTC()})
	if err != nil {
		return 0, err
	}

	return r.exec(ctx, "*sessionRepository.DeleteExpiredSessions", query, args)
}

func (r *sessionRepository) exec(ctx context.Context, fn, query string, args []any) (int64, error) {
	log := logger.FromContext(ctx)

	var affected int64
	err := r.db.withRetry(ctx, func() error {
		res, execErr := r.db.ExecContext(ctx, query, args...)
		if execErr != nil {
			return execErr
		}
		affected, execErr = res.RowsAffected()
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error executing session statement")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}
