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

// userRepository is the SQL implementation of [UserRepository] over the
// "users" table. It works with both supported dialects.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser inserts a new user and returns it as stored, with timestamps
// normalised to UTC.
//
// Error handling:
//   - unique violation on username → [ErrUsernameAlreadyExists].
//   - unique violation on email → [ErrEmailAlreadyExists].
//   - any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := newUserRow(user)
	query, args, err := r.db.insertUserQuery(row)
	if err != nil {
		return models.User{}, err
	}

	err = r.db.withRetry(ctx, func() error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, r.db.classifyUniqueViolation(err)
	}

	return row.model(), nil
}

// FindUserByUsername returns the user with the exact (case-sensitive)
// username, or [ErrNoUserWasFound].
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findUser(ctx, sq.Eq{"username": username})
}

// FindUserByID returns the user with the given id, or [ErrNoUserWasFound].
func (r *userRepository) FindUserByID(ctx context.Context, userID string) (models.User, error) {
	return r.findUser(ctx, sq.Eq{"id": userID})
}

func (r *userRepository) findUser(ctx context.Context, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.selectUserQuery(where)
	if err != nil {
		return models.User{}, err
	}

	var found userRow
	err = r.db.withRetry(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(found.dest()...)
	})
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, ErrNoUserWasFound
	case err != nil:
		log.Err(err).Str("func", "*userRepository.findUser").Msg("error querying user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return found.model(), nil
}

// UpdateLastLogin stamps a successful login.
func (r *userRepository) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	query, args, err := r.db.updateLastLoginQuery(userID, at.UTC())
	if err != nil {
		return err
	}

	return r.execUserUpdate(ctx, "*userRepository.UpdateLastLogin", query, args)
}

// UpdatePasswordHash replaces the stored credential of a user.
func (r *userRepository) UpdatePasswordHash(ctx context.Context, userID, passwordHash string, at time.Time) error {
	query, args, err := r.db.updatePasswordHashQuery(userID, passwordHash, at.UTC())
	if err != nil {
		return err
	}

	return r.execUserUpdate(ctx, "*userRepository.UpdatePasswordHash", query, args)
}

// execUserUpdate runs an UPDATE on users and reports [ErrNoUserWasFound]
// when no row matched.
func (r *userRepository) execUserUpdate(ctx context.Context, fn, query string, args []any) error {
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
		log.Err(err).Str("func", fn).Msg("error updating user")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}
