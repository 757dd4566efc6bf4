package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-crm-auth/internal/config"
	"github.com/MKhiriev/go-crm-auth/internal/logger"
	"github.com/MKhiriev/go-crm-auth/migrations"
)

// retryDelays are the pauses between attempts of a retryable operation.
var retryDelays = []time.Duration{100 * time.Millisecond, 300 * time.Millisecond, time.Second}

// DB is a *sql.DB bound to one SQL dialect. It carries the query builder
// with the dialect's placeholder format and the matching error classifier.
type DB struct {
	*sql.DB
	dialect            Dialect
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnect opens the database named by cfg.DSN, choosing the driver from
// the DSN scheme, and verifies the connection with a ping.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	dialect, dsn, err := ParseDSN(cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnect").Msg("unsupported database DSN")
		return nil, err
	}

	switch dialect {
	case DialectPostgres:
		return newConnectPostgres(ctx, dsn, log)
	default:
		return newConnectSQLite(ctx, dsn, log)
	}
}

// NewDB wraps an already opened connection. Used by tests and by callers
// that manage the connection pool themselves.
func NewDB(conn *sql.DB, dialect Dialect, log *logger.Logger) *DB {
	db := &DB{
		DB:      conn,
		dialect: dialect,
		logger:  log,
	}

	switch dialect {
	case DialectPostgres:
		db.builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
		db.errorClassificator = NewPostgresErrorClassifier()
	default:
		db.builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)
		db.errorClassificator = NewSQLiteErrorClassifier()
	}

	return db
}

// Dialect returns the SQL dialect of the connection.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Migrate applies all pending schema migrations.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB, db.dialect.gooseDialect())
}

// withRetry runs op until it succeeds, fails with an error the classifier
// deems non-retryable, or the retry delays are exhausted.
func (db *DB) withRetry(ctx context.Context, op func() error) error {
	err := op()
	for _, delay := range retryDelays {
		if err == nil || db.errorClassificator.Classify(err) != Retryable {
			return err
		}

		logger.FromContext(ctx).Warn().Err(err).Dur("delay", delay).Msg("retrying database operation")

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		}

		err = op()
	}

	return err
}

// classifyUniqueViolation maps a unique constraint violation to the domain
// error of the column it guards. Any other error is wrapped as unexpected.
func (db *DB) classifyUniqueViolation(err error) error {
	column, ok := db.errorClassificator.UniqueViolation(err)
	if !ok {
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	switch column {
	case "email":
		return ErrEmailAlreadyExists
	default:
		return ErrUsernameAlreadyExists
	}
}
