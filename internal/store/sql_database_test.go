package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-crm-auth/internal/logger"
)

func TestParseDSN(t *testing.T) {
	tests := []struct {
		dsn         string
		wantDialect Dialect
		wantDSN     string
		wantErr     bool
	}{
		{dsn: "postgres://u:p@localhost:5432/crm?sslmode=disable", wantDialect: DialectPostgres, wantDSN: "postgres://u:p@localhost:5432/crm?sslmode=disable"},
		{dsn: "postgresql://localhost/crm", wantDialect: DialectPostgres, wantDSN: "postgresql://localhost/crm"},
		{dsn: "sqlite:///var/lib/crm.db", wantDialect: DialectSQLite, wantDSN: "file:/var/lib/crm.db?_foreign_keys=on"},
		{dsn: "file:crm.db?cache=shared", wantDialect: DialectSQLite, wantDSN: "file:crm.db?cache=shared&_foreign_keys=on"},
		{dsn: "file:crm.db?_foreign_keys=off", wantDialect: DialectSQLite, wantDSN: "file:crm.db?_foreign_keys=off"},
		{dsn: "data/crm.db", wantDialect: DialectSQLite, wantDSN: "file:data/crm.db?_foreign_keys=on"},
		{dsn: ":memory:", wantDialect: DialectSQLite, wantDSN: ":memory:?_foreign_keys=on"},
		{dsn: "mysql://root@localhost/crm", wantErr: true},
		{dsn: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			dialect, dsn, err := ParseDSN(tt.dsn)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedDSN)
				assert.NotContains(t, err.Error(), "root@")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDialect, dialect)
			assert.Equal(t, tt.wantDSN, dsn)
		})
	}
}

func TestNewDB_PlaceholderFormat(t *testing.T) {
	conn, _, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	fixedTime := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	pg := NewDB(conn, DialectPostgres, logger.Nop())
	q, _, err := pg.updateSessionExpiryQuery("t", fixedTime)
	require.NoError(t, err)
	assert.Contains(t, q, "$1")

	lite := NewDB(conn, DialectSQLite, logger.Nop())
	q, _, err = lite.updateSessionExpiryQuery("t", fixedTime)
	require.NoError(t, err)
	assert.Equal(t, "UPDATE sessions SET expires_at = ? WHERE id = ?", q)
	assert.Equal(t, DialectSQLite, lite.Dialect())
}

func TestWithRetry(t *testing.T) {
	db, _ := newTestDB(t)

	t.Run("stops on non-retryable", func(t *testing.T) {
		calls := 0
		err := db.withRetry(context.Background(), func() error {
			calls++
			return pgError(pgerrcode.UniqueViolation)
		})
		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("gives up after all delays", func(t *testing.T) {
		calls := 0
		err := db.withRetry(context.Background(), func() error {
			calls++
			return pgError(pgerrcode.DeadlockDetected)
		})
		assert.Error(t, err)
		assert.Equal(t, len(retryDelays)+1, calls)
	})

	t.Run("honours cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := db.withRetry(ctx, func() error { return pgError(pgerrcode.ConnectionFailure) })
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestPostgresErrorClassifier(t *testing.T) {
	c := NewPostgresErrorClassifier()

	assert.Equal(t, Retryable, c.Classify(pgError(pgerrcode.SerializationFailure)))
	assert.Equal(t, Retryable, c.Classify(pgError(pgerrcode.CannotConnectNow)))
	assert.Equal(t, NonRetryable, c.Classify(pgError(pgerrcode.UniqueViolation)))
	assert.Equal(t, NonRetryable, c.Classify(errors.New("plain")))
	assert.Equal(t, NonRetryable, c.Classify(nil))

	column, ok := c.UniqueViolation(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"})
	assert.True(t, ok)
	assert.Equal(t, "email", column)

	_, ok = c.UniqueViolation(pgError(pgerrcode.ForeignKeyViolation))
	assert.False(t, ok)
}

func TestSQLiteErrorClassifier(t *testing.T) {
	c := NewSQLiteErrorClassifier()

	assert.Equal(t, Retryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrBusy}))
	assert.Equal(t, NonRetryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrConstraint}))
	assert.Equal(t, NonRetryable, c.Classify(errors.New("plain")))

	_, ok := c.UniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey})
	assert.False(t, ok)
}
