package store

import (
	"fmt"
	"strings"
)

// Dialect names a supported SQL backend.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite3"
)

func (d Dialect) driverName() string {
	if d == DialectPostgres {
		return "pgx"
	}
	return "sqlite3"
}

func (d Dialect) gooseDialect() string {
	if d == DialectPostgres {
		return "pgx"
	}
	return "sqlite3"
}

// ParseDSN picks the dialect for dsn and returns the DSN in the form the
// driver expects.
//
//	postgres://..., postgresql://...  → PostgreSQL, unchanged
//	sqlite://path                     → SQLite, "file:path"
//	file:..., *.db, :memory:          → SQLite
//
// SQLite DSNs get foreign key enforcement switched on so that deleting a
// user cascades to its sessions.
func ParseDSN(dsn string) (Dialect, string, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return DialectPostgres, dsn, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return DialectSQLite, withForeignKeys("file:" + strings.TrimPrefix(dsn, "sqlite://")), nil
	case strings.HasPrefix(dsn, "file:"), dsn == ":memory:":
		return DialectSQLite, withForeignKeys(dsn), nil
	case strings.HasSuffix(dsn, ".db"), strings.HasSuffix(dsn, ".sqlite"):
		return DialectSQLite, withForeignKeys("file:" + dsn), nil
	}

	return "", "", fmt.Errorf("%w: %q", ErrUnsupportedDSN, redactDSN(dsn))
}

func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

// redactDSN keeps only the scheme so credentials never reach the logs.
func redactDSN(dsn string) string {
	if scheme, _, ok := strings.Cut(dsn, "://"); ok {
		return scheme + "://…"
	}
	if len(dsn) > 8 {
		return dsn[:8] + "…"
	}
	return dsn
}
