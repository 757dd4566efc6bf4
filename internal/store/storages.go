package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-crm-auth/internal/config"
	"github.com/MKhiriev/go-crm-auth/internal/logger"
)

// Storages groups the repositories and the connection they share.
type Storages struct {
	DB                *DB
	UserRepository    UserRepository
	SessionRepository SessionRepository
}

// NewStorages connects to the configured database, applies pending
// migrations and builds the repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnect(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		DB:                db,
		UserRepository:    NewUserRepository(db, log),
		SessionRepository: NewSessionRepository(db, log),
	}, nil
}

// Close releases the database connection.
func (s *Storages) Close() error {
	return s.DB.Close()
}
