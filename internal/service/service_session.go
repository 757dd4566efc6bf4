// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-crm-auth/internal/config"
	"github.com/MKhiriev/go-crm-auth/internal/logger"
	"github.com/MKhiriev/go-crm-auth/internal/store"
	"github.com/MKhiriev/go-crm-auth/models"
)

// sessionService is the concrete implementation of SessionService.
//
// Sessions live only in the SessionRepository; nothing is cached, so a
// deleted session is rejected by the very next validation in any process.
type sessionService struct {
	sessionRepository store.SessionRepository

	// sessionDuration is the lifetime given to new and refreshed sessions.
	sessionDuration time.Duration

	// refreshThreshold is the remaining lifetime below which a validated
	// session is extended.
	refreshThreshold time.Duration

	now func() time.Time

	logger *logger.Logger
}

// NewSessionService constructs a SessionService over repo using the
// session lifetime settings from cfg.
func NewSessionService(repo store.SessionRepository, cfg config.Auth, logger *logger.Logger) SessionService {
	return &sessionService{
		sessionRepository: repo,
		sessionDuration:   cfg.SessionDuration,
		refreshThreshold:  cfg.RefreshThreshold,
		now:               time.Now,
		logger:            logger,
	}
}

func (s *sessionService) CreateSession(ctx context.Context, token, userID string) (models.Session, error) {
	session := models.Session{
		ID:        token,
		UserID:    userID,
		ExpiresAt: s.now().Add(s.sessionDuration),
	}

	if err := s.sessionRepository.CreateSession(ctx, session); err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrCreateSession, err)
	}

	return session, nil
}

// ValidateSessionToken implements SessionService.
//
// Expired sessions are deleted on sight and never returned. A session with
// less than refreshThreshold left is extended to now+sessionDuration with a
// single UPDATE; concurrent refreshes of the same session are last write
// wins. Storage failures at any step produce the null validation.
func (s *sessionService) ValidateSessionToken(ctx context.Context, token string) models.SessionValidation {
	if token == "" {
		return models.SessionValidation{}
	}
	log := logger.FromContext(ctx)

	session, user, err := s.sessionRepository.FindSessionWithUser(ctx, token)
	if err != nil {
		if !errors.Is(err, store.ErrSessionNotFound) {
			log.Err(err).Str("session", models.Session{ID: token}.ShortID()).Msg("session lookup failed")
		}
		return models.SessionValidation{}
	}

	now := s.now()
	if !now.Before(session.ExpiresAt) {
		if err = s.sessionRepository.DeleteSession(ctx, session.ID); err != nil {
			log.Err(err).Str("session", session.ShortID()).Msg("failed to delete expired session")
		}
		return models.SessionValidation{}
	}

	if session.ExpiresAt.Sub(now) < s.refreshThreshold {
		expiresAt := now.Add(s.sessionDuration)
		if err = s.sessionRepository.UpdateSessionExpiry(ctx, session.ID, expiresAt); err != nil {
			log.Err(err).Str("session", session.ShortID()).Msg("session refresh failed")
			return models.SessionValidation{}
		}
		session.ExpiresAt = expiresAt
		log.Debug().Str("session", session.ShortID()).Time("expires_at", expiresAt).Msg("session refreshed")
	}

	return models.SessionValidation{Session: &session, User: &user}
}

func (s *sessionService) InvalidateSession(ctx context.Context, sessionID string) {
	if sessionID == "" {
		return
	}

	if err := s.sessionRepository.DeleteSession(ctx, sessionID); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("session", models.Session{ID: sessionID}.ShortID()).
			Msg("failed to invalidate session")
	}
}

func (s *sessionService) InvalidateAllUserSessions(ctx context.Context, userID string) (int64, error) {
	deleted, err := s.sessionRepository.DeleteUserSessions(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: user %s: %w", ErrInvalidateSessions, userID, err)
	}

	logger.FromContext(ctx).Info().Str("user_id", userID).Int64("deleted", deleted).Msg("all user sessions invalidated")
	return deleted, nil
}

func (s *sessionService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	deleted, err := s.sessionRepository.DeleteExpiredSessions(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCleanupSessions, err)
	}

	if deleted > 0 {
		s.logger.Info().Int64("deleted", deleted).Msg("expired sessions cleaned up")
	}
	return deleted, nil
}
