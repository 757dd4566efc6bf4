package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-crm-auth/internal/logger"
	"github.com/MKhiriev/go-crm-auth/internal/service"
)

const maxProbeTimeout = 5 * time.Second

// NewSessionSweeper deletes expired sessions every interval.
func NewSessionSweeper(sessions service.SessionService, interval time.Duration, logger *logger.Logger) *Periodic {
	return NewPeriodic("session-sweeper", interval, func(ctx context.Context) error {
		deleted, err := sessions.CleanupExpiredSessions(ctx)
		if err != nil {
			return err
		}
		if deleted > 0 {
			logger.Info().Int64("deleted", deleted).Msg("expired sessions removed")
		}
		return nil
	}, logger)
}

// NewRateLimitSweeper drops stale limiter entries every interval.
func NewRateLimitSweeper(limiter service.LoginLimiter, interval time.Duration, logger *logger.Logger) *Periodic {
	return NewPeriodic("rate-limit-sweeper", interval, func(context.Context) error {
		if removed := limiter.Sweep(); removed > 0 {
			logger.Debug().Int("removed", removed).Msg("stale rate limit entries removed")
		}
		return nil
	}, logger)
}

// NewHealthProber pings the database every interval and reports the result
// to health. A failed ping reports NOT_SERVING and is returned for logging.
func NewHealthProber(db Pinger, health HealthReporter, interval time.Duration, logger *logger.Logger) *Periodic {
	timeout := min(interval, maxProbeTimeout)

	return NewPeriodic("health-prober", interval, func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		if err := db.PingContext(pingCtx); err != nil {
			health.SetServing(false)
			return fmt.Errorf("database ping: %w", err)
		}
		health.SetServing(true)
		return nil
	}, logger)
}
