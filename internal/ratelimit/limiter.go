// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ratelimit

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/MKhiriev/go-crm-auth/internal/logger"
	"github.com/MKhiriev/go-crm-auth/models"
)

// Default limits applied when the corresponding [Config] field is zero.
const (
	DefaultMaxAttempts   = 10
	DefaultWindow        = 15 * time.Minute
	DefaultBlockDuration = 30 * time.Minute
	DefaultSweepChance   = 0.01
)

const (
	reasonLocal    = "local address excluded from rate limiting"
	reasonDisabled = "rate limiting disabled"
	reasonBlocked  = "address temporarily blocked due to too many failed attempts"
)

// Config tunes a [Limiter].
type Config struct {
	// MaxAttempts is the number of failures tolerated inside one window.
	MaxAttempts int
	// Window is the tracking window measured from the first failure.
	Window time.Duration
	// BlockDuration is how long an origin stays blocked once it trips.
	BlockDuration time.Duration
	// SweepChance is the probability that a recorded failure also purges
	// stale entries. Zero disables the opportunistic sweep; negative values
	// are treated as zero.
	SweepChance float64
	// Disabled turns every check into "not limited" and every record into a
	// no-op.
	Disabled bool
}

// attempt is the per-origin bookkeeping.
type attempt struct {
	count        int
	firstAttempt time.Time
	lastAttempt  time.Time
	blockedUntil time.Time
}

func (a *attempt) blocked(now time.Time) bool {
	return !a.blockedUntil.IsZero() && now.Before(a.blockedUntil)
}

// Limiter throttles failed authentication attempts per client origin.
//
// The attempt map lives in process memory and is owned exclusively by the
// Limiter. Each process has its own view; multi-instance deployments
// accept that relaxation. Limiter only gates authentication, it is not a
// general request-rate limiter.
//
// A Limiter is safe for concurrent use.
type Limiter struct {
	mu       sync.Mutex
	attempts map[string]*attempt

	cfg Config

	now    func() time.Time
	chance func() float64

	logger *logger.Logger
}

// New constructs a [Limiter]. Zero fields of cfg take the package defaults.
func New(cfg Config, log *logger.Logger) *Limiter {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	if cfg.BlockDuration <= 0 {
		cfg.BlockDuration = DefaultBlockDuration
	}
	if cfg.SweepChance < 0 {
		cfg.SweepChance = 0
	}
	if log == nil {
		log = logger.Nop()
	}

	return &Limiter{
		attempts: make(map[string]*attempt),
		cfg:      cfg,
		now:      time.Now,
		chance:   rand.Float64,
		logger:   log,
	}
}

// Check reports whether origin may attempt to authenticate now.
//
// Local origins are never limited and no state is read for them. Reaching
// MaxAttempts inside the window starts a block of BlockDuration.
func (l *Limiter) Check(origin string) models.RateLimitDecision {
	if IsLocalAddress(origin) {
		return models.RateLimitDecision{Reason: reasonLocal}
	}
	if l.cfg.Disabled {
		return models.RateLimitDecision{Reason: reasonDisabled}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	a, ok := l.attempts[origin]
	if !ok {
		return notLimited(l.cfg.MaxAttempts - 1)
	}

	if a.blocked(now) {
		return limited(a.blockedUntil, reasonBlocked)
	}

	if now.Sub(a.firstAttempt) > l.cfg.Window {
		return notLimited(l.cfg.MaxAttempts - 1)
	}

	if a.count >= l.cfg.MaxAttempts {
		a.blockedUntil = now.Add(l.cfg.BlockDuration)
		l.logger.Warn().
			Str("origin", origin).
			Int("attempts", a.count).
			Time("blocked_until", a.blockedUntil).
			Msg("origin blocked after too many failed login attempts")

		return limited(a.blockedUntil, fmt.Sprintf(
			"too many failed login attempts, try again after %d minutes",
			int(l.cfg.BlockDuration/time.Minute),
		))
	}

	return notLimited(l.cfg.MaxAttempts - a.count)
}

// RecordFailure counts a failed authentication attempt from origin.
// It is a no-op for local origins and when the limiter is disabled.
func (l *Limiter) RecordFailure(origin string) {
	if IsLocalAddress(origin) || l.cfg.Disabled {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	a, ok := l.attempts[origin]
	if !ok || now.Sub(a.firstAttempt) > l.cfg.Window {
		l.attempts[origin] = &attempt{
			count:        1,
			firstAttempt: now,
			lastAttempt:  now,
		}
	} else {
		a.count++
		a.lastAttempt = now
	}

	if l.cfg.SweepChance > 0 && l.chance() < l.cfg.SweepChance {
		l.sweepLocked(now)
	}
}

// RecordSuccess forgets everything known about origin.
func (l *Limiter) RecordSuccess(origin string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.attempts, origin)
}

// Sweep purges entries whose last attempt predates the window and that are
// not currently blocked. It returns the number of purged entries.
func (l *Limiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.sweepLocked(l.now())
}

func (l *Limiter) sweepLocked(now time.Time) int {
	cutoff := now.Add(-l.cfg.Window)
	removed := 0
	for origin, a := range l.attempts {
		if a.lastAttempt.Before(cutoff) && !a.blocked(now) {
			delete(l.attempts, origin)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked origins.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.attempts)
}

// Status returns a diagnostic snapshot for origin. The snapshot is a copy;
// mutating it does not affect the limiter.
func (l *Limiter) Status(origin string) models.RateLimitStatus {
	status := models.RateLimitStatus{
		Origin:  origin,
		IsLocal: IsLocalAddress(origin),
		Settings: models.RateLimitSettings{
			MaxAttempts:   l.cfg.MaxAttempts,
			Window:        l.cfg.Window,
			BlockDuration: l.cfg.BlockDuration,
			Disabled:      l.cfg.Disabled,
		},
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if a, ok := l.attempts[origin]; ok {
		snapshot := &models.RateLimitAttemptSnapshot{
			Count:        a.count,
			FirstAttempt: a.firstAttempt,
			LastAttempt:  a.lastAttempt,
		}
		if !a.blockedUntil.IsZero() {
			blockedUntil := a.blockedUntil
			snapshot.BlockedUntil = &blockedUntil
		}
		status.Attempts = snapshot
	}

	return status
}

func notLimited(remaining int) models.RateLimitDecision {
	return models.RateLimitDecision{RemainingAttempts: &remaining}
}

func limited(until time.Time, reason string) models.RateLimitDecision {
	return models.RateLimitDecision{
		IsLimited: true,
		ResetTime: &until,
		Reason:    reason,
	}
}
