package models

import "time"

// RateLimitDecision is returned by the login rate limiter and consumed by
// the login handler to decide whether to proceed and what to tell the user.
type RateLimitDecision struct {
	IsLimited bool `json:"is_limited"`

	// RemainingAttempts is set when the origin is tracked and not limited.
	RemainingAttempts *int `json:"remaining_attempts,omitempty"`

	// ResetTime is set when the origin is blocked.
	ResetTime *time.Time `json:"reset_time,omitempty"`

	// Reason is a human-readable explanation. It never names a user.
	Reason string `json:"reason,omitempty"`
}

// RateLimitAttemptSnapshot is a copy of the limiter's bookkeeping for one
// origin.
type RateLimitAttemptSnapshot struct {
	Count        int        `json:"count"`
	FirstAttempt time.Time  `json:"first_attempt"`
	LastAttempt  time.Time  `json:"last_attempt"`
	BlockedUntil *time.Time `json:"blocked_until,omitempty"`
}

// RateLimitSettings mirrors the limiter configuration for diagnostics.
type RateLimitSettings struct {
	MaxAttempts   int           `json:"max_attempts"`
	Window        time.Duration `json:"window"`
	BlockDuration time.Duration `json:"block_duration"`
	Disabled      bool          `json:"disabled"`
}

// RateLimitStatus is a diagnostic view of the limiter state for an origin.
type RateLimitStatus struct {
	Origin   string                    `json:"origin"`
	IsLocal  bool                      `json:"is_local"`
	Attempts *RateLimitAttemptSnapshot `json:"attempts,omitempty"`
	Settings RateLimitSettings         `json:"settings"`
}
