// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
)

// validate checks that the merged [StructuredConfig] is usable at startup.
// All violated groups are reported at once, joined with errors.Join.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	if cfg.App.Env != EnvDevelopment && cfg.App.Env != EnvProduction {
		errs = append(errs, fmt.Errorf("%w: unknown environment %q", ErrInvalidAppConfigs, cfg.App.Env))
	}

	switch {
	case cfg.Auth.SessionCookieName == "":
		errs = append(errs, fmt.Errorf("%w: empty session cookie name", ErrInvalidAuthConfigs))
	case cfg.Auth.SessionDuration <= 0 || cfg.Auth.RefreshThreshold <= 0:
		errs = append(errs, fmt.Errorf("%w: session durations must be positive", ErrInvalidAuthConfigs))
	case cfg.Auth.RefreshThreshold >= cfg.Auth.SessionDuration:
		errs = append(errs, fmt.Errorf("%w: refresh threshold %s must be shorter than session duration %s",
			ErrInvalidAuthConfigs, cfg.Auth.RefreshThreshold, cfg.Auth.SessionDuration))
	}

	if cfg.RateLimit.MaxAttempts < 1 || cfg.RateLimit.Window <= 0 || cfg.RateLimit.BlockDuration <= 0 {
		errs = append(errs, fmt.Errorf("%w: attempts, window and block duration must be positive", ErrInvalidRateLimitConfigs))
	}
	if cfg.RateLimit.SweepChance > 1 {
		errs = append(errs, fmt.Errorf("%w: sweep chance %v above 1", ErrInvalidRateLimitConfigs, cfg.RateLimit.SweepChance))
	}

	if cfg.Storage.DB.DSN == "" {
		errs = append(errs, fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs))
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		errs = append(errs, ErrInvalidServerConfigs)
	}

	w := cfg.Workers
	if w.SessionSweepInterval <= 0 || w.RateLimitSweepInterval <= 0 || w.HealthProbeInterval <= 0 {
		errs = append(errs, ErrInvalidWorkerConfigs)
	}

	return errors.Join(errs...)
}
