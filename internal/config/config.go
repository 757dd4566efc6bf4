// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// Deployment environments recognised by [App.Env].
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// StructuredConfig is the top-level configuration container for the
// crm-auth service. It is populated by merging environment variables,
// command-line flags, an optional JSON file and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds the deployment environment, version and log level.
	App App `envPrefix:"APP_"`

	// Auth holds session lifetime and cookie settings.
	Auth Auth `envPrefix:"AUTH_"`

	// RateLimit holds the login throttling thresholds.
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`

	// Storage holds configuration for the relational database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP and
	// gRPC servers.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds the intervals of background workers.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// Env is the deployment environment, "development" or "production".
	// Development relaxes the Secure cookie attribute, drops HSTS and
	// exposes the rate limit debug endpoint.
	// Env: APP_ENV
	Env string `env:"ENV"`

	// Version is the semantic version string of the running application.
	// Exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// IsDevelopment reports whether the service runs in development mode.
func (a App) IsDevelopment() bool {
	return a.Env == EnvDevelopment
}

// Auth holds session settings.
type Auth struct {
	// SessionCookieName is the cookie carrying the session token.
	// Env: AUTH_SESSION_COOKIE_NAME
	SessionCookieName string `env:"SESSION_COOKIE_NAME"`

	// SessionDuration is the lifetime given to new and refreshed sessions.
	// Env: AUTH_SESSION_DURATION
	SessionDuration time.Duration `env:"SESSION_DURATION"`

	// RefreshThreshold is the remaining lifetime under which a validated
	// session is extended. Must be shorter than SessionDuration.
	// Env: AUTH_SESSION_REFRESH_THRESHOLD
	RefreshThreshold time.Duration `env:"SESSION_REFRESH_THRESHOLD"`
}

// RateLimit holds login throttling thresholds.
type RateLimit struct {
	// Env: RATE_LIMIT_MAX_ATTEMPTS
	MaxAttempts int `env:"MAX_ATTEMPTS"`
	// Env: RATE_LIMIT_WINDOW
	Window time.Duration `env:"WINDOW"`
	// Env: RATE_LIMIT_BLOCK_DURATION
	BlockDuration time.Duration `env:"BLOCK_DURATION"`
	// SweepChance is the probability that a recorded failure also purges
	// stale entries. A negative value turns the opportunistic sweep off.
	// Env: RATE_LIMIT_SWEEP_CHANCE
	SweepChance float64 `env:"SWEEP_CHANCE"`
	// Disabled turns rate limiting off entirely.
	// Env: RATE_LIMIT_DISABLED
	Disabled bool `env:"DISABLED"`
}

// Storage groups the configuration for storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN selects both the driver and the target database:
	// "postgres://..." opens PostgreSQL through pgx, "file:...",
	// "sqlite://..." or a path ending in ".db" opens SQLite.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address of the HTTP server, "host:port".
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address of the gRPC health server, "host:port".
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds the run intervals of background workers.
type Workers struct {
	// Env: WORKERS_SESSION_SWEEP_INTERVAL
	SessionSweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL"`
	// Env: WORKERS_RATE_LIMIT_SWEEP_INTERVAL
	RateLimitSweepInterval time.Duration `env:"RATE_LIMIT_SWEEP_INTERVAL"`
	// Env: WORKERS_HEALTH_PROBE_INTERVAL
	HealthProbeInterval time.Duration `env:"HEALTH_PROBE_INTERVAL"`
}

// GetStructuredConfig loads the server configuration using the process
// arguments as flags. See [Load].
func GetStructuredConfig() (*StructuredConfig, error) {
	cfg, _, err := Load(os.Args[1:])
	return cfg, err
}

// Load merges configuration sources and validates the result. For every
// field the first non-zero value wins, in this order:
//  1. Environment variables
//  2. Command-line flags parsed from args
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// The positional arguments left after flag parsing are returned so that
// subcommand-style binaries can dispatch on them.
func Load(args []string) (*StructuredConfig, []string, error) {
	b := newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		withDefaults()

	cfg, err := b.build()
	if err != nil {
		return nil, nil, err
	}

	return cfg, b.rest, nil
}
