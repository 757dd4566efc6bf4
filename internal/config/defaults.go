package config

import "time"

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Env:      EnvProduction,
			Version:  "dev",
			LogLevel: "debug",
		},
		Auth: Auth{
			SessionCookieName: "auth-session",
			SessionDuration:   30 * 24 * time.Hour,
			RefreshThreshold:  15 * 24 * time.Hour,
		},
		RateLimit: RateLimit{
			MaxAttempts:   10,
			Window:        15 * time.Minute,
			BlockDuration: 30 * time.Minute,
			SweepChance:   0.01,
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			GRPCAddress:    "localhost:9090",
			RequestTimeout: 30 * time.Second,
		},
		Workers: Workers{
			SessionSweepInterval:   time.Hour,
			RateLimitSweepInterval: time.Hour,
			HealthProbeInterval:    15 * time.Second,
		},
	}
}
