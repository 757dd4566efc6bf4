package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*StructuredConfig) {}},
		{name: "unknown env", mutate: func(c *StructuredConfig) { c.App.Env = "staging" }, wantErr: ErrInvalidAppConfigs},
		{name: "empty cookie name", mutate: func(c *StructuredConfig) { c.Auth.SessionCookieName = "" }, wantErr: ErrInvalidAuthConfigs},
		{name: "threshold equals duration", mutate: func(c *StructuredConfig) { c.Auth.RefreshThreshold = c.Auth.SessionDuration }, wantErr: ErrInvalidAuthConfigs},
		{name: "negative duration", mutate: func(c *StructuredConfig) { c.Auth.SessionDuration = -time.Hour }, wantErr: ErrInvalidAuthConfigs},
		{name: "zero attempts", mutate: func(c *StructuredConfig) { c.RateLimit.MaxAttempts = 0 }, wantErr: ErrInvalidRateLimitConfigs},
		{name: "sweep chance above one", mutate: func(c *StructuredConfig) { c.RateLimit.SweepChance = 1.5 }, wantErr: ErrInvalidRateLimitConfigs},
		{name: "empty dsn", mutate: func(c *StructuredConfig) { c.Storage.DB.DSN = "" }, wantErr: ErrInvalidStorageConfigs},
		{name: "empty http address", mutate: func(c *StructuredConfig) { c.Server.HTTPAddress = "" }, wantErr: ErrInvalidServerConfigs},
		{name: "zero probe interval", mutate: func(c *StructuredConfig) { c.Workers.HealthProbeInterval = 0 }, wantErr: ErrInvalidWorkerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_ReportsAllGroups(t *testing.T) {
	cfg := validConfig()
	cfg.App.Env = ""
	cfg.Storage.DB.DSN = ""

	err := cfg.validate()
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}
