package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSONFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestParseJSON_Success(t *testing.T) {
	p := writeJSONFile(t, `{
		"app": { "env": "development", "version": "2.0.0", "log_level": "warn" },
		"auth": {
			"session_cookie_name": "crm-sid",
			"session_duration": "240h",
			"session_refresh_threshold": "120h"
		},
		"rate_limit": {
			"max_attempts": 4,
			"window": "5m",
			"block_duration": "1h",
			"sweep_chance": 0.25,
			"disabled": true
		},
		"storage": { "db": { "dsn": "sqlite:///var/lib/crm/crm.db" } },
		"server": {
			"http_address": "localhost:8080",
			"grpc_address": "localhost:9090",
			"request_timeout": "15s"
		},
		"workers": {
			"session_sweep_interval": "30m",
			"rate_limit_sweep_interval": "45m",
			"health_probe_interval": "10s"
		}
	}`)

	cfg, err := parseJSON(p)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, App{Env: "development", Version: "2.0.0", LogLevel: "warn"}, cfg.App)
	assert.Equal(t, "crm-sid", cfg.Auth.SessionCookieName)
	assert.Equal(t, 240*time.Hour, cfg.Auth.SessionDuration)
	assert.Equal(t, 120*time.Hour, cfg.Auth.RefreshThreshold)
	assert.Equal(t, 4, cfg.RateLimit.MaxAttempts)
	assert.Equal(t, 5*time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, time.Hour, cfg.RateLimit.BlockDuration)
	assert.InDelta(t, 0.25, cfg.RateLimit.SweepChance, 1e-9)
	assert.True(t, cfg.RateLimit.Disabled)
	assert.Equal(t, "sqlite:///var/lib/crm/crm.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, "localhost:9090", cfg.Server.GRPCAddress)
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 30*time.Minute, cfg.Workers.SessionSweepInterval)
	assert.Equal(t, 45*time.Minute, cfg.Workers.RateLimitSweepInterval)
	assert.Equal(t, 10*time.Second, cfg.Workers.HealthProbeInterval)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	cfg, err := parseJSON("definitely-does-not-exist.json")

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	cfg, err := parseJSON(writeJSONFile(t, `{ this is not json }`))

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestParseJSON_InvalidDuration(t *testing.T) {
	cfg, err := parseJSON(writeJSONFile(t, `{ "auth": { "session_duration": "not-a-duration" } }`))

	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestParseJSON_EmptyObject(t *testing.T) {
	cfg, err := parseJSON(writeJSONFile(t, `{}`))

	require.NoError(t, err)
	assert.Equal(t, StructuredConfig{}, *cfg)
}

func TestDuration_JSON(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"1h30m"`), &d))
	assert.Equal(t, 90*time.Minute, time.Duration(d))

	require.NoError(t, json.Unmarshal([]byte(`1000`), &d))
	assert.Equal(t, time.Microsecond, time.Duration(d))

	assert.Error(t, json.Unmarshal([]byte(`true`), &d))

	out, err := json.Marshal(Duration(15 * time.Minute))
	require.NoError(t, err)
	assert.JSONEq(t, `"15m0s"`, string(out))
}
