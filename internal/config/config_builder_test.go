package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func validConfig() *StructuredConfig {
	cfg := defaults()
	cfg.Storage.DB.DSN = "file:crm.db"
	return cfg
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// TestBuild_EmptyBuilder verifies that a builder without sources fails
// validation rather than returning a zero config.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
	assert.ErrorIs(t, err, ErrInvalidServerConfigs)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_FirstNonZeroWins verifies mergo's precedence: an earlier source
// shadows later ones, and later sources only fill gaps.
func TestBuild_FirstNonZeroWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{Version: "env-version"}},
		&StructuredConfig{App: App{Version: "flag-version", LogLevel: "warn"}},
		validConfig(),
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "env-version", cfg.App.Version)
	assert.Equal(t, "warn", cfg.App.LogLevel)
	assert.Equal(t, EnvProduction, cfg.App.Env)
	assert.Equal(t, "auth-session", cfg.Auth.SessionCookieName)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	setEnvVars(t, map[string]string{
		"APP_VERSION":             "env-version",
		"STORAGE_DB_DATABASE_URI": "file:env.db",
	})

	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())

	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-version", b.configs[0].App.Version)
	assert.Equal(t, "file:env.db", b.configs[0].Storage.DB.DSN)
	assert.NoError(t, b.err)
}

func TestWithEnv_SetsErrorOnBadValue(t *testing.T) {
	setEnvVars(t, map[string]string{"SERVER_REQUEST_TIMEOUT": "whenever"})

	b := newConfigBuilder().withEnv()
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

func TestWithFlags_StoresRest(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags([]string{"-d", "file:x.db", "sweep-sessions"}))

	require.Len(t, b.configs, 1)
	assert.Equal(t, "file:x.db", b.configs[0].Storage.DB.DSN)
	assert.Equal(t, []string{"sweep-sessions"}, b.rest)
}

func TestWithFlags_SetsErrorOnUnknownFlag(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-nope"})
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	assert.Same(t, b, b.withJSON())

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "json-version"
	payload.RateLimit.Window = Duration(5 * time.Minute)
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-version", b.configs[1].App.Version)
	assert.Equal(t, 5*time.Minute, b.configs[1].RateLimit.Window)
}

// TestWithJSON_UsesFirstPath verifies that the path from the highest
// priority source is used, consistent with field merging.
func TestWithJSON_UsesFirstPath(t *testing.T) {
	first := StructuredJSONConfig{}
	first.App.Version = "first"
	second := StructuredJSONConfig{}
	second.App.Version = "second"

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{},
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, first)},
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, second)},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 4)
	assert.Equal(t, "first", b.configs[3].App.Version)
}

func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/nonexistent/config.json"})
	b.withJSON()

	assert.Error(t, b.err)
}

// ── Load ──────────────────────────────────────────────────────────────────────

func TestLoad_DefaultsFillGaps(t *testing.T) {
	clearEnvVars(t)

	cfg, rest, err := Load([]string{"-d", "file:crm.db"})
	require.NoError(t, err)
	assert.Empty(t, rest)

	assert.Equal(t, "file:crm.db", cfg.Storage.DB.DSN)
	assert.Equal(t, EnvProduction, cfg.App.Env)
	assert.False(t, cfg.App.IsDevelopment())
	assert.Equal(t, "auth-session", cfg.Auth.SessionCookieName)
	assert.Equal(t, 720*time.Hour, cfg.Auth.SessionDuration)
	assert.Equal(t, 360*time.Hour, cfg.Auth.RefreshThreshold)
	assert.Equal(t, 10, cfg.RateLimit.MaxAttempts)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 30*time.Minute, cfg.RateLimit.BlockDuration)
	assert.False(t, cfg.RateLimit.Disabled)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, time.Hour, cfg.Workers.SessionSweepInterval)
	assert.Equal(t, 15*time.Second, cfg.Workers.HealthProbeInterval)
}

func TestLoad_Precedence(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Env = "development"
	payload.App.Version = "json"
	payload.Server.HTTPAddress = "127.0.0.1:7000"
	payload.RateLimit.MaxAttempts = 7
	path := writeTempJSONConfig(t, payload)

	setEnvVars(t, map[string]string{
		"CONFIG":                  path,
		"APP_VERSION":             "env",
		"STORAGE_DB_DATABASE_URI": "postgres://env/crm",
	})

	cfg, rest, err := Load([]string{"-d", "postgres://flag/crm", "-a", "127.0.0.1:6000", "revoke-sessions"})
	require.NoError(t, err)

	assert.Equal(t, []string{"revoke-sessions"}, rest)
	assert.Equal(t, "env", cfg.App.Version)
	assert.Equal(t, "postgres://env/crm", cfg.Storage.DB.DSN)
	assert.Equal(t, "127.0.0.1:6000", cfg.Server.HTTPAddress)
	assert.Equal(t, 7, cfg.RateLimit.MaxAttempts)
	assert.True(t, cfg.App.IsDevelopment())
}

func TestLoad_ValidationFailure(t *testing.T) {
	setEnvVars(t, map[string]string{
		"STORAGE_DB_DATABASE_URI":        "file:crm.db",
		"AUTH_SESSION_DURATION":          "24h",
		"AUTH_SESSION_REFRESH_THRESHOLD": "48h",
	})

	cfg, _, err := Load(nil)
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidAuthConfigs)
}
