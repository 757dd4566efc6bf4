package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk JSON layout of [StructuredConfig].
// Durations are written as strings ("30s", "720h").
type StructuredJSONConfig struct {
	App struct {
		Env      string `json:"env"`
		Version  string `json:"version"`
		LogLevel string `json:"log_level"`
	} `json:"app,omitempty"`

	Auth struct {
		SessionCookieName string   `json:"session_cookie_name"`
		SessionDuration   Duration `json:"session_duration"`
		RefreshThreshold  Duration `json:"session_refresh_threshold"`
	} `json:"auth,omitempty"`

	RateLimit struct {
		MaxAttempts   int      `json:"max_attempts"`
		Window        Duration `json:"window"`
		BlockDuration Duration `json:"block_duration"`
		SweepChance   float64  `json:"sweep_chance"`
		Disabled      bool     `json:"disabled"`
	} `json:"rate_limit,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Workers struct {
		SessionSweepInterval   Duration `json:"session_sweep_interval"`
		RateLimitSweepInterval Duration `json:"rate_limit_sweep_interval"`
		HealthProbeInterval    Duration `json:"health_probe_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var j StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&j); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Env:      j.App.Env,
			Version:  j.App.Version,
			LogLevel: j.App.LogLevel,
		},
		Auth: Auth{
			SessionCookieName: j.Auth.SessionCookieName,
			SessionDuration:   time.Duration(j.Auth.SessionDuration),
			RefreshThreshold:  time.Duration(j.Auth.RefreshThreshold),
		},
		RateLimit: RateLimit{
			MaxAttempts:   j.RateLimit.MaxAttempts,
			Window:        time.Duration(j.RateLimit.Window),
			BlockDuration: time.Duration(j.RateLimit.BlockDuration),
			SweepChance:   j.RateLimit.SweepChance,
			Disabled:      j.RateLimit.Disabled,
		},
		Storage: Storage{
			DB: DB{DSN: j.Storage.DB.DSN},
		},
		Server: Server{
			HTTPAddress:    j.Server.HTTPAddress,
			GRPCAddress:    j.Server.GRPCAddress,
			RequestTimeout: time.Duration(j.Server.RequestTimeout),
		},
		Workers: Workers{
			SessionSweepInterval:   time.Duration(j.Workers.SessionSweepInterval),
			RateLimitSweepInterval: time.Duration(j.Workers.RateLimitSweepInterval),
			HealthProbeInterval:    time.Duration(j.Workers.HealthProbeInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as raw nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
