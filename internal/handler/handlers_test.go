package handler

import (
	"testing"
	"time"

	"github.com/MKhiriev/go-crm-auth/internal/config"
	"github.com/MKhiriev/go-crm-auth/internal/logger"
	"github.com/MKhiriev/go-crm-auth/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandlers(t *testing.T) {
	base := config.StructuredConfig{
		App:    config.App{Env: config.EnvProduction},
		Auth:   config.Auth{SessionCookieName: "auth-session"},
		Server: config.Server{RequestTimeout: time.Second},
	}

	tests := []struct {
		name     string
		http     string
		grpc     string
		wantHTTP bool
		wantGRPC bool
		wantErr  error
	}{
		{name: "both", http: ":8080", grpc: ":9090", wantHTTP: true, wantGRPC: true},
		{name: "http only", http: ":8080", wantHTTP: true},
		{name: "grpc only", grpc: ":9090", wantGRPC: true},
		{name: "none", wantErr: errNoHandlersAreCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			cfg.Server.HTTPAddress = tt.http
			cfg.Server.GRPCAddress = tt.grpc

			handlers, err := NewHandlers(&service.Services{}, cfg, logger.Nop())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, handlers)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantHTTP, handlers.HTTP != nil)
			assert.Equal(t, tt.wantGRPC, handlers.GRPC != nil)
		})
	}
}
