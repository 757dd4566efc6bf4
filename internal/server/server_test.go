package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/go-crm-auth/internal/config"
	"github.com/MKhiriev/go-crm-auth/internal/handler"
	myGRPC "github.com/MKhiriev/go-crm-auth/internal/handler/grpc"
	myHTTP "github.com/MKhiriev/go-crm-auth/internal/handler/http"
	"github.com/MKhiriev/go-crm-auth/internal/logger"
	"github.com/MKhiriev/go-crm-auth/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func testConfig() config.StructuredConfig {
	return config.StructuredConfig{
		App:  config.App{Env: config.EnvDevelopment, Version: "1.2.3"},
		Auth: config.Auth{SessionCookieName: "auth-session"},
		Server: config.Server{
			HTTPAddress:    "127.0.0.1:0",
			GRPCAddress:    "127.0.0.1:0",
			RequestTimeout: 5 * time.Second,
		},
	}
}

func testHandlers(t *testing.T, cfg config.StructuredConfig) *handler.Handlers {
	t.Helper()

	appInfo, err := service.NewAppInfoService(cfg.App)
	require.NoError(t, err)

	return &handler.Handlers{
		HTTP: myHTTP.NewHandler(&service.Services{AppInfoService: appInfo}, cfg, logger.Nop()),
		GRPC: myGRPC.NewHandler(logger.Nop()),
	}
}

func TestNewServer_NoTransports(t *testing.T) {
	cfg := testConfig()
	cfg.Server.HTTPAddress = ""
	cfg.Server.GRPCAddress = ""

	srv, err := NewServer(&handler.Handlers{}, cfg.Server, logger.Nop())
	assert.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, srv)
}

func TestNewServer_AddressInUse(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = taken.Close() })

	cfg := testConfig()
	cfg.Server.GRPCAddress = taken.Addr().String()

	_, err = NewServer(testHandlers(t, cfg), cfg.Server, logger.Nop())
	assert.Error(t, err)
}

func TestServer_RunAndShutdown(t *testing.T) {
	cfg := testConfig()
	handlers := testHandlers(t, cfg)

	srv, err := NewServer(handlers, cfg.Server, logger.Nop())
	require.NoError(t, err)
	s := srv.(*server)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.RunServer(ctx) }()

	// HTTP
	resp, err := http.Get(fmt.Sprintf("http://%s/api/version", s.httpServer.listener.Addr()))
	require.NoError(t, err)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "1.2.3", body["version"])

	// gRPC health
	conn, err := grpc.NewClient(s.gRPCServer.gRPCNetListener.Addr().String(),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	handlers.GRPC.SetServing(true)
	check, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check.GetStatus())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}

	srv.Shutdown()
}
