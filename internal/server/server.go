package server

import (
	"context"
	"errors"
	"sync"

	"github.com/MKhiriev/go-crm-auth/internal/config"
	"github.com/MKhiriev/go-crm-auth/internal/handler"
	"github.com/MKhiriev/go-crm-auth/internal/logger"
)

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer
	logger     *logger.Logger

	shutdownOnce sync.Once
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{logger: logger}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		httpSrv, err := newHTTPServer(handlers.HTTP.Init(), cfg, logger)
		if err != nil {
			return nil, err
		}
		servers.httpServer = httpSrv
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		grpcSrv, err := newGRPCServer(handlers.GRPC, cfg, logger)
		if err != nil {
			if servers.httpServer != nil {
				_ = servers.httpServer.listener.Close()
			}
			return nil, err
		}
		servers.gRPCServer = grpcSrv
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

// Shutdown stops every started transport. Safe to call more than once.
func (s *server) Shutdown() {
	s.shutdownOnce.Do(func() {
		// finish HTTP server
		if s.httpServer != nil {
			s.httpServer.Shutdown()
		}

		// finish gRPC server
		if s.gRPCServer != nil {
			s.gRPCServer.Shutdown()
		}
	})
}

func (s *server) RunServer(ctx context.Context) error {
	if s.httpServer == nil && s.gRPCServer == nil {
		return errNoServersAreCreated
	}

	errs := make(chan error, 2)
	var wg sync.WaitGroup

	// launch all created servers
	if s.httpServer != nil {
		wg.Go(func() { errs <- s.httpServer.RunServer() })
	}
	if s.gRPCServer != nil {
		wg.Go(func() { errs <- s.gRPCServer.RunServer() })
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errs:
	}

	s.Shutdown()
	wg.Wait()
	close(errs)

	for err := range errs {
		runErr = errors.Join(runErr, err)
	}
	if runErr != nil {
		return runErr
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}
