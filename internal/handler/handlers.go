package handler

import (
	"github.com/MKhiriev/go-crm-auth/internal/config"
	"github.com/MKhiriev/go-crm-auth/internal/handler/grpc"
	"github.com/MKhiriev/go-crm-auth/internal/handler/http"
	"github.com/MKhiriev/go-crm-auth/internal/logger"
	"github.com/MKhiriev/go-crm-auth/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

func NewHandlers(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, cfg, logger)
	}
	if cfg.Server.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
