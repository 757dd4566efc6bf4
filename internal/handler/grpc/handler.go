package grpc

import (
	"context"
	"time"

	"github.com/MKhiriev/go-crm-auth/internal/logger"
	"github.com/MKhiriev/go-crm-auth/internal/utils"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// ServiceName is the health service name reported next to the overall
// ("") status.
const ServiceName = "crm.auth"

// Handler is the root gRPC transport handler.
//
// It serves the standard grpc.health.v1.Health service. Both the overall
// status and [ServiceName] start as NOT_SERVING and are flipped by
// [Handler.SetServing], which the health prober calls after every
// database ping.
type Handler struct {
	health   *health.Server
	traceIDs *utils.UUIDGenerator

	logger *logger.Logger
}

func NewHandler(logger *logger.Logger) *Handler {
	h := &Handler{
		health:   health.NewServer(),
		traceIDs: utils.NewUUIDGenerator(),
		logger:   logger,
	}
	h.SetServing(false)

	logger.Debug().Msg("gRPC handler created")
	return h
}

// Register attaches the health service to s.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
}

// SetServing reports the process as SERVING or NOT_SERVING.
func (h *Handler) SetServing(serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	h.health.SetServingStatus("", st)
	h.health.SetServingStatus(ServiceName, st)
}

// Shutdown sets every status to NOT_SERVING and ignores later updates.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}

// UnaryLogging is the unary counterpart of the HTTP access log: it attaches
// a logger carrying a fresh trace_id to the context and logs the outcome.
func (h *Handler) UnaryLogging(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
	start := time.Now()

	l := h.logger.GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", h.traceIDs.Generate())
	})
	ctx = l.WithContext(ctx)

	resp, err := next(ctx, req)

	l.Info().
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Send()

	return resp, err
}
