package http

import (
	"time"

	"github.com/MKhiriev/go-crm-auth/internal/config"
	"github.com/MKhiriev/go-crm-auth/internal/logger"
	"github.com/MKhiriev/go-crm-auth/internal/service"
	"github.com/MKhiriev/go-crm-auth/internal/utils"
)

type Handler struct {
	services *service.Services

	// cookieName is the name of the session cookie.
	cookieName string

	// development relaxes the Secure cookie flag, omits HSTS and exposes the
	// rate limit diagnostics route.
	development bool

	requestTimeout time.Duration

	traceIDs *utils.UUIDGenerator
	now      func() time.Time

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		cookieName:     cfg.Auth.SessionCookieName,
		development:    cfg.App.IsDevelopment(),
		requestTimeout: cfg.Server.RequestTimeout,
		traceIDs:       utils.NewUUIDGenerator(),
		now:            time.Now,
		logger:         logger,
	}
}
