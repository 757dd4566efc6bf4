package service

import (
	"fmt"

	"github.com/MKhiriev/go-crm-auth/internal/config"
	"github.com/MKhiriev/go-crm-auth/internal/crypto"
	"github.com/MKhiriev/go-crm-auth/internal/logger"
	"github.com/MKhiriev/go-crm-auth/internal/ratelimit"
	"github.com/MKhiriev/go-crm-auth/internal/store"
	"github.com/MKhiriev/go-crm-auth/internal/utils"
)

type Services struct {
	AuthService    AuthService
	SessionService SessionService
	AppInfoService AppInfoService

	// Limiter is shared by the login flow, the sweep worker and the
	// diagnostics endpoint.
	Limiter LoginLimiter
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	limiter := ratelimit.New(ratelimit.Config{
		MaxAttempts:   cfg.RateLimit.MaxAttempts,
		Window:        cfg.RateLimit.Window,
		BlockDuration: cfg.RateLimit.BlockDuration,
		SweepChance:   cfg.RateLimit.SweepChance,
		Disabled:      cfg.RateLimit.Disabled,
	}, logger)

	sessionService := NewSessionService(storages.SessionRepository, cfg.Auth, logger)

	return &Services{
		AuthService: NewAuthService(
			storages.UserRepository,
			sessionService,
			crypto.NewPasswordHasher(),
			utils.NewNanoIDGenerator(),
			limiter,
			logger,
		),
		SessionService: sessionService,
		AppInfoService: appInfoService,
		Limiter:        limiter,
	}, nil
}
