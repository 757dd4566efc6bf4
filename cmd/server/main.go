package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-crm-auth/internal/config"
	"github.com/MKhiriev/go-crm-auth/internal/handler"
	"github.com/MKhiriev/go-crm-auth/internal/logger"
	"github.com/MKhiriev/go-crm-auth/internal/server"
	"github.com/MKhiriev/go-crm-auth/internal/service"
	"github.com/MKhiriev/go-crm-auth/internal/store"
	"github.com/MKhiriev/go-crm-auth/internal/workers"
	"github.com/MKhiriev/go-crm-auth/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	models.NewAppBuildInfo(buildVersion, buildDate, buildCommit).Fprint(os.Stdout)

	log := logger.NewLogger("crm-auth-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	log.Debug().Any("config", cfg.Redacted()).Msg("received configs")

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	services, err := service.NewServices(storages, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	var bg *workers.Workers
	if handlers.GRPC != nil {
		bg = workers.NewWorkers(services, storages.DB, handlers.GRPC, cfg.Workers, log)
	} else {
		bg = workers.NewWorkers(services, nil, nil, cfg.Workers, log)
	}
	bg.Run(ctx)

	if err = srv.RunServer(ctx); err != nil {
		log.Err(err).Msg("server stopped with error")
	}

	stop()
	bg.Wait()
}
