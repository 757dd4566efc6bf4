// Command admin performs maintenance tasks against the auth database:
//
//	admin [config flags] create-admin [-username u] [-email e] [-name n]
//	admin [config flags] revoke-sessions -username u
//	admin [config flags] sweep-sessions
//
// Configuration is read the same way as by the server (environment, flags,
// JSON file). Missing create-admin values are prompted for on stdin; the
// password is always read from stdin, without echo on a terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-crm-auth/internal/config"
	"github.com/MKhiriev/go-crm-auth/internal/logger"
	"github.com/MKhiriev/go-crm-auth/internal/service"
	"github.com/MKhiriev/go-crm-auth/internal/store"
)

func main() {
	log := logger.NewLogger("crm-auth-admin")

	cfg, rest, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() { _ = storages.Close() }()

	services, err := service.NewServices(storages, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	if err = run(ctx, services, rest, newPrompter(os.Stdin, os.Stdout)); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		_ = storages.Close()
		os.Exit(1)
	}
}
