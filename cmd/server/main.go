package main

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-movie-favorites/internal/config"
	"github.com/MKhiriev/go-movie-favorites/internal/handler"
	"github.com/MKhiriev/go-movie-favorites/internal/logger"
	"github.com/MKhiriev/go-movie-favorites/internal/server"
	"github.com/MKhiriev/go-movie-favorites/internal/service"
	"github.com/MKhiriev/go-movie-favorites/internal/store"
	"github.com/MKhiriev/go-movie-favorites/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const connectTimeout = 10 * time.Second

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	log := logger.NewLogger("movie-favorites-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	log.Debug().
		Str("driver", cfg.Storage.DB.Driver).
		Str("address", cfg.Server.HTTPAddress).
		Str("token_format", cfg.App.TokenFormat).
		Dur("token_duration", cfg.App.TokenDuration).
		Msg("received configs")

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)

	services, err := service.NewServices(storages, cfg.App, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
