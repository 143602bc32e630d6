package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-tweeter/internal/config"
	"github.com/MKhiriev/go-tweeter/internal/handler"
	"github.com/MKhiriev/go-tweeter/internal/logger"
	"github.com/MKhiriev/go-tweeter/internal/server"
	"github.com/MKhiriev/go-tweeter/internal/service"
	"github.com/MKhiriev/go-tweeter/internal/store"
	"github.com/MKhiriev/go-tweeter/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("go-tweeter-server").Fatal().Err(err).Msg("error getting configs")
	}

	log := newLogger(cfg.App.SecurityPolicy())
	log.Info().
		Str("environment", cfg.App.Environment).
		Str("address", cfg.Server.HTTPAddress).
		Str("db_driver", cfg.Storage.DB.Driver).
		Msg("received configs")

	db, err := store.NewDB(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	services := service.NewServices(store.NewStorages(db, log), cfg.App, log)

	handlers, err := handler.NewHandlers(services, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

// newLogger writes JSON in production and human-readable lines otherwise.
func newLogger(policy config.SecurityPolicy) *logger.Logger {
	if policy.IsProduction {
		return logger.NewLogger("go-tweeter-server")
	}
	return logger.NewConsoleLogger("go-tweeter-server")
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
