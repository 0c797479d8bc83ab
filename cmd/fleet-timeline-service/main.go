package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"fleet-timeline-service/internal/config"
	"fleet-timeline-service/internal/db"
	httphandler "fleet-timeline-service/internal/http"
	"fleet-timeline-service/internal/logger"
	"fleet-timeline-service/internal/repository"
	"fleet-timeline-service/internal/service"
)

const startupTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment, cfg.LogLevel)

	source, closeSource, err := openFactSource(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("failed to open fact source")
	}
	defer closeSource()

	timelineService := service.NewTimelineService(
		source,
		cfg.Collections,
		cfg.Timeline.Location,
		cfg.Timeline.ExportDelimiter,
		appLogger,
	)

	handler := httphandler.NewHandler(timelineService, cfg.Timeline.Location, appLogger)
	router := httphandler.NewRouter(handler, cfg.Environment, cfg.HTTP.AllowedOrigins, appLogger)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().
		Str("addr", addr).
		Str("driver", cfg.Store.Driver).
		Str("timezone", cfg.Timeline.Location.String()).
		Msg("starting fleet timeline service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}

func openFactSource(cfg *config.Config, log zerolog.Logger) (service.FactSource, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		database, err := db.New(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if sqlDB, err := database.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return repository.NewFactRepository(database), closeFn, nil

	case config.DriverMongo:
		ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
		defer cancel()
		client, err := db.ConnectMongo(ctx, cfg.Mongo.URI)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			_ = client.Disconnect(context.Background())
		}
		return repository.NewMongoRepository(client.Database(cfg.Mongo.Database)), closeFn, nil

	case config.DriverFile:
		return repository.NewFileRepository(cfg.Store.FactsDir), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}
