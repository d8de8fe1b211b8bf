package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-shop-keeper/internal/config"
	"github.com/MKhiriev/go-shop-keeper/internal/handler"
	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/internal/notify"
	"github.com/MKhiriev/go-shop-keeper/internal/objectstore"
	"github.com/MKhiriev/go-shop-keeper/internal/server"
	"github.com/MKhiriev/go-shop-keeper/internal/service"
	"github.com/MKhiriev/go-shop-keeper/internal/store"
	"github.com/MKhiriev/go-shop-keeper/internal/workers"
	"github.com/MKhiriev/go-shop-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(buildInfo)

	log := logger.NewLogger("go-shop-server")
	if err := run(buildInfo, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(buildInfo models.BuildInfo, log *logger.Logger) error {
	ctx := context.Background()

	cfg, err := config.LoadStructuredConfig(os.Args[1:])
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		return err
	}
	if buildInfo.Stamped() {
		cfg.App.Version = buildInfo.Version
	}

	log.Debug().Str("driver", cfg.Storage.Driver).Str("address", cfg.Server.HTTPAddress).Msg("received configs")

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("error creating storages: %w", err)
	}
	defer func() {
		if err := storages.Close(context.Background()); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	var idempotency store.IdempotencyStore
	if cfg.Storage.Redis.Address != "" {
		redisClient, err := store.NewConnectRedis(ctx, cfg.Storage.Redis, log)
		if err != nil {
			return fmt.Errorf("error connecting redis: %w", err)
		}
		defer redisClient.Close()
		idempotency = store.NewRedisIdempotencyStore(redisClient, log)
	}

	var presigner objectstore.Presigner
	if cfg.Storage.Images.Bucket != "" {
		if presigner, err = objectstore.NewS3Presigner(ctx, cfg.Storage.Images, log); err != nil {
			return fmt.Errorf("error creating image presigner: %w", err)
		}
	}

	contactNotifier := workers.NewContactNotifier(notify.NewNotifier(cfg.Mail, log), 0, log)

	services, err := service.NewServices(storages, presigner, contactNotifier, cfg, log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	if cfg.Auth.AdminEmail != "" {
		if err = services.AuthService.EnsureAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
			return fmt.Errorf("error bootstrapping admin account: %w", err)
		}
	}

	handlers, err := handler.NewHandlers(services, idempotency, cfg, log)
	if err != nil {
		return fmt.Errorf("error creating handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	workersCtx, stopWorkers := context.WithCancel(ctx)
	workersDone := make(chan struct{})
	go func() {
		workers.NewWorkers(contactNotifier).Run(workersCtx)
		close(workersDone)
	}()

	srv.RunServer()

	stopWorkers()
	<-workersDone
	return nil
}
