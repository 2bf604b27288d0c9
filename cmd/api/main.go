package main

import (
	"context"
	"fmt"
	stdlog "log"
	"os/signal"
	"statuspage/config"
	"statuspage/internals/app"
	"statuspage/internals/server"
	"statuspage/pkg/db"
	"statuspage/pkg/logger"
	"syscall"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig("env.yaml")
	if err != nil {
		stdlog.Fatalf("failed to load config: %v", err)
	}

	// Context tied to shutdown signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize base/global logger
	log := logger.Init(cfg)
	log.Info().Msg("logger initialized")

	// Initialize DB pool
	dbPool, err := db.ConnectToDB(ctx, &cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize db pool")
	}
	log.Info().Msg("database pool initialized")
	defer dbPool.Close()

	// Inject dependencies
	container, err := app.NewContainer(ctx, dbPool, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize dependencies")
	}
	log.Info().Msg("dependencies initialized")

	// Register routes
	router := app.RegisterRoutes(container)
	log.Info().Msg("routes registered")

	// Start HTTP server, runs in a background goroutine
	srv := server.New(fmt.Sprintf(":%d", cfg.Port), router, log)
	srv.Start()

	// main goroutine waits for graceful shutdown
	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	// 1. Stop HTTP server (stop accepting requests)
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	// 2. Shutdown caches & infra
	if err := container.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("dependencies shutdown failed")
	}

	log.Info().Msg("graceful shutdown complete")
}
