package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/wonny/mandacaru-broker/internal/api"
	"github.com/wonny/mandacaru-broker/internal/domain/stock"
	"github.com/wonny/mandacaru-broker/internal/infra/cache"
	"github.com/wonny/mandacaru-broker/internal/infra/database/postgres"
	"github.com/wonny/mandacaru-broker/internal/infra/memory"
	"github.com/wonny/mandacaru-broker/internal/pkg/config"
	stockservice "github.com/wonny/mandacaru-broker/internal/service/stock"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return serve(cfg)
	},
}

func serve(cfg *config.Config) error {
	log.Info().
		Str("version", serviceVersion).
		Str("storage", cfg.Storage.Driver).
		Msg("🚀 Starting Mandacaru Broker API Server...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deps := api.Dependencies{}

	var repo stock.Repository
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		if cfg.Database.AutoMigrate {
			if err := migrateUp(cfg.Database.URL); err != nil {
				return err
			}
		}

		dbPool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer dbPool.Close()

		repo = postgres.NewStockRepository(dbPool)
		deps.Database = dbPool
	default:
		repo = memory.NewStockRepository()
		log.Warn().Msg("Using in-memory storage, records are lost on restart")
	}

	if cfg.Redis.Enabled {
		client, err := cache.NewClient(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer func() {
			if err := client.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close redis client")
			}
		}()

		repo = cache.NewStockCache(repo, client, cfg.Redis.TTL)
		deps.Redis = client
	}

	deps.StockService = stockservice.NewService(repo, stock.NewValidator())
	router := api.NewRouter(cfg, deps, serviceVersion)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("address", addr).Msg("🎯 API Server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Info().Msg("🛑 Shutdown signal received, stopping server...")
	case err := <-serverErr:
		return fmt.Errorf("api server failed: %w", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("👋 Mandacaru Broker API Server stopped")
	return nil
}
