package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jafarshop/topup/internal/api"
	"github.com/jafarshop/topup/internal/catalog"
	"github.com/jafarshop/topup/internal/config"
	"github.com/jafarshop/topup/internal/logging"
	"github.com/jafarshop/topup/internal/repository/backend"
	"github.com/jafarshop/topup/internal/service"
	"github.com/jafarshop/topup/internal/storefront"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting top-up draft server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("storage", cfg.Storage.Driver),
	)

	// Catalog: embedded default unless CATALOG_FILE is set
	registry, err := catalog.Load(cfg.Catalog.File)
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err), zap.String("file", cfg.Catalog.File))
	}
	logger.Info("Catalog loaded", zap.Int("products", len(registry.List())))

	// Draft storage
	startCtx, startCancel := context.WithTimeout(context.Background(), 15*time.Second)
	store, err := backend.Open(startCtx, cfg, logger)
	startCancel()
	if err != nil {
		logger.Fatal("Failed to open draft storage", zap.Error(err))
	}
	defer store.Close()

	jobsCtx, stopJobs := context.WithCancel(context.Background())
	defer stopJobs()

	if store.Pruner != nil && cfg.Storage.DraftTTL > 0 {
		go service.RunDraftPruneLoop(jobsCtx, store.Pruner, cfg.Storage.DraftTTL, logger)
	}

	// Catalog sync: run once on startup, then every CATALOG_SYNC_INTERVAL
	var syncer *service.CatalogSyncer
	if cfg.Storefront.BaseURL != "" {
		client := storefront.NewClient(cfg.Storefront.BaseURL, cfg.Storefront.APIKey, logger)
		syncer = service.NewCatalogSyncer(client, registry, logger)
		go syncer.RunLoop(jobsCtx, cfg.Catalog.SyncInterval)
		logger.Info("Catalog sync job started", zap.Duration("interval", cfg.Catalog.SyncInterval))
	} else {
		logger.Info("STOREFRONT_API_URL not set; catalog sync disabled")
	}

	svc := service.NewDraftService(registry, store.Repos, cfg.DeepLink.BaseURL, logger)

	// Initialize router
	router := api.NewRouter(cfg, svc, syncer, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.Compress(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Server started successfully", zap.String("address", srv.Addr))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	stopJobs()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
