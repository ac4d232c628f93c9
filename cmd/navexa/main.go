package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"navexa/internal/amqp"
	"navexa/internal/cache"
	"navexa/internal/config"
	apphttp "navexa/internal/http"
	applog "navexa/internal/log"
	"navexa/internal/services"
	"navexa/internal/store"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	st, err := openStore(cfg)
	if err != nil {
		logger.Error("Failed to initialize store", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer st.Close()
	logger.Info("Store initialized", "backend", cfg.DataBackend)

	if cfg.SeedDemoData {
		if err := store.Seed(context.Background(), st, time.Now()); err != nil {
			logger.Error("Failed to seed demo data", "error", err)
			os.Exit(1)
		}
	}

	// AMQP publisher is optional: without it trips are still saved, and
	// the worker's catch-up pass exports them later.
	var publisher services.TripPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, ledger export deferred to worker catch-up", "error", err)
		} else {
			defer client.Close()
			publisher = client
			logger.Info("AMQP publisher initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	dashboard := services.NewDashboardService(st, logger)
	trips := services.NewTripService(st, publisher, logger, dashboard.Invalidate)
	vehicles := services.NewVehicleService(st, logger, dashboard.Invalidate)

	cacheManager := cache.NewManager(dashboard.Cleaners()...)
	cacheManager.Start(10 * time.Minute)
	defer cacheManager.Stop()

	srv := apphttp.NewServer(":"+cfg.Port, trips, vehicles, dashboard)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting navexa server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.DataBackend {
	case "sqlite":
		// NewSQLiteStore runs migrations on open
		return store.NewSQLiteStore(cfg.SQLiteDBPath)
	default:
		return store.NewMemoryStore(), nil
	}
}
