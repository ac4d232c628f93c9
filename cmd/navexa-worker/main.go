package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"navexa/internal/amqp"
	"navexa/internal/config"
	"navexa/internal/ledger"
	lgoogle "navexa/internal/ledger/google"
	lmemory "navexa/internal/ledger/memory"
	applog "navexa/internal/log"
	"navexa/internal/store"
	"navexa/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Component: applog.ComponentWorker})
	applog.SetDefault(logger)

	logger.Info("Starting navexa-worker")

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

	// Ledger target: Google Sheets when configured, otherwise an
	// in-memory ledger so the pipeline stays exercisable locally.
	var lg ledger.Ledger
	if cfg.GoogleSpreadsheetID != "" {
		client, err := lgoogle.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets ledger", "error", err)
			os.Exit(1)
		}
		lg = client
		logger.Info("Google Sheets ledger initialized",
			"spreadsheet_id", cfg.GoogleSpreadsheetID, "sheet", cfg.LedgerSheetName)
	} else {
		lg = lmemory.New()
		logger.Info("Ledger disabled - no GOOGLE_SPREADSHEET_ID provided, using in-memory ledger")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Keep dialing until the broker comes up; the worker often starts
	// before RabbitMQ in compose environments.
	amqpClient, err := amqp.NewClientWithRetry(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	syncWorker := worker.NewSyncWorker(st, lg, cfg.SyncBatchSize)

	// On startup, process any trips that might have been missed
	logger.Info("Performing startup sync check...")
	if err := syncWorker.StartupSyncCheck(ctx); err != nil {
		logger.Error("Failed startup sync check", "error", err)
		// Don't exit - continue with normal operation
	}

	go func() {
		if err := amqpClient.ConsumeMessages(ctx, syncWorker.HandleSyncMessage, syncWorker.HandleDeleteMessage); err != nil {
			if err != context.Canceled {
				logger.Error("Message consumption failed", "error", err)
			}
			cancel()
		}
	}()

	// Periodic catch-up for any missed messages
	ticker := time.NewTicker(cfg.SyncInterval)
	defer ticker.Stop()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := syncWorker.ProcessPendingTrips(ctx); err != nil {
					logger.Error("Periodic sync failed", "error", err)
				}
			}
		}
	}()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	logger.Info("Shutting down worker...")
	cancel()

	// Give in-flight handlers a moment to finish
	time.Sleep(2 * time.Second)
	logger.Info("Worker shutdown complete")
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
