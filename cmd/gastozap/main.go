package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"gastozap/internal/amqp"
	"gastozap/internal/config"
	"gastozap/internal/core"
	apphttp "gastozap/internal/http"
	"gastozap/internal/ledger"
	"gastozap/internal/ledger/memory"
	applog "gastozap/internal/log"
	"gastozap/internal/services"
	"gastozap/internal/storage"
	"gastozap/internal/zapi"
)

func main() {
	// .env for local development; ignored when absent.
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	// Ledger backend
	var store ledger.Store
	switch cfg.DataBackend {
	case "sqlite":
		sqliteStore, err := storage.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite store", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer sqliteStore.Close()
		store = sqliteStore
		logger.Info("Initialized sqlite ledger backend", "path", cfg.SQLiteDBPath)
	default:
		store = memory.New()
		logger.Info("Initialized memory ledger backend")
	}

	// Category vocabulary
	rules, err := cfg.KeywordTable()
	if err != nil {
		logger.Error("Failed to load category vocabulary", "error", err, "file", cfg.CategoriesFile)
		os.Exit(1)
	}
	classifier := core.NewClassifier(rules, cfg.DefaultCategory)
	logger.Info("Category vocabulary loaded", "rules", len(rules), "fallback", cfg.DefaultCategory)

	// Backup queue (optional)
	var publisher services.BackupPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to connect to AMQP", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		publisher = amqpClient
		logger.Info("Backup queue connected", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("Backup queue disabled - no AMQP_URL provided")
	}

	// Outbound delivery (optional)
	var sender apphttp.Sender
	if cfg.ZAPIConfigured() {
		sender = zapi.NewClient(cfg.ZAPIBaseURL, cfg.ZAPIInstanceID, cfg.ZAPIToken)
		logger.Info("Z-API sender configured", "instance", cfg.ZAPIInstanceID)
	} else {
		logger.Warn("Z-API not configured - replies will be logged but not delivered")
	}

	svc := services.NewExpenseService(store, classifier, publisher, nil)
	srv := apphttp.NewServer(":"+cfg.Port, svc, store, sender)

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

	logger.Info("Starting gastozap server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
