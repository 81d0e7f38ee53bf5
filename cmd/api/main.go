package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/akrgroup/backoffice/internal/api"
	"github.com/akrgroup/backoffice/internal/api/service"
	"github.com/akrgroup/backoffice/internal/config"
	"github.com/akrgroup/backoffice/internal/data/mongo"
	"github.com/akrgroup/backoffice/internal/data/postgres"
	"github.com/akrgroup/backoffice/internal/logger"
	"github.com/akrgroup/backoffice/internal/platform/messaging/producers"
	"github.com/akrgroup/backoffice/internal/platform/persistence"
	"github.com/akrgroup/backoffice/internal/platform/storage"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("api")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	// Initialize databases with app context
	postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}

	mongoDB, err := persistence.NewMongoDB(appCtx, log, &cfg.MongoDB)
	if err != nil {
		log.Error("Failed to initialize MongoDB", "error", err)
		os.Exit(1)
	}

	// Initialize Kafka producer for booking notification events
	notificationProducer, err := producers.NewNotificationEventProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize notification Kafka producer", "error", err)
		os.Exit(1)
	}

	// Initialize object storage for product and room images
	imageStore, err := storage.NewGCSImageStore(appCtx, log, &cfg.Storage)
	if err != nil {
		log.Error("Failed to initialize image store", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	walletRepo := postgres.NewWalletRepository(log, postgresDB)
	supplierRepo := postgres.NewSupplierRepository(log, postgresDB)
	adminRepo := postgres.NewAdminRepository(log, postgresDB)
	outboxRepo := postgres.NewOutboxRepository(log, postgresDB)

	fuelLogRepo := mongo.NewFuelLogRepository(log, mongoDB.Database())
	shedLedgerRepo := mongo.NewShedTransactionRepository(log, mongoDB.Database())
	supplierLedgerRepo := mongo.NewSupplierTransactionRepository(log, mongoDB.Database())
	productRepo := mongo.NewProductRepository(log, mongoDB.Database())
	booksRepo := mongo.NewBooksRepository(log, mongoDB.Database())
	bookingRepo := mongo.NewBookingRepository(log, mongoDB.Database())

	// Unique booking reference index backs collision retries on create
	if err := bookingRepo.EnsureIndexes(appCtx); err != nil {
		log.Error("Failed to ensure booking indexes", "error", err)
		os.Exit(1)
	}

	// Initialize services
	services := api.Services{
		Auth:     service.NewAuthService(log, adminRepo, &cfg.Auth),
		Catalog:  service.NewCatalogService(log, productRepo),
		Books:    service.NewBooksService(log, booksRepo),
		FuelLog:  service.NewFuelLogService(log, fuelLogRepo),
		Wallet:   service.NewWalletService(log, postgresDB, walletRepo, shedLedgerRepo, fuelLogRepo, outboxRepo),
		Supplier: service.NewSupplierService(log, postgresDB, supplierRepo, supplierLedgerRepo, outboxRepo),
		Booking:  service.NewBookingService(log, bookingRepo, notificationProducer),
	}

	// Initialize REST server
	server := api.NewServer(log, cfg, services, imageStore)
	log.Info("REST server initialized")

	// Create error channel for server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	// Cancel the application context
	cancelAppCtx()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	// Shutdown HTTP server first so in-flight requests drain before the
	// stores go away
	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	if err = notificationProducer.Close(); err != nil {
		log.Error("Error closing Kafka producer", "error", err)
	}

	if err = imageStore.Close(); err != nil {
		log.Error("Error closing image store", "error", err)
	}

	postgresDB.Close()

	if err = mongoDB.Close(shutdownCtx); err != nil {
		log.Error("Error closing MongoDB connection", "error", err)
	}

	// Final status
	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if err != nil {
		log.Error("Server shutdown completed with errors")
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
