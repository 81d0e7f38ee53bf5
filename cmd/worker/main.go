package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/akrgroup/backoffice/internal/config"
	"github.com/akrgroup/backoffice/internal/data/mongo"
	"github.com/akrgroup/backoffice/internal/data/postgres"
	"github.com/akrgroup/backoffice/internal/logger"
	"github.com/akrgroup/backoffice/internal/platform/messaging/consumers"
	"github.com/akrgroup/backoffice/internal/platform/messaging/producers"
	"github.com/akrgroup/backoffice/internal/platform/persistence"
	"github.com/akrgroup/backoffice/internal/worker/consumer"
	"github.com/akrgroup/backoffice/internal/worker/ledgerproj"
	"github.com/akrgroup/backoffice/internal/worker/notifier"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("worker")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	log.Info("Starting background worker",
		"app_name", cfg.Application.Name,
		"env", cfg.Application.Env,
	)

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

	// Initialize repositories
	outboxRepo := postgres.NewOutboxRepository(log, postgresDB)
	walletRepo := postgres.NewWalletRepository(log, postgresDB)
	shedLedgerRepo := mongo.NewShedTransactionRepository(log, mongoDB.Database())
	supplierLedgerRepo := mongo.NewSupplierTransactionRepository(log, mongoDB.Database())

	// Initialize Kafka consumer
	kafkaConsumer := consumers.NewKafkaConsumer(appCtx, log, &cfg.Kafka)

	// Initialize Kafka DLQ producer
	dlqProducer, err := producers.NewDLQProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize DLQ Kafka producer", "error", err)
		os.Exit(1)
	}
	// dlqProducer might be nil if DLQTopic is not configured. Handler is nil-safe.

	// Initialize notification delivery pipeline
	renderer := notifier.NewRenderer(cfg.Frontend.BaseURL)
	emailSender := notifier.NewGomailSender(&cfg.SMTP)
	smsSender := notifier.NewGatewayClient(log, &cfg.SMS, nil)
	dispatcher := notifier.NewDispatcher(log, renderer, emailSender, smsSender, cfg.SMTP.AdminTo)

	pooledNotifier, err := notifier.NewPooledNotifier(dispatcher, cfg.WorkerPool, log)
	if err != nil {
		log.Error("Failed to initialize notification worker pool", "error", err)
		os.Exit(1)
	}

	// Initialize notification event handler
	eventHandler := consumer.NewNotificationEventHandler(log, pooledNotifier, dlqProducer)

	// Initialize ledger projection poller
	projector := ledgerproj.NewProjector(log, outboxRepo, walletRepo, shedLedgerRepo, supplierLedgerRepo)
	poller := ledgerproj.NewPoller(&cfg.Outbox, outboxRepo, projector, log)

	// Create error channel for service errors
	errChan := make(chan error, 2)

	// Create wait group for graceful shutdown
	var wg sync.WaitGroup

	// Start Kafka consumer in a goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("Starting Kafka consumer",
			"topic", cfg.Kafka.NotificationTopic,
			"group", cfg.Kafka.ConsumerGroup,
		)
		if err := kafkaConsumer.Subscribe(appCtx, cfg.Kafka.NotificationTopic, cfg.Kafka.ConsumerGroup, eventHandler.HandleMessage); err != nil {
			errChan <- fmt.Errorf("kafka consumer error: %w", err)
		}
	}()

	// Start ledger projection poller in a goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("Starting ledger projection poller",
			"interval", cfg.Outbox.PollingInterval.String(),
			"batch_size", cfg.Outbox.BatchSize,
		)
		poller.Start(appCtx)
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serviceErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Service error occurred", "error", err)
		serviceErr = err
	}

	// Cancel the application context
	cancelAppCtx()

	// Shutdown the notification worker pool
	pooledNotifier.Shutdown()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	// Wait for all goroutines to finish
	log.Info("Waiting for services to stop...")
	wgChan := make(chan struct{})
	go func() {
		wg.Wait()
		close(wgChan)
	}()

	select {
	case <-wgChan:
		log.Info("All services stopped successfully")
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout reached, forcing exit")
	}

	// Close DLQ Kafka producer
	if dlqProducer != nil { // dlqProducer can be nil if DLQTopic was not configured
		if err = dlqProducer.Close(); err != nil {
			log.Error("Error closing DLQ Kafka producer", "error", err)
		}
	}

	// Close Kafka consumer
	if err = kafkaConsumer.Close(); err != nil {
		log.Error("Error closing Kafka consumer", "error", err)
	}

	postgresDB.Close()

	if err = mongoDB.Close(shutdownCtx); err != nil {
		log.Error("Error closing MongoDB connection", "error", err)
	}

	// Final status
	if serviceErr != nil {
		log.Error("Worker shutdown with errors", "error", serviceErr)
	}
	if err != nil {
		log.Error("Worker shutdown completed with errors")
	} else {
		log.Info("Worker shutdown completed successfully")
	}
}
