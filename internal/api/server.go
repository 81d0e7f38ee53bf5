// Package api wires the HTTP surface of the back office: routing, middleware,
// handlers, and the server lifecycle.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akrgroup/backoffice/internal/api/handler"
	"github.com/akrgroup/backoffice/internal/api/service"
	"github.com/akrgroup/backoffice/internal/config"
	"github.com/akrgroup/backoffice/internal/domain/books"
	"github.com/akrgroup/backoffice/internal/platform/storage"
)

// Services groups the business services the HTTP server exposes
type Services struct {
	Auth     service.AuthService
	Catalog  service.CatalogService
	Books    service.BooksService
	FuelLog  service.FuelLogService
	Wallet   service.WalletService
	Supplier service.SupplierService
	Booking  service.BookingService
}

// Server handles HTTP requests and manages the application's lifecycle
type Server struct {
	logger     *slog.Logger // For structured logging
	httpServer *http.Server // Underlying HTTP server
	httpRouter *gin.Engine  // Gin router instance
}

// NewServer creates and configures a new HTTP server with the given services
func NewServer(log *slog.Logger, cfg *config.Config, services Services, imageStore storage.ImageStore) *Server {
	if cfg.Application.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	httpRouter := gin.New()

	authHandler := handler.NewAuthHandler(log, services.Auth)
	productHandler := handler.NewProductHandler(log, services.Catalog)
	revenueHandler := handler.NewBooksHandler(log, services.Books, books.KindRevenue)
	costHandler := handler.NewBooksHandler(log, services.Books, books.KindCost)
	fuelLogHandler := handler.NewFuelLogHandler(log, services.FuelLog)
	walletHandler := handler.NewWalletHandler(log, services.Wallet)
	supplierHandler := handler.NewSupplierHandler(log, services.Supplier)
	bookingHandler := handler.NewBookingHandler(log, services.Booking)
	uploadHandler := handler.NewUploadHandler(log, imageStore, cfg.Storage.MaxUploadSize)
	reportHandler := handler.NewReportHandler(log, services.FuelLog, services.Wallet)

	setupRouter(log, httpRouter, cfg.Auth.JWTSecret,
		authHandler, productHandler, revenueHandler, costHandler, fuelLogHandler,
		walletHandler, supplierHandler, bookingHandler, uploadHandler, reportHandler)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      httpRouter,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &Server{
		logger:     log,
		httpServer: httpServer,
		httpRouter: httpRouter,
	}
}

// Start begins listening for HTTP requests
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the HTTP server with a timeout
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, s.httpServer.WriteTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop HTTP server: %w", err)
	}

	return nil
}
