package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akrgroup/backoffice/internal/api/handler"
	"github.com/akrgroup/backoffice/internal/api/middleware"
)

// setupRouter configures API routes and middleware for the application.
// Catalog reads and booking creation are public; everything else requires an
// admin session.
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	jwtSecret string,
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
	revenueHandler *handler.BooksHandler,
	costHandler *handler.BooksHandler,
	fuelLogHandler *handler.FuelLogHandler,
	walletHandler *handler.WalletHandler,
	supplierHandler *handler.SupplierHandler,
	bookingHandler *handler.BookingHandler,
	uploadHandler *handler.UploadHandler,
	reportHandler *handler.ReportHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	requireAdmin := middleware.RequireAdmin(jwtSecret)

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/login", authHandler.Login)

		// Public catalog reads; writes are admin only
		products := v1.Group("/products")
		{
			products.GET("", productHandler.List)
			products.GET("/:id", productHandler.GetByID)
			products.POST("", requireAdmin, productHandler.Create)
			products.PUT("/:id", requireAdmin, productHandler.Update)
			products.DELETE("/:id", requireAdmin, productHandler.Delete)
		}

		// Public booking intake; management is admin only
		bookings := v1.Group("/bookings")
		{
			bookings.POST("", bookingHandler.Create)
			bookings.GET("", requireAdmin, bookingHandler.List)
			bookings.GET("/:id", requireAdmin, bookingHandler.GetByID)
			bookings.POST("/:id/confirm", requireAdmin, bookingHandler.Confirm)
			bookings.POST("/:id/payments", requireAdmin, bookingHandler.RecordPayment)
			bookings.POST("/:id/cancel", requireAdmin, bookingHandler.Cancel)
			bookings.POST("/:id/review-invitation", requireAdmin, bookingHandler.ReviewInvitation)
		}

		// Manual bookkeeping ledgers
		revenue := v1.Group("/books/revenue", requireAdmin)
		{
			revenue.POST("", revenueHandler.Create)
			revenue.GET("", revenueHandler.List)
			revenue.GET("/:id", revenueHandler.GetByID)
			revenue.PUT("/:id", revenueHandler.Update)
			revenue.DELETE("/:id", revenueHandler.Delete)
		}
		costs := v1.Group("/books/costs", requireAdmin)
		{
			costs.POST("", costHandler.Create)
			costs.GET("", costHandler.List)
			costs.GET("/:id", costHandler.GetByID)
			costs.PUT("/:id", costHandler.Update)
			costs.DELETE("/:id", costHandler.Delete)
		}

		// Fuel log operations
		fuelLogs := v1.Group("/fuel-logs", requireAdmin)
		{
			fuelLogs.POST("", fuelLogHandler.Create)
			fuelLogs.GET("", fuelLogHandler.List)
			fuelLogs.GET("/:id", fuelLogHandler.GetByID)
			fuelLogs.PUT("/:id", fuelLogHandler.Update)
			fuelLogs.DELETE("/:id", fuelLogHandler.Delete)
		}

		// Shed wallet operations
		wallets := v1.Group("/wallets", requireAdmin)
		{
			wallets.POST("", walletHandler.Create)
			wallets.GET("", walletHandler.List)
			wallets.GET("/:id", walletHandler.GetByID)
			wallets.POST("/:id/transactions", walletHandler.CreateTransaction)
			wallets.GET("/:id/transactions", walletHandler.ListTransactions)
			wallets.POST("/:id/reconcile", walletHandler.Reconcile)
		}

		// Supplier operations
		suppliers := v1.Group("/suppliers", requireAdmin)
		{
			suppliers.POST("", supplierHandler.Create)
			suppliers.GET("", supplierHandler.List)
			suppliers.GET("/:id", supplierHandler.GetByID)
			suppliers.PUT("/:id", supplierHandler.Update)
			suppliers.POST("/:id/transactions", supplierHandler.CreateTransaction)
			suppliers.GET("/:id/transactions", supplierHandler.ListTransactions)
			suppliers.POST("/:id/reconcile", supplierHandler.Reconcile)
		}

		// Image uploads and Excel exports
		v1.POST("/uploads", requireAdmin, uploadHandler.Upload)
		exports := v1.Group("/reports", requireAdmin)
		{
			exports.GET("/fuel-logs", reportHandler.FuelLogReport)
			exports.GET("/wallets/:id", reportHandler.WalletStatement)
		}
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
