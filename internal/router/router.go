// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vendordesk/backend/internal/config"
	"github.com/vendordesk/backend/internal/handlers"
	"github.com/vendordesk/backend/internal/middleware"
	"github.com/vendordesk/backend/internal/services"
	"github.com/vendordesk/backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	// Initialize services
	sequenceService := services.NewSequenceService(db)
	purchaseService := services.NewPurchaseService(db, sequenceService)
	backupService := services.NewBackupService(cfg.Backup)
	authService := services.NewAuthService(cfg)

	exportService, err := services.NewExportService(purchaseService, cfg)
	if err != nil {
		return nil, err
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService)
	backupHandler := handlers.NewBackupHandler(backupService, exportService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Authentication routes
	auth := r.Group("/auth")
	auth.Use(middleware.AuthRateLimit())
	{
		auth.POST("/admin", authHandler.AdminLogin)
	}

	// Purchase routes; the admin UI reads without a token and mutates with one
	purchases := r.Group("/purchases")
	{
		purchases.GET("", purchaseHandler.GetPurchases)
		purchases.GET("/count", purchaseHandler.GetNextID)
		purchases.GET("/:id", purchaseHandler.GetPurchase)
		purchases.GET("/vendor/:vendorName", purchaseHandler.GetVendorPurchases)

		protected := purchases.Group("")
		protected.Use(middleware.AdminRequired())
		{
			protected.POST("", purchaseHandler.CreatePurchase)
			protected.PUT("/:id", purchaseHandler.UpdatePurchase)
			protected.DELETE("/:id", purchaseHandler.DeletePurchase)
		}
	}

	// Backup routes
	backup := r.Group("/backup")
	backup.Use(middleware.AdminRequired())
	{
		backup.POST("/create", backupHandler.CreateBackup)
		backup.GET("/list", backupHandler.ListBackups)
		backup.POST("/restore/:backupId", backupHandler.RestoreBackup)
		backup.GET("/export", backupHandler.Export)
	}

	// Serve the built admin UI bundle (for development)
	if cfg.Environment == "development" {
		r.Static("/admin", "./web/dist")
	}

	return r, nil
}
