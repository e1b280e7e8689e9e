package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"serviceconnect-server/config"
	"serviceconnect-server/database"
	"serviceconnect-server/jobs"
	"serviceconnect-server/middleware"
	"serviceconnect-server/routes"
	"serviceconnect-server/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	if err := seedServiceCategories(); err != nil {
		log.Printf("⚠️ Category seeding failed: %v", err)
	}

	// The data-access variant is fixed for the lifetime of the process.
	bllType, err := services.ParseBLLType(config.AppConfig.BLLType)
	if err != nil {
		log.Fatal("Invalid BLL_TYPE:", err)
	}
	factory, err := services.NewFactory(bllType, database.DB, database.SQLX)
	if err != nil {
		log.Fatal("Failed to build service factory:", err)
	}
	log.Printf("✅ Service factory initialized with %q data access", bllType)

	media, err := services.NewMediaService(config.AppConfig.Cloudinary.URL)
	if err != nil {
		log.Fatal("Failed to initialize media service:", err)
	}
	if media == nil {
		log.Println("⏭️  CLOUDINARY_URL not set, attachment uploads disabled")
	}

	// Set Gin mode
	if config.AppConfig.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// Security headers (must be first)
	router.Use(middleware.SecurityHeadersMiddleware())

	// Input validation
	router.Use(middleware.InputValidationMiddleware())

	// Rate limiting
	limiter := middleware.NewRateLimiter(
		config.AppConfig.RateLimit.RequestsPerSecond,
		config.AppConfig.RateLimit.Burst,
	)
	router.Use(middleware.RateLimitMiddleware(limiter))

	// CORS
	router.Use(middleware.CORSMiddleware(config.AppConfig.CORS.AllowedOrigins))

	// Audit logging
	router.Use(middleware.AuditLogMiddleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "ServiceConnect server is running",
			"time":    time.Now().UTC(),
		})
	})

	// API routes
	routes.Register(router, factory, media, database.DB)

	// Start background jobs
	reconcileJob := jobs.NewReconcileJob(database.DB, 15*time.Minute)
	reconcileJob.Start()
	defer reconcileJob.Stop()

	port := config.AppConfig.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
