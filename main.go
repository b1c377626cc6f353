package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/teknocare/teknocare-api/config"
	"github.com/teknocare/teknocare-api/controllers"
	"github.com/teknocare/teknocare-api/middleware"
	"github.com/teknocare/teknocare-api/models"
	"github.com/teknocare/teknocare-api/services"
)

func main() {
	log.Println("Starting TeknoCare API server...")

	// Load configuration; a bad config aborts startup
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	if err := models.AutoMigrate(config.GetDB()); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Product photos live in S3; without a bucket the catalog still works,
	// just without images
	if cfg.AWSS3Bucket != "" {
		s3Service, err := services.InitS3Service()
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		services.InitImageService(s3Service)
	} else {
		log.Println("AWS_S3_BUCKET not set, product image storage disabled")
	}

	router := setupRouter(cfg)

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the Gin engine with all routes and middleware attached
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.AllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Public storefront endpoints, no authentication required
		v1.GET("/services", controllers.ListServices)
		v1.GET("/products", controllers.ListProducts)
		v1.GET("/testimonials", controllers.ListTestimonials)
		v1.POST("/consultations", controllers.CreateConsultation)

		// Authenticated endpoints
		authed := v1.Group("")
		authed.Use(middleware.EnsureValidToken(cfg))
		{
			authed.POST("/profiles", controllers.CreateProfile)
			authed.GET("/profiles/me", controllers.GetMyProfile)
			authed.PUT("/profiles/me", controllers.UpdateMyProfile)
			authed.GET("/profiles/me/dashboard", controllers.GetMyDashboard)

			authed.POST("/reservations", controllers.CreateReservation)
			authed.GET("/reservations", controllers.ListMyReservations)
			authed.PUT("/reservations/:id/cancel", controllers.CancelReservation)

			// Admin endpoints; the admin role is checked per handler against
			// the profiles table
			admin := authed.Group("/admin")
			{
				admin.GET("/reservations", controllers.ListAllReservations)
				admin.PUT("/reservations/:id/status", controllers.UpdateReservationStatus)
				admin.PUT("/reservations/:id/repair-status", controllers.UpdateRepairStatus)
				admin.PUT("/reservations/:id/notes", controllers.UpdateAdminNotes)

				admin.POST("/services", controllers.CreateService)
				admin.PUT("/services/:id", controllers.UpdateService)
				admin.DELETE("/services/:id", controllers.DeleteService)

				admin.POST("/products", controllers.CreateProduct)
				admin.PUT("/products/:id", controllers.UpdateProduct)
				admin.DELETE("/products/:id", controllers.DeleteProduct)
				admin.POST("/products/:id/image", controllers.UploadProductImage)

				admin.GET("/consultations", controllers.ListConsultations)
				admin.PUT("/consultations/:id/status", controllers.UpdateConsultationStatus)

				admin.GET("/dashboard", controllers.GetAdminDashboard)
				admin.GET("/calendar", controllers.GetAdminCalendar)
			}
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "TeknoCare API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
