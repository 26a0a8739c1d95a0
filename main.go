// @title Hajvery Store API
// @version 1.0
// @description Hajvery Store Backend API Documentation
// @host localhost:8081
// @BasePath /api/v1
// @schemes http
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/itsAdil45/HajveryStoreBackend/config"
	_ "github.com/itsAdil45/HajveryStoreBackend/docs"
	"github.com/itsAdil45/HajveryStoreBackend/routes/admin_routes"
	"github.com/itsAdil45/HajveryStoreBackend/routes/storefront_routes"
	"github.com/itsAdil45/HajveryStoreBackend/services"
)

func init() {
	_ = godotenv.Load()
}

func main() {
	// Connect to DB
	config.InitDB()
	defer config.CloseDB()

	if err := config.Migrate(config.StoreGorm); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	// Redis connection (rate limiting)
	config.ConnectRedis()
	defer config.CloseRedis()

	// Cloudinary (product images, deal/campaign banners, receipts)
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")
	if err := services.InitCloudinary(cloudName, apiKey, apiSecret); err != nil {
		log.Fatalf("Failed to initialize Cloudinary: %v", err)
	}
	log.Println("✅ Cloudinary service initialized")

	// Firebase Cloud Messaging (order notifications). Optional: without
	// credentials the server runs and pushes are skipped.
	if err := services.InitNotifier(context.Background()); err != nil {
		log.Printf("⚠️ FCM notifier not available: %v", err)
	} else {
		log.Println("✅ FCM notifier initialized")
	}

	// Domain services
	services.InitCartService(config.StoreGorm)
	services.InitCheckoutService(config.StoreGorm, services.GetCloudinaryService(), services.GetNotifier())
	log.Println("✅ Cart and checkout services initialized")

	corsCfg := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:3001"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-CSRF-Token", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	router := gin.Default()
	router.Use(cors.New(corsCfg))

	api := router.Group("/api/v1")

	storefront_routes.SetupStorefrontRoutes(api)
	log.Println("✅ Storefront routes registered")

	admin_routes.SetupAdminRoutes(api)
	log.Println("✅ Admin routes registered")

	// Swagger docs
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	fmt.Println("🚀 Server is running on http://localhost:8081")
	router.Run(":8081")
}
