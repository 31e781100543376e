package main

import (
	"context"
	"log"
	"os"

	"warehouse-backend/internal/database"
	"warehouse-backend/internal/demo"
	"warehouse-backend/internal/handler"
	"warehouse-backend/internal/middleware"
	"warehouse-backend/internal/repository"
	"warehouse-backend/internal/service"
	"warehouse-backend/internal/websocket"
	"warehouse-backend/pkg/response"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Warehouse Inventory API
// @version         1.0
// @description     REST API for warehouse inventory management: products, stock movements, warehouses, categories, users and dashboard aggregates.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it")
	}

	dbHost := envOr("DB_HOST", "localhost")
	dbPort := envOr("DB_PORT", "5432")
	dbUser := envOr("DB_USER", "postgres")
	dbPassword := envOr("DB_PASSWORD", "postgres")
	dbName := envOr("DB_NAME", "warehouse_db")
	dbSslMode := envOr("DB_SSLMODE", "disable")

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	demoMode := os.Getenv("DEMO_MODE") == "true"
	if demoMode {
		if err := demo.Seed(context.Background(), db); err != nil {
			log.Fatalf("Demo seed failed: %v", err)
		}
	}

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	productRepo := repository.NewProductRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	warehouseRepo := repository.NewWarehouseRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)

	// Drop refresh tokens that expired while the server was down.
	if err := refreshTokenRepo.DeleteExpired(context.Background()); err != nil {
		log.Printf("WARNING: failed to purge expired refresh tokens: %v", err)
	}

	inventoryService := service.NewInventoryService(productRepo, txRepo, warehouseRepo, categoryRepo, activityRepo, txManager, wsHub)
	catalogService := service.NewCatalogService(warehouseRepo, categoryRepo, activityRepo, txManager)
	dashboardService := service.NewDashboardService(productRepo, txRepo)
	userService := service.NewUserService(userRepo, refreshTokenRepo, middleware.GetJWTSecret())

	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	activityHandler := handler.NewActivityHandler(activityRepo)
	userHandler := handler.NewUserHandler(userService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:3000"}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger UI (docs package generated by `swag init`)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check: demo_mode tells clients whether they are looking at
	// sample data or live records.
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, response.Success("OK", gin.H{"demo_mode": demoMode}))
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// API Routing
	userHandler.RegisterRoutes(router.Group(""))
	inventoryHandler.RegisterRoutes(router.Group(""))
	catalogHandler.RegisterRoutes(router.Group(""))
	dashboardHandler.RegisterRoutes(router.Group(""))
	activityHandler.RegisterRoutes(router.Group(""))

	port := envOr("PORT", "8080")

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
