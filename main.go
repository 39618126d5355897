package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Alchinkaz/dream-rent-crm-new/config"
	"github.com/Alchinkaz/dream-rent-crm-new/database"
	"github.com/Alchinkaz/dream-rent-crm-new/logger"
	"github.com/Alchinkaz/dream-rent-crm-new/middleware"
	"github.com/Alchinkaz/dream-rent-crm-new/routes"
	"github.com/Alchinkaz/dream-rent-crm-new/scheduler"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize config and logging
	config.InitConfig()
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       config.AppConfig.LogLevel,
		Environment: config.AppConfig.Environment,
		ServiceName: "dream-rent-crm",
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zap.L().Sync()

	if !config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Initialize DB
	if err := database.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDB()

	// Run migrations and seed baseline data
	if err := database.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.SeedCompanies(); err != nil {
		log.Fatalf("Failed to seed companies: %v", err)
	}
	database.SeedDefaultAdmin()

	// Setup routes (real AuthMiddleware is applied inside routes)
	routes.SetupRoutes(r)
	r.GET("/metrics", middleware.MetricsHandler())
	r.Static("/uploads", config.AppConfig.UploadDir)

	// Background overdue scan
	sched := scheduler.NewScheduler()
	sched.Start()
	defer sched.Stop()

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	zap.L().Info("server starting", zap.String("addr", "0.0.0.0:"+port))
	if err := r.Run("0.0.0.0:" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
