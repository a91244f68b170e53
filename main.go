package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"github.com/Suraj8267/Event-Aggregator-for-College-Students/config"
	"github.com/Suraj8267/Event-Aggregator-for-College-Students/database"
	"github.com/Suraj8267/Event-Aggregator-for-College-Students/jobs"
	"github.com/Suraj8267/Event-Aggregator-for-College-Students/logger"
	"github.com/Suraj8267/Event-Aggregator-for-College-Students/middleware"
	"github.com/Suraj8267/Event-Aggregator-for-College-Students/routes"
	"github.com/Suraj8267/Event-Aggregator-for-College-Students/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	if err := logger.Init(cfg.Environment); err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer zap.L().Sync()

	db, err := database.Initialize(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		zap.L().Fatal("failed to connect to database", zap.Error(err))
	}

	if err := database.Migrate(db); err != nil {
		zap.L().Fatal("failed to migrate database", zap.Error(err))
	}

	if cfg.SeedAdmin {
		if err := database.Seed(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			zap.L().Fatal("failed to seed admin user", zap.Error(err))
		}
	}

	if cfg.Environment == "development" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.SecurityHeaders())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	emailService := services.NewEmailService(cfg)
	routes.SetupRoutes(router, db, cfg, emailService)

	cleanup := jobs.NewNotificationCleanupJob(db, time.Hour, cfg.NotificationRetention)
	cleanup.Start()
	defer cleanup.Stop()

	zap.S().Infof("starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		zap.L().Fatal("failed to start the server", zap.Error(err))
	}
}
