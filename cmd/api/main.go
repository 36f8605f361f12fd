package main

import (
	"context"
	"fmt"
	"os"

	"fundportal/internal/config"
	"fundportal/internal/database"
	"fundportal/internal/logger"
	"fundportal/internal/server"
	"fundportal/internal/storage"
	"fundportal/internal/store"
)

// @title           Fund Portal API
// @version         1.0
// @description     Investor relations portal: capital accounts, drawdown notices, documents and fund performance for limited partners, plus the administration API behind it.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	schedule, err := server.FeeSchedule(appConfig)
	if err != nil {
		return fmt.Errorf("failed to build fee schedule: %w", err)
	}
	fund, err := server.FundInformation(appConfig)
	if err != nil {
		return fmt.Errorf("failed to build fund information: %w", err)
	}

	mirror := store.NewMirror(context.Background(), appConfig.RedisAddr, appConfig.SessionTTL)
	files := storage.NewLocalStorage(storage.Options{
		Dir:          appConfig.UploadDir,
		BaseURL:      appConfig.UploadBaseURL,
		MaxMB:        appConfig.UploadMaxMB,
		AllowedTypes: appConfig.UploadAllowedTypes,
	})

	// Initialize services
	svc := server.NewServices(dbManager.DB(), mirror, files, schedule)

	if appConfig.AdminEmail != "" {
		if _, err := svc.Users.EnsureAdmin(appConfig.AdminEmail, appConfig.AdminPassword); err != nil {
			return fmt.Errorf("failed to bootstrap administrator: %w", err)
		}
		log.Infow("Administrator ready", "email", appConfig.AdminEmail)
	}

	router := server.NewRouter(svc, server.Options{OpsAPIKey: appConfig.OpsAPIKey, Fund: fund})

	log.Infof("Starting fund portal server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
