package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/webdrave/funds-backend/internal/adapters/http/middleware"
	"github.com/webdrave/funds-backend/internal/adapters/http/routes"
	"github.com/webdrave/funds-backend/internal/adapters/persistence/models"
	"github.com/webdrave/funds-backend/internal/config"
	"github.com/webdrave/funds-backend/internal/pkg/logger"
	"github.com/webdrave/funds-backend/internal/pkg/mailer"
	"github.com/webdrave/funds-backend/internal/pkg/storage"

	_ "github.com/webdrave/funds-backend/docs" // Swagger docs
)

// @title Funds API
// @version 1.0
// @description Multi-tenant loan origination and commission management API

// @contact.name API Support
// @contact.email support@fundsweb.in

// @host api.fundsweb.in
// @BasePath /api
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zlog := logger.New(cfg.LogLevel, cfg.AppMode)
	defer zlog.Sync()

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		zlog.Fatal("failed to auto migrate", zap.Error(err))
	}
	zlog.Info("database migration completed")

	// Seed the bootstrap superadmin
	if err := config.SeedSuperadmin(db, cfg); err != nil {
		zlog.Warn("failed to seed superadmin", zap.Error(err))
	}

	mail := buildMailer(cfg, zlog)
	store := buildStorage(cfg, zlog)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Funds API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes and start the daily reminder scheduler
	reminder := routes.Setup(app, db, cfg, zlog, mail, store)
	if err := reminder.Start(); err != nil {
		zlog.Warn("failed to start reminder scheduler", zap.Error(err))
	}
	defer reminder.Stop()

	// Graceful shutdown
	go gracefulShutdown(app, zlog)

	// Start server
	zlog.Info("server starting", zap.String("port", cfg.Port), zap.String("mode", cfg.AppMode))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}

// buildMailer returns an SES mailer, falling back to log-only delivery
// when SES is unavailable.
func buildMailer(cfg *config.Config, zlog *zap.Logger) mailer.Mailer {
	if cfg.AWS.FromEmail != "" {
		m, err := mailer.NewSESMailer(context.Background(), cfg.AWS.Region, cfg.AWS.FromEmail)
		if err == nil {
			return m
		}
		zlog.Warn("SES unavailable, email delivery disabled", zap.Error(err))
	}
	return mailer.NewLogMailer(zlog)
}

// buildStorage returns an S3 store, falling back to local disk when S3
// is unavailable.
func buildStorage(cfg *config.Config, zlog *zap.Logger) storage.Storage {
	if cfg.AWS.S3Bucket != "" {
		s, err := storage.NewS3Storage(context.Background(), cfg.AWS.Region, cfg.AWS.S3Bucket)
		if err == nil {
			return s
		}
		zlog.Warn("S3 unavailable, storing uploads on disk", zap.Error(err))
	}

	s, err := storage.NewLocalStorage("uploads")
	if err != nil {
		zlog.Fatal("failed to prepare upload directory", zap.Error(err))
	}
	return s
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App, zlog *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		zlog.Error("error during shutdown", zap.Error(err))
	}
	zlog.Info("server stopped gracefully")
}
