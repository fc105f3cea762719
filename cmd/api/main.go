package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ggorockee/storefront/docs"
	"github.com/ggorockee/storefront/internal/config"
	"github.com/ggorockee/storefront/internal/database"
	"github.com/ggorockee/storefront/internal/logger"
	"github.com/ggorockee/storefront/internal/server"
	"github.com/ggorockee/storefront/internal/telemetry"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// @title Storefront API
// @version 1.0.0
// @description Product catalog, delivery zones and admin category management
// @BasePath /
// @securityDefinitions.apikey SessionAuth
// @in header
// @name Authorization
func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	if err := logger.Init(cfg.LogLevel); err != nil {
		_ = logger.Init("info")
		logger.Log.Warn("invalid LOG_LEVEL, using info", zap.String("level", cfg.LogLevel))
	}
	defer logger.Sync()
	log := logger.Named("main")

	if envErr != nil {
		log.Info("No .env file found, using environment variables")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	docs.SwaggerInfo.Host = cfg.ServerHost

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracerShutdown, err := telemetry.InitTracer(ctx, server.ServiceName, cfg.OTelEndpoint)
	if err != nil {
		log.Error("Failed to initialize tracer", zap.Error(err))
	} else {
		defer func() {
			if err := tracerShutdown(context.Background()); err != nil {
				log.Error("Error shutting down tracer", zap.Error(err))
			}
		}()
	}

	meterShutdown, err := telemetry.InitMeter(ctx, server.ServiceName, cfg.OTelEndpoint)
	if err != nil {
		log.Error("Failed to initialize metrics", zap.Error(err))
	} else {
		defer func() {
			if err := meterShutdown(context.Background()); err != nil {
				log.Error("Error shutting down metrics", zap.Error(err))
			}
		}()
	}

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	if cfg.MetricsEnabled {
		go database.StartConnectionPoolMetricsCollector(ctx, db.DB, cfg.DBPoolStatsInterval)
	}

	app, err := server.New(db, cfg)
	if err != nil {
		log.Fatal("Failed to build server", zap.Error(err))
	}

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		log.Info("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Error("Error shutting down server", zap.Error(err))
		}
	}()

	log.Info("Server starting", zap.String("port", cfg.ServerPort))
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.Error("Failed to start server", zap.Error(err))
	}
}
