// Package main is the entry point for the risk ledger API server.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"riskledger/internal/config"
	"riskledger/internal/handlers"
	"riskledger/internal/metrics"
	"riskledger/internal/middleware"
	"riskledger/internal/repositories"
	"riskledger/internal/repositories/cache"
	"riskledger/internal/routes"
	"riskledger/internal/services/auth"
	"riskledger/internal/services/ledger"
	"riskledger/internal/services/risk"
	"riskledger/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	zlog, err := logger.New(logger.Config{
		Level:      cfg.Log.Level,
		Filename:   cfg.Log.Filename,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, zlog); err != nil {
		zlog.Fatal("server exited with error", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, zlog *zap.Logger) error {
	db, err := repositories.InitDB(ctx, cfg.DB, zlog)
	if err != nil {
		return err
	}
	defer func() {
		if err := repositories.Close(db); err != nil {
			zlog.Warn("failed to close database connection", zap.Error(err))
		}
	}()

	if sqlDB, err := db.DB(); err == nil {
		go metrics.StartDBStatsCollector(ctx, sqlDB, time.Minute)
	}

	checks := map[string]handlers.Checker{
		"database": func(ctx context.Context) error { return repositories.Ping(ctx, db) },
	}

	var txRepo repositories.TransactionRepository = repositories.NewTransactionRepository(db)
	if cfg.Redis.Enabled {
		cacheService := cache.NewCacheService(cache.NewRedisClient(&cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}), cfg.Redis.TTL)
		defer func() {
			if err := cacheService.Close(); err != nil {
				zlog.Warn("failed to close redis connection", zap.Error(err))
			}
		}()

		if err := cacheService.HealthCheck(ctx); err != nil {
			zlog.Warn("redis unreachable at startup, serving from database", zap.Error(err))
		} else {
			zlog.Info("redis connected", zap.String("host", cfg.Redis.Host))
		}

		txRepo = repositories.NewCachedTransactionRepository(txRepo, cacheService, zlog)
		checks["cache"] = cacheService.HealthCheck
	}

	authService, err := auth.NewService(repositories.NewUserRepository(db), cfg.Auth, zlog)
	if err != nil {
		return err
	}
	ledgerService := ledger.NewService(txRepo, risk.DefaultPolicy, zlog)

	app := fiber.New(fiber.Config{
		AppName:               "riskledger",
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		DisableStartupMessage: cfg.IsProduction(),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,HEAD,OPTIONS",
	}))
	app.Use(middleware.RequestLogger(zlog))
	app.Use(metrics.Middleware())

	routes.SetupRoutes(app, routes.Handlers{
		Auth:         handlers.NewAuthHandler(authService),
		Transactions: handlers.NewTransactionHandler(ledgerService),
		Health:       handlers.NewHealthHandler(checks),
	})

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zlog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
