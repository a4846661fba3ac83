// Command seed_user creates a user account from environment variables.
package main

import (
	"context"
	"errors"
	"log"
	"os"

	"riskledger/internal/config"
	apperrors "riskledger/internal/errors"
	"riskledger/internal/repositories"
	"riskledger/internal/services/auth"
	"riskledger/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	username := os.Getenv("SEED_USERNAME")
	password := os.Getenv("SEED_PASSWORD")
	name := config.GetEnv("SEED_NAME", username)

	if username == "" || password == "" {
		log.Fatal("SEED_USERNAME and SEED_PASSWORD must be set in environment")
	}

	zlog, err := logger.New(logger.Config{Level: cfg.Log.Level})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx := context.Background()
	db, err := repositories.InitDB(ctx, cfg.DB, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize database", zap.Error(err))
	}
	defer func() {
		if err := repositories.Close(db); err != nil {
			zlog.Warn("failed to close database connection", zap.Error(err))
		}
	}()

	authService, err := auth.NewService(repositories.NewUserRepository(db), cfg.Auth, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize auth service", zap.Error(err))
	}

	err = authService.Signup(ctx, auth.SignupInput{Username: username, Password: password, Name: name})
	switch {
	case err == nil:
		zlog.Info("user created successfully", zap.String("username", username))
	case errors.Is(err, apperrors.ErrDuplicateUsername):
		zlog.Info("user already exists", zap.String("username", username))
	default:
		zlog.Error("failed to create user", zap.Error(err))
		os.Exit(1)
	}
}
