// Package repositories provides data access layer implementations.
// It handles all database operations and data persistence logic.
package repositories

import (
	"context"
	"fmt"
	"time"

	"riskledger/internal/config"
	"riskledger/internal/models"
	"riskledger/internal/repositories/migrations"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	MigrateModeGoose = "goose"
	MigrateModeAuto  = "auto"
)

// InitDB opens the PostgreSQL connection, applies the pool configuration and
// brings the schema up to date.
func InitDB(ctx context.Context, cfg config.DBConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := Open(postgres.Open(cfg.DSN()), log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := Migrate(ctx, db, cfg.MigrateMode, "postgres"); err != nil {
		return nil, err
	}

	log.Info("PostgreSQL connected & migrations applied",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Name),
		zap.String("migrate_mode", cfg.MigrateMode),
	)
	return db, nil
}

// Open wraps gorm.Open with the logger and error translation used everywhere.
// Unique violations surface as gorm.ErrDuplicatedKey.
func Open(dialector gorm.Dialector, log *zap.Logger) (*gorm.DB, error) {
	// Only log warnings and errors; "record not found" is an expected outcome.
	gormLogger := logger.New(
		zap.NewStdLog(log),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	return gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
}

// Migrate brings the schema up to date using mode. An empty mode means goose;
// dialect is the goose dialect name.
func Migrate(ctx context.Context, db *gorm.DB, mode, dialect string) error {
	switch mode {
	case MigrateModeGoose, "":
		return RunMigrations(ctx, db, dialect)
	case MigrateModeAuto:
		return AutoMigrate(db)
	default:
		return fmt.Errorf("unknown migrate mode %q", mode)
	}
}

// AutoMigrate creates the schema from the model definitions.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Transaction{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// RunMigrations applies the embedded goose migrations. dialect is a goose
// dialect name such as "postgres" or "sqlite3".
func RunMigrations(ctx context.Context, db *gorm.DB, dialect string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping reports whether the database answers.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
