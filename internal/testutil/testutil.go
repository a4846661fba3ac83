// Package testutil builds throwaway stores for package tests: an in-memory
// SQLite database behind gorm and a miniredis-backed cache.
package testutil

import (
	"testing"
	"time"

	"riskledger/internal/repositories"
	"riskledger/internal/repositories/cache"
	"riskledger/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDB opens an isolated in-memory database with the schema applied.
// A single connection serialises writers, which SQLite requires.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db := OpenDB(t)
	if err := repositories.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// OpenDB opens an isolated in-memory database without creating any tables.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := repositories.Open(sqlite.Open(dsn), logger.NewNop())
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get test database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

// NewCache starts a miniredis server and returns a cache service bound to it.
func NewCache(t *testing.T) (*cache.CacheService, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return cache.NewCacheService(client, time.Minute), mr
}
