package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Config aggregates every setting the server reads from the environment.
type Config struct {
	Port        string
	Env         string
	CORSOrigins string

	DB    DBConfig
	Redis RedisConfig
	Auth  AuthConfig
	Log   LogConfig
}

// DBConfig holds PostgreSQL connection and pool settings.
type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration

	// MigrateMode is "goose" (SQL migrations) or "auto" (gorm AutoMigrate).
	MigrateMode string
}

// DSN builds the key/value connection string understood by the postgres driver.
func (c DBConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type AuthConfig struct {
	BcryptCost        int
	MinPasswordLength int
}

type LogConfig struct {
	Level      string
	Filename   string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// Load reads the full configuration, falling back to development defaults.
func Load() *Config {
	return &Config{
		Port:        GetEnv("PORT", "3000"),
		Env:         GetEnv("ENV", "development"),
		CORSOrigins: GetEnv("CORS_ALLOW_ORIGINS", "*"),
		DB: DBConfig{
			Host:            GetEnv("DB_HOST", "localhost"),
			Port:            GetEnv("DB_PORT", "5432"),
			User:            GetEnv("DB_USER", "postgres"),
			Password:        GetEnv("DB_PASSWORD", "postgres"),
			Name:            GetEnv("DB_NAME", "riskledger"),
			SSLMode:         GetEnv("DB_SSLMODE", "disable"),
			MaxIdleConns:    GetIntEnv("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    GetIntEnv("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			ConnMaxIdleTime: GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
			MigrateMode:     GetEnv("DB_MIGRATE_MODE", "goose"),
		},
		Redis: RedisConfig{
			Enabled:  GetBoolEnv("CACHE_ENABLED", true),
			Host:     GetEnv("REDIS_HOST", "localhost"),
			Port:     GetEnv("REDIS_PORT", "6379"),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetIntEnv("REDIS_DB", 0),
			TTL:      GetDurationEnv("CACHE_TTL", 10*time.Minute),
		},
		Auth: AuthConfig{
			BcryptCost:        GetIntEnv("AUTH_BCRYPT_COST", bcrypt.DefaultCost),
			MinPasswordLength: GetIntEnv("AUTH_MIN_PASSWORD_LENGTH", 1),
		},
		Log: LogConfig{
			Level:      GetEnv("LOG_LEVEL", "info"),
			Filename:   GetEnv("LOG_FILE", ""),
			MaxSize:    GetIntEnv("LOG_MAX_SIZE", 100),
			MaxBackups: GetIntEnv("LOG_MAX_BACKUPS", 5),
			MaxAge:     GetIntEnv("LOG_MAX_AGE", 30),
			Compress:   GetBoolEnv("LOG_COMPRESS", false),
		},
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
		log.Printf("Invalid %s, using default: %d", key, defaultVal)
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		log.Printf("Invalid %s, using default: %s", key, defaultVal)
	}
	return defaultVal
}

// GetBoolEnv returns a bool environment variable or a default value.
func GetBoolEnv(key string, defaultVal bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(val)); err == nil {
			return b
		}
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate rejects settings that are only acceptable during development.
func (c *Config) Validate() error {
	if !c.IsProduction() {
		return nil
	}
	if c.DB.MigrateMode == "auto" {
		return errors.New("DB_MIGRATE_MODE=auto is not allowed in production")
	}
	if strings.TrimSpace(c.CORSOrigins) == "*" {
		return errors.New("CORS_ALLOW_ORIGINS must list explicit origins in production")
	}
	return nil
}
