package repositories

import (
	"context"
	"errors"
	"riskledger/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDatabaseOperation = errors.New("database operation failed")
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	// Create inserts a new user. A concurrent or earlier user with the same
	// username makes it fail with ErrDuplicateUsername; nothing is written.
	Create(ctx context.Context, user *models.User) error

	// GetByUsername retrieves a user by exact username
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// Implementation will be in user_repository_impl.go
