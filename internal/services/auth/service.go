package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"riskledger/internal/config"
	apperrors "riskledger/internal/errors"
	"riskledger/internal/metrics"
	"riskledger/internal/models"
	"riskledger/internal/repositories"
	"riskledger/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Service is the credential store.
type Service interface {
	Signup(ctx context.Context, input SignupInput) error
	Login(ctx context.Context, username, password string) (*models.UserView, error)
}

type SignupInput struct {
	Username string
	Password string
	Name     string
}

type service struct {
	userRepo  repositories.UserRepository
	cfg       config.AuthConfig
	log       *zap.Logger
	dummyHash []byte
}

func NewService(userRepo repositories.UserRepository, cfg config.AuthConfig, log *zap.Logger) (Service, error) {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.MinPasswordLength < 1 {
		cfg.MinPasswordLength = 1
	}

	// Compared against when the username is unknown, so that path costs the
	// same bcrypt work as a wrong password.
	dummyHash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	return &service{
		userRepo:  userRepo,
		cfg:       cfg,
		log:       log,
		dummyHash: dummyHash,
	}, nil
}

func (s *service) Signup(ctx context.Context, input SignupInput) (err error) {
	defer func() { metrics.RecordAuth("signup", apperrors.Code(err)) }()

	v := validation.New()
	v.Credentials(input.Username, input.Password, s.cfg.MinPasswordLength)
	if err := v.Err(); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.BcryptCost)
	if err != nil {
		// Only reachable for passwords over bcrypt's 72-byte limit.
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return apperrors.NewValidationError("password", "must not be more than 72 bytes long")
		}
		return apperrors.StoreUnavailable(err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     input.Username,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(input.Name),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateUsername) {
			s.log.Info("signup rejected: username taken", zap.String("username", input.Username))
			return apperrors.ErrDuplicateUsername
		}
		s.log.Error("signup failed", zap.String("username", input.Username), zap.Error(err))
		return apperrors.StoreUnavailable(err)
	}

	s.log.Info("user created", zap.String("user_id", user.ID), zap.String("username", user.Username))
	return nil
}

func (s *service) Login(ctx context.Context, username, password string) (view *models.UserView, err error) {
	defer func() { metrics.RecordAuth("login", apperrors.Code(err)) }()

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, repositories.ErrUserNotFound) {
			s.log.Error("login lookup failed", zap.String("username", username), zap.Error(err))
			return nil, apperrors.StoreUnavailable(err)
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		s.log.Info("login failed", zap.String("username", username))
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.Info("login failed", zap.String("username", username))
		return nil, apperrors.ErrInvalidCredentials
	}

	return user.View(), nil
}
