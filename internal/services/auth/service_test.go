package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"riskledger/internal/config"
	apperrors "riskledger/internal/errors"
	"riskledger/internal/models"
	"riskledger/internal/repositories"
	"riskledger/internal/testutil"
	"riskledger/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

var testConfig = config.AuthConfig{BcryptCost: bcrypt.MinCost, MinPasswordLength: 1}

func newTestService(t *testing.T, repo repositories.UserRepository) Service {
	t.Helper()
	svc, err := NewService(repo, testConfig, logger.NewNop())
	require.NoError(t, err)
	return svc
}

func TestSignup_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input SignupInput
		field string
	}{
		{name: "empty username", input: SignupInput{Username: "", Password: "secret"}, field: "username"},
		{name: "whitespace username", input: SignupInput{Username: "  ", Password: "secret"}, field: "username"},
		{name: "empty password", input: SignupInput{Username: "ravi", Password: ""}, field: "password"},
		{name: "password over bcrypt limit", input: SignupInput{Username: "ravi", Password: strings.Repeat("p", 73)}, field: "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			svc := newTestService(t, repo)

			err := svc.Signup(context.Background(), tt.input)
			assert.ErrorIs(t, err, apperrors.ErrValidation)

			var de *apperrors.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.field, de.Field)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestSignup_StoresHashNotPassword(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Username == "ravi" &&
			u.Name == "Ravi Kumar" &&
			u.ID != "" &&
			u.PasswordHash != "s3cret" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")) == nil
	})).Return(nil)

	svc := newTestService(t, repo)
	err := svc.Signup(context.Background(), SignupInput{Username: "ravi", Password: "s3cret", Name: " Ravi Kumar "})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSignup_RepositoryErrors(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{name: "duplicate", repoErr: repositories.ErrDuplicateUsername, wantErr: apperrors.ErrDuplicateUsername},
		{name: "database down", repoErr: errors.New("connection refused"), wantErr: apperrors.ErrStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			repo.On("Create", mock.Anything, mock.Anything).Return(tt.repoErr)

			err := newTestService(t, repo).Signup(context.Background(), SignupInput{Username: "ravi", Password: "pw"})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &models.User{ID: "u-1", Username: "ravi", PasswordHash: string(hash), Name: "Ravi"}

	repo := new(MockUserRepository)
	repo.On("GetByUsername", mock.Anything, "ravi").Return(stored, nil)
	repo.On("GetByUsername", mock.Anything, "ghost").Return(nil, repositories.ErrUserNotFound)
	repo.On("GetByUsername", mock.Anything, "broken").Return(nil, errors.New("timeout"))
	svc := newTestService(t, repo)
	ctx := context.Background()

	t.Run("success returns view", func(t *testing.T) {
		view, err := svc.Login(ctx, "ravi", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, &models.UserView{ID: "u-1", Username: "ravi", Name: "Ravi"}, view)
	})

	t.Run("unknown user and wrong password are indistinguishable", func(t *testing.T) {
		_, wrongPassword := svc.Login(ctx, "ravi", "nope")
		_, unknownUser := svc.Login(ctx, "ghost", "nope")

		assert.ErrorIs(t, wrongPassword, apperrors.ErrInvalidCredentials)
		assert.ErrorIs(t, unknownUser, apperrors.ErrInvalidCredentials)
		assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
		assert.Equal(t, apperrors.Code(wrongPassword), apperrors.Code(unknownUser))
	})

	t.Run("storage failure", func(t *testing.T) {
		_, err := svc.Login(ctx, "broken", "s3cret")
		assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
		assert.NotErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}

func TestSignupThenLogin(t *testing.T) {
	svc := newTestService(t, repositories.NewUserRepository(testutil.NewDB(t)))
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, SignupInput{Username: "ravi", Password: "s3cret", Name: "Ravi"}))

	err := svc.Signup(ctx, SignupInput{Username: "ravi", Password: "other", Name: "Impostor"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateUsername)

	view, err := svc.Login(ctx, "ravi", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "Ravi", view.Name)

	_, err = svc.Login(ctx, "ravi", "other")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestSignup_ConcurrentSameUsername(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newTestService(t, repositories.NewUserRepository(db))

	const attempts = 10
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = svc.Signup(context.Background(), SignupInput{Username: "race", Password: "pw"})
		}(i)
	}
	wg.Wait()

	var succeeded, duplicates int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, apperrors.ErrDuplicateUsername):
			duplicates++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, duplicates)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("username = ?", "race").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
