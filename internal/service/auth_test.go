package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/mctasu/vending-machine-service/internal/config"
	"github.com/mctasu/vending-machine-service/internal/entities"
	"github.com/mctasu/vending-machine-service/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testJWTConfig() config.JWT {
	return config.JWT{Secret: "test-secret-at-least-16", TTL: time.Hour}
}

func TestAuthService_SignUp(t *testing.T) {
	t.Run("stores a hash, not the password", func(t *testing.T) {
		repo := new(mockUsersRepo)
		var saved entities.User
		repo.On("SaveUser", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(entities.User)
			}).Return(nil).Once()

		svc := service.NewAuthService(testLogger(), repo, testJWTConfig())

		user, token, err := svc.SignUp(context.Background(), "Alice", "alice@example.com", "sup3rsecret")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, entities.RoleUser, user.Role)
		assert.True(t, user.Active)
		assert.NotEqual(t, "sup3rsecret", saved.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("sup3rsecret")))
	})

	t.Run("email taken", func(t *testing.T) {
		repo := new(mockUsersRepo)
		repo.On("SaveUser", mock.Anything, mock.Anything).Return(entities.ErrEmailTaken).Once()

		svc := service.NewAuthService(testLogger(), repo, testJWTConfig())

		_, _, err := svc.SignUp(context.Background(), "Alice", "alice@example.com", "sup3rsecret")
		assert.ErrorIs(t, err, entities.ErrEmailTaken)
	})
}

func TestAuthService_SignIn(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("sup3rsecret"), bcrypt.MinCost)
	require.NoError(t, err)

	storedUser := entities.User{
		ID:           "u1",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
		Role:         entities.RoleUser,
		Active:       true,
	}

	t.Run("success", func(t *testing.T) {
		repo := new(mockUsersRepo)
		repo.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(storedUser, nil).Once()

		svc := service.NewAuthService(testLogger(), repo, testJWTConfig())

		user, token, err := svc.SignIn(context.Background(), "alice@example.com", "sup3rsecret")
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(mockUsersRepo)
		repo.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(storedUser, nil).Once()

		svc := service.NewAuthService(testLogger(), repo, testJWTConfig())

		_, _, err := svc.SignIn(context.Background(), "alice@example.com", "wrong")
		assert.ErrorIs(t, err, entities.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := new(mockUsersRepo)
		repo.On("GetUserByEmail", mock.Anything, "bob@example.com").
			Return(entities.User{}, entities.ErrUserNotFound).Once()

		svc := service.NewAuthService(testLogger(), repo, testJWTConfig())

		_, _, err := svc.SignIn(context.Background(), "bob@example.com", "whatever")
		assert.ErrorIs(t, err, entities.ErrInvalidCredentials)
	})
}

func TestAuthService_VerifyToken(t *testing.T) {
	storedUser := entities.User{ID: "u1", Email: "alice@example.com", Role: entities.RoleAdmin, Active: true}

	t.Run("round trip", func(t *testing.T) {
		repo := new(mockUsersRepo)
		repo.On("SaveUser", mock.Anything, mock.Anything).Return(nil).Once()
		repo.On("GetUserByID", mock.Anything, mock.Anything).Return(storedUser, nil).Once()

		svc := service.NewAuthService(testLogger(), repo, testJWTConfig())

		_, token, err := svc.SignUp(context.Background(), "Alice", "alice@example.com", "sup3rsecret")
		require.NoError(t, err)

		user, err := svc.VerifyToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc := service.NewAuthService(testLogger(), new(mockUsersRepo), testJWTConfig())

		_, err := svc.VerifyToken(context.Background(), "not-a-token")
		assert.ErrorIs(t, err, entities.ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		issuer := service.NewAuthService(testLogger(), new(mockUsersRepo), config.JWT{
			Secret: "another-secret-16-chars", TTL: time.Hour,
		})
		repo := new(mockUsersRepo)
		repo.On("SaveUser", mock.Anything, mock.Anything).Return(nil).Once()
		signer := service.NewAuthService(testLogger(), repo, testJWTConfig())

		_, token, err := signer.SignUp(context.Background(), "Alice", "alice@example.com", "sup3rsecret")
		require.NoError(t, err)

		_, err = issuer.VerifyToken(context.Background(), token)
		assert.ErrorIs(t, err, entities.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		repo := new(mockUsersRepo)
		repo.On("SaveUser", mock.Anything, mock.Anything).Return(nil).Once()
		svc := service.NewAuthService(testLogger(), repo, config.JWT{
			Secret: "test-secret-at-least-16", TTL: -time.Minute,
		})

		_, token, err := svc.SignUp(context.Background(), "Alice", "alice@example.com", "sup3rsecret")
		require.NoError(t, err)

		_, err = svc.VerifyToken(context.Background(), token)
		assert.ErrorIs(t, err, entities.ErrInvalidToken)
	})

	t.Run("deactivated account", func(t *testing.T) {
		repo := new(mockUsersRepo)
		repo.On("SaveUser", mock.Anything, mock.Anything).Return(nil).Once()
		repo.On("GetUserByID", mock.Anything, mock.Anything).
			Return(entities.User{}, entities.ErrUserNotFound).Once()

		svc := service.NewAuthService(testLogger(), repo, testJWTConfig())

		_, token, err := svc.SignUp(context.Background(), "Alice", "alice@example.com", "sup3rsecret")
		require.NoError(t, err)

		_, err = svc.VerifyToken(context.Background(), token)
		assert.ErrorIs(t, err, entities.ErrInvalidToken)
	})
}
