package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nileacademy/apple-rewards/internal/domain/entity"
	errs "github.com/nileacademy/apple-rewards/internal/domain/error"
	"github.com/nileacademy/apple-rewards/internal/infrastructure/adapter/logger"
	mockpersistence "github.com/nileacademy/apple-rewards/mocks/port/persistence"
)

type mockTokenIssuer struct{ mock.Mock }

func (m *mockTokenIssuer) Issue(user *entity.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *mockTokenIssuer) Validate(token string) (*Session, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Session), args.Error(1)
}

type mockPasswordVerifier struct{ mock.Mock }

func (m *mockPasswordVerifier) Compare(hash, password string) error {
	args := m.Called(hash, password)
	return args.Error(0)
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials issue a session token", func(t *testing.T) {
		user := &entity.User{ID: 1, Name: "Hassan", Email: "hassan@example.com", PasswordHash: "$2a$hash", Role: entity.RoleAdmin}

		userRepo := new(mockpersistence.MockUserRepository)
		tokens := new(mockTokenIssuer)
		passwords := new(mockPasswordVerifier)
		userRepo.On("GetByEmail", ctx, "hassan@example.com").Return(user, nil)
		passwords.On("Compare", "$2a$hash", "secret").Return(nil)
		tokens.On("Issue", user).Return("signed.token", nil)

		svc := NewService(userRepo, tokens, passwords, logger.NewNoopLogger())
		got, token, err := svc.Login(ctx, "hassan@example.com", "secret")

		require.NoError(t, err)
		assert.Equal(t, user, got)
		assert.Equal(t, "signed.token", token)
		tokens.AssertExpectations(t)
	})

	t.Run("missing fields are rejected before lookup", func(t *testing.T) {
		userRepo := new(mockpersistence.MockUserRepository)
		svc := NewService(userRepo, new(mockTokenIssuer), new(mockPasswordVerifier), logger.NewNoopLogger())

		_, _, err := svc.Login(ctx, "", "secret")
		assert.ErrorIs(t, err, errs.ErrInvalidRequest)

		_, _, err = svc.Login(ctx, "hassan@example.com", "")
		assert.ErrorIs(t, err, errs.ErrInvalidRequest)

		userRepo.AssertNotCalled(t, "GetByEmail")
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		userRepo := new(mockpersistence.MockUserRepository)
		userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, errs.ErrUserNotFound)

		svc := NewService(userRepo, new(mockTokenIssuer), new(mockPasswordVerifier), logger.NewNoopLogger())
		_, _, err := svc.Login(ctx, "ghost@example.com", "secret")

		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("wrong password maps to invalid credentials", func(t *testing.T) {
		user := &entity.User{ID: 1, Email: "hassan@example.com", PasswordHash: "$2a$hash", Role: entity.RoleAdmin}

		userRepo := new(mockpersistence.MockUserRepository)
		passwords := new(mockPasswordVerifier)
		userRepo.On("GetByEmail", ctx, "hassan@example.com").Return(user, nil)
		passwords.On("Compare", "$2a$hash", "nope").Return(errors.New("mismatch"))

		svc := NewService(userRepo, new(mockTokenIssuer), passwords, logger.NewNoopLogger())
		_, _, err := svc.Login(ctx, "hassan@example.com", "nope")

		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})
}

func TestService_ValidateSession(t *testing.T) {
	t.Run("valid token resolves claims", func(t *testing.T) {
		tokens := new(mockTokenIssuer)
		tokens.On("Validate", "signed.token").Return(&Session{UserID: 1, Name: "Hassan", Role: entity.RoleAdmin}, nil)

		svc := NewService(new(mockpersistence.MockUserRepository), tokens, new(mockPasswordVerifier), logger.NewNoopLogger())
		session, err := svc.ValidateSession("signed.token")

		require.NoError(t, err)
		assert.Equal(t, uint64(1), session.UserID)
	})

	t.Run("garbage token is invalid", func(t *testing.T) {
		tokens := new(mockTokenIssuer)
		tokens.On("Validate", "garbage").Return(nil, errors.New("bad token"))

		svc := NewService(new(mockpersistence.MockUserRepository), tokens, new(mockPasswordVerifier), logger.NewNoopLogger())
		_, err := svc.ValidateSession("garbage")

		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("empty token is invalid", func(t *testing.T) {
		svc := NewService(new(mockpersistence.MockUserRepository), new(mockTokenIssuer), new(mockPasswordVerifier), logger.NewNoopLogger())
		_, err := svc.ValidateSession("")

		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})
}
