package auth

import (
	"context"
	"errors"

	"github.com/nileacademy/apple-rewards/internal/domain/entity"
	errs "github.com/nileacademy/apple-rewards/internal/domain/error"
	coreport "github.com/nileacademy/apple-rewards/internal/domain/port/core"
	"github.com/nileacademy/apple-rewards/internal/domain/port/persistence"
)

// Session carries the identity attached to a validated session token
type Session struct {
	UserID uint64
	Name   string
	Role   entity.Role
}

// TokenIssuer issues and validates session tokens. The HTTP layer stores
// the token in an HttpOnly cookie; the server stays the only validator.
type TokenIssuer interface {
	Issue(user *entity.User) (string, error)
	Validate(token string) (*Session, error)
}

// PasswordVerifier compares a stored hash against a candidate password
type PasswordVerifier interface {
	Compare(hash, password string) error
}

// Service handles credential checks and session issuance
type Service struct {
	userRepo  persistence.UserRepository
	tokens    TokenIssuer
	passwords PasswordVerifier
	logger    coreport.Logger
}

// NewService creates a new auth service
func NewService(
	userRepo persistence.UserRepository,
	tokens TokenIssuer,
	passwords PasswordVerifier,
	logger coreport.Logger,
) *Service {
	return &Service{
		userRepo:  userRepo,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// Login validates an email/password pair and returns the user plus a fresh
// session token. Unknown emails and wrong passwords are indistinguishable
// to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	if email == "" || password == "" {
		return nil, "", errs.ErrInvalidRequest
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			s.logger.Warn("Login attempt for unknown email", map[string]any{
				"email": email,
			})
			return nil, "", errs.ErrInvalidCredentials
		}
		s.logger.Error("Failed to look up user for login", map[string]any{
			"email": email,
			"error": err.Error(),
		})
		return nil, "", err
	}

	if err := s.passwords.Compare(user.PasswordHash, password); err != nil {
		s.logger.Warn("Login attempt with wrong password", map[string]any{
			"user_id": user.ID,
		})
		return nil, "", errs.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error("Failed to issue session token", map[string]any{
			"user_id": user.ID,
			"error":   err.Error(),
		})
		return nil, "", errs.ErrInternalServer
	}

	s.logger.Info("User logged in", map[string]any{
		"user_id": user.ID,
		"role":    user.Role,
	})

	return user, token, nil
}

// ValidateSession resolves a raw session token to its claims
func (s *Service) ValidateSession(token string) (*Session, error) {
	if token == "" {
		return nil, errs.ErrInvalidCredentials
	}
	session, err := s.tokens.Validate(token)
	if err != nil {
		return nil, errs.ErrInvalidCredentials
	}
	return session, nil
}
