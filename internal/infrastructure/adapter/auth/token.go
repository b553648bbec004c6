package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nileacademy/apple-rewards/internal/domain/entity"
	errs "github.com/nileacademy/apple-rewards/internal/domain/error"
	coreport "github.com/nileacademy/apple-rewards/internal/domain/port/core"
	authuc "github.com/nileacademy/apple-rewards/internal/domain/usecase/auth"
	"github.com/spf13/cast"
)

// SessionClaims is the JWT payload for a staff session
type SessionClaims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTTokenManager issues and validates HS256 session tokens
type JWTTokenManager struct {
	secret       []byte
	issuer       string
	ttl          time.Duration
	timeProvider coreport.TimeProvider
}

// NewJWTTokenManager creates a new JWTTokenManager
func NewJWTTokenManager(secret, issuer string, ttl time.Duration, timeProvider coreport.TimeProvider) *JWTTokenManager {
	return &JWTTokenManager{
		secret:       []byte(secret),
		issuer:       issuer,
		ttl:          ttl,
		timeProvider: timeProvider,
	}
}

// Issue signs a fresh session token for the user
func (m *JWTTokenManager) Issue(user *entity.User) (string, error) {
	now := m.timeProvider.Now().UTC()
	claims := SessionClaims{
		Name: user.Name,
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   cast.ToString(user.ID),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate parses and verifies a session token
func (m *JWTTokenManager) Validate(tokenString string) (*authuc.Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errs.ErrInvalidCredentials
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, errs.ErrInvalidCredentials
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, errs.ErrInvalidCredentials
	}

	userID := cast.ToUint64(claims.Subject)
	if userID == 0 || !entity.IsValidRole(claims.Role) {
		return nil, errs.ErrInvalidCredentials
	}

	return &authuc.Session{
		UserID: userID,
		Name:   claims.Name,
		Role:   entity.Role(claims.Role),
	}, nil
}
