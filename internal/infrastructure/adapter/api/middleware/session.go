package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/nileacademy/apple-rewards/internal/domain/error"
	coreport "github.com/nileacademy/apple-rewards/internal/domain/port/core"
	authUseCase "github.com/nileacademy/apple-rewards/internal/domain/usecase/auth"
	"github.com/nileacademy/apple-rewards/internal/infrastructure/adapter/api/dto"
)

// sessionKey is the gin context key holding the validated session
const sessionKey = "session"

// RequireSession validates the session cookie and aborts with 401 when it
// is missing or invalid
func RequireSession(authService *authUseCase.Service, cookieName string, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidCredentials),
				Message: "Authentication required",
			})
			return
		}

		session, err := authService.ValidateSession(token)
		if err != nil {
			logger.Warn("Rejected invalid session token", map[string]any{
				"path":      c.Request.URL.Path,
				"client_ip": c.ClientIP(),
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidCredentials),
				Message: "Invalid or expired session",
			})
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// SessionFromContext returns the validated session attached by
// RequireSession, or nil when the request is unauthenticated
func SessionFromContext(c *gin.Context) *authUseCase.Session {
	value, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	session, ok := value.(*authUseCase.Session)
	if !ok {
		return nil
	}
	return session
}
