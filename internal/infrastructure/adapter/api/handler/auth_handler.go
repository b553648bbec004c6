package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/nileacademy/apple-rewards/internal/domain/error"
	coreport "github.com/nileacademy/apple-rewards/internal/domain/port/core"
	authUseCase "github.com/nileacademy/apple-rewards/internal/domain/usecase/auth"
	"github.com/nileacademy/apple-rewards/internal/infrastructure/adapter/api/dto"
	"github.com/nileacademy/apple-rewards/internal/infrastructure/adapter/api/middleware"
)

// CookieSettings controls how the session cookie is written
type CookieSettings struct {
	Name   string
	MaxAge int
	Secure bool
}

// AuthHandler handles login and session inspection
type AuthHandler struct {
	authService *authUseCase.Service
	cookie      CookieSettings
	logger      coreport.Logger
}

// NewAuthHandler creates a new auth handler instance
func NewAuthHandler(authService *authUseCase.Service, cookie CookieSettings, logger coreport.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
		logger:      logger,
	}
}

// Login handles the POST /auth/login endpoint. On success the session
// token is written to an HttpOnly cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, h.cookie.MaxAge, "/", "", h.cookie.Secure, true)

	c.JSON(http.StatusOK, dto.LoginResponse{
		Success: true,
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Role:    string(user.Role),
	})
}

// Logout handles the POST /auth/logout endpoint by expiring the cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me handles the GET /auth/me endpoint, returning the caller's identity
func (h *AuthHandler) Me(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidCredentials),
			Message: "Authentication required",
		})
		return
	}

	c.JSON(http.StatusOK, dto.SessionResponse{
		ID:   session.UserID,
		Name: session.Name,
		Role: string(session.Role),
	})
}
