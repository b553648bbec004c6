package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainerr "github.com/nileacademy/apple-rewards/internal/domain/error"
	coreport "github.com/nileacademy/apple-rewards/internal/domain/port/core"
	applesUseCase "github.com/nileacademy/apple-rewards/internal/domain/usecase/apples"
	"github.com/nileacademy/apple-rewards/internal/infrastructure/adapter/api/dto"
	"github.com/nileacademy/apple-rewards/internal/infrastructure/adapter/api/middleware"
)

// ApplesHandler handles balance adjustment HTTP requests
type ApplesHandler struct {
	applesService *applesUseCase.Service
	logger        coreport.Logger
}

// NewApplesHandler creates a new apples handler instance
func NewApplesHandler(applesService *applesUseCase.Service, logger coreport.Logger) *ApplesHandler {
	return &ApplesHandler{
		applesService: applesService,
		logger:        logger,
	}
}

// AddStudentApples handles the POST /students/:id/add-apples endpoint
func (h *ApplesHandler) AddStudentApples(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidCredentials),
			Message: "Authentication required",
		})
		return
	}

	studentID, req, ok := h.parseAdjustment(c)
	if !ok {
		return
	}

	result, err := h.applesService.AddStudentApples(c.Request.Context(), studentID, req.Apples, session.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AddApplesResponse{
		Success:     true,
		Name:        result.Name,
		Apples:      result.Apples,
		ApplesAdded: result.ApplesAdded,
		Message:     result.Message,
	})
}

// AddAssistantApples handles the POST /assistants/:id/add-apples endpoint
func (h *ApplesHandler) AddAssistantApples(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidCredentials),
			Message: "Authentication required",
		})
		return
	}

	assistantID, req, ok := h.parseAdjustment(c)
	if !ok {
		return
	}

	result, err := h.applesService.AddAssistantApples(
		c.Request.Context(), assistantID, req.Apples, session.UserID, req.IsSessionAttendance)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AddApplesResponse{
		Success:             true,
		Name:                result.Name,
		Apples:              result.Apples,
		ApplesAdded:         result.ApplesAdded,
		SessionsAttended:    result.SessionsAttended,
		CurrentSessionValue: result.CurrentSessionValue,
		Message:             result.Message,
	})
}

// PayRewards handles the POST /assistants/pay-rewards endpoint
func (h *ApplesHandler) PayRewards(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidCredentials),
			Message: "Authentication required",
		})
		return
	}

	reset, err := h.applesService.PayRewards(c.Request.Context(), session.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PayRewardsResponse{
		Success:         true,
		AssistantsReset: reset,
		Message:         fmt.Sprintf("Rewards paid! %d assistant balances reset to 0", reset),
	})
}

// parseAdjustment extracts the target ID and adjustment payload shared by
// both add-apples endpoints
func (h *ApplesHandler) parseAdjustment(c *gin.Context) (uint64, dto.AddApplesRequest, bool) {
	var req dto.AddApplesRequest

	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidUserID),
			Message: "Invalid ID format",
		})
		return 0, req, false
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return 0, req, false
	}

	if req.Apples == nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidAmount),
			Message: "Invalid apple amount",
		})
		return 0, req, false
	}

	return id, req, true
}
