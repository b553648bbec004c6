package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/nileacademy/apple-rewards/internal/domain/error"
	coreport "github.com/nileacademy/apple-rewards/internal/domain/port/core"
	scanUseCase "github.com/nileacademy/apple-rewards/internal/domain/usecase/scan"
	"github.com/nileacademy/apple-rewards/internal/infrastructure/adapter/api/dto"
	"github.com/nileacademy/apple-rewards/internal/infrastructure/adapter/api/middleware"
)

// ScanHandler handles barcode scan HTTP requests
type ScanHandler struct {
	scanService *scanUseCase.Service
	logger      coreport.Logger
}

// NewScanHandler creates a new scan handler instance
func NewScanHandler(scanService *scanUseCase.Service, logger coreport.Logger) *ScanHandler {
	return &ScanHandler{
		scanService: scanService,
		logger:      logger,
	}
}

// Scan handles the POST /scan endpoint
func (h *ScanHandler) Scan(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidCredentials),
			Message: "Authentication required",
		})
		return
	}

	var req dto.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	result, err := h.scanService.Scan(c.Request.Context(), scanUseCase.Request{
		Barcode:    req.Barcode,
		CallerRole: string(session.Role),
		CallerID:   session.UserID,
	})
	if err != nil {
		var scanErr *domainerr.ScanError
		if errors.As(err, &scanErr) {
			h.logger.Warn("Scan rejected", scanErr.LogFields())
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ScanResponse{
		Success:      true,
		Type:         string(result.Type),
		Name:         result.Name,
		Apples:       result.Apples,
		StudentID:    result.StudentID,
		AssistantID:  result.AssistantID,
		ApplesAdded:  result.ApplesAdded,
		Sessions:     result.Sessions,
		LoyaltyAdded: result.BonusApples,
		Message:      result.Message,
	})
}
