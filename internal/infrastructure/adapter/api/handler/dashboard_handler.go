package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nileacademy/apple-rewards/internal/domain/entity"
	domainerr "github.com/nileacademy/apple-rewards/internal/domain/error"
	coreport "github.com/nileacademy/apple-rewards/internal/domain/port/core"
	dashboardUseCase "github.com/nileacademy/apple-rewards/internal/domain/usecase/dashboard"
	"github.com/nileacademy/apple-rewards/internal/infrastructure/adapter/api/dto"
	"github.com/nileacademy/apple-rewards/internal/infrastructure/adapter/api/middleware"
)

// DashboardHandler handles dashboard projection HTTP requests
type DashboardHandler struct {
	dashboardService *dashboardUseCase.Service
	logger           coreport.Logger
}

// NewDashboardHandler creates a new dashboard handler instance
func NewDashboardHandler(dashboardService *dashboardUseCase.Service, logger coreport.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// Me handles the GET /dashboard/me endpoint: the caller's own projection
func (h *DashboardHandler) Me(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidCredentials),
			Message: "Authentication required",
		})
		return
	}

	view, err := h.dashboardService.ForUser(c.Request.Context(), session.Name, session.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userViewToDTO(view))
}

// Roster handles the GET /dashboard/roster endpoint. Only admins may view
// the full roster.
func (h *DashboardHandler) Roster(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidCredentials),
			Message: "Authentication required",
		})
		return
	}

	if session.Role != entity.RoleAdmin {
		respondError(c, domainerr.ErrNotAuthorized)
		return
	}

	viewType := c.DefaultQuery("view", dashboardUseCase.ViewAssistants)

	roster, err := h.dashboardService.Roster(c.Request.Context(), viewType)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.RosterResponse{
		ViewType:    roster.ViewType,
		TotalApples: roster.TotalApples,
	}
	for _, a := range roster.Assistants {
		resp.Assistants = append(resp.Assistants, userViewToDTO(a))
	}
	for _, s := range roster.Students {
		resp.Students = append(resp.Students, dto.StudentRowResponse{
			ID:      s.ID,
			Name:    s.Name,
			Barcode: s.Barcode,
			Apples:  s.Apples,
		})
	}

	c.JSON(http.StatusOK, resp)
}

// userViewToDTO converts a dashboard projection to its wire form
func userViewToDTO(view *dashboardUseCase.UserView) dto.UserDashboardResponse {
	resp := dto.UserDashboardResponse{
		ID:                  view.ID,
		Name:                view.Name,
		Barcode:             view.Barcode,
		Apples:              view.Apples,
		Role:                string(view.Role),
		Sessions:            view.Sessions,
		CurrentSessionValue: view.CurrentSessionValue,
		MilestonesReached:   view.MilestonesReached,
		BonusCount:          view.BonusCount,
		LoyaltyHistory:      make([]dto.LoyaltyBonusDTO, 0, len(view.LoyaltyHistory)),
	}
	for _, b := range view.LoyaltyHistory {
		resp.LoyaltyHistory = append(resp.LoyaltyHistory, dto.LoyaltyBonusDTO{
			BonusType:   b.BonusType,
			BonusApples: b.BonusApples,
			CreatedAt:   b.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp
}
