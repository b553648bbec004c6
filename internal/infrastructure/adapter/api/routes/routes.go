package routes

import (
	"github.com/gin-gonic/gin"

	coreport "github.com/nileacademy/apple-rewards/internal/domain/port/core"
	authUseCase "github.com/nileacademy/apple-rewards/internal/domain/usecase/auth"
	"github.com/nileacademy/apple-rewards/internal/infrastructure/adapter/api/handler"
	"github.com/nileacademy/apple-rewards/internal/infrastructure/adapter/api/middleware"
)

// Handlers bundles everything SetupRoutes wires into the router
type Handlers struct {
	Auth      *handler.AuthHandler
	Scan      *handler.ScanHandler
	Apples    *handler.ApplesHandler
	Dashboard *handler.DashboardHandler
	Health    *handler.HealthHandler
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	h Handlers,
	authService *authUseCase.Service,
	cookieName string,
	logger coreport.Logger,
) {
	// Public routes
	router.GET("/health", h.Health.Check)
	router.POST("/auth/login", h.Auth.Login)
	router.POST("/auth/logout", h.Auth.Logout)

	// Everything else requires a valid session cookie
	session := middleware.RequireSession(authService, cookieName, logger)

	authRoutes := router.Group("/auth", session)
	{
		// GET /auth/me
		authRoutes.GET("/me", h.Auth.Me)
	}

	scanRoutes := router.Group("/scan", session)
	{
		// POST /scan
		scanRoutes.POST("", h.Scan.Scan)
	}

	studentRoutes := router.Group("/students", session)
	{
		// POST /students/:id/add-apples
		studentRoutes.POST("/:id/add-apples", h.Apples.AddStudentApples)
	}

	assistantRoutes := router.Group("/assistants", session)
	{
		// POST /assistants/:id/add-apples
		assistantRoutes.POST("/:id/add-apples", h.Apples.AddAssistantApples)

		// POST /assistants/pay-rewards
		assistantRoutes.POST("/pay-rewards", h.Apples.PayRewards)
	}

	dashboardRoutes := router.Group("/dashboard", session)
	{
		// GET /dashboard/me
		dashboardRoutes.GET("/me", h.Dashboard.Me)

		// GET /dashboard/roster?view=students|assistants
		dashboardRoutes.GET("/roster", h.Dashboard.Roster)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	// Apply middlewares in the correct order
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
