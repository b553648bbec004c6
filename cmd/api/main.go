package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	applesUseCase "github.com/nileacademy/apple-rewards/internal/domain/usecase/apples"
	attendanceUseCase "github.com/nileacademy/apple-rewards/internal/domain/usecase/attendance"
	authUseCase "github.com/nileacademy/apple-rewards/internal/domain/usecase/auth"
	dashboardUseCase "github.com/nileacademy/apple-rewards/internal/domain/usecase/dashboard"
	scanUseCase "github.com/nileacademy/apple-rewards/internal/domain/usecase/scan"

	"github.com/nileacademy/apple-rewards/internal/infrastructure/adapter/api/handler"
	"github.com/nileacademy/apple-rewards/internal/infrastructure/adapter/api/routes"
	authAdapter "github.com/nileacademy/apple-rewards/internal/infrastructure/adapter/auth"
	"github.com/nileacademy/apple-rewards/internal/infrastructure/adapter/database"
	"github.com/nileacademy/apple-rewards/internal/infrastructure/adapter/database/migration"
	"github.com/nileacademy/apple-rewards/internal/infrastructure/adapter/logger"
	"github.com/nileacademy/apple-rewards/internal/infrastructure/adapter/repository"
	timeProvider "github.com/nileacademy/apple-rewards/internal/infrastructure/adapter/time"
	"github.com/nileacademy/apple-rewards/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate essential configuration
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	defer appLogger.Flush()

	// Setup database configuration
	dbConfig := &database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            database.ParsePort(cfg.Database.Port),
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Logger.Level,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      int(cfg.Database.RetryDelay.Seconds()),
	}

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Connect to the database
	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer dbManager.Close()

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(dbManager.DB(), tp, appLogger, dbManager.GetErrorMapper())
	studentRepo := repository.NewStudentRepository(dbManager.DB(), tp, appLogger, dbManager.GetErrorMapper())
	loyaltyRepo := repository.NewLoyaltyRepository(dbManager.DB(), appLogger)

	// Initialize auth adapters
	tokenManager := authAdapter.NewJWTTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL, tp)
	passwordHasher := authAdapter.NewBcryptHasher()

	// Initialize use cases
	authService := authUseCase.NewService(userRepo, tokenManager, passwordHasher, appLogger)
	attendanceService := attendanceUseCase.NewService(userRepo, appLogger)
	scanService := scanUseCase.NewService(userRepo, studentRepo, attendanceService, appLogger)
	applesService := applesUseCase.NewService(userRepo, studentRepo, attendanceService, appLogger)
	dashboardService := dashboardUseCase.NewService(userRepo, studentRepo, loyaltyRepo, appLogger)

	// Seed default accounts
	if cfg.Seed.Enabled {
		seeder := migration.NewSeeder(userRepo, studentRepo, passwordHasher, tp, appLogger)
		if err := seeder.SeedDefaults(context.Background()); err != nil {
			appLogger.Error("Failed to seed default accounts", map[string]any{
				"error": err.Error(),
			})
		}
	}

	// Initialize API handlers
	cookieSettings := handler.CookieSettings{
		Name:   cfg.Auth.CookieName,
		MaxAge: int(cfg.Auth.TokenTTL.Seconds()),
		Secure: cfg.Auth.SecureCookie,
	}
	handlers := routes.Handlers{
		Auth:      handler.NewAuthHandler(authService, cookieSettings, appLogger),
		Scan:      handler.NewScanHandler(scanService, appLogger),
		Apples:    handler.NewApplesHandler(applesService, appLogger),
		Dashboard: handler.NewDashboardHandler(dashboardService, appLogger),
		Health:    handler.NewHealthHandler(dbManager, appLogger),
	}

	// Initialize Gin router
	router := gin.New()

	// Setup middlewares
	routes.SetupMiddlewares(router, appLogger)

	// Setup routes
	routes.SetupRoutes(router, handlers, authService, cfg.Auth.CookieName, appLogger)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	// Create a deadline to wait for
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Shutdown the server
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missing []string

	if cfg.Server.Port == 0 {
		missing = append(missing, "server.port")
	}
	if cfg.Database.Host == "" {
		missing = append(missing, "database.host")
	}
	if cfg.Database.Username == "" {
		missing = append(missing, "database.username")
	}
	if cfg.Database.Password == "" {
		missing = append(missing, "database.password")
	}
	if cfg.Database.Database == "" {
		missing = append(missing, "database.database")
	}
	if cfg.Auth.JWTSecret == "" {
		missing = append(missing, "auth.jwtSecret (AR_AUTH_JWT_SECRET)")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v", missing)
	}

	return nil
}
