package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/opsconsole/admin-api/internal/api/handler"
	"github.com/opsconsole/admin-api/internal/api/middleware"
	"github.com/opsconsole/admin-api/internal/core/domain"
	"github.com/opsconsole/admin-api/internal/core/service"
	mongodb "github.com/opsconsole/admin-api/internal/infrastructure/db/mongo"
	redisdb "github.com/opsconsole/admin-api/internal/infrastructure/db/redis"
	"github.com/opsconsole/admin-api/internal/infrastructure/sysinfo"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, sessionTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("console"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb)
	authService := service.NewAuthService(userRepo, sessionStore, sessionTTL, log)
	directoryService := service.NewDirectoryService(userRepo, sessionStore, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(directoryService)
	systemHandler := handler.NewSystemHandler(sysinfo.NewProvider())

	sessionMW := middleware.Session(authService)
	adminMW := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, sessionMW)
	e.GET("/auth/me", authHandler.Me, sessionMW)

	// --- Directory routes ---
	// Password rotation is gated in the service: admins may target anyone,
	// a regular user only their own account. Everything else is admin-only
	// and additionally gated at the route.
	users := e.Group("/users", sessionMW)
	users.GET("", userHandler.List, adminMW)
	users.POST("", userHandler.Create, adminMW)
	users.PUT("/:id", userHandler.Update, adminMW)
	users.DELETE("/:id", userHandler.Delete, adminMW)
	users.POST("/:id/change-password", userHandler.ChangePassword)

	// --- System info (admin-only view) ---
	e.GET("/system-info", systemHandler.Info, sessionMW, adminMW)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
