package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/efforttracker/effort-api/internal/api/handler"
	"github.com/efforttracker/effort-api/internal/api/middleware"
	"github.com/efforttracker/effort-api/internal/core/domain"
	"github.com/efforttracker/effort-api/internal/core/service"
	"github.com/efforttracker/effort-api/internal/infrastructure/config"
	mongorepo "github.com/efforttracker/effort-api/internal/infrastructure/db/mongo"
	redisstore "github.com/efforttracker/effort-api/internal/infrastructure/db/redis"
	"github.com/efforttracker/effort-api/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger.Get())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("effort"))

	// --- Dependencies ---
	userRepo := mongorepo.NewUserRepository(db)
	taskRepo := mongorepo.NewTaskRepository(db)
	entryRepo := mongorepo.NewTimeEntryRepository(db)
	revoker := redisstore.NewRevocationStore(rdb)

	authService := service.NewAuthService(userRepo, revoker, cfg.JWTSecret, cfg.TokenTTL)
	userService := service.NewUserService(userRepo, logger.Get())
	taskService := service.NewTaskService(taskRepo, entryRepo, userRepo, logger.Get())
	entryService := service.NewTimeEntryService(entryRepo, userRepo, taskRepo, logger.Get())

	secureCookie := cfg.Env == "production"
	authHandler := handler.NewAuthHandler(authService, userService, secureCookie)
	userHandler := handler.NewUserHandler(userService)
	taskHandler := handler.NewTaskHandler(taskService)
	entryHandler := handler.NewTimeEntryHandler(entryService)

	authRequired := middleware.Auth(cfg.JWTSecret, userRepo, revoker)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	// Logout stays public: an expired token must still clear the cookie.
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/user", authHandler.Me, authRequired)

	// --- User routes ---
	users := e.Group("/api/users", authRequired)
	users.GET("", userHandler.List, adminOnly)
	users.POST("", userHandler.Create, adminOnly)
	users.GET("/me", userHandler.Me)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete, adminOnly)

	// --- Task routes ---
	tasks := e.Group("/api/tasks", authRequired)
	tasks.GET("", taskHandler.List)
	tasks.GET("/me", taskHandler.ListMine)
	tasks.POST("", taskHandler.Create)
	tasks.POST("/with-entries", taskHandler.CreateWithEntries)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	// --- Time entry routes ---
	entries := e.Group("/api/time-entries", authRequired)
	entries.GET("", entryHandler.ListMine)
	entries.GET("/me", entryHandler.ListMine)
	entries.POST("", entryHandler.Create)
	entries.GET("/by-user/:id", entryHandler.ListByUser)
	entries.GET("/range/:start/:end", entryHandler.Range)
	entries.PUT("/task/:taskId/bulk-update", entryHandler.BulkUpdate)
	entries.PUT("/:id", entryHandler.Update)
	entries.DELETE("/:id", entryHandler.Delete)

	// --- Analytics ---
	entries.GET("/analytics/monthly-stats/:start/:end", entryHandler.MonthlyStats)
	entries.GET("/analytics/team-stats/:start/:end", entryHandler.TeamStats, adminOnly)
	entries.GET("/analytics/monthly-hours/:month/:year", entryHandler.MonthlyHours)
	entries.GET("/analytics/tasks-with-entries/:start/:end", entryHandler.TasksWithEntries)

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
