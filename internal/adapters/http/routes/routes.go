package routes

import (
	"studyon-billing/internal/adapters/http/handlers"
	"studyon-billing/internal/adapters/http/middleware"
	"studyon-billing/internal/adapters/persistence/repositories"
	"studyon-billing/internal/config"
	"studyon-billing/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// authRequestsPerMinute caps login, register and refresh calls per IP
const authRequestsPerMinute = 20

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	courseRepo := repositories.NewCourseRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo)
	courseService := services.NewCourseService(courseRepo)
	paymentService := services.NewPaymentService(uow, services.SystemClock)
	transactionService := services.NewTransactionService(transactionRepo, services.SystemClock)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, cfg)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService, paymentService, cfg.UsersPageSize)
	courseHandler := handlers.NewCourseHandler(courseService, paymentService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	setupAuthRoutes(apiV1, authHandler, cfg)
	setupUserRoutes(apiV1, userHandler, cfg)
	setupCourseRoutes(apiV1.Group("/courses"), courseHandler, cfg)

	transactionRoutes := apiV1.Group("/transactions", middleware.NoCacheHeaders(), middleware.AuthMiddleware(cfg))
	transactionRoutes.Get("/", transactionHandler.History)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	limit := middleware.AuthRateLimiter(authRequestsPerMinute)

	// Public routes
	router.Post("/register", limit, handler.Register)
	router.Post("/auth", limit, handler.Login)
	router.Post("/token/refresh", limit, handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupUserRoutes configures account and balance routes
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler, cfg *config.Config) {
	auth := middleware.AuthMiddleware(cfg)
	noCache := middleware.NoCacheHeaders()

	router.Get("/users/current", noCache, auth, handler.Current)
	router.Get("/users", noCache, auth, middleware.SuperAdminOnly(), handler.ListUsers)
	router.Post("/deposit", auth, handler.Deposit)
}

// setupCourseRoutes configures catalog routes; reads are public
func setupCourseRoutes(router fiber.Router, handler *handlers.CourseHandler, cfg *config.Config) {
	auth := middleware.AuthMiddleware(cfg)

	router.Get("/", middleware.CatalogCache(), handler.List)
	router.Post("/new", auth, middleware.SuperAdminOnly(), handler.Create)
	router.Get("/:code", middleware.CatalogCache(), handler.Get)
	router.Post("/:code/edit", auth, middleware.SuperAdminOnly(), handler.Edit)
	router.Post("/:code/pay", auth, handler.Pay)
}
