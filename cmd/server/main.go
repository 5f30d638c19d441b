package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"studyon-billing/internal/adapters/http/middleware"
	"studyon-billing/internal/adapters/http/routes"
	"studyon-billing/internal/adapters/mail"
	"studyon-billing/internal/adapters/persistence/models"
	"studyon-billing/internal/adapters/persistence/repositories"
	"studyon-billing/internal/adapters/persistence/seeds"
	"studyon-billing/internal/config"
	"studyon-billing/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	_ "studyon-billing/docs" // Swagger docs
)

// @title StudyOn Billing API
// @version 1.0
// @description Balances, course purchases and rentals for the StudyOn learning platform
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email admins@studyon.com

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @schemes http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed development fixtures
	if cfg.Jobs.SeedFixtures {
		uow := repositories.NewUnitOfWork(db)
		seeder := seeds.NewSeeder(uow, services.NewPaymentService(uow, services.SystemClock), services.SystemClock)
		if err := seeder.Run(context.Background()); err != nil {
			log.Printf("⚠️ Warning: Failed to seed fixtures: %v", err)
		}
	}

	// Start Cron Service for report mails (monthly report, rent endings)
	if cfg.Jobs.CronEnabled {
		cronService, err := newCronService(db, cfg)
		if err != nil {
			log.Fatalf("❌ Failed to configure cron: %v", err)
		}
		cronService.Start()
		defer cronService.Stop()
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "StudyOn Billing API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// newCronService wires the report and token cleanup jobs
func newCronService(db *gorm.DB, cfg *config.Config) (*services.CronService, error) {
	mailer, err := mail.NewSMTPMailer(cfg.Mail)
	if err != nil {
		return nil, err
	}

	reports := services.NewReportService(repositories.NewTransactionRepository(db), mailer, services.SystemClock)
	auth := services.NewAuthService(
		repositories.NewUserRepository(db),
		repositories.NewRefreshTokenRepository(db),
		cfg,
	)
	return services.NewCronService(reports, auth, cfg.Jobs, services.SystemClock)
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
