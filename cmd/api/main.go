package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quirodesk/clinica-api/internal/application/service"
	"github.com/quirodesk/clinica-api/internal/config"
	"github.com/quirodesk/clinica-api/internal/infrastructure/database"
	"github.com/quirodesk/clinica-api/internal/infrastructure/repository"
	"github.com/quirodesk/clinica-api/internal/presentation/http/handler"
	"github.com/quirodesk/clinica-api/internal/presentation/http/middleware"
	"github.com/quirodesk/clinica-api/internal/presentation/http/routes"
	"github.com/quirodesk/clinica-api/pkg/email"
	"github.com/quirodesk/clinica-api/pkg/oauth"
	"github.com/quirodesk/clinica-api/pkg/printer"
	"github.com/quirodesk/clinica-api/pkg/report"
	"github.com/quirodesk/clinica-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)
	clinicRepo := repository.NewClinicRepository(db)
	practitionerRepo := repository.NewPractitionerRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	productRepo := repository.NewProductRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	receiptDetailRepo := repository.NewReceiptDetailRepository(db)
	receiptPaymentRepo := repository.NewReceiptPaymentRepository(db)
	carePlanRepo := repository.NewCarePlanRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.Email.FrontendURL,
	})

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize PDF rendering client
	gotenbergClient := report.NewClient(cfg.Gotenberg.URL, time.Duration(cfg.Gotenberg.TimeoutSeconds)*time.Second)
	if err := gotenbergClient.Ping(context.Background()); err != nil {
		log.Printf("Warning: Gotenberg unreachable, PDF rendering unavailable: %v", err)
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, passwordResetRepo, jwtManager, emailService)
	patientService := service.NewPatientService(patientRepo, practitionerRepo)
	practitionerService := service.NewPractitionerService(practitionerRepo, clinicRepo)
	productService := service.NewProductService(productRepo)
	receiptService := service.NewReceiptService(receiptRepo, receiptDetailRepo, receiptPaymentRepo, productRepo, patientRepo, practitionerRepo)
	carePlanService := service.NewCarePlanService(carePlanRepo, patientRepo, practitionerRepo)
	userService := service.NewUserService(userRepo)
	documentService := service.NewDocumentService(gotenbergClient, receiptRepo)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(thermalPrinter, receiptRepo, cfg.Printer.Type)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:         handler.NewAuthHandler(authService, googleOAuthService),
		Patient:      handler.NewPatientHandler(patientService),
		Practitioner: handler.NewPractitionerHandler(practitionerService),
		Product:      handler.NewProductHandler(productService),
		Receipt:      handler.NewReceiptHandler(receiptService, documentService),
		CarePlan:     handler.NewCarePlanHandler(carePlanService),
		User:         handler.NewUserHandler(userService),
		Printer:      handler.NewPrinterHandler(printerService),
	}

	// Setup router
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:  jwtManager,
		Cfg:         cfg,
		Idempotency: middleware.NewIdempotencyStore(),
	})

	// Start server
	port := cfg.App.Port
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}

	log.Printf("Starting %s on port %s", cfg.App.Name, port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
