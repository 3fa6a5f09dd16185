package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quirodesk/clinica-api/internal/config"
	"github.com/quirodesk/clinica-api/internal/domain/enum"
	"github.com/quirodesk/clinica-api/internal/presentation/http/handler"
	"github.com/quirodesk/clinica-api/internal/presentation/http/middleware"
	"github.com/quirodesk/clinica-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth         *handler.AuthHandler
	Patient      *handler.PatientHandler
	Practitioner *handler.PractitionerHandler
	Product      *handler.ProductHandler
	Receipt      *handler.ReceiptHandler
	CarePlan     *handler.CarePlanHandler
	User         *handler.UserHandler
	Printer      *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager  *utils.JWTManager
	Cfg         *config.Config
	Idempotency *middleware.IdempotencyStore
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Profile routes
	protected.GET("/profile", h.Auth.Me)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Patients
	registerPatientRoutes(protected, h)

	// Practitioners and clinics
	registerPractitionerRoutes(protected, h)

	// Catalog
	registerProductRoutes(protected, h)

	// Receipts
	registerReceiptRoutes(protected, h, deps)

	// Care plans
	registerCarePlanRoutes(protected, h)

	// Users (Admin)
	registerUserRoutes(protected, h)

	// Printer
	registerPrinterRoutes(protected, h)
}

func registerPatientRoutes(protected *gin.RouterGroup, h *Handlers) {
	patients := protected.Group("/pacientes")
	{
		patients.GET("", h.Patient.List)
		patients.POST("", h.Patient.Create)
		patients.GET("/buscar", h.Patient.Search)
		patients.GET("/recientes", h.Patient.Recent)
		patients.GET("/:id", h.Patient.Get)
		patients.PUT("/:id", h.Patient.Update)
		patients.GET("/:id/recibos", h.Receipt.ListByPatient)
		patients.GET("/:id/saldo", h.Receipt.PatientDebt)
		patients.GET("/:id/planes", h.CarePlan.ListByPatient)
		patients.GET("/:id/planes/activo", h.CarePlan.ActiveByPatient)
	}
}

func registerPractitionerRoutes(protected *gin.RouterGroup, h *Handlers) {
	practitioners := protected.Group("/doctores")
	{
		practitioners.GET("", h.Practitioner.List)
		practitioners.GET("/:id", h.Practitioner.Get)
	}
	protected.GET("/centros", h.Practitioner.Clinics)
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/productos")
	{
		products.GET("", h.Product.List)
		products.GET("/vendibles", h.Product.Sellable)
		products.GET("/:id", h.Product.Get)

		admin := products.Group("")
		admin.Use(middleware.RequireRole(string(enum.UserRoleAdmin)))
		{
			admin.POST("", h.Product.Create)
			admin.PUT("/:id", h.Product.Update)
			admin.POST("/:id/stock", h.Product.AddStock)
			admin.DELETE("/:id", h.Product.Deactivate)
		}
	}
}

func registerReceiptRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	receipts := protected.Group("/recibos")
	{
		receipts.GET("", h.Receipt.List)
		// Receipt submission uses idempotency middleware to prevent duplicates
		receipts.POST("", deps.Idempotency.Middleware(), h.Receipt.Submit)
		receipts.GET("/:id", h.Receipt.Get)
		receipts.GET("/:id/pdf", h.Receipt.PDF)
		receipts.POST("/:id/abonos", h.Receipt.RegisterInstallment)
	}
}

func registerCarePlanRoutes(protected *gin.RouterGroup, h *Handlers) {
	plans := protected.Group("/planes")
	{
		plans.POST("", h.CarePlan.Create)
		plans.POST("/cotizar", h.CarePlan.Quote)
		plans.GET("/:id", h.CarePlan.Get)
		plans.DELETE("/:id", h.CarePlan.Delete)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequireRole(string(enum.UserRoleAdmin)))
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id/role", h.User.UpdateRole)
		users.PUT("/:id/practitioner", h.User.LinkPractitioner)
		users.DELETE("/:id", h.User.Delete)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.Status)
		printerGroup.POST("/test", h.Printer.Test)
		printerGroup.POST("/recibos/:id", h.Printer.PrintReceipt)
	}
}
