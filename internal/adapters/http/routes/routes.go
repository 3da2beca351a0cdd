package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/webdrave/funds-backend/internal/adapters/http/handlers"
	"github.com/webdrave/funds-backend/internal/adapters/http/middleware"
	"github.com/webdrave/funds-backend/internal/adapters/persistence/repositories"
	"github.com/webdrave/funds-backend/internal/config"
	"github.com/webdrave/funds-backend/internal/core/services"
	"github.com/webdrave/funds-backend/internal/pkg/mailer"
	"github.com/webdrave/funds-backend/internal/pkg/storage"
)

// Setup wires repositories, services and handlers onto the app and
// returns the reminder service so its scheduler can be managed by the
// caller.
func Setup(
	app *fiber.App,
	db *gorm.DB,
	cfg *config.Config,
	log *zap.Logger,
	mail mailer.Mailer,
	store storage.Storage,
) *services.ReminderService {
	// Repositories
	adminRepo := repositories.NewAdminRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	templateRepo := repositories.NewTemplateRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	commissionRepo := repositories.NewCommissionRepository(db)
	withdrawalRepo := repositories.NewWithdrawalRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	messageRepo := repositories.NewMessageRepository(db)
	planRepo := repositories.NewPlanRepository(db)
	bankRepo := repositories.NewBankRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)
	issueRepo := repositories.NewIssueRepository(db)

	// Services
	notifyService := services.NewNotificationService(notificationRepo, adminRepo, mail, log)
	adminService := services.NewAdminService(adminRepo, planRepo, bankRepo, refreshTokenRepo, cfg, mail, log)
	templateService := services.NewTemplateService(templateRepo)
	loanService := services.NewLoanService(loanRepo, templateRepo, messageRepo, notifyService)
	commissionService := services.NewCommissionService(commissionRepo, loanRepo, adminRepo)
	withdrawalService := services.NewWithdrawalService(withdrawalRepo, adminRepo, notifyService)
	chatService := services.NewChatService(messageRepo, loanRepo, adminRepo)
	planService := services.NewPlanService(planRepo)
	applicationService := services.NewApplicationService(applicationRepo, issueRepo)
	analyticsService := services.NewAnalyticsService(db)
	reminderService := services.NewReminderService(loanRepo, withdrawalRepo, adminRepo, refreshTokenRepo, notifyService, log)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(adminService)
	adminHandler := handlers.NewAdminHandler(adminService)
	templateHandler := handlers.NewTemplateHandler(templateService)
	loanHandler := handlers.NewLoanHandler(loanService)
	commissionHandler := handlers.NewCommissionHandler(commissionService)
	withdrawalHandler := handlers.NewWithdrawalHandler(withdrawalService)
	notificationHandler := handlers.NewNotificationHandler(notifyService)
	chatHandler := handlers.NewChatHandler(chatService)
	planHandler := handlers.NewPlanHandler(planService)
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	uploadHandler := handlers.NewUploadHandler(store)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")

	// Auth routes (public, rate limited)
	authRoutes := api.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Public contact form
	api.Post("/applications", applicationHandler.Submit)

	// Everything below requires authentication
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	adminRoutes := protected.Group("/admins")
	setupAdminRoutes(adminRoutes, adminHandler)

	templateRoutes := protected.Group("/templates")
	setupTemplateRoutes(templateRoutes, templateHandler)

	loanRoutes := protected.Group("/loans")
	setupLoanRoutes(loanRoutes, loanHandler, chatHandler)

	commissionRoutes := protected.Group("/commissions")
	setupCommissionRoutes(commissionRoutes, commissionHandler)

	withdrawalRoutes := protected.Group("/withdrawals")
	setupWithdrawalRoutes(withdrawalRoutes, withdrawalHandler)

	notificationRoutes := protected.Group("/notifications")
	setupNotificationRoutes(notificationRoutes, notificationHandler)

	planRoutes := protected.Group("/plans")
	setupPlanRoutes(planRoutes, planHandler)

	// Application management (RM/superadmin)
	protected.Get("/applications", middleware.RMOrSuperadmin(), applicationHandler.List)
	protected.Put("/applications/:id/status", middleware.RMOrSuperadmin(), applicationHandler.UpdateStatus)

	// Support issues
	protected.Post("/issues", applicationHandler.ReportIssue)
	protected.Get("/issues", applicationHandler.ListIssues)

	// Analytics (RM/superadmin)
	analyticsRoutes := protected.Group("/analytics", middleware.RMOrSuperadmin())
	setupAnalyticsRoutes(analyticsRoutes, analyticsHandler)

	// Uploads
	protected.Post("/uploads", uploadHandler.Upload)

	return reminderService
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", middleware.AuthRateLimiter(), handler.Refresh)
	router.Post("/logout", handler.Logout)
	router.Post("/forgot-password", middleware.StrictRateLimiter(), handler.ForgotPassword)
	router.Post("/reset-password", middleware.StrictRateLimiter(), handler.ResetPassword)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
}

// setupAdminRoutes configures admin account routes
func setupAdminRoutes(router fiber.Router, handler *handlers.AdminHandler) {
	router.Post("/", handler.Create)
	router.Get("/", middleware.RMOrSuperadmin(), handler.List)
	router.Get("/:id", handler.Get)
	router.Put("/:id", handler.Update)
	router.Put("/:id/bank", handler.UpdateBank)
	router.Delete("/:id", middleware.SuperadminOnly(), handler.Delete)
}

// setupTemplateRoutes configures loan form template routes
func setupTemplateRoutes(router fiber.Router, handler *handlers.TemplateHandler) {
	router.Get("/", handler.List)
	router.Get("/by-name/:name", handler.GetByName)
	router.Get("/:id", handler.Get)

	router.Post("/", middleware.RMOrSuperadmin(), handler.Create)
	router.Put("/:id", middleware.RMOrSuperadmin(), handler.Update)
	router.Delete("/:id", middleware.SuperadminOnly(), handler.Delete)
}

// setupLoanRoutes configures loan application routes, including the
// per-loan chat thread.
func setupLoanRoutes(router fiber.Router, handler *handlers.LoanHandler, chatHandler *handlers.ChatHandler) {
	router.Post("/", handler.Create)
	router.Get("/", handler.List)
	router.Get("/pending-count", middleware.RMOrSuperadmin(), handler.PendingCount)
	router.Get("/stats", middleware.RMOrSuperadmin(), handler.Stats)
	router.Get("/:id", handler.Get)
	router.Put("/:id/status", middleware.RMOrSuperadmin(), handler.UpdateStatus)
	router.Delete("/:id", middleware.SuperadminOnly(), handler.Delete)

	// Chat thread
	router.Post("/:id/messages", chatHandler.Post)
	router.Get("/:id/messages", chatHandler.List)
	router.Put("/:id/messages/read", chatHandler.MarkRead)
	router.Get("/:id/messages/unread-count", chatHandler.UnreadCount)
}

// setupCommissionRoutes configures commission routes
func setupCommissionRoutes(router fiber.Router, handler *handlers.CommissionHandler) {
	router.Post("/", middleware.RMOrSuperadmin(), handler.Create)
	router.Put("/:id", middleware.RMOrSuperadmin(), handler.Update)
	router.Get("/", handler.List)
	router.Get("/summary/:id", handler.Summary)
}

// setupWithdrawalRoutes configures withdraw request routes
func setupWithdrawalRoutes(router fiber.Router, handler *handlers.WithdrawalHandler) {
	router.Post("/", handler.Create)
	router.Get("/", handler.List)
	router.Put("/:id/status", middleware.RMOrSuperadmin(), handler.UpdateStatus)
}

// setupNotificationRoutes configures notification routes
func setupNotificationRoutes(router fiber.Router, handler *handlers.NotificationHandler) {
	router.Get("/", handler.List)
	router.Put("/:id/read", handler.MarkRead)
	router.Put("/read-all", handler.MarkAllRead)
	router.Delete("/:id", handler.Delete)
}

// setupPlanRoutes configures subscription plan routes
func setupPlanRoutes(router fiber.Router, handler *handlers.PlanHandler) {
	router.Get("/", handler.List)
	router.Get("/:id", handler.Get)

	router.Post("/", middleware.SuperadminOnly(), handler.Create)
	router.Put("/:id", middleware.SuperadminOnly(), handler.Update)
	router.Put("/:id/active", middleware.SuperadminOnly(), handler.SetActive)
	router.Delete("/:id", middleware.SuperadminOnly(), handler.Delete)
}

// setupAnalyticsRoutes configures dashboard analytics routes
func setupAnalyticsRoutes(router fiber.Router, handler *handlers.AnalyticsHandler) {
	router.Get("/overview", handler.Overview)
	router.Get("/dsa-activity", handler.DsaActivity)
	router.Get("/plan-popularity", handler.PlanPopularity)
}
