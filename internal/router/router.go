package router

import (
	"clubsphere_backend/internal/database"
	"clubsphere_backend/internal/handlers"
	"clubsphere_backend/internal/identity"
	"clubsphere_backend/internal/middleware"
	"clubsphere_backend/internal/payments"
	"clubsphere_backend/internal/repositories"
	"clubsphere_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Dependencies are the process-wide resources the routes are built on.
type Dependencies struct {
	DB       *database.DB
	Verifier identity.Verifier
	Payments payments.Provider
	Checkout services.PaymentSettings
}

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, deps Dependencies) {
	// Repositories
	memberRepo := repositories.NewMemberRepository(deps.DB)
	clubRequestRepo := repositories.NewClubRequestRepository(deps.DB)
	managerRequestRepo := repositories.NewManagerRequestRepository(deps.DB)
	clubRepo := repositories.NewClubRepository(deps.DB)
	paymentRepo := repositories.NewPaymentRepository(deps.DB)
	eventRepo := repositories.NewEventRepository(deps.DB)
	registrationRepo := repositories.NewRegistrationRepository(deps.DB)

	// Services
	memberService := services.NewMemberService(memberRepo)
	managerRequestService := services.NewManagerRequestService(managerRequestRepo, memberRepo, deps.DB)
	clubService := services.NewClubService(clubRequestRepo, clubRepo, deps.DB)
	paymentService := services.NewPaymentService(clubRepo, paymentRepo, deps.Payments, deps.Checkout)
	eventService := services.NewEventService(eventRepo, registrationRepo, clubRepo, paymentRepo)
	reportService := services.NewReportService(services.ReportRepositories{
		Members:       memberRepo,
		ClubRequests:  clubRequestRepo,
		Clubs:         clubRepo,
		Payments:      paymentRepo,
		Events:        eventRepo,
		Registrations: registrationRepo,
	})

	// Handlers
	healthHandler := handlers.NewHealthHandler(deps.DB)
	memberHandler := handlers.NewMemberHandler(memberService)
	managerRequestHandler := handlers.NewManagerRequestHandler(managerRequestService)
	clubHandler := handlers.NewClubHandler(clubService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	eventHandler := handlers.NewEventHandler(eventService)
	reportHandler := handlers.NewReportHandler(reportService)

	auth := Guards{
		Authenticated: middleware.AuthMiddleware(deps.Verifier),
		Roles:         memberService,
	}

	SetupHealthRoutes(engine, healthHandler)

	root := engine.Group("")
	SetupMemberRoutes(root, memberHandler, auth)
	SetupClubRoutes(root, clubHandler, auth)
	SetupManagerRequestRoutes(root, managerRequestHandler)
	SetupPaymentRoutes(root, paymentHandler, auth)
	SetupEventRoutes(root, eventHandler, auth)
	SetupReportRoutes(root, reportHandler)
}
