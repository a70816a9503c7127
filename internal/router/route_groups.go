package router

import (
	"clubsphere_backend/internal/handlers"
	"clubsphere_backend/internal/metrics"
	"clubsphere_backend/internal/middleware"
	"clubsphere_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// Guards bundles the bearer check with the role source used for
// authorization decisions.
type Guards struct {
	Authenticated gin.HandlerFunc
	Roles         middleware.RoleLookup
}

// Self allows the owner of the :param email or an admin.
func (g Guards) Self(param string) []gin.HandlerFunc {
	return []gin.HandlerFunc{g.Authenticated, middleware.RequireSelfOrAdmin(g.Roles, param)}
}

// Role allows callers holding one of roles.
func (g Guards) Role(roles ...string) []gin.HandlerFunc {
	return []gin.HandlerFunc{g.Authenticated, middleware.RoleAuthMiddleware(g.Roles, roles...)}
}

func chain(guards []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	return append(guards, h)
}

// SetupHealthRoutes sets up liveness, readiness and metrics routes.
func SetupHealthRoutes(engine *gin.Engine, h *handlers.HealthHandler) {
	engine.GET("/", h.Root)
	engine.GET("/ping", h.Ping)
	engine.GET("/healthz", h.Healthz)
	engine.GET("/metrics", metrics.Handler())
}

// SetupMemberRoutes sets up the member routes.
func SetupMemberRoutes(rg *gin.RouterGroup, h *handlers.MemberHandler, g Guards) {
	rg.POST("/users", h.RegisterMember)
	rg.GET("/users", chain(g.Role(models.RoleAdmin), h.ListMembers)...)
	rg.GET("/users/:email", chain(g.Self("email"), h.GetMember)...)
	rg.GET("/users/:email/role", h.GetRole)
}

// SetupClubRoutes sets up the club request and club routes.
func SetupClubRoutes(rg *gin.RouterGroup, h *handlers.ClubHandler, g Guards) {
	requests := rg.Group("/club-requests")
	{
		requests.POST("", h.SubmitClubRequest)
		requests.GET("", h.ListClubRequests)
		requests.PATCH("/approve/:id", h.ApproveClubRequest)
		requests.PATCH("/reject/:id", h.RejectClubRequest)
	}

	rg.GET("/clubs", h.ListClubs)
	rg.GET("/clubs/:id", h.GetClub)
	rg.GET("/email/:email", chain(g.Self("email"), h.ListClubsByManager)...)
}

// SetupManagerRequestRoutes sets up the club-manager request routes.
func SetupManagerRequestRoutes(rg *gin.RouterGroup, h *handlers.ManagerRequestHandler) {
	rg.POST("/club-manager-request", h.SubmitRequest)
	rg.GET("/club-manager-requests", h.ListRequests)

	review := rg.Group("/club-manager-request")
	{
		review.PATCH("/approve/:id", h.ApproveRequest)
		review.PATCH("/reject/:id", h.RejectRequest)
		review.PATCH("/make-admin/:id", h.MakeAdmin)
	}
}

// SetupPaymentRoutes sets up checkout and payment history routes.
func SetupPaymentRoutes(rg *gin.RouterGroup, h *handlers.PaymentHandler, g Guards) {
	rg.POST("/create-checkout-session", h.CreateCheckoutSession)
	rg.PATCH("/payment-success", h.PaymentSuccess)
	rg.GET("/customer-email/:email", chain(g.Self("email"), h.ListPaymentsByCustomer)...)
}

// SetupEventRoutes sets up event and registration routes.
func SetupEventRoutes(rg *gin.RouterGroup, h *handlers.EventHandler, g Guards) {
	rg.POST("/events", h.CreateEvent)
	rg.GET("/events", h.ListEvents)
	rg.POST("/event-registration", g.Authenticated, h.RegisterForEvent)
	rg.GET("/event-register-email/:email", chain(g.Self("email"), h.ListRegistrationsByEmail)...)
}

// SetupReportRoutes sets up the reporting routes.
func SetupReportRoutes(rg *gin.RouterGroup, h *handlers.ReportHandler) {
	rg.GET("/total-revenue", h.TotalRevenue)
	rg.GET("/admin-stats", h.AdminStats)
}
