package router

import (
	"github.com/gin-gonic/gin"

	"rxbill/internal/domain"
	"rxbill/internal/handler"
	"rxbill/internal/middleware"
	"rxbill/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	corsOrigins []string,
	authH *handler.AuthHandler,
	invoiceH *handler.InvoiceHandler,
	registrationH *handler.RegistrationHandler,
	productH *handler.ProductHandler,
	reportH *handler.ReportHandler,
	pharmacyH *handler.PharmacyHandler,
	userH *handler.UserHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Invoice lifecycle
	invoices := protected.Group("/invoices")
	invoices.POST("", invoiceH.Create)
	invoices.GET("", invoiceH.List)
	invoices.GET("/:id", invoiceH.Get)
	invoices.PUT("/:id", invoiceH.Update)
	invoices.GET("/:id/preview", invoiceH.Preview)
	invoices.POST("/:id/issue", invoiceH.Issue)
	invoices.POST("/:id/cancel", middleware.RequireRole(domain.RoleAdmin), invoiceH.Cancel)

	// GST registrations (admin manages; everyone reads)
	registrations := protected.Group("/registrations")
	registrations.POST("", middleware.RequireRole(domain.RoleAdmin), registrationH.Create)
	registrations.GET("", registrationH.List)
	registrations.GET("/:id", registrationH.Get)
	registrations.PUT("/:id", middleware.RequireRole(domain.RoleAdmin), registrationH.Update)

	// Catalogue
	products := protected.Group("/products")
	products.POST("", middleware.RequireRole(domain.RoleAdmin), productH.Create)
	products.GET("", productH.List)
	products.GET("/sku/:sku", productH.GetBySKU)
	products.GET("/:id", productH.Get)
	products.PUT("/:id", middleware.RequireRole(domain.RoleAdmin), productH.Update)

	// HSN master lookup
	protected.GET("/hsn", productH.SearchHSN)

	// Statutory reports
	protected.GET("/reports/gst", reportH.GSTSummary)

	// Own pharmacy record
	protected.GET("/pharmacy", pharmacyH.Get)
	protected.PUT("/pharmacy", middleware.RequireRole(domain.RoleAdmin), pharmacyH.Update)

	// User management (pharmacy-scoped)
	users := protected.Group("/users")
	users.POST("", middleware.RequireRole(domain.RoleAdmin), userH.Create)
	users.GET("", middleware.RequireRole(domain.RoleAdmin), userH.List)
	users.GET("/:id", userH.Get)
	users.PUT("/:id", userH.Update)
	users.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), userH.Delete)

	return r
}
