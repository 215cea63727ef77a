package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Cotizador-api/internal/application/analytics"
	"github.com/jhoicas/Cotizador-api/internal/application/auth"
	"github.com/jhoicas/Cotizador-api/internal/application/joborder"
	"github.com/jhoicas/Cotizador-api/internal/application/payment"
	"github.com/jhoicas/Cotizador-api/internal/application/pricing"
	"github.com/jhoicas/Cotizador-api/internal/application/quotation"
	"github.com/jhoicas/Cotizador-api/internal/application/salesorder"
	"github.com/jhoicas/Cotizador-api/internal/application/usecase"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	CompanyUC    *usecase.CompanyUseCase
	CustomerUC   *usecase.CustomerUseCase
	ProductUC    *usecase.ProductUseCase
	PricingUC    *pricing.UseCase
	QuotationUC  *quotation.UseCase
	SalesOrderUC *salesorder.UseCase
	JobOrderUC   *joborder.UseCase
	PaymentUC    *payment.UseCase
	DashboardUC  *appanalytics.DashboardUseCase
	JWTSecret    string
	JWTIssuer    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público: el registro necesita una empresa existente)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
	sales := RequireRole(entity.RoleAdmin, entity.RoleVentas)
	production := RequireRole(entity.RoleAdmin, entity.RoleProduccion)

	// Usuarios: solo un admin crea usuarios con rol o cambia roles
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.AuthUC)
	users.Post("/", userHandler.Create)
	users.Patch("/:id/role", userHandler.UpdateRole)

	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Post("/", sales, customerHandler.Create)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", RequireRole(entity.RoleAdmin), productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequireRole(entity.RoleAdmin), productHandler.Update)

	// Precios
	pricingHandler := NewPricingHandler(deps.PricingUC)
	protected.Get("/price-lists", pricingHandler.ListPriceLists)
	protected.Post("/price-lists", RequireRole(entity.RoleAdmin), pricingHandler.CreatePriceList)
	protected.Post("/pricing/resolve", pricingHandler.Resolve)
	protected.Post("/pricing/calculate", pricingHandler.Calculate)

	// Cotizaciones
	quotations := protected.Group("/quotations")
	quotationHandler := NewQuotationHandler(deps.QuotationUC)
	salesOrderHandler := NewSalesOrderHandler(deps.SalesOrderUC)
	quotations.Get("/", quotationHandler.List)
	quotations.Post("/", sales, quotationHandler.Create)
	quotations.Get("/:id", quotationHandler.Get)
	quotations.Put("/:id", sales, quotationHandler.Revise)
	quotations.Post("/:id/duplicate", sales, quotationHandler.Duplicate)
	quotations.Patch("/:id/status", sales, quotationHandler.UpdateStatus)
	quotations.Get("/:id/pdf", quotationHandler.PDF)
	quotations.Post("/:id/convert", sales, salesOrderHandler.Convert)

	// Órdenes de venta
	orders := protected.Group("/sales-orders")
	orders.Get("/", salesOrderHandler.List)
	orders.Post("/", sales, salesOrderHandler.Create)
	orders.Get("/:id", salesOrderHandler.Get)
	orders.Patch("/:id/status", sales, salesOrderHandler.UpdateStatus)
	orders.Get("/:id/pdf", salesOrderHandler.PDF)

	// Cobros
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	orders.Get("/:id/payments", paymentHandler.List)
	orders.Post("/:id/payments", sales, paymentHandler.Record)
	orders.Post("/:id/payments/:paymentId/refund", RequireRole(entity.RoleAdmin), paymentHandler.Refund)

	// Producción
	jobs := protected.Group("/job-orders")
	jobOrderHandler := NewJobOrderHandler(deps.JobOrderUC)
	jobs.Get("/", jobOrderHandler.List)
	jobs.Post("/", production, jobOrderHandler.Create)
	jobs.Get("/:id", jobOrderHandler.Get)
	jobs.Post("/:id/shipments", production, jobOrderHandler.RecordShipment)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)
}
