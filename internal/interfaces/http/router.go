package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/beneflow/beneflow-api/internal/application/auth"
	"github.com/beneflow/beneflow-api/internal/application/financer"
	"github.com/beneflow/beneflow-api/internal/application/invoicing"
	"github.com/beneflow/beneflow-api/internal/application/metrics"
	"github.com/beneflow/beneflow-api/internal/application/usecase"
	"github.com/beneflow/beneflow-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	FinancerUC     *financer.FinancerUseCase
	UpdateFinancer *financer.UpdateFinancerUseCase
	ModuleUC       *usecase.ModuleUseCase
	DivisionUC     *usecase.DivisionUseCase
	MetricsUC      *metrics.MetricsUseCase
	PreviewUC      *invoicing.PreviewUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	manage := RequireRole(entity.RoleAdmin, entity.RoleDivisionManager)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Financers (protegido; escrituras solo admin/division_manager)
	financers := protected.Group("/financers")
	financerHandler := NewFinancerHandler(deps.FinancerUC, deps.UpdateFinancer)
	billingHandler := NewBillingHandler(deps.MetricsUC, deps.PreviewUC)
	financers.Get("/", financerHandler.List)
	financers.Post("/", manage, financerHandler.Create)
	financers.Get("/:id", financerHandler.GetByID)
	financers.Put("/:id", manage, financerHandler.Update)
	financers.Delete("/:id", manage, financerHandler.Delete)
	financers.Put("/:id/toggle-active", manage, financerHandler.ToggleActive)
	financers.Put("/:id/core-price", manage, financerHandler.SetCorePrice)
	financers.Get("/:id/modules", financerHandler.GetModules)
	financers.Put("/:id/modules", manage, financerHandler.UpdateModules)
	financers.Get("/:id/pricing-history", financerHandler.PricingHistory)
	financers.Get("/:id/metrics", billingHandler.Metrics)
	financers.Get("/:id/invoice-preview", billingHandler.InvoicePreview)

	// Catálogo de módulos (lectura para todos; gestión solo admin)
	modules := protected.Group("/modules")
	moduleHandler := NewModuleHandler(deps.ModuleUC)
	modules.Get("/", moduleHandler.List)
	modules.Post("/", adminOnly, moduleHandler.Create)
	modules.Post("/activate-for-division", manage, moduleHandler.ActivateForDivision)
	modules.Post("/deactivate-for-division", manage, moduleHandler.DeactivateForDivision)
	modules.Get("/:id", moduleHandler.GetByID)
	modules.Put("/:id", adminOnly, moduleHandler.Update)
	modules.Delete("/:id", adminOnly, moduleHandler.Delete)

	// Divisiones (protegido, solo lectura)
	divisions := protected.Group("/divisions")
	divisionHandler := NewDivisionHandler(deps.DivisionUC)
	divisions.Get("/", divisionHandler.List)
	divisions.Get("/:id", divisionHandler.GetByID)
}
