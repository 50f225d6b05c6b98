package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/retail-backoffice/internal/application/restock"
	"github.com/tu-usuario/retail-backoffice/internal/application/scopesvc"
	"github.com/tu-usuario/retail-backoffice/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Executor  *restock.ExecuteRestockUseCase
	Validator *restock.Validator
	ScopeSvc  *scopesvc.Service
	InvRepo   repository.InventoryRepository
	AuditRepo repository.AuditLogRepository
	JWTSecret string
}

// Router registra las rutas de la API. Todas las rutas de negocio requieren
// Bearer Token; el scope del caller sale del token, nunca del body.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Restocks (protegido)
	restocks := protected.Group("/restocks")
	restockHandler := NewRestockHandler(deps.Executor, deps.Validator)
	restocks.Post("/", restockHandler.Execute)
	restocks.Post("/validate", restockHandler.Validate)

	// Scope (protegido)
	scopeGroup := protected.Group("/scope")
	scopeHandler := NewScopeHandler(deps.ScopeSvc)
	scopeGroup.Get("/tenants", scopeHandler.Tenants)
	scopeGroup.Get("/stores", scopeHandler.Stores)
	scopeGroup.Get("/capabilities", scopeHandler.Capabilities)

	// Inventory y bitácora (protegido)
	inventoryHandler := NewInventoryHandler(deps.InvRepo, deps.AuditRepo)
	invGroup := protected.Group("/inventory")
	invGroup.Get("/", inventoryHandler.List)
	invGroup.Get("/low-stock", inventoryHandler.LowStock)
	protected.Get("/audit-logs", inventoryHandler.AuditLogs)
}
