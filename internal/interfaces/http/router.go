package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/agrocampo/agrocampo-api/internal/application/analytics"
	"github.com/agrocampo/agrocampo-api/internal/application/auth"
	"github.com/agrocampo/agrocampo-api/internal/application/inventory"
	"github.com/agrocampo/agrocampo-api/internal/application/usecase"
	"github.com/agrocampo/agrocampo-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	WarehouseUC *usecase.WarehouseUseCase
	LedgerUC    *inventory.LedgerUseCase
	DashboardUC *appanalytics.DashboardUseCase
	ReportUC    *appanalytics.ReportUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
//
// RBAC: los tres roles consultan; agronomo y bodeguero registran movimientos y
// ajustes; solo admin administra bodegas, crea/elimina insumos y descarga
// reportes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	allRoles := []string{entity.RoleAdmin, entity.RoleAgronomo, entity.RoleBodeguero}

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Warehouses (protegido; escritura solo admin)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", RequireRole(entity.RoleAdmin), warehouseHandler.Create)
	warehouses.Get("/", RequireRole(allRoles...), warehouseHandler.List)
	warehouses.Get("/:id", RequireRole(allRoles...), warehouseHandler.GetByID)
	warehouses.Put("/:id", RequireRole(entity.RoleAdmin), warehouseHandler.Update)
	warehouses.Delete("/:id", RequireRole(entity.RoleAdmin), warehouseHandler.Delete)

	// Inventario: insumos y movimientos (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC)
	invGroup.Post("/items", RequireRole(entity.RoleAdmin), inventoryHandler.CreateItem)
	invGroup.Get("/items", RequireRole(allRoles...), inventoryHandler.ListItems)
	invGroup.Get("/items/:id", RequireRole(allRoles...), inventoryHandler.GetItem)
	invGroup.Delete("/items/:id", RequireRole(entity.RoleAdmin), inventoryHandler.DeleteItem)
	invGroup.Post("/items/:id/movements", RequireRole(allRoles...), inventoryHandler.RegisterMovement)
	invGroup.Get("/items/:id/movements", RequireRole(allRoles...), inventoryHandler.GetHistory)
	invGroup.Post("/items/:id/reconcile", RequireRole(allRoles...), inventoryHandler.Reconcile)
	invGroup.Get("/items/:id/replay", RequireRole(allRoles...), inventoryHandler.VerifyReplay)
	invGroup.Get("/items/:id/suppliers", RequireRole(allRoles...), inventoryHandler.CompareSuppliers)

	// Analytics (protegido, solo lectura)
	analyticsGroup := protected.Group("/analytics")
	analyticsHandler := NewAnalyticsHandler(deps.DashboardUC)
	analyticsGroup.Get("/summary", RequireRole(allRoles...), analyticsHandler.GetSummary)
	analyticsGroup.Get("/abc", RequireRole(allRoles...), analyticsHandler.GetABC)

	// Reportes PDF (protegido, solo admin)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/valuation/:warehouse_id", RequireRole(entity.RoleAdmin), reportHandler.DownloadValuation)
}
