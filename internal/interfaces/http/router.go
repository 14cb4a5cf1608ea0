package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/warehouse-pro/internal/application/auth"
	"github.com/tu-usuario/warehouse-pro/internal/application/inventory"
	"github.com/tu-usuario/warehouse-pro/internal/application/usecase"
	"github.com/tu-usuario/warehouse-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CompanyUC   *usecase.CompanyUseCase
	CatalogUC   *usecase.CatalogUseCase
	DocumentUC  *inventory.DocumentUseCase
	ConfirmUC   *inventory.ConfirmDocumentUseCase
	LifecycleUC *inventory.LifecycleUseCase
	LotUC       *inventory.LotUseCase
	StockUC     *inventory.StockUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (alta pública para onboarding; listado solo superadmin)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleSuperadmin), companyHandler.List)
	companies.Get("/:id", AuthMiddleware(deps.JWTSecret), companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token; ligan la empresa al contexto)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Items y bodegas
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	items := protected.Group("/items")
	items.Post("/", RequireRole(entity.RoleAdmin, entity.RoleSuperadmin), catalogHandler.CreateItem)
	items.Get("/", catalogHandler.ListItems)
	items.Get("/:id", catalogHandler.GetItem)

	warehouses := protected.Group("/warehouses")
	warehouses.Post("/", RequireRole(entity.RoleAdmin, entity.RoleSuperadmin), catalogHandler.CreateWarehouse)
	warehouses.Get("/", catalogHandler.ListWarehouses)

	// Documentos y confirmación
	documents := protected.Group("/documents")
	documentHandler := NewDocumentHandler(deps.DocumentUC, deps.ConfirmUC)
	documents.Post("/", documentHandler.Create)
	documents.Get("/", documentHandler.List)
	documents.Get("/:id", documentHandler.GetByID)
	documents.Post("/:id/confirm", documentHandler.Confirm)
	documents.Post("/:id/cancel", documentHandler.Cancel)

	// Ciclo de inventario físico
	inventories := protected.Group("/inventories")
	inventoryHandler := NewInventoryHandler(deps.LifecycleUC)
	inventories.Post("/", inventoryHandler.Create)
	inventories.Get("/", inventoryHandler.List)
	inventories.Get("/:id", inventoryHandler.GetByID)
	inventories.Post("/:id/freeze", inventoryHandler.Freeze)
	inventories.Post("/:id/counts", inventoryHandler.RecordCounts)
	inventories.Post("/:id/approve", inventoryHandler.Approve)
	inventories.Post("/:id/close", inventoryHandler.Close)

	// Lotes y seriales
	lotHandler := NewLotHandler(deps.LotUC)
	lots := protected.Group("/lots")
	lots.Post("/", lotHandler.RegisterLot)
	lots.Get("/", lotHandler.List)
	lots.Get("/expiring", lotHandler.ListExpiring)
	lots.Post("/:id/block", lotHandler.Block)
	lots.Post("/:id/unblock", lotHandler.Unblock)
	lots.Post("/:id/dispose", lotHandler.Dispose)
	protected.Post("/serials", lotHandler.RegisterSerial)

	// Stock derivado del ledger
	stockHandler := NewStockHandler(deps.StockUC)
	stock := protected.Group("/stock")
	stock.Get("/on-hand", stockHandler.OnHand)
	stock.Get("/next-batch", stockHandler.NextBatch)
	items.Get("/:id/movements", stockHandler.ItemMovements)
}
