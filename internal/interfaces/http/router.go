package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/pos-restaurante/internal/application/inventory"
	"github.com/jhoicas/pos-restaurante/internal/application/orders"
	"github.com/jhoicas/pos-restaurante/internal/application/sales"
	"github.com/jhoicas/pos-restaurante/internal/application/tables"
	"github.com/jhoicas/pos-restaurante/internal/domain/entity"
	"github.com/jhoicas/pos-restaurante/internal/domain/repository"
)

// HeaderRequestID header de correlación de peticiones.
const HeaderRequestID = "X-Request-ID"

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Workflow     *orders.Workflow
	Tables       *tables.Registry
	Items        *inventory.ItemUseCase
	Ledger       *inventory.StockLedger
	Alerts       *inventory.AlertsUseCase
	Movements    *inventory.MovementHistory
	Sales        *sales.SummaryUseCase
	ActivityRepo repository.ActivityLogRepository
	JWTSecret    string
	Logger       zerolog.Logger
}

// Router registra las rutas de la API. Todas las rutas bajo /api requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", RequestID(), AuthMiddleware(deps.JWTSecret))
	if deps.ActivityRepo != nil {
		api.Use(ActivityMiddleware(deps.ActivityRepo, deps.Logger))
	}

	cashier := RequireRole(entity.RoleCashier, entity.RoleAdmin, entity.RoleSuperAdmin)
	kitchen := RequireRole(entity.RoleKitchen, entity.RoleAdmin, entity.RoleSuperAdmin)
	server := RequireRole(entity.RoleServer, entity.RoleAdmin, entity.RoleSuperAdmin)
	admin := RequireRole(entity.RoleAdmin, entity.RoleSuperAdmin)

	// Orders
	orderHandler := NewOrderHandler(deps.Workflow)
	ordersGroup := api.Group("/orders")
	ordersGroup.Post("/", cashier, orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Put("/:id", cashier, orderHandler.Update)
	ordersGroup.Patch("/:id/status", kitchen, orderHandler.UpdateStatus)
	ordersGroup.Post("/:id/void", cashier, orderHandler.Void)
	ordersGroup.Get("/:id/ticket", orderHandler.Ticket)

	// Tables
	tableHandler := NewTableHandler(deps.Tables)
	tablesGroup := api.Group("/tables")
	tablesGroup.Get("/", tableHandler.List)
	tablesGroup.Get("/:number", tableHandler.GetByNumber)
	tablesGroup.Put("/:number/status", server, tableHandler.SetStatus)
	tablesGroup.Post("/:number/toggle", server, tableHandler.Toggle)

	// Inventory
	invHandler := NewInventoryHandler(deps.Items, deps.Ledger, deps.Alerts, deps.Movements)
	inv := api.Group("/inventory")
	inv.Get("/items/search", invHandler.SearchItems)
	inv.Get("/pos-products", invHandler.POSProducts)
	inv.Get("/alerts", invHandler.Alerts)
	inv.Get("/items", invHandler.ListItems)
	inv.Post("/items", admin, invHandler.CreateItem)
	inv.Get("/items/:id", invHandler.GetItem)
	inv.Put("/items/:id", admin, invHandler.UpdateItem)
	inv.Delete("/items/:id", admin, invHandler.DeleteItem)
	inv.Get("/items/:id/batches", invHandler.ListBatches)
	inv.Get("/items/:id/movements", invHandler.ListMovements)
	inv.Post("/batches", admin, invHandler.AddBatch)
	inv.Delete("/batches/:id", admin, invHandler.DiscardBatch)

	// Sales
	salesHandler := NewSalesHandler(deps.Sales)
	salesGroup := api.Group("/sales", admin)
	salesGroup.Get("/summary", salesHandler.Summary)
	salesGroup.Get("/top-items", salesHandler.TopItems)
}

// RequestID propaga X-Request-ID o genera uno nuevo.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(HeaderRequestID, id)
		c.Locals("request_id", id)
		return c.Next()
	}
}
