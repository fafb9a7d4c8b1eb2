package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// HealthCheck sonda de una dependencia (BD, broker). nil es sano.
type HealthCheck func(ctx context.Context) error

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC    *usecase.ProductUseCase
	WarehouseUC  *usecase.WarehouseUseCase
	Ledger       *inventory.LedgerUseCase
	Serials      *inventory.SerialUseCase
	Transfers    *inventory.TransferUseCase
	Adjustments  *inventory.AdjustmentUseCase
	HealthChecks map[string]HealthCheck
	JWTSecret    string
	Log          *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	app.Get("/health", healthHandler(deps.HealthChecks))

	api := app.Group("/api")
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	operators := RequireRole(RoleAdmin, RoleBodeguero)
	reviewers := RequireRole(RoleAdmin, RoleAuditor)
	anyRole := RequireRole(RoleAdmin, RoleBodeguero, RoleAuditor)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, log)
	products.Post("/", RequireRole(RoleAdmin), productHandler.Create)
	products.Get("/", anyRole, productHandler.List)
	products.Get("/:id", anyRole, productHandler.GetByID)
	products.Put("/:id", RequireRole(RoleAdmin), productHandler.Update)

	// Warehouses
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC, log)
	serialHandler := NewSerialHandler(deps.Serials, log)
	warehouses.Post("/", RequireRole(RoleAdmin), warehouseHandler.Create)
	warehouses.Get("/", anyRole, warehouseHandler.List)
	warehouses.Get("/:id", anyRole, warehouseHandler.GetByID)
	warehouses.Post("/:id/activate", RequireRole(RoleAdmin), warehouseHandler.Activate)
	warehouses.Post("/:id/deactivate", RequireRole(RoleAdmin), warehouseHandler.Deactivate)
	warehouses.Get("/:id/serial-units", anyRole, serialHandler.ListByWarehouse)

	// Libro y stock
	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger, log)
	inv.Post("/movements", operators, inventoryHandler.AppendMovement)
	inv.Get("/movements", anyRole, inventoryHandler.History)
	inv.Get("/stock/:product_id/:warehouse_id", anyRole, inventoryHandler.GetStock)
	inv.Post("/stock/:product_id/:warehouse_id/reconcile", RequireRole(RoleAdmin), inventoryHandler.Reconcile)

	// Serial units
	serials := protected.Group("/serial-units")
	serials.Post("/", operators, serialHandler.Receive)
	serials.Get("/:id_or_code", anyRole, serialHandler.Lookup)
	serials.Post("/:id/transition", operators, serialHandler.Transition)

	// Transfers
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.Transfers, log)
	transfers.Post("/", operators, transferHandler.Create)
	transfers.Get("/", anyRole, transferHandler.List)
	transfers.Get("/:id", anyRole, transferHandler.Get)
	transfers.Post("/:id/submit", operators, transferHandler.Submit)
	transfers.Post("/:id/dispatch", operators, transferHandler.Dispatch)
	transfers.Post("/:id/confirm", operators, transferHandler.Confirm)
	transfers.Post("/:id/cancel", operators, transferHandler.Cancel)

	// Adjustments
	adjustments := protected.Group("/adjustments")
	adjustmentHandler := NewAdjustmentHandler(deps.Adjustments, log)
	adjustments.Post("/", anyRole, adjustmentHandler.Create)
	adjustments.Get("/", anyRole, adjustmentHandler.List)
	adjustments.Get("/:id", anyRole, adjustmentHandler.Get)
	adjustments.Post("/:id/approve", reviewers, adjustmentHandler.Approve)
	adjustments.Post("/:id/reject", reviewers, adjustmentHandler.Reject)
}

func healthHandler(checks map[string]HealthCheck) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		status := fiber.Map{"status": "ok"}
		code := fiber.StatusOK
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status[name] = err.Error()
				status["status"] = "degraded"
				code = fiber.StatusServiceUnavailable
				continue
			}
			status[name] = "up"
		}
		return c.Status(code).JSON(status)
	}
}
