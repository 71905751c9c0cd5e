package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Compras-api/internal/application/inventory"
	"github.com/jhoicas/Compras-api/internal/application/purchasing"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RegisterMovement *inventory.RegisterMovementUseCase
	Kardex           *inventory.KardexUseCase
	CreateOrder      *purchasing.CreateOrderUseCase
	OrderStatus      *purchasing.OrderStatusUseCase
	ReceiveOrder     *purchasing.ReceiveOrderUseCase
	PurchasingQuery  *purchasing.QueryUseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Inventory movements y kardex (protegido). Solo bodega toca el stock.
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.Kardex)
	invGroup.Post("/movements", RequireRole(RoleAdmin, RoleBodeguero), inventoryHandler.RegisterMovement)
	invGroup.Get("/kardex/:product_id", inventoryHandler.GetKardex)
	invGroup.Get("/warehouse-kardex/:warehouse_id", inventoryHandler.GetWarehouseKardex)
	invGroup.Get("/stock", inventoryHandler.GetStock)
	invGroup.Get("/stock/consistency", inventoryHandler.CheckConsistency)

	// Purchase orders (protegido). Compras gestiona el ciclo de la orden;
	// bodega registra las recepciones.
	orders := protected.Group("/purchase-orders")
	purchasingHandler := NewPurchasingHandler(deps.CreateOrder, deps.OrderStatus, deps.ReceiveOrder, deps.PurchasingQuery)
	orders.Post("/", RequireRole(RoleAdmin, RoleComprador), purchasingHandler.CreateOrder)
	orders.Get("/", purchasingHandler.ListOrders)
	orders.Get("/:id", purchasingHandler.GetOrder)
	orders.Patch("/:id/status", RequireRole(RoleAdmin, RoleComprador), purchasingHandler.UpdateStatus)
	orders.Post("/:id/cancel", RequireRole(RoleAdmin, RoleComprador), purchasingHandler.CancelOrder)
	orders.Post("/:id/receipts", RequireRole(RoleAdmin, RoleBodeguero), purchasingHandler.ReceiveOrder)
	orders.Get("/:id/receipts", purchasingHandler.ListReceipts)

	// Costos por proyecto (protegido)
	projects := protected.Group("/projects")
	projects.Get("/:project_id/costs", purchasingHandler.GetProjectCosts)
}
