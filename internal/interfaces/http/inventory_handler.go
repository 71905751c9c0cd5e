package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP de movimientos, kardex y saldos (protegido).
type InventoryHandler struct {
	movements *inventory.RegisterMovementUseCase
	kardex    *inventory.KardexUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(movements *inventory.RegisterMovementUseCase, kardex *inventory.KardexUseCase) *InventoryHandler {
	return &InventoryHandler{movements: movements, kardex: kardex}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, warehouse_id (o from/to para TRANSFER), type, direction (ADJUSTMENT), quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.movements.RegisterMovement(c.Context(), inventory.MovementInputDTO{
		CompanyID:       companyID,
		UserID:          userID,
		ProductID:       in.ProductID,
		WarehouseID:     in.WarehouseID,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Type:            in.Type,
		Direction:       in.Direction,
		Quantity:        in.Quantity,
		ProjectID:       in.ProjectID,
		Description:     in.Description,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{
		ID:          mov.ID,
		ProductID:   mov.ProductID,
		WarehouseID: mov.WarehouseID,
		Type:        mov.Type,
		Direction:   mov.Direction,
		Quantity:    mov.Quantity,
		ProjectID:   mov.ProjectID,
		Reference:   mov.Reference,
		Description: mov.Description,
		Date:        mov.Date,
		CreatedBy:   mov.CreatedBy,
	})
}

// GetKardex godoc
// @Summary      Kardex de un producto
// @Description  Historial de movimientos del producto, del más reciente al más antiguo.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  path   string  true   "Producto (UUID)"
// @Param        limit       query  int     false  "Máximo de filas (default 20)"
// @Param        offset      query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/kardex/{product_id} [get]
func (h *InventoryHandler) GetKardex(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	movements, err := h.kardex.GetKardex(c.Context(), companyID, c.Params("product_id"), nil, nil, page)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"total": len(movements), "movements": movements})
}

// GetWarehouseKardex godoc
// @Summary      Kardex de una bodega
// @Description  Movimientos de todos los productos en la bodega, del más reciente al más antiguo.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  path   string  true   "Bodega (UUID)"
// @Param        limit         query  int     false  "Máximo de filas (default 20)"
// @Param        offset        query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/inventory/warehouse-kardex/{warehouse_id} [get]
func (h *InventoryHandler) GetWarehouseKardex(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	movements, err := h.kardex.GetWarehouseKardex(c.Context(), companyID, c.Params("warehouse_id"), nil, nil, page)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"total": len(movements), "movements": movements})
}

// GetStock godoc
// @Summary      Saldo actual de un producto en una bodega
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  true  "Producto (UUID)"
// @Param        warehouse_id  query  string  true  "Bodega (UUID)"
// @Success      200  {object}  dto.StockResponse
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	warehouseID := c.Query("warehouse_id")
	if productID == "" || warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y warehouse_id son obligatorios"})
	}
	quantity, err := h.kardex.GetStock(c.Context(), productID, warehouseID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.StockResponse{ProductID: productID, WarehouseID: warehouseID, Quantity: quantity})
}

// CheckConsistency godoc
// @Summary      Contrastar saldo almacenado contra la suma del kardex
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  true  "Producto (UUID)"
// @Param        warehouse_id  query  string  true  "Bodega (UUID)"
// @Success      200  {object}  dto.ConsistencyResponse
// @Router       /api/inventory/stock/consistency [get]
func (h *InventoryHandler) CheckConsistency(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	warehouseID := c.Query("warehouse_id")
	if productID == "" || warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y warehouse_id son obligatorios"})
	}
	result, err := h.kardex.CheckConsistency(c.Context(), productID, warehouseID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(result)
}
