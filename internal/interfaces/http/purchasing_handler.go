package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/purchasing"
)

// PurchasingHandler maneja las peticiones HTTP de órdenes de compra y recepciones (protegido).
type PurchasingHandler struct {
	create  *purchasing.CreateOrderUseCase
	status  *purchasing.OrderStatusUseCase
	receive *purchasing.ReceiveOrderUseCase
	queries *purchasing.QueryUseCase
}

// NewPurchasingHandler construye el handler.
func NewPurchasingHandler(
	create *purchasing.CreateOrderUseCase,
	status *purchasing.OrderStatusUseCase,
	receive *purchasing.ReceiveOrderUseCase,
	queries *purchasing.QueryUseCase,
) *PurchasingHandler {
	return &PurchasingHandler{create: create, status: status, receive: receive, queries: queries}
}

// CreateOrder godoc
// @Summary      Crear orden de compra
// @Tags         purchasing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "vendor_id, items (quantity, unit_price, tax_rate)"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [post]
func (h *PurchasingHandler) CreateOrder(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.create.CreateOrder(c.Context(), companyID, userID, in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// ListOrders godoc
// @Summary      Listar órdenes de compra
// @Tags         purchasing
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Máximo de filas (default 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/purchase-orders [get]
func (h *PurchasingHandler) ListOrders(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	orders, err := h.create.ListOrders(c.Context(), companyID, page)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"total": len(orders), "orders": orders})
}

// GetOrder godoc
// @Summary      Obtener una orden de compra con sus líneas
// @Tags         purchasing
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Orden (UUID)"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id} [get]
func (h *PurchasingHandler) GetOrder(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	order, err := h.create.GetOrder(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(order)
}

// UpdateStatus godoc
// @Summary      Transición manual de estado (DRAFT→SENT, SENT→APPROVED)
// @Tags         purchasing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "Orden (UUID)"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "status destino"
// @Success      200   {object}  dto.OrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/status [patch]
func (h *PurchasingHandler) UpdateStatus(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.status.UpdateStatus(c.Context(), companyID, userID, c.Params("id"), in.Status)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(order)
}

// CancelOrder godoc
// @Summary      Anular una orden sin recepciones
// @Tags         purchasing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true   "Orden (UUID)"
// @Param        body  body  dto.CancelOrderRequest  false  "reason"
// @Success      200   {object}  dto.OrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/cancel [post]
func (h *PurchasingHandler) CancelOrder(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CancelOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.status.CancelOrder(c.Context(), companyID, userID, c.Params("id"), in.Reason)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(order)
}

// ReceiveOrder godoc
// @Summary      Registrar una recepción contra la orden
// @Description  Idempotente por receipt_number: reintentar con el mismo número
//
//	devuelve already_processed=true sin duplicar efectos.
//
// @Tags         purchasing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "Orden (UUID)"
// @Param        body  body  dto.ReceiveOrderRequest  true  "receipt_number, warehouse_id, lines"
// @Success      200   {object}  dto.ReceiveOrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/receipts [post]
func (h *PurchasingHandler) ReceiveOrder(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ReceiveOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.receive.ReceiveOrder(c.Context(), companyID, userID, c.Params("id"), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(result)
}

// ListReceipts godoc
// @Summary      Recibos registrados contra una orden
// @Tags         purchasing
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Orden (UUID)"
// @Success      200  {array}   dto.ReceiptResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/receipts [get]
func (h *PurchasingHandler) ListReceipts(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	receipts, err := h.queries.ListReceipts(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"total": len(receipts), "receipts": receipts})
}

// GetProjectCosts godoc
// @Summary      Costos imputados a un proyecto
// @Description  Acumulado total del proyecto más el detalle paginado de imputaciones.
// @Tags         purchasing
// @Security     Bearer
// @Produce      json
// @Param        project_id  path   string  true   "Proyecto (UUID)"
// @Param        limit       query  int     false  "Máximo de filas (default 20)"
// @Param        offset      query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.ProjectCostResponse
// @Router       /api/projects/{project_id}/costs [get]
func (h *PurchasingHandler) GetProjectCosts(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	costs, err := h.queries.GetProjectCosts(c.Context(), companyID, c.Params("project_id"), page)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(costs)
}
