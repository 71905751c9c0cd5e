package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderItemRequest línea de una orden de compra nueva.
// product_id vacío = línea sin producto (servicio, flete); project_id vacío = sin
// imputación de costo.
type CreateOrderItemRequest struct {
	ProductID   string          `json:"product_id,omitempty"`
	ProjectID   string          `json:"project_id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
}

// CreateOrderRequest crea una orden de compra en estado DRAFT.
type CreateOrderRequest struct {
	VendorID string                   `json:"vendor_id"`
	Notes    string                   `json:"notes,omitempty"`
	Items    []CreateOrderItemRequest `json:"items"`
}

// UpdateOrderStatusRequest transición manual de estado (DRAFT→SENT, SENT→APPROVED).
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// CancelOrderRequest anula una orden sin recepciones.
type CancelOrderRequest struct {
	Reason string `json:"reason,omitempty"`
}

// ReceiveLineRequest cantidad entregada de una línea en esta recepción.
type ReceiveLineRequest struct {
	ItemID   string          `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// ReceiveOrderRequest registra la entrega de un proveedor contra una orden.
// receipt_number es la llave de idempotencia del caller: reintentar con el mismo
// número es seguro y no duplica efectos.
type ReceiveOrderRequest struct {
	ReceiptNumber string               `json:"receipt_number"`
	WarehouseID   string               `json:"warehouse_id"`
	Notes         string               `json:"notes,omitempty"`
	Lines         []ReceiveLineRequest `json:"lines"`
}

// ReceiveOrderResponse resultado de la recepción.
type ReceiveOrderResponse struct {
	AlreadyProcessed bool `json:"already_processed"`
}

// ReceiptItemResponse cantidad recibida de una línea en un recibo.
type ReceiptItemResponse struct {
	OrderItemID string          `json:"order_item_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// ReceiptResponse recibo de una orden con sus líneas.
type ReceiptResponse struct {
	ID         string                `json:"id"`
	Number     string                `json:"number"`
	ReceivedBy string                `json:"received_by"`
	Notes      string                `json:"notes,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
	Items      []ReceiptItemResponse `json:"items"`
}

// CostEntryResponse imputación de costo a un proyecto.
type CostEntryResponse struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
}

// ProjectCostResponse costos acumulados de un proyecto.
type ProjectCostResponse struct {
	ProjectID string              `json:"project_id"`
	Total     decimal.Decimal     `json:"total"`
	Entries   []CostEntryResponse `json:"entries"`
}

// OrderItemResponse línea de orden en respuestas HTTP.
type OrderItemResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id,omitempty"`
	ProjectID        string          `json:"project_id,omitempty"`
	WarehouseID      string          `json:"warehouse_id,omitempty"`
	Description      string          `json:"description"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	TaxRate          decimal.Decimal `json:"tax_rate"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
}

// OrderResponse orden de compra con sus líneas.
type OrderResponse struct {
	ID         string              `json:"id"`
	VendorID   string              `json:"vendor_id"`
	Number     int64               `json:"number"`
	Status     string              `json:"status"`
	NetTotal   decimal.Decimal     `json:"net_total"`
	TaxTotal   decimal.Decimal     `json:"tax_total"`
	GrandTotal decimal.Decimal     `json:"grand_total"`
	Notes      string              `json:"notes,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	Items      []OrderItemResponse `json:"items"`
}
