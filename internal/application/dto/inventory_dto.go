package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest crea un movimiento de inventario.
// Para IN/OUT/ADJUSTMENT: product_id, warehouse_id, type, quantity (magnitud > 0).
// ADJUSTMENT requiere direction: 1 (suma) o -1 (resta).
// Para TRANSFER: from_warehouse_id y to_warehouse_id en lugar de warehouse_id.
type RegisterMovementRequest struct {
	ProductID       string          `json:"product_id"`
	WarehouseID     string          `json:"warehouse_id"`
	FromWarehouseID string          `json:"from_warehouse_id"`
	ToWarehouseID   string          `json:"to_warehouse_id"`
	Type            string          `json:"type"`
	Direction       int             `json:"direction"`
	Quantity        decimal.Decimal `json:"quantity"`
	ProjectID       string          `json:"project_id,omitempty"`
	Description     string          `json:"description,omitempty"`
}

// MovementResponse un asiento del kardex en respuestas HTTP.
type MovementResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Type        string          `json:"type"`
	Direction   int             `json:"direction"`
	Quantity    decimal.Decimal `json:"quantity"`
	ProjectID   string          `json:"project_id,omitempty"`
	Reference   string          `json:"reference,omitempty"`
	Description string          `json:"description,omitempty"`
	Date        time.Time       `json:"date"`
	CreatedBy   string          `json:"created_by,omitempty"`
}

// StockResponse saldo actual de un producto en una bodega.
type StockResponse struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// ConsistencyResponse resultado de contrastar el saldo almacenado contra
// la suma de deltas del kardex para un par (producto, bodega).
type ConsistencyResponse struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Stored      decimal.Decimal `json:"stored"`
	Replayed    decimal.Decimal `json:"replayed"`
	Consistent  bool            `json:"consistent"`
}
