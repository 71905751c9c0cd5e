package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa el saldo actual de un producto en una bodega (proyección del kardex).
// Invariante: Quantity es igual a la suma de SignedDelta() de todos los movimientos
// del par (producto, bodega). Se crea perezosamente con el primer movimiento.
type Stock struct {
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}
