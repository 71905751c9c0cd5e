package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario (kardex).
const (
	MovementTypeIN         = "IN"         // entrada (recepción de compra, entrada manual)
	MovementTypeOUT        = "OUT"        // salida
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste de inventario (puede sumar o restar)
	MovementTypeTRANSFER   = "TRANSFER"   // traslado entre bodegas (dos asientos, misma tx)
)

// Dirección del movimiento. La cantidad siempre es magnitud positiva;
// el signo vive aparte para que ADJUSTMENT pueda expresar hallazgos y pérdidas
// sin sobrecargar el signo de Quantity.
const (
	DirectionIncrease = 1  // suma stock
	DirectionDecrease = -1 // resta stock
)

// StockMovement es un asiento inmutable del kardex: un cambio de cantidad de un
// producto en una bodega. Nunca se edita ni se borra; las correcciones son
// movimientos nuevos (principio de reversión).
type StockMovement struct {
	ID          string
	CompanyID   string
	ProductID   string
	WarehouseID string
	Type        string
	Direction   int
	Quantity    decimal.Decimal // magnitud, siempre > 0
	ProjectID   string          // opcional: proyecto que consume el costo
	Reference   string          // opcional: OC, recibo, nota de ajuste, etc.
	Description string
	Date        time.Time
	CreatedAt   time.Time
	CreatedBy   string // UserID
}

// SignedDelta devuelve el delta con signo que este movimiento aplica al stock.
// Es lo único que consume la proyección de saldos.
func (m *StockMovement) SignedDelta() decimal.Decimal {
	if m.Direction == DirectionDecrease {
		return m.Quantity.Neg()
	}
	return m.Quantity
}

// ValidMovementType verifica que el tipo pertenezca al enum cerrado.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypeADJUSTMENT, MovementTypeTRANSFER:
		return true
	}
	return false
}
