package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderReceipt registra un evento físico de entrega contra una orden.
// La tupla (CompanyID, OrderID, Number) es única en la base de datos: es la llave
// de idempotencia que hace seguro reintentar la misma recepción. Inmutable.
type PurchaseOrderReceipt struct {
	ID         string
	CompanyID  string
	OrderID    string
	Number     string // número de recibo aportado por el caller (remisión, guía, etc.)
	ReceivedBy string // UserID
	Notes      string
	CreatedAt  time.Time
}

// PurchaseOrderReceiptItem es la cantidad recibida de una línea en un recibo.
type PurchaseOrderReceiptItem struct {
	ID          string
	ReceiptID   string
	OrderItemID string
	Quantity    decimal.Decimal
}
