package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	OrderStatusDraft             = "DRAFT"              // creada con sus líneas, aún no enviada al proveedor
	OrderStatusSent              = "SENT"               // enviada al proveedor
	OrderStatusApproved          = "APPROVED"           // aprobada por el proveedor
	OrderStatusPartiallyReceived = "PARTIALLY_RECEIVED" // al menos una línea con recepción parcial
	OrderStatusReceived          = "RECEIVED"           // todas las líneas recibidas por completo
	OrderStatusCanceled          = "CANCELED"           // anulada; terminal
)

// ValidOrderStatus verifica que el estado pertenezca al enum cerrado.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusDraft, OrderStatusSent, OrderStatusApproved,
		OrderStatusPartiallyReceived, OrderStatusReceived, OrderStatusCanceled:
		return true
	}
	return false
}

// CanTransition indica si la transición manual from → to está permitida.
// Las transiciones derivadas de recepción (PARTIALLY_RECEIVED, RECEIVED) las
// escribe solo el orquestador de recepción, no UpdateStatus.
func CanTransition(from, to string) bool {
	switch from {
	case OrderStatusDraft:
		return to == OrderStatusSent || to == OrderStatusCanceled
	case OrderStatusSent:
		return to == OrderStatusApproved || to == OrderStatusCanceled
	case OrderStatusApproved:
		return to == OrderStatusCanceled
	}
	return false
}

// CanReceive indica si la orden admite recepciones en su estado actual.
func CanReceive(status string) bool {
	return status == OrderStatusSent || status == OrderStatusApproved || status == OrderStatusPartiallyReceived
}

// CanCancel indica si la orden puede anularse: solo antes de cualquier recepción.
func CanCancel(status string) bool {
	return status == OrderStatusDraft || status == OrderStatusSent || status == OrderStatusApproved
}

// PurchaseOrder representa la cabecera de una orden de compra a un proveedor.
// Number es el consecutivo por empresa, asignado una sola vez al crear.
type PurchaseOrder struct {
	ID         string
	CompanyID  string
	VendorID   string
	Number     int64
	Status     string
	NetTotal   decimal.Decimal
	TaxTotal   decimal.Decimal
	GrandTotal decimal.Decimal
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	CreatedBy  string
}

// PurchaseOrderItem es una línea de la orden. ProductID y ProjectID son opcionales:
// una línea sin producto no toca inventario, una línea con proyecto imputa costo.
// Invariante: 0 <= ReceivedQuantity <= Quantity.
type PurchaseOrderItem struct {
	ID               string
	OrderID          string
	ProductID        string // vacío = línea sin producto (servicio, flete, etc.)
	ProjectID        string // vacío = sin imputación de costo
	WarehouseID      string // última bodega de destino registrada al recibir
	Description      string
	Quantity         decimal.Decimal
	UnitPrice        decimal.Decimal // precio neto unitario
	TaxRate          decimal.Decimal // 0, 0.05, 0.19
	ReceivedQuantity decimal.Decimal
}

// RemainingQuantity devuelve lo pendiente por recibir de la línea.
func (i *PurchaseOrderItem) RemainingQuantity() decimal.Decimal {
	return i.Quantity.Sub(i.ReceivedQuantity)
}

// IsFullyReceived indica si la línea ya se recibió por completo.
func (i *PurchaseOrderItem) IsFullyReceived() bool {
	return i.ReceivedQuantity.GreaterThanOrEqual(i.Quantity)
}

// NetAmount devuelve el neto de la línea (precio × cantidad).
func (i *PurchaseOrderItem) NetAmount() decimal.Decimal {
	return i.UnitPrice.Mul(i.Quantity)
}

// TaxAmount devuelve el impuesto de la línea (neto × tasa).
func (i *PurchaseOrderItem) TaxAmount() decimal.Decimal {
	return i.NetAmount().Mul(i.TaxRate)
}

// DeriveStatus recalcula el estado tras una recepción: todas las líneas completas
// → RECEIVED; alguna con recepción → PARTIALLY_RECEIVED; si no, el estado actual.
// Por esta vía el estado solo avanza, nunca retrocede.
func DeriveStatus(current string, items []*PurchaseOrderItem) string {
	if len(items) == 0 {
		return current
	}
	all := true
	some := false
	for _, it := range items {
		if it.IsFullyReceived() {
			some = true
			continue
		}
		all = false
		if it.ReceivedQuantity.GreaterThan(decimal.Zero) {
			some = true
		}
	}
	switch {
	case all:
		return OrderStatusReceived
	case some:
		return OrderStatusPartiallyReceived
	default:
		return current
	}
}
