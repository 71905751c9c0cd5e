package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra.
type PurchaseOrderRepository interface {
	// NextNumber asigna el siguiente consecutivo de la empresa con un solo
	// update-and-return atómico (sin huecos ni duplicados bajo concurrencia).
	NextNumber(companyID string) (int64, error)
	Create(order *entity.PurchaseOrder, items []*entity.PurchaseOrderItem) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	GetItems(orderID string) ([]*entity.PurchaseOrderItem, error)
	GetItem(itemID string) (*entity.PurchaseOrderItem, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.PurchaseOrder, error)
	UpdateStatus(orderID, status, notes string) error
	// AddReceivedQuantity incrementa received_quantity de la línea y registra la
	// bodega de destino, solo si no supera quantity; si supera, ErrOverReceipt.
	AddReceivedQuantity(itemID string, quantity decimal.Decimal, warehouseID string) error
}
