package purchasing

import (
	"context"

	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// OrderTxRunner ejecuta una función dentro de una transacción con el repositorio de
// órdenes atado a esa tx. Consecutivo + cabecera + líneas se confirman juntos:
// si la creación aborta, el contador también se revierte.
type OrderTxRunner interface {
	RunOrders(ctx context.Context, fn func(orderRepo repository.PurchaseOrderRepository) error) error
}

// ReceivingTxRunner ejecuta una función dentro de una transacción con todos los
// repositorios que toca una recepción: recibo + líneas + received_quantity +
// asientos de kardex + deltas de saldo + costos + estado de la orden, todo o nada.
type ReceivingTxRunner interface {
	RunReceiving(ctx context.Context, fn func(
		orderRepo repository.PurchaseOrderRepository,
		receiptRepo repository.ReceiptRepository,
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		costRepo repository.CostEntryRepository,
	) error) error
}
