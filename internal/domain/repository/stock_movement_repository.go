package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del kardex.
// El kardex es append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// ListByProduct devuelve el kardex de un producto, del más reciente al más antiguo.
	ListByProduct(companyID, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByWarehouse(companyID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	// SumDeltas suma los deltas con signo de todos los movimientos del par
	// (producto, bodega). Reproducir el saldo desde cero debe dar Stock.Quantity.
	SumDeltas(productID, warehouseID string) (decimal.Decimal, error)
}
