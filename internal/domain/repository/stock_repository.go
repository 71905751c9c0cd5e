package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// StockRepository define el puerto para la proyección de saldos por producto+bodega.
// Las mutaciones son incrementos atómicos en SQL (UPDATE ... SET qty = qty + delta),
// nunca leer-modificar-escribir desde memoria: varios callers concurrentes sobre la
// misma fila no deben perder actualizaciones.
type StockRepository interface {
	// Get devuelve el saldo actual; cantidad cero si la fila no existe.
	Get(productID, warehouseID string) (*entity.Stock, error)
	// ApplyDelta crea la fila en delta si no existe, o la incrementa atómicamente.
	ApplyDelta(productID, warehouseID string, delta decimal.Decimal) error
	// Deduct resta quantity solo si el saldo alcanza; si no, ErrInsufficientStock.
	Deduct(productID, warehouseID string, quantity decimal.Decimal) error
}
