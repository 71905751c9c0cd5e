package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
// Las mutaciones son incrementos atómicos en SQL: la misma fila puede recibirlos
// de varias transacciones concurrentes sin perder actualizaciones.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de saldos. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el saldo actual de un producto en una bodega; cero si no hay fila.
func (r *StockRepo) Get(productID, warehouseID string) (*entity.Stock, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM stock WHERE product_id = $1 AND warehouse_id = $2`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// ApplyDelta crea la fila en delta si no existe, o la incrementa atómicamente
// (UPDATE ... SET quantity = quantity + delta, nunca leer-modificar-escribir).
func (r *StockRepo) ApplyDelta(productID, warehouseID string, delta decimal.Decimal) error {
	query := `
		INSERT INTO stock (product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = stock.quantity + EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, productID, warehouseID, delta)
	if err != nil {
		return fmt.Errorf("apply stock delta: %w", err)
	}
	return nil
}

// Deduct resta quantity solo si el saldo alcanza. Si la condición no se cumple
// (fila ausente o saldo insuficiente), ninguna fila cambia y se devuelve
// ErrInsufficientStock.
func (r *StockRepo) Deduct(productID, warehouseID string, quantity decimal.Decimal) error {
	query := `
		UPDATE stock SET quantity = quantity - $3, updated_at = now()
		WHERE product_id = $1 AND warehouse_id = $2 AND quantity >= $3`
	tag, err := r.q.Exec(context.Background(), query, productID, warehouseID, quantity)
	if err != nil {
		return fmt.Errorf("deduct stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}
