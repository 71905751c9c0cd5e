package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del kardex sobre PostgreSQL (usable con pool o tx).
// Solo INSERT y SELECT: el kardex es append-only.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, company_id, product_id, warehouse_id, type, direction, quantity, project_id, reference, description, date, created_at, created_by`

// Create persiste un asiento del kardex.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.CompanyID, movement.ProductID, movement.WarehouseID,
		movement.Type, movement.Direction, movement.Quantity,
		nullIfEmpty(movement.ProjectID), nullIfEmpty(movement.Reference), nullIfEmpty(movement.Description),
		movement.Date, movement.CreatedAt, nullIfEmpty(movement.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un asiento por ID.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// ListByProduct devuelve el kardex de un producto, del más reciente al más antiguo.
func (r *StockMovementRepo) ListByProduct(companyID, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE company_id = $1 AND product_id = $2`
	args := []any{companyID, productID}
	query, args = appendDateRange(query, args, from, to)
	query += fmt.Sprintf(" ORDER BY date DESC, created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	return r.list(query, args)
}

// ListByWarehouse lista los movimientos de una bodega en un rango de fechas.
func (r *StockMovementRepo) ListByWarehouse(companyID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE company_id = $1 AND warehouse_id = $2`
	args := []any{companyID, warehouseID}
	query, args = appendDateRange(query, args, from, to)
	query += fmt.Sprintf(" ORDER BY date DESC, created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	return r.list(query, args)
}

// SumDeltas suma los deltas con signo (direction × quantity) del par (producto, bodega).
// Reproducir el kardex desde cero debe dar exactamente el saldo almacenado.
func (r *StockMovementRepo) SumDeltas(productID, warehouseID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(direction * quantity), 0)
		FROM stock_movements WHERE product_id = $1 AND warehouse_id = $2`
	var sum decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum deltas: %w", err)
	}
	return sum, nil
}

func (r *StockMovementRepo) list(query string, args []any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var projectID, reference, description, createdBy *string
	err := row.Scan(
		&m.ID, &m.CompanyID, &m.ProductID, &m.WarehouseID, &m.Type, &m.Direction,
		&m.Quantity, &projectID, &reference, &description, &m.Date, &m.CreatedAt, &createdBy,
	)
	if err != nil {
		return nil, err
	}
	m.ProjectID = deref(projectID)
	m.Reference = deref(reference)
	m.Description = deref(description)
	m.CreatedBy = deref(createdBy)
	return &m, nil
}

func appendDateRange(query string, args []any, from, to *time.Time) (string, []any) {
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	return query, args
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
