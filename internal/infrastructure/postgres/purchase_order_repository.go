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

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación sobre PostgreSQL (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// NextNumber asigna el siguiente consecutivo de la empresa con un solo
// update-and-return atómico contra la fila contadora (no "max + 1": eso
// duplica números bajo concurrencia).
func (r *PurchaseOrderRepo) NextNumber(companyID string) (int64, error) {
	query := `
		INSERT INTO purchase_order_counters (company_id, last_number)
		VALUES ($1, 1)
		ON CONFLICT (company_id)
		DO UPDATE SET last_number = purchase_order_counters.last_number + 1
		RETURNING last_number`
	var number int64
	if err := r.q.QueryRow(context.Background(), query, companyID).Scan(&number); err != nil {
		return 0, fmt.Errorf("next order number: %w", err)
	}
	return number, nil
}

// Create persiste cabecera y líneas de la orden.
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder, items []*entity.PurchaseOrderItem) error {
	query := `
		INSERT INTO purchase_orders (id, company_id, vendor_id, number, status, net_total, tax_total, grand_total, notes, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.CompanyID, order.VendorID, order.Number, order.Status,
		order.NetTotal, order.TaxTotal, order.GrandTotal,
		nullIfEmpty(order.Notes), order.CreatedAt, order.UpdatedAt, nullIfEmpty(order.CreatedBy),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create purchase order: %w", err)
	}
	for _, item := range items {
		itemQuery := `
			INSERT INTO purchase_order_items (id, order_id, product_id, project_id, warehouse_id, description, quantity, unit_price, tax_rate, received_quantity)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
		_, err := r.q.Exec(context.Background(), itemQuery,
			item.ID, item.OrderID, nullIfEmpty(item.ProductID), nullIfEmpty(item.ProjectID),
			nullIfEmpty(item.WarehouseID), item.Description, item.Quantity,
			item.UnitPrice, item.TaxRate, item.ReceivedQuantity,
		)
		if err != nil {
			return fmt.Errorf("create purchase order item: %w", err)
		}
	}
	return nil
}

const orderColumns = `id, company_id, vendor_id, number, status, net_total, tax_total, grand_total, notes, created_at, updated_at, created_by`

// GetByID obtiene una orden por ID.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE id = $1`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return o, nil
}

// ListByCompany lista las órdenes de la empresa, más recientes primero.
func (r *PurchaseOrderRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE company_id = $1 ORDER BY number DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

const orderItemColumns = `id, order_id, product_id, project_id, warehouse_id, description, quantity, unit_price, tax_rate, received_quantity`

// GetItems devuelve las líneas de una orden en orden de creación.
func (r *PurchaseOrderRepo) GetItems(orderID string) ([]*entity.PurchaseOrderItem, error) {
	query := `SELECT ` + orderItemColumns + ` FROM purchase_order_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrderItem
	for rows.Next() {
		it, err := scanOrderItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// GetItem obtiene una línea por ID.
func (r *PurchaseOrderRepo) GetItem(itemID string) (*entity.PurchaseOrderItem, error) {
	query := `SELECT ` + orderItemColumns + ` FROM purchase_order_items WHERE id = $1`
	it, err := scanOrderItem(r.q.QueryRow(context.Background(), query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order item: %w", err)
	}
	return it, nil
}

// UpdateStatus actualiza estado y notas de la orden.
func (r *PurchaseOrderRepo) UpdateStatus(orderID, status, notes string) error {
	query := `UPDATE purchase_orders SET status = $2, notes = $3, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, orderID, status, nullIfEmpty(notes))
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddReceivedQuantity incrementa received_quantity atómicamente, solo si el
// incremento no supera quantity. Cero filas afectadas significa que otra
// recepción concurrente agotó lo pendiente: ErrOverReceipt.
func (r *PurchaseOrderRepo) AddReceivedQuantity(itemID string, quantity decimal.Decimal, warehouseID string) error {
	query := `
		UPDATE purchase_order_items
		SET received_quantity = received_quantity + $2, warehouse_id = $3
		WHERE id = $1 AND received_quantity + $2 <= quantity`
	tag, err := r.q.Exec(context.Background(), query, itemID, quantity, nullIfEmpty(warehouseID))
	if err != nil {
		return fmt.Errorf("add received quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOverReceipt
	}
	return nil
}

func scanOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	var notes, createdBy *string
	err := row.Scan(
		&o.ID, &o.CompanyID, &o.VendorID, &o.Number, &o.Status,
		&o.NetTotal, &o.TaxTotal, &o.GrandTotal,
		&notes, &o.CreatedAt, &o.UpdatedAt, &createdBy,
	)
	if err != nil {
		return nil, err
	}
	o.Notes = deref(notes)
	o.CreatedBy = deref(createdBy)
	return &o, nil
}

func scanOrderItem(row pgx.Row) (*entity.PurchaseOrderItem, error) {
	var it entity.PurchaseOrderItem
	var productID, projectID, warehouseID *string
	err := row.Scan(
		&it.ID, &it.OrderID, &productID, &projectID, &warehouseID,
		&it.Description, &it.Quantity, &it.UnitPrice, &it.TaxRate, &it.ReceivedQuantity,
	)
	if err != nil {
		return nil, err
	}
	it.ProductID = deref(productID)
	it.ProjectID = deref(projectID)
	it.WarehouseID = deref(warehouseID)
	return &it, nil
}
