package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

// ReceiptRepo implementación sobre PostgreSQL (usable con pool o tx).
// La constraint única sobre (company_id, order_id, number) es la garantía real
// de idempotencia: un check-then-insert del caller sería una carrera.
type ReceiptRepo struct {
	q Querier
}

// NewReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReceiptRepository(q Querier) *ReceiptRepo {
	return &ReceiptRepo{q: q}
}

// Create persiste el recibo y sus líneas. Devuelve ErrDuplicate si ya existe un
// recibo con el mismo número para la orden (violación del índice único).
func (r *ReceiptRepo) Create(receipt *entity.PurchaseOrderReceipt, items []*entity.PurchaseOrderReceiptItem) error {
	query := `
		INSERT INTO purchase_order_receipts (id, company_id, order_id, number, received_by, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		receipt.ID, receipt.CompanyID, receipt.OrderID, receipt.Number,
		nullIfEmpty(receipt.ReceivedBy), nullIfEmpty(receipt.Notes), receipt.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create receipt: %w", err)
	}
	for _, item := range items {
		itemQuery := `
			INSERT INTO purchase_order_receipt_items (id, receipt_id, order_item_id, quantity)
			VALUES ($1, $2, $3, $4)`
		if _, err := r.q.Exec(context.Background(), itemQuery, item.ID, item.ReceiptID, item.OrderItemID, item.Quantity); err != nil {
			return fmt.Errorf("create receipt item: %w", err)
		}
	}
	return nil
}

// GetByNumber busca un recibo por su llave de idempotencia; nil si no existe.
func (r *ReceiptRepo) GetByNumber(companyID, orderID, number string) (*entity.PurchaseOrderReceipt, error) {
	query := `
		SELECT id, company_id, order_id, number, received_by, notes, created_at
		FROM purchase_order_receipts
		WHERE company_id = $1 AND order_id = $2 AND number = $3`
	rec, err := scanReceipt(r.q.QueryRow(context.Background(), query, companyID, orderID, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receipt: %w", err)
	}
	return rec, nil
}

// ListByOrder lista los recibos de una orden en orden cronológico.
func (r *ReceiptRepo) ListByOrder(orderID string) ([]*entity.PurchaseOrderReceipt, error) {
	query := `
		SELECT id, company_id, order_id, number, received_by, notes, created_at
		FROM purchase_order_receipts WHERE order_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrderReceipt
	for rows.Next() {
		rec, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// GetItems devuelve las líneas de un recibo.
func (r *ReceiptRepo) GetItems(receiptID string) ([]*entity.PurchaseOrderReceiptItem, error) {
	query := `
		SELECT id, receipt_id, order_item_id, quantity
		FROM purchase_order_receipt_items WHERE receipt_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, receiptID)
	if err != nil {
		return nil, fmt.Errorf("get receipt items: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrderReceiptItem
	for rows.Next() {
		var it entity.PurchaseOrderReceiptItem
		if err := rows.Scan(&it.ID, &it.ReceiptID, &it.OrderItemID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan receipt item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

func scanReceipt(row pgx.Row) (*entity.PurchaseOrderReceipt, error) {
	var rec entity.PurchaseOrderReceipt
	var receivedBy, notes *string
	err := row.Scan(&rec.ID, &rec.CompanyID, &rec.OrderID, &rec.Number, &receivedBy, &notes, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	rec.ReceivedBy = deref(receivedBy)
	rec.Notes = deref(notes)
	return &rec, nil
}
