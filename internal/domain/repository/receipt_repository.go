package repository

import "github.com/jhoicas/Compras-api/internal/domain/entity"

// ReceiptRepository define el puerto de persistencia para recibos de orden de compra.
// La unicidad de (company_id, order_id, number) la garantiza la base de datos,
// no un check-then-insert del caller: Create devuelve ErrDuplicate en la colisión.
type ReceiptRepository interface {
	Create(receipt *entity.PurchaseOrderReceipt, items []*entity.PurchaseOrderReceiptItem) error
	GetByNumber(companyID, orderID, number string) (*entity.PurchaseOrderReceipt, error)
	ListByOrder(orderID string) ([]*entity.PurchaseOrderReceipt, error)
	GetItems(receiptID string) ([]*entity.PurchaseOrderReceiptItem, error)
}
