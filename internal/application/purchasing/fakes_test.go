package purchasing_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tienda en memoria compartida por los fakes. Reproduce la semántica de los
// repositorios de PostgreSQL: consecutivo atómico, unicidad de recibos,
// incremento de received_quantity con guarda. El runner de transacciones toma
// una copia del estado y la restaura ante error, igual que un Rollback.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	counters     map[string]int64
	orders       map[string]*entity.PurchaseOrder
	items        map[string]*entity.PurchaseOrderItem
	itemsByOrder map[string][]string
	receipts     []*entity.PurchaseOrderReceipt
	receiptItems map[string][]*entity.PurchaseOrderReceiptItem
	movements    []*entity.StockMovement
	stock        map[[2]string]decimal.Decimal
	costs        []*entity.CostEntry
	audits       []*entity.AuditLog

	vendors    map[string]*entity.Vendor
	products   map[string]*entity.Product
	warehouses map[string]*entity.Warehouse
}

func newMemStore() *memStore {
	return &memStore{
		counters:     map[string]int64{},
		orders:       map[string]*entity.PurchaseOrder{},
		items:        map[string]*entity.PurchaseOrderItem{},
		itemsByOrder: map[string][]string{},
		receiptItems: map[string][]*entity.PurchaseOrderReceiptItem{},
		stock:        map[[2]string]decimal.Decimal{},
		vendors:      map[string]*entity.Vendor{},
		products:     map[string]*entity.Product{},
		warehouses:   map[string]*entity.Warehouse{},
	}
}

// snapshot copia el estado mutable (lo que tocan las transacciones).
func (s *memStore) snapshot() *memStore {
	cp := newMemStore()
	for k, v := range s.counters {
		cp.counters[k] = v
	}
	for k, v := range s.orders {
		o := *v
		cp.orders[k] = &o
	}
	for k, v := range s.items {
		it := *v
		cp.items[k] = &it
	}
	for k, v := range s.itemsByOrder {
		cp.itemsByOrder[k] = append([]string(nil), v...)
	}
	cp.receipts = append([]*entity.PurchaseOrderReceipt(nil), s.receipts...)
	for k, v := range s.receiptItems {
		cp.receiptItems[k] = append([]*entity.PurchaseOrderReceiptItem(nil), v...)
	}
	cp.movements = append([]*entity.StockMovement(nil), s.movements...)
	for k, v := range s.stock {
		cp.stock[k] = v
	}
	cp.costs = append([]*entity.CostEntry(nil), s.costs...)
	return cp
}

func (s *memStore) restore(from *memStore) {
	s.counters = from.counters
	s.orders = from.orders
	s.items = from.items
	s.itemsByOrder = from.itemsByOrder
	s.receipts = from.receipts
	s.receiptItems = from.receiptItems
	s.movements = from.movements
	s.stock = from.stock
	s.costs = from.costs
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios fake
// ──────────────────────────────────────────────────────────────────────────────

type memOrderRepo struct{ s *memStore }

func (r *memOrderRepo) NextNumber(companyID string) (int64, error) {
	r.s.counters[companyID]++
	return r.s.counters[companyID], nil
}

func (r *memOrderRepo) Create(order *entity.PurchaseOrder, items []*entity.PurchaseOrderItem) error {
	for _, o := range r.s.orders {
		if o.CompanyID == order.CompanyID && o.Number == order.Number {
			return domain.ErrDuplicate
		}
	}
	o := *order
	r.s.orders[order.ID] = &o
	for _, it := range items {
		cp := *it
		r.s.items[it.ID] = &cp
		r.s.itemsByOrder[order.ID] = append(r.s.itemsByOrder[order.ID], it.ID)
	}
	return nil
}

func (r *memOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *memOrderRepo) GetItems(orderID string) ([]*entity.PurchaseOrderItem, error) {
	var out []*entity.PurchaseOrderItem
	for _, id := range r.s.itemsByOrder[orderID] {
		cp := *r.s.items[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memOrderRepo) GetItem(itemID string) (*entity.PurchaseOrderItem, error) {
	it, ok := r.s.items[itemID]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *memOrderRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, o := range r.s.orders {
		if o.CompanyID == companyID {
			cp := *o
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number > out[j].Number })
	return out, nil
}

func (r *memOrderRepo) UpdateStatus(orderID, status, notes string) error {
	o, ok := r.s.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	o.Notes = notes
	o.UpdatedAt = time.Now()
	return nil
}

func (r *memOrderRepo) AddReceivedQuantity(itemID string, quantity decimal.Decimal, warehouseID string) error {
	it, ok := r.s.items[itemID]
	if !ok {
		return domain.ErrNotFound
	}
	next := it.ReceivedQuantity.Add(quantity)
	if next.GreaterThan(it.Quantity) {
		return domain.ErrOverReceipt
	}
	it.ReceivedQuantity = next
	it.WarehouseID = warehouseID
	return nil
}

type memReceiptRepo struct{ s *memStore }

func (r *memReceiptRepo) Create(receipt *entity.PurchaseOrderReceipt, items []*entity.PurchaseOrderReceiptItem) error {
	for _, rc := range r.s.receipts {
		if rc.CompanyID == receipt.CompanyID && rc.OrderID == receipt.OrderID && rc.Number == receipt.Number {
			return domain.ErrDuplicate
		}
	}
	cp := *receipt
	r.s.receipts = append(r.s.receipts, &cp)
	r.s.receiptItems[receipt.ID] = append([]*entity.PurchaseOrderReceiptItem(nil), items...)
	return nil
}

func (r *memReceiptRepo) GetByNumber(companyID, orderID, number string) (*entity.PurchaseOrderReceipt, error) {
	for _, rc := range r.s.receipts {
		if rc.CompanyID == companyID && rc.OrderID == orderID && rc.Number == number {
			cp := *rc
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memReceiptRepo) ListByOrder(orderID string) ([]*entity.PurchaseOrderReceipt, error) {
	var out []*entity.PurchaseOrderReceipt
	for _, rc := range r.s.receipts {
		if rc.OrderID == orderID {
			cp := *rc
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memReceiptRepo) GetItems(receiptID string) ([]*entity.PurchaseOrderReceiptItem, error) {
	return r.s.receiptItems[receiptID], nil
}

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *memMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range r.s.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memMovementRepo) ListByProduct(companyID, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if m.CompanyID == companyID && m.ProductID == productID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memMovementRepo) ListByWarehouse(companyID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if m.CompanyID == companyID && m.WarehouseID == warehouseID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memMovementRepo) SumDeltas(productID, warehouseID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, m := range r.s.movements {
		if m.ProductID == productID && m.WarehouseID == warehouseID {
			sum = sum.Add(m.SignedDelta())
		}
	}
	return sum, nil
}

type memStockRepo struct{ s *memStore }

func (r *memStockRepo) Get(productID, warehouseID string) (*entity.Stock, error) {
	return &entity.Stock{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    r.s.stock[[2]string{productID, warehouseID}],
	}, nil
}

func (r *memStockRepo) ApplyDelta(productID, warehouseID string, delta decimal.Decimal) error {
	key := [2]string{productID, warehouseID}
	r.s.stock[key] = r.s.stock[key].Add(delta)
	return nil
}

func (r *memStockRepo) Deduct(productID, warehouseID string, quantity decimal.Decimal) error {
	key := [2]string{productID, warehouseID}
	if r.s.stock[key].LessThan(quantity) {
		return domain.ErrInsufficientStock
	}
	r.s.stock[key] = r.s.stock[key].Sub(quantity)
	return nil
}

type memCostRepo struct{ s *memStore }

func (r *memCostRepo) Create(entry *entity.CostEntry) error {
	cp := *entry
	r.s.costs = append(r.s.costs, &cp)
	return nil
}

func (r *memCostRepo) ListByProject(companyID, projectID string, limit, offset int) ([]*entity.CostEntry, error) {
	var out []*entity.CostEntry
	for _, c := range r.s.costs {
		if c.CompanyID == companyID && c.ProjectID == projectID {
			cp := *c
			out = append(out, &cp)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memCostRepo) SumByProject(companyID, projectID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, c := range r.s.costs {
		if c.CompanyID == companyID && c.ProjectID == projectID {
			sum = sum.Add(c.Amount)
		}
	}
	return sum, nil
}

type memVendorRepo struct {
	s   *memStore
	err error // si está presente, simula una falla de infraestructura
}

func (r *memVendorRepo) GetByID(id string) (*entity.Vendor, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.s.vendors[id], nil
}

type memProductRepo struct {
	s   *memStore
	err error
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.s.products[id], nil
}

type memWarehouseRepo struct {
	s   *memStore
	err error
}

func (r *memWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.s.warehouses[id], nil
}

type memAuditRepo struct{ s *memStore }

func (r *memAuditRepo) Create(log *entity.AuditLog) error {
	r.s.audits = append(r.s.audits, log)
	return nil
}

// memTxRunner implementa OrderTxRunner y ReceivingTxRunner con semántica de
// rollback: ante error, el estado queda como antes de la transacción.
type memTxRunner struct{ s *memStore }

func (tx *memTxRunner) RunOrders(ctx context.Context, fn func(orderRepo repository.PurchaseOrderRepository) error) error {
	backup := tx.s.snapshot()
	if err := fn(&memOrderRepo{s: tx.s}); err != nil {
		tx.s.restore(backup)
		return err
	}
	return nil
}

func (tx *memTxRunner) RunReceiving(ctx context.Context, fn func(
	orderRepo repository.PurchaseOrderRepository,
	receiptRepo repository.ReceiptRepository,
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	costRepo repository.CostEntryRepository,
) error) error {
	backup := tx.s.snapshot()
	if err := fn(
		&memOrderRepo{s: tx.s},
		&memReceiptRepo{s: tx.s},
		&memMovementRepo{s: tx.s},
		&memStockRepo{s: tx.s},
		&memCostRepo{s: tx.s},
	); err != nil {
		tx.s.restore(backup)
		return err
	}
	return nil
}
