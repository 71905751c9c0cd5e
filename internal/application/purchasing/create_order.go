package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// CreateOrderUseCase crea órdenes de compra en DRAFT con consecutivo por empresa
// y totales calculados desde las líneas.
type CreateOrderUseCase struct {
	txRunner    OrderTxRunner
	orderRepo   repository.PurchaseOrderRepository
	vendorRepo  repository.VendorRepository
	productRepo repository.ProductRepository
	auditRepo   repository.AuditRepository
}

// NewCreateOrderUseCase construye el caso de uso.
func NewCreateOrderUseCase(
	txRunner OrderTxRunner,
	orderRepo repository.PurchaseOrderRepository,
	vendorRepo repository.VendorRepository,
	productRepo repository.ProductRepository,
	auditRepo repository.AuditRepository,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		txRunner:    txRunner,
		orderRepo:   orderRepo,
		vendorRepo:  vendorRepo,
		productRepo: productRepo,
		auditRepo:   auditRepo,
	}
}

// CreateOrder valida proveedor y líneas, asigna el consecutivo con un incremento
// atómico dentro de la misma transacción y persiste cabecera + líneas en DRAFT.
func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, companyID, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.VendorID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	vendor, err := uc.vendorRepo.GetByID(in.VendorID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, domain.ErrNotFound
	}
	if vendor.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	// Validar líneas y productos referenciados (solo lectura, fuera de la tx)
	for i := range in.Items {
		item := &in.Items[i]
		if !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if item.UnitPrice.LessThan(decimal.Zero) || item.TaxRate.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if item.ProductID != "" {
			product, err := uc.productRepo.GetByID(item.ProductID)
			if err != nil {
				return nil, err
			}
			if product == nil {
				return nil, domain.ErrNotFound
			}
			if product.CompanyID != companyID {
				return nil, domain.ErrForbidden
			}
		}
	}

	now := time.Now()
	order := &entity.PurchaseOrder{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		VendorID:  in.VendorID,
		Status:    entity.OrderStatusDraft,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: userID,
	}
	items := make([]*entity.PurchaseOrderItem, 0, len(in.Items))
	var netTotal, taxTotal decimal.Decimal
	for _, line := range in.Items {
		item := &entity.PurchaseOrderItem{
			ID:               uuid.New().String(),
			OrderID:          order.ID,
			ProductID:        line.ProductID,
			ProjectID:        line.ProjectID,
			Description:      line.Description,
			Quantity:         line.Quantity,
			UnitPrice:        line.UnitPrice,
			TaxRate:          line.TaxRate,
			ReceivedQuantity: decimal.Zero,
		}
		netTotal = netTotal.Add(item.NetAmount())
		taxTotal = taxTotal.Add(item.TaxAmount())
		items = append(items, item)
	}
	order.NetTotal = netTotal
	order.TaxTotal = taxTotal
	order.GrandTotal = netTotal.Add(taxTotal)

	// Consecutivo + cabecera + líneas en una sola transacción: si algo falla,
	// el número asignado se revierte con todo lo demás.
	err = uc.txRunner.RunOrders(ctx, func(orderRepo repository.PurchaseOrderRepository) error {
		number, err := orderRepo.NextNumber(companyID)
		if err != nil {
			return err
		}
		order.Number = number
		return orderRepo.Create(order, items)
	})
	if err != nil {
		return nil, err
	}

	_ = uc.auditRepo.Create(&entity.AuditLog{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		UserID:    userID,
		EntityID:  order.ID,
		Action:    "PURCHASE_ORDER_CREATED",
		Detail:    fmt.Sprintf("OC-%d proveedor %s, %d líneas, total %s", order.Number, vendor.Name, len(items), order.GrandTotal.StringFixed(2)),
		CreatedAt: time.Now(),
	})

	return toOrderResponse(order, items), nil
}

// GetOrder devuelve una orden con sus líneas.
func (uc *CreateOrderUseCase) GetOrder(ctx context.Context, companyID, orderID string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	items, err := uc.orderRepo.GetItems(orderID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, items), nil
}

// ListOrders lista las órdenes de la empresa, más recientes primero.
func (uc *CreateOrderUseCase) ListOrders(ctx context.Context, companyID string, page dto.PageRequest) ([]dto.OrderResponse, error) {
	page.DefaultPage()
	orders, err := uc.orderRepo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, *toOrderResponse(o, nil))
	}
	return out, nil
}

func toOrderResponse(order *entity.PurchaseOrder, items []*entity.PurchaseOrderItem) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:         order.ID,
		VendorID:   order.VendorID,
		Number:     order.Number,
		Status:     order.Status,
		NetTotal:   order.NetTotal,
		TaxTotal:   order.TaxTotal,
		GrandTotal: order.GrandTotal,
		Notes:      order.Notes,
		CreatedAt:  order.CreatedAt,
		Items:      make([]dto.OrderItemResponse, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:               it.ID,
			ProductID:        it.ProductID,
			ProjectID:        it.ProjectID,
			WarehouseID:      it.WarehouseID,
			Description:      it.Description,
			Quantity:         it.Quantity,
			UnitPrice:        it.UnitPrice,
			TaxRate:          it.TaxRate,
			ReceivedQuantity: it.ReceivedQuantity,
		})
	}
	return resp
}
