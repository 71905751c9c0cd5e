package purchasing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// ReceiveOrderUseCase convierte "el proveedor entregó N unidades de la línea X"
// en verdad de kardex, de saldos, de avance de la orden y de costos — exactamente
// una vez por entrega física. Todo ocurre en una sola transacción; la llave de
// idempotencia (empresa, orden, número de recibo) hace seguro reintentar.
type ReceiveOrderUseCase struct {
	txRunner      ReceivingTxRunner
	warehouseRepo repository.WarehouseRepository
	auditRepo     repository.AuditRepository
}

// NewReceiveOrderUseCase construye el orquestador de recepción.
func NewReceiveOrderUseCase(
	txRunner ReceivingTxRunner,
	warehouseRepo repository.WarehouseRepository,
	auditRepo repository.AuditRepository,
) *ReceiveOrderUseCase {
	return &ReceiveOrderUseCase{
		txRunner:      txRunner,
		warehouseRepo: warehouseRepo,
		auditRepo:     auditRepo,
	}
}

// ReceiveOrder registra una entrega contra la orden:
//
//  1. Si ya existe un recibo con ese número para la orden, no hay nada que hacer:
//     AlreadyProcessed = true sin ninguna mutación.
//  2. La orden debe admitir recepciones (SENT, APPROVED o PARTIALLY_RECEIVED).
//  3. Se persiste el recibo con sus líneas; un duplicado concurrente choca con la
//     constraint única y también resuelve a AlreadyProcessed.
//  4. Por cada línea: la línea debe ser de la orden, la cantidad no puede superar
//     lo pendiente, se incrementa received_quantity, y si la línea tiene producto
//     se asienta un IN en el kardex con su delta de saldo; si tiene proyecto se
//     imputa el costo neto.
//  5. Se recalcula el estado de la orden desde sus líneas.
//
// Cualquier fallo revierte la transacción completa: ni recibo, ni asientos, ni
// deltas, ni costos; el número de recibo queda libre para reintentar corregido.
func (uc *ReceiveOrderUseCase) ReceiveOrder(ctx context.Context, companyID, userID, orderID string, in dto.ReceiveOrderRequest) (*dto.ReceiveOrderResponse, error) {
	if in.ReceiptNumber == "" || in.WarehouseID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Lines {
		if line.ItemID == "" || !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}
	wh, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil || wh.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	alreadyProcessed := false
	var orderNumber int64

	err = uc.txRunner.RunReceiving(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		receiptRepo repository.ReceiptRepository,
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		costRepo repository.CostEntryRepository,
	) error {
		// 1) Idempotencia: ¿ya se registró esta entrega?
		existing, err := receiptRepo.GetByNumber(companyID, orderID, in.ReceiptNumber)
		if err != nil {
			return err
		}
		if existing != nil {
			alreadyProcessed = true
			return nil
		}

		// 2) Estado de la orden
		order, err := orderRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if !entity.CanReceive(order.Status) {
			return domain.ErrConflict
		}
		orderNumber = order.Number
		reference := fmt.Sprintf("OC-%d/%s", order.Number, in.ReceiptNumber)

		// 3) Recibo + líneas. La unicidad de (empresa, orden, número) la impone
		// la base de datos: ante una carrera, el segundo insert es el noop.
		receipt := &entity.PurchaseOrderReceipt{
			ID:         uuid.New().String(),
			CompanyID:  companyID,
			OrderID:    orderID,
			Number:     in.ReceiptNumber,
			ReceivedBy: userID,
			Notes:      in.Notes,
			CreatedAt:  now,
		}
		receiptItems := make([]*entity.PurchaseOrderReceiptItem, 0, len(in.Lines))
		for _, line := range in.Lines {
			receiptItems = append(receiptItems, &entity.PurchaseOrderReceiptItem{
				ID:          uuid.New().String(),
				ReceiptID:   receipt.ID,
				OrderItemID: line.ItemID,
				Quantity:    line.Quantity,
			})
		}
		if err := receiptRepo.Create(receipt, receiptItems); err != nil {
			return err
		}

		// 4) Efectos por línea
		for _, line := range in.Lines {
			item, err := orderRepo.GetItem(line.ItemID)
			if err != nil {
				return err
			}
			if item == nil || item.OrderID != orderID {
				return domain.ErrNotFound
			}
			// Recibir más de lo pendiente se rechaza, no se recorta.
			if line.Quantity.GreaterThan(item.RemainingQuantity()) {
				return domain.ErrOverReceipt
			}
			if err := orderRepo.AddReceivedQuantity(item.ID, line.Quantity, in.WarehouseID); err != nil {
				return err
			}
			if item.ProductID != "" {
				mov := &entity.StockMovement{
					ID:          uuid.New().String(),
					CompanyID:   companyID,
					ProductID:   item.ProductID,
					WarehouseID: in.WarehouseID,
					Type:        entity.MovementTypeIN,
					Direction:   entity.DirectionIncrease,
					Quantity:    line.Quantity,
					ProjectID:   item.ProjectID,
					Reference:   reference,
					Description: fmt.Sprintf("Recepción %s: %s", reference, item.Description),
					Date:        now,
					CreatedAt:   now,
					CreatedBy:   userID,
				}
				if err := movRepo.Create(mov); err != nil {
					return err
				}
				if err := stockRepo.ApplyDelta(item.ProductID, in.WarehouseID, line.Quantity); err != nil {
					return err
				}
			}
			if item.ProjectID != "" {
				cost := &entity.CostEntry{
					ID:          uuid.New().String(),
					CompanyID:   companyID,
					ProjectID:   item.ProjectID,
					Amount:      item.UnitPrice.Mul(line.Quantity),
					Description: fmt.Sprintf("Recepción %s: %s", reference, item.Description),
					Category:    entity.CostCategoryPurchases,
					Date:        now,
					CreatedAt:   now,
				}
				if err := costRepo.Create(cost); err != nil {
					return err
				}
			}
		}

		// 5) Recalcular estado desde las líneas ya actualizadas
		items, err := orderRepo.GetItems(orderID)
		if err != nil {
			return err
		}
		newStatus := entity.DeriveStatus(order.Status, items)
		if newStatus != order.Status {
			return orderRepo.UpdateStatus(orderID, newStatus, order.Notes)
		}
		return nil
	})
	if err != nil {
		// Carrera sobre el mismo número de recibo: el primero materializó los
		// efectos, este llamado es el duplicado idempotente.
		if errors.Is(err, domain.ErrDuplicate) {
			return &dto.ReceiveOrderResponse{AlreadyProcessed: true}, nil
		}
		return nil, err
	}
	if alreadyProcessed {
		return &dto.ReceiveOrderResponse{AlreadyProcessed: true}, nil
	}

	_ = uc.auditRepo.Create(&entity.AuditLog{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		UserID:    userID,
		EntityID:  orderID,
		Action:    "PURCHASE_ORDER_RECEIVED",
		Detail:    fmt.Sprintf("OC-%d recibo %s: %d líneas en bodega %s", orderNumber, in.ReceiptNumber, len(in.Lines), wh.Name),
		CreatedAt: time.Now(),
	})

	return &dto.ReceiveOrderResponse{AlreadyProcessed: false}, nil
}
