package purchasing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// OrderStatusUseCase transiciones manuales del ciclo de vida de una orden:
// envío, aprobación y anulación. Las transiciones derivadas de recepción
// las escribe solo ReceiveOrderUseCase.
type OrderStatusUseCase struct {
	orderRepo repository.PurchaseOrderRepository
	auditRepo repository.AuditRepository
}

// NewOrderStatusUseCase construye el caso de uso.
func NewOrderStatusUseCase(orderRepo repository.PurchaseOrderRepository, auditRepo repository.AuditRepository) *OrderStatusUseCase {
	return &OrderStatusUseCase{orderRepo: orderRepo, auditRepo: auditRepo}
}

// UpdateStatus aplica una transición manual contra la tabla de transiciones
// (DRAFT→SENT, SENT→APPROVED). No toca líneas ni saldos.
func (uc *OrderStatusUseCase) UpdateStatus(ctx context.Context, companyID, userID, orderID, newStatus string) (*dto.OrderResponse, error) {
	if !entity.ValidOrderStatus(newStatus) {
		return nil, domain.ErrInvalidInput
	}
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
	// La anulación tiene su guarda propia (recepciones); va por CancelOrder.
	if newStatus == entity.OrderStatusCanceled {
		return nil, domain.ErrInvalidTransition
	}
	if !entity.CanTransition(order.Status, newStatus) {
		return nil, domain.ErrInvalidTransition
	}
	if err := uc.orderRepo.UpdateStatus(orderID, newStatus, order.Notes); err != nil {
		return nil, err
	}
	prev := order.Status
	order.Status = newStatus

	_ = uc.auditRepo.Create(&entity.AuditLog{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		UserID:    userID,
		EntityID:  orderID,
		Action:    "PURCHASE_ORDER_STATUS",
		Detail:    fmt.Sprintf("OC-%d: %s → %s", order.Number, prev, newStatus),
		CreatedAt: time.Now(),
	})

	items, err := uc.orderRepo.GetItems(orderID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, items), nil
}

// CancelOrder anula la orden si no se ha recibido nada. Falla con conflicto de
// estado si alguna línea registra recepción; el motivo se anexa a las notas.
func (uc *OrderStatusUseCase) CancelOrder(ctx context.Context, companyID, userID, orderID, reason string) (*dto.OrderResponse, error) {
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
	if !entity.CanCancel(order.Status) {
		return nil, domain.ErrConflict
	}
	items, err := uc.orderRepo.GetItems(orderID)
	if err != nil {
		return nil, err
	}
	// Doble guarda: el estado debería bastar, pero la verdad numérica manda.
	for _, it := range items {
		if it.ReceivedQuantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrConflict
		}
	}

	notes := order.Notes
	if reason != "" {
		if notes != "" {
			notes = strings.TrimRight(notes, "\n") + "\n"
		}
		notes += "Anulada: " + reason
	}
	if err := uc.orderRepo.UpdateStatus(orderID, entity.OrderStatusCanceled, notes); err != nil {
		return nil, err
	}
	order.Status = entity.OrderStatusCanceled
	order.Notes = notes

	_ = uc.auditRepo.Create(&entity.AuditLog{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		UserID:    userID,
		EntityID:  orderID,
		Action:    "PURCHASE_ORDER_CANCELED",
		Detail:    fmt.Sprintf("OC-%d anulada: %s", order.Number, reason),
		CreatedAt: time.Now(),
	})

	return toOrderResponse(order, items), nil
}
