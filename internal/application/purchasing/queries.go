package purchasing

import (
	"context"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// QueryUseCase consultas de solo lectura sobre recibos y costos imputados.
type QueryUseCase struct {
	orderRepo   repository.PurchaseOrderRepository
	receiptRepo repository.ReceiptRepository
	costRepo    repository.CostEntryRepository
}

// NewQueryUseCase construye el caso de uso de consulta.
func NewQueryUseCase(
	orderRepo repository.PurchaseOrderRepository,
	receiptRepo repository.ReceiptRepository,
	costRepo repository.CostEntryRepository,
) *QueryUseCase {
	return &QueryUseCase{orderRepo: orderRepo, receiptRepo: receiptRepo, costRepo: costRepo}
}

// ListReceipts devuelve los recibos registrados contra una orden, con sus líneas.
func (uc *QueryUseCase) ListReceipts(ctx context.Context, companyID, orderID string) ([]dto.ReceiptResponse, error) {
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
	receipts, err := uc.receiptRepo.ListByOrder(orderID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReceiptResponse, 0, len(receipts))
	for _, r := range receipts {
		items, err := uc.receiptRepo.GetItems(r.ID)
		if err != nil {
			return nil, err
		}
		resp := dto.ReceiptResponse{
			ID:         r.ID,
			Number:     r.Number,
			ReceivedBy: r.ReceivedBy,
			Notes:      r.Notes,
			CreatedAt:  r.CreatedAt,
			Items:      make([]dto.ReceiptItemResponse, 0, len(items)),
		}
		for _, it := range items {
			resp.Items = append(resp.Items, dto.ReceiptItemResponse{
				OrderItemID: it.OrderItemID,
				Quantity:    it.Quantity,
			})
		}
		out = append(out, resp)
	}
	return out, nil
}

// GetProjectCosts devuelve el acumulado y el detalle de costos imputados a un proyecto.
// El total suma todas las filas del proyecto; el detalle respeta la página.
func (uc *QueryUseCase) GetProjectCosts(ctx context.Context, companyID, projectID string, page dto.PageRequest) (*dto.ProjectCostResponse, error) {
	if projectID == "" {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	total, err := uc.costRepo.SumByProject(companyID, projectID)
	if err != nil {
		return nil, err
	}
	entries, err := uc.costRepo.ListByProject(companyID, projectID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProjectCostResponse{
		ProjectID: projectID,
		Total:     total,
		Entries:   make([]dto.CostEntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, dto.CostEntryResponse{
			ID:          e.ID,
			Amount:      e.Amount,
			Description: e.Description,
			Category:    e.Category,
			Date:        e.Date,
		})
	}
	return resp, nil
}
