package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// KardexUseCase consultas de solo lectura sobre el kardex y los saldos.
// Nunca muta el kardex ni la proyección.
type KardexUseCase struct {
	movRepo     repository.StockMovementRepository
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
}

// NewKardexUseCase construye el caso de uso de consulta.
func NewKardexUseCase(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) *KardexUseCase {
	return &KardexUseCase{movRepo: movRepo, stockRepo: stockRepo, productRepo: productRepo}
}

// GetKardex devuelve el historial de movimientos de un producto, del más reciente
// al más antiguo, acotado por la página. Reinvocable con los mismos argumentos
// para releer el mismo corte lógico (módulo escrituras nuevas).
func (uc *KardexUseCase) GetKardex(ctx context.Context, companyID, productID string, from, to *time.Time, page dto.PageRequest) ([]dto.MovementResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	movements, err := uc.movRepo.ListByProduct(companyID, productID, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(movements), nil
}

// GetWarehouseKardex devuelve los movimientos de una bodega, del más reciente al
// más antiguo. El filtro por empresa va en la consulta: una bodega ajena da vacío.
func (uc *KardexUseCase) GetWarehouseKardex(ctx context.Context, companyID, warehouseID string, from, to *time.Time, page dto.PageRequest) ([]dto.MovementResponse, error) {
	page.DefaultPage()
	movements, err := uc.movRepo.ListByWarehouse(companyID, warehouseID, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(movements), nil
}

func toMovementResponses(movements []*entity.StockMovement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementResponse{
			ID:          m.ID,
			ProductID:   m.ProductID,
			WarehouseID: m.WarehouseID,
			Type:        m.Type,
			Direction:   m.Direction,
			Quantity:    m.Quantity,
			ProjectID:   m.ProjectID,
			Reference:   m.Reference,
			Description: m.Description,
			Date:        m.Date,
			CreatedBy:   m.CreatedBy,
		})
	}
	return out
}

// GetStock devuelve el saldo actual del par (producto, bodega); cero si no hay fila.
func (uc *KardexUseCase) GetStock(ctx context.Context, productID, warehouseID string) (decimal.Decimal, error) {
	stock, err := uc.stockRepo.Get(productID, warehouseID)
	if err != nil {
		return decimal.Zero, err
	}
	return stock.Quantity, nil
}

// CheckConsistency reproduce el kardex del par (producto, bodega) desde cero y lo
// contrasta con el saldo almacenado. Ambos deben coincidir exactamente.
func (uc *KardexUseCase) CheckConsistency(ctx context.Context, productID, warehouseID string) (*dto.ConsistencyResponse, error) {
	stored, err := uc.stockRepo.Get(productID, warehouseID)
	if err != nil {
		return nil, err
	}
	replayed, err := uc.movRepo.SumDeltas(productID, warehouseID)
	if err != nil {
		return nil, err
	}
	return &dto.ConsistencyResponse{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Stored:      stored.Quantity,
		Replayed:    replayed,
		Consistent:  stored.Quantity.Equal(replayed),
	}, nil
}
