package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de inventario de forma transaccional
// (IN, OUT, ADJUSTMENT, TRANSFER): asiento en el kardex + delta atómico en el saldo,
// con Commit/Rollback. El kardex nunca queda desalineado de la proyección.
type RegisterMovementUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// MovementInputDTO entrada para registrar un movimiento de inventario.
// Para IN/OUT/ADJUSTMENT: ProductID, WarehouseID, Type, Quantity (magnitud > 0).
// ADJUSTMENT lleva además Direction explícita (+1 hallazgo, -1 pérdida).
// Para TRANSFER: ProductID, FromWarehouseID, ToWarehouseID, Quantity.
type MovementInputDTO struct {
	CompanyID       string
	UserID          string
	ProductID       string
	WarehouseID     string
	FromWarehouseID string
	ToWarehouseID   string
	Type            string
	Direction       int
	Quantity        decimal.Decimal
	ProjectID       string
	Reference       string
	Description     string
}

// RegisterMovement valida la entrada, resuelve producto y bodega(s) de la empresa y
// aplica el movimiento dentro de una transacción (asiento + delta de saldo).
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (*entity.StockMovement, error) {
	if !entity.ValidMovementType(input.Type) {
		return nil, domain.ErrInvalidInput
	}
	// La cantidad es magnitud: siempre positiva, el signo vive en Direction.
	if !input.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	switch input.Type {
	case entity.MovementTypeTRANSFER:
		if input.ProductID == "" || input.FromWarehouseID == "" || input.ToWarehouseID == "" {
			return nil, domain.ErrInvalidInput
		}
		if input.FromWarehouseID == input.ToWarehouseID {
			return nil, domain.ErrInvalidInput
		}
	case entity.MovementTypeADJUSTMENT:
		if input.ProductID == "" || input.WarehouseID == "" {
			return nil, domain.ErrInvalidInput
		}
		if input.Direction != entity.DirectionIncrease && input.Direction != entity.DirectionDecrease {
			return nil, domain.ErrInvalidInput
		}
	default:
		if input.ProductID == "" || input.WarehouseID == "" {
			return nil, domain.ErrInvalidInput
		}
	}

	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != input.CompanyID {
		return nil, domain.ErrForbidden
	}

	if input.Type == entity.MovementTypeTRANSFER {
		fromWh, err := uc.warehouseRepo.GetByID(input.FromWarehouseID)
		if err != nil {
			return nil, err
		}
		toWh, err := uc.warehouseRepo.GetByID(input.ToWarehouseID)
		if err != nil {
			return nil, err
		}
		if fromWh == nil || toWh == nil || fromWh.CompanyID != input.CompanyID || toWh.CompanyID != input.CompanyID {
			return nil, domain.ErrNotFound
		}
	} else {
		wh, err := uc.warehouseRepo.GetByID(input.WarehouseID)
		if err != nil {
			return nil, err
		}
		if wh == nil || wh.CompanyID != input.CompanyID {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	var created *entity.StockMovement

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
	) error {
		switch input.Type {
		case entity.MovementTypeIN:
			m, err := applyMovement(movRepo, stockRepo, input, entity.MovementTypeIN, entity.DirectionIncrease, input.WarehouseID, now)
			created = m
			return err
		case entity.MovementTypeOUT:
			m, err := applyMovement(movRepo, stockRepo, input, entity.MovementTypeOUT, entity.DirectionDecrease, input.WarehouseID, now)
			created = m
			return err
		case entity.MovementTypeADJUSTMENT:
			m, err := applyMovement(movRepo, stockRepo, input, entity.MovementTypeADJUSTMENT, input.Direction, input.WarehouseID, now)
			created = m
			return err
		case entity.MovementTypeTRANSFER:
			m, err := doTransfer(movRepo, stockRepo, input, now)
			created = m
			return err
		}
		return domain.ErrInvalidInput
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// applyMovement escribe un asiento y su delta de saldo. Las direcciones negativas
// usan el decremento con guarda (no se permite dejar el saldo bajo cero).
func applyMovement(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	input MovementInputDTO,
	movType string, direction int, warehouseID string,
	now time.Time,
) (*entity.StockMovement, error) {
	if direction == entity.DirectionDecrease {
		if err := stockRepo.Deduct(input.ProductID, warehouseID, input.Quantity); err != nil {
			return nil, err
		}
	} else {
		if err := stockRepo.ApplyDelta(input.ProductID, warehouseID, input.Quantity); err != nil {
			return nil, err
		}
	}
	mov := &entity.StockMovement{
		ID:          uuid.New().String(),
		CompanyID:   input.CompanyID,
		ProductID:   input.ProductID,
		WarehouseID: warehouseID,
		Type:        movType,
		Direction:   direction,
		Quantity:    input.Quantity,
		ProjectID:   input.ProjectID,
		Reference:   input.Reference,
		Description: input.Description,
		Date:        now,
		CreatedAt:   now,
		CreatedBy:   input.UserID,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// doTransfer resta en la bodega origen y suma en la destino dentro de la misma tx,
// con dos asientos: un lector nunca ve el stock desaparecido del origen sin haber
// aparecido en el destino.
func doTransfer(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	input MovementInputDTO,
	now time.Time,
) (*entity.StockMovement, error) {
	out := input
	out.WarehouseID = input.FromWarehouseID
	outMov, err := applyMovement(movRepo, stockRepo, out, entity.MovementTypeTRANSFER, entity.DirectionDecrease, input.FromWarehouseID, now)
	if err != nil {
		return nil, err
	}
	in := input
	in.WarehouseID = input.ToWarehouseID
	if _, err := applyMovement(movRepo, stockRepo, in, entity.MovementTypeTRANSFER, entity.DirectionIncrease, input.ToWarehouseID, now); err != nil {
		return nil, err
	}
	return outMov, nil
}
