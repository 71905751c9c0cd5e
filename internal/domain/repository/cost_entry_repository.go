package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// CostEntryRepository define el puerto de persistencia para imputaciones de costo a proyectos.
type CostEntryRepository interface {
	Create(entry *entity.CostEntry) error
	ListByProject(companyID, projectID string, limit, offset int) ([]*entity.CostEntry, error)
	SumByProject(companyID, projectID string) (decimal.Decimal, error)
}
