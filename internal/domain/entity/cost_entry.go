package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categoría de costo para recepciones de compra.
const CostCategoryPurchases = "COMPRAS"

// CostEntry imputa el costo neto de una línea recibida al proyecto que la consume.
// Una fila por línea recibida con proyecto; la crea el orquestador de recepción.
type CostEntry struct {
	ID          string
	CompanyID   string
	ProjectID   string
	Amount      decimal.Decimal // neto: precio unitario × cantidad recibida
	Description string
	Category    string
	Date        time.Time
	CreatedAt   time.Time
}
