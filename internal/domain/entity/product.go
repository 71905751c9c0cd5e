package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo (entidad referenciada; su CRUD
// vive fuera de este núcleo). Cost es el costo por defecto usado como referencia.
type Product struct {
	ID          string
	CompanyID   string
	SKU         string // código único por empresa
	Name        string
	Description string
	Cost        decimal.Decimal
	TaxRate     decimal.Decimal
	UnitMeasure string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
