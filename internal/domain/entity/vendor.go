package entity

import "time"

// Vendor representa un proveedor al que se le emiten órdenes de compra
// (entidad referenciada; su CRUD vive fuera de este núcleo).
type Vendor struct {
	ID        string
	CompanyID string
	Name      string
	NIT       string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
