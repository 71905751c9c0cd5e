package entity

import "time"

// Warehouse representa una bodega, obra o sucursal donde se almacena inventario.
type Warehouse struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
