package repository

import "github.com/jhoicas/Compras-api/internal/domain/entity"

// VendorRepository puerto de lectura de proveedores (el CRUD es externo).
type VendorRepository interface {
	GetByID(id string) (*entity.Vendor, error)
}
