package repository

import "github.com/jhoicas/Compras-api/internal/domain/entity"

// WarehouseRepository puerto de lectura de bodegas (el CRUD es externo).
type WarehouseRepository interface {
	GetByID(id string) (*entity.Warehouse, error)
}
