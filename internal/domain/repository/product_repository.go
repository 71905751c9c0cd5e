package repository

import "github.com/jhoicas/Compras-api/internal/domain/entity"

// ProductRepository puerto de lectura del catálogo de productos.
// El CRUD completo del catálogo vive fuera de este núcleo; aquí solo se resuelven
// referencias para validar movimientos y líneas de orden.
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
}
