package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// Adaptadores de solo lectura sobre el catálogo (productos, bodegas, proveedores).
// El CRUD de estas tablas vive fuera de este servicio; aquí solo se resuelven
// referencias para validar movimientos y órdenes.

var _ repository.ProductRepository = (*ProductRepo)(nil)
var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)
var _ repository.VendorRepository = (*VendorRepo)(nil)

// ProductRepo lectura de productos.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByID obtiene un producto por ID; nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `
		SELECT id, company_id, sku, name, COALESCE(description, ''), cost, tax_rate, COALESCE(unit_measure, ''), created_at, updated_at
		FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.CompanyID, &p.SKU, &p.Name, &p.Description,
		&p.Cost, &p.TaxRate, &p.UnitMeasure, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// WarehouseRepo lectura de bodegas.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// GetByID obtiene una bodega por ID; nil si no existe.
func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	query := `
		SELECT id, company_id, name, COALESCE(address, ''), created_at, updated_at
		FROM warehouses WHERE id = $1`
	var w entity.Warehouse
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&w.ID, &w.CompanyID, &w.Name, &w.Address, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return &w, nil
}

// VendorRepo lectura de proveedores.
type VendorRepo struct {
	q Querier
}

// NewVendorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVendorRepository(q Querier) *VendorRepo {
	return &VendorRepo{q: q}
}

// GetByID obtiene un proveedor por ID; nil si no existe.
func (r *VendorRepo) GetByID(id string) (*entity.Vendor, error) {
	query := `
		SELECT id, company_id, name, COALESCE(nit, ''), COALESCE(email, ''), created_at, updated_at
		FROM vendors WHERE id = $1`
	var v entity.Vendor
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.CompanyID, &v.Name, &v.NIT, &v.Email, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	return &v, nil
}
