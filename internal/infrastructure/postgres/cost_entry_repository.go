package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

var _ repository.CostEntryRepository = (*CostEntryRepo)(nil)

// CostEntryRepo implementación sobre PostgreSQL (usable con pool o tx).
type CostEntryRepo struct {
	q Querier
}

// NewCostEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCostEntryRepository(q Querier) *CostEntryRepo {
	return &CostEntryRepo{q: q}
}

// Create persiste una imputación de costo a proyecto.
func (r *CostEntryRepo) Create(entry *entity.CostEntry) error {
	query := `
		INSERT INTO cost_entries (id, company_id, project_id, amount, description, category, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.CompanyID, entry.ProjectID, entry.Amount,
		entry.Description, entry.Category, entry.Date, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create cost entry: %w", err)
	}
	return nil
}

// ListByProject lista las imputaciones de un proyecto, más recientes primero.
func (r *CostEntryRepo) ListByProject(companyID, projectID string, limit, offset int) ([]*entity.CostEntry, error) {
	query := `
		SELECT id, company_id, project_id, amount, description, category, date, created_at
		FROM cost_entries WHERE company_id = $1 AND project_id = $2
		ORDER BY date DESC, created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, companyID, projectID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cost entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.CostEntry
	for rows.Next() {
		var e entity.CostEntry
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.ProjectID, &e.Amount, &e.Description, &e.Category, &e.Date, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cost entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// SumByProject suma los costos imputados a un proyecto.
func (r *CostEntryRepo) SumByProject(companyID, projectID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM cost_entries WHERE company_id = $1 AND project_id = $2`
	var sum decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, companyID, projectID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum cost entries: %w", err)
	}
	return sum, nil
}
