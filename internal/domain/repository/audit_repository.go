package repository

import "github.com/jhoicas/Compras-api/internal/domain/entity"

// AuditRepository puerto del rastro de auditoría. Se invoca después del commit;
// un fallo de auditoría no revierte la operación de negocio.
type AuditRepository interface {
	Create(log *entity.AuditLog) error
}
