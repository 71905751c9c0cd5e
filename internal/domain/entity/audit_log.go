package entity

import "time"

// AuditLog es un rastro de auditoría sobre cambios de estado (orden creada,
// enviada, recibida, anulada). Se escribe después del commit, best-effort.
type AuditLog struct {
	ID        string
	CompanyID string
	UserID    string
	EntityID  string
	Action    string
	Detail    string
	CreatedAt time.Time
}
