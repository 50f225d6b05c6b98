package entity

import (
	"encoding/json"
	"time"
)

// Acciones registradas en la bitácora.
const (
	AuditActionRestock = "restock"
)

// Tipos de entidad auditada.
const (
	AuditEntityInventory = "inventory"
)

// AuditLog registro de auditoría append-only. Un registro puede resumir un
// lote completo de varios ítems; nunca se actualiza ni se borra.
type AuditLog struct {
	ID         string
	TenantID   string
	UserID     string
	EntityType string
	EntityID   string
	Action     string
	Payload    json.RawMessage // snapshot estructurado de lo que cambió
	CreatedAt  time.Time
}
