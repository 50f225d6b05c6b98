package dto

import "time"

// TenantAccessDTO tenant visible para el caller en GET /api/scope/tenants.
type TenantAccessDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	CanApplyToAll bool   `json:"can_apply_to_all"`
}

// StoreAccessDTO tienda visible para el caller en GET /api/scope/stores.
type StoreAccessDTO struct {
	ID            string `json:"id"`
	TenantID      string `json:"tenant_id"`
	Name          string `json:"name"`
	CanApplyToAll bool   `json:"can_apply_to_all"`
}

// StoreInventoryItemDTO fila de inventario por tienda.
type StoreInventoryItemDTO struct {
	ProductID     string    `json:"product_id"`
	SKU           string    `json:"sku"`
	ProductName   string    `json:"product_name"`
	StockOnHand   int64     `json:"stock_on_hand"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

// AuditLogDTO registro de auditoría en GET /api/audit-logs.
type AuditLogDTO struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id"`
	UserID     string    `json:"user_id"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Action     string    `json:"action"`
	Payload    any       `json:"payload"`
	CreatedAt  time.Time `json:"created_at"`
}
