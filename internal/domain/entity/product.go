package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de un tenant.
// PurchaseCost es el último costo de compra registrado; el stock se lleva por tienda en Inventory.
type Product struct {
	ID           string
	TenantID     string
	SKU          string // código único por tenant
	Name         string
	IsActive     bool
	PurchaseCost decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
