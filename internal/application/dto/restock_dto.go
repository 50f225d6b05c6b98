package dto

import "github.com/shopspring/decimal"

// RestockItemRequest línea de un lote de reabastecimiento.
type RestockItemRequest struct {
	ProductID string           `json:"product_id"`
	Qty       int64            `json:"qty"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"` // si viene, actualiza el costo registrado
}

// ExecuteRestockRequest body para POST /api/restocks.
type ExecuteRestockRequest struct {
	Items       []RestockItemRequest `json:"items"`
	SupplierRef string               `json:"supplier_ref,omitempty"`
	Note        string               `json:"note,omitempty"` // máx 500 caracteres
}

// ValidateRestockRequest body para POST /api/restocks/validate.
// Mismo shape que la ejecución; solo corre la validación consultiva.
type ValidateRestockRequest struct {
	Items []RestockItemRequest `json:"items"`
}

// RestockItemResultDTO resultado por producto de un lote aplicado.
type RestockItemResultDTO struct {
	ProductID string           `json:"product_id"`
	QtyAdded  int64            `json:"qty_added"`
	NewStock  int64            `json:"new_stock"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
}

// RestockSummaryDTO agregados del lote.
type RestockSummaryDTO struct {
	TotalItems    int             `json:"total_items"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
	Warnings      []string        `json:"warnings"`
}

// ExecuteRestockResponse respuesta de POST /api/restocks.
type ExecuteRestockResponse struct {
	StoreID  string                 `json:"store_id"`
	TenantID string                 `json:"tenant_id"`
	Items    []RestockItemResultDTO `json:"items"`
	Summary  RestockSummaryDTO      `json:"summary"`
}

// ValidateRestockResponse respuesta de POST /api/restocks/validate.
type ValidateRestockResponse struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}
