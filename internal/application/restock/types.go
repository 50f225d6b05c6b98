package restock

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Item una línea de un lote de reabastecimiento.
type Item struct {
	ProductID string
	Qty       int64
	UnitCost  *decimal.Decimal // opcional: nuevo costo de compra a aplicar
}

// ValidatedItem ítem enriquecido por el validador con datos confiables del
// producto y su stock al momento de la validación. Vive solo durante el pase
// validación → ejecución.
type ValidatedItem struct {
	Item
	ProductName  string
	SKU          string
	CurrentStock int64
	IsActive     bool
}

// ValidationResult decisión del validador: errores bloquean, warnings solo
// informan. IsValid es true sii la lista de errores está vacía.
type ValidationResult struct {
	IsValid        bool
	Errors         []string
	Warnings       []string
	ValidatedItems []ValidatedItem
}

// Thresholds umbrales de reglas de negocio del validador. Superarlos genera
// warnings, nunca errores.
type Thresholds struct {
	LargeQty         int64           // cantidad por ítem que pide verificación
	HighQtyItem      int64           // cantidad que marca un ítem como "alto volumen"
	BatchSizeWarn    int             // ítems por lote
	HighValue        decimal.Decimal // valor total del lote
	CostDeviationPct float64         // desviación relativa del costo (0.5 = 50%)
}

// DefaultThresholds valores de producción; ajustables por configuración (RESTOCK_*).
func DefaultThresholds() Thresholds {
	return Thresholds{
		LargeQty:         10000,
		HighQtyItem:      1000,
		BatchSizeWarn:    100,
		HighValue:        decimal.NewFromInt(1_000_000_000),
		CostDeviationPct: 0.5,
	}
}

// Options datos opcionales del lote.
type Options struct {
	SupplierRef string
	Note        string // máximo NoteMaxLen caracteres
}

// NoteMaxLen longitud máxima de la nota de un lote.
const NoteMaxLen = 500

// ItemResult resultado por ítem de un lote aplicado.
type ItemResult struct {
	ProductID string
	QtyAdded  int64
	NewStock  int64
	UnitCost  *decimal.Decimal
}

// Summary agregado del lote aplicado.
type Summary struct {
	TotalItems    int
	TotalQuantity int64
	TotalValue    decimal.Decimal
	Warnings      []string // advertencias de validación, informativas
}

// Result confirmación de un lote aplicado con detalle por ítem.
type Result struct {
	StoreID  string
	TenantID string
	Items    []ItemResult
	Summary  Summary
}

// ValidationError falla de validación con la lista completa de problemas.
// Se reporta antes de intentar cualquier mutación.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}
