package restock

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-backoffice/internal/domain/repository"
	"github.com/tu-usuario/retail-backoffice/internal/domain/scope"
)

// Validator valida lotes de reabastecimiento sin mutar estado: chequeos
// estructurales, acceso bajo scope y reglas de negocio. Recolecta todos los
// problemas en un solo pase (nunca fail-fast) para que el caller vea la lista
// completa en una sola vuelta.
type Validator struct {
	productRepo repository.ProductRepository
	thresholds  Thresholds
}

// NewValidator construye el validador.
func NewValidator(productRepo repository.ProductRepository, thresholds Thresholds) *Validator {
	return &Validator{productRepo: productRepo, thresholds: thresholds}
}

// Validate produce la decisión aceptar/rechazar del lote más los ítems
// enriquecidos para el ejecutor. Solo lecturas; el error de retorno es
// exclusivamente de infraestructura (fallo de consulta), no de negocio.
func (v *Validator) Validate(ctx context.Context, sc scope.AccessScope, items []Item) (*ValidationResult, error) {
	result := &ValidationResult{ValidatedItems: []ValidatedItem{}}

	// El reabastecimiento siempre es por tienda: sin tienda en el scope no hay
	// nada que chequear por ítem.
	if sc.StoreID == "" {
		result.Errors = append(result.Errors, "store id is required for restocking operations")
		return result, nil
	}

	if dups := duplicatedIDs(items); len(dups) > 0 {
		result.Errors = append(result.Errors,
			fmt.Sprintf("duplicate products found in request: %s", strings.Join(dups, ", ")))
	}

	for _, item := range items {
		if err := v.validateItem(ctx, sc, item, result); err != nil {
			return nil, err
		}
	}

	v.applyBusinessRules(items, result)

	result.IsValid = len(result.Errors) == 0
	return result, nil
}

// validateItem chequea un ítem contra el catálogo y el inventario de la tienda
// del scope. El ítem se excluye de ValidatedItems solo cuando el producto no
// resuelve; los demás errores se acumulan sin cortar el pase.
func (v *Validator) validateItem(ctx context.Context, sc scope.AccessScope, item Item, result *ValidationResult) error {
	view, err := v.productRepo.GetForRestock(ctx, sc, item.ProductID)
	if err != nil {
		return fmt.Errorf("validate restock item %s: %w", item.ProductID, err)
	}
	if view == nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("product %s not found or not accessible", item.ProductID))
		return nil
	}

	if !view.IsActive {
		result.Errors = append(result.Errors,
			fmt.Sprintf("product %q is inactive and cannot be restocked", view.Name))
	}

	if item.Qty <= 0 {
		result.Errors = append(result.Errors,
			fmt.Sprintf("invalid quantity %d for product %q", item.Qty, view.Name))
	} else if item.Qty > v.thresholds.LargeQty {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("large quantity %d for product %q - please verify", item.Qty, view.Name))
	}

	if item.UnitCost != nil {
		v.validateUnitCost(item, view, result)
	}

	result.ValidatedItems = append(result.ValidatedItems, ValidatedItem{
		Item:         item,
		ProductName:  view.Name,
		SKU:          view.SKU,
		CurrentStock: view.CurrentStock,
		IsActive:     view.IsActive,
	})
	return nil
}

// validateUnitCost: negativo es error; una desviación mayor al umbral respecto
// del costo registrado es warning con valor viejo y nuevo — nunca bloquea.
func (v *Validator) validateUnitCost(item Item, view *repository.RestockProductView, result *ValidationResult) {
	cost := *item.UnitCost
	if cost.IsNegative() {
		result.Errors = append(result.Errors,
			fmt.Sprintf("invalid unit cost %s for product %q", cost.String(), view.Name))
		return
	}
	current := view.PurchaseCost
	if current.IsPositive() && cost.IsPositive() {
		deviation := cost.Sub(current).Abs().Div(current)
		if deviation.GreaterThan(decimal.NewFromFloat(v.thresholds.CostDeviationPct)) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("cost change for %q: %s -> %s", view.Name, current.String(), cost.String()))
		}
	}
}

// applyBusinessRules reglas agregadas sobre el lote completo. Existen para
// marcar riesgo al operador, no como límite duro: todas producen warnings.
func (v *Validator) applyBusinessRules(items []Item, result *ValidationResult) {
	totalValue := batchValue(result.ValidatedItems)
	if totalValue.GreaterThan(v.thresholds.HighValue) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("very large restock value: %s - please verify authorization", totalValue.String()))
	}

	var highQty []string
	for _, item := range result.ValidatedItems {
		if item.Qty > v.thresholds.HighQtyItem {
			highQty = append(highQty, fmt.Sprintf("%s (%d)", item.ProductName, item.Qty))
		}
	}
	if len(highQty) > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("high quantity items detected: %s", strings.Join(highQty, ", ")))
	}

	if len(items) > v.thresholds.BatchSizeWarn {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("large number of items in single restock: %d", len(items)))
	}
}

// duplicatedIDs devuelve los productId repetidos, cada uno una sola vez, en
// orden de primera aparición.
func duplicatedIDs(items []Item) []string {
	seen := make(map[string]int, len(items))
	var dups []string
	for _, item := range items {
		seen[item.ProductID]++
		if seen[item.ProductID] == 2 {
			dups = append(dups, item.ProductID)
		}
	}
	return dups
}

// batchValue valor total del lote: Σ qty × unitCost (costo ausente cuenta 0).
func batchValue(items []ValidatedItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if item.UnitCost != nil {
			total = total.Add(item.UnitCost.Mul(decimal.NewFromInt(item.Qty)))
		}
	}
	return total
}
