package restock

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-backoffice/internal/domain"
	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
	"github.com/tu-usuario/retail-backoffice/internal/domain/repository"
	"github.com/tu-usuario/retail-backoffice/internal/domain/scope"
	"github.com/tu-usuario/retail-backoffice/pkg/logger"
)

// ExecuteRestockUseCase aplica un lote validado de incrementos de stock como
// una unidad de trabajo todo-o-nada: una transacción, upserts atómicos por
// ítem y un registro de auditoría por lote. Cualquier error en cualquier paso
// descarta el lote completo; no existe el reabastecimiento parcial.
type ExecuteRestockUseCase struct {
	txRunner  TxRunner
	validator *Validator
	log       *logger.Logger
}

// NewExecuteRestockUseCase construye el caso de uso.
func NewExecuteRestockUseCase(txRunner TxRunner, validator *Validator, log *logger.Logger) *ExecuteRestockUseCase {
	return &ExecuteRestockUseCase{txRunner: txRunner, validator: validator, log: log}
}

// auditItem detalle por producto dentro del payload de auditoría.
type auditItem struct {
	ProductID   string `json:"product_id"`
	SKU         string `json:"sku"`
	ProductName string `json:"product_name"`
	QtyAdded    int64  `json:"qty_added"`
	BeforeStock int64  `json:"before_stock"`
	AfterStock  int64  `json:"after_stock"`
}

// auditPayload snapshot estructurado de lo que cambió en un lote.
type auditPayload struct {
	StoreID       string          `json:"store_id"`
	TotalItems    int             `json:"total_items"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
	SupplierRef   string          `json:"supplier_ref,omitempty"`
	Note          string          `json:"note,omitempty"`
	Items         []auditItem     `json:"items"`
}

// Execute re-valida el lote y, si pasa, lo aplica dentro de una transacción:
//
//  1. Rechaza antes de abrir transacción si la validación falla, con la lista
//     completa de errores (ValidationError).
//  2. Por ítem, en el orden recibido: re-confirma el producto bajo scope
//     bloqueando su fila (el bloqueo también serializa la actualización de
//     costo frente a restocks concurrentes del mismo producto); si ya no
//     existe, aborta el lote entero.
//  3. Incremento de stock como upsert atómico sobre (producto, tienda): el
//     delta lo computa el motor, nunca un read-then-write de la aplicación.
//  4. Si el ítem trae costo, actualiza el costo registrado del producto.
//  5. Lee el stock resultante para el reporte.
//  6. Un registro de auditoría resume el lote; luego Commit. Cualquier error
//     revierte todo y se propaga sin alterar.
func (uc *ExecuteRestockUseCase) Execute(
	ctx context.Context,
	sc scope.AccessScope,
	actorUserID string,
	items []Item,
	opts Options,
) (*Result, error) {
	if len(opts.Note) > NoteMaxLen {
		return nil, fmt.Errorf("note exceeds %d characters: %w", NoteMaxLen, domain.ErrInvalidInput)
	}

	// Re-validación defensiva: la salida del validador externo es consultiva;
	// la autoridad es este pase más los chequeos dentro de la transacción.
	validation, err := uc.validator.Validate(ctx, sc, items)
	if err != nil {
		return nil, err
	}
	if !validation.IsValid {
		return nil, &ValidationError{Errors: validation.Errors}
	}
	for _, w := range validation.Warnings {
		uc.log.Warn().
			Str("tenant_id", sc.TenantID).
			Str("store_id", sc.StoreID).
			Str("user_id", actorUserID).
			Msg(w)
	}

	now := time.Now()
	results := make([]ItemResult, 0, len(validation.ValidatedItems))
	auditItems := make([]auditItem, 0, len(validation.ValidatedItems))
	var totalQty int64
	totalValue := decimal.Zero

	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		invRepo repository.InventoryRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		for _, item := range validation.ValidatedItems {
			// Defensa contra cambios entre validación y ejecución: el producto
			// debe seguir resolviendo bajo el scope. FOR UPDATE serializa
			// restocks concurrentes del mismo producto.
			product, err := productRepo.Lock(ctx, sc, item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("product %s no longer available: %w", item.ProductID, domain.ErrNotFound)
			}

			newStock, err := invRepo.AddStock(ctx, item.ProductID, sc.StoreID, item.Qty)
			if err != nil {
				return err
			}

			if item.UnitCost != nil {
				if err := productRepo.UpdateCost(ctx, item.ProductID, *item.UnitCost); err != nil {
					return err
				}
				totalValue = totalValue.Add(item.UnitCost.Mul(decimal.NewFromInt(item.Qty)))
			}

			totalQty += item.Qty
			results = append(results, ItemResult{
				ProductID: item.ProductID,
				QtyAdded:  item.Qty,
				NewStock:  newStock,
				UnitCost:  item.UnitCost,
			})
			auditItems = append(auditItems, auditItem{
				ProductID:   item.ProductID,
				SKU:         item.SKU,
				ProductName: item.ProductName,
				QtyAdded:    item.Qty,
				BeforeStock: newStock - item.Qty,
				AfterStock:  newStock,
			})
		}

		payload, err := json.Marshal(auditPayload{
			StoreID:       sc.StoreID,
			TotalItems:    len(auditItems),
			TotalQuantity: totalQty,
			TotalValue:    totalValue,
			SupplierRef:   opts.SupplierRef,
			Note:          opts.Note,
			Items:         auditItems,
		})
		if err != nil {
			return fmt.Errorf("marshal audit payload: %w", err)
		}
		return auditRepo.Create(ctx, &entity.AuditLog{
			ID:         uuid.New().String(),
			TenantID:   sc.TenantID,
			UserID:     actorUserID,
			EntityType: entity.AuditEntityInventory,
			EntityID:   sc.StoreID,
			Action:     entity.AuditActionRestock,
			Payload:    payload,
			CreatedAt:  now,
		})
	})
	if err != nil {
		uc.log.Error().
			Err(err).
			Str("tenant_id", sc.TenantID).
			Str("store_id", sc.StoreID).
			Int("items", len(items)).
			Msg("restock revertido")
		return nil, err
	}

	uc.log.Info().
		Str("tenant_id", sc.TenantID).
		Str("store_id", sc.StoreID).
		Str("user_id", actorUserID).
		Int("items", len(results)).
		Int64("total_qty", totalQty).
		Msg("restock aplicado")

	return &Result{
		StoreID:  sc.StoreID,
		TenantID: sc.TenantID,
		Items:    results,
		Summary: Summary{
			TotalItems:    len(results),
			TotalQuantity: totalQty,
			TotalValue:    totalValue,
			Warnings:      validation.Warnings,
		},
	}, nil
}
