package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/retail-backoffice/internal/domain/repository"
	"github.com/tu-usuario/retail-backoffice/internal/domain/scope"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de inventario. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// AddStock aplica el delta como upsert atómico: el incremento lo computa el
// motor en una sola sentencia (nunca read-then-write de la aplicación) y
// RETURNING entrega el stock resultante.
func (r *InventoryRepo) AddStock(ctx context.Context, productID, storeID string, qty int64) (int64, error) {
	query := `
		INSERT INTO inventory (product_id, store_id, stock_on_hand, last_updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, store_id)
		DO UPDATE SET stock_on_hand = inventory.stock_on_hand + EXCLUDED.stock_on_hand, last_updated_at = now()
		RETURNING stock_on_hand`
	var newStock int64
	if err := r.q.QueryRow(ctx, query, productID, storeID, qty).Scan(&newStock); err != nil {
		return 0, fmt.Errorf("add stock: %w", err)
	}
	return newStock, nil
}

// ListByStore lista el inventario de la tienda del scope con datos del producto.
func (r *InventoryRepo) ListByStore(ctx context.Context, sc scope.AccessScope, limit, offset int) ([]repository.StoreInventoryItem, error) {
	query := `
		SELECT i.product_id, p.sku, p.name, i.stock_on_hand, i.last_updated_at
		FROM inventory i
		JOIN products p ON p.id = i.product_id`
	query, args := scope.ApplyScope(query, nil, sc, scope.ColumnMapping{
		TenantColumn: "p.tenant_id",
		StoreColumn:  "i.store_id",
	})
	query += fmt.Sprintf(" ORDER BY p.name LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var list []repository.StoreInventoryItem
	for rows.Next() {
		var it repository.StoreInventoryItem
		if err := rows.Scan(&it.ProductID, &it.SKU, &it.ProductName, &it.StockOnHand, &it.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// ListBelow lista los productos de la tienda del scope con stock por debajo del umbral.
func (r *InventoryRepo) ListBelow(ctx context.Context, sc scope.AccessScope, threshold int64) ([]repository.StoreInventoryItem, error) {
	query := `
		SELECT i.product_id, p.sku, p.name, i.stock_on_hand, i.last_updated_at
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		WHERE i.stock_on_hand < $1 AND p.is_active`
	query, args := scope.ApplyScope(query, []any{threshold}, sc, scope.ColumnMapping{
		TenantColumn: "p.tenant_id",
		StoreColumn:  "i.store_id",
	})
	query += " ORDER BY i.stock_on_hand, p.name"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	var list []repository.StoreInventoryItem
	for rows.Next() {
		var it repository.StoreInventoryItem
		if err := rows.Scan(&it.ProductID, &it.SKU, &it.ProductName, &it.StockOnHand, &it.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}
