package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
	"github.com/tu-usuario/retail-backoffice/internal/domain/repository"
	"github.com/tu-usuario/retail-backoffice/internal/domain/scope"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetForRestock obtiene el producto con su stock actual en la tienda del scope.
// El stock sale de un LEFT JOIN con inventory: un producto sin fila de
// inventario en esa tienda reporta 0. nil, nil si el producto no existe o el
// scope no lo alcanza.
func (r *ProductRepo) GetForRestock(ctx context.Context, sc scope.AccessScope, productID string) (*repository.RestockProductView, error) {
	query := `
		SELECT p.id, p.name, p.sku, p.is_active, p.purchase_cost, COALESCE(i.stock_on_hand, 0)
		FROM products p
		LEFT JOIN inventory i ON i.product_id = p.id AND i.store_id = $1
		WHERE p.id = $2`
	args := []any{sc.StoreID, productID}
	// El filtro de tienda ya vive en el JOIN; solo se inyecta el de tenant.
	query, args = scope.ApplyScope(query, args, sc, scope.ColumnMapping{TenantColumn: "p.tenant_id"})

	var v repository.RestockProductView
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&v.ID, &v.Name, &v.SKU, &v.IsActive, &v.PurchaseCost, &v.CurrentStock,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product for restock: %w", err)
	}
	return &v, nil
}

// Lock recupera el producto bloqueando su fila (SELECT ... FOR UPDATE).
// Los predicados de scope se inyectan antes de agregar FOR UPDATE.
func (r *ProductRepo) Lock(ctx context.Context, sc scope.AccessScope, productID string) (*entity.Product, error) {
	query := `
		SELECT id, tenant_id, sku, name, is_active, purchase_cost, created_at, updated_at
		FROM products WHERE id = $1`
	args := []any{productID}
	query, args = scope.ApplyScope(query, args, sc, scope.ColumnMapping{TenantColumn: "tenant_id"})
	query += " FOR UPDATE"

	var p entity.Product
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.TenantID, &p.SKU, &p.Name, &p.IsActive, &p.PurchaseCost, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock product: %w", err)
	}
	return &p, nil
}

// UpdateCost actualiza solo el costo de compra registrado (usado por el motor de restock).
func (r *ProductRepo) UpdateCost(ctx context.Context, productID string, cost decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET purchase_cost = $2, updated_at = now() WHERE id = $1`,
		productID, cost,
	)
	if err != nil {
		return fmt.Errorf("update product cost: %w", err)
	}
	return nil
}
