package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
	"github.com/tu-usuario/retail-backoffice/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementación de StoreRepository sobre PostgreSQL (usable con pool o tx).
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador de tiendas. Pasar pool o tx (Querier).
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

// GetActive devuelve la tienda activa con ese id dentro del tenant, o nil, nil.
func (r *StoreRepo) GetActive(ctx context.Context, storeID, tenantID string) (*entity.Store, error) {
	query := `
		SELECT id, tenant_id, name, status, created_at
		FROM stores WHERE id = $1 AND tenant_id = $2 AND status = $3`
	var s entity.Store
	err := r.q.QueryRow(ctx, query, storeID, tenantID, entity.StatusActive).Scan(
		&s.ID, &s.TenantID, &s.Name, &s.Status, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return &s, nil
}

// ListActiveByTenant lista las tiendas activas de un tenant, ordenadas por nombre.
func (r *StoreRepo) ListActiveByTenant(ctx context.Context, tenantID string) ([]*entity.Store, error) {
	query := `
		SELECT id, tenant_id, name, status, created_at
		FROM stores WHERE tenant_id = $1 AND status = $2 ORDER BY name`
	rows, err := r.q.Query(ctx, query, tenantID, entity.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()
	return scanStores(rows)
}

// ListActive lista todas las tiendas activas (solo para callers globales).
func (r *StoreRepo) ListActive(ctx context.Context) ([]*entity.Store, error) {
	query := `
		SELECT id, tenant_id, name, status, created_at
		FROM stores WHERE status = $1 ORDER BY name`
	rows, err := r.q.Query(ctx, query, entity.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()
	return scanStores(rows)
}

func scanStores(rows pgx.Rows) ([]*entity.Store, error) {
	var list []*entity.Store
	for rows.Next() {
		var s entity.Store
		if err := rows.Scan(&s.ID, &s.TenantID, &s.Name, &s.Status, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
