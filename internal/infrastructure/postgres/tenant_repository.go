package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
	"github.com/tu-usuario/retail-backoffice/internal/domain/repository"
)

var _ repository.TenantRepository = (*TenantRepo)(nil)

// TenantRepo implementación de TenantRepository sobre PostgreSQL (usable con pool o tx).
type TenantRepo struct {
	q Querier
}

// NewTenantRepository construye el adaptador de tenants. Pasar pool o tx (Querier).
func NewTenantRepository(q Querier) *TenantRepo {
	return &TenantRepo{q: q}
}

// GetActiveByID devuelve el tenant activo con ese id, o nil, nil.
func (r *TenantRepo) GetActiveByID(ctx context.Context, id string) (*entity.Tenant, error) {
	query := `
		SELECT id, name, status, created_at
		FROM tenants WHERE id = $1 AND status = $2`
	var t entity.Tenant
	err := r.q.QueryRow(ctx, query, id, entity.StatusActive).Scan(&t.ID, &t.Name, &t.Status, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return &t, nil
}

// ListActive lista todos los tenants activos (solo para callers globales).
func (r *TenantRepo) ListActive(ctx context.Context) ([]*entity.Tenant, error) {
	query := `
		SELECT id, name, status, created_at
		FROM tenants WHERE status = $1 ORDER BY name`
	rows, err := r.q.Query(ctx, query, entity.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()
	var list []*entity.Tenant
	for rows.Next() {
		var t entity.Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.Status, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
