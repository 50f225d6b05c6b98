package repository

import (
	"context"

	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
)

// TenantRepository puerto de persistencia para tenants.
type TenantRepository interface {
	// GetActiveByID devuelve el tenant activo con ese id, o nil, nil.
	GetActiveByID(ctx context.Context, id string) (*entity.Tenant, error)
	// ListActive lista todos los tenants activos (solo para callers globales).
	ListActive(ctx context.Context) ([]*entity.Tenant, error)
}
