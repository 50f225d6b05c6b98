package repository

import (
	"context"

	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
)

// StoreRepository puerto de persistencia para tiendas.
type StoreRepository interface {
	// GetActive devuelve la tienda activa con ese id dentro del tenant, o nil, nil.
	GetActive(ctx context.Context, storeID, tenantID string) (*entity.Store, error)
	// ListActiveByTenant lista las tiendas activas de un tenant, ordenadas por nombre.
	ListActiveByTenant(ctx context.Context, tenantID string) ([]*entity.Store, error)
	// ListActive lista todas las tiendas activas (solo para callers globales).
	ListActive(ctx context.Context) ([]*entity.Store, error)
}
