package scopesvc

import (
	"context"
	"fmt"

	"github.com/tu-usuario/retail-backoffice/internal/domain"
	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
	"github.com/tu-usuario/retail-backoffice/internal/domain/repository"
	"github.com/tu-usuario/retail-backoffice/internal/domain/scope"
)

// Service resuelve qué tenants y tiendas puede ver u operar un caller según su
// scope. Lo consumen los selectores del back-office y las validaciones de
// creación de datos.
type Service struct {
	tenantRepo repository.TenantRepository
	storeRepo  repository.StoreRepository
}

// NewService construye el servicio de scope.
func NewService(tenantRepo repository.TenantRepository, storeRepo repository.StoreRepository) *Service {
	return &Service{tenantRepo: tenantRepo, storeRepo: storeRepo}
}

// TenantAccess tenant visible para el caller.
type TenantAccess struct {
	Tenant        entity.Tenant
	CanApplyToAll bool
}

// StoreAccess tienda visible para el caller.
type StoreAccess struct {
	Store         entity.Store
	CanApplyToAll bool
}

// AccessibleTenants lista los tenants que el caller puede ver: root ve todos
// los activos; cualquier otro nivel solo el suyo.
func (s *Service) AccessibleTenants(ctx context.Context, sc scope.AccessScope) ([]TenantAccess, error) {
	if sc.IsRoot || sc.Level == scope.LevelRoot {
		tenants, err := s.tenantRepo.ListActive(ctx)
		if err != nil {
			return nil, fmt.Errorf("list tenants: %w", err)
		}
		out := make([]TenantAccess, 0, len(tenants))
		for _, t := range tenants {
			out = append(out, TenantAccess{Tenant: *t, CanApplyToAll: true})
		}
		return out, nil
	}

	tenant, err := s.tenantRepo.GetActiveByID(ctx, sc.TenantID)
	if err != nil {
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	if tenant == nil {
		return []TenantAccess{}, nil
	}
	return []TenantAccess{{Tenant: *tenant}}, nil
}

// AccessibleStores lista las tiendas que el caller puede ver dentro de un
// tenant. Root ve todas (opcionalmente filtradas por tenantID); un admin de
// tenant ve las de su tenant; nivel >= 3 solo su propia tienda. Pedir tiendas
// de un tenant ajeno sin ser root es un acceso denegado, no una lista vacía.
func (s *Service) AccessibleStores(ctx context.Context, sc scope.AccessScope, tenantID string) ([]StoreAccess, error) {
	if sc.IsRoot || sc.Level == scope.LevelRoot {
		var (
			stores []*entity.Store
			err    error
		)
		if tenantID != "" {
			stores, err = s.storeRepo.ListActiveByTenant(ctx, tenantID)
		} else {
			stores, err = s.storeRepo.ListActive(ctx)
		}
		if err != nil {
			return nil, fmt.Errorf("list stores: %w", err)
		}
		out := make([]StoreAccess, 0, len(stores))
		for _, st := range stores {
			out = append(out, StoreAccess{Store: *st, CanApplyToAll: true})
		}
		return out, nil
	}

	if tenantID != "" && tenantID != sc.TenantID {
		return nil, fmt.Errorf("tiendas de otro tenant: %w", domain.ErrForbidden)
	}

	if sc.Level == scope.LevelTenantAdmin {
		stores, err := s.storeRepo.ListActiveByTenant(ctx, sc.TenantID)
		if err != nil {
			return nil, fmt.Errorf("list stores: %w", err)
		}
		out := make([]StoreAccess, 0, len(stores))
		for _, st := range stores {
			out = append(out, StoreAccess{Store: *st, CanApplyToAll: true})
		}
		return out, nil
	}

	if sc.StoreID == "" {
		return []StoreAccess{}, nil
	}
	store, err := s.storeRepo.GetActive(ctx, sc.StoreID, sc.TenantID)
	if err != nil {
		return nil, fmt.Errorf("get store: %w", err)
	}
	if store == nil {
		return []StoreAccess{}, nil
	}
	return []StoreAccess{{Store: *store}}, nil
}

// Capabilities expone las capacidades del caller (delegado al scope).
func (s *Service) Capabilities(sc scope.AccessScope) scope.Capabilities {
	return sc.Capabilities()
}
