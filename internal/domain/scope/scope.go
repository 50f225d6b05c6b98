package scope

import (
	"fmt"

	"github.com/tu-usuario/retail-backoffice/internal/domain"
)

// Niveles de privilegio. Menor nivel = más privilegio.
const (
	LevelRoot        = 1 // super admin global, sin filtro de tenant
	LevelTenantAdmin = 2 // administra todas las tiendas de su tenant
	LevelStoreAdmin  = 3 // limitado a su tienda
	LevelStaff       = 4
)

// AccessScope describe el alcance de acceso del caller: tenant, tienda opcional
// y si el filtro de tenant es obligatorio. Lo construye la capa de autorización
// una vez por request; es un valor inmutable que se pasa explícitamente a cada
// acceso a datos (nunca estado global ni ambient).
type AccessScope struct {
	TenantID string
	StoreID  string // vacío para callers a nivel tenant o globales
	Level    int
	Role     string
	IsRoot   bool

	// EnforceTenant en false identifica a un principal global (root): no se
	// agrega predicado de tenant a ninguna consulta.
	EnforceTenant bool
	// EnforceStore indica que el caller está restringido a su tienda (nivel >= 3).
	EnforceStore bool

	// Target tenant/tienda para operaciones de creación (override explícito).
	TargetTenantID string
	TargetStoreID  string
	// Flags para crear datos visibles en todos los tenants / todas las tiendas.
	ApplyToAllTenants bool
	ApplyToAllStores  bool
}

// ForUser construye el scope a partir de la identidad autenticada.
// Root omite todos los filtros; nivel >= 3 queda además restringido a su tienda.
func ForUser(tenantID, storeID string, level int, role string, isRoot bool) AccessScope {
	return AccessScope{
		TenantID:      tenantID,
		StoreID:       storeID,
		Level:         level,
		Role:          role,
		IsRoot:        isRoot,
		EnforceTenant: !isRoot,
		EnforceStore:  !isRoot && level >= LevelStoreAdmin,
	}
}

// InsertScope resuelve el tenant y la tienda a asignar en filas nuevas,
// honrando targets explícitos y los flags apply-to-all. Un valor vacío
// significa "global" (todos los tenants o todas las tiendas).
func (s AccessScope) InsertScope() (tenantID, storeID string) {
	if s.ApplyToAllTenants {
		return "", ""
	}
	if s.ApplyToAllStores {
		if s.TargetTenantID != "" {
			return s.TargetTenantID, ""
		}
		return s.TenantID, ""
	}
	tenantID = s.TenantID
	if s.TargetTenantID != "" {
		tenantID = s.TargetTenantID
	}
	storeID = s.StoreID
	if s.TargetStoreID != "" {
		storeID = s.TargetStoreID
	}
	return tenantID, storeID
}

// Capabilities resumen de lo que el caller puede hacer sobre el scope.
type Capabilities struct {
	CanSelectTenant      bool   `json:"can_select_tenant"`
	CanSelectStore       bool   `json:"can_select_store"`
	CanApplyToAllTenants bool   `json:"can_apply_to_all_tenants"`
	CanApplyToAllStores  bool   `json:"can_apply_to_all_stores"`
	Level                int    `json:"level"`
	IsRoot               bool   `json:"is_root"`
	CurrentTenantID      string `json:"current_tenant_id"`
	CurrentStoreID       string `json:"current_store_id,omitempty"`
}

// Capabilities calcula las capacidades del caller según su nivel de privilegio.
func (s AccessScope) Capabilities() Capabilities {
	isRoot := s.IsRoot || s.Level == LevelRoot
	isAdmin := s.Level == LevelTenantAdmin
	return Capabilities{
		CanSelectTenant:      isRoot,
		CanSelectStore:       isRoot || isAdmin,
		CanApplyToAllTenants: isRoot,
		CanApplyToAllStores:  isRoot || isAdmin,
		Level:                s.Level,
		IsRoot:               isRoot,
		CurrentTenantID:      s.TenantID,
		CurrentStoreID:       s.StoreID,
	}
}

// ValidateCreate verifica que el caller pueda crear datos en el scope indicado.
// Devuelve nil si está permitido; un error envolviendo domain.ErrForbidden si no.
func (s AccessScope) ValidateCreate(targetTenantID, targetStoreID string, allTenants, allStores bool) error {
	if s.IsRoot || s.Level == LevelRoot {
		return nil
	}
	if allTenants {
		return fmt.Errorf("solo root puede aplicar a todos los tenants: %w", domain.ErrForbidden)
	}
	if allStores {
		if s.Level != LevelTenantAdmin {
			return fmt.Errorf("solo un admin de tenant puede aplicar a todas las tiendas: %w", domain.ErrForbidden)
		}
		if targetTenantID != "" && targetTenantID != s.TenantID {
			return fmt.Errorf("no se puede aplicar a todas las tiendas de otro tenant: %w", domain.ErrForbidden)
		}
	}
	if targetTenantID != "" && targetTenantID != s.TenantID {
		return fmt.Errorf("no se pueden crear datos en otro tenant: %w", domain.ErrForbidden)
	}
	if s.Level >= LevelStoreAdmin && targetStoreID != "" && targetStoreID != s.StoreID {
		return fmt.Errorf("no se pueden crear datos en otra tienda: %w", domain.ErrForbidden)
	}
	return nil
}
