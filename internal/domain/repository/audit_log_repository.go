package repository

import (
	"context"

	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
	"github.com/tu-usuario/retail-backoffice/internal/domain/scope"
)

// AuditLogRepository puerto para la bitácora append-only.
type AuditLogRepository interface {
	// Create persiste un registro de auditoría. Los registros nunca se
	// actualizan ni se borran.
	Create(ctx context.Context, log *entity.AuditLog) error
	// ListByTenant lista registros visibles bajo el scope, más recientes primero.
	ListByTenant(ctx context.Context, sc scope.AccessScope, limit, offset int) ([]*entity.AuditLog, error)
}
