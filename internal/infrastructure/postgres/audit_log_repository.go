package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/retail-backoffice/internal/domain"
	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
	"github.com/tu-usuario/retail-backoffice/internal/domain/repository"
	"github.com/tu-usuario/retail-backoffice/internal/domain/scope"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo implementación de AuditLogRepository sobre PostgreSQL (usable con pool o tx).
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador de la bitácora. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create persiste un registro de auditoría. La tabla es append-only.
func (r *AuditLogRepo) Create(ctx context.Context, log *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, tenant_id, user_id, entity_type, entity_id, action, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		log.ID, log.TenantID, log.UserID, log.EntityType, log.EntityID, log.Action, log.Payload, log.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// ListByTenant lista registros visibles bajo el scope, más recientes primero.
func (r *AuditLogRepo) ListByTenant(ctx context.Context, sc scope.AccessScope, limit, offset int) ([]*entity.AuditLog, error) {
	query := `
		SELECT id, tenant_id, user_id, entity_type, entity_id, action, payload, created_at
		FROM audit_logs`
	query, args := scope.ApplyScope(query, nil, sc, scope.ColumnMapping{TenantColumn: "tenant_id"})
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditLog
	for rows.Next() {
		var l entity.AuditLog
		if err := rows.Scan(&l.ID, &l.TenantID, &l.UserID, &l.EntityType, &l.EntityID, &l.Action, &l.Payload, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
