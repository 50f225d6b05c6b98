package restock

import (
	"context"

	"github.com/tu-usuario/retail-backoffice/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el lote completo:
// si fn devuelve error, todo lo aplicado se revierte.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		invRepo repository.InventoryRepository,
		auditRepo repository.AuditLogRepository,
	) error) error
}
