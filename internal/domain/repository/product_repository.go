package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
	"github.com/tu-usuario/retail-backoffice/internal/domain/scope"
)

// RestockProductView producto enriquecido con el stock actual en la tienda del
// scope, tal como lo consume el validador de reabastecimiento. Se descarta al
// terminar el pase de validación; nunca se persiste.
type RestockProductView struct {
	ID           string
	Name         string
	SKU          string
	IsActive     bool
	PurchaseCost decimal.Decimal
	CurrentStock int64
}

// ProductRepository puerto de persistencia para productos.
// Todas las lecturas reciben el AccessScope y deben filtrar por él.
type ProductRepository interface {
	// GetForRestock devuelve el producto con su stock actual en la tienda del
	// scope (join con inventory). nil, nil si no existe o no es visible bajo el scope.
	GetForRestock(ctx context.Context, sc scope.AccessScope, productID string) (*RestockProductView, error)
	// Lock recupera el producto bloqueando su fila (SELECT ... FOR UPDATE).
	// Solo tiene sentido dentro de una transacción; serializa restocks
	// concurrentes del mismo producto. nil, nil si no resuelve bajo el scope.
	Lock(ctx context.Context, sc scope.AccessScope, productID string) (*entity.Product, error)
	// UpdateCost actualiza el costo de compra registrado del producto.
	UpdateCost(ctx context.Context, productID string, cost decimal.Decimal) error
}
