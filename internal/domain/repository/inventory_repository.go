package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/retail-backoffice/internal/domain/scope"
)

// StoreInventoryItem fila de inventario de una tienda con datos del producto.
type StoreInventoryItem struct {
	ProductID     string
	SKU           string
	ProductName   string
	StockOnHand   int64
	LastUpdatedAt time.Time
}

// InventoryRepository puerto de persistencia para el inventario por tienda.
type InventoryRepository interface {
	// AddStock aplica el delta como upsert atómico sobre (productID, storeID):
	// inserta la fila con qty si no existe, o suma qty al stock existente. El
	// incremento lo computa el motor de almacenamiento en una sola sentencia,
	// nunca como read-then-write del lado de la aplicación. Devuelve el stock
	// resultante.
	AddStock(ctx context.Context, productID, storeID string, qty int64) (int64, error)
	// ListByStore lista el inventario de la tienda del scope con paginación.
	ListByStore(ctx context.Context, sc scope.AccessScope, limit, offset int) ([]StoreInventoryItem, error)
	// ListBelow lista los productos de la tienda del scope con stock menor al umbral.
	ListBelow(ctx context.Context, sc scope.AccessScope, threshold int64) ([]StoreInventoryItem, error)
}
