package entity

import "time"

// Inventory representa el stock disponible de un producto en una tienda.
// Exactamente una fila por par (ProductID, StoreID); las actualizaciones son
// deltas aditivos aplicados por el motor de almacenamiento, nunca overwrites.
type Inventory struct {
	ProductID     string
	StoreID       string
	StockOnHand   int64
	LastUpdatedAt time.Time
}
