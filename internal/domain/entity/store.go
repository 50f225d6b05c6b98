package entity

import "time"

// Store representa una tienda (sucursal) de un tenant. El inventario se lleva por tienda.
type Store struct {
	ID        string
	TenantID  string
	Name      string
	Status    string
	CreatedAt time.Time
}
