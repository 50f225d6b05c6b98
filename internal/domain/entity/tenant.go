package entity

import "time"

// Estados posibles de un tenant o tienda.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Tenant representa una organización cliente del back-office (aislamiento de datos por tenant).
type Tenant struct {
	ID        string
	Name      string
	Status    string
	CreatedAt time.Time
}
