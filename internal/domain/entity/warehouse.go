package entity

import "time"

// Warehouse representa una bodega. Solo las bodegas activas reciben movimientos.
type Warehouse struct {
	ID        string
	Code      string // único
	Name      string
	Address   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
