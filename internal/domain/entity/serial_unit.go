package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SerialStatus estado de una unidad serializada (enumeración cerrada).
type SerialStatus string

const (
	SerialAvailable   SerialStatus = "available"
	SerialReserved    SerialStatus = "reserved"
	SerialSold        SerialStatus = "sold"
	SerialDamaged     SerialStatus = "damaged"
	SerialTransferred SerialStatus = "transferred"
)

// Valid indica si el estado pertenece al conjunto cerrado.
func (s SerialStatus) Valid() bool {
	switch s {
	case SerialAvailable, SerialReserved, SerialSold, SerialDamaged, SerialTransferred:
		return true
	}
	return false
}

// InStock indica si la unidad cuenta en la cantidad de su bodega.
func (s SerialStatus) InStock() bool {
	return s == SerialAvailable || s == SerialReserved || s == SerialTransferred
}

// SerialUnit una unidad física rastreada individualmente.
// Los costos se congelan al recibirla. Nunca se elimina.
type SerialUnit struct {
	ID              string
	SerialCode      string // único global
	ProductID       string
	WarehouseID     string
	UnitCost        decimal.Decimal
	SellingPrice    decimal.Decimal
	SupplierPrice   decimal.Decimal
	Status          SerialStatus
	ReferenceNumber string // operación que la cambió por última vez
	HoldReference   string // número de traslado que la retiene mientras está pendiente
	ReceivedAt      time.Time
	SoldAt          *time.Time
	BuyerID         string
	UpdatedAt       time.Time
}

// Held indica si la unidad está retenida por un traslado pendiente.
func (u *SerialUnit) Held() bool {
	return u.HoldReference != ""
}
