package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind tipo de movimiento del libro.
type MovementKind string

const (
	MovementIn          MovementKind = "in"
	MovementOut         MovementKind = "out"
	MovementTransferOut MovementKind = "transfer_out"
	MovementTransferIn  MovementKind = "transfer_in"
	MovementAdjustment  MovementKind = "adjustment"
)

// Valid indica si el tipo pertenece al conjunto cerrado.
func (k MovementKind) Valid() bool {
	switch k {
	case MovementIn, MovementOut, MovementTransferOut, MovementTransferIn, MovementAdjustment:
		return true
	}
	return false
}

// Direction sentido del movimiento sobre la cantidad.
// Para in/out/transfer_* se deriva del tipo; los ajustes lo llevan explícito.
type Direction string

const (
	DirectionIncrease Direction = "increase"
	DirectionDecrease Direction = "decrease"
	DirectionNone     Direction = "none" // entrada de auditoría con cantidad cero
)

// Tipos de referencia que agrupan movimientos de una misma operación.
const (
	ReferenceManual     = "manual"
	ReferenceReceipt    = "receipt"
	ReferenceSale       = "sale"
	ReferenceSerial     = "serial"
	ReferenceTransfer   = "transfer"
	ReferenceAdjustment = "adjustment"
)

// MovementEntry hecho inmutable del libro. Nunca se actualiza ni se elimina:
// las correcciones se hacen con movimientos compensatorios.
type MovementEntry struct {
	ID              string
	Sequence        int64 // orden de commit asignado por el almacén
	ProductID       string
	SerialUnitID    string // vacío si no es serializado
	WarehouseID     string
	Kind            MovementKind
	Direction       Direction
	Quantity        decimal.Decimal // magnitud, siempre >= 0
	UnitCost        decimal.Decimal
	TotalCost       decimal.Decimal
	ReferenceType   string
	ReferenceNumber string
	Note            string
	CreatedAt       time.Time
	CreatedBy       string
}
