package inventory

import (
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// SerialEffect efecto en el libro y en el contador de una transición de unidad.
type SerialEffect struct {
	Kind          entity.MovementKind
	Direction     entity.Direction
	Units         int64 // 0 para cambios puros de estado, 1 cuando entra o sale la unidad
	ReservedDelta int64 // variación de Reserved en la bodega de la unidad
}

var serialEdges = map[entity.SerialStatus]map[entity.SerialStatus]SerialEffect{
	entity.SerialAvailable: {
		entity.SerialReserved:    {Kind: entity.MovementAdjustment, Direction: entity.DirectionNone, ReservedDelta: 1},
		entity.SerialSold:        {Kind: entity.MovementOut, Direction: entity.DirectionDecrease, Units: 1},
		entity.SerialDamaged:     {Kind: entity.MovementAdjustment, Direction: entity.DirectionDecrease, Units: 1},
		entity.SerialTransferred: {Kind: entity.MovementTransferOut, Direction: entity.DirectionDecrease, Units: 1},
	},
	entity.SerialReserved: {
		entity.SerialSold:      {Kind: entity.MovementOut, Direction: entity.DirectionDecrease, Units: 1, ReservedDelta: -1},
		entity.SerialAvailable: {Kind: entity.MovementAdjustment, Direction: entity.DirectionNone, ReservedDelta: -1},
	},
	entity.SerialTransferred: {
		entity.SerialAvailable: {Kind: entity.MovementAdjustment, Direction: entity.DirectionNone, ReservedDelta: -1},
	},
}

// CanTransitionSerial indica si la arista pertenece al grafo cerrado de estados.
func CanTransitionSerial(from, to entity.SerialStatus) bool {
	_, ok := serialEdges[from][to]
	return ok
}

// PlanSerialTransition devuelve el efecto de la arista from -> to o
// InvalidTransitionError si no está en la tabla. sold y damaged son terminales
// fuera de los ajustes.
func PlanSerialTransition(unitID string, from, to entity.SerialStatus) (SerialEffect, error) {
	eff, ok := serialEdges[from][to]
	if !ok {
		return SerialEffect{}, &domain.InvalidTransitionError{
			Entity: "serial_unit", ID: unitID, From: string(from), To: string(to),
		}
	}
	return eff, nil
}
