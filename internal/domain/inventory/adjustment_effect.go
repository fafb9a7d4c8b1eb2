package inventory

import (
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// AdjustmentEffect efecto planificado para un ítem de ajuste.
type AdjustmentEffect struct {
	NewStatus          entity.SerialStatus // vacío: la unidad no cambia de estado
	Direction          entity.Direction
	Units              int64
	ReleaseReservation bool // la unidad tenía una reserva en su bodega
}

// PlanAdjustment traduce (tipo, estado actual, faltante) al efecto sobre libro y registro.
// Es la única vía para sacar una unidad de sold o damaged.
func PlanAdjustment(adjType entity.AdjustmentType, unit *entity.SerialUnit, missing bool) (AdjustmentEffect, error) {
	status := unit.Status
	switch adjType {
	case entity.AdjustmentCorrection:
		return AdjustmentEffect{Direction: entity.DirectionNone}, nil

	case entity.AdjustmentFound:
		return restore(unit)

	case entity.AdjustmentCount:
		if missing {
			return writeOff(unit)
		}
		if status.InStock() {
			// conteo confirmado
			return AdjustmentEffect{Direction: entity.DirectionNone}, nil
		}
		return restore(unit)

	case entity.AdjustmentDamage, entity.AdjustmentLoss:
		return writeOff(unit)
	}
	return AdjustmentEffect{}, domain.NewValidationError("type", "unknown")
}

func restore(unit *entity.SerialUnit) (AdjustmentEffect, error) {
	switch unit.Status {
	case entity.SerialSold, entity.SerialDamaged:
		return AdjustmentEffect{
			NewStatus: entity.SerialAvailable,
			Direction: entity.DirectionIncrease,
			Units:     1,
		}, nil
	}
	return AdjustmentEffect{}, invalid(unit, entity.SerialAvailable)
}

func writeOff(unit *entity.SerialUnit) (AdjustmentEffect, error) {
	switch unit.Status {
	case entity.SerialAvailable:
		return AdjustmentEffect{NewStatus: entity.SerialDamaged, Direction: entity.DirectionDecrease, Units: 1}, nil
	case entity.SerialReserved, entity.SerialTransferred:
		return AdjustmentEffect{
			NewStatus:          entity.SerialDamaged,
			Direction:          entity.DirectionDecrease,
			Units:              1,
			ReleaseReservation: true,
		}, nil
	}
	return AdjustmentEffect{}, invalid(unit, entity.SerialDamaged)
}

func invalid(unit *entity.SerialUnit, to entity.SerialStatus) error {
	return &domain.InvalidTransitionError{
		Entity: "serial_unit", ID: unit.ID, From: string(unit.Status), To: string(to),
	}
}
