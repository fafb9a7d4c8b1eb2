package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// DirectionFor deriva el sentido de un tipo de movimiento. Los ajustes no tienen
// sentido implícito y devuelven false: el llamador debe indicarlo.
func DirectionFor(kind entity.MovementKind) (entity.Direction, bool) {
	switch kind {
	case entity.MovementIn, entity.MovementTransferIn:
		return entity.DirectionIncrease, true
	case entity.MovementOut, entity.MovementTransferOut:
		return entity.DirectionDecrease, true
	}
	return "", false
}

// SignedQuantity cantidad con signo que el movimiento aporta a su (producto, bodega).
func SignedQuantity(e *entity.MovementEntry) decimal.Decimal {
	switch e.Direction {
	case entity.DirectionIncrease:
		return e.Quantity
	case entity.DirectionDecrease:
		return e.Quantity.Neg()
	}
	return decimal.Zero
}

// Projection estado derivado de plegar el libro de un (producto, bodega).
// Apply es la única regla de acumulación: la usa tanto la escritura incremental
// como la reconstrucción completa.
type Projection struct {
	Quantity decimal.Decimal
	AvgCost  decimal.Decimal
	Entries  int
}

// Apply acumula un movimiento. Las entradas recalculan el costo promedio ponderado;
// las salidas no lo modifican.
func (p *Projection) Apply(e *entity.MovementEntry) {
	p.Entries++
	switch e.Direction {
	case entity.DirectionIncrease:
		p.AvgCost = CostCalculator(p.Quantity, p.AvgCost, e.Quantity, e.UnitCost)
		p.Quantity = p.Quantity.Add(e.Quantity)
	case entity.DirectionDecrease:
		p.Quantity = p.Quantity.Sub(e.Quantity)
		if p.Quantity.IsZero() {
			p.AvgCost = decimal.Zero
		}
	}
}

// Fold pliega una secuencia de movimientos ya ordenada por Sequence.
func Fold(entries []*entity.MovementEntry) Projection {
	var p Projection
	for _, e := range entries {
		p.Apply(e)
	}
	return p
}
