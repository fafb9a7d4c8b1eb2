package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

func TestPlanAdjustment(t *testing.T) {
	cases := []struct {
		name    string
		typ     entity.AdjustmentType
		status  entity.SerialStatus
		missing bool
		want    AdjustmentEffect
		wantErr error
	}{
		{"found sobre vendida", entity.AdjustmentFound, entity.SerialSold, false,
			AdjustmentEffect{NewStatus: entity.SerialAvailable, Direction: entity.DirectionIncrease, Units: 1}, nil},
		{"found sobre disponible", entity.AdjustmentFound, entity.SerialAvailable, false, AdjustmentEffect{}, domain.ErrInvalidTransition},
		{"count presente en stock", entity.AdjustmentCount, entity.SerialAvailable, false,
			AdjustmentEffect{Direction: entity.DirectionNone}, nil},
		{"count presente dañada", entity.AdjustmentCount, entity.SerialDamaged, false,
			AdjustmentEffect{NewStatus: entity.SerialAvailable, Direction: entity.DirectionIncrease, Units: 1}, nil},
		{"count faltante", entity.AdjustmentCount, entity.SerialAvailable, true,
			AdjustmentEffect{NewStatus: entity.SerialDamaged, Direction: entity.DirectionDecrease, Units: 1}, nil},
		{"damage reservada libera", entity.AdjustmentDamage, entity.SerialReserved, false,
			AdjustmentEffect{NewStatus: entity.SerialDamaged, Direction: entity.DirectionDecrease, Units: 1, ReleaseReservation: true}, nil},
		{"loss sobre vendida", entity.AdjustmentLoss, entity.SerialSold, false, AdjustmentEffect{}, domain.ErrInvalidTransition},
		{"correction", entity.AdjustmentCorrection, entity.SerialSold, false, AdjustmentEffect{Direction: entity.DirectionNone}, nil},
		{"tipo desconocido", entity.AdjustmentType("x"), entity.SerialAvailable, false, AdjustmentEffect{}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := PlanAdjustment(tc.typ, &entity.SerialUnit{ID: "u1", Status: tc.status}, tc.missing)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
