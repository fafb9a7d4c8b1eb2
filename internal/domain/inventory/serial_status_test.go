package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

func TestSerialGraph_Cerrado(t *testing.T) {
	all := []entity.SerialStatus{
		entity.SerialAvailable, entity.SerialReserved, entity.SerialSold,
		entity.SerialDamaged, entity.SerialTransferred,
	}
	allowed := map[[2]entity.SerialStatus]bool{
		{entity.SerialAvailable, entity.SerialReserved}:    true,
		{entity.SerialAvailable, entity.SerialSold}:        true,
		{entity.SerialAvailable, entity.SerialTransferred}: true,
		{entity.SerialAvailable, entity.SerialDamaged}:     true,
		{entity.SerialReserved, entity.SerialSold}:         true,
		{entity.SerialReserved, entity.SerialAvailable}:    true,
		{entity.SerialTransferred, entity.SerialAvailable}: true,
	}
	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[[2]entity.SerialStatus{from, to}], CanTransitionSerial(from, to), "%s -> %s", from, to)
		}
	}
}

func TestPlanSerialTransition_AristaInvalida(t *testing.T) {
	_, err := PlanSerialTransition("u1", entity.SerialSold, entity.SerialAvailable)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	var te *domain.InvalidTransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "sold", te.From)
	assert.Equal(t, "available", te.To)
}

func TestPlanSerialTransition_Efectos(t *testing.T) {
	eff, err := PlanSerialTransition("u1", entity.SerialReserved, entity.SerialSold)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementOut, eff.Kind)
	assert.Equal(t, int64(1), eff.Units)
	assert.Equal(t, int64(-1), eff.ReservedDelta)

	eff, err = PlanSerialTransition("u1", entity.SerialAvailable, entity.SerialReserved)
	require.NoError(t, err)
	assert.Equal(t, entity.DirectionNone, eff.Direction)
	assert.Equal(t, int64(0), eff.Units)
}
