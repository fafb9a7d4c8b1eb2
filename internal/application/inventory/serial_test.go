package inventory_test

import (
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

func TestReceive_SerialDuplicadoEnCualquierBodega(t *testing.T) {
	f := newFixture(t)
	u := f.receiveUnit(t, f.whA, "SN-1")
	assert.Equal(t, entity.SerialAvailable, u.Status)
	requireDec(t, 1, f.stock(t, f.whA).Quantity, "entrada de la unidad")

	other := f.newProduct(t, "Q")
	_, err := f.serials.Receive(f.ctx, inventory.ReceiveSerialInput{
		ProductID: other.ID, WarehouseID: f.whB.ID, SerialCode: "SN-1", UnitCost: decimal.NewFromInt(1),
	})
	require.ErrorIs(t, err, domain.ErrDuplicateSerial)
	var dup *domain.DuplicateSerialError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "SN-1", dup.SerialCode)
	assert.True(t, f.stock(t, f.whB).Quantity.IsZero())
}

func TestReceive_GeneraCodigo(t *testing.T) {
	f := newFixture(t)
	u := f.receiveUnit(t, f.whA, "")
	assert.Regexp(t, regexp.MustCompile(`^SN-[0-9A-F]{12}$`), u.SerialCode)

	found, err := f.serials.Lookup(f.ctx, u.SerialCode)
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	found, err = f.serials.Lookup(f.ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.SerialCode, found.SerialCode)

	_, err = f.serials.Lookup(f.ctx, "SN-NOPE")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransition_VentaIdempotente(t *testing.T) {
	f := newFixture(t)
	u := f.receiveUnit(t, f.whA, "SN-1")
	in := inventory.TransitionInput{SerialUnitID: u.ID, NewStatus: entity.SerialSold, ReferenceNumber: "FAC-1", ActorID: "v1", BuyerID: "c1"}

	sold, err := f.serials.Transition(f.ctx, in)
	require.NoError(t, err)
	assert.Equal(t, entity.SerialSold, sold.Status)
	require.NotNil(t, sold.SoldAt)
	assert.Equal(t, "c1", sold.BuyerID)

	again, err := f.serials.Transition(f.ctx, in)
	require.NoError(t, err)
	assert.Equal(t, sold.Status, again.Status)
	assert.Equal(t, *sold.SoldAt, *again.SoldAt)

	entries := f.history(t, func(flt *repositoryFilter) { flt.ReferenceNumber = "FAC-1" })
	require.Len(t, entries, 1, "una sola salida para la referencia")
	assert.Equal(t, entity.MovementOut, entries[0].Kind)
	requireDec(t, 50, entries[0].UnitCost, "costo congelado")
	assert.True(t, f.stock(t, f.whA).Quantity.IsZero())
}

func TestTransition_AristaNoPermitida(t *testing.T) {
	f := newFixture(t)
	u := f.receiveUnit(t, f.whA, "SN-1")
	_, err := f.serials.Transition(f.ctx, inventory.TransitionInput{SerialUnitID: u.ID, NewStatus: entity.SerialSold, ReferenceNumber: "FAC-1"})
	require.NoError(t, err)

	_, err = f.serials.Transition(f.ctx, inventory.TransitionInput{SerialUnitID: u.ID, NewStatus: entity.SerialAvailable, ReferenceNumber: "X"})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	var te *domain.InvalidTransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "sold", te.From)
	assert.Equal(t, "available", te.To)

	// misma transición con otra referencia tampoco es una repetición
	_, err = f.serials.Transition(f.ctx, inventory.TransitionInput{SerialUnitID: u.ID, NewStatus: entity.SerialSold, ReferenceNumber: "FAC-2"})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestTransition_ReservaYVenta(t *testing.T) {
	f := newFixture(t)
	u := f.receiveUnit(t, f.whA, "SN-1")

	_, err := f.serials.Transition(f.ctx, inventory.TransitionInput{SerialUnitID: u.ID, NewStatus: entity.SerialReserved, ReferenceNumber: "PED-1"})
	require.NoError(t, err)
	s := f.stock(t, f.whA)
	requireDec(t, 1, s.Quantity, "cantidad")
	requireDec(t, 0, s.Available, "disponible")

	// la unidad reservada no está disponible para una salida por cantidad
	_, err = f.ledger.AppendMovement(f.ctx, inventory.AppendMovementInput{
		ProductID: f.product.ID, WarehouseID: f.whA.ID, Kind: entity.MovementOut, Quantity: dec(1),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = f.serials.Transition(f.ctx, inventory.TransitionInput{SerialUnitID: u.ID, NewStatus: entity.SerialSold, ReferenceNumber: "PED-1"})
	require.NoError(t, err)
	s = f.stock(t, f.whA)
	requireDec(t, 0, s.Quantity, "vendida")
	requireDec(t, 0, s.Reserved, "reserva liberada")

	entries := f.history(t, func(flt *repositoryFilter) { flt.ReferenceNumber = "PED-1" })
	require.Len(t, entries, 2)
	assert.Equal(t, entity.DirectionNone, entries[0].Direction)
	assert.True(t, entries[0].Quantity.IsZero())
}

func TestTransition_TransferredSoloPorDespacho(t *testing.T) {
	f := newFixture(t)
	u := f.receiveUnit(t, f.whA, "SN-1")
	_, err := f.serials.Transition(f.ctx, inventory.TransitionInput{SerialUnitID: u.ID, NewStatus: entity.SerialTransferred, ReferenceNumber: "T"})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "new_status", ve.Field)
}

func TestTransition_UnidadRetenidaPorTraslado(t *testing.T) {
	f := newFixture(t)
	u := f.receiveUnit(t, f.whA, "SN-1")
	tr, err := f.transfers.Create(f.ctx, inventory.CreateTransferInput{
		SourceWarehouseID: f.whA.ID, TargetWarehouseID: f.whB.ID,
		Items: []inventory.TransferItemInput{{SerialCode: "SN-1"}},
	})
	require.NoError(t, err)
	_, err = f.transfers.Submit(f.ctx, tr.ID, "u")
	require.NoError(t, err)

	_, err = f.serials.Transition(f.ctx, inventory.TransitionInput{SerialUnitID: u.ID, NewStatus: entity.SerialSold, ReferenceNumber: "FAC-9"})
	require.ErrorIs(t, err, domain.ErrTransferItemConflict)
}

func TestListByWarehouse(t *testing.T) {
	f := newFixture(t)
	f.receiveUnit(t, f.whA, "SN-2")
	u := f.receiveUnit(t, f.whA, "SN-1")
	f.receiveUnit(t, f.whB, "SN-3")
	_, err := f.serials.Transition(f.ctx, inventory.TransitionInput{SerialUnitID: u.ID, NewStatus: entity.SerialDamaged, ReferenceNumber: "D"})
	require.NoError(t, err)

	all, err := f.serials.ListByWarehouse(f.ctx, f.whA.ID, "", 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "SN-1", all[0].SerialCode)

	damaged, err := f.serials.ListByWarehouse(f.ctx, f.whA.ID, entity.SerialDamaged, 10, 0)
	require.NoError(t, err)
	require.Len(t, damaged, 1)
	requireDec(t, 1, f.stock(t, f.whA).Quantity, "la dañada sale del stock")
}
