package inventory_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

func (f *fixture) adjust(t *testing.T, typ entity.AdjustmentType, items ...inventory.AdjustmentItemInput) *entity.Adjustment {
	t.Helper()
	adj, err := f.adjustment.Create(f.ctx, inventory.CreateAdjustmentInput{
		WarehouseID: f.whA.ID,
		Type:        typ,
		Reason:      "conteo de cierre",
		Items:       items,
		ActorID:     "auditor",
	})
	require.NoError(t, err)
	return adj
}

func (f *fixture) unitStatus(t *testing.T, id string) entity.SerialStatus {
	t.Helper()
	u, err := f.serials.Lookup(f.ctx, id)
	require.NoError(t, err)
	return u.Status
}

func TestAdjustment_DanoYHallazgo(t *testing.T) {
	f := newFixture(t)
	u := f.receiveUnit(t, f.whA, "SN-1")

	adj := f.adjust(t, entity.AdjustmentDamage, inventory.AdjustmentItemInput{SerialCode: "SN-1", Note: "pantalla rota"})
	assert.Equal(t, entity.AdjustmentPending, adj.Status)
	assert.Equal(t, 1, adj.TotalItems)
	assert.Zero(t, adj.FailedItems)
	require.Len(t, adj.Items, 1)
	assert.Equal(t, entity.AdjustmentItemApplied, adj.Items[0].Status)
	assert.NotEmpty(t, adj.Items[0].MovementID)
	assert.Equal(t, entity.SerialDamaged, f.unitStatus(t, u.ID))
	requireDec(t, 0, f.stock(t, f.whA).Quantity, "dañada sale del stock")

	entries := f.history(t, func(flt *repositoryFilter) { flt.ReferenceNumber = adj.Number })
	require.Len(t, entries, 1)
	assert.Equal(t, entity.MovementAdjustment, entries[0].Kind)
	assert.Equal(t, entity.DirectionDecrease, entries[0].Direction)
	assert.Equal(t, "pantalla rota", entries[0].Note)

	approved, err := f.adjustment.Approve(f.ctx, adj.ID, "jefe")
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentApproved, approved.Status)
	assert.Equal(t, "jefe", approved.ApprovedBy)
	require.NotNil(t, approved.DecidedAt)

	found := f.adjust(t, entity.AdjustmentFound, inventory.AdjustmentItemInput{SerialUnitID: u.ID})
	assert.Equal(t, entity.AdjustmentItemApplied, found.Items[0].Status)
	assert.Equal(t, entity.SerialAvailable, f.unitStatus(t, u.ID))
	s := f.stock(t, f.whA)
	requireDec(t, 1, s.Available, "recuperada")
	requireDec(t, 50, s.AvgCost, "al costo de la unidad")
	require.NoError(t, f.ledger.VerifyStock(f.ctx, f.product.ID, f.whA.ID))
}

func TestAdjustment_ItemFallidoDejaParcial(t *testing.T) {
	f := newFixture(t)
	f.receiveUnit(t, f.whA, "SN-1")
	f.receiveUnit(t, f.whB, "SN-B")
	d := f.receiveUnit(t, f.whA, "SN-D")
	f.adjust(t, entity.AdjustmentDamage, inventory.AdjustmentItemInput{SerialCode: "SN-D"})

	adj := f.adjust(t, entity.AdjustmentLoss,
		inventory.AdjustmentItemInput{SerialCode: "SN-1"},
		inventory.AdjustmentItemInput{SerialCode: "SN-NOPE"},
		inventory.AdjustmentItemInput{SerialCode: "SN-B"},
		inventory.AdjustmentItemInput{SerialUnitID: d.ID},
	)
	assert.Equal(t, 4, adj.TotalItems)
	assert.Equal(t, 3, adj.FailedItems)
	codes := make([]string, 0, len(adj.Items))
	for _, item := range adj.Items {
		codes = append(codes, item.FailureCode)
	}
	assert.Equal(t, []string{"", inventory.FailureNotFound, inventory.FailureWrongWarehouse, inventory.FailureInvalidTransition}, codes)
	assert.Equal(t, entity.AdjustmentItemApplied, adj.Items[0].Status)
	assert.Equal(t, entity.AdjustmentItemFailed, adj.Items[1].Status)
	assert.NotEmpty(t, adj.Items[1].FailureDetail)

	// los ítems fallidos no escriben movimientos
	assert.Len(t, f.history(t, func(flt *repositoryFilter) { flt.ReferenceNumber = adj.Number }), 1)

	got, err := f.adjustment.Approve(f.ctx, adj.ID, "jefe")
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentPartial, got.Status)

	_, err = f.adjustment.Approve(f.ctx, adj.ID, "jefe")
	require.NoError(t, err, "aprobar de nuevo no cambia nada")
	assert.Equal(t, 1, f.events.count(inventory.EventAdjustmentDecided))
}

func TestAdjustment_UnidadRetenidaPorTraslado(t *testing.T) {
	f := newFixture(t)
	f.receiveUnit(t, f.whA, "SN-1")
	tr, err := f.transfers.Create(f.ctx, inventory.CreateTransferInput{
		SourceWarehouseID: f.whA.ID, TargetWarehouseID: f.whB.ID,
		Items: []inventory.TransferItemInput{{SerialCode: "SN-1"}},
	})
	require.NoError(t, err)
	_, err = f.transfers.Submit(f.ctx, tr.ID, "u")
	require.NoError(t, err)

	adj := f.adjust(t, entity.AdjustmentDamage, inventory.AdjustmentItemInput{SerialCode: "SN-1"})
	assert.Equal(t, entity.AdjustmentItemFailed, adj.Items[0].Status)
	assert.Equal(t, inventory.FailureHeldByTransfer, adj.Items[0].FailureCode)
}

func TestAdjustment_DanarReservadaLiberaReserva(t *testing.T) {
	f := newFixture(t)
	u := f.receiveUnit(t, f.whA, "SN-1")
	_, err := f.serials.Transition(f.ctx, inventory.TransitionInput{SerialUnitID: u.ID, NewStatus: entity.SerialReserved, ReferenceNumber: "PED-1"})
	require.NoError(t, err)
	requireDec(t, 0, f.stock(t, f.whA).Available, "reservada")

	adj := f.adjust(t, entity.AdjustmentDamage, inventory.AdjustmentItemInput{SerialCode: "SN-1"})
	assert.Equal(t, entity.AdjustmentItemApplied, adj.Items[0].Status)
	s := f.stock(t, f.whA)
	requireDec(t, 0, s.Quantity, "cantidad")
	requireDec(t, 0, s.Reserved, "reserva liberada")
}

func TestAdjustment_Conteo(t *testing.T) {
	f := newFixture(t)
	present := f.receiveUnit(t, f.whA, "SN-1")
	missing := f.receiveUnit(t, f.whA, "SN-2")
	sold := f.receiveUnit(t, f.whA, "SN-3")
	_, err := f.serials.Transition(f.ctx, inventory.TransitionInput{SerialUnitID: sold.ID, NewStatus: entity.SerialSold, ReferenceNumber: "FAC-1"})
	require.NoError(t, err)

	adj := f.adjust(t, entity.AdjustmentCount,
		inventory.AdjustmentItemInput{SerialCode: "SN-1"},
		inventory.AdjustmentItemInput{SerialCode: "SN-2", Missing: true},
		inventory.AdjustmentItemInput{SerialCode: "SN-3"},
	)
	assert.Zero(t, adj.FailedItems)
	assert.Equal(t, entity.SerialAvailable, f.unitStatus(t, present.ID))
	assert.Equal(t, entity.SerialDamaged, f.unitStatus(t, missing.ID))
	assert.Equal(t, entity.SerialAvailable, f.unitStatus(t, sold.ID), "vendida pero contada en bodega")

	back, err := f.serials.Lookup(f.ctx, sold.ID)
	require.NoError(t, err)
	assert.Nil(t, back.SoldAt)
	requireDec(t, 2, f.stock(t, f.whA).Quantity, "SN-1 y SN-3")

	entries := f.history(t, func(flt *repositoryFilter) { flt.ReferenceNumber = adj.Number })
	require.Len(t, entries, 3, "también el ítem sin diferencia deja rastro")
	assert.Equal(t, entity.DirectionNone, entries[0].Direction)
	requireDec(t, 0, entries[0].Quantity, "sin efecto")
}

func TestAdjustment_CorreccionSoloAuditoria(t *testing.T) {
	f := newFixture(t)
	u := f.receiveUnit(t, f.whA, "SN-1")
	adj := f.adjust(t, entity.AdjustmentCorrection, inventory.AdjustmentItemInput{SerialUnitID: u.ID, Note: "código mal impreso"})

	assert.Equal(t, entity.AdjustmentItemApplied, adj.Items[0].Status)
	assert.Equal(t, entity.SerialAvailable, f.unitStatus(t, u.ID))
	requireDec(t, 1, f.stock(t, f.whA).Quantity, "sin cambio")
	entries := f.history(t, func(flt *repositoryFilter) { flt.ReferenceNumber = adj.Number })
	require.Len(t, entries, 1)
	assert.Equal(t, entity.DirectionNone, entries[0].Direction)
	assert.Equal(t, u.ID, entries[0].SerialUnitID)
}

func TestAdjustment_Rechazo(t *testing.T) {
	f := newFixture(t)
	f.receiveUnit(t, f.whA, "SN-1")
	adj := f.adjust(t, entity.AdjustmentLoss, inventory.AdjustmentItemInput{SerialCode: "SN-1"})

	_, err := f.adjustment.Reject(f.ctx, adj.ID, "jefe", " ")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := f.adjustment.Reject(f.ctx, adj.ID, "jefe", "sin evidencia")
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentRejected, got.Status)
	assert.Equal(t, "sin evidencia", got.DecisionReason)
	requireDec(t, 0, f.stock(t, f.whA).Quantity, "el efecto aplicado se mantiene")

	_, err = f.adjustment.Reject(f.ctx, adj.ID, "jefe", "otra vez")
	require.NoError(t, err)
	_, err = f.adjustment.Approve(f.ctx, adj.ID, "jefe")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestAdjustment_Validaciones(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		name string
		in   inventory.CreateAdjustmentInput
	}{
		{"sin bodega", inventory.CreateAdjustmentInput{Type: entity.AdjustmentLoss, Reason: "x", Items: []inventory.AdjustmentItemInput{{SerialCode: "a"}}}},
		{"tipo desconocido", inventory.CreateAdjustmentInput{WarehouseID: f.whA.ID, Type: "theft", Reason: "x", Items: []inventory.AdjustmentItemInput{{SerialCode: "a"}}}},
		{"sin motivo", inventory.CreateAdjustmentInput{WarehouseID: f.whA.ID, Type: entity.AdjustmentLoss, Items: []inventory.AdjustmentItemInput{{SerialCode: "a"}}}},
		{"sin ítems", inventory.CreateAdjustmentInput{WarehouseID: f.whA.ID, Type: entity.AdjustmentLoss, Reason: "x"}},
		{"ítem vacío", inventory.CreateAdjustmentInput{WarehouseID: f.whA.ID, Type: entity.AdjustmentLoss, Reason: "x", Items: []inventory.AdjustmentItemInput{{}}}},
		{"missing fuera de conteo", inventory.CreateAdjustmentInput{WarehouseID: f.whA.ID, Type: entity.AdjustmentLoss, Reason: "x", Items: []inventory.AdjustmentItemInput{{SerialCode: "a", Missing: true}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.adjustment.Create(f.ctx, tc.in)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// flakyMovements falla al escribir ajustes mientras down esté activo.
type flakyMovements struct {
	repository.MovementRepository
	down *atomic.Bool
}

func (m flakyMovements) Append(ctx context.Context, e *entity.MovementEntry) error {
	if m.down.Load() && e.Kind == entity.MovementAdjustment {
		return errDisk
	}
	return m.MovementRepository.Append(ctx, e)
}

type flakyRunner struct {
	inner inventory.TxRunner
	down  *atomic.Bool
}

func (r flakyRunner) Run(ctx context.Context, fn func(inventory.Repos) error) error {
	return r.inner.Run(ctx, func(repos inventory.Repos) error {
		repos.Movements = flakyMovements{repos.Movements, r.down}
		return fn(repos)
	})
}

func TestAdjustment_ReanudaPendientesConElMismoNumero(t *testing.T) {
	down := &atomic.Bool{}
	f := newFixtureWithRunner(t, func(inner inventory.TxRunner) inventory.TxRunner { return flakyRunner{inner, down} })
	u := f.receiveUnit(t, f.whA, "SN-1")
	f.receiveUnit(t, f.whA, "SN-2")

	in := inventory.CreateAdjustmentInput{
		Number:      "ADJ-CIERRE",
		WarehouseID: f.whA.ID,
		Type:        entity.AdjustmentDamage,
		Reason:      "inundación",
		Items:       []inventory.AdjustmentItemInput{{SerialCode: "SN-1"}, {SerialCode: "SN-2"}},
	}
	down.Store(true)
	adj, err := f.adjustment.Create(f.ctx, in)
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentItemPending, adj.Items[0].Status)
	assert.Equal(t, entity.SerialAvailable, f.unitStatus(t, u.ID))

	_, err = f.adjustment.Approve(f.ctx, adj.ID, "jefe")
	require.ErrorIs(t, err, domain.ErrAdjustmentUnresolved)

	down.Store(false)
	again, err := f.adjustment.Create(f.ctx, in)
	require.NoError(t, err)
	assert.Equal(t, adj.ID, again.ID)
	for _, item := range again.Items {
		assert.Equal(t, entity.AdjustmentItemApplied, item.Status)
	}
	requireDec(t, 0, f.stock(t, f.whA).Quantity, "ambas dañadas")

	// ya aplicados: una tercera vez no duplica movimientos
	_, err = f.adjustment.Create(f.ctx, in)
	require.NoError(t, err)
	assert.Len(t, f.history(t, func(flt *repositoryFilter) { flt.ReferenceNumber = "ADJ-CIERRE" }), 2)

	got, err := f.adjustment.Approve(f.ctx, adj.ID, "jefe")
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentApproved, got.Status)

	in.Type = entity.AdjustmentLoss
	_, err = f.adjustment.Create(f.ctx, in)
	require.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestAdjustment_List(t *testing.T) {
	f := newFixture(t)
	f.receiveUnit(t, f.whA, "SN-1")
	f.receiveUnit(t, f.whA, "SN-2")
	a := f.adjust(t, entity.AdjustmentDamage, inventory.AdjustmentItemInput{SerialCode: "SN-1"})
	f.adjust(t, entity.AdjustmentLoss, inventory.AdjustmentItemInput{SerialCode: "SN-2"})

	list, err := f.adjustment.List(f.ctx, repository.AdjustmentFilter{Type: entity.AdjustmentDamage})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)

	_, err = f.adjustment.List(f.ctx, repository.AdjustmentFilter{Type: "theft"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.adjustment.Get(f.ctx, "nope")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
