package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

func (f *fixture) qtyTransfer(t *testing.T, qty int64) *entity.Transfer {
	t.Helper()
	tr, err := f.transfers.Create(f.ctx, inventory.CreateTransferInput{
		SourceWarehouseID: f.whA.ID,
		TargetWarehouseID: f.whB.ID,
		Items:             []inventory.TransferItemInput{{ProductID: f.product.ID, Quantity: dec(qty)}},
		ActorID:           "u1",
	})
	require.NoError(t, err)
	return tr
}

func TestTransfer_FlujoCompletoConservaStock(t *testing.T) {
	f := newFixture(t)
	f.receiveQty(t, f.whA, 10, 100)

	tr := f.qtyTransfer(t, 4)
	assert.Equal(t, entity.TransferDraft, tr.Status)
	assert.Equal(t, 1, tr.TotalItems)
	requireDec(t, 4, tr.TotalQuantity, "total")

	tr, err := f.transfers.Submit(f.ctx, tr.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.TransferPending, tr.Status)
	requireDec(t, 6, f.stock(t, f.whA).Available, "reservado en origen")

	tr, err = f.transfers.Dispatch(f.ctx, tr.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.TransferInTransit, tr.Status)
	a, b := f.stock(t, f.whA), f.stock(t, f.whB)
	requireDec(t, 6, a.Quantity, "origen tras despacho")
	requireDec(t, 4, b.Quantity, "destino tras despacho")
	requireDec(t, 0, b.Available, "en tránsito no disponible")
	requireDec(t, 10, a.Quantity.Add(b.Quantity), "conservación en tránsito")

	tr, err = f.transfers.ConfirmDelivery(f.ctx, tr.ID, "u2")
	require.NoError(t, err)
	assert.Equal(t, entity.TransferCompleted, tr.Status)
	assert.Equal(t, "u2", tr.ConfirmedBy)
	require.NotNil(t, tr.DeliveredAt)
	require.NotNil(t, tr.CompletedAt)

	a, b = f.stock(t, f.whA), f.stock(t, f.whB)
	requireDec(t, 6, a.Quantity, "A")
	requireDec(t, 4, b.Quantity, "B")
	requireDec(t, 4, b.Available, "B disponible")
	requireDec(t, 400, b.TotalValue, "B valor al costo de origen")

	entries := f.history(t, func(flt *repositoryFilter) { flt.ReferenceNumber = tr.Number })
	require.Len(t, entries, 2)
	assert.Equal(t, entity.MovementTransferOut, entries[0].Kind)
	assert.Equal(t, entity.MovementTransferIn, entries[1].Kind)

	require.NoError(t, f.ledger.VerifyStock(f.ctx, f.product.ID, f.whA.ID))
	require.NoError(t, f.ledger.VerifyStock(f.ctx, f.product.ID, f.whB.ID))
}

func TestTransfer_SecuenciaDeIdaYVueltaConserva(t *testing.T) {
	f := newFixture(t)
	f.receiveQty(t, f.whA, 7, 10)
	f.receiveQty(t, f.whB, 3, 10)

	move := func(src, dst *entity.Warehouse, qty int64) {
		tr, err := f.transfers.Create(f.ctx, inventory.CreateTransferInput{
			SourceWarehouseID: src.ID, TargetWarehouseID: dst.ID,
			Items: []inventory.TransferItemInput{{ProductID: f.product.ID, Quantity: dec(qty)}},
		})
		require.NoError(t, err)
		_, err = f.transfers.Submit(f.ctx, tr.ID, "u")
		require.NoError(t, err)
		_, err = f.transfers.Dispatch(f.ctx, tr.ID, "u")
		require.NoError(t, err)
		_, err = f.transfers.ConfirmDelivery(f.ctx, tr.ID, "u")
		require.NoError(t, err)
	}
	move(f.whA, f.whB, 5)
	move(f.whB, f.whA, 8)
	move(f.whA, f.whB, 1)

	a, b := f.stock(t, f.whA), f.stock(t, f.whB)
	requireDec(t, 10, a.Quantity.Add(b.Quantity), "conservación")
	requireDec(t, 9, a.Quantity, "A")
}

func TestTransfer_CostoDelItemSeFijaAlDespachar(t *testing.T) {
	f := newFixture(t)
	f.receiveQty(t, f.whA, 10, 100)
	tr := f.qtyTransfer(t, 4)
	requireDec(t, 100, tr.Items[0].UnitCost, "costo cotizado al crear")

	// El promedio del origen cambia entre la creación y el despacho.
	f.receiveQty(t, f.whA, 10, 200)
	_, err := f.transfers.Submit(f.ctx, tr.ID, "u1")
	require.NoError(t, err)
	_, err = f.transfers.Dispatch(f.ctx, tr.ID, "u1")
	require.NoError(t, err)

	got, err := f.transfers.Get(f.ctx, tr.ID)
	require.NoError(t, err)
	requireDec(t, 150, got.Items[0].UnitCost, "costo del ítem")
	entries := f.history(t, func(flt *repositoryFilter) { flt.ReferenceNumber = tr.Number })
	require.Len(t, entries, 2)
	assert.True(t, got.Items[0].UnitCost.Equal(entries[0].UnitCost), "ítem y salida coinciden")
	requireDec(t, 600, f.stock(t, f.whB).TotalValue, "valor en destino")
}

func TestTransfer_SerialViajaYQuedaDisponibleEnDestino(t *testing.T) {
	f := newFixture(t)
	u := f.receiveUnit(t, f.whA, "SN-1")

	tr, err := f.transfers.Create(f.ctx, inventory.CreateTransferInput{
		SourceWarehouseID: f.whA.ID, TargetWarehouseID: f.whB.ID,
		Items: []inventory.TransferItemInput{{SerialCode: "SN-1"}},
	})
	require.NoError(t, err)
	requireDec(t, 50, tr.Items[0].UnitCost, "costo de la unidad")

	_, err = f.transfers.Submit(f.ctx, tr.ID, "u")
	require.NoError(t, err)
	held, err := f.serials.Lookup(f.ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, tr.Number, held.HoldReference)
	assert.Equal(t, entity.SerialAvailable, held.Status)

	_, err = f.transfers.Dispatch(f.ctx, tr.ID, "u")
	require.NoError(t, err)
	moving, err := f.serials.Lookup(f.ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SerialTransferred, moving.Status)
	assert.Equal(t, f.whB.ID, moving.WarehouseID)
	assert.False(t, moving.Held())

	_, err = f.transfers.ConfirmDelivery(f.ctx, tr.ID, "u")
	require.NoError(t, err)
	arrived, err := f.serials.Lookup(f.ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SerialAvailable, arrived.Status)
	assert.Equal(t, f.whB.ID, arrived.WarehouseID)
	requireDec(t, 0, f.stock(t, f.whA).Quantity, "A")
	requireDec(t, 1, f.stock(t, f.whB).Available, "B")
}

func TestTransfer_DespachoIdempotente(t *testing.T) {
	f := newFixture(t)
	f.receiveQty(t, f.whA, 5, 10)
	tr := f.qtyTransfer(t, 2)
	_, err := f.transfers.Submit(f.ctx, tr.ID, "u")
	require.NoError(t, err)
	_, err = f.transfers.Submit(f.ctx, tr.ID, "u")
	require.NoError(t, err, "submit repetido")
	requireDec(t, 3, f.stock(t, f.whA).Available, "una sola reserva")

	_, err = f.transfers.Dispatch(f.ctx, tr.ID, "u")
	require.NoError(t, err)
	again, err := f.transfers.Dispatch(f.ctx, tr.ID, "u")
	require.NoError(t, err)
	assert.Equal(t, entity.TransferInTransit, again.Status)

	entries := f.history(t, func(flt *repositoryFilter) { flt.ReferenceNumber = tr.Number })
	assert.Len(t, entries, 2, "un solo par de movimientos")
	requireDec(t, 3, f.stock(t, f.whA).Quantity, "A")
	assert.Equal(t, 3, f.events.count(inventory.EventTransferStatusChanged), "draft, pending y un solo in_transit")
}

func TestTransfer_ConflictoDeItemEsTodoONada(t *testing.T) {
	f := newFixture(t)
	u1 := f.receiveUnit(t, f.whA, "SN-1")
	f.receiveUnit(t, f.whA, "SN-2")

	tr, err := f.transfers.Create(f.ctx, inventory.CreateTransferInput{
		SourceWarehouseID: f.whA.ID, TargetWarehouseID: f.whB.ID,
		Items: []inventory.TransferItemInput{{SerialCode: "SN-1"}, {SerialCode: "SN-2"}},
	})
	require.NoError(t, err)

	// SN-2 se vende entre la creación y el envío
	sn2, err := f.serials.Lookup(f.ctx, "SN-2")
	require.NoError(t, err)
	_, err = f.serials.Transition(f.ctx, inventory.TransitionInput{SerialUnitID: sn2.ID, NewStatus: entity.SerialSold, ReferenceNumber: "FAC-1"})
	require.NoError(t, err)

	_, err = f.transfers.Submit(f.ctx, tr.ID, "u")
	require.ErrorIs(t, err, domain.ErrTransferItemConflict)
	var ce *domain.TransferItemConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "SN-2", ce.SerialCode)

	still, err := f.transfers.Get(f.ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferDraft, still.Status)
	unit1, err := f.serials.Lookup(f.ctx, u1.ID)
	require.NoError(t, err)
	assert.False(t, unit1.Held(), "SN-1 no queda retenida")
	requireDec(t, 1, f.stock(t, f.whA).Available, "sin reservas parciales")
}

func TestTransfer_CreateValida(t *testing.T) {
	f := newFixture(t)
	f.receiveQty(t, f.whA, 3, 10)
	f.receiveUnit(t, f.whB, "SN-B")

	_, err := f.transfers.Create(f.ctx, inventory.CreateTransferInput{
		SourceWarehouseID: f.whA.ID, TargetWarehouseID: f.whA.ID,
		Items: []inventory.TransferItemInput{{ProductID: f.product.ID, Quantity: dec(1)}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.transfers.Create(f.ctx, inventory.CreateTransferInput{
		SourceWarehouseID: f.whA.ID, TargetWarehouseID: f.whB.ID,
		Items: []inventory.TransferItemInput{{ProductID: f.product.ID, Quantity: dec(2)}, {ProductID: f.product.ID, Quantity: dec(2)}},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock, "la suma de ítems supera lo disponible")

	_, err = f.transfers.Create(f.ctx, inventory.CreateTransferInput{
		SourceWarehouseID: f.whA.ID, TargetWarehouseID: f.whB.ID,
		Items: []inventory.TransferItemInput{{SerialCode: "SN-B"}},
	})
	var ce *domain.TransferItemConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "not_at_source", ce.Reason)
}

func TestTransfer_ConfirmaConDestinoDesactivado(t *testing.T) {
	f := newFixture(t)
	f.receiveQty(t, f.whA, 5, 10)
	u := f.receiveUnit(t, f.whA, "SN-1")
	tr, err := f.transfers.Create(f.ctx, inventory.CreateTransferInput{
		SourceWarehouseID: f.whA.ID, TargetWarehouseID: f.whB.ID,
		Items: []inventory.TransferItemInput{{ProductID: f.product.ID, Quantity: dec(2)}, {SerialUnitID: u.ID}},
	})
	require.NoError(t, err)
	_, err = f.transfers.Submit(f.ctx, tr.ID, "u1")
	require.NoError(t, err)
	_, err = f.transfers.Dispatch(f.ctx, tr.ID, "u1")
	require.NoError(t, err)

	f.whB.Active = false
	require.NoError(t, f.repos.Warehouses.Update(f.ctx, f.whB))

	done, err := f.transfers.ConfirmDelivery(f.ctx, tr.ID, "u2")
	require.NoError(t, err)
	assert.Equal(t, entity.TransferCompleted, done.Status)
	b := f.stock(t, f.whB)
	requireDec(t, 3, b.Quantity, "B")
	requireDec(t, 0, b.Reserved, "reserva en tránsito liberada")
	assert.Equal(t, entity.SerialAvailable, f.unitStatus(t, u.ID))

	// Solo se admite liberar: una entrada nueva sigue rechazada.
	cost := dec(10)
	_, err = f.ledger.AppendMovement(f.ctx, inventory.AppendMovementInput{
		ProductID: f.product.ID, WarehouseID: f.whB.ID, Kind: entity.MovementIn, Quantity: dec(1), UnitCost: &cost,
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransfer_CancelaConOrigenDesactivado(t *testing.T) {
	f := newFixture(t)
	f.receiveQty(t, f.whA, 5, 10)
	tr := f.qtyTransfer(t, 4)
	_, err := f.transfers.Submit(f.ctx, tr.ID, "u1")
	require.NoError(t, err)

	f.whA.Active = false
	require.NoError(t, f.repos.Warehouses.Update(f.ctx, f.whA))

	_, err = f.transfers.Cancel(f.ctx, tr.ID, "u1", "bodega cerrada")
	require.NoError(t, err)
	requireDec(t, 0, f.stock(t, f.whA).Reserved, "reserva liberada")
}

func TestTransfer_Cancelacion(t *testing.T) {
	f := newFixture(t)
	f.receiveQty(t, f.whA, 5, 10)
	u := f.receiveUnit(t, f.whA, "SN-1")

	tr, err := f.transfers.Create(f.ctx, inventory.CreateTransferInput{
		SourceWarehouseID: f.whA.ID, TargetWarehouseID: f.whB.ID,
		Items: []inventory.TransferItemInput{{ProductID: f.product.ID, Quantity: dec(2)}, {SerialUnitID: u.ID}},
	})
	require.NoError(t, err)
	_, err = f.transfers.Submit(f.ctx, tr.ID, "u")
	require.NoError(t, err)
	requireDec(t, 3, f.stock(t, f.whA).Available, "reservado")

	tr, err = f.transfers.Cancel(f.ctx, tr.ID, "u", "cliente desistió")
	require.NoError(t, err)
	assert.Equal(t, entity.TransferCancelled, tr.Status)
	requireDec(t, 6, f.stock(t, f.whA).Available, "reservas liberadas")
	unit, err := f.serials.Lookup(f.ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, unit.Held())

	_, err = f.transfers.Dispatch(f.ctx, tr.ID, "u")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestTransfer_NoSeCancelaDespachado(t *testing.T) {
	f := newFixture(t)
	f.receiveQty(t, f.whA, 5, 10)
	tr := f.qtyTransfer(t, 1)
	_, err := f.transfers.Submit(f.ctx, tr.ID, "u")
	require.NoError(t, err)
	_, err = f.transfers.Dispatch(f.ctx, tr.ID, "u")
	require.NoError(t, err)

	_, err = f.transfers.Cancel(f.ctx, tr.ID, "u", "tarde")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// failingMovements falla al escribir el transfer_in, después del transfer_out.
type failingMovements struct {
	repository.MovementRepository
}

var errDisk = errors.New("disco lleno")

func (m failingMovements) Append(ctx context.Context, e *entity.MovementEntry) error {
	if e.Kind == entity.MovementTransferIn {
		return errDisk
	}
	return m.MovementRepository.Append(ctx, e)
}

type faultyRunner struct{ inner inventory.TxRunner }

func (r faultyRunner) Run(ctx context.Context, fn func(inventory.Repos) error) error {
	return r.inner.Run(ctx, func(repos inventory.Repos) error {
		repos.Movements = failingMovements{repos.Movements}
		return fn(repos)
	})
}

func TestTransfer_FalloDeInfraestructuraDejaPending(t *testing.T) {
	f := newFixtureWithRunner(t, func(inner inventory.TxRunner) inventory.TxRunner { return faultyRunner{inner} })
	f.receiveQty(t, f.whA, 5, 10)
	tr := f.qtyTransfer(t, 2)
	_, err := f.transfers.Submit(f.ctx, tr.ID, "u")
	require.NoError(t, err)

	_, err = f.transfers.Dispatch(f.ctx, tr.ID, "u")
	require.ErrorIs(t, err, domain.ErrTransferDispatch)
	require.ErrorIs(t, err, errDisk)
	assert.False(t, domain.IsBusinessError(err))

	still, err := f.transfers.Get(f.ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferPending, still.Status)
	assert.Empty(t, f.history(t, func(flt *repositoryFilter) { flt.ReferenceNumber = tr.Number }), "ni el transfer_out quedó escrito")
	a := f.stock(t, f.whA)
	requireDec(t, 5, a.Quantity, "origen intacto")
	requireDec(t, 3, a.Available, "reserva intacta")
}

func TestTransfer_List(t *testing.T) {
	f := newFixture(t)
	f.receiveQty(t, f.whA, 5, 10)
	tr := f.qtyTransfer(t, 1)
	f.qtyTransfer(t, 1)
	_, err := f.transfers.Submit(f.ctx, tr.ID, "u")
	require.NoError(t, err)

	pending, err := f.transfers.List(f.ctx, repository.TransferFilter{Status: entity.TransferPending})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, tr.ID, pending[0].ID)

	byWh, err := f.transfers.List(f.ctx, repository.TransferFilter{WarehouseID: f.whB.ID})
	require.NoError(t, err)
	assert.Len(t, byWh, 2)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, eventType string, data interface{}) error {
	return m.Called(ctx, eventType, data).Error(0)
}

func TestTransfer_FalloDelBrokerNoRevierte(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repos()
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	pub := new(mockPublisher)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker caído"))

	clock := &stepClock{}
	ledger := inventory.NewLedgerUseCase(store, repos, clock, pub, log)
	transfers := inventory.NewTransferUseCase(store, repos, ledger, clock, pub, log)

	p := &entity.Product{ID: "p1", Code: "P1", Name: "P1"}
	require.NoError(t, repos.Products.Create(ctx, p))
	a := &entity.Warehouse{ID: "wa", Code: "A", Name: "A", Active: true}
	b := &entity.Warehouse{ID: "wb", Code: "B", Name: "B", Active: true}
	require.NoError(t, repos.Warehouses.Create(ctx, a))
	require.NoError(t, repos.Warehouses.Create(ctx, b))

	cost := dec(10)
	_, err := ledger.AppendMovement(ctx, inventory.AppendMovementInput{
		ProductID: p.ID, WarehouseID: a.ID, Kind: entity.MovementIn, Direction: entity.DirectionIncrease,
		Quantity: dec(3), UnitCost: &cost,
	})
	require.NoError(t, err)

	tr, err := transfers.Create(ctx, inventory.CreateTransferInput{
		SourceWarehouseID: a.ID, TargetWarehouseID: b.ID,
		Items: []inventory.TransferItemInput{{ProductID: p.ID, Quantity: dec(3)}},
	})
	require.NoError(t, err)
	_, err = transfers.Submit(ctx, tr.ID, "u")
	require.NoError(t, err)
	tr, err = transfers.Dispatch(ctx, tr.ID, "u")
	require.NoError(t, err)
	assert.Equal(t, entity.TransferInTransit, tr.Status)
	pub.AssertCalled(t, "Publish", mock.Anything, inventory.EventTransferStatusChanged, mock.Anything)
}
