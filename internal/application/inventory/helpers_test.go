package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// stepClock avanza un segundo por lectura para que los timestamps sean distinguibles.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

// recorder guarda los eventos publicados.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) Publish(_ context.Context, eventType string, _ interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, eventType)
	return nil
}

func (r *recorder) count(eventType string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e == eventType {
			n++
		}
	}
	return n
}

type fixture struct {
	ctx        context.Context
	store      *memory.Store
	repos      inventory.Repos
	events     *recorder
	ledger     *inventory.LedgerUseCase
	serials    *inventory.SerialUseCase
	transfers  *inventory.TransferUseCase
	adjustment *inventory.AdjustmentUseCase
	product    *entity.Product
	whA, whB   *entity.Warehouse
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithRunner(t, nil)
}

// newFixtureWithRunner permite envolver el TxRunner del almacén (inyección de fallos).
func newFixtureWithRunner(t *testing.T, wrap func(inventory.TxRunner) inventory.TxRunner) *fixture {
	t.Helper()
	store := memory.NewStore()
	var runner inventory.TxRunner = store
	if wrap != nil {
		runner = wrap(store)
	}
	f := &fixture{
		ctx:    context.Background(),
		store:  store,
		repos:  store.Repos(),
		events: &recorder{},
	}
	clock := &stepClock{now: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)}
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	f.ledger = inventory.NewLedgerUseCase(runner, f.repos, clock, f.events, log)
	f.serials = inventory.NewSerialUseCase(runner, f.repos, f.ledger, clock, f.events, log)
	f.transfers = inventory.NewTransferUseCase(runner, f.repos, f.ledger, clock, f.events, log)
	f.adjustment = inventory.NewAdjustmentUseCase(runner, f.repos, f.ledger, clock, f.events, log)

	f.product = f.newProduct(t, "P")
	f.whA = f.newWarehouse(t, "A")
	f.whB = f.newWarehouse(t, "B")
	return f
}

func (f *fixture) newProduct(t *testing.T, code string) *entity.Product {
	t.Helper()
	p := &entity.Product{ID: uuid.New().String(), Code: code, Name: "Producto " + code, Cost: decimal.Zero, Price: decimal.Zero}
	require.NoError(t, f.repos.Products.Create(f.ctx, p))
	return p
}

func (f *fixture) newWarehouse(t *testing.T, code string) *entity.Warehouse {
	t.Helper()
	w := &entity.Warehouse{ID: uuid.New().String(), Code: code, Name: "Bodega " + code, Active: true}
	require.NoError(t, f.repos.Warehouses.Create(f.ctx, w))
	return w
}

func (f *fixture) receiveQty(t *testing.T, wh *entity.Warehouse, qty, cost int64) {
	t.Helper()
	c := decimal.NewFromInt(cost)
	_, err := f.ledger.AppendMovement(f.ctx, inventory.AppendMovementInput{
		ProductID:   f.product.ID,
		WarehouseID: wh.ID,
		Kind:        entity.MovementIn,
		Quantity:    decimal.NewFromInt(qty),
		UnitCost:    &c,
		ActorID:     "tester",
	})
	require.NoError(t, err)
}

func (f *fixture) receiveUnit(t *testing.T, wh *entity.Warehouse, code string) *entity.SerialUnit {
	t.Helper()
	u, err := f.serials.Receive(f.ctx, inventory.ReceiveSerialInput{
		ProductID:   f.product.ID,
		WarehouseID: wh.ID,
		SerialCode:  code,
		UnitCost:    decimal.NewFromInt(50),
		ActorID:     "tester",
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) stock(t *testing.T, wh *entity.Warehouse) inventory.StockView {
	t.Helper()
	s, err := f.ledger.GetStock(f.ctx, f.product.ID, wh.ID)
	require.NoError(t, err)
	return s
}

type repositoryFilter = repository.MovementFilter

func (f *fixture) history(t *testing.T, filter func(*repositoryFilter)) []*entity.MovementEntry {
	t.Helper()
	var flt repositoryFilter
	if filter != nil {
		filter(&flt)
	}
	var out []*entity.MovementEntry
	for e, err := range f.ledger.History(f.ctx, flt) {
		require.NoError(t, err)
		out = append(out, e)
	}
	return out
}

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func requireDec(t *testing.T, want int64, got decimal.Decimal, msg string) {
	t.Helper()
	require.Truef(t, got.Equal(dec(want)), "%s: got %s want %d", msg, got, want)
}
