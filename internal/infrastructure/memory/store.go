package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

var _ inventory.TxRunner = (*Store)(nil)

// state es todo el contenido del almacén. Se clona al abrir cada transacción
// y se reemplaza completo en el commit.
type state struct {
	products          map[string]entity.Product
	productCodes      map[string]string
	warehouses        map[string]entity.Warehouse
	warehouseCodes    map[string]string
	stock             map[entity.StockKey]entity.Stock
	movements         []entity.MovementEntry
	sequence          int64
	serials           map[string]entity.SerialUnit
	serialCodes       map[string]string
	transfers         map[string]entity.Transfer
	transferNumbers   map[string]string
	adjustments       map[string]entity.Adjustment
	adjustmentNumbers map[string]string
}

func newState() state {
	return state{
		products:          map[string]entity.Product{},
		productCodes:      map[string]string{},
		warehouses:        map[string]entity.Warehouse{},
		warehouseCodes:    map[string]string{},
		stock:             map[entity.StockKey]entity.Stock{},
		serials:           map[string]entity.SerialUnit{},
		serialCodes:       map[string]string{},
		transfers:         map[string]entity.Transfer{},
		transferNumbers:   map[string]string{},
		adjustments:       map[string]entity.Adjustment{},
		adjustmentNumbers: map[string]string{},
	}
}

// clone copia los mapas. Los ítems de traslados y ajustes se copian al leer y al escribir,
// así que compartir los valores es seguro. El libro se recorta para que un append
// de la transacción nunca escriba sobre el arreglo del estado confirmado.
func (s state) clone() state {
	return state{
		products:          cloneMap(s.products),
		productCodes:      cloneMap(s.productCodes),
		warehouses:        cloneMap(s.warehouses),
		warehouseCodes:    cloneMap(s.warehouseCodes),
		stock:             cloneMap(s.stock),
		movements:         slices.Clip(s.movements),
		sequence:          s.sequence,
		serials:           cloneMap(s.serials),
		serialCodes:       cloneMap(s.serialCodes),
		transfers:         cloneMap(s.transfers),
		transferNumbers:   cloneMap(s.transferNumbers),
		adjustments:       cloneMap(s.adjustments),
		adjustmentNumbers: cloneMap(s.adjustmentNumbers),
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	cp := make(map[K]V, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

// Store almacén transaccional en memoria (modo desarrollo y pruebas).
// Un único escritor a la vez: Run toma el candado exclusivo durante toda la transacción,
// que es la sección crítica por clave más estricta posible.
type Store struct {
	mu    sync.RWMutex
	state state
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{state: newState()}
}

// Run ejecuta fn sobre una copia del estado y la confirma solo si fn no devuelve error.
func (s *Store) Run(ctx context.Context, fn func(r inventory.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.state.clone()
	if err := fn(newRepos(view{store: s, tx: &tx})); err != nil {
		return err
	}
	s.state = tx
	return nil
}

// Repos devuelve repositorios fuera de transacción: cada lectura ve el último estado
// confirmado y cada escritura se confirma sola.
func (s *Store) Repos() inventory.Repos {
	return newRepos(view{store: s})
}

// view resuelve sobre qué estado opera un repositorio.
type view struct {
	store *Store
	tx    *state // nil: fuera de transacción
}

func (v view) read(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	return fn(&v.store.state)
}

func (v view) write(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	next := v.store.state.clone()
	if err := fn(&next); err != nil {
		return err
	}
	v.store.state = next
	return nil
}

func newRepos(v view) inventory.Repos {
	return inventory.Repos{
		Products:    &ProductRepo{v: v},
		Warehouses:  &WarehouseRepo{v: v},
		Stock:       &StockRepo{v: v},
		Movements:   &MovementRepo{v: v},
		Serials:     &SerialUnitRepo{v: v},
		Transfers:   &TransferRepo{v: v},
		Adjustments: &AdjustmentRepo{v: v},
	}
}

// page aplica limit/offset sobre una lista ya ordenada.
func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
