package memory

import (
	"context"
	"iter"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var (
	_ repository.StockRepository    = (*StockRepo)(nil)
	_ repository.MovementRepository = (*MovementRepo)(nil)
)

// StockRepo contador por clave en memoria.
type StockRepo struct{ v view }

func zeroStock(productID, warehouseID string) entity.Stock {
	return entity.Stock{
		ProductID: productID, WarehouseID: warehouseID,
		Quantity: decimal.Zero, Reserved: decimal.Zero, AvgCost: decimal.Zero,
	}
}

func (r *StockRepo) Get(_ context.Context, productID, warehouseID string) (*entity.Stock, error) {
	out := zeroStock(productID, warehouseID)
	err := r.v.read(func(st *state) error {
		if s, ok := st.stock[entity.StockKey{ProductID: productID, WarehouseID: warehouseID}]; ok {
			out = s
		}
		return nil
	})
	return &out, err
}

// GetForUpdate dentro de una transacción el candado del almacén ya es exclusivo;
// crea la fila en cero como lo hace el adaptador de Postgres.
func (r *StockRepo) GetForUpdate(_ context.Context, productID, warehouseID string) (*entity.Stock, error) {
	var out entity.Stock
	err := r.v.write(func(st *state) error {
		key := entity.StockKey{ProductID: productID, WarehouseID: warehouseID}
		s, ok := st.stock[key]
		if !ok {
			s = zeroStock(productID, warehouseID)
			st.stock[key] = s
		}
		out = s
		return nil
	})
	return &out, err
}

func (r *StockRepo) Upsert(_ context.Context, s *entity.Stock) error {
	return r.v.write(func(st *state) error {
		st.stock[entity.StockKey{ProductID: s.ProductID, WarehouseID: s.WarehouseID}] = *s
		return nil
	})
}

func (r *StockRepo) ListKeys(_ context.Context) ([]entity.StockKey, error) {
	seen := map[entity.StockKey]bool{}
	_ = r.v.read(func(st *state) error {
		for k := range st.stock {
			seen[k] = true
		}
		for _, m := range st.movements {
			seen[entity.StockKey{ProductID: m.ProductID, WarehouseID: m.WarehouseID}] = true
		}
		return nil
	})
	keys := make([]entity.StockKey, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys, nil
}

// MovementRepo libro en memoria (solo agrega).
type MovementRepo struct{ v view }

func (r *MovementRepo) Append(_ context.Context, e *entity.MovementEntry) error {
	return r.v.write(func(st *state) error {
		st.sequence++
		e.Sequence = st.sequence
		st.movements = append(st.movements, *e)
		return nil
	})
}

func (r *MovementRepo) GetByID(_ context.Context, id string) (*entity.MovementEntry, error) {
	var out *entity.MovementEntry
	err := r.v.read(func(st *state) error {
		for _, m := range st.movements {
			if m.ID == id {
				out = &m
				return nil
			}
		}
		return nil
	})
	return out, err
}

// Iterate toma la porción confirmada del libro y la recorre sin candado:
// las entradas nunca se modifican después de agregarse.
func (r *MovementRepo) Iterate(ctx context.Context, f repository.MovementFilter) iter.Seq2[*entity.MovementEntry, error] {
	return func(yield func(*entity.MovementEntry, error) bool) {
		var snapshot []entity.MovementEntry
		_ = r.v.read(func(st *state) error {
			snapshot = st.movements[:len(st.movements):len(st.movements)]
			return nil
		})
		n := 0
		for i := range snapshot {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			m := snapshot[i]
			if !matches(&m, f) {
				continue
			}
			if !yield(&m, nil) {
				return
			}
			n++
			if f.Limit > 0 && n >= f.Limit {
				return
			}
		}
	}
}

func matches(m *entity.MovementEntry, f repository.MovementFilter) bool {
	switch {
	case f.ProductID != "" && m.ProductID != f.ProductID:
		return false
	case f.WarehouseID != "" && m.WarehouseID != f.WarehouseID:
		return false
	case f.ReferenceType != "" && m.ReferenceType != f.ReferenceType:
		return false
	case f.ReferenceNumber != "" && m.ReferenceNumber != f.ReferenceNumber:
		return false
	case f.AfterSequence > 0 && m.Sequence <= f.AfterSequence:
		return false
	case f.From != nil && m.CreatedAt.Before(*f.From):
		return false
	case f.To != nil && m.CreatedAt.After(*f.To):
		return false
	}
	return true
}

func (r *MovementRepo) CountByProduct(_ context.Context, productID string) (int, error) {
	n := 0
	err := r.v.read(func(st *state) error {
		for _, m := range st.movements {
			if m.ProductID == productID {
				n++
			}
		}
		return nil
	})
	return n, err
}
