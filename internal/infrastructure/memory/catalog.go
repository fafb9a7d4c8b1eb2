package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var (
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.WarehouseRepository = (*WarehouseRepo)(nil)
)

// ProductRepo productos en memoria.
type ProductRepo struct{ v view }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.productCodes[p.Code]; ok {
			return domain.ErrDuplicate
		}
		st.products[p.ID] = *p
		st.productCodes[p.Code] = p.ID
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.read(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	var id string
	_ = r.v.read(func(st *state) error {
		id = st.productCodes[code]
		return nil
	})
	if id == "" {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.v.write(func(st *state) error {
		old, ok := st.products[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if old.Code != p.Code {
			if _, taken := st.productCodes[p.Code]; taken {
				return domain.ErrDuplicate
			}
			delete(st.productCodes, old.Code)
			st.productCodes[p.Code] = p.ID
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	err := r.v.read(func(st *state) error {
		for _, p := range st.products {
			list = append(list, &p)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return page(list, limit, offset), err
}

// WarehouseRepo bodegas en memoria.
type WarehouseRepo struct{ v view }

func (r *WarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.warehouseCodes[w.Code]; ok {
			return domain.ErrDuplicate
		}
		st.warehouses[w.ID] = *w
		st.warehouseCodes[w.Code] = w.ID
		return nil
	})
}

func (r *WarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	err := r.v.read(func(st *state) error {
		if w, ok := st.warehouses[id]; ok {
			out = &w
		}
		return nil
	})
	return out, err
}

func (r *WarehouseRepo) GetByCode(ctx context.Context, code string) (*entity.Warehouse, error) {
	var id string
	_ = r.v.read(func(st *state) error {
		id = st.warehouseCodes[code]
		return nil
	})
	if id == "" {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *WarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	return r.v.write(func(st *state) error {
		old, ok := st.warehouses[w.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if old.Code != w.Code {
			if _, taken := st.warehouseCodes[w.Code]; taken {
				return domain.ErrDuplicate
			}
			delete(st.warehouseCodes, old.Code)
			st.warehouseCodes[w.Code] = w.ID
		}
		st.warehouses[w.ID] = *w
		return nil
	})
}

func (r *WarehouseRepo) List(_ context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	var list []*entity.Warehouse
	err := r.v.read(func(st *state) error {
		for _, w := range st.warehouses {
			list = append(list, &w)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return page(list, limit, offset), err
}
