package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var (
	_ repository.SerialUnitRepository = (*SerialUnitRepo)(nil)
	_ repository.TransferRepository   = (*TransferRepo)(nil)
	_ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)
)

// SerialUnitRepo unidades serializadas en memoria.
type SerialUnitRepo struct{ v view }

func (r *SerialUnitRepo) Create(_ context.Context, u *entity.SerialUnit) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.serialCodes[u.SerialCode]; ok {
			return &domain.DuplicateSerialError{SerialCode: u.SerialCode}
		}
		st.serials[u.ID] = *u
		st.serialCodes[u.SerialCode] = u.ID
		return nil
	})
}

func (r *SerialUnitRepo) GetByID(_ context.Context, id string) (*entity.SerialUnit, error) {
	var out *entity.SerialUnit
	err := r.v.read(func(st *state) error {
		if u, ok := st.serials[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *SerialUnitRepo) GetByCode(ctx context.Context, code string) (*entity.SerialUnit, error) {
	var id string
	_ = r.v.read(func(st *state) error {
		id = st.serialCodes[code]
		return nil
	})
	if id == "" {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *SerialUnitRepo) GetForUpdate(ctx context.Context, id string) (*entity.SerialUnit, error) {
	return r.GetByID(ctx, id)
}

func (r *SerialUnitRepo) Update(_ context.Context, u *entity.SerialUnit) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.serials[u.ID]; !ok {
			return domain.ErrNotFound
		}
		st.serials[u.ID] = *u
		return nil
	})
}

func (r *SerialUnitRepo) ListByWarehouse(_ context.Context, warehouseID string, status entity.SerialStatus, limit, offset int) ([]*entity.SerialUnit, error) {
	var list []*entity.SerialUnit
	err := r.v.read(func(st *state) error {
		for _, u := range st.serials {
			if u.WarehouseID == warehouseID && (status == "" || u.Status == status) {
				list = append(list, &u)
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].SerialCode < list[j].SerialCode })
	return page(list, limit, offset), err
}

func (r *SerialUnitRepo) CountReserving(_ context.Context, productID, warehouseID string) (int, error) {
	n := 0
	err := r.v.read(func(st *state) error {
		for _, u := range st.serials {
			if u.ProductID != productID || u.WarehouseID != warehouseID {
				continue
			}
			if u.Status == entity.SerialReserved || u.Status == entity.SerialTransferred || u.Held() {
				n++
			}
		}
		return nil
	})
	return n, err
}

// TransferRepo traslados en memoria.
type TransferRepo struct{ v view }

func copyTransfer(t entity.Transfer) *entity.Transfer {
	items := make([]*entity.TransferItem, len(t.Items))
	for i, it := range t.Items {
		c := *it
		items[i] = &c
	}
	t.Items = items
	return &t
}

func (r *TransferRepo) Create(_ context.Context, t *entity.Transfer) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.transferNumbers[t.Number]; ok {
			return domain.ErrDuplicate
		}
		st.transfers[t.ID] = *copyTransfer(*t)
		st.transferNumbers[t.Number] = t.ID
		return nil
	})
}

func (r *TransferRepo) GetByID(_ context.Context, id string) (*entity.Transfer, error) {
	var out *entity.Transfer
	err := r.v.read(func(st *state) error {
		if t, ok := st.transfers[id]; ok {
			out = copyTransfer(t)
		}
		return nil
	})
	return out, err
}

func (r *TransferRepo) GetByNumber(ctx context.Context, number string) (*entity.Transfer, error) {
	var id string
	_ = r.v.read(func(st *state) error {
		id = st.transferNumbers[number]
		return nil
	})
	if id == "" {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *TransferRepo) GetForUpdate(ctx context.Context, id string) (*entity.Transfer, error) {
	return r.GetByID(ctx, id)
}

func (r *TransferRepo) Update(_ context.Context, t *entity.Transfer) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.transfers[t.ID]; !ok {
			return domain.ErrNotFound
		}
		st.transfers[t.ID] = *copyTransfer(*t)
		return nil
	})
}

func (r *TransferRepo) List(_ context.Context, f repository.TransferFilter) ([]*entity.Transfer, error) {
	var list []*entity.Transfer
	err := r.v.read(func(st *state) error {
		for _, t := range st.transfers {
			if f.Status != "" && t.Status != f.Status {
				continue
			}
			if f.WarehouseID != "" && t.SourceWarehouseID != f.WarehouseID && t.TargetWarehouseID != f.WarehouseID {
				continue
			}
			list = append(list, copyTransfer(t))
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return page(list, f.Limit, f.Offset), err
}

func (r *TransferRepo) ReservedQuantity(_ context.Context, productID, warehouseID string) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.v.read(func(st *state) error {
		for _, t := range st.transfers {
			outbound := t.Status == entity.TransferPending && t.SourceWarehouseID == warehouseID
			inbound := (t.Status == entity.TransferInTransit || t.Status == entity.TransferDelivered) &&
				t.TargetWarehouseID == warehouseID
			if !outbound && !inbound {
				continue
			}
			for _, it := range t.Items {
				if !it.Serialized() && it.ProductID == productID {
					total = total.Add(it.Quantity)
				}
			}
		}
		return nil
	})
	return total, err
}

// AdjustmentRepo ajustes en memoria.
type AdjustmentRepo struct{ v view }

func copyAdjustment(a entity.Adjustment) *entity.Adjustment {
	items := make([]*entity.AdjustmentItem, len(a.Items))
	for i, it := range a.Items {
		c := *it
		items[i] = &c
	}
	a.Items = items
	return &a
}

func (r *AdjustmentRepo) Create(_ context.Context, a *entity.Adjustment) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.adjustmentNumbers[a.Number]; ok {
			return domain.ErrDuplicate
		}
		st.adjustments[a.ID] = *copyAdjustment(*a)
		st.adjustmentNumbers[a.Number] = a.ID
		return nil
	})
}

func (r *AdjustmentRepo) GetByID(_ context.Context, id string) (*entity.Adjustment, error) {
	var out *entity.Adjustment
	err := r.v.read(func(st *state) error {
		if a, ok := st.adjustments[id]; ok {
			out = copyAdjustment(a)
		}
		return nil
	})
	return out, err
}

func (r *AdjustmentRepo) GetByNumber(ctx context.Context, number string) (*entity.Adjustment, error) {
	var id string
	_ = r.v.read(func(st *state) error {
		id = st.adjustmentNumbers[number]
		return nil
	})
	if id == "" {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *AdjustmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Adjustment, error) {
	return r.GetByID(ctx, id)
}

// Update guarda la cabecera y conserva los ítems almacenados.
func (r *AdjustmentRepo) Update(_ context.Context, a *entity.Adjustment) error {
	return r.v.write(func(st *state) error {
		old, ok := st.adjustments[a.ID]
		if !ok {
			return domain.ErrNotFound
		}
		header := *a
		header.Items = old.Items
		st.adjustments[a.ID] = header
		return nil
	})
}

func (r *AdjustmentRepo) UpdateItem(_ context.Context, item *entity.AdjustmentItem) error {
	return r.v.write(func(st *state) error {
		a, ok := st.adjustments[item.AdjustmentID]
		if !ok {
			return domain.ErrNotFound
		}
		cp := copyAdjustment(a)
		for i, it := range cp.Items {
			if it.ID == item.ID {
				c := *item
				cp.Items[i] = &c
				st.adjustments[a.ID] = *cp
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

func (r *AdjustmentRepo) List(_ context.Context, f repository.AdjustmentFilter) ([]*entity.Adjustment, error) {
	var list []*entity.Adjustment
	err := r.v.read(func(st *state) error {
		for _, a := range st.adjustments {
			if (f.Status != "" && a.Status != f.Status) ||
				(f.WarehouseID != "" && a.WarehouseID != f.WarehouseID) ||
				(f.Type != "" && a.Type != f.Type) {
				continue
			}
			list = append(list, copyAdjustment(a))
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return page(list, f.Limit, f.Offset), err
}
