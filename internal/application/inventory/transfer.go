package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// TransferUseCase orquesta traslados entre bodegas:
// draft -> pending -> in_transit -> delivered -> completed, cancelled antes del despacho.
// Orden de bloqueo en todas las operaciones: cabecera, unidades (por ID), filas de stock (por clave).
type TransferUseCase struct {
	txRunner TxRunner
	repos    Repos
	ledger   *LedgerUseCase
	clock    Clock
	events   EventPublisher
	log      *logger.Logger
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(txRunner TxRunner, repos Repos, ledger *LedgerUseCase, clock Clock, events EventPublisher, log *logger.Logger) *TransferUseCase {
	if events == nil {
		events = NoopPublisher{}
	}
	return &TransferUseCase{txRunner: txRunner, repos: repos, ledger: ledger, clock: clock, events: events, log: log}
}

// TransferItemInput un ítem: unidad serializada (SerialUnitID o SerialCode) o cantidad de un producto.
type TransferItemInput struct {
	SerialUnitID string
	SerialCode   string
	ProductID    string
	Quantity     decimal.Decimal
}

// CreateTransferInput entrada de Create. Number vacío genera uno.
type CreateTransferInput struct {
	Number            string
	SourceWarehouseID string
	TargetWarehouseID string
	Items             []TransferItemInput
	Note              string
	ActorID           string
}

// NewTransferNumber genera un número TRF-<8 hex>.
func NewTransferNumber() string {
	return "TRF-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}

// Create valida y persiste el traslado en draft. No toca stock.
func (uc *TransferUseCase) Create(ctx context.Context, in CreateTransferInput) (*entity.Transfer, error) {
	if in.SourceWarehouseID == "" {
		return nil, domain.NewValidationError("source_warehouse_id", "required")
	}
	if in.TargetWarehouseID == "" {
		return nil, domain.NewValidationError("target_warehouse_id", "required")
	}
	if in.SourceWarehouseID == in.TargetWarehouseID {
		return nil, domain.NewValidationError("target_warehouse_id", "same_as_source")
	}
	if len(in.Items) == 0 {
		return nil, domain.NewValidationError("items", "required")
	}
	for _, id := range []string{in.SourceWarehouseID, in.TargetWarehouseID} {
		wh, err := uc.repos.Warehouses.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if wh == nil {
			return nil, fmt.Errorf("bodega %s: %w", id, domain.ErrNotFound)
		}
		if !wh.Active {
			return nil, domain.NewValidationError("warehouse_id", "inactive")
		}
	}
	number := strings.TrimSpace(in.Number)
	if number == "" {
		number = NewTransferNumber()
	} else if existing, err := uc.repos.Transfers.GetByNumber(ctx, number); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("traslado %s: %w", number, domain.ErrDuplicate)
	}

	now := uc.clock.Now()
	t := &entity.Transfer{
		ID:                uuid.New().String(),
		Number:            number,
		SourceWarehouseID: in.SourceWarehouseID,
		TargetWarehouseID: in.TargetWarehouseID,
		Status:            entity.TransferDraft,
		TotalQuantity:     decimal.Zero,
		Note:              in.Note,
		InitiatedBy:       in.ActorID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	seenUnits := map[string]bool{}
	requested := map[string]decimal.Decimal{}
	for i, it := range in.Items {
		item := &entity.TransferItem{ID: uuid.New().String(), TransferID: t.ID, Status: entity.TransferItemPending}
		if it.SerialUnitID != "" || it.SerialCode != "" {
			unit, err := findSerial(ctx, uc.repos, it.SerialUnitID, it.SerialCode)
			if err != nil {
				return nil, err
			}
			ref := it.SerialCode
			if ref == "" {
				ref = it.SerialUnitID
			}
			if unit == nil {
				return nil, &domain.TransferItemConflictError{TransferNumber: number, SerialCode: ref, Reason: "not_found"}
			}
			if reason := unitConflict(unit, in.SourceWarehouseID, ""); reason != "" {
				return nil, &domain.TransferItemConflictError{TransferNumber: number, SerialCode: unit.SerialCode, Reason: reason}
			}
			if seenUnits[unit.ID] {
				return nil, &domain.TransferItemConflictError{TransferNumber: number, SerialCode: unit.SerialCode, Reason: "duplicated_in_transfer"}
			}
			seenUnits[unit.ID] = true
			item.ProductID = unit.ProductID
			item.SerialUnitID = unit.ID
			item.SerialCode = unit.SerialCode
			item.Quantity = decimal.NewFromInt(1)
			item.UnitCost = unit.UnitCost
		} else {
			if it.ProductID == "" {
				return nil, domain.NewValidationError(fmt.Sprintf("items[%d].product_id", i), "required")
			}
			if !it.Quantity.IsPositive() {
				return nil, domain.NewValidationError(fmt.Sprintf("items[%d].quantity", i), "must_be_positive")
			}
			product, err := uc.repos.Products.GetByID(ctx, it.ProductID)
			if err != nil {
				return nil, err
			}
			if product == nil {
				return nil, fmt.Errorf("producto %s: %w", it.ProductID, domain.ErrNotFound)
			}
			stock, err := uc.repos.Stock.Get(ctx, it.ProductID, in.SourceWarehouseID)
			if err != nil {
				return nil, err
			}
			total := requested[it.ProductID].Add(it.Quantity)
			if stock.Available().LessThan(total) {
				return nil, &domain.InsufficientStockError{
					ProductID: it.ProductID, WarehouseID: in.SourceWarehouseID,
					Available: stock.Available(), Requested: total,
				}
			}
			requested[it.ProductID] = total
			item.ProductID = it.ProductID
			item.Quantity = it.Quantity
			item.UnitCost = stock.AvgCost
		}
		t.Items = append(t.Items, item)
		t.TotalQuantity = t.TotalQuantity.Add(item.Quantity)
	}
	t.TotalItems = len(t.Items)

	if err := uc.txRunner.Run(ctx, func(r Repos) error {
		return r.Transfers.Create(ctx, t)
	}); err != nil {
		return nil, err
	}
	uc.statusChanged(ctx, t, "", in.ActorID)
	return t, nil
}

// Submit retiene las unidades y reserva las cantidades en la bodega origen (pending).
// Cualquier ítem fuera del estado esperado hace fallar toda la operación.
func (uc *TransferUseCase) Submit(ctx context.Context, id, actorID string) (*entity.Transfer, error) {
	var (
		t      *entity.Transfer
		from   entity.TransferStatus
		replay bool
	)
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		var err error
		if t, err = lockTransfer(ctx, r, id); err != nil {
			return err
		}
		from, replay = t.Status, t.Status == entity.TransferPending
		if replay {
			return nil
		}
		if err := inventory.CheckTransferTransition(t.Number, t.Status, entity.TransferPending); err != nil {
			return err
		}
		units, err := lockUnits(ctx, r, t)
		if err != nil {
			return err
		}
		for _, item := range t.Items {
			if !item.Serialized() {
				continue
			}
			unit := units[item.SerialUnitID]
			if reason := unitConflict(unit, t.SourceWarehouseID, ""); reason != "" {
				return &domain.TransferItemConflictError{TransferNumber: t.Number, SerialCode: item.SerialCode, Reason: reason}
			}
			unit.HoldReference = t.Number
			unit.UpdatedAt = uc.clock.Now()
			if err := r.Serials.Update(ctx, unit); err != nil {
				return err
			}
		}
		if err := uc.reserveItems(ctx, r, t, t.SourceWarehouseID, decimal.NewFromInt(1)); err != nil {
			return err
		}
		for _, item := range t.Items {
			item.Status = entity.TransferItemReserved
		}
		now := uc.clock.Now()
		t.Status = entity.TransferPending
		t.SubmittedAt = &now
		t.UpdatedAt = now
		return r.Transfers.Update(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	if !replay {
		uc.statusChanged(ctx, t, from, actorID)
	}
	return t, nil
}

// Dispatch agrega en una sola transacción los pares transfer_out/transfer_in de todos
// los ítems y mueve las unidades a la bodega destino como transferred. Los errores de
// infraestructura se devuelven como TransferDispatchError con el traslado aún en pending.
func (uc *TransferUseCase) Dispatch(ctx context.Context, id, actorID string) (*entity.Transfer, error) {
	var (
		t       *entity.Transfer
		number  = id
		replay  bool
		entries []*entity.MovementEntry
	)
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		entries = entries[:0]
		var err error
		if t, err = lockTransfer(ctx, r, id); err != nil {
			return err
		}
		number = t.Number
		switch t.Status {
		case entity.TransferInTransit, entity.TransferDelivered, entity.TransferCompleted:
			replay = true
			return nil
		}
		replay = false
		if err := inventory.CheckTransferTransition(t.Number, t.Status, entity.TransferInTransit); err != nil {
			return err
		}
		units, err := lockUnits(ctx, r, t)
		if err != nil {
			return err
		}
		keys := make([]entity.StockKey, 0, 2*len(t.Items))
		for _, item := range t.Items {
			if item.Serialized() {
				if reason := unitConflict(units[item.SerialUnitID], t.SourceWarehouseID, t.Number); reason != "" {
					return &domain.TransferItemConflictError{TransferNumber: t.Number, SerialCode: item.SerialCode, Reason: reason}
				}
			}
			keys = append(keys,
				entity.StockKey{ProductID: item.ProductID, WarehouseID: t.SourceWarehouseID},
				entity.StockKey{ProductID: item.ProductID, WarehouseID: t.TargetWarehouseID})
		}
		if err := lockKeysInTx(ctx, r, keys); err != nil {
			return err
		}

		now := uc.clock.Now()
		for _, item := range t.Items {
			var cost *decimal.Decimal
			if item.Serialized() {
				cost = &units[item.SerialUnitID].UnitCost
			}
			out, err := uc.ledger.appendInTx(ctx, r, movementSpec{
				ProductID:       item.ProductID,
				WarehouseID:     t.SourceWarehouseID,
				SerialUnitID:    item.SerialUnitID,
				Kind:            entity.MovementTransferOut,
				Direction:       entity.DirectionDecrease,
				Quantity:        item.Quantity,
				UnitCost:        cost,
				ReservedDelta:   item.Quantity.Neg(),
				ReferenceType:   entity.ReferenceTransfer,
				ReferenceNumber: t.Number,
				ActorID:         actorID,
			})
			if err != nil {
				return itemConflict(t, item, err)
			}
			in, err := uc.ledger.appendInTx(ctx, r, movementSpec{
				ProductID:       item.ProductID,
				WarehouseID:     t.TargetWarehouseID,
				SerialUnitID:    item.SerialUnitID,
				Kind:            entity.MovementTransferIn,
				Direction:       entity.DirectionIncrease,
				Quantity:        item.Quantity,
				UnitCost:        &out.UnitCost,
				ReservedDelta:   item.Quantity,
				ReferenceType:   entity.ReferenceTransfer,
				ReferenceNumber: t.Number,
				ActorID:         actorID,
			})
			if err != nil {
				return itemConflict(t, item, err)
			}
			entries = append(entries, out, in)
			// El costo del ítem es el que salió del origen, no el cotizado al crear.
			item.UnitCost = out.UnitCost

			if item.Serialized() {
				unit := units[item.SerialUnitID]
				unit.WarehouseID = t.TargetWarehouseID
				unit.Status = entity.SerialTransferred
				unit.HoldReference = ""
				unit.ReferenceNumber = t.Number
				unit.UpdatedAt = now
				if err := r.Serials.Update(ctx, unit); err != nil {
					return err
				}
			}
			item.Status = entity.TransferItemShipped
		}
		t.Status = entity.TransferInTransit
		t.DispatchedAt = &now
		t.UpdatedAt = now
		return r.Transfers.Update(ctx, t)
	})
	if err != nil {
		if domain.IsBusinessError(err) {
			return nil, err
		}
		uc.log.Error().Err(err).Str("transfer", number).Msg("fallo al despachar traslado")
		return nil, &domain.TransferDispatchError{TransferNumber: number, Err: err}
	}
	if replay {
		return t, nil
	}
	for _, e := range entries {
		publish(ctx, uc.events, uc.log, EventMovementAppended, newMovementEvent(e))
	}
	uc.statusChanged(ctx, t, entity.TransferPending, actorID)
	return t, nil
}

// ConfirmDelivery registra delivered y completed en una transacción: las unidades
// pasan a available en destino y se libera la reserva en tránsito.
func (uc *TransferUseCase) ConfirmDelivery(ctx context.Context, id, confirmerID string) (*entity.Transfer, error) {
	var (
		t       *entity.Transfer
		from    entity.TransferStatus
		replay  bool
		entries []*entity.MovementEntry
	)
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		entries = entries[:0]
		var err error
		if t, err = lockTransfer(ctx, r, id); err != nil {
			return err
		}
		from, replay = t.Status, t.Status == entity.TransferCompleted
		if replay {
			return nil
		}
		if err := inventory.CheckTransferTransition(t.Number, t.Status, entity.TransferDelivered); err != nil {
			return err
		}
		units, err := lockUnits(ctx, r, t)
		if err != nil {
			return err
		}
		now := uc.clock.Now()
		t.Status = entity.TransferDelivered
		t.DeliveredAt = &now

		keys := make([]entity.StockKey, 0, len(t.Items))
		for _, item := range t.Items {
			keys = append(keys, entity.StockKey{ProductID: item.ProductID, WarehouseID: t.TargetWarehouseID})
		}
		if err := lockKeysInTx(ctx, r, keys); err != nil {
			return err
		}
		for _, item := range t.Items {
			if item.Serialized() {
				unit := units[item.SerialUnitID]
				// Una unidad ya liberada (transición manual o ajuste) no tiene reserva pendiente.
				if unit.Status == entity.SerialTransferred && unit.WarehouseID == t.TargetWarehouseID {
					e, err := uc.ledger.appendInTx(ctx, r, movementSpec{
						ProductID:       item.ProductID,
						WarehouseID:     t.TargetWarehouseID,
						SerialUnitID:    unit.ID,
						Kind:            entity.MovementAdjustment,
						Direction:       entity.DirectionNone,
						Quantity:        decimal.Zero,
						UnitCost:        &unit.UnitCost,
						ReservedDelta:   decimal.NewFromInt(-1),
						ReferenceType:   entity.ReferenceTransfer,
						ReferenceNumber: t.Number,
						Note:            "transferred -> available",
						ActorID:         confirmerID,
					})
					if err != nil {
						return err
					}
					entries = append(entries, e)
					unit.Status = entity.SerialAvailable
					unit.ReferenceNumber = t.Number
					unit.UpdatedAt = now
					if err := r.Serials.Update(ctx, unit); err != nil {
						return err
					}
				}
			} else if err := uc.ledger.reserveInTx(ctx, r, item.ProductID, t.TargetWarehouseID, item.Quantity.Neg()); err != nil {
				return err
			}
			item.Status = entity.TransferItemReceived
		}
		if err := inventory.CheckTransferTransition(t.Number, t.Status, entity.TransferCompleted); err != nil {
			return err
		}
		t.Status = entity.TransferCompleted
		t.CompletedAt = &now
		t.ConfirmedBy = confirmerID
		t.UpdatedAt = now
		return r.Transfers.Update(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	if replay {
		return t, nil
	}
	for _, e := range entries {
		publish(ctx, uc.events, uc.log, EventMovementAppended, newMovementEvent(e))
	}
	uc.statusChanged(ctx, t, from, confirmerID)
	return t, nil
}

// Cancel solo antes del despacho; libera retenciones y reservas de pending.
// Un traslado despachado se revierte con un traslado inverso.
func (uc *TransferUseCase) Cancel(ctx context.Context, id, actorID, reason string) (*entity.Transfer, error) {
	var (
		t      *entity.Transfer
		from   entity.TransferStatus
		replay bool
	)
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		var err error
		if t, err = lockTransfer(ctx, r, id); err != nil {
			return err
		}
		from, replay = t.Status, t.Status == entity.TransferCancelled
		if replay {
			return nil
		}
		if err := inventory.CheckTransferTransition(t.Number, t.Status, entity.TransferCancelled); err != nil {
			return err
		}
		if t.Status == entity.TransferPending {
			units, err := lockUnits(ctx, r, t)
			if err != nil {
				return err
			}
			for _, item := range t.Items {
				if !item.Serialized() {
					continue
				}
				unit := units[item.SerialUnitID]
				if unit.HoldReference != t.Number {
					continue
				}
				unit.HoldReference = ""
				unit.UpdatedAt = uc.clock.Now()
				if err := r.Serials.Update(ctx, unit); err != nil {
					return err
				}
			}
			if err := uc.reserveItems(ctx, r, t, t.SourceWarehouseID, decimal.NewFromInt(-1)); err != nil {
				return err
			}
		}
		now := uc.clock.Now()
		for _, item := range t.Items {
			item.Status = entity.TransferItemReleased
		}
		if reason != "" {
			t.Note = strings.TrimSpace(t.Note + "\ncancelado: " + reason)
		}
		t.Status = entity.TransferCancelled
		t.CancelledAt = &now
		t.UpdatedAt = now
		return r.Transfers.Update(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	if !replay {
		uc.statusChanged(ctx, t, from, actorID)
	}
	return t, nil
}

// Get devuelve el traslado con sus ítems.
func (uc *TransferUseCase) Get(ctx context.Context, id string) (*entity.Transfer, error) {
	t, err := uc.repos.Transfers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("traslado %s: %w", id, domain.ErrNotFound)
	}
	return t, nil
}

// List lista traslados por estado o bodega.
func (uc *TransferUseCase) List(ctx context.Context, filter repository.TransferFilter) ([]*entity.Transfer, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return uc.repos.Transfers.List(ctx, filter)
}

// reserveItems suma sign*cantidad a la reserva de cada producto en la bodega, en orden de clave.
func (uc *TransferUseCase) reserveItems(ctx context.Context, r Repos, t *entity.Transfer, warehouseID string, sign decimal.Decimal) error {
	totals := map[string]decimal.Decimal{}
	for _, item := range t.Items {
		totals[item.ProductID] = totals[item.ProductID].Add(item.Quantity)
	}
	products := make([]string, 0, len(totals))
	for p := range totals {
		products = append(products, p)
	}
	sort.Strings(products)
	for _, p := range products {
		err := uc.ledger.reserveInTx(ctx, r, p, warehouseID, totals[p].Mul(sign))
		if ise, ok := isInsufficient(err); ok {
			return &domain.TransferItemConflictError{
				TransferNumber: t.Number,
				ProductID:      p,
				Reason:         fmt.Sprintf("insufficient_stock: available=%s requested=%s", ise.Available, ise.Requested),
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (uc *TransferUseCase) statusChanged(ctx context.Context, t *entity.Transfer, from entity.TransferStatus, actorID string) {
	uc.log.Info().Str("transfer", t.Number).Str("from", string(from)).Str("to", string(t.Status)).Msg("traslado actualizado")
	publish(ctx, uc.events, uc.log, EventTransferStatusChanged, TransferStatusChangedEvent{
		TransferID: t.ID, Number: t.Number, From: string(from), To: string(t.Status), ActorID: actorID,
	})
}

func lockTransfer(ctx context.Context, r Repos, id string) (*entity.Transfer, error) {
	t, err := r.Transfers.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("traslado %s: %w", id, domain.ErrNotFound)
	}
	return t, nil
}

// lockUnits bloquea las unidades del traslado ordenadas por ID.
func lockUnits(ctx context.Context, r Repos, t *entity.Transfer) (map[string]*entity.SerialUnit, error) {
	ids := make([]string, 0, len(t.Items))
	for _, item := range t.Items {
		if item.Serialized() {
			ids = append(ids, item.SerialUnitID)
		}
	}
	sort.Strings(ids)
	units := make(map[string]*entity.SerialUnit, len(ids))
	for _, id := range ids {
		unit, err := r.Serials.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if unit == nil {
			return nil, fmt.Errorf("unidad %s: %w", id, domain.ErrNotFound)
		}
		units[id] = unit
	}
	return units, nil
}

// unitConflict motivo por el que la unidad no puede viajar desde warehouseID,
// o "" si está disponible. hold es la retención esperada (vacío: ninguna).
func unitConflict(unit *entity.SerialUnit, warehouseID, hold string) string {
	switch {
	case unit.WarehouseID != warehouseID:
		return "not_at_source"
	case unit.Status != entity.SerialAvailable:
		return "status_" + string(unit.Status)
	case unit.HoldReference != hold && unit.HoldReference != "":
		return "held_by_" + unit.HoldReference
	case unit.HoldReference != hold:
		return "not_held"
	}
	return ""
}

// itemConflict traduce la falta de stock de un ítem a conflicto de traslado.
func itemConflict(t *entity.Transfer, item *entity.TransferItem, err error) error {
	if ise, ok := isInsufficient(err); ok {
		return &domain.TransferItemConflictError{
			TransferNumber: t.Number,
			SerialCode:     item.SerialCode,
			ProductID:      item.ProductID,
			Reason:         fmt.Sprintf("insufficient_stock: available=%s requested=%s", ise.Available, ise.Requested),
		}
	}
	return err
}
