package inventory

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// LedgerUseCase es el libro de movimientos y la proyección de stock.
// Toda escritura de stock o de movimientos pasa por appendInTx, con la fila
// (producto, bodega) bloqueada (SELECT FOR UPDATE) hasta el commit.
type LedgerUseCase struct {
	txRunner TxRunner
	repos    Repos
	clock    Clock
	events   EventPublisher
	log      *logger.Logger
}

// NewLedgerUseCase construye el caso de uso. repos se usa solo para lecturas fuera de transacción.
func NewLedgerUseCase(txRunner TxRunner, repos Repos, clock Clock, events EventPublisher, log *logger.Logger) *LedgerUseCase {
	if events == nil {
		events = NoopPublisher{}
	}
	return &LedgerUseCase{
		txRunner: txRunner,
		repos:    repos,
		clock:    clock,
		events:   events,
		log:      log,
	}
}

// AppendMovementInput entrada de AppendMovement.
// UnitCost obligatorio en IN; en salidas se usa el costo promedio vigente si es nil.
// Direction solo aplica (y es obligatorio) para ADJUSTMENT.
type AppendMovementInput struct {
	ProductID       string
	WarehouseID     string
	Kind            entity.MovementKind
	Direction       entity.Direction
	Quantity        decimal.Decimal
	UnitCost        *decimal.Decimal
	ReferenceType   string
	ReferenceNumber string
	Note            string
	ActorID         string
}

// StockView respuesta de GetStock.
type StockView struct {
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	Available   decimal.Decimal
	Reserved    decimal.Decimal
	AvgCost     decimal.Decimal
	TotalValue  decimal.Decimal
}

// ReconcileResult resultado de reconciliar una clave.
type ReconcileResult struct {
	ProductID   string
	WarehouseID string
	Repaired    bool
	Cached      decimal.Decimal
	Folded      decimal.Decimal
	// CachedReserved y Reserved: reserva del contador y la recalculada desde el registro.
	CachedReserved decimal.Decimal
	Reserved       decimal.Decimal
}

// ReconcileSummary resultado de ReconcileAll.
type ReconcileSummary struct {
	Checked  int
	Repaired []ReconcileResult
}

// movementSpec describe una escritura sobre el contador de una clave.
// Kind vacío indica que solo cambia la reserva, sin movimiento en el libro.
type movementSpec struct {
	ProductID       string
	WarehouseID     string
	SerialUnitID    string
	Kind            entity.MovementKind
	Direction       entity.Direction
	Quantity        decimal.Decimal
	UnitCost        *decimal.Decimal
	ReservedDelta   decimal.Decimal
	ReferenceType   string
	ReferenceNumber string
	Note            string
	ActorID         string
}

// AppendMovement valida la entrada, abre una transacción, bloquea la fila de stock,
// verifica que la cantidad no quede negativa y agrega el movimiento. Nunca escribe parcialmente.
func (uc *LedgerUseCase) AppendMovement(ctx context.Context, in AppendMovementInput) (*entity.MovementEntry, error) {
	if in.ProductID == "" {
		return nil, domain.NewValidationError("product_id", "required")
	}
	if in.WarehouseID == "" {
		return nil, domain.NewValidationError("warehouse_id", "required")
	}
	if !in.Kind.Valid() {
		return nil, domain.NewValidationError("kind", "unknown")
	}
	if !in.Quantity.IsPositive() {
		return nil, domain.NewValidationError("quantity", "must_be_positive")
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return nil, domain.NewValidationError("unit_cost", "must_not_be_negative")
	}
	direction, ok := inventory.DirectionFor(in.Kind)
	switch {
	case in.Kind == entity.MovementIn && in.UnitCost == nil:
		return nil, domain.NewValidationError("unit_cost", "required")
	case !ok:
		if in.Direction != entity.DirectionIncrease && in.Direction != entity.DirectionDecrease {
			return nil, domain.NewValidationError("direction", "required")
		}
		direction = in.Direction
	}
	refType := in.ReferenceType
	if refType == "" {
		refType = entity.ReferenceManual
	}

	product, err := uc.repos.Products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", in.ProductID, domain.ErrNotFound)
	}

	var entry *entity.MovementEntry
	err = uc.txRunner.Run(ctx, func(r Repos) error {
		var err error
		entry, err = uc.appendInTx(ctx, r, movementSpec{
			ProductID:       in.ProductID,
			WarehouseID:     in.WarehouseID,
			Kind:            in.Kind,
			Direction:       direction,
			Quantity:        in.Quantity,
			UnitCost:        in.UnitCost,
			ReferenceType:   refType,
			ReferenceNumber: in.ReferenceNumber,
			Note:            in.Note,
			ActorID:         in.ActorID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	publish(ctx, uc.events, uc.log, EventMovementAppended, newMovementEvent(entry))
	return entry, nil
}

// appendInTx es el único camino de escritura del contador y del libro.
// Bloquea la fila, aplica la regla de acumulación de la proyección y rechaza
// cualquier resultado con cantidad disponible negativa.
func (uc *LedgerUseCase) appendInTx(ctx context.Context, r Repos, spec movementSpec) (*entity.MovementEntry, error) {
	wh, err := r.Warehouses.GetByID(ctx, spec.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, fmt.Errorf("bodega %s: %w", spec.WarehouseID, domain.ErrNotFound)
	}
	if !wh.Active && !spec.releaseOnly() {
		return nil, domain.NewValidationError("warehouse_id", "inactive")
	}

	stock, err := r.Stock.GetForUpdate(ctx, spec.ProductID, spec.WarehouseID)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()

	proj := inventory.Projection{Quantity: stock.Quantity, AvgCost: stock.AvgCost}
	var entry *entity.MovementEntry
	if spec.Kind != "" {
		unitCost := stock.AvgCost
		if spec.UnitCost != nil {
			unitCost = *spec.UnitCost
		}
		entry = &entity.MovementEntry{
			ID:              uuid.New().String(),
			ProductID:       spec.ProductID,
			SerialUnitID:    spec.SerialUnitID,
			WarehouseID:     spec.WarehouseID,
			Kind:            spec.Kind,
			Direction:       spec.Direction,
			Quantity:        spec.Quantity,
			UnitCost:        unitCost,
			TotalCost:       spec.Quantity.Mul(unitCost),
			ReferenceType:   spec.ReferenceType,
			ReferenceNumber: spec.ReferenceNumber,
			Note:            spec.Note,
			CreatedAt:       now,
			CreatedBy:       spec.ActorID,
		}
		proj.Apply(entry)
	}

	reserved := stock.Reserved.Add(spec.ReservedDelta)
	if reserved.IsNegative() {
		return nil, fmt.Errorf("reserva negativa en producto %s bodega %s: %w",
			spec.ProductID, spec.WarehouseID, domain.ErrConflict)
	}
	if proj.Quantity.LessThan(reserved) {
		requested := decimal.Max(spec.ReservedDelta, decimal.Zero)
		if spec.Direction == entity.DirectionDecrease {
			requested = requested.Add(spec.Quantity)
		}
		released := decimal.Min(spec.ReservedDelta, decimal.Zero).Neg()
		return nil, &domain.InsufficientStockError{
			ProductID:   spec.ProductID,
			WarehouseID: spec.WarehouseID,
			Available:   stock.Available().Add(released),
			Requested:   requested,
		}
	}

	stock.Quantity = proj.Quantity
	stock.AvgCost = proj.AvgCost
	stock.Reserved = reserved
	stock.UpdatedAt = now
	if err := r.Stock.Upsert(ctx, stock); err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}
	if err := r.Movements.Append(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// releaseOnly indica que la escritura solo libera reserva sin mover cantidad.
// Una bodega inactiva la admite para que los traslados abiertos puedan cerrarse.
func (s movementSpec) releaseOnly() bool {
	return !s.ReservedDelta.IsPositive() && (s.Kind == "" || s.Quantity.IsZero())
}

// reserveInTx cambia solo la reserva de la clave, sin movimiento en el libro.
func (uc *LedgerUseCase) reserveInTx(ctx context.Context, r Repos, productID, warehouseID string, delta decimal.Decimal) error {
	_, err := uc.appendInTx(ctx, r, movementSpec{
		ProductID:     productID,
		WarehouseID:   warehouseID,
		ReservedDelta: delta,
	})
	return err
}

// lockKeysInTx bloquea las filas en orden total para que dos operaciones
// multi-clave no se bloqueen mutuamente.
func lockKeysInTx(ctx context.Context, r Repos, keys []entity.StockKey) error {
	sorted := make([]entity.StockKey, 0, len(keys))
	seen := make(map[entity.StockKey]bool, len(keys))
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			sorted = append(sorted, k)
		}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })
	for _, k := range sorted {
		if _, err := r.Stock.GetForUpdate(ctx, k.ProductID, k.WarehouseID); err != nil {
			return err
		}
	}
	return nil
}

// GetStock devuelve el stock actual; una clave sin movimientos es stock cero.
func (uc *LedgerUseCase) GetStock(ctx context.Context, productID, warehouseID string) (StockView, error) {
	if productID == "" || warehouseID == "" {
		return StockView{}, domain.NewValidationError("key", "product_id and warehouse_id required")
	}
	s, err := uc.repos.Stock.Get(ctx, productID, warehouseID)
	if err != nil {
		return StockView{}, err
	}
	return StockView{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    s.Quantity,
		Available:   s.Available(),
		Reserved:    s.Reserved,
		AvgCost:     s.AvgCost,
		TotalValue:  s.TotalValue(),
	}, nil
}

// History recorre el historial bajo demanda, ordenado por secuencia de commit.
// Sin Limit recorre todas las entradas; AfterSequence continúa una página anterior.
func (uc *LedgerUseCase) History(ctx context.Context, filter repository.MovementFilter) iter.Seq2[*entity.MovementEntry, error] {
	if filter.Limit < 0 {
		filter.Limit = 0
	}
	if filter.AfterSequence < 0 {
		return func(yield func(*entity.MovementEntry, error) bool) {
			yield(nil, domain.NewValidationError("after", "must_not_be_negative"))
		}
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return func(yield func(*entity.MovementEntry, error) bool) {
			yield(nil, domain.NewValidationError("to", "before_from"))
		}
	}
	return uc.repos.Movements.Iterate(ctx, filter)
}

// foldInTx pliega el historial completo de la clave dentro de la transacción.
func foldInTx(ctx context.Context, r Repos, productID, warehouseID string) (inventory.Projection, error) {
	var p inventory.Projection
	for e, err := range r.Movements.Iterate(ctx, repository.MovementFilter{ProductID: productID, WarehouseID: warehouseID}) {
		if err != nil {
			return p, err
		}
		p.Apply(e)
	}
	return p, nil
}

// VerifyStock compara el contador con el pliegue del libro y devuelve
// LedgerConsistencyError si difieren. No corrige nada.
func (uc *LedgerUseCase) VerifyStock(ctx context.Context, productID, warehouseID string) error {
	return uc.txRunner.Run(ctx, func(r Repos) error {
		s, err := r.Stock.GetForUpdate(ctx, productID, warehouseID)
		if err != nil {
			return err
		}
		folded, err := foldInTx(ctx, r, productID, warehouseID)
		if err != nil {
			return err
		}
		if !s.Quantity.Equal(folded.Quantity) {
			return &domain.LedgerConsistencyError{
				ProductID: productID, WarehouseID: warehouseID,
				Cached: s.Quantity, Folded: folded.Quantity,
			}
		}
		return nil
	})
}

// reservedInTx reconstruye la reserva de la clave desde el registro de seriales
// y los ítems por cantidad de traslados abiertos.
func reservedInTx(ctx context.Context, r Repos, productID, warehouseID string) (decimal.Decimal, error) {
	units, err := r.Serials.CountReserving(ctx, productID, warehouseID)
	if err != nil {
		return decimal.Zero, err
	}
	qty, err := r.Transfers.ReservedQuantity(ctx, productID, warehouseID)
	if err != nil {
		return decimal.Zero, err
	}
	return qty.Add(decimal.NewFromInt(int64(units))), nil
}

// Reconcile recalcula la clave por pliegue completo y, si el contador diverge,
// lo reescribe; la reserva se reconstruye desde el registro. La divergencia se
// registra como evento operativo crítico.
func (uc *LedgerUseCase) Reconcile(ctx context.Context, productID, warehouseID string) (ReconcileResult, error) {
	res := ReconcileResult{ProductID: productID, WarehouseID: warehouseID}
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		res.Repaired = false
		s, err := r.Stock.GetForUpdate(ctx, productID, warehouseID)
		if err != nil {
			return err
		}
		folded, err := foldInTx(ctx, r, productID, warehouseID)
		if err != nil {
			return err
		}
		reserved, err := reservedInTx(ctx, r, productID, warehouseID)
		if err != nil {
			return err
		}
		res.Cached, res.Folded = s.Quantity, folded.Quantity
		res.CachedReserved, res.Reserved = s.Reserved, reserved
		if reserved.GreaterThan(folded.Quantity) {
			// El registro reserva más de lo que el libro tiene: no hay contador válido que escribir.
			return &domain.LedgerConsistencyError{
				ProductID: productID, WarehouseID: warehouseID,
				Cached: s.Quantity, Folded: folded.Quantity,
			}
		}
		if s.Quantity.Equal(folded.Quantity) && s.AvgCost.Equal(folded.AvgCost) && s.Reserved.Equal(reserved) {
			return nil
		}
		res.Repaired = true
		s.Quantity = folded.Quantity
		s.AvgCost = folded.AvgCost
		s.Reserved = reserved
		s.UpdatedAt = uc.clock.Now()
		return r.Stock.Upsert(ctx, s)
	})
	if err != nil {
		var lce *domain.LedgerConsistencyError
		if errors.As(err, &lce) {
			uc.log.Error().
				Bool("critical", true).
				Str("event", "ledger_inconsistency").
				Str("product_id", productID).
				Str("warehouse_id", warehouseID).
				Str("folded", res.Folded.String()).
				Str("reserved", res.Reserved.String()).
				Msg("reserva del registro supera el stock del libro; requiere intervención")
		}
		return res, err
	}
	if res.Repaired {
		uc.log.Error().
			Bool("critical", true).
			Str("event", "ledger_inconsistency").
			Str("product_id", productID).
			Str("warehouse_id", warehouseID).
			Str("cached", res.Cached.String()).
			Str("folded", res.Folded.String()).
			Str("cached_reserved", res.CachedReserved.String()).
			Str("reserved", res.Reserved.String()).
			Msg("contador de stock reconstruido desde el libro")
		publish(ctx, uc.events, uc.log, EventLedgerInconsistency, InconsistencyEvent{
			ProductID: productID, WarehouseID: warehouseID, Cached: res.Cached, Folded: res.Folded,
		})
	}
	return res, nil
}

// ReconcileAll reconcilia todas las claves conocidas con concurrencia acotada.
func (uc *LedgerUseCase) ReconcileAll(ctx context.Context, concurrency int) (ReconcileSummary, error) {
	if concurrency <= 0 {
		concurrency = 1
	}
	keys, err := uc.repos.Stock.ListKeys(ctx)
	if err != nil {
		return ReconcileSummary{}, err
	}

	var (
		mu      sync.Mutex
		summary = ReconcileSummary{Checked: len(keys)}
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, k := range keys {
		g.Go(func() error {
			res, err := uc.Reconcile(gctx, k.ProductID, k.WarehouseID)
			if err != nil {
				return fmt.Errorf("reconciliar %s/%s: %w", k.ProductID, k.WarehouseID, err)
			}
			if res.Repaired {
				mu.Lock()
				summary.Repaired = append(summary.Repaired, res)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summary, err
	}
	sort.Slice(summary.Repaired, func(i, j int) bool {
		a, b := summary.Repaired[i], summary.Repaired[j]
		return entity.StockKey{ProductID: a.ProductID, WarehouseID: a.WarehouseID}.
			Less(entity.StockKey{ProductID: b.ProductID, WarehouseID: b.WarehouseID})
	})
	uc.log.Info().Int("checked", summary.Checked).Int("repaired", len(summary.Repaired)).Msg("reconciliación completa")
	return summary, nil
}

// isInsufficient indica si err es una falta de stock.
func isInsufficient(err error) (*domain.InsufficientStockError, bool) {
	var ise *domain.InsufficientStockError
	if errors.As(err, &ise) {
		return ise, true
	}
	return nil, false
}
