package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// Códigos de fallo por ítem.
const (
	FailureNotFound          = "not_found"
	FailureWrongWarehouse    = "wrong_warehouse"
	FailureHeldByTransfer    = "held_by_transfer"
	FailureInvalidTransition = "invalid_transition"
	FailureInsufficientStock = "insufficient_stock"
	FailureInvalidInput      = "invalid_input"
	FailureConflict          = "conflict"
)

// AdjustmentUseCase procesador de ajustes. Los efectos se aplican al crear, ítem por ítem
// y cada uno en su propia transacción; la aprobación solo registra la decisión.
type AdjustmentUseCase struct {
	txRunner TxRunner
	repos    Repos
	ledger   *LedgerUseCase
	clock    Clock
	events   EventPublisher
	log      *logger.Logger
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(txRunner TxRunner, repos Repos, ledger *LedgerUseCase, clock Clock, events EventPublisher, log *logger.Logger) *AdjustmentUseCase {
	if events == nil {
		events = NoopPublisher{}
	}
	return &AdjustmentUseCase{txRunner: txRunner, repos: repos, ledger: ledger, clock: clock, events: events, log: log}
}

// AdjustmentItemInput referencia una unidad por ID o código.
type AdjustmentItemInput struct {
	SerialUnitID string
	SerialCode   string
	Missing      bool
	Note         string
}

// CreateAdjustmentInput entrada de Create. Reenviar el mismo Number reanuda los ítems pendientes.
type CreateAdjustmentInput struct {
	Number      string
	WarehouseID string
	Type        entity.AdjustmentType
	Reason      string
	Items       []AdjustmentItemInput
	ActorID     string
}

// NewAdjustmentNumber genera un número ADJ-<8 hex>.
func NewAdjustmentNumber() string {
	return "ADJ-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}

// Create persiste la cabecera en pending y aplica cada ítem de forma independiente.
// Los fallos de negocio quedan en el ítem; un fallo de infraestructura deja el ítem
// pendiente para reintentar con el mismo número.
func (uc *AdjustmentUseCase) Create(ctx context.Context, in CreateAdjustmentInput) (*entity.Adjustment, error) {
	if in.WarehouseID == "" {
		return nil, domain.NewValidationError("warehouse_id", "required")
	}
	if !in.Type.Valid() {
		return nil, domain.NewValidationError("type", "unknown")
	}
	if strings.TrimSpace(in.Reason) == "" {
		return nil, domain.NewValidationError("reason", "required")
	}
	if len(in.Items) == 0 {
		return nil, domain.NewValidationError("items", "required")
	}
	for i, it := range in.Items {
		if it.SerialUnitID == "" && it.SerialCode == "" {
			return nil, domain.NewValidationError(fmt.Sprintf("items[%d]", i), "serial_unit_id or serial_code required")
		}
		if it.Missing && in.Type != entity.AdjustmentCount {
			return nil, domain.NewValidationError(fmt.Sprintf("items[%d].missing", i), "only_for_count")
		}
	}
	wh, err := uc.repos.Warehouses.GetByID(ctx, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, fmt.Errorf("bodega %s: %w", in.WarehouseID, domain.ErrNotFound)
	}
	if !wh.Active {
		return nil, domain.NewValidationError("warehouse_id", "inactive")
	}

	adj, err := uc.loadOrCreate(ctx, in)
	if err != nil {
		return nil, err
	}
	for _, item := range adj.Items {
		if item.Status != entity.AdjustmentItemPending {
			continue
		}
		if err := uc.applyItem(ctx, adj, item, in.ActorID); err != nil {
			uc.log.Warn().Err(err).Str("adjustment", adj.Number).Int("line", item.Line).Msg("ítem de ajuste queda pendiente")
		}
	}

	err = uc.txRunner.Run(ctx, func(r Repos) error {
		locked, err := r.Adjustments.GetForUpdate(ctx, adj.ID)
		if err != nil {
			return err
		}
		adj = locked
		adj.FailedItems = 0
		for _, item := range adj.Items {
			if item.Status == entity.AdjustmentItemFailed {
				adj.FailedItems++
			}
		}
		adj.UpdatedAt = uc.clock.Now()
		return r.Adjustments.Update(ctx, adj)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("adjustment", adj.Number).Int("items", adj.TotalItems).Int("failed", adj.FailedItems).Msg("ajuste aplicado")
	publish(ctx, uc.events, uc.log, EventAdjustmentCreated, adjustmentEvent(adj, in.ActorID))
	return adj, nil
}

// loadOrCreate persiste el ajuste nuevo o devuelve el existente con el mismo número.
func (uc *AdjustmentUseCase) loadOrCreate(ctx context.Context, in CreateAdjustmentInput) (*entity.Adjustment, error) {
	number := strings.TrimSpace(in.Number)
	if number != "" {
		existing, err := uc.repos.Adjustments.GetByNumber(ctx, number)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if existing.WarehouseID != in.WarehouseID || existing.Type != in.Type || existing.Status != entity.AdjustmentPending {
				return nil, fmt.Errorf("ajuste %s: %w", number, domain.ErrDuplicate)
			}
			return existing, nil
		}
	} else {
		number = NewAdjustmentNumber()
	}

	now := uc.clock.Now()
	adj := &entity.Adjustment{
		ID:          uuid.New().String(),
		Number:      number,
		WarehouseID: in.WarehouseID,
		Type:        in.Type,
		Reason:      in.Reason,
		Status:      entity.AdjustmentPending,
		TotalItems:  len(in.Items),
		CreatedBy:   in.ActorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for i, it := range in.Items {
		adj.Items = append(adj.Items, &entity.AdjustmentItem{
			ID:           uuid.New().String(),
			AdjustmentID: adj.ID,
			Line:         i + 1,
			SerialUnitID: it.SerialUnitID,
			SerialCode:   it.SerialCode,
			Missing:      it.Missing,
			Note:         it.Note,
			Status:       entity.AdjustmentItemPending,
		})
	}
	if err := uc.txRunner.Run(ctx, func(r Repos) error {
		return r.Adjustments.Create(ctx, adj)
	}); err != nil {
		return nil, err
	}
	return adj, nil
}

// applyItem aplica un ítem en su propia transacción. Si la regla de negocio lo rechaza,
// registra el fallo en otra transacción. Devuelve error solo si el ítem sigue pendiente.
func (uc *AdjustmentUseCase) applyItem(ctx context.Context, adj *entity.Adjustment, item *entity.AdjustmentItem, actorID string) error {
	var entry *entity.MovementEntry
	var from, to entity.SerialStatus
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		entry, from, to = nil, "", ""
		unit, err := findSerial(ctx, r, item.SerialUnitID, item.SerialCode)
		if err != nil {
			return err
		}
		if unit == nil {
			return errItemNotFound
		}
		if unit, err = r.Serials.GetForUpdate(ctx, unit.ID); err != nil {
			return err
		}
		item.SerialUnitID, item.SerialCode = unit.ID, unit.SerialCode
		if unit.WarehouseID != adj.WarehouseID {
			return errWrongWarehouse
		}
		if unit.Held() {
			return &domain.TransferItemConflictError{TransferNumber: unit.HoldReference, SerialCode: unit.SerialCode, Reason: FailureHeldByTransfer}
		}
		eff, err := inventory.PlanAdjustment(adj.Type, unit, item.Missing)
		if err != nil {
			return err
		}
		reserved := decimal.Zero
		if eff.ReleaseReservation {
			reserved = decimal.NewFromInt(-1)
		}
		note := item.Note
		if note == "" {
			note = adj.Reason
		}
		entry, err = uc.ledger.appendInTx(ctx, r, movementSpec{
			ProductID:       unit.ProductID,
			WarehouseID:     unit.WarehouseID,
			SerialUnitID:    unit.ID,
			Kind:            entity.MovementAdjustment,
			Direction:       eff.Direction,
			Quantity:        decimal.NewFromInt(eff.Units),
			UnitCost:        &unit.UnitCost,
			ReservedDelta:   reserved,
			ReferenceType:   entity.ReferenceAdjustment,
			ReferenceNumber: adj.Number,
			Note:            note,
			ActorID:         actorID,
		})
		if err != nil {
			return err
		}
		if eff.NewStatus != "" {
			from, to = unit.Status, eff.NewStatus
			unit.Status = eff.NewStatus
			unit.ReferenceNumber = adj.Number
			unit.UpdatedAt = uc.clock.Now()
			if eff.NewStatus == entity.SerialAvailable {
				unit.SoldAt = nil
				unit.BuyerID = ""
			}
			if err := r.Serials.Update(ctx, unit); err != nil {
				return err
			}
		}
		item.Status = entity.AdjustmentItemApplied
		item.MovementID = entry.ID
		item.FailureCode, item.FailureDetail = "", ""
		return r.Adjustments.UpdateItem(ctx, item)
	})
	if err == nil {
		publish(ctx, uc.events, uc.log, EventMovementAppended, newMovementEvent(entry))
		if to != "" {
			publish(ctx, uc.events, uc.log, EventSerialTransitioned, SerialTransitionedEvent{
				SerialUnitID: item.SerialUnitID, SerialCode: item.SerialCode,
				From: string(from), To: string(to), WarehouseID: adj.WarehouseID,
				ReferenceNumber: adj.Number, ActorID: actorID,
			})
		}
		return nil
	}

	code := failureCode(err)
	if code == "" {
		item.Status = entity.AdjustmentItemPending
		return err
	}
	item.Status = entity.AdjustmentItemFailed
	item.FailureCode = code
	item.FailureDetail = err.Error()
	item.MovementID = ""
	return uc.txRunner.Run(ctx, func(r Repos) error {
		return r.Adjustments.UpdateItem(ctx, item)
	})
}

var (
	errItemNotFound   = fmt.Errorf("unidad no encontrada: %w", domain.ErrNotFound)
	errWrongWarehouse = fmt.Errorf("la unidad está en otra bodega: %w", domain.ErrConflict)
)

// failureCode clasifica un error de negocio; "" si no lo es.
func failureCode(err error) string {
	var tc *domain.TransferItemConflictError
	switch {
	case errors.Is(err, errWrongWarehouse):
		return FailureWrongWarehouse
	case errors.As(err, &tc):
		return FailureHeldByTransfer
	case errors.Is(err, domain.ErrNotFound):
		return FailureNotFound
	case errors.Is(err, domain.ErrInvalidTransition):
		return FailureInvalidTransition
	case errors.Is(err, domain.ErrInsufficientStock):
		return FailureInsufficientStock
	case errors.Is(err, domain.ErrInvalidInput):
		return FailureInvalidInput
	case domain.IsBusinessError(err):
		return FailureConflict
	}
	return ""
}

// Approve registra la decisión: approved si todos los ítems se aplicaron, partial si alguno falló.
// Con ítems sin resolver devuelve ErrAdjustmentUnresolved.
func (uc *AdjustmentUseCase) Approve(ctx context.Context, id, approverID string) (*entity.Adjustment, error) {
	return uc.decide(ctx, id, approverID, "", func(adj *entity.Adjustment) (entity.AdjustmentStatus, error) {
		pending := 0
		for _, item := range adj.Items {
			if item.Status == entity.AdjustmentItemPending {
				pending++
			}
		}
		if pending > 0 {
			return "", fmt.Errorf("ajuste %s: %d ítems pendientes: %w", adj.Number, pending, domain.ErrAdjustmentUnresolved)
		}
		if adj.FailedItems > 0 {
			return entity.AdjustmentPartial, nil
		}
		return entity.AdjustmentApproved, nil
	})
}

// Reject marca el ajuste como rechazado. Los movimientos ya aplicados se mantienen;
// se compensan con un ajuste nuevo.
func (uc *AdjustmentUseCase) Reject(ctx context.Context, id, approverID, reason string) (*entity.Adjustment, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domain.NewValidationError("reason", "required")
	}
	return uc.decide(ctx, id, approverID, reason, func(*entity.Adjustment) (entity.AdjustmentStatus, error) {
		return entity.AdjustmentRejected, nil
	})
}

func (uc *AdjustmentUseCase) decide(
	ctx context.Context,
	id, approverID, reason string,
	outcome func(*entity.Adjustment) (entity.AdjustmentStatus, error),
) (*entity.Adjustment, error) {
	var (
		adj    *entity.Adjustment
		replay bool
	)
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		var err error
		adj, err = r.Adjustments.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if adj == nil {
			return fmt.Errorf("ajuste %s: %w", id, domain.ErrNotFound)
		}
		status, err := outcome(adj)
		if adj.Status != entity.AdjustmentPending {
			// repetir la misma decisión no cambia nada
			if err == nil && status == adj.Status {
				replay = true
				return nil
			}
			to := string(status)
			if to == "" {
				to = string(entity.AdjustmentApproved)
			}
			return &domain.InvalidTransitionError{Entity: "adjustment", ID: adj.Number, From: string(adj.Status), To: to}
		}
		if err != nil {
			return err
		}
		now := uc.clock.Now()
		adj.Status = status
		adj.ApprovedBy = approverID
		adj.DecisionReason = reason
		adj.DecidedAt = &now
		adj.UpdatedAt = now
		return r.Adjustments.Update(ctx, adj)
	})
	if err != nil {
		return nil, err
	}
	if !replay {
		uc.log.Info().Str("adjustment", adj.Number).Str("status", string(adj.Status)).Msg("ajuste decidido")
		publish(ctx, uc.events, uc.log, EventAdjustmentDecided, adjustmentEvent(adj, approverID))
	}
	return adj, nil
}

// Get devuelve el ajuste con sus ítems.
func (uc *AdjustmentUseCase) Get(ctx context.Context, id string) (*entity.Adjustment, error) {
	adj, err := uc.repos.Adjustments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if adj == nil {
		return nil, fmt.Errorf("ajuste %s: %w", id, domain.ErrNotFound)
	}
	return adj, nil
}

// List lista ajustes con filtros.
func (uc *AdjustmentUseCase) List(ctx context.Context, filter repository.AdjustmentFilter) ([]*entity.Adjustment, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, domain.NewValidationError("type", "unknown")
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return uc.repos.Adjustments.List(ctx, filter)
}

func adjustmentEvent(adj *entity.Adjustment, actorID string) AdjustmentEvent {
	return AdjustmentEvent{
		AdjustmentID: adj.ID,
		Number:       adj.Number,
		Type:         string(adj.Type),
		Status:       string(adj.Status),
		TotalItems:   adj.TotalItems,
		FailedItems:  adj.FailedItems,
		ActorID:      actorID,
	}
}
