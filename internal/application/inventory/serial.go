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
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// SerialUseCase registro de unidades serializadas sobre el libro.
type SerialUseCase struct {
	txRunner TxRunner
	repos    Repos
	ledger   *LedgerUseCase
	clock    Clock
	events   EventPublisher
	log      *logger.Logger
}

// NewSerialUseCase construye el caso de uso.
func NewSerialUseCase(txRunner TxRunner, repos Repos, ledger *LedgerUseCase, clock Clock, events EventPublisher, log *logger.Logger) *SerialUseCase {
	if events == nil {
		events = NoopPublisher{}
	}
	return &SerialUseCase{txRunner: txRunner, repos: repos, ledger: ledger, clock: clock, events: events, log: log}
}

// ReceiveSerialInput entrada de Receive. SerialCode vacío genera uno.
type ReceiveSerialInput struct {
	ProductID       string
	WarehouseID     string
	SerialCode      string
	UnitCost        decimal.Decimal
	SellingPrice    decimal.Decimal
	SupplierPrice   decimal.Decimal
	ReferenceNumber string
	ActorID         string
}

// TransitionInput entrada de Transition.
type TransitionInput struct {
	SerialUnitID    string
	NewStatus       entity.SerialStatus
	ReferenceNumber string
	ActorID         string
	BuyerID         string
}

// NewSerialCode genera un código SN-<12 hex>.
func NewSerialCode() string {
	return "SN-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:12])
}

// Receive registra una unidad nueva (available) y su entrada de cantidad 1 en la misma transacción.
func (uc *SerialUseCase) Receive(ctx context.Context, in ReceiveSerialInput) (*entity.SerialUnit, error) {
	if in.ProductID == "" {
		return nil, domain.NewValidationError("product_id", "required")
	}
	if in.WarehouseID == "" {
		return nil, domain.NewValidationError("warehouse_id", "required")
	}
	for field, v := range map[string]decimal.Decimal{
		"unit_cost": in.UnitCost, "selling_price": in.SellingPrice, "supplier_price": in.SupplierPrice,
	} {
		if v.IsNegative() {
			return nil, domain.NewValidationError(field, "must_not_be_negative")
		}
	}
	code := strings.TrimSpace(in.SerialCode)
	if code == "" {
		code = NewSerialCode()
	}

	product, err := uc.repos.Products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", in.ProductID, domain.ErrNotFound)
	}
	existing, err := uc.repos.Serials.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &domain.DuplicateSerialError{SerialCode: code}
	}

	ref := in.ReferenceNumber
	if ref == "" {
		ref = code
	}
	now := uc.clock.Now()
	unit := &entity.SerialUnit{
		ID:              uuid.New().String(),
		SerialCode:      code,
		ProductID:       in.ProductID,
		WarehouseID:     in.WarehouseID,
		UnitCost:        in.UnitCost,
		SellingPrice:    in.SellingPrice,
		SupplierPrice:   in.SupplierPrice,
		Status:          entity.SerialAvailable,
		ReferenceNumber: ref,
		ReceivedAt:      now,
		UpdatedAt:       now,
	}
	var entry *entity.MovementEntry
	err = uc.txRunner.Run(ctx, func(r Repos) error {
		// La restricción única cubre la carrera entre el pre-chequeo y el insert.
		if err := r.Serials.Create(ctx, unit); err != nil {
			return err
		}
		var err error
		entry, err = uc.ledger.appendInTx(ctx, r, movementSpec{
			ProductID:       unit.ProductID,
			WarehouseID:     unit.WarehouseID,
			SerialUnitID:    unit.ID,
			Kind:            entity.MovementIn,
			Direction:       entity.DirectionIncrease,
			Quantity:        decimal.NewFromInt(1),
			UnitCost:        &unit.UnitCost,
			ReferenceType:   entity.ReferenceReceipt,
			ReferenceNumber: ref,
			ActorID:         in.ActorID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("serial_code", code).Str("warehouse_id", unit.WarehouseID).Msg("unidad recibida")
	publish(ctx, uc.events, uc.log, EventMovementAppended, newMovementEvent(entry))
	return unit, nil
}

// Transition aplica una arista del grafo de estados con su movimiento correlacionado.
// Repetir la misma transición con la misma referencia devuelve la unidad sin escribir nada.
func (uc *SerialUseCase) Transition(ctx context.Context, in TransitionInput) (*entity.SerialUnit, error) {
	if in.SerialUnitID == "" {
		return nil, domain.NewValidationError("serial_unit_id", "required")
	}
	if !in.NewStatus.Valid() {
		return nil, domain.NewValidationError("new_status", "unknown")
	}
	if in.ReferenceNumber == "" {
		return nil, domain.NewValidationError("reference_number", "required")
	}
	if in.NewStatus == entity.SerialTransferred {
		return nil, domain.NewValidationError("new_status", "only_via_transfer_dispatch")
	}

	var (
		unit   *entity.SerialUnit
		from   entity.SerialStatus
		entry  *entity.MovementEntry
		replay bool
	)
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		replay, entry = false, nil
		var err error
		unit, err = r.Serials.GetForUpdate(ctx, in.SerialUnitID)
		if err != nil {
			return err
		}
		if unit == nil {
			return fmt.Errorf("unidad %s: %w", in.SerialUnitID, domain.ErrNotFound)
		}
		if unit.Status == in.NewStatus && unit.ReferenceNumber == in.ReferenceNumber {
			replay = true
			return nil
		}
		if unit.Held() {
			return &domain.TransferItemConflictError{
				TransferNumber: unit.HoldReference,
				SerialCode:     unit.SerialCode,
				Reason:         "held_by_transfer",
			}
		}
		from = unit.Status
		eff, err := inventory.PlanSerialTransition(unit.ID, unit.Status, in.NewStatus)
		if err != nil {
			return err
		}
		entry, err = uc.ledger.appendInTx(ctx, r, movementSpec{
			ProductID:       unit.ProductID,
			WarehouseID:     unit.WarehouseID,
			SerialUnitID:    unit.ID,
			Kind:            eff.Kind,
			Direction:       eff.Direction,
			Quantity:        decimal.NewFromInt(eff.Units),
			UnitCost:        &unit.UnitCost,
			ReservedDelta:   decimal.NewFromInt(eff.ReservedDelta),
			ReferenceType:   entity.ReferenceSerial,
			ReferenceNumber: in.ReferenceNumber,
			Note:            fmt.Sprintf("%s -> %s", unit.Status, in.NewStatus),
			ActorID:         in.ActorID,
		})
		if err != nil {
			return err
		}
		now := uc.clock.Now()
		unit.Status = in.NewStatus
		unit.ReferenceNumber = in.ReferenceNumber
		unit.UpdatedAt = now
		if in.NewStatus == entity.SerialSold {
			unit.SoldAt = &now
			unit.BuyerID = in.BuyerID
		}
		return r.Serials.Update(ctx, unit)
	})
	if err != nil {
		return nil, err
	}
	if replay {
		uc.log.Debug().Str("serial_unit_id", unit.ID).Str("reference", in.ReferenceNumber).Msg("transición repetida, sin cambios")
		return unit, nil
	}
	publish(ctx, uc.events, uc.log, EventMovementAppended, newMovementEvent(entry))
	publish(ctx, uc.events, uc.log, EventSerialTransitioned, SerialTransitionedEvent{
		SerialUnitID:    unit.ID,
		SerialCode:      unit.SerialCode,
		From:            string(from),
		To:              string(unit.Status),
		WarehouseID:     unit.WarehouseID,
		ReferenceNumber: in.ReferenceNumber,
		ActorID:         in.ActorID,
	})
	return unit, nil
}

// Lookup busca por ID y, si no existe, por código serial.
func (uc *SerialUseCase) Lookup(ctx context.Context, idOrCode string) (*entity.SerialUnit, error) {
	unit, err := findSerial(ctx, uc.repos, idOrCode, "")
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, fmt.Errorf("unidad %s: %w", idOrCode, domain.ErrNotFound)
	}
	return unit, nil
}

// ListByWarehouse lista las unidades de una bodega, opcionalmente por estado.
func (uc *SerialUseCase) ListByWarehouse(ctx context.Context, warehouseID string, status entity.SerialStatus, limit, offset int) ([]*entity.SerialUnit, error) {
	if status != "" && !status.Valid() {
		return nil, domain.NewValidationError("status", "unknown")
	}
	if limit <= 0 {
		limit = 50
	}
	return uc.repos.Serials.ListByWarehouse(ctx, warehouseID, status, limit, offset)
}

// findSerial resuelve una unidad por ID o por código. Devuelve (nil, nil) si no existe.
func findSerial(ctx context.Context, r Repos, id, code string) (*entity.SerialUnit, error) {
	if id != "" {
		if _, err := uuid.Parse(id); err == nil {
			unit, err := r.Serials.GetByID(ctx, id)
			if err != nil || unit != nil {
				return unit, err
			}
		}
		if code == "" {
			code = id
		}
	}
	if code == "" {
		return nil, nil
	}
	unit, err := r.Serials.GetByCode(ctx, code)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return unit, nil
}
