package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// Tipos de evento (routing keys del exchange del libro).
const (
	EventMovementAppended      = "movement.appended"
	EventSerialTransitioned    = "serial.transitioned"
	EventTransferStatusChanged = "transfer.status_changed"
	EventAdjustmentCreated     = "adjustment.created"
	EventAdjustmentDecided     = "adjustment.decided"
	EventLedgerInconsistency   = "ledger.inconsistency_detected"
)

// MovementAppendedEvent payload de movement.appended.
type MovementAppendedEvent struct {
	MovementID      string          `json:"movement_id"`
	Sequence        int64           `json:"sequence"`
	ProductID       string          `json:"product_id"`
	WarehouseID     string          `json:"warehouse_id"`
	SerialUnitID    string          `json:"serial_unit_id,omitempty"`
	Kind            string          `json:"kind"`
	Direction       string          `json:"direction"`
	Quantity        decimal.Decimal `json:"quantity"`
	ReferenceType   string          `json:"reference_type"`
	ReferenceNumber string          `json:"reference_number"`
}

// SerialTransitionedEvent payload de serial.transitioned.
type SerialTransitionedEvent struct {
	SerialUnitID    string `json:"serial_unit_id"`
	SerialCode      string `json:"serial_code"`
	From            string `json:"from"`
	To              string `json:"to"`
	WarehouseID     string `json:"warehouse_id"`
	ReferenceNumber string `json:"reference_number"`
	ActorID         string `json:"actor_id"`
}

// TransferStatusChangedEvent payload de transfer.status_changed.
type TransferStatusChangedEvent struct {
	TransferID string `json:"transfer_id"`
	Number     string `json:"number"`
	From       string `json:"from"`
	To         string `json:"to"`
	ActorID    string `json:"actor_id"`
}

// AdjustmentEvent payload de adjustment.created y adjustment.decided.
type AdjustmentEvent struct {
	AdjustmentID string `json:"adjustment_id"`
	Number       string `json:"number"`
	Type         string `json:"type"`
	Status       string `json:"status"`
	TotalItems   int    `json:"total_items"`
	FailedItems  int    `json:"failed_items"`
	ActorID      string `json:"actor_id"`
}

// InconsistencyEvent payload de ledger.inconsistency_detected.
type InconsistencyEvent struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Cached      decimal.Decimal `json:"cached"`
	Folded      decimal.Decimal `json:"folded"`
}

// publish envía el evento sin afectar el resultado de la operación ya confirmada.
func publish(ctx context.Context, pub EventPublisher, log *logger.Logger, eventType string, data interface{}) {
	if err := pub.Publish(ctx, eventType, data); err != nil {
		log.Warn().Err(err).Str("event_type", eventType).Msg("no se pudo publicar evento")
	}
}

func newMovementEvent(e *entity.MovementEntry) MovementAppendedEvent {
	return MovementAppendedEvent{
		MovementID:      e.ID,
		Sequence:        e.Sequence,
		ProductID:       e.ProductID,
		WarehouseID:     e.WarehouseID,
		SerialUnitID:    e.SerialUnitID,
		Kind:            string(e.Kind),
		Direction:       string(e.Direction),
		Quantity:        e.Quantity,
		ReferenceType:   e.ReferenceType,
		ReferenceNumber: e.ReferenceNumber,
	}
}
