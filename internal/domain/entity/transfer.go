package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferStatus estado del traslado entre bodegas.
type TransferStatus string

const (
	TransferDraft     TransferStatus = "draft"
	TransferPending   TransferStatus = "pending"
	TransferInTransit TransferStatus = "in_transit"
	TransferDelivered TransferStatus = "delivered"
	TransferCompleted TransferStatus = "completed"
	TransferCancelled TransferStatus = "cancelled"
)

// TransferItemStatus estado de cada ítem del traslado.
type TransferItemStatus string

const (
	TransferItemPending  TransferItemStatus = "pending"
	TransferItemReserved TransferItemStatus = "reserved"
	TransferItemShipped  TransferItemStatus = "shipped"
	TransferItemReceived TransferItemStatus = "received"
	TransferItemReleased TransferItemStatus = "released"
)

// Transfer operación que mueve unidades o cantidades de una bodega origen a una destino.
type Transfer struct {
	ID                string
	Number            string // único
	SourceWarehouseID string
	TargetWarehouseID string
	Status            TransferStatus
	TotalItems        int
	TotalQuantity     decimal.Decimal // suma de cantidades de los ítems
	Note              string
	InitiatedBy       string
	ConfirmedBy       string
	CreatedAt         time.Time
	SubmittedAt       *time.Time
	DispatchedAt      *time.Time
	DeliveredAt       *time.Time
	CompletedAt       *time.Time
	CancelledAt       *time.Time
	UpdatedAt         time.Time
	Items             []*TransferItem
}

// TransferItem un ítem: unidad serializada (cantidad 1) o cantidad de un producto.
type TransferItem struct {
	ID           string
	TransferID   string
	ProductID    string
	SerialUnitID string
	SerialCode   string
	Quantity     decimal.Decimal
	UnitCost     decimal.Decimal
	Status       TransferItemStatus
}

// Serialized indica si el ítem referencia una unidad serializada.
func (i *TransferItem) Serialized() bool {
	return i.SerialUnitID != ""
}
