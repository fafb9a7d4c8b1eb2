package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferItemRequest un ítem serializado (serial_unit_id o serial_code) o de cantidad.
type TransferItemRequest struct {
	SerialUnitID string          `json:"serial_unit_id,omitempty"`
	SerialCode   string          `json:"serial_code,omitempty"`
	ProductID    string          `json:"product_id,omitempty" validate:"required_without_all=SerialUnitID SerialCode"`
	Quantity     decimal.Decimal `json:"quantity" validate:"gte=0"`
}

// CreateTransferRequest body para POST /api/transfers.
type CreateTransferRequest struct {
	Number            string                `json:"number,omitempty" validate:"max=32"`
	SourceWarehouseID string                `json:"source_warehouse_id" validate:"required"`
	TargetWarehouseID string                `json:"target_warehouse_id" validate:"required,nefield=SourceWarehouseID"`
	Items             []TransferItemRequest `json:"items" validate:"required,min=1,dive"`
	Note              string                `json:"note,omitempty" validate:"max=500"`
}

// CancelTransferRequest body opcional de cancelación.
type CancelTransferRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// TransferQuery filtros de GET /api/transfers.
type TransferQuery struct {
	Status      string `query:"status" validate:"omitempty,oneof=draft pending in_transit delivered completed cancelled"`
	WarehouseID string `query:"warehouse_id"`
	PageRequest
}

// TransferItemResponse salida de un ítem.
type TransferItemResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	SerialUnitID string          `json:"serial_unit_id,omitempty"`
	SerialCode   string          `json:"serial_code,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Status       string          `json:"status"`
}

// TransferResponse salida de un traslado con sus ítems.
type TransferResponse struct {
	ID                string                 `json:"id"`
	Number            string                 `json:"number"`
	SourceWarehouseID string                 `json:"source_warehouse_id"`
	TargetWarehouseID string                 `json:"target_warehouse_id"`
	Status            string                 `json:"status"`
	TotalItems        int                    `json:"total_items"`
	TotalQuantity     decimal.Decimal        `json:"total_quantity"`
	Note              string                 `json:"note,omitempty"`
	InitiatedBy       string                 `json:"initiated_by,omitempty"`
	ConfirmedBy       string                 `json:"confirmed_by,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
	SubmittedAt       *time.Time             `json:"submitted_at,omitempty"`
	DispatchedAt      *time.Time             `json:"dispatched_at,omitempty"`
	DeliveredAt       *time.Time             `json:"delivered_at,omitempty"`
	CompletedAt       *time.Time             `json:"completed_at,omitempty"`
	CancelledAt       *time.Time             `json:"cancelled_at,omitempty"`
	Items             []TransferItemResponse `json:"items"`
}

// TransferListResponse lista paginada de traslados.
type TransferListResponse struct {
	Items []TransferResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
