package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppendMovementRequest body para POST /api/inventory/movements.
// Direction solo aplica a kind=adjustment.
type AppendMovementRequest struct {
	ProductID       string           `json:"product_id" validate:"required"`
	WarehouseID     string           `json:"warehouse_id" validate:"required"`
	Kind            string           `json:"kind" validate:"required,oneof=in out transfer_out transfer_in adjustment"`
	Direction       string           `json:"direction,omitempty" validate:"omitempty,oneof=increase decrease"`
	Quantity        decimal.Decimal  `json:"quantity" validate:"gt=0"`
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty" validate:"omitempty,gte=0"`
	ReferenceType   string           `json:"reference_type,omitempty" validate:"max=32"`
	ReferenceNumber string           `json:"reference_number,omitempty" validate:"max=64"`
	Note            string           `json:"note,omitempty" validate:"max=500"`
}

// MovementQuery filtros de GET /api/inventory/movements. From/To en RFC3339.
type MovementQuery struct {
	ProductID       string `query:"product_id"`
	WarehouseID     string `query:"warehouse_id"`
	From            string `query:"from"`
	To              string `query:"to"`
	ReferenceType   string `query:"reference_type"`
	ReferenceNumber string `query:"reference_number"`
	After           int64  `query:"after" validate:"min=0"`
	Limit           int    `query:"limit" validate:"min=0"`
}

// MovementResponse una entrada del libro.
type MovementResponse struct {
	ID              string          `json:"id"`
	Sequence        int64           `json:"sequence"`
	ProductID       string          `json:"product_id"`
	WarehouseID     string          `json:"warehouse_id"`
	SerialUnitID    string          `json:"serial_unit_id,omitempty"`
	Kind            string          `json:"kind"`
	Direction       string          `json:"direction"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	ReferenceType   string          `json:"reference_type"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	Note            string          `json:"note,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	CreatedBy       string          `json:"created_by,omitempty"`
}

// MovementListResponse una página del historial. NextAfter se pasa como after
// para pedir la siguiente; ausente cuando no quedan entradas.
type MovementListResponse struct {
	Items     []MovementResponse `json:"items"`
	Count     int                `json:"count"`
	NextAfter *int64             `json:"next_after,omitempty"`
}

// StockResponse vista del contador de una clave producto/bodega.
type StockResponse struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reserved    decimal.Decimal `json:"reserved"`
	Available   decimal.Decimal `json:"available"`
	AvgCost     decimal.Decimal `json:"avg_cost"`
	TotalValue  decimal.Decimal `json:"total_value"`
}

// ReconcileResponse resultado de reconciliar una clave.
type ReconcileResponse struct {
	ProductID      string          `json:"product_id"`
	WarehouseID    string          `json:"warehouse_id"`
	Repaired       bool            `json:"repaired"`
	Cached         decimal.Decimal `json:"cached"`
	Folded         decimal.Decimal `json:"folded"`
	CachedReserved decimal.Decimal `json:"cached_reserved"`
	Reserved       decimal.Decimal `json:"reserved"`
}
